package bootstrap

import (
	"context"
	"fmt"

	"admin-chatbot-be/internal/config"
	"admin-chatbot-be/internal/controller"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/pkg/serverutils"
	"admin-chatbot-be/internal/repository/unitofwork"
	"admin-chatbot-be/internal/service"
	"admin-chatbot-be/pkg/database"
	"admin-chatbot-be/pkg/embedding"
	"admin-chatbot-be/pkg/events"
	"admin-chatbot-be/pkg/llm/factory"
	pktNats "admin-chatbot-be/pkg/nats"
	"admin-chatbot-be/pkg/rag/audit"
	"admin-chatbot-be/pkg/rag/executor"
	"admin-chatbot-be/pkg/rag/history"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/rag/response"
	"admin-chatbot-be/pkg/rag/source"
	"admin-chatbot-be/pkg/recordstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	SessionController controller.ISessionController
	SourceController  controller.ISourceController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger  logger.ILogger
	closers []func()
}

func NewContainer(ctx context.Context, registry *database.Registry, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger

	db, err := registry.Chatbot()
	if err != nil {
		return nil, fmt.Errorf("chatbot store: %w", err)
	}
	pool, err := registry.Source(ctx)
	if err != nil {
		return nil, fmt.Errorf("source store: %w", err)
	}
	c.closers = append(c.closers, registry.Close)

	uowFactory := unitofwork.NewRepositoryFactory(db)
	uow := uowFactory.NewUnitOfWork(ctx)

	// 2. Event Bus
	var publisher events.Publisher = events.NopPublisher{}
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS unavailable, events disabled", map[string]interface{}{"error": err.Error()})
	} else {
		publisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	// Diagnostics are written inline unless async writes are enabled, in
	// which case they go through the in-process bus to the consumer.
	var recorder audit.Recorder = audit.NewSyncRecorder(uow.RetrievedContextRepository(), uow.AuditLogRepository(), sysLogger)
	if cfg.Pipeline.EnableAsyncWrites {
		pubSub := gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewStdLogger(false, false),
		)
		c.closers = append(c.closers, func() { _ = pubSub.Close() })

		recorder = audit.NewAsyncRecorder(pubSub, cfg.Pipeline.DiagnosticsTopic, sysLogger)
		c.ConsumerService = service.NewConsumerService(
			pubSub,
			cfg.Pipeline.DiagnosticsTopic,
			uowFactory,
			logger.NewIsolatedLogger("logs/diagnostics.log"),
		)
	}

	// 3. Model Providers
	llmProvider, err := factory.NewLLMProvider(ctx, factory.Params{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		APIKey:   cfg.Keys.GoogleGemini,
	})
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	embedder, err := NewEmbeddingProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	// 4. Retrieval
	keywords, err := intent.DefaultKeywordTable()
	if err != nil {
		return nil, fmt.Errorf("keyword table: %w", err)
	}
	sourceStore := recordstore.NewPostgres(pool)
	registrySources := source.NewRegistry(
		source.NewStructuredAdapter(source.CRMSchema(), sourceStore, keywords, sysLogger),
		source.NewStructuredAdapter(source.LMSSchema(), sourceStore, keywords, sysLogger),
		source.NewStructuredAdapter(source.RMSSchema(), sourceStore, keywords, sysLogger),
		source.NewStructuredAdapter(source.HRMSSchema(), sourceStore, keywords, sysLogger),
		source.NewDocumentAdapter(embedder, uow.RagEmbeddingRepository(), cfg.Pipeline.RagMatchThreshold, cfg.Pipeline.RagMatchCount),
	)

	// 5. Pipeline
	pipeline := executor.New(executor.Deps{
		Sessions:    uow.SessionRepository(),
		History:     history.NewLoader(uow.ChatHistoryRepository(), cfg.Pipeline.HistoryWindow),
		Classifier:  intent.NewClassifier(keywords, llmProvider, cfg.Pipeline.ClassifierTimeout, sysLogger),
		Sources:     registrySources,
		Synthesizer: response.NewSynthesizer(llmProvider, sysLogger),
		Turns:       uow.ChatHistoryRepository(),
		Recorder:    recorder,
		Logger:      sysLogger,
		Config: executor.Config{
			RetrievalTimeout: cfg.Pipeline.RetrievalTimeout,
			SynthesisTimeout: cfg.Pipeline.SynthesisTimeout,
			TurnRetryDelay:   cfg.Pipeline.TurnRetryDelay,
		},
	})

	// 6. Services
	sessionService := service.NewSessionService(uowFactory, recorder, publisher, sysLogger)
	chatService := service.NewChatService(sessionService, pipeline, recorder, publisher, sysLogger)
	sourceService := service.NewSourceService(registrySources)

	// 7. Controllers
	auth := serverutils.PrincipalMiddleware(cfg.App.JwtSecret)
	c.ChatController = controller.NewChatController(chatService, auth)
	c.SessionController = controller.NewSessionController(sessionService, auth)
	c.SourceController = controller.NewSourceController(sourceService, auth)
	c.HealthController = controller.NewHealthController(map[string]controller.HealthCheck{
		"chatbot_db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"source_db": pool.Ping,
	})

	return c, nil
}

// NewEmbeddingProvider builds the embedder selected by EMBEDDING_PROVIDER.
func NewEmbeddingProvider(ctx context.Context, cfg *config.Config) (embedding.EmbeddingProvider, error) {
	params := embedding.Params{
		Provider:   cfg.Ai.EmbeddingProvider,
		BaseURL:    cfg.Ai.OllamaBaseURL,
		Model:      cfg.Ai.OllamaEmbeddingModel,
		Dimensions: cfg.Ai.EmbeddingDimensions,
	}
	if cfg.Ai.EmbeddingProvider == "gemini" {
		params.Model = cfg.Ai.GeminiEmbeddingModel
		params.APIKey = cfg.Keys.GoogleGemini
	}
	return embedding.NewProvider(ctx, params)
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
