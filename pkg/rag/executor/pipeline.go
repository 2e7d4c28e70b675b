// Package executor runs the chat pipeline: validate, load history, classify,
// dispatch, gate and synthesize, then persist the turn.
package executor

import (
	"context"
	"fmt"
	"time"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/repository/specification"
	"admin-chatbot-be/pkg/llm"
	"admin-chatbot-be/pkg/rag/audit"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/rag/source"
	"admin-chatbot-be/pkg/recordstore"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type SessionFinder interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AdminSession, error)
}

type HistoryLoader interface {
	Load(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatTurn, []llm.Message, error)
}

type Classifier interface {
	Classify(ctx context.Context, query string, history []llm.Message) intent.Result
}

type Synthesizer interface {
	Synthesize(ctx context.Context, query string, evidence []recordstore.Record, category intent.Category, history []llm.Message) (string, error)
}

type TurnWriter interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
}

type Config struct {
	RetrievalTimeout time.Duration
	SynthesisTimeout time.Duration
	TurnRetryDelay   time.Duration
}

type Deps struct {
	Sessions    SessionFinder
	History     HistoryLoader
	Classifier  Classifier
	Sources     *source.Registry
	Synthesizer Synthesizer
	Turns       TurnWriter
	Recorder    audit.Recorder
	Logger      logger.ILogger
	Config      Config
	// Now defaults to time.Now.
	Now func() time.Time
}

type Result struct {
	Response       string
	Category       intent.Category
	RecordCount    int
	ResponseTimeMs int64
	TurnSaved      bool
}

type Pipeline struct {
	deps   Deps
	logger logger.ILogger
	nodes  []Node
	tracer trace.Tracer
}

func New(deps Deps) *Pipeline {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	p := &Pipeline{
		deps:   deps,
		logger: deps.Logger,
		tracer: otel.Tracer("admin-chatbot-be/pipeline"),
	}
	p.nodes = []Node{
		validateSessionNode{p},
		loadHistoryNode{p},
		classifyNode{p},
		dispatchNode{p},
		gateNode{p},
		synthesizeNode{p},
	}
	return p
}

func (p *Pipeline) now() time.Time { return p.deps.Now() }

// Run always returns a response. Every path, including panics inside a node,
// ends by persisting the turn.
func (p *Pipeline) Run(ctx context.Context, sessionId, adminId uuid.UUID, query string) *Result {
	ctx, span := p.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.String("session_id", sessionId.String()),
	))
	defer span.End()

	s := &State{
		SessionId: sessionId,
		AdminId:   adminId,
		Query:     query,
		StartedAt: p.now(),
	}

	for _, n := range p.nodes {
		if step := p.runNode(ctx, n, s); step.Terminal {
			break
		}
	}
	if s.Response == "" {
		p.logger.Error("PIPELINE", "Pipeline finished without a response", map[string]interface{}{"session_id": sessionId})
		p.audit(ctx, s, constant.AuditFallbackTriggered, map[string]interface{}{"reason": "empty response"})
		s.Response = FallbackMessage
	}

	elapsed := p.now().Sub(s.StartedAt).Milliseconds()
	saved := p.persist(ctx, s, elapsed)

	span.SetAttributes(
		attribute.String("category", s.SourceType()),
		attribute.Int("record_count", len(s.Evidence)),
	)
	return &Result{
		Response:       s.Response,
		Category:       intent.Category(s.SourceType()),
		RecordCount:    len(s.Evidence),
		ResponseTimeMs: elapsed,
		TurnSaved:      saved,
	}
}

func (p *Pipeline) runNode(ctx context.Context, n Node, s *State) (step Step) {
	ctx, span := p.tracer.Start(ctx, "pipeline."+n.Name())
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("node %s panicked: %v", n.Name(), r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			p.logger.Error("PIPELINE", "Node panicked, using fallback response", map[string]interface{}{
				"node": n.Name(), "panic": fmt.Sprint(r), "session_id": s.SessionId,
			})
			p.audit(ctx, s, constant.AuditFallbackTriggered, map[string]interface{}{
				"node":         n.Name(),
				"error":        fmt.Sprint(r),
				"user_message": truncate(s.Query, 100),
			})
			step = Terminal(s, FallbackMessage)
		}
	}()

	return n.Run(ctx, s)
}

// persist writes the turn, retrying once. It never changes the response.
func (p *Pipeline) persist(ctx context.Context, s *State, elapsedMs int64) (saved bool) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := p.tracer.Start(ctx, "pipeline.persist")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("PIPELINE", "Persisting turn panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			saved = false
		}
	}()

	turn := &entity.ChatTurn{
		Id:                uuid.New(),
		SessionId:         s.SessionId,
		AdminId:           s.AdminId,
		UserMessage:       s.Query,
		AssistantResponse: s.Response,
		SourceType:        s.SourceType(),
		ResponseTimeMs:    &elapsedMs,
		CreatedAt:         p.now(),
	}

	err := p.deps.Turns.Create(ctx, turn)
	if err == nil {
		return true
	}
	p.logger.Warn("PIPELINE", "Saving turn failed, retrying", map[string]interface{}{
		"error": err.Error(), "session_id": s.SessionId,
	})

	if d := p.deps.Config.TurnRetryDelay; d > 0 {
		time.Sleep(d)
	}
	if err = p.deps.Turns.Create(ctx, turn); err == nil {
		return true
	}

	span.RecordError(err)
	p.logger.Error("PIPELINE", "Saving turn failed after retry", map[string]interface{}{
		"error": err.Error(), "session_id": s.SessionId,
	})
	p.audit(ctx, s, constant.AuditChatHistorySaveFailed, map[string]interface{}{
		"error": err.Error(), "source_type": s.SourceType(),
	})
	return false
}

// audit and recordAttempt outlive the caller's deadline; a timed-out node
// still leaves its trace behind.
func (p *Pipeline) audit(ctx context.Context, s *State, action string, details map[string]interface{}) {
	sid := s.SessionId
	_ = p.deps.Recorder.RecordEvent(context.WithoutCancel(ctx), &entity.AuditEvent{
		AdminId:   s.AdminId,
		SessionId: &sid,
		Action:    action,
		Details:   details,
	})
}

func (p *Pipeline) recordAttempt(ctx context.Context, s *State, a *entity.RetrievalAttempt) {
	s.AttemptRecorded = true
	_ = p.deps.Recorder.RecordAttempt(context.WithoutCancel(ctx), a)
}
