package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	JwtSecret          string
}

type DatabaseConfig struct {
	// Connection is the read/write store for sessions, turns and diagnostics.
	Connection string
	// SourceConnection is the read-only store holding CRM/LMS/RMS/HRMS tables.
	SourceConnection string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider    string // "gemini" or "ollama"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	GeminiEmbeddingModel string
	EmbeddingDimensions  int
	LLMProvider          string // "ollama" or "gemini"
	LLMModel             string
}

type PipelineConfig struct {
	HistoryWindow     int
	ClassifierTimeout time.Duration
	RetrievalTimeout  time.Duration
	SynthesisTimeout  time.Duration
	RagMatchThreshold float64
	RagMatchCount     int
	EnableAsyncWrites bool
	TurnRetryDelay    time.Duration
	DiagnosticsTopic  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	chatbotDSN := getEnv("CHATBOT_DB_CONNECTION_STRING", "")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection:       chatbotDSN,
			SourceConnection: getEnv("SOURCE_DB_CONNECTION_STRING", chatbotDSN),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "text-embedding-004"),
			EmbeddingDimensions:  getEnvAsInt("EMBEDDING_DIMENSIONS", 768),
			LLMProvider:          getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:             getEnv("LLM_MODEL", "llama3"),
		},
		Pipeline: PipelineConfig{
			HistoryWindow:     getEnvAsInt("HISTORY_WINDOW", 5),
			ClassifierTimeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 10*time.Second),
			RetrievalTimeout:  getEnvAsDuration("RETRIEVAL_TIMEOUT", 15*time.Second),
			SynthesisTimeout:  getEnvAsDuration("SYNTHESIS_TIMEOUT", 60*time.Second),
			RagMatchThreshold: getEnvAsFloat("RAG_MATCH_THRESHOLD", 0.5),
			RagMatchCount:     getEnvAsInt("RAG_MATCH_COUNT", 3),
			EnableAsyncWrites: getEnvAsBool("ENABLE_ASYNC_WRITES", false),
			TurnRetryDelay:    getEnvAsDuration("TURN_RETRY_DELAY", 200*time.Millisecond),
			DiagnosticsTopic:  getEnv("DIAGNOSTICS_TOPIC_NAME", "PIPELINE_DIAGNOSTICS"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("15s") or plain seconds ("15").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
