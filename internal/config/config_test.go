package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHATBOT_DB_CONNECTION_STRING", "postgres://chatbot")

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "postgres://chatbot", cfg.Database.Connection)
	assert.Equal(t, "postgres://chatbot", cfg.Database.SourceConnection, "source store falls back to chatbot DSN")
	assert.Equal(t, 5, cfg.Pipeline.HistoryWindow)
	assert.Equal(t, 0.5, cfg.Pipeline.RagMatchThreshold)
	assert.Equal(t, 3, cfg.Pipeline.RagMatchCount)
	assert.False(t, cfg.Pipeline.EnableAsyncWrites)
	assert.Equal(t, 200*time.Millisecond, cfg.Pipeline.TurnRetryDelay)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SOURCE_DB_CONNECTION_STRING", "postgres://edify")
	t.Setenv("ENABLE_ASYNC_WRITES", "true")
	t.Setenv("RETRIEVAL_TIMEOUT", "7")
	t.Setenv("SYNTHESIS_TIMEOUT", "1m")
	t.Setenv("RAG_MATCH_THRESHOLD", "0.72")
	t.Setenv("HISTORY_WINDOW", "not-a-number")

	cfg := Load()

	assert.Equal(t, "postgres://edify", cfg.Database.SourceConnection)
	assert.True(t, cfg.Pipeline.EnableAsyncWrites)
	assert.Equal(t, 7*time.Second, cfg.Pipeline.RetrievalTimeout)
	assert.Equal(t, time.Minute, cfg.Pipeline.SynthesisTimeout)
	assert.Equal(t, 0.72, cfg.Pipeline.RagMatchThreshold)
	assert.Equal(t, 5, cfg.Pipeline.HistoryWindow)
}
