package embedding

import (
	"context"
	"fmt"
)

// Task types understood by Gemini; other providers ignore them.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

type Params struct {
	Provider   string
	BaseURL    string
	Model      string
	APIKey     string
	Dimensions int
}

// NewProvider picks the embedding backend named by p.Provider.
func NewProvider(ctx context.Context, p Params) (EmbeddingProvider, error) {
	switch p.Provider {
	case "ollama", "":
		return NewOllamaProvider(p.BaseURL, p.Model), nil
	case "gemini":
		return NewGeminiProvider(ctx, p.APIKey, p.Model, p.Dimensions)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", p.Provider)
	}
}
