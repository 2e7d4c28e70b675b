package factory

import (
	"admin-chatbot-be/pkg/llm"
	"admin-chatbot-be/pkg/llm/gemini"
	"admin-chatbot-be/pkg/llm/ollama"
	"context"
	"fmt"
)

type Params struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(ctx context.Context, p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "ollama", "":
		baseURL := p.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, p.Model), nil
	case "gemini":
		return gemini.NewProvider(ctx, p.APIKey, p.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
