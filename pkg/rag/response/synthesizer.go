// Package response turns retrieved evidence into the assistant's answer.
package response

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/pkg/llm"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/recordstore"
)

const (
	LLMErrorMessage = "I encountered an error generating the response."
	NotInRecords    = "The provided records do not contain the answer."
)

const systemTemplate = `You are a helpful Edify Admin Assistant.
Answer the administrator's question using ONLY the records below from the %s system.

RULES:
1. Use ONLY the provided records. Never invent names, numbers, dates or any other facts.
2. If the records do not answer the question, reply exactly: "%s"
3. Keep the answer clean and readable. Use bullet points or tables for structured data.
4. Number ordered lists sequentially starting at 1 and never repeat a number.
5. Earlier conversation turns are context only; they are not evidence.

RECORDS:
%s`

type Synthesizer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewSynthesizer(provider llm.LLMProvider, log logger.ILogger) *Synthesizer {
	return &Synthesizer{provider: provider, logger: log}
}

func (s *Synthesizer) Synthesize(
	ctx context.Context,
	query string,
	evidence []recordstore.Record,
	category intent.Category,
	history []llm.Message,
) (string, error) {
	system, err := BuildSystemPrompt(evidence, category)
	if err != nil {
		return "", err
	}

	out, err := llm.Complete(ctx, s.provider, system, query, history, llm.WithTemperature(0.2))
	if err != nil {
		s.logger.Error("SYNTH", "Answer generation failed", map[string]interface{}{
			"error":    err.Error(),
			"category": category,
		})
		return "", err
	}
	return RenumberLists(out), nil
}

func BuildSystemPrompt(evidence []recordstore.Record, category intent.Category) (string, error) {
	records, err := json.MarshalIndent(evidence, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize evidence: %w", err)
	}
	return fmt.Sprintf(systemTemplate, strings.ToUpper(string(category)), NotInRecords, records), nil
}
