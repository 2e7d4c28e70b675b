package history

import (
	"context"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/repository/contract"
	"admin-chatbot-be/internal/repository/specification"
	"admin-chatbot-be/pkg/llm"

	"github.com/google/uuid"
)

// Loader reads the tail of a session's conversation for model context.
type Loader struct {
	turns  contract.ChatHistoryRepository
	window int
}

func NewLoader(turns contract.ChatHistoryRepository, window int) *Loader {
	if window <= 0 {
		window = 5
	}
	return &Loader{turns: turns, window: window}
}

// Load returns the last window turns, oldest first, as alternating
// user/assistant messages.
func (l *Loader) Load(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatTurn, []llm.Message, error) {
	recent, err := l.turns.FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: l.window},
	)
	if err != nil {
		return nil, nil, err
	}
	if len(recent) > l.window {
		recent = recent[:l.window]
	}

	turns := make([]*entity.ChatTurn, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		turns = append(turns, recent[i])
	}
	return turns, ToMessages(turns), nil
}

func ToMessages(turns []*entity.ChatTurn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns)*2)
	for _, t := range turns {
		messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: t.UserMessage})
		if t.AssistantResponse != "" {
			messages = append(messages, llm.Message{Role: constant.ChatMessageRoleAssistant, Content: t.AssistantResponse})
		}
	}
	return messages
}
