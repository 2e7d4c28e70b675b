package contract

import (
	"context"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/repository/specification"
)

type ChatHistoryRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
