package contract

import (
	"context"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/repository/specification"
)

type RetrievedContextRepository interface {
	Create(ctx context.Context, attempt *entity.RetrievalAttempt) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalAttempt, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, event *entity.AuditEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEvent, error)
}
