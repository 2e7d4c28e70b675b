package contract

import (
	"context"
	"time"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.AdminSession) error
	Update(ctx context.Context, session *entity.AdminSession) error
	Touch(ctx context.Context, sessionId uuid.UUID, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AdminSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminSession, error)
}
