package unitofwork

import (
	"context"

	"admin-chatbot-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	ChatHistoryRepository() contract.ChatHistoryRepository
	RetrievedContextRepository() contract.RetrievedContextRepository
	AuditLogRepository() contract.AuditLogRepository
	RagDocumentRepository() contract.RagDocumentRepository
	RagEmbeddingRepository() contract.RagEmbeddingRepository
}
