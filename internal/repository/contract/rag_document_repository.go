package contract

import (
	"context"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RagDocumentRepository interface {
	Create(ctx context.Context, doc *entity.RagDocument) error
	Update(ctx context.Context, doc *entity.RagDocument) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagDocument, error)
}

type RagEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.RagEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	// SearchSimilar returns chunks whose cosine similarity to vector is at least threshold,
	// best match first.
	SearchSimilar(ctx context.Context, vector []float32, threshold float64, limit int) ([]*entity.ScoredChunk, error)
}
