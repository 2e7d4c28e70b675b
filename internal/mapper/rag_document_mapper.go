package mapper

import (
	"time"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type RagDocumentMapper struct{}

func NewRagDocumentMapper() *RagDocumentMapper {
	return &RagDocumentMapper{}
}

func (m *RagDocumentMapper) DocumentToEntity(d *model.RagDocument) *entity.RagDocument {
	if d == nil {
		return nil
	}
	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}
	return &entity.RagDocument{
		Id:        d.Id,
		Title:     d.Title,
		Source:    d.Source,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RagDocumentMapper) DocumentToModel(d *entity.RagDocument) *model.RagDocument {
	if d == nil {
		return nil
	}
	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}
	return &model.RagDocument{
		Id:        d.Id,
		Title:     d.Title,
		Source:    d.Source,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RagDocumentMapper) EmbeddingToEntity(e *model.RagEmbedding) *entity.RagEmbedding {
	if e == nil {
		return nil
	}
	return &entity.RagEmbedding{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		Content:    e.Content,
		Embedding:  e.Embedding.Slice(),
		ChunkIndex: e.ChunkIndex,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *RagDocumentMapper) EmbeddingToModel(e *entity.RagEmbedding) *model.RagEmbedding {
	if e == nil {
		return nil
	}
	return &model.RagEmbedding{
		Id:         e.Id,
		DocumentId: e.DocumentId,
		Content:    e.Content,
		Embedding:  pgvector.NewVector(e.Embedding),
		ChunkIndex: e.ChunkIndex,
		CreatedAt:  e.CreatedAt,
	}
}
