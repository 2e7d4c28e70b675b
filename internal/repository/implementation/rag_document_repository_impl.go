package implementation

import (
	"context"
	"errors"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/mapper"
	"admin-chatbot-be/internal/model"
	"admin-chatbot-be/internal/repository/contract"
	"admin-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type RagDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RagDocumentMapper
}

func NewRagDocumentRepository(db *gorm.DB) contract.RagDocumentRepository {
	return &RagDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewRagDocumentMapper(),
	}
}

func (r *RagDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.RagDocument) error {
	m := r.mapper.DocumentToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.DocumentToEntity(m)
	return nil
}

func (r *RagDocumentRepositoryImpl) Update(ctx context.Context, doc *entity.RagDocument) error {
	m := r.mapper.DocumentToModel(doc)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.DocumentToEntity(m)
	return nil
}

func (r *RagDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagDocument, error) {
	var m model.RagDocument
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DocumentToEntity(&m), nil
}

type RagEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RagDocumentMapper
}

func NewRagEmbeddingRepository(db *gorm.DB) contract.RagEmbeddingRepository {
	return &RagEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewRagDocumentMapper(),
	}
}

func (r *RagEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.RagEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.RagEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.EmbeddingToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.EmbeddingToEntity(m)
	}
	return nil
}

func (r *RagEmbeddingRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.RagEmbedding{}).Error
}

func (r *RagEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, vector []float32, threshold float64, limit int) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	// Cosine distance in pgvector is 1 - cosine_similarity
	type result struct {
		Content    string
		Title      string
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("rag_embeddings").
		Select("rag_embeddings.content, rag_documents.title, 1 - (rag_embeddings.embedding <=> ?) AS similarity", queryVector).
		Joins("JOIN rag_documents ON rag_documents.id = rag_embeddings.document_id").
		Where("rag_documents.deleted_at IS NULL").
		Where("1 - (rag_embeddings.embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		chunks[i] = &entity.ScoredChunk{
			Content:       res.Content,
			DocumentTitle: res.Title,
			Similarity:    res.Similarity,
		}
	}
	return chunks, nil
}
