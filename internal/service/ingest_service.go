package service

import (
	"context"
	"fmt"
	"time"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/repository/specification"
	"admin-chatbot-be/internal/repository/unitofwork"
	"admin-chatbot-be/pkg/embedding"
	"admin-chatbot-be/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	ingestChunkSize   = 1500
	ingestOverlap     = 200
	ingestConcurrency = 4
)

type IngestResult struct {
	DocumentId uuid.UUID
	Chunks     int
	Replaced   bool
}

type IIngestService interface {
	// Ingest stores content as a document keyed by source. Re-ingesting the
	// same source replaces its previous chunks.
	Ingest(ctx context.Context, title, source, content string) (*IngestResult, error)
}

type ingestService struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	logger     logger.ILogger
}

func NewIngestService(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, log logger.ILogger) IIngestService {
	return &ingestService{uowFactory: uowFactory, embedder: embedder, logger: log}
}

func (s *ingestService) Ingest(ctx context.Context, title, source, content string) (*IngestResult, error) {
	chunks := utils.SplitText(content, ingestChunkSize, ingestOverlap)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%s: document is empty", source)
	}

	vectors, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	doc, err := uow.RagDocumentRepository().FindOne(ctx, specification.Filter("source", source))
	if err != nil {
		return nil, err
	}

	replaced := doc != nil
	if replaced {
		doc.Title = title
		doc.Content = content
		doc.UpdatedAt = &now
		if err := uow.RagDocumentRepository().Update(ctx, doc); err != nil {
			return nil, err
		}
		if err := uow.RagEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
			return nil, err
		}
	} else {
		doc = &entity.RagDocument{
			Id:        uuid.New(),
			Title:     title,
			Source:    source,
			Content:   content,
			CreatedAt: now,
		}
		if err := uow.RagDocumentRepository().Create(ctx, doc); err != nil {
			return nil, err
		}
	}

	embeddings := make([]*entity.RagEmbedding, len(chunks))
	for i, chunk := range chunks {
		embeddings[i] = &entity.RagEmbedding{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			Content:    chunk,
			Embedding:  vectors[i],
			ChunkIndex: i,
			CreatedAt:  now,
		}
	}
	if err := uow.RagEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("INGEST", "Document ingested", map[string]interface{}{
		"source":   source,
		"chunks":   len(chunks),
		"replaced": replaced,
	})
	return &IngestResult{DocumentId: doc.Id, Chunks: len(chunks), Replaced: replaced}, nil
}

// embedChunks embeds chunks in parallel, preserving their order.
func (s *ingestService) embedChunks(ctx context.Context, chunks []string) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			res, err := s.embedder.Generate(gctx, chunk, embedding.TaskRetrievalDocument)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			vectors[i] = res.Embedding.Values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
