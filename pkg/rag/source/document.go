package source

import (
	"context"
	"fmt"
	"time"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/pkg/embedding"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/recordstore"
)

type ChunkSearcher interface {
	SearchSimilar(ctx context.Context, vector []float32, threshold float64, limit int) ([]*entity.ScoredChunk, error)
}

// DocumentAdapter answers rag queries by vector similarity over ingested
// document chunks.
type DocumentAdapter struct {
	embedder  embedding.EmbeddingProvider
	searcher  ChunkSearcher
	threshold float64
	count     int
}

func NewDocumentAdapter(embedder embedding.EmbeddingProvider, searcher ChunkSearcher, threshold float64, count int) *DocumentAdapter {
	if count <= 0 {
		count = 3
	}
	return &DocumentAdapter{embedder: embedder, searcher: searcher, threshold: threshold, count: count}
}

func (d *DocumentAdapter) Category() intent.Category { return intent.RAG }

// Filters is a no-op; documents are matched by meaning, not by columns.
func (d *DocumentAdapter) Filters(query string, now time.Time) Filters { return Filters{} }

func (d *DocumentAdapter) Search(ctx context.Context, queryText string, _ Filters, limit int) ([]recordstore.Record, error) {
	if limit <= 0 {
		limit = d.count
	}
	chunks, err := d.search(ctx, queryText, limit)
	if err != nil {
		return []recordstore.Record{}, err
	}
	return chunksToRecords(chunks), nil
}

func (d *DocumentAdapter) SearchPaginated(ctx context.Context, queryText string, page, pageSize int) (*Page, error) {
	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	// Fetch one extra row to learn whether another page exists.
	chunks, err := d.search(ctx, queryText, offset+pageSize+1)
	if err != nil {
		return nil, err
	}

	var window []*entity.ScoredChunk
	if offset < len(chunks) {
		window = chunks[offset:]
	}
	hasMore := len(window) > pageSize
	if hasMore {
		window = window[:pageSize]
	}

	return &Page{
		Records:  chunksToRecords(window),
		Total:    int64(len(chunks)),
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	}, nil
}

func (d *DocumentAdapter) search(ctx context.Context, queryText string, limit int) ([]*entity.ScoredChunk, error) {
	emb, err := d.embedder.Generate(ctx, queryText, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	chunks, err := d.searcher.SearchSimilar(ctx, emb.Embedding.Values, d.threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return chunks, nil
}

func chunksToRecords(chunks []*entity.ScoredChunk) []recordstore.Record {
	out := make([]recordstore.Record, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, recordstore.Record{
			"content":        c.Content,
			"score":          c.Similarity,
			"document_title": c.DocumentTitle,
		})
	}
	return out
}
