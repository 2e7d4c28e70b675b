// Package source holds the retrieval adapters the pipeline dispatches to,
// one per routable category.
package source

import (
	"context"
	"time"

	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/recordstore"
)

type Adapter interface {
	Category() intent.Category
	// Filters parses query with the adapter's own vocabulary.
	Filters(query string, now time.Time) Filters
	// Search returns at most limit records; limit <= 0 uses the adapter default.
	Search(ctx context.Context, queryText string, filters Filters, limit int) ([]recordstore.Record, error)
	SearchPaginated(ctx context.Context, queryText string, page, pageSize int) (*Page, error)
}

type Page struct {
	Records  []recordstore.Record `json:"records"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	HasMore  bool                 `json:"has_more"`
}

// Registry is the fixed category to adapter table.
type Registry struct {
	adapters map[intent.Category]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[intent.Category]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Category()] = a
	}
	return r
}

func (r *Registry) Get(c intent.Category) (Adapter, bool) {
	a, ok := r.adapters[c]
	return a, ok
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
