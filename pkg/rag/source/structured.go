package source

import (
	"context"
	"fmt"
	"time"

	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/recordstore"
)

// StructuredAdapter reads one structured category from a record store.
type StructuredAdapter struct {
	schema Schema
	store  recordstore.Store
	logger logger.ILogger
	ignore []string
}

func NewStructuredAdapter(schema Schema, store recordstore.Store, keywords *intent.KeywordTable, log logger.ILogger) *StructuredAdapter {
	ignore := schema.Vocabulary()
	if keywords != nil {
		ignore = append(ignore, keywords.Keywords(schema.Category)...)
	}
	return &StructuredAdapter{
		schema: schema,
		store:  recordstore.ReadOnly(store),
		logger: log,
		ignore: ignore,
	}
}

func (a *StructuredAdapter) Category() intent.Category { return a.schema.Category }

func (a *StructuredAdapter) Filters(query string, now time.Time) Filters {
	return ParseFilters(query, now, a.ignore...)
}

func (a *StructuredAdapter) Search(ctx context.Context, queryText string, filters Filters, limit int) ([]recordstore.Record, error) {
	table := a.schema.SelectTable(queryText)
	if limit <= 0 {
		limit = table.Limit
	}

	q := a.buildQuery(table, filters)
	q.Limit = limit

	rows, err := a.store.Select(ctx, table.Name, q)
	if err == nil {
		a.logger.Info("SOURCE", "Records retrieved", map[string]interface{}{
			"category": a.schema.Category, "table": table.Name, "count": len(rows),
		})
		return rows, nil
	}
	if table.Name == a.schema.DefaultTable || ctx.Err() != nil {
		return nil, err
	}

	a.logger.Warn("SOURCE", "Table search failed, retrying default table", map[string]interface{}{
		"category": a.schema.Category, "table": table.Name, "error": err.Error(),
	})
	fallback := a.schema.Table(a.schema.DefaultTable)
	q = a.buildQuery(fallback, filters)
	q.Limit = limit
	rows, ferr := a.store.Select(ctx, fallback.Name, q)
	if ferr != nil {
		return nil, fmt.Errorf("%w (fallback to %s: %v)", err, fallback.Name, ferr)
	}
	return rows, nil
}

func (a *StructuredAdapter) SearchPaginated(ctx context.Context, queryText string, page, pageSize int) (*Page, error) {
	page, pageSize = normalizePage(page, pageSize)
	table := a.schema.SelectTable(queryText)
	filters := a.Filters(queryText, time.Now())

	q := a.buildQuery(table, filters)
	total, err := a.store.Count(ctx, table.Name, q)
	if err != nil {
		return nil, err
	}

	q.Limit = pageSize
	q.Offset = (page - 1) * pageSize
	rows, err := a.store.Select(ctx, table.Name, q)
	if err != nil {
		return nil, err
	}

	return &Page{
		Records:  rows,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  int64(q.Offset+len(rows)) < total,
	}, nil
}

func (a *StructuredAdapter) buildQuery(table TableConfig, f Filters) recordstore.Query {
	q := recordstore.Query{OrderBy: table.OrderField, Desc: true}
	if f.HasDateRange() {
		q.Filters = append(q.Filters,
			recordstore.Gte(table.DateField, *f.Start),
			recordstore.Lte(table.DateField, *f.End),
		)
	}
	if f.Text != "" && !f.ListAll {
		for _, field := range table.SearchFields {
			q.AnyOf = append(q.AnyOf, recordstore.Contains(field, f.Text))
		}
	}
	return q
}
