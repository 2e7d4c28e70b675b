package recordstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSelect(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		table    string
		q        Query
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "bare",
			table:    "leads",
			q:        Query{},
			wantSQL:  `SELECT * FROM "leads"`,
			wantArgs: nil,
		},
		{
			name:  "filters, any-of, order and limit",
			table: "Course",
			q: Query{
				Filters: []Filter{Gte("createdAt", since)},
				AnyOf:   []Filter{Contains("title", "go"), Contains("description", "go")},
				OrderBy: "createdAt",
				Desc:    true,
				Limit:   10,
			},
			wantSQL:  `SELECT * FROM "Course" WHERE "createdAt" >= $1 AND ("title"::text ILIKE $2 OR "description"::text ILIKE $3) ORDER BY "createdAt" DESC LIMIT $4`,
			wantArgs: []any{since, "%go%", "%go%", 10},
		},
		{
			name:     "offset and equality",
			table:    "rms_candidates",
			q:        Query{Filters: []Filter{Eq("status", "open")}, OrderBy: "name", Limit: 5, Offset: 10},
			wantSQL:  `SELECT * FROM "rms_candidates" WHERE "status" = $1 ORDER BY "name" ASC LIMIT $2 OFFSET $3`,
			wantArgs: []any{"open", 5, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildSelect(tt.table, tt.q)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildCount(t *testing.T) {
	sql, args := buildCount("Trainer", Query{Filters: []Filter{Contains("name", "50%_off")}, Limit: 3})
	assert.Equal(t, `SELECT count(*) FROM "Trainer" WHERE "name"::text ILIKE $1`, sql)
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestIdentQuotesEmbeddedQuotes(t *testing.T) {
	assert.Equal(t, `"we""ird"`, ident(`we"ird`))
}
