package recordstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool used by Postgres.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres runs Store operations against arbitrary tables through pgx.
// Table and column names are quoted with pgx.Identifier; values are always
// bound as parameters.
type Postgres struct {
	db Querier
}

func NewPostgres(db Querier) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Insert(ctx context.Context, table string, record Record) (Record, error) {
	if len(record) == 0 {
		return nil, fmt.Errorf("insert into %s: empty record", table)
	}
	cols := sortedKeys(record)
	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = ident(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = record[c]
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ident(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	rows, err := p.collect(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert into %s: no row returned", table)
	}
	return rows[0], nil
}

func (p *Postgres) Select(ctx context.Context, table string, q Query) ([]Record, error) {
	sql, args := buildSelect(table, q)
	rows, err := p.collect(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	return rows, nil
}

func (p *Postgres) Count(ctx context.Context, table string, q Query) (int64, error) {
	sql, args := buildCount(table, q)
	var total int64
	if err := p.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

func (p *Postgres) Update(ctx context.Context, table string, filters []Filter, patch Record) ([]Record, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("update %s: empty patch", table)
	}
	cols := sortedKeys(patch)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(filters))
	for i, c := range cols {
		args = append(args, patch[c])
		sets[i] = fmt.Sprintf("%s = $%d", ident(c), len(args))
	}

	where, args := buildWhere(filters, nil, args)
	sql := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", ident(table), strings.Join(sets, ", "), where)

	rows, err := p.collect(ctx, sql, args)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	return rows, nil
}

func (p *Postgres) collect(ctx context.Context, sql string, args []any) ([]Record, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(maps))
	for i, m := range maps {
		out[i] = Record(m)
	}
	return out, nil
}

func buildSelect(table string, q Query) (string, []any) {
	where, args := buildWhere(q.Filters, q.AnyOf, nil)

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(ident(table))
	sb.WriteString(where)

	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(ident(q.OrderBy))
		if q.Desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args
}

func buildCount(table string, q Query) (string, []any) {
	where, args := buildWhere(q.Filters, q.AnyOf, nil)
	return "SELECT count(*) FROM " + ident(table) + where, args
}

// buildWhere appends bound values to args and returns the WHERE clause
// (with a leading space) or "" when there is nothing to filter on.
func buildWhere(all []Filter, anyOf []Filter, args []any) (string, []any) {
	var parts []string
	for _, f := range all {
		var clause string
		clause, args = filterClause(f, args)
		parts = append(parts, clause)
	}
	if len(anyOf) > 0 {
		ors := make([]string, 0, len(anyOf))
		for _, f := range anyOf {
			var clause string
			clause, args = filterClause(f, args)
			ors = append(ors, clause)
		}
		parts = append(parts, "("+strings.Join(ors, " OR ")+")")
	}
	if len(parts) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func filterClause(f Filter, args []any) (string, []any) {
	col := ident(f.Field)
	switch f.Op {
	case OpGte:
		args = append(args, f.Value)
		return fmt.Sprintf("%s >= $%d", col, len(args)), args
	case OpLte:
		args = append(args, f.Value)
		return fmt.Sprintf("%s <= $%d", col, len(args)), args
	case OpContains:
		args = append(args, "%"+escapeLike(fmt.Sprint(f.Value))+"%")
		return fmt.Sprintf("%s::text ILIKE $%d", col, len(args)), args
	default:
		args = append(args, f.Value)
		return fmt.Sprintf("%s = $%d", col, len(args)), args
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func sortedKeys(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
