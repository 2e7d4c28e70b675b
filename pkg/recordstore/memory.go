package recordstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store. Tables must be registered with Seed or
// CreateTable before they can be read; selects on unknown tables return
// ErrUnknownTable, mirroring a missing relation in Postgres.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]Record
	nextID int
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string][]Record)}
}

func (m *Memory) CreateTable(table string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table]; !ok {
		m.tables[table] = nil
	}
}

// Seed appends rows to table, creating it if necessary.
func (m *Memory) Seed(table string, rows ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.tables[table] = append(m.tables[table], copyRecord(r))
	}
	if _, ok := m.tables[table]; !ok {
		m.tables[table] = nil
	}
}

func (m *Memory) Insert(ctx context.Context, table string, record Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table]; !ok {
		return nil, fmt.Errorf("insert into %s: %w", table, ErrUnknownTable)
	}
	row := copyRecord(record)
	if _, ok := row["id"]; !ok {
		m.nextID++
		row["id"] = m.nextID
	}
	m.tables[table] = append(m.tables[table], row)
	return copyRecord(row), nil
}

func (m *Memory) Select(ctx context.Context, table string, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("select from %s: %w", table, ErrUnknownTable)
	}

	matched := make([]Record, 0, len(rows))
	for _, r := range rows {
		if matches(r, q.Filters, q.AnyOf) {
			matched = append(matched, copyRecord(r))
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(matched[i][q.OrderBy], matched[j][q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return []Record{}, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (m *Memory) Count(ctx context.Context, table string, q Query) (int64, error) {
	q.Limit, q.Offset, q.OrderBy = 0, 0, ""
	rows, err := m.Select(ctx, table, q)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (m *Memory) Update(ctx context.Context, table string, filters []Filter, patch Record) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("update %s: %w", table, ErrUnknownTable)
	}
	var updated []Record
	for _, r := range rows {
		if !matches(r, filters, nil) {
			continue
		}
		for k, v := range patch {
			r[k] = v
		}
		updated = append(updated, copyRecord(r))
	}
	return updated, nil
}

func matches(r Record, all []Filter, anyOf []Filter) bool {
	for _, f := range all {
		if !matchFilter(r, f) {
			return false
		}
	}
	if len(anyOf) == 0 {
		return true
	}
	for _, f := range anyOf {
		if matchFilter(r, f) {
			return true
		}
	}
	return false
}

func matchFilter(r Record, f Filter) bool {
	v, ok := r[f.Field]
	if !ok || v == nil {
		return false
	}
	switch f.Op {
	case OpGte:
		return compare(v, f.Value) >= 0
	case OpLte:
		return compare(v, f.Value) <= 0
	case OpContains:
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(fmt.Sprint(f.Value)))
	default:
		return compare(v, f.Value) == 0
	}
}

// compare orders times, numbers and strings; mixed or unknown types fall back
// to their string form.
func compare(a, b interface{}) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func copyRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
