package recordstore

import "context"

type readOnly struct {
	inner Store
}

// ReadOnly wraps a store so that writes fail with ErrReadOnly.
func ReadOnly(inner Store) Store {
	return &readOnly{inner: inner}
}

func (r *readOnly) Insert(ctx context.Context, table string, record Record) (Record, error) {
	return nil, ErrReadOnly
}

func (r *readOnly) Select(ctx context.Context, table string, q Query) ([]Record, error) {
	return r.inner.Select(ctx, table, q)
}

func (r *readOnly) Count(ctx context.Context, table string, q Query) (int64, error) {
	return r.inner.Count(ctx, table, q)
}

func (r *readOnly) Update(ctx context.Context, table string, filters []Filter, patch Record) ([]Record, error) {
	return nil, ErrReadOnly
}
