// Package recordstore is a minimal table-oriented store used for the business
// sources the chatbot reads from. Tables are addressed by name and rows are
// plain column maps, so new source tables only need configuration.
package recordstore

import (
	"context"
	"errors"
)

var (
	ErrReadOnly     = errors.New("recordstore: store is read-only")
	ErrUnknownTable = errors.New("recordstore: unknown table")
)

// Record is one row keyed by column name.
type Record map[string]interface{}

type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpLte Op = "lte"
	// OpContains is a case-insensitive substring match (ILIKE %v%).
	OpContains Op = "contains"
)

type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

func Eq(field string, v interface{}) Filter { return Filter{Field: field, Op: OpEq, Value: v} }
func Gte(field string, v interface{}) Filter { return Filter{Field: field, Op: OpGte, Value: v} }
func Lte(field string, v interface{}) Filter { return Filter{Field: field, Op: OpLte, Value: v} }
func Contains(field string, v string) Filter { return Filter{Field: field, Op: OpContains, Value: v} }

// Query selects rows matching every Filter and, when AnyOf is non-empty, at
// least one of AnyOf.
type Query struct {
	Filters []Filter
	AnyOf   []Filter
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

type Store interface {
	Insert(ctx context.Context, table string, record Record) (Record, error)
	Select(ctx context.Context, table string, q Query) ([]Record, error)
	Count(ctx context.Context, table string, q Query) (int64, error)
	Update(ctx context.Context, table string, filters []Filter, patch Record) ([]Record, error)
}
