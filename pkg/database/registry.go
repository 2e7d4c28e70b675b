package database

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
)

// Registry owns the process-wide store clients. Each client is built on first
// use and shared by every request afterwards; a failed construction is cached
// and returned to all callers.
type Registry struct {
	chatbotDSN string
	sourceDSN  string

	chatbotOnce sync.Once
	chatbotDB   *gorm.DB
	chatbotErr  error

	sourceOnce sync.Once
	sourcePool *pgxpool.Pool
	sourceErr  error

	openChatbot func(dsn string) (*gorm.DB, error)
	openSource  func(ctx context.Context, dsn string) (*pgxpool.Pool, error)
}

func NewRegistry(chatbotDSN, sourceDSN string) *Registry {
	return &Registry{
		chatbotDSN:  chatbotDSN,
		sourceDSN:   sourceDSN,
		openChatbot: NewGormDBFromDSN,
		openSource:  NewPgxPool,
	}
}

// Chatbot returns the read/write store for sessions, turns and diagnostics.
func (r *Registry) Chatbot() (*gorm.DB, error) {
	r.chatbotOnce.Do(func() {
		r.chatbotDB, r.chatbotErr = r.openChatbot(r.chatbotDSN)
	})
	return r.chatbotDB, r.chatbotErr
}

// Source returns the read-only pool for the structured business tables.
func (r *Registry) Source(ctx context.Context) (*pgxpool.Pool, error) {
	r.sourceOnce.Do(func() {
		r.sourcePool, r.sourceErr = r.openSource(ctx, r.sourceDSN)
	})
	return r.sourcePool, r.sourceErr
}

func (r *Registry) Close() {
	if r.sourcePool != nil {
		r.sourcePool.Close()
	}
	if r.chatbotDB != nil {
		if sqlDB, err := r.chatbotDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
