package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/repository/contract"
	"admin-chatbot-be/internal/repository/specification"
	"admin-chatbot-be/internal/repository/unitofwork"
	"admin-chatbot-be/pkg/events"

	"github.com/google/uuid"
)

// memStore backs every fake repository handed out by fakeFactory.
type memStore struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*entity.AdminSession
	turns     []*entity.ChatTurn
	attempts  []*entity.RetrievalAttempt
	events    []*entity.AuditEvent
	eventErrs int
	docs      []*entity.RagDocument
	chunks    []*entity.RagEmbedding
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[uuid.UUID]*entity.AdminSession)}
}

func (m *memStore) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.Action
	}
	return out
}

type fakeFactory struct{ store *memStore }

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: f.store}
}

type fakeUoW struct{ store *memStore }

func (u *fakeUoW) Begin(ctx context.Context) error { return nil }
func (u *fakeUoW) Commit() error                   { return nil }
func (u *fakeUoW) Rollback() error                 { return nil }

func (u *fakeUoW) SessionRepository() contract.SessionRepository { return sessionRepo{u.store} }
func (u *fakeUoW) ChatHistoryRepository() contract.ChatHistoryRepository {
	return turnRepo{u.store}
}
func (u *fakeUoW) RetrievedContextRepository() contract.RetrievedContextRepository {
	return attemptRepo{u.store}
}
func (u *fakeUoW) AuditLogRepository() contract.AuditLogRepository { return eventRepo{u.store} }
func (u *fakeUoW) RagDocumentRepository() contract.RagDocumentRepository {
	return docRepo{u.store}
}
func (u *fakeUoW) RagEmbeddingRepository() contract.RagEmbeddingRepository {
	return chunkRepo{u.store}
}

func sessionIDFrom(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if b, ok := s.(specification.BySessionID); ok {
			return b.SessionID, true
		}
	}
	return uuid.Nil, false
}

type sessionRepo struct{ m *memStore }

func (r sessionRepo) Create(ctx context.Context, s *entity.AdminSession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *s
	r.m.sessions[s.SessionId] = &cp
	return nil
}

func (r sessionRepo) Update(ctx context.Context, s *entity.AdminSession) error {
	return r.Create(ctx, s)
}

func (r sessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.sessions[id]; ok {
		s.LastActivity = at
	}
	return nil
}

func (r sessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AdminSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	id, _ := sessionIDFrom(specs)
	s, ok := r.m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r sessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminSession, error) {
	return nil, errors.New("not implemented")
}

type turnRepo struct{ m *memStore }

func (r turnRepo) Create(ctx context.Context, t *entity.ChatTurn) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.turns = append(r.m.turns, t)
	return nil
}

// FindAll honours BySessionID, a created_at DESC order and Pagination.Limit.
func (r turnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatTurn, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	id, _ := sessionIDFrom(specs)
	var out []*entity.ChatTurn
	for _, t := range r.m.turns {
		if t.SessionId == id {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok && p.Limit > 0 && len(out) > p.Limit {
			out = out[:p.Limit]
		}
	}
	return out, nil
}

func (r turnRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type attemptRepo struct{ m *memStore }

func (r attemptRepo) Create(ctx context.Context, a *entity.RetrievalAttempt) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.attempts = append(r.m.attempts, a)
	return nil
}

func (r attemptRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalAttempt, error) {
	return r.m.attempts, nil
}

type eventRepo struct{ m *memStore }

func (r eventRepo) Create(ctx context.Context, e *entity.AuditEvent) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.eventErrs > 0 {
		r.m.eventErrs--
		return errors.New("db unavailable")
	}
	r.m.events = append(r.m.events, e)
	return nil
}

func (r eventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEvent, error) {
	return r.m.events, nil
}

type recordingPublisher struct {
	mu  sync.Mutex
	got []events.Event
	err error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.got))
	for i, e := range p.got {
		out[i] = e.EventType()
	}
	return out
}

type docRepo struct{ m *memStore }

func (r docRepo) Create(ctx context.Context, d *entity.RagDocument) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *d
	r.m.docs = append(r.m.docs, &cp)
	return nil
}

func (r docRepo) Update(ctx context.Context, d *entity.RagDocument) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, existing := range r.m.docs {
		if existing.Id == d.Id {
			cp := *d
			r.m.docs[i] = &cp
		}
	}
	return nil
}

// FindOne only understands the source filter used by ingestion.
func (r docRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagDocument, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range specs {
		f, ok := s.(specification.FilterBy)
		if !ok || f.Field != "source" {
			continue
		}
		for _, d := range r.m.docs {
			if d.Source == f.Value {
				cp := *d
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type chunkRepo struct{ m *memStore }

func (r chunkRepo) CreateBulk(ctx context.Context, e []*entity.RagEmbedding) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.chunks = append(r.m.chunks, e...)
	return nil
}

func (r chunkRepo) DeleteByDocumentId(ctx context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	kept := r.m.chunks[:0]
	for _, c := range r.m.chunks {
		if c.DocumentId != id {
			kept = append(kept, c)
		}
	}
	r.m.chunks = kept
	return nil
}

func (r chunkRepo) SearchSimilar(ctx context.Context, vector []float32, threshold float64, limit int) ([]*entity.ScoredChunk, error) {
	return nil, nil
}
