package service

import (
	"context"
	"testing"
	"time"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/pkg/serverutils"
	"admin-chatbot-be/pkg/events"
	"admin-chatbot-be/pkg/rag/audit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(store *memStore, pub events.Publisher) *sessionService {
	uow := fakeFactory{store}.NewUnitOfWork(context.Background())
	rec := audit.NewSyncRecorder(uow.RetrievedContextRepository(), uow.AuditLogRepository(), logger.NewNop())
	return NewSessionService(fakeFactory{store}, rec, pub, logger.NewNop()).(*sessionService)
}

func TestSessionLifecycle(t *testing.T) {
	store := newMemStore()
	pub := &recordingPublisher{}
	svc := newTestSessionService(store, pub)
	ctx := context.Background()
	admin := uuid.New()

	started, err := svc.Create(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, constant.SessionStatusActive, started.Status)
	assert.Equal(t, admin, started.AdminId)

	require.NoError(t, svc.End(ctx, started.SessionId))
	got, err := svc.Get(ctx, started.SessionId)
	require.NoError(t, err)
	assert.Equal(t, constant.SessionStatusEnded, got.Status)
	require.NotNil(t, got.EndedAt)

	// Ending twice is a no-op.
	require.NoError(t, svc.End(ctx, started.SessionId))

	assert.Equal(t, []string{constant.AuditSessionStarted, constant.AuditSessionEnded}, store.actions())
	assert.Equal(t, []string{events.TypeSessionStarted, events.TypeSessionEnded}, pub.types())
}

func TestSessionNotFound(t *testing.T) {
	svc := newTestSessionService(newMemStore(), events.NopPublisher{})
	ctx := context.Background()
	missing := uuid.New()

	_, err := svc.Get(ctx, missing)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)

	assert.ErrorIs(t, svc.End(ctx, missing), serverutils.ErrNotFound)

	_, err = svc.History(ctx, missing, 10)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestSessionHistoryIsChronologicalAndLimited(t *testing.T) {
	store := newMemStore()
	svc := newTestSessionService(store, events.NopPublisher{})
	ctx := context.Background()

	started, err := svc.Create(ctx, uuid.New())
	require.NoError(t, err)

	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	for i, q := range []string{"first", "second", "third"} {
		store.turns = append(store.turns, &entity.ChatTurn{
			Id:          uuid.New(),
			SessionId:   started.SessionId,
			UserMessage: q,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	h, err := svc.History(ctx, started.SessionId, 2)
	require.NoError(t, err)
	require.Len(t, h.Turns, 2)
	assert.Equal(t, "second", h.Turns[0].UserMessage)
	assert.Equal(t, "third", h.Turns[1].UserMessage)

	got, err := svc.Get(ctx, started.SessionId)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.TurnCount)
}

func TestSessionTouchUpdatesLastActivity(t *testing.T) {
	store := newMemStore()
	svc := newTestSessionService(store, events.NopPublisher{})
	ctx := context.Background()

	started, err := svc.Create(ctx, uuid.New())
	require.NoError(t, err)

	later := started.CreatedAt.Add(time.Hour)
	svc.now = func() time.Time { return later }
	require.NoError(t, svc.Touch(ctx, started.SessionId))

	got, err := svc.Get(ctx, started.SessionId)
	require.NoError(t, err)
	assert.True(t, got.LastActivity.Equal(later))
}
