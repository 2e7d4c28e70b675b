package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/pkg/rag/audit"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testTopic = "DIAGNOSTICS_TEST"

func TestConsumerStoresAsyncRecords(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newMemStore()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(pubSub, testTopic, fakeFactory{store}, logger.NewNop())
	require.NoError(t, consumer.Consume(ctx))

	rec := audit.NewAsyncRecorder(pubSub, testTopic, logger.NewNop())
	sid := uuid.New()
	require.NoError(t, rec.RecordAttempt(ctx, &entity.RetrievalAttempt{SessionId: sid, SourceType: "crm", RecordCount: 2}))
	require.NoError(t, rec.RecordEvent(ctx, &entity.AuditEvent{SessionId: &sid, Action: "no_data_found"}))

	// Poison messages are acked and dropped.
	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("{"))))

	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.attempts) == 1 && len(store.events) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "crm", store.attempts[0].SourceType)
	assert.Equal(t, "no_data_found", store.events[0].Action)

	require.NoError(t, pubSub.Close())
}

func TestConsumerRetriesThenGivesUp(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newMemStore()
	store.eventErrs = 1
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, NewConsumerService(pubSub, testTopic, fakeFactory{store}, logger.NewNop()).Consume(ctx))

	payload, err := json.Marshal(audit.Envelope{Kind: audit.KindEvent, Event: &entity.AuditEvent{Id: uuid.New(), Action: "llm_error"}})
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), payload)))

	// First delivery fails and is nacked; the redelivery succeeds.
	assert.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.events) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, pubSub.Close())
}
