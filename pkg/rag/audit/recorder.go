// Package audit persists retrieval attempts and audit events, either inline
// or through an in-process message bus.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type Recorder interface {
	RecordAttempt(ctx context.Context, attempt *entity.RetrievalAttempt) error
	RecordEvent(ctx context.Context, event *entity.AuditEvent) error
}

const (
	KindAttempt = "retrieval_attempt"
	KindEvent   = "audit_event"
)

// Envelope is the wire form of a diagnostics record on the bus.
type Envelope struct {
	Kind    string                   `json:"kind"`
	Attempt *entity.RetrievalAttempt `json:"attempt,omitempty"`
	Event   *entity.AuditEvent       `json:"event,omitempty"`
}

func DecodeEnvelope(payload []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode diagnostics envelope: %w", err)
	}
	switch {
	case env.Kind == KindAttempt && env.Attempt != nil:
	case env.Kind == KindEvent && env.Event != nil:
	default:
		return nil, fmt.Errorf("decode diagnostics envelope: unknown kind %q", env.Kind)
	}
	return &env, nil
}

func stampAttempt(a *entity.RetrievalAttempt) {
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
}

func stampEvent(e *entity.AuditEvent) {
	if e.Id == uuid.Nil {
		e.Id = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
}

// SyncRecorder writes straight to the chatbot store.
type SyncRecorder struct {
	attempts contract.RetrievedContextRepository
	events   contract.AuditLogRepository
	logger   logger.ILogger
}

func NewSyncRecorder(attempts contract.RetrievedContextRepository, events contract.AuditLogRepository, log logger.ILogger) *SyncRecorder {
	return &SyncRecorder{attempts: attempts, events: events, logger: log}
}

func (r *SyncRecorder) RecordAttempt(ctx context.Context, attempt *entity.RetrievalAttempt) error {
	stampAttempt(attempt)
	if err := r.attempts.Create(ctx, attempt); err != nil {
		r.logger.Error("AUDIT", "Failed to save retrieval attempt", map[string]interface{}{
			"error": err.Error(), "session_id": attempt.SessionId, "source_type": attempt.SourceType,
		})
		return err
	}
	return nil
}

func (r *SyncRecorder) RecordEvent(ctx context.Context, event *entity.AuditEvent) error {
	stampEvent(event)
	if err := r.events.Create(ctx, event); err != nil {
		r.logger.Error("AUDIT", "Failed to save audit event", map[string]interface{}{
			"error": err.Error(), "action": event.Action,
		})
		return err
	}
	return nil
}

// Apply persists a decoded envelope.
func (r *SyncRecorder) Apply(ctx context.Context, env *Envelope) error {
	if env.Kind == KindAttempt {
		return r.RecordAttempt(ctx, env.Attempt)
	}
	return r.RecordEvent(ctx, env.Event)
}

// AsyncRecorder publishes records to a watermill topic and returns without
// waiting for them to be stored.
type AsyncRecorder struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewAsyncRecorder(publisher message.Publisher, topic string, log logger.ILogger) *AsyncRecorder {
	return &AsyncRecorder{publisher: publisher, topic: topic, logger: log}
}

func (r *AsyncRecorder) RecordAttempt(ctx context.Context, attempt *entity.RetrievalAttempt) error {
	stampAttempt(attempt)
	return r.publish(Envelope{Kind: KindAttempt, Attempt: attempt})
}

func (r *AsyncRecorder) RecordEvent(ctx context.Context, event *entity.AuditEvent) error {
	stampEvent(event)
	return r.publish(Envelope{Kind: KindEvent, Event: event})
}

func (r *AsyncRecorder) publish(env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		r.logger.Error("AUDIT", "Failed to encode diagnostics record", map[string]interface{}{"error": err.Error(), "kind": env.Kind})
		return err
	}
	if err := r.publisher.Publish(r.topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		r.logger.Error("AUDIT", "Failed to publish diagnostics record", map[string]interface{}{"error": err.Error(), "kind": env.Kind})
		return err
	}
	return nil
}
