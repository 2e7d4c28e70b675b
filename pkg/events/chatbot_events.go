package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeTurnCompleted  = "chat.turn_completed"
	TypeSessionStarted = "session.started"
	TypeSessionEnded   = "session.ended"
)

// Publisher delivers events to the bus. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no bus is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func NewTurnCompleted(sessionId, adminId uuid.UUID, sourceType string, responseTimeMs int64, at time.Time) Event {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id":       sessionId.String(),
			"admin_id":         adminId.String(),
			"source_type":      sourceType,
			"response_time_ms": responseTimeMs,
		},
		OccurredAt: at,
	}
}

func NewSessionStarted(sessionId, adminId uuid.UUID, at time.Time) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"admin_id":   adminId.String(),
		},
		OccurredAt: at,
	}
}

func NewSessionEnded(sessionId, adminId uuid.UUID, at time.Time) Event {
	return BaseEvent{
		Type: TypeSessionEnded,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"admin_id":   adminId.String(),
		},
		OccurredAt: at,
	}
}
