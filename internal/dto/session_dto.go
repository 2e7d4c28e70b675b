package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	AdminId   uuid.UUID `json:"admin_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type EndSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

type SessionResponse struct {
	SessionId    uuid.UUID  `json:"session_id"`
	AdminId      uuid.UUID  `json:"admin_id"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActivity time.Time  `json:"last_activity"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	TurnCount    int64      `json:"turn_count"`
}

type SessionHistoryResponse struct {
	SessionId uuid.UUID           `json:"session_id"`
	Turns     []*ChatTurnResponse `json:"turns"`
}
