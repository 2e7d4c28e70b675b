package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message   string     `json:"message" validate:"required,max=4000"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
}

type SendMessageResponse struct {
	Response   string    `json:"response"`
	SessionId  uuid.UUID `json:"session_id"`
	SourceType string    `json:"source_type"`
}

type ChatTurnResponse struct {
	Id                uuid.UUID `json:"id"`
	UserMessage       string    `json:"user_message"`
	AssistantResponse string    `json:"assistant_response"`
	SourceType        string    `json:"source_type"`
	ResponseTimeMs    *int64    `json:"response_time_ms,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
