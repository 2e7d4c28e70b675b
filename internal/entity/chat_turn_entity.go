package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one user query and the response the pipeline produced for it.
type ChatTurn struct {
	Id                uuid.UUID
	SessionId         uuid.UUID
	AdminId           uuid.UUID
	UserMessage       string
	AssistantResponse string
	SourceType        string
	ResponseTimeMs    *int64
	TokensUsed        *int
	CreatedAt         time.Time
}
