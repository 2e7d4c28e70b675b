package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatHistory stores one user message together with the assistant reply.
type ChatHistory struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         uuid.UUID `gorm:"type:uuid;not null;index"`
	AdminId           uuid.UUID `gorm:"type:uuid;not null;index"`
	UserMessage       string    `gorm:"type:text;not null"`
	AssistantResponse string    `gorm:"type:text;not null"`
	SourceType        string    `gorm:"type:varchar(20);not null;index"`
	ResponseTimeMs    *int64
	TokensUsed        *int
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (ChatHistory) TableName() string {
	return "chat_history"
}
