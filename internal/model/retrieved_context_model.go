package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RetrievedContext struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	AdminId         uuid.UUID      `gorm:"type:uuid;not null"`
	SourceType      string         `gorm:"type:varchar(20);not null;index"`
	QueryText       string         `gorm:"type:text;not null"`
	Payload         datatypes.JSON `gorm:"type:jsonb"`
	RecordCount     int            `gorm:"not null;default:0"`
	ErrorMessage    *string        `gorm:"type:text"`
	RetrievalTimeMs int64          `gorm:"default:0"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

func (RetrievedContext) TableName() string {
	return "retrieved_context"
}
