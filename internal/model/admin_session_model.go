package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminSession struct {
	SessionId    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdminId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active';index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	LastActivity time.Time  `gorm:"not null"`
	EndedAt      *time.Time `gorm:"default:null"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}
