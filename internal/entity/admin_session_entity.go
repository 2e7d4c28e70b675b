package entity

import (
	"time"

	"github.com/google/uuid"
)

type AdminSession struct {
	SessionId    uuid.UUID
	AdminId      uuid.UUID
	Status       string
	CreatedAt    time.Time
	LastActivity time.Time
	EndedAt      *time.Time
}

func (s *AdminSession) IsActive() bool {
	return s.Status == "active"
}
