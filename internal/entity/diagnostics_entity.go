package entity

import (
	"time"

	"github.com/google/uuid"
)

// RetrievalAttempt records one dispatch to a source adapter.
type RetrievalAttempt struct {
	Id              uuid.UUID              `json:"id"`
	SessionId       uuid.UUID              `json:"session_id"`
	AdminId         uuid.UUID              `json:"admin_id"`
	SourceType      string                 `json:"source_type"`
	QueryText       string                 `json:"query_text"`
	Payload         map[string]interface{} `json:"payload"`
	RecordCount     int                    `json:"record_count"`
	ErrorMessage    *string                `json:"error_message,omitempty"`
	RetrievalTimeMs int64                  `json:"retrieval_time_ms"`
	CreatedAt       time.Time              `json:"created_at"`
}

// AuditEvent is a control-flow occurrence worth keeping for diagnosis.
type AuditEvent struct {
	Id        uuid.UUID              `json:"id"`
	AdminId   uuid.UUID              `json:"admin_id"`
	SessionId *uuid.UUID             `json:"session_id,omitempty"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"created_at"`
}
