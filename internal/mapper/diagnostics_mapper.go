package mapper

import (
	"encoding/json"

	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type DiagnosticsMapper struct{}

func NewDiagnosticsMapper() *DiagnosticsMapper {
	return &DiagnosticsMapper{}
}

func (m *DiagnosticsMapper) AttemptToModel(a *entity.RetrievalAttempt) *model.RetrievedContext {
	if a == nil {
		return nil
	}
	return &model.RetrievedContext{
		Id:              a.Id,
		SessionId:       a.SessionId,
		AdminId:         a.AdminId,
		SourceType:      a.SourceType,
		QueryText:       a.QueryText,
		Payload:         toJSON(a.Payload),
		RecordCount:     a.RecordCount,
		ErrorMessage:    a.ErrorMessage,
		RetrievalTimeMs: a.RetrievalTimeMs,
		CreatedAt:       a.CreatedAt,
	}
}

func (m *DiagnosticsMapper) AttemptToEntity(r *model.RetrievedContext) *entity.RetrievalAttempt {
	if r == nil {
		return nil
	}
	return &entity.RetrievalAttempt{
		Id:              r.Id,
		SessionId:       r.SessionId,
		AdminId:         r.AdminId,
		SourceType:      r.SourceType,
		QueryText:       r.QueryText,
		Payload:         fromJSON(r.Payload),
		RecordCount:     r.RecordCount,
		ErrorMessage:    r.ErrorMessage,
		RetrievalTimeMs: r.RetrievalTimeMs,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *DiagnosticsMapper) AuditToModel(e *entity.AuditEvent) *model.AuditLog {
	if e == nil {
		return nil
	}
	return &model.AuditLog{
		Id:        e.Id,
		AdminId:   e.AdminId,
		SessionId: e.SessionId,
		Action:    e.Action,
		Details:   toJSON(e.Details),
		CreatedAt: e.CreatedAt,
	}
}

func (m *DiagnosticsMapper) AuditToEntity(l *model.AuditLog) *entity.AuditEvent {
	if l == nil {
		return nil
	}
	return &entity.AuditEvent{
		Id:        l.Id,
		AdminId:   l.AdminId,
		SessionId: l.SessionId,
		Action:    l.Action,
		Details:   fromJSON(l.Details),
		CreatedAt: l.CreatedAt,
	}
}

// toJSON never fails the write: an unencodable payload is replaced by a marker.
func toJSON(v map[string]interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(map[string]interface{}{"marshal_error": err.Error()})
	}
	return datatypes.JSON(b)
}

func fromJSON(raw datatypes.JSON) map[string]interface{} {
	out := map[string]interface{}{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
