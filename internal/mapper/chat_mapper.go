package mapper

import (
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) SessionToEntity(s *model.AdminSession) *entity.AdminSession {
	if s == nil {
		return nil
	}
	return &entity.AdminSession{
		SessionId:    s.SessionId,
		AdminId:      s.AdminId,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		EndedAt:      s.EndedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.AdminSession) *model.AdminSession {
	if s == nil {
		return nil
	}
	return &model.AdminSession{
		SessionId:    s.SessionId,
		AdminId:      s.AdminId,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		EndedAt:      s.EndedAt,
	}
}

// Turn Mappers

func (m *ChatMapper) TurnToEntity(h *model.ChatHistory) *entity.ChatTurn {
	if h == nil {
		return nil
	}
	return &entity.ChatTurn{
		Id:                h.Id,
		SessionId:         h.SessionId,
		AdminId:           h.AdminId,
		UserMessage:       h.UserMessage,
		AssistantResponse: h.AssistantResponse,
		SourceType:        h.SourceType,
		ResponseTimeMs:    h.ResponseTimeMs,
		TokensUsed:        h.TokensUsed,
		CreatedAt:         h.CreatedAt,
	}
}

func (m *ChatMapper) TurnToModel(t *entity.ChatTurn) *model.ChatHistory {
	if t == nil {
		return nil
	}
	return &model.ChatHistory{
		Id:                t.Id,
		SessionId:         t.SessionId,
		AdminId:           t.AdminId,
		UserMessage:       t.UserMessage,
		AssistantResponse: t.AssistantResponse,
		SourceType:        t.SourceType,
		ResponseTimeMs:    t.ResponseTimeMs,
		TokensUsed:        t.TokensUsed,
		CreatedAt:         t.CreatedAt,
	}
}

func (m *ChatMapper) TurnsToEntities(models []*model.ChatHistory) []*entity.ChatTurn {
	entities := make([]*entity.ChatTurn, len(models))
	for i, h := range models {
		entities[i] = m.TurnToEntity(h)
	}
	return entities
}
