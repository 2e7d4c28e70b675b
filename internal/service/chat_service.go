package service

import (
	"context"
	"fmt"
	"time"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/internal/dto"
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/pkg/events"
	"admin-chatbot-be/pkg/rag/audit"
	"admin-chatbot-be/pkg/rag/executor"

	"github.com/google/uuid"
)

type IChatService interface {
	SendMessage(ctx context.Context, adminId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

// PipelineRunner answers one query inside a session. It always produces a
// response.
type PipelineRunner interface {
	Run(ctx context.Context, sessionId, adminId uuid.UUID, query string) *executor.Result
}

type chatService struct {
	sessions  ISessionService
	pipeline  PipelineRunner
	recorder  audit.Recorder
	publisher events.Publisher
	logger    logger.ILogger
	now       func() time.Time
}

func NewChatService(
	sessions ISessionService,
	pipeline PipelineRunner,
	recorder audit.Recorder,
	publisher events.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:  sessions,
		pipeline:  pipeline,
		recorder:  recorder,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (c *chatService) SendMessage(ctx context.Context, adminId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	sessionId, err := c.resolveSession(ctx, adminId, req.SessionId)
	if err != nil {
		return nil, err
	}

	c.audit(ctx, adminId, sessionId, constant.AuditUserMessageReceived, map[string]interface{}{
		"message_length": len(req.Message),
	})

	res := c.pipeline.Run(ctx, sessionId, adminId, req.Message)
	sourceType := res.Category.String()

	c.audit(ctx, adminId, sessionId, constant.AuditChatCompleted, map[string]interface{}{
		"source_type":      sourceType,
		"response_time_ms": res.ResponseTimeMs,
		"response_length":  len(res.Response),
	})

	if err := c.publisher.Publish(ctx, events.NewTurnCompleted(sessionId, adminId, sourceType, res.ResponseTimeMs, c.now())); err != nil {
		c.logger.Warn("CHAT", "Failed to publish turn event", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}

	return &dto.SendMessageResponse{
		Response:   res.Response,
		SessionId:  sessionId,
		SourceType: sourceType,
	}, nil
}

// resolveSession creates a session when none is given. An existing id is
// touched but not validated here; the pipeline owns that check.
func (c *chatService) resolveSession(ctx context.Context, adminId uuid.UUID, sessionId *uuid.UUID) (uuid.UUID, error) {
	if sessionId == nil || *sessionId == uuid.Nil {
		created, err := c.sessions.Create(ctx, adminId)
		if err != nil {
			return uuid.Nil, fmt.Errorf("start session: %w", err)
		}
		return created.SessionId, nil
	}

	if err := c.sessions.Touch(ctx, *sessionId); err != nil {
		c.logger.Warn("CHAT", "Failed to touch session", map[string]interface{}{
			"session_id": *sessionId,
			"error":      err.Error(),
		})
	}
	return *sessionId, nil
}

func (c *chatService) audit(ctx context.Context, adminId, sessionId uuid.UUID, action string, details map[string]interface{}) {
	sid := sessionId
	_ = c.recorder.RecordEvent(context.WithoutCancel(ctx), &entity.AuditEvent{
		AdminId:   adminId,
		SessionId: &sid,
		Action:    action,
		Details:   details,
	})
}
