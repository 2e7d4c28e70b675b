package service

import (
	"context"
	"fmt"
	"time"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/internal/dto"
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/pkg/serverutils"
	"admin-chatbot-be/internal/repository/specification"
	"admin-chatbot-be/internal/repository/unitofwork"
	"admin-chatbot-be/pkg/events"
	"admin-chatbot-be/pkg/rag/audit"

	"github.com/google/uuid"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type ISessionService interface {
	Create(ctx context.Context, adminId uuid.UUID) (*dto.StartSessionResponse, error)
	End(ctx context.Context, sessionId uuid.UUID) error
	Touch(ctx context.Context, sessionId uuid.UUID) error
	Get(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	History(ctx context.Context, sessionId uuid.UUID, limit int) (*dto.SessionHistoryResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	recorder   audit.Recorder
	publisher  events.Publisher
	logger     logger.ILogger
	now        func() time.Time
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	recorder audit.Recorder,
	publisher events.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		recorder:   recorder,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, adminId uuid.UUID) (*dto.StartSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	session := entity.AdminSession{
		SessionId:    uuid.New(),
		AdminId:      adminId,
		Status:       constant.SessionStatusActive,
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("SESSION", "Session started", map[string]interface{}{
		"session_id": session.SessionId,
		"admin_id":   adminId,
	})
	s.audit(ctx, adminId, session.SessionId, constant.AuditSessionStarted, nil)
	s.publish(ctx, events.NewSessionStarted(session.SessionId, adminId, now))

	return &dto.StartSessionResponse{
		SessionId: session.SessionId,
		AdminId:   session.AdminId,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
	}, nil
}

// End marks a session as ended. Ending an already ended session is a no-op.
func (s *sessionService) End(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.find(ctx, uow, sessionId)
	if err != nil {
		return err
	}
	if !session.IsActive() {
		return nil
	}

	now := s.now()
	session.Status = constant.SessionStatusEnded
	session.EndedAt = &now
	session.LastActivity = now
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	s.logger.Info("SESSION", "Session ended", map[string]interface{}{"session_id": sessionId})
	s.audit(ctx, session.AdminId, sessionId, constant.AuditSessionEnded, nil)
	s.publish(ctx, events.NewSessionEnded(sessionId, session.AdminId, now))
	return nil
}

func (s *sessionService) Touch(ctx context.Context, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionRepository().Touch(ctx, sessionId, s.now())
}

func (s *sessionService) Get(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.find(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	count, err := uow.ChatHistoryRepository().Count(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, fmt.Errorf("count turns: %w", err)
	}

	return &dto.SessionResponse{
		SessionId:    session.SessionId,
		AdminId:      session.AdminId,
		Status:       session.Status,
		CreatedAt:    session.CreatedAt,
		LastActivity: session.LastActivity,
		EndedAt:      session.EndedAt,
		TurnCount:    count,
	}, nil
}

// History returns up to limit turns, oldest first.
func (s *sessionService) History(ctx context.Context, sessionId uuid.UUID, limit int) (*dto.SessionHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.find(ctx, uow, sessionId); err != nil {
		return nil, err
	}

	turns, err := uow.ChatHistoryRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	result := make([]*dto.ChatTurnResponse, 0, len(turns))
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		result = append(result, &dto.ChatTurnResponse{
			Id:                t.Id,
			UserMessage:       t.UserMessage,
			AssistantResponse: t.AssistantResponse,
			SourceType:        t.SourceType,
			ResponseTimeMs:    t.ResponseTimeMs,
			CreatedAt:         t.CreatedAt,
		})
	}

	return &dto.SessionHistoryResponse{SessionId: sessionId, Turns: result}, nil
}

func (s *sessionService) find(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.AdminSession, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionId, serverutils.ErrNotFound)
	}
	return session, nil
}

func (s *sessionService) audit(ctx context.Context, adminId, sessionId uuid.UUID, action string, details map[string]interface{}) {
	sid := sessionId
	_ = s.recorder.RecordEvent(context.WithoutCancel(ctx), &entity.AuditEvent{
		AdminId:   adminId,
		SessionId: &sid,
		Action:    action,
		Details:   details,
	})
}

func (s *sessionService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("SESSION", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
