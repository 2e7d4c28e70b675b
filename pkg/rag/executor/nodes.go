package executor

import (
	"context"
	"errors"
	"time"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/repository/specification"
	"admin-chatbot-be/pkg/rag/gate"
	"admin-chatbot-be/pkg/rag/response"
	"admin-chatbot-be/pkg/recordstore"
)

const (
	SessionNotFoundMessage = "Session not found."
	SessionInactiveMessage = "Session is not active."
	SessionErrorMessage    = "System error during session validation."
	FallbackMessage        = "An unexpected error occurred. Please try again."
)

type Node interface {
	Name() string
	Run(ctx context.Context, s *State) Step
}

type validateSessionNode struct{ p *Pipeline }

func (validateSessionNode) Name() string { return "validate_session" }

func (n validateSessionNode) Run(ctx context.Context, s *State) Step {
	session, err := n.p.deps.Sessions.FindOne(ctx, specification.BySessionID{SessionID: s.SessionId})
	switch {
	case err != nil:
		n.p.logger.Error("PIPELINE", "Session validation failed", map[string]interface{}{
			"error": err.Error(), "session_id": s.SessionId,
		})
		n.p.audit(ctx, s, constant.AuditSessionValidationError, map[string]interface{}{
			"error": err.Error(), "session_id": s.SessionId.String(),
		})
		return Terminal(s, SessionErrorMessage)
	case session == nil:
		n.p.audit(ctx, s, constant.AuditSessionNotFound, map[string]interface{}{"session_id": s.SessionId.String()})
		return Terminal(s, SessionNotFoundMessage)
	case !session.IsActive():
		n.p.audit(ctx, s, constant.AuditSessionInactive, map[string]interface{}{
			"session_id": s.SessionId.String(), "status": session.Status,
		})
		return Terminal(s, SessionInactiveMessage)
	}
	return Continue(s)
}

type loadHistoryNode struct{ p *Pipeline }

func (loadHistoryNode) Name() string { return "load_history" }

func (n loadHistoryNode) Run(ctx context.Context, s *State) Step {
	_, msgs, err := n.p.deps.History.Load(ctx, s.SessionId)
	if err != nil {
		n.p.logger.Warn("PIPELINE", "History unavailable, continuing without it", map[string]interface{}{
			"error": err.Error(), "session_id": s.SessionId,
		})
		msgs = nil
	}
	s.History = msgs
	return Continue(s)
}

type classifyNode struct{ p *Pipeline }

func (classifyNode) Name() string { return "classify" }

func (n classifyNode) Run(ctx context.Context, s *State) Step {
	res := n.p.deps.Classifier.Classify(ctx, s.Query, s.History)
	s.Category, s.Method = res.Category, res.Method
	n.p.logger.Info("PIPELINE", "Query classified", map[string]interface{}{
		"category": res.Category, "method": res.Method,
	})
	if res.Response != "" {
		return Terminal(s, res.Response)
	}
	return Continue(s)
}

type dispatchNode struct{ p *Pipeline }

func (dispatchNode) Name() string { return "dispatch" }

func (n dispatchNode) Run(ctx context.Context, s *State) Step {
	if !s.Category.Retrievable() {
		return Continue(s)
	}
	adapter, ok := n.p.deps.Sources.Get(s.Category)
	if !ok {
		n.p.logger.Warn("PIPELINE", "No adapter registered for category", map[string]interface{}{"category": s.Category})
		return Continue(s)
	}

	ctx, cancel := withTimeout(ctx, n.p.deps.Config.RetrievalTimeout)
	defer cancel()

	started := n.p.now()
	records, err := adapter.Search(ctx, s.Query, adapter.Filters(s.Query, started), 0)
	elapsed := n.p.now().Sub(started)

	if err != nil || records == nil {
		records = []recordstore.Record{}
	}
	s.Evidence = records

	if err == nil && len(records) == 0 {
		return Continue(s)
	}

	attempt := &entity.RetrievalAttempt{
		SessionId:       s.SessionId,
		AdminId:         s.AdminId,
		SourceType:      s.SourceType(),
		QueryText:       s.Query,
		RecordCount:     len(records),
		RetrievalTimeMs: elapsed.Milliseconds(),
	}
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "retrieval timed out: " + msg
		}
		attempt.Payload = map[string]interface{}{"error": msg}
		attempt.ErrorMessage = &msg
		n.p.logger.Error("PIPELINE", "Retrieval failed", map[string]interface{}{
			"error": msg, "category": s.Category,
		})
	} else {
		attempt.Payload = map[string]interface{}{"data": records}
	}
	n.p.recordAttempt(ctx, s, attempt)
	return Continue(s)
}

type gateNode struct{ p *Pipeline }

func (gateNode) Name() string { return "gate" }

func (n gateNode) Run(ctx context.Context, s *State) Step {
	d := gate.EvaluateState(s.Response != "", s.Category, s.Evidence, s.Query)
	if d.Passed() {
		return Continue(s)
	}

	n.p.audit(ctx, s, d.AuditAction, map[string]interface{}{
		"source_type": s.SourceType(),
		"query":       truncate(s.Query, 100),
	})

	if d.Outcome == gate.NoData && !s.AttemptRecorded {
		msg := "No data found"
		n.p.recordAttempt(ctx, s, &entity.RetrievalAttempt{
			SessionId:    s.SessionId,
			AdminId:      s.AdminId,
			SourceType:   s.SourceType(),
			QueryText:    s.Query,
			Payload:      map[string]interface{}{"status": constant.NoDataFoundCode},
			RecordCount:  0,
			ErrorMessage: &msg,
		})
	}
	return Terminal(s, d.Message)
}

type synthesizeNode struct{ p *Pipeline }

func (synthesizeNode) Name() string { return "synthesize" }

func (n synthesizeNode) Run(ctx context.Context, s *State) Step {
	ctx, cancel := withTimeout(ctx, n.p.deps.Config.SynthesisTimeout)
	defer cancel()

	answer, err := n.p.deps.Synthesizer.Synthesize(ctx, s.Query, s.Evidence, s.Category, s.History)
	if err != nil {
		n.p.audit(ctx, s, constant.AuditLLMError, map[string]interface{}{
			"error":       err.Error(),
			"source_type": s.SourceType(),
			"query":       truncate(s.Query, 100),
		})
		return Terminal(s, response.LLMErrorMessage)
	}
	return Terminal(s, answer)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
