package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/internal/entity"
	"admin-chatbot-be/internal/pkg/logger"
	"admin-chatbot-be/internal/repository/specification"
	"admin-chatbot-be/pkg/llm"
	"admin-chatbot-be/pkg/rag/gate"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/rag/response"
	"admin-chatbot-be/pkg/rag/source"
	"admin-chatbot-be/pkg/recordstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakes

type sessionStub struct {
	session *entity.AdminSession
	err     error
}

func (s sessionStub) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AdminSession, error) {
	return s.session, s.err
}

type historyStub struct{ err error }

func (h historyStub) Load(ctx context.Context, id uuid.UUID) ([]*entity.ChatTurn, []llm.Message, error) {
	if h.err != nil {
		return nil, nil, h.err
	}
	return nil, []llm.Message{{Role: "user", Content: "earlier"}}, nil
}

type turnLog struct {
	mu    sync.Mutex
	turns []*entity.ChatTurn
	fails int
	calls int
}

func (t *turnLog) Create(ctx context.Context, turn *entity.ChatTurn) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	if t.fails > 0 {
		t.fails--
		return errors.New("insert failed")
	}
	t.turns = append(t.turns, turn)
	return nil
}

type recorder struct {
	mu       sync.Mutex
	attempts []*entity.RetrievalAttempt
	events   []*entity.AuditEvent
}

func (r *recorder) RecordAttempt(ctx context.Context, a *entity.RetrievalAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, a)
	return nil
}

func (r *recorder) RecordEvent(ctx context.Context, e *entity.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) actions() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

type scriptedLLM struct {
	replies map[string]string // keyed by system prompt prefix
	err     error
	calls   int
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	system := history[0].Content
	for prefix, reply := range s.replies {
		if len(system) >= len(prefix) && system[:len(prefix)] == prefix {
			return reply, nil
		}
	}
	return "", nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type panicSynth struct{}

func (panicSynth) Synthesize(context.Context, string, []recordstore.Record, intent.Category, []llm.Message) (string, error) {
	panic("nil map write")
}

type fixture struct {
	pipeline *Pipeline
	llm      *scriptedLLM
	turns    *turnLog
	rec      *recorder
	store    *recordstore.Memory
}

type option func(*Deps, *fixture)

func newFixture(t *testing.T, opts ...option) *fixture {
	t.Helper()
	table, err := intent.DefaultKeywordTable()
	require.NoError(t, err)

	f := &fixture{
		llm: &scriptedLLM{replies: map[string]string{
			"You are a router":        "general",
			"You are a helpful Edify": "1. Asha\n1. Ravi\n1. Meera",
		}},
		turns: &turnLog{},
		rec:   &recorder{},
		store: recordstore.NewMemory(),
	}
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	f.store.Seed("trainers",
		recordstore.Record{"id": 1, "trainer_name": "Asha", "created_at": base},
		recordstore.Record{"id": 2, "trainer_name": "Ravi", "created_at": base.Add(time.Hour)},
		recordstore.Record{"id": 3, "trainer_name": "Meera", "created_at": base.Add(2 * time.Hour)},
	)
	f.store.CreateTable("leads")
	f.store.CreateTable("rms_candidates")

	log := logger.NewNop()
	deps := Deps{
		Sessions:   sessionStub{session: &entity.AdminSession{SessionId: uuid.New(), Status: constant.SessionStatusActive}},
		History:    historyStub{},
		Classifier: intent.NewClassifier(table, f.llm, time.Second, log),
		Sources: source.NewRegistry(
			source.NewStructuredAdapter(source.CRMSchema(), f.store, table, log),
			source.NewStructuredAdapter(source.RMSSchema(), f.store, table, log),
		),
		Synthesizer: response.NewSynthesizer(f.llm, log),
		Turns:       f.turns,
		Recorder:    f.rec,
		Logger:      log,
	}
	for _, o := range opts {
		o(&deps, f)
	}
	f.pipeline = New(deps)
	return f
}

func TestGreetingShortCircuits(t *testing.T) {
	f := newFixture(t)
	res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "hi")

	assert.Equal(t, intent.GreetingResponse, res.Response)
	assert.Equal(t, intent.None, res.Category)
	assert.Equal(t, 0, f.llm.calls)
	assert.Empty(t, f.rec.attempts)
	assert.Empty(t, f.rec.events)
	require.Len(t, f.turns.turns, 1)
	assert.Equal(t, "none", f.turns.turns[0].SourceType)
}

func TestTrainersAnswered(t *testing.T) {
	f := newFixture(t)
	sid, aid := uuid.New(), uuid.New()
	res := f.pipeline.Run(context.Background(), sid, aid, "show me trainers")

	assert.Equal(t, "1. Asha\n2. Ravi\n3. Meera", res.Response)
	assert.Equal(t, intent.CRM, res.Category)
	assert.Equal(t, 3, res.RecordCount)
	assert.True(t, res.TurnSaved)

	require.Len(t, f.rec.attempts, 1)
	a := f.rec.attempts[0]
	assert.Equal(t, 3, a.RecordCount)
	assert.Nil(t, a.ErrorMessage)
	assert.Contains(t, a.Payload, "data")
	assert.Equal(t, sid, a.SessionId)
	assert.Empty(t, f.rec.events)

	require.Len(t, f.turns.turns, 1)
	turn := f.turns.turns[0]
	assert.Equal(t, "crm", turn.SourceType)
	assert.Equal(t, aid, turn.AdminId)
	assert.Equal(t, res.Response, turn.AssistantResponse)
}

func TestOffTopicBlocked(t *testing.T) {
	f := newFixture(t, func(d *Deps, f *fixture) {
		f.llm.replies["You are a router"] = "physics"
	})
	res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "explain quantum computing")

	assert.Equal(t, gate.BlockedMessage, res.Response)
	assert.Equal(t, intent.General, res.Category)
	assert.Equal(t, 1, f.llm.calls, "only the fallback classifier runs")
	assert.Equal(t, []string{constant.AuditBlockedGeneralQuery}, f.rec.actions())
	assert.Empty(t, f.rec.attempts)
	require.Len(t, f.turns.turns, 1)
	assert.Equal(t, "general", f.turns.turns[0].SourceType)
}

func TestNoDataWritesOneEmptyAttempt(t *testing.T) {
	f := newFixture(t)
	res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "candidates for the Rust role")

	assert.Equal(t, gate.NoDataMessage, res.Response)
	assert.Equal(t, []string{constant.AuditNoDataFound}, f.rec.actions())
	require.Len(t, f.rec.attempts, 1)
	a := f.rec.attempts[0]
	assert.Equal(t, 0, a.RecordCount)
	assert.Equal(t, map[string]interface{}{"status": "no_data_found"}, a.Payload)
	require.NotNil(t, a.ErrorMessage)
	assert.Equal(t, "No data found", *a.ErrorMessage)
}

func TestRetrievalErrorWritesErrorAttemptOnly(t *testing.T) {
	f := newFixture(t, func(d *Deps, f *fixture) {
		d.Sources = source.NewRegistry(source.NewStructuredAdapter(source.HRMSSchema(), recordstore.NewMemory(), nil, logger.NewNop()))
	})
	res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "employees in finance")

	assert.Equal(t, gate.NoDataMessage, res.Response)
	require.Len(t, f.rec.attempts, 1, "the error attempt is the only attempt")
	a := f.rec.attempts[0]
	assert.Equal(t, 0, a.RecordCount)
	assert.Contains(t, a.Payload, "error")
	assert.NotContains(t, a.Payload, "data")
	require.NotNil(t, a.ErrorMessage)
	assert.Contains(t, *a.ErrorMessage, "unknown table")
}

func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name     string
		sessions sessionStub
		want     string
		action   string
	}{
		{"missing", sessionStub{}, SessionNotFoundMessage, constant.AuditSessionNotFound},
		{"ended", sessionStub{session: &entity.AdminSession{Status: constant.SessionStatusEnded}}, SessionInactiveMessage, constant.AuditSessionInactive},
		{"store error", sessionStub{err: errors.New("pool exhausted")}, SessionErrorMessage, constant.AuditSessionValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(d *Deps, f *fixture) { d.Sessions = tt.sessions })
			res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "show me trainers")

			assert.Equal(t, tt.want, res.Response)
			assert.Equal(t, []string{tt.action}, f.rec.actions())
			assert.Equal(t, 0, f.llm.calls)
			assert.Len(t, f.turns.turns, 1, "terminal states are still persisted")
		})
	}
}

func TestSynthesisFailure(t *testing.T) {
	f := newFixture(t)
	f.llm.err = errors.New("model overloaded")
	res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "show me trainers")

	assert.Equal(t, response.LLMErrorMessage, res.Response)
	assert.Equal(t, []string{constant.AuditLLMError}, f.rec.actions())
	assert.Len(t, f.rec.attempts, 1)
}

func TestNodePanicFallsBack(t *testing.T) {
	f := newFixture(t, func(d *Deps, f *fixture) { d.Synthesizer = panicSynth{} })
	res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "show me trainers")

	assert.Equal(t, FallbackMessage, res.Response)
	assert.Equal(t, []string{constant.AuditFallbackTriggered}, f.rec.actions())
	assert.Len(t, f.turns.turns, 1)
}

func TestHistoryFailureDegrades(t *testing.T) {
	f := newFixture(t, func(d *Deps, f *fixture) { d.History = historyStub{err: errors.New("timeout")} })
	res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "show me trainers")
	assert.Equal(t, "1. Asha\n2. Ravi\n3. Meera", res.Response)
}

func TestTurnPersistenceRetry(t *testing.T) {
	tests := []struct {
		name    string
		fails   int
		saved   bool
		calls   int
		actions []string
	}{
		{"first write succeeds", 0, true, 1, []string{}},
		{"retry succeeds", 1, true, 2, []string{}},
		{"both attempts fail", 2, false, 2, []string{constant.AuditChatHistorySaveFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(d *Deps, f *fixture) {
				f.turns.fails = tt.fails
				d.Config.TurnRetryDelay = time.Millisecond
			})
			res := f.pipeline.Run(context.Background(), uuid.New(), uuid.New(), "hi")

			assert.Equal(t, intent.GreetingResponse, res.Response, "persistence never changes the response")
			assert.Equal(t, tt.saved, res.TurnSaved)
			assert.Equal(t, tt.calls, f.turns.calls)
			assert.Equal(t, tt.actions, f.rec.actions())
		})
	}
}
