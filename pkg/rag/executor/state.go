package executor

import (
	"time"

	"admin-chatbot-be/pkg/llm"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/recordstore"

	"github.com/google/uuid"
)

// State is owned by a single pipeline invocation.
type State struct {
	SessionId uuid.UUID
	AdminId   uuid.UUID
	Query     string
	StartedAt time.Time

	History  []llm.Message
	Category intent.Category
	Method   intent.Method
	// Evidence stays nil until a source was dispatched.
	Evidence []recordstore.Record
	Response string

	// AttemptRecorded is set once a RetrievalAttempt was written, so the
	// gate never writes a second one.
	AttemptRecorded bool
}

// SourceType is the category stored on the turn; unclassified turns count
// as general.
func (s *State) SourceType() string {
	if s.Category == "" {
		return string(intent.General)
	}
	return string(s.Category)
}

// Step is a node's verdict: keep going, or stop with a final response and
// jump to persistence.
type Step struct {
	State    *State
	Terminal bool
}

func Continue(s *State) Step {
	return Step{State: s}
}

func Terminal(s *State, response string) Step {
	s.Response = response
	return Step{State: s, Terminal: true}
}
