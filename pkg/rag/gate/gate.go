// Package gate decides whether gathered evidence is enough to answer.
package gate

import (
	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/recordstore"
)

type Outcome string

const (
	Pass    Outcome = "PASS"
	NoData  Outcome = "NO_DATA"
	Blocked Outcome = "BLOCKED"
)

const (
	BlockedMessage = "I can only answer questions related to Edify CRM, LMS, RMS, HRMS, or internal documents."
	NoDataMessage  = "I couldn't find any data matching your request. Please try rephrasing or check if the data exists in the system."
)

// Decision carries the fixed reply and audit action for a non-PASS outcome.
type Decision struct {
	Outcome     Outcome
	Message     string
	AuditAction string
}

func (d Decision) Passed() bool { return d.Outcome == Pass }

// Evaluate applies the rules in order: greetings pass, general is blocked,
// empty evidence is no data, anything else passes.
func Evaluate(category intent.Category, evidence []recordstore.Record, query string) Decision {
	if category == intent.None || intent.IsGreeting(query) {
		return Decision{Outcome: Pass}
	}
	if category == intent.General {
		return Decision{Outcome: Blocked, Message: BlockedMessage, AuditAction: constant.AuditBlockedGeneralQuery}
	}
	if len(evidence) == 0 {
		return Decision{Outcome: NoData, Message: NoDataMessage, AuditAction: constant.AuditNoDataFound}
	}
	return Decision{Outcome: Pass}
}

// EvaluateState passes unconditionally once a response already exists.
func EvaluateState(hasResponse bool, category intent.Category, evidence []recordstore.Record, query string) Decision {
	if hasResponse {
		return Decision{Outcome: Pass}
	}
	return Evaluate(category, evidence, query)
}
