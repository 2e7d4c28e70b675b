package gate

import (
	"testing"

	"admin-chatbot-be/internal/constant"
	"admin-chatbot-be/pkg/rag/intent"
	"admin-chatbot-be/pkg/recordstore"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	one := []recordstore.Record{{"name": "some record"}}

	tests := []struct {
		name     string
		category intent.Category
		evidence []recordstore.Record
		query    string
		want     Outcome
		action   string
	}{
		{"greeting category", intent.None, nil, "hi", Pass, ""},
		{"greeting text wins over general", intent.General, nil, "hello there", Pass, ""},
		{"general is blocked even with evidence", intent.General, one, "what's the weather", Blocked, constant.AuditBlockedGeneralQuery},
		{"nil evidence", intent.CRM, nil, "show me leads", NoData, constant.AuditNoDataFound},
		{"empty evidence", intent.RAG, []recordstore.Record{}, "leave policy", NoData, constant.AuditNoDataFound},
		{"evidence present", intent.HRMS, one, "employees", Pass, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.category, tt.evidence, tt.query)
			assert.Equal(t, tt.want, d.Outcome)
			assert.Equal(t, tt.action, d.AuditAction)
			switch tt.want {
			case Blocked:
				assert.Equal(t, BlockedMessage, d.Message)
			case NoData:
				assert.Equal(t, NoDataMessage, d.Message)
			default:
				assert.Empty(t, d.Message)
				assert.True(t, d.Passed())
			}
		})
	}
}

func TestEvaluateStateWithResponse(t *testing.T) {
	assert.Equal(t, Pass, EvaluateState(true, intent.General, nil, "anything").Outcome)
	assert.Equal(t, Blocked, EvaluateState(false, intent.General, nil, "anything").Outcome)
}
