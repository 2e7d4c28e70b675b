package source

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ptr(t time.Time) *time.Time { return &t }

func TestParseFilters(t *testing.T) {
	// Wednesday afternoon
	now := time.Date(2026, 10, 14, 15, 4, 5, 0, time.UTC)
	dayStart := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Microsecond)
	crmWords := CRMSchema().Vocabulary()

	tests := []struct {
		name  string
		query string
		want  Filters
	}{
		{
			name:  "keyword only",
			query: "show me trainers",
			want:  Filters{},
		},
		{
			name:  "today",
			query: "leads created today",
			want:  Filters{Start: ptr(dayStart), End: ptr(dayEnd), Text: "created"},
		},
		{
			name:  "yesterday",
			query: "Yesterday's tasks",
			want:  Filters{Start: ptr(dayStart.AddDate(0, 0, -1)), End: ptr(dayEnd.AddDate(0, 0, -1))},
		},
		{
			name:  "this week starts on monday",
			query: "campaigns this week",
			want:  Filters{Start: ptr(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)), End: ptr(dayEnd)},
		},
		{
			name:  "new without range means last seven days",
			query: "new leads",
			want:  Filters{Start: ptr(dayStart.AddDate(0, 0, -7)), End: ptr(dayEnd), IsNew: true},
		},
		{
			name:  "new keeps an explicit range",
			query: "new leads today",
			want:  Filters{Start: ptr(dayStart), End: ptr(dayEnd), IsNew: true},
		},
		{
			name:  "text residue",
			query: "find learners from Pune",
			want:  Filters{Text: "from pune"},
		},
		{
			name:  "short residue is ignored",
			query: "get leads AB",
			want:  Filters{},
		},
		{
			name:  "list intent suppresses text",
			query: "list all trainers in Chennai",
			want:  Filters{ListAll: true},
		},
		{
			name:  "all at the end",
			query: "pull up all the notes",
			want:  Filters{ListAll: true},
		},
		{
			name:  "complete list",
			query: "complete list of courses with java",
			want:  Filters{ListAll: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilters(tt.query, now, crmWords...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestThisWeekOnSunday(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	f := ParseFilters("tasks this week", sunday)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), *f.Start)
}

func TestTextResidueKeepsEmails(t *testing.T) {
	f := ParseFilters("show lead john.doe@acme.com", time.Now(), CRMSchema().Vocabulary()...)
	assert.Equal(t, "john.doe@acme.com", f.Text)
}
