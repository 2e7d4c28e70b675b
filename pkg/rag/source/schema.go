package source

import (
	"admin-chatbot-be/pkg/rag/intent"
)

// TableConfig describes one searchable table of a structured source.
type TableConfig struct {
	Name         string
	SearchFields []string
	DateField    string
	OrderField   string
	Keywords     []string
	Limit        int

	set intent.KeywordSet
}

// Schema is the ordered table list of one structured category. Table order
// decides keyword ties.
type Schema struct {
	Category     intent.Category
	Tables       []TableConfig
	DefaultTable string
}

func NewSchema(cat intent.Category, defaultTable string, tables ...TableConfig) Schema {
	for i := range tables {
		tables[i].set = intent.NewKeywordSet(tables[i].Keywords...)
	}
	return Schema{Category: cat, Tables: tables, DefaultTable: defaultTable}
}

// SelectTable scores each table against the query and falls back to the
// default table when nothing matches.
func (s Schema) SelectTable(query string) TableConfig {
	tokens := intent.Tokens(query)
	best, bestScore := -1, 0
	for i, t := range s.Tables {
		if score := t.set.Score(tokens); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		return s.Tables[best]
	}
	return s.Table(s.DefaultTable)
}

func (s Schema) Table(name string) TableConfig {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return s.Tables[0]
}

// Vocabulary lists every table keyword; ParseFilters strips these from the
// free-text residue.
func (s Schema) Vocabulary() []string {
	var out []string
	for _, t := range s.Tables {
		out = append(out, t.Keywords...)
	}
	return out
}

const (
	crmLimit    = 50
	singleLimit = 10
)

func CRMSchema() Schema {
	return NewSchema(intent.CRM, "leads",
		TableConfig{
			Name:         "campaigns",
			SearchFields: []string{"name", "status", "type", "campaign_owner", "phone"},
			DateField:    "created_at",
			OrderField:   "created_at",
			Keywords:     []string{"campaign", "campaigns"},
			Limit:        crmLimit,
		},
		TableConfig{
			Name:         "leads",
			SearchFields: []string{"name", "email", "phone", "lead_status", "course_list", "lead_source", "lead_owner"},
			DateField:    "created_at",
			OrderField:   "created_at",
			Keywords:     []string{"lead", "leads", "prospect", "prospects"},
			Limit:        crmLimit,
		},
		TableConfig{
			Name:         "tasks",
			SearchFields: []string{"subject", "priority", "status", "task_type"},
			DateField:    "created_at",
			OrderField:   "created_at",
			Keywords:     []string{"task", "tasks", "todo", "todos"},
			Limit:        crmLimit,
		},
		TableConfig{
			Name:         "trainers",
			SearchFields: []string{"trainer_name", "trainer_status", "tech_stack", "email", "phone", "location"},
			DateField:    "created_at",
			OrderField:   "created_at",
			Keywords:     []string{"trainer", "trainers", "instructor", "instructors"},
			Limit:        crmLimit,
		},
		TableConfig{
			Name:         "learners",
			SearchFields: []string{"name", "email", "phone", "status", "course", "location"},
			DateField:    "created_at",
			OrderField:   "created_at",
			Keywords:     []string{"learner", "learners", "student", "students"},
			Limit:        crmLimit,
		},
		TableConfig{
			Name:         "Course",
			SearchFields: []string{"title", "description", "trainer", "duration"},
			DateField:    "createdAt",
			OrderField:   "createdAt",
			Keywords:     []string{"course", "courses", "program", "programs"},
			Limit:        crmLimit,
		},
		TableConfig{
			Name:         "activity",
			SearchFields: []string{"activity_name"},
			DateField:    "created_at",
			OrderField:   "created_at",
			Keywords:     []string{"activity", "activities", "log", "logs"},
			Limit:        crmLimit,
		},
		TableConfig{
			Name:         "notes",
			SearchFields: []string{"content"},
			DateField:    "created_at",
			OrderField:   "created_at",
			Keywords:     []string{"note", "notes", "comment", "comments"},
			Limit:        crmLimit,
		},
	)
}

func LMSSchema() Schema {
	return NewSchema(intent.LMS, "lms_batches", TableConfig{
		Name:         "lms_batches",
		SearchFields: []string{"name", "title", "description", "instructor", "course_name"},
		DateField:    "created_at",
		OrderField:   "created_at",
		Limit:        singleLimit,
	})
}

func RMSSchema() Schema {
	return NewSchema(intent.RMS, "rms_candidates", TableConfig{
		Name:         "rms_candidates",
		SearchFields: []string{"name", "skills", "role", "status", "position"},
		DateField:    "created_at",
		OrderField:   "created_at",
		Limit:        singleLimit,
	})
}

func HRMSSchema() Schema {
	return NewSchema(intent.HRMS, "hrms_employees", TableConfig{
		Name:         "hrms_employees",
		SearchFields: []string{"name", "email", "department", "designation", "status", "location"},
		DateField:    "created_at",
		OrderField:   "created_at",
		Limit:        singleLimit,
	})
}
