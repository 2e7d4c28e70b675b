package intent

// Category is the closed routing vocabulary a query can resolve to.
type Category string

const (
	CRM  Category = "crm"
	LMS  Category = "lms"
	RMS  Category = "rms"
	HRMS Category = "hrms"
	RAG  Category = "rag"
	// None marks a query answered without retrieval (greetings).
	None Category = "none"
	// General is anything outside the supported sources.
	General Category = "general"
)

var vocabulary = map[Category]struct{}{
	CRM: {}, LMS: {}, RMS: {}, HRMS: {}, RAG: {}, None: {}, General: {},
}

func (c Category) IsValid() bool {
	_, ok := vocabulary[c]
	return ok
}

// Retrievable reports whether c routes to a data source.
func (c Category) Retrievable() bool {
	switch c {
	case CRM, LMS, RMS, HRMS, RAG:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }
