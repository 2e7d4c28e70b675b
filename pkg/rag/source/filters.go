package source

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"admin-chatbot-be/pkg/rag/intent"
)

// Filters are the constraints extracted from a natural-language query.
type Filters struct {
	Start *time.Time
	End   *time.Time
	IsNew bool
	// Text is the free-text residue, matched with ILIKE across search fields.
	Text string
	// ListAll is set for "list all ..." style requests and suppresses Text.
	ListAll bool
}

func (f Filters) HasDateRange() bool {
	return f.Start != nil && f.End != nil
}

var stopWords = []string{
	"today", "yesterday", "this week", "new",
	"show", "shows", "display", "get", "give", "list", "find", "fetch",
	"me", "my", "i", "want", "need", "see", "view",
	"crm", "data", "details", "information", "info",
	"all", "the", "a", "an", "some",
	"s", "is", "are", "was", "were",
}

var (
	reToday     = regexp.MustCompile(`\btoday\b`)
	reYesterday = regexp.MustCompile(`\byesterday\b`)
	reThisWeek  = regexp.MustCompile(`\bthis\s+week\b`)
	reNew       = regexp.MustCompile(`\bnew\b`)

	listIntentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(list|show|display|get|give|fetch)\s+(me\s+)?(all|every|everything)\b`),
		regexp.MustCompile(`\ball\s+(the\s+)?\w+\s*[?.!]*$`),
		regexp.MustCompile(`\b(full|complete|entire)\s+list\b`),
		regexp.MustCompile(`\beverything\b`),
	}
)

const minTextLen = 3

// ParseFilters extracts date ranges, the "new" flag, list intent and the
// free-text residue. ignore holds domain keywords that are removed from the
// residue along with the stop words.
func ParseFilters(query string, now time.Time, ignore ...string) Filters {
	lower := strings.ToLower(query)
	var f Filters

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Microsecond)

	switch {
	case reToday.MatchString(lower):
		f.Start, f.End = &dayStart, &dayEnd
	case reYesterday.MatchString(lower):
		s, e := dayStart.AddDate(0, 0, -1), dayEnd.AddDate(0, 0, -1)
		f.Start, f.End = &s, &e
	case reThisWeek.MatchString(lower):
		sinceMonday := (int(now.Weekday()) + 6) % 7
		s := dayStart.AddDate(0, 0, -sinceMonday)
		f.Start, f.End = &s, &dayEnd
	}

	if reNew.MatchString(lower) {
		f.IsNew = true
		if f.Start == nil {
			s := dayStart.AddDate(0, 0, -7)
			f.Start, f.End = &s, &dayEnd
		}
	}

	for _, re := range listIntentPatterns {
		if re.MatchString(lower) {
			f.ListAll = true
			break
		}
	}

	if !f.ListAll {
		if residue := textResidue(lower, ignore); len(residue) >= minTextLen {
			f.Text = residue
		}
	}
	return f
}

// textResidue drops stop words and ignored keywords word by word, comparing
// de-pluralized forms so "trainers" is removed by "trainer".
func textResidue(lower string, ignore []string) string {
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '@' || r == '.' || r == '-' || r == '_')
	})
	for i, w := range words {
		words[i] = strings.Trim(w, ".-_")
	}

	drop := intent.NewKeywordSet(append(append([]string{}, stopWords...), ignore...)...)
	norm := make([]string, len(words))
	for i, w := range words {
		norm[i] = singularOf(w)
	}

	kept := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if words[i] == "" {
			i++
			continue
		}
		if n := drop.MatchAt(norm, i); n > 0 {
			i += n
			continue
		}
		kept = append(kept, words[i])
		i++
	}
	return strings.Join(kept, " ")
}

func singularOf(word string) string {
	toks := intent.Tokens(word)
	if len(toks) == 1 {
		return toks[0]
	}
	return word
}
