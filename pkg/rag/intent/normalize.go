package intent

import (
	"strings"
	"unicode"
)

// Tokens lowercases text, drops punctuation and de-pluralizes words longer
// than three characters by trimming one trailing "s".
func Tokens(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	for i, f := range fields {
		fields[i] = singular(f)
	}
	return fields
}

func singular(word string) string {
	if len(word) > 3 && strings.HasSuffix(word, "s") {
		return word[:len(word)-1]
	}
	return word
}

// KeywordSet holds normalized keywords. A multi-word keyword matches only a
// contiguous run of tokens.
type KeywordSet struct {
	words [][]string
}

func NewKeywordSet(keywords ...string) KeywordSet {
	seen := make(map[string]struct{}, len(keywords))
	ks := KeywordSet{}
	for _, k := range keywords {
		toks := Tokens(k)
		if len(toks) == 0 {
			continue
		}
		key := strings.Join(toks, " ")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ks.words = append(ks.words, toks)
	}
	return ks
}

// Score counts the distinct keywords present in tokens.
func (ks KeywordSet) Score(tokens []string) int {
	score := 0
	for _, kw := range ks.words {
		if containsRun(tokens, kw) {
			score++
		}
	}
	return score
}

// MatchAt returns the length of the longest keyword starting at tokens[i],
// or 0 when none does.
func (ks KeywordSet) MatchAt(tokens []string, i int) int {
	best := 0
	for _, kw := range ks.words {
		if len(kw) > best && hasRunAt(tokens, kw, i) {
			best = len(kw)
		}
	}
	return best
}

func containsRun(tokens, run []string) bool {
	for i := range tokens {
		if hasRunAt(tokens, run, i) {
			return true
		}
	}
	return false
}

func hasRunAt(tokens, run []string, i int) bool {
	if i+len(run) > len(tokens) {
		return false
	}
	for j, w := range run {
		if tokens[i+j] != w {
			return false
		}
	}
	return true
}
