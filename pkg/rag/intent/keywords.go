package intent

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

type keywordFile struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

type categoryKeywords struct {
	category Category
	raw      []string
	set      KeywordSet
}

// KeywordTable scores queries against categories in registration order.
type KeywordTable struct {
	entries []categoryKeywords
}

func DefaultKeywordTable() (*KeywordTable, error) {
	return ParseKeywordTable(defaultKeywordsYAML)
}

func ParseKeywordTable(data []byte) (*KeywordTable, error) {
	var f keywordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse keyword table: %w", err)
	}

	t := &KeywordTable{}
	seen := map[Category]bool{}
	for _, c := range f.Categories {
		cat := Category(c.Name)
		if !cat.Retrievable() {
			return nil, fmt.Errorf("keyword table: %q is not a routable category", c.Name)
		}
		if seen[cat] {
			return nil, fmt.Errorf("keyword table: duplicate category %q", c.Name)
		}
		seen[cat] = true
		t.entries = append(t.entries, categoryKeywords{category: cat, raw: c.Keywords, set: NewKeywordSet(c.Keywords...)})
	}
	return t, nil
}

// Best returns the highest scoring category. Ties keep the earlier entry.
// ok is false when no keyword matched at all.
func (t *KeywordTable) Best(tokens []string) (Category, bool) {
	best, bestScore := General, 0
	for _, e := range t.entries {
		if s := e.set.Score(tokens); s > bestScore {
			best, bestScore = e.category, s
		}
	}
	return best, bestScore > 0
}

// Keywords returns the raw keywords registered for c.
func (t *KeywordTable) Keywords(c Category) []string {
	for _, e := range t.entries {
		if e.category == c {
			return e.raw
		}
	}
	return nil
}
