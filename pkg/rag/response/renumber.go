package response

import (
	"regexp"
	"strconv"
	"strings"
)

var numberedLine = regexp.MustCompile(`^(\s*)(\d+)\.(\s)`)

// lookahead is how far past a break RenumberLists searches for the list to
// resume before it starts counting again from 1.
const lookahead = 3

// RenumberLists rewrites ordered-list markers so each list counts 1, 2, 3
// per indentation depth. Models often repeat "1." or skip numbers when items
// are separated by blank lines or wrapped text.
func RenumberLists(text string) string {
	lines := strings.Split(text, "\n")
	counters := map[int]int{}

	for i, line := range lines {
		if m := numberedLine.FindStringSubmatchIndex(line); m != nil {
			depth := m[3] - m[2]
			for d := range counters {
				if d > depth {
					delete(counters, d)
				}
			}
			counters[depth]++
			lines[i] = line[:m[3]] + strconv.Itoa(counters[depth]) + line[m[5]:]
			continue
		}

		if isContinuation(line) {
			continue
		}
		if !numberedAhead(lines, i+1) {
			counters = map[int]int{}
		}
	}
	return strings.Join(lines, "\n")
}

// isContinuation is an indented, non-blank, non-list line belonging to the
// item above it.
func isContinuation(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return line[0] == ' ' || line[0] == '\t'
}

func numberedAhead(lines []string, from int) bool {
	for j := from; j < len(lines) && j < from+lookahead; j++ {
		if numberedLine.MatchString(lines[j]) {
			return true
		}
	}
	return false
}
