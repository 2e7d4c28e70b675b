package intent

import "strings"

const GreetingResponse = "Hii 👋\nWhat's up? How can I help you today?"

var greetingPhrases = []string{
	"hi", "hello", "hey", "hii", "hiii", "hiiii",
	"good morning", "good afternoon", "good evening",
	"morning", "afternoon", "evening",
	"greetings", "greeting",
	"hi there", "hello there", "hey there",
}

// IsGreeting matches a greeting phrase exactly or as a leading word sequence,
// so "hi team" is a greeting but "history" is not.
func IsGreeting(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return false
	}
	for _, phrase := range greetingPhrases {
		if normalized == phrase || strings.HasPrefix(normalized, phrase+" ") {
			return true
		}
	}
	return false
}
