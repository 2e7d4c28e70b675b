package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// CompletionError wraps any failure of a completion call so callers can tell
// model errors apart from their own.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// Complete sends system + history + user as one chat and returns the trimmed
// reply. An empty reply is reported as ErrEmptyCompletion.
func Complete(ctx context.Context, p LLMProvider, system, user string, history []Message, opts ...Option) (string, error) {
	msgs := make([]Message, 0, len(history)+2)
	if system != "" {
		msgs = append(msgs, Message{Role: "system", Content: system})
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: "user", Content: user})

	out, err := p.Chat(ctx, msgs, opts...)
	if err != nil {
		return "", &CompletionError{Provider: providerName(p), Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &CompletionError{Provider: providerName(p), Err: ErrEmptyCompletion}
	}
	return out, nil
}

type named interface {
	Name() string
}

func providerName(p LLMProvider) string {
	if n, ok := p.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
