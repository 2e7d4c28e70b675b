package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	got   []Message
	opts  *Options
	reply string
	err   error
}

func (r *recordingProvider) Name() string { return "fake" }

func (r *recordingProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	r.got = history
	r.opts = ApplyOptions(opts...)
	return r.reply, r.err
}

func (r *recordingProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return r.Chat(ctx, []Message{{Role: "user", Content: prompt}}, opts...)
}

func TestCompleteBuildsConversation(t *testing.T) {
	p := &recordingProvider{reply: "  crm \n"}
	history := []Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}

	out, err := Complete(context.Background(), p, "classify", "show leads", history, WithTemperature(0), WithMaxTokens(10))
	require.NoError(t, err)
	assert.Equal(t, "crm", out)

	require.Len(t, p.got, 4)
	assert.Equal(t, Message{Role: "system", Content: "classify"}, p.got[0])
	assert.Equal(t, Message{Role: "user", Content: "show leads"}, p.got[3])
	assert.Equal(t, 0.0, p.opts.Temperature)
	assert.Equal(t, 10, p.opts.MaxTokens)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		err     error
		wantErr error
	}{
		{"provider failure", "", errors.New("connection refused"), nil},
		{"blank reply", "   ", nil, ErrEmptyCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &recordingProvider{reply: tt.reply, err: tt.err}
			_, err := Complete(context.Background(), p, "", "q", nil)

			var ce *CompletionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "fake", ce.Provider)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestApplyOptionsDefaults(t *testing.T) {
	o := ApplyOptions()
	assert.Equal(t, 0.7, o.Temperature)
	assert.Zero(t, o.MaxTokens)
	assert.Empty(t, o.Model)
}
