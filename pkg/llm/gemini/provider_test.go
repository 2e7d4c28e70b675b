package gemini

import (
	"context"
	"testing"

	"admin-chatbot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToContentsSplitsSystemPrompt(t *testing.T) {
	system, contents := toContents([]llm.Message{
		{Role: "system", Content: "be terse"},
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "system", Content: "no markdown"},
		{Role: "user", Content: "list leads"},
	})

	assert.Equal(t, "be terse\n\nno markdown", system)
	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, "list leads", contents[2].Parts[0].Text)
}

func TestNewProviderRequiresKey(t *testing.T) {
	_, err := NewProvider(context.Background(), "", "")
	assert.Error(t, err)
}
