package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)
}

func TestToConversation(t *testing.T) {
	system, history, last, err := toConversation([]driven.ChatMessage{
		{Role: driven.RoleSystem, Content: "instructions"},
		{Role: driven.RoleUser, Content: "fragment 1"},
		{Role: driven.RoleAssistant, Content: "analysis 1"},
		{Role: driven.RoleUser, Content: "fragment 2"},
	})

	require.NoError(t, err)
	assert.Equal(t, "instructions", system)
	assert.Equal(t, "fragment 2", last)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, genai.Text("analysis 1"), history[1].Parts[0])
}

func TestToConversation_RequiresTrailingUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		messages []driven.ChatMessage
	}{
		{"empty", nil},
		{"system only", []driven.ChatMessage{{Role: driven.RoleSystem, Content: "s"}}},
		{"ends with assistant", []driven.ChatMessage{
			{Role: driven.RoleUser, Content: "u"},
			{Role: driven.RoleAssistant, Content: "a"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := toConversation(tt.messages)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("a"), genai.Text("b")}},
		}},
	}
	assert.Equal(t, "ab", responseText(resp))
}
