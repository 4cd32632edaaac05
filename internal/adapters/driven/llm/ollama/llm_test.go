package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(LLMConfig{})
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
}

func TestLLMService_Chat(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"sin categorías nuevas"},"done":true}`))
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL, Model: "qwen2.5"})
	out, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: "s"},
		{Role: driven.RoleUser, Content: "u"},
	}, driven.ChatOptions{Temperature: 0.1})

	require.NoError(t, err)
	assert.Equal(t, "sin categorías nuevas", out)
	assert.Equal(t, "qwen2.5", got.Model)
	assert.False(t, got.Stream)
	require.NotNil(t, got.Options)
	assert.InDelta(t, 0.1, got.Options.Temperature, 1e-9)
	assert.Len(t, got.Messages, 2)
}

func TestLLMService_Chat_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"model missing", http.StatusNotFound, `{"error":"model not found"}`, "status 404"},
		{"error field", http.StatusOK, `{"error":"out of memory"}`, "out of memory"},
		{"empty content", http.StatusOK, `{"message":{"role":"assistant","content":""},"done":true}`, "empty response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewLLMService(LLMConfig{BaseURL: server.URL})
			_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLLMService_Ping_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: url})
	assert.ErrorIs(t, svc.Ping(context.Background()), domain.ErrLLMUnavailable)
}
