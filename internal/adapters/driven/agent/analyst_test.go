package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// mockLLM records the last request and returns a canned reply.
type mockLLM struct {
	reply    string
	err      error
	wait     time.Duration
	messages []driven.ChatMessage
	opts     driven.ChatOptions
	calls    int
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = messages
	m.opts = opts
	if m.wait > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.wait):
		}
	}
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string          { return "mock" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

func history(n int) []domain.SessionItem {
	items := make([]domain.SessionItem, n)
	for i := range items {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		items[i] = domain.SessionItem{ID: string(rune('a' + i)), Role: role, Content: string(rune('a' + i))}
	}
	return items
}

func TestAnalyst_Run_BuildsConversation(t *testing.T) {
	llm := &mockLLM{reply: "  Categorías: ninguna nueva.  "}
	a := New(llm, Config{Name: "Investigador", Instructions: "saturation method", Temperature: 0.3, MaxTokens: 800})
	session := domain.NewSession("s1", history(4))

	out, err := a.Run(context.Background(), session, "fragment text")

	require.NoError(t, err)
	assert.Equal(t, "Categorías: ninguna nueva.", out)
	require.Len(t, llm.messages, 6)
	assert.Equal(t, driven.ChatMessage{Role: "system", Content: "saturation method"}, llm.messages[0])
	assert.Equal(t, "user", llm.messages[1].Role)
	assert.Equal(t, "assistant", llm.messages[2].Role)
	assert.Equal(t, driven.ChatMessage{Role: "user", Content: "fragment text"}, llm.messages[5])
	assert.Equal(t, 800, llm.opts.MaxTokens)
	assert.InDelta(t, 0.3, llm.opts.Temperature, 1e-9)
	assert.Equal(t, "Investigador", a.Name())
}

func TestAnalyst_Run_DoesNotMutateSession(t *testing.T) {
	a := New(&mockLLM{reply: "ok"}, Config{})
	session := domain.NewSession("s1", history(2))

	_, err := a.Run(context.Background(), session, "input")

	require.NoError(t, err)
	assert.Equal(t, 2, session.Len())
}

func TestAnalyst_Run_HistoryWindowStartsOnUserTurn(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	a := New(llm, Config{MaxHistory: 3})
	session := domain.NewSession("s1", history(6))

	_, err := a.Run(context.Background(), session, "input")

	require.NoError(t, err)
	// Last three items are assistant, user, assistant; the leading reply is dropped.
	require.Len(t, llm.messages, 3)
	assert.Equal(t, "user", llm.messages[0].Role)
	assert.Equal(t, "e", llm.messages[0].Content)
	assert.Equal(t, "input", llm.messages[2].Content)
}

func TestAnalyst_Run_NilSession(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	a := New(llm, Config{Instructions: "i"})

	_, err := a.Run(context.Background(), nil, "input")

	require.NoError(t, err)
	assert.Len(t, llm.messages, 2)
}

func TestAnalyst_Run_Errors(t *testing.T) {
	tests := []struct {
		name    string
		llm     *mockLLM
		input   string
		wantErr string
	}{
		{"blank input", &mockLLM{reply: "x"}, "   ", "empty input"},
		{"llm error", &mockLLM{err: errors.New("rate limited")}, "in", "rate limited"},
		{"empty reply", &mockLLM{reply: "  \n"}, "in", "empty response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.llm, Config{})
			_, err := a.Run(context.Background(), domain.NewSession("s", nil), tt.input)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestAnalyst_Run_Timeout(t *testing.T) {
	llm := &mockLLM{reply: "late", wait: time.Second}
	a := New(llm, Config{Timeout: 20 * time.Millisecond})
	parent := context.Background()

	_, err := a.Run(parent, domain.NewSession("s", nil), "input")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, parent.Err())
}

func TestAnalyst_Run_RateLimited(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	a := New(llm, Config{RequestsPerMinute: 1})
	session := domain.NewSession("s", nil)

	_, err := a.Run(context.Background(), session, "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = a.Run(ctx, session, "second")

	require.Error(t, err)
	assert.Equal(t, 1, llm.calls)
}
