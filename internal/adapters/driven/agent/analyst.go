// Package agent provides the qualitative analyst that runs one fragment
// through an LLM against the accumulated session history.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/logger"
)

// Ensure Analyst implements the interface.
var _ driven.Agent = (*Analyst)(nil)

// Config holds the analyst's behaviour.
type Config struct {
	// Name identifies the agent in logs.
	Name string

	// Instructions is the system prompt sent with every call.
	Instructions string

	// MaxHistory bounds the number of prior session items sent. Zero sends all.
	MaxHistory int

	// Timeout bounds each call. Zero leaves the call unbounded.
	Timeout time.Duration

	// RequestsPerMinute caps the call rate. Zero disables limiting.
	RequestsPerMinute int

	// Temperature and MaxTokens are forwarded to the model when positive.
	Temperature float64
	MaxTokens   int
}

// Analyst runs fragments through an LLM as one continuous conversation.
type Analyst struct {
	llm     driven.LLMService
	cfg     Config
	limiter *rate.Limiter
}

// New creates a new analyst.
func New(llm driven.LLMService, cfg Config) *Analyst {
	if cfg.Name == "" {
		cfg.Name = "analyst"
	}

	a := &Analyst{llm: llm, cfg: cfg}
	if cfg.RequestsPerMinute > 0 {
		a.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return a
}

// Name returns the agent name.
func (a *Analyst) Name() string {
	return a.cfg.Name
}

// Run sends the instructions, the session history and input to the model.
// The session is read, never written.
func (a *Analyst) Run(ctx context.Context, session *domain.Session, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("%w: empty input", domain.ErrInvalidInput)
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	messages := a.buildMessages(session, input)
	logger.Debug("%s: sending %d messages to %s", a.cfg.Name, len(messages), a.llm.ModelName())

	start := time.Now()
	output, err := a.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", a.cfg.Name, err)
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return "", fmt.Errorf("%s: empty response from %s", a.cfg.Name, a.llm.ModelName())
	}

	logger.Debug("%s: response in %s", a.cfg.Name, time.Since(start).Round(time.Millisecond))
	return output, nil
}

func (a *Analyst) buildMessages(session *domain.Session, input string) []driven.ChatMessage {
	var history []domain.SessionItem
	if session != nil {
		history = session.History(a.cfg.MaxHistory)
	}
	// A window cut mid-exchange would open with a reply to a missing prompt.
	for len(history) > 0 && history[0].Role != domain.RoleUser {
		history = history[1:]
	}

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	if a.cfg.Instructions != "" {
		messages = append(messages, driven.ChatMessage{Role: driven.RoleSystem, Content: a.cfg.Instructions})
	}
	for _, item := range history {
		messages = append(messages, driven.ChatMessage{Role: string(item.Role), Content: item.Content})
	}
	return append(messages, driven.ChatMessage{Role: driven.RoleUser, Content: input})
}
