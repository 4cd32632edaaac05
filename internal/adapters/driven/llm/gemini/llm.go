// Package gemini provides an LLM service adapter using the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the model to use (default: gemini-1.5-flash).
	Model string

	// Endpoint overrides the API endpoint. Empty uses the public endpoint.
	Endpoint string
}

// LLMService provides chat completion using Gemini.
type LLMService struct {
	client *genai.Client
	model  string
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrNoAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &LLMService{client: client, model: cfg.Model}, nil
}

// Chat replays prior turns as chat history and sends the final user turn.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	system, history, last, err := toConversation(messages)
	if err != nil {
		return "", err
	}

	m := s.client.GenerativeModel(s.model)
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if opts.Temperature > 0 {
		m.SetTemperature(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(opts.MaxTokens))
	}

	cs := m.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate: %w", domain.ErrLLMUnavailable, err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini: no text in response")
	}
	if resp.UsageMetadata != nil {
		logger.Debug("gemini: %d prompt tokens, %d candidate tokens",
			resp.UsageMetadata.PromptTokenCount, resp.UsageMetadata.CandidatesTokenCount)
	}
	return text, nil
}

// toConversation splits messages into system instructions, prior history and
// the final user message. The last message must come from the user.
func toConversation(messages []driven.ChatMessage) (string, []*genai.Content, string, error) {
	var system []string
	var turns []driven.ChatMessage
	for _, msg := range messages {
		if msg.Role == driven.RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		turns = append(turns, msg)
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != driven.RoleUser {
		return "", nil, "", fmt.Errorf("%w: gemini: conversation must end with a user message", domain.ErrInvalidInput)
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, msg := range turns[:len(turns)-1] {
		role := "user"
		if msg.Role == driven.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	return strings.Join(system, "\n\n"), history, turns[len(turns)-1].Content, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping fetches the model's metadata, which validates the key without inference.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.GenerativeModel(s.model).Info(ctx); err != nil {
		return fmt.Errorf("%w: gemini: ping failed: %w", domain.ErrLLMUnavailable, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *LLMService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
