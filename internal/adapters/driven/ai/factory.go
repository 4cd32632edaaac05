// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/ase-lab/saturate/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/ase-lab/saturate/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/ase-lab/saturate/internal/adapters/driven/llm/ollama"
	openaillm "github.com/ase-lab/saturate/internal/adapters/driven/llm/openai"
	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 10 * time.Second

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
func CreateAndValidateLLMService(ctx context.Context, settings domain.AgentSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %s unreachable (%w)", domain.ErrLLMUnavailable, settings.Provider, err)
	}

	return svc, nil
}

// CreateLLMService creates the LLM service for the configured provider.
func CreateLLMService(ctx context.Context, settings domain.AgentSettings) (driven.LLMService, error) {
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrInvalidInput, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: set %s or agent.api_key", domain.ErrNoAPIKey, settings.Provider.APIKeyEnv())
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: clientTimeout(settings.Timeout),
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: clientTimeout(settings.Timeout),
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: clientTimeout(settings.Timeout),
		})

	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:   settings.APIKey,
			Model:    settings.Model,
			Endpoint: settings.BaseURL,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrInvalidInput, settings.Provider)
	}
}

// clientTimeout gives the HTTP client a little slack over the per-call
// deadline so the context, not the transport, ends a slow call.
func clientTimeout(callTimeout time.Duration) time.Duration {
	if callTimeout <= 0 {
		return 0
	}
	return callTimeout + 5*time.Second
}
