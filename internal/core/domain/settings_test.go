package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validSettings() Settings {
	s := DefaultSettings()
	s.Agent.APIKey = "sk-test"
	return s
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "data", s.Batch.InputDir)
	assert.InDelta(t, 0.5, s.Batch.SelectionRate, 1e-9)
	assert.Equal(t, "results.txt", s.Batch.ResultsPath)
	assert.Equal(t, "Documento", s.Batch.HeaderLabel)
	assert.Equal(t, 6000, s.Chunk.MaxLength)
	assert.Equal(t, "analisis_ASE", s.Session.ID)
	assert.Equal(t, AIProviderOpenAI, s.Agent.Provider)
	assert.Equal(t, "gpt-4o", s.Agent.Model)
	assert.Equal(t, 120*time.Second, s.Agent.Timeout)
	assert.Equal(t, "spa", s.Extract.OCRLanguage)
	assert.Equal(t, PDFEngineMuPDF, s.Extract.PDFEngine)
	assert.True(t, s.Extract.OCRFallback)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{"valid", func(*Settings) {}, nil},
		{"no input dir", func(s *Settings) { s.Batch.InputDir = "" }, ErrInvalidInput},
		{"rate below zero", func(s *Settings) { s.Batch.SelectionRate = -0.1 }, ErrInvalidInput},
		{"rate above one", func(s *Settings) { s.Batch.SelectionRate = 1.5 }, ErrInvalidInput},
		{"rate one is valid", func(s *Settings) { s.Batch.SelectionRate = 1 }, nil},
		{"no results path", func(s *Settings) { s.Batch.ResultsPath = "" }, ErrInvalidInput},
		{"zero max length", func(s *Settings) { s.Chunk.MaxLength = 0 }, ErrInvalidInput},
		{"no session id", func(s *Settings) { s.Session.ID = "" }, ErrInvalidInput},
		{"negative history", func(s *Settings) { s.Session.MaxHistory = -1 }, ErrInvalidInput},
		{"unknown provider", func(s *Settings) { s.Agent.Provider = "mystery" }, ErrUnsupportedType},
		{"missing key", func(s *Settings) { s.Agent.APIKey = "" }, ErrNoAPIKey},
		{"ollama needs no key", func(s *Settings) {
			s.Agent.Provider = AIProviderOllama
			s.Agent.APIKey = ""
		}, nil},
		{"negative rpm", func(s *Settings) { s.Agent.RequestsPerMinute = -1 }, ErrInvalidInput},
		{"unknown engine", func(s *Settings) { s.Extract.PDFEngine = "acrobat" }, ErrUnsupportedType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAIProvider(t *testing.T) {
	tests := []struct {
		provider    AIProvider
		valid       bool
		requiresKey bool
		env         string
	}{
		{AIProviderOpenAI, true, true, "OPENAI_API_KEY"},
		{AIProviderAnthropic, true, true, "ANTHROPIC_API_KEY"},
		{AIProviderGemini, true, true, "GEMINI_API_KEY"},
		{AIProviderOllama, true, false, ""},
		{AIProvider("unknown"), false, false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.provider.String(), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.provider.IsValid())
			assert.Equal(t, tc.requiresKey, tc.provider.RequiresAPIKey())
			assert.Equal(t, tc.env, tc.provider.APIKeyEnv())
			assert.NotEmpty(t, tc.provider.Description())
		})
	}
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
}

func TestAgentSettings_IsConfigured(t *testing.T) {
	assert.False(t, AgentSettings{}.IsConfigured())
	assert.False(t, AgentSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, AgentSettings{Provider: AIProviderOpenAI, APIKey: "k"}.IsConfigured())
	assert.True(t, AgentSettings{Provider: AIProviderOllama}.IsConfigured())
}
