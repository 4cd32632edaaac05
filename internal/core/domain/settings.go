package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies the service that runs the analysis agent.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// APIKeyEnv returns the environment variable that carries the provider's key.
func (p AIProvider) APIKeyEnv() string {
	switch p {
	case AIProviderOpenAI:
		return "OPENAI_API_KEY"
	case AIProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case AIProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// PDFEngine selects the PDF text extraction backend.
type PDFEngine string

// Available PDF engines.
const (
	// PDFEngineMuPDF extracts the text layer with MuPDF.
	PDFEngineMuPDF PDFEngine = "mupdf"

	// PDFEnginePDFToText extracts the text layer with poppler's pdftotext.
	PDFEnginePDFToText PDFEngine = "pdftotext"
)

// IsValid returns true if the engine is recognised.
func (e PDFEngine) IsValid() bool {
	return e == PDFEngineMuPDF || e == PDFEnginePDFToText
}

// BatchSettings controls document discovery, selection and result output.
type BatchSettings struct {
	// InputDir is scanned non-recursively for allow-listed files.
	InputDir string

	// SelectionRate is the probability that a discovered document is analysed.
	SelectionRate float64

	// Seed fixes the selection sampler. Zero seeds from entropy.
	Seed uint64

	// ResultsPath is the append-only result log.
	ResultsPath string

	// HeaderLabel prefixes the document name in each result record.
	HeaderLabel string
}

// ChunkSettings controls fragment sizing.
type ChunkSettings struct {
	// MaxLength is the fragment length bound, in characters.
	MaxLength int
}

// SessionSettings controls the persisted conversation.
type SessionSettings struct {
	// ID keys the persisted session. Reusing it continues prior history.
	ID string

	// DBPath is the SQLite file holding session history.
	DBPath string

	// MaxHistory bounds the items sent to the model per call. Zero sends all.
	MaxHistory int
}

// AgentSettings holds the analysis agent's provider configuration.
type AgentSettings struct {
	// Name identifies the agent in logs.
	Name string

	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the provider credential.
	APIKey string

	// Timeout bounds each agent call.
	Timeout time.Duration

	// RequestsPerMinute caps the call rate. Zero disables limiting.
	RequestsPerMinute int

	// Temperature is passed to the model when positive.
	Temperature float64

	// MaxTokens caps each response when positive.
	MaxTokens int
}

// IsConfigured returns true if the agent provider is set up.
func (a AgentSettings) IsConfigured() bool {
	if !a.Provider.IsValid() {
		return false
	}
	if a.Provider.RequiresAPIKey() && a.APIKey == "" {
		return false
	}
	return true
}

// ExtractSettings controls the text extractors.
type ExtractSettings struct {
	// OCRLanguage is the tesseract language code.
	OCRLanguage string

	// PDFEngine selects the PDF text backend.
	PDFEngine PDFEngine

	// OCRFallback renders and OCRs PDFs with no text layer.
	OCRFallback bool
}

// Settings holds all application settings.
type Settings struct {
	Batch   BatchSettings
	Chunk   ChunkSettings
	Session SessionSettings
	Agent   AgentSettings
	Extract ExtractSettings
}

// DefaultSettings returns settings with sensible defaults.
// The agent API key is left empty; it comes from config or the environment.
func DefaultSettings() Settings {
	return Settings{
		Batch: BatchSettings{
			InputDir:      "data",
			SelectionRate: 0.5,
			ResultsPath:   "results.txt",
			HeaderLabel:   "Documento",
		},
		Chunk: ChunkSettings{
			MaxLength: DefaultMaxFragmentLength,
		},
		Session: SessionSettings{
			ID:     "analisis_ASE",
			DBPath: "analysis.db",
		},
		Agent: AgentSettings{
			Name:     "Investigador",
			Provider: AIProviderOpenAI,
			Model:    "gpt-4o",
			Timeout:  120 * time.Second,
		},
		Extract: ExtractSettings{
			OCRLanguage: "spa",
			PDFEngine:   PDFEngineMuPDF,
			OCRFallback: true,
		},
	}
}

// Validate checks that settings are usable for a batch run.
func (s Settings) Validate() error {
	if s.Batch.InputDir == "" {
		return fmt.Errorf("%w: input directory is required", ErrInvalidInput)
	}
	if s.Batch.SelectionRate < 0 || s.Batch.SelectionRate > 1 {
		return fmt.Errorf("%w: selection rate %v outside [0,1]", ErrInvalidInput, s.Batch.SelectionRate)
	}
	if s.Batch.ResultsPath == "" {
		return fmt.Errorf("%w: results path is required", ErrInvalidInput)
	}
	if s.Chunk.MaxLength <= 0 {
		return fmt.Errorf("%w: max fragment length must be positive, got %d", ErrInvalidInput, s.Chunk.MaxLength)
	}
	if s.Session.ID == "" {
		return fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if s.Session.MaxHistory < 0 {
		return fmt.Errorf("%w: session history limit must not be negative", ErrInvalidInput)
	}
	if !s.Agent.Provider.IsValid() {
		return fmt.Errorf("%w: agent provider %q", ErrUnsupportedType, s.Agent.Provider)
	}
	if s.Agent.Provider.RequiresAPIKey() && s.Agent.APIKey == "" {
		return fmt.Errorf("%w: set agent.api_key or %s", ErrNoAPIKey, s.Agent.Provider.APIKeyEnv())
	}
	if s.Agent.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: requests per minute must not be negative", ErrInvalidInput)
	}
	if !s.Extract.PDFEngine.IsValid() {
		return fmt.Errorf("%w: pdf engine %q", ErrUnsupportedType, s.Extract.PDFEngine)
	}
	return nil
}
