package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyInputDir          = "batch.input_dir"
	keySelectionRate     = "batch.selection_rate"
	keySeed              = "batch.seed"
	keyResultsPath       = "batch.results_path"
	keyHeaderLabel       = "batch.header_label"
	keyMaxLength         = "chunk.max_length"
	keySessionID         = "session.id"
	keySessionDBPath     = "session.db_path"
	keySessionMaxHistory = "session.max_history"
	keyAgentName         = "agent.name"
	keyAgentProvider     = "agent.provider"
	keyAgentModel        = "agent.model"
	keyAgentBaseURL      = "agent.base_url"
	keyAgentAPIKey       = "agent.api_key"
	keyAgentTimeout      = "agent.timeout"
	keyAgentRPM          = "agent.requests_per_minute"
	keyAgentTemperature  = "agent.temperature"
	keyAgentMaxTokens    = "agent.max_tokens"
	keyOCRLanguage       = "extract.ocr_language"
	keyPDFEngine         = "extract.pdf_engine"
	keyOCRFallback       = "extract.ocr_fallback"
)

// SettingsService resolves application settings from defaults, the
// config store and the environment, in increasing precedence for keys.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// If lookupEnv is nil, os.LookupEnv is used.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	seed, err := s.getSeed(defaults.Batch.Seed)
	if err != nil {
		return nil, err
	}

	settings := &domain.Settings{
		Batch: domain.BatchSettings{
			InputDir:      s.getString(keyInputDir, defaults.Batch.InputDir),
			SelectionRate: s.getFloat(keySelectionRate, defaults.Batch.SelectionRate),
			Seed:          seed,
			ResultsPath:   s.getString(keyResultsPath, defaults.Batch.ResultsPath),
			HeaderLabel:   s.getString(keyHeaderLabel, defaults.Batch.HeaderLabel),
		},
		Chunk: domain.ChunkSettings{
			MaxLength: s.getInt(keyMaxLength, defaults.Chunk.MaxLength),
		},
		Session: domain.SessionSettings{
			ID:         s.getString(keySessionID, defaults.Session.ID),
			DBPath:     s.getString(keySessionDBPath, defaults.Session.DBPath),
			MaxHistory: s.getInt(keySessionMaxHistory, defaults.Session.MaxHistory),
		},
		Agent: domain.AgentSettings{
			Name:              s.getString(keyAgentName, defaults.Agent.Name),
			Provider:          s.getProvider(defaults.Agent.Provider),
			BaseURL:           s.configStore.GetString(keyAgentBaseURL), // No default - empty is valid for cloud providers
			Timeout:           s.getSeconds(keyAgentTimeout, defaults.Agent.Timeout),
			RequestsPerMinute: s.getInt(keyAgentRPM, defaults.Agent.RequestsPerMinute),
			Temperature:       s.getFloat(keyAgentTemperature, defaults.Agent.Temperature),
			MaxTokens:         s.getInt(keyAgentMaxTokens, defaults.Agent.MaxTokens),
		},
		Extract: domain.ExtractSettings{
			OCRLanguage: s.getString(keyOCRLanguage, defaults.Extract.OCRLanguage),
			PDFEngine:   s.getPDFEngine(defaults.Extract.PDFEngine),
			OCRFallback: s.getBool(keyOCRFallback, defaults.Extract.OCRFallback),
		},
	}

	// The default model only applies to the default provider.
	settings.Agent.Model = s.configStore.GetString(keyAgentModel)
	if settings.Agent.Model == "" && settings.Agent.Provider == defaults.Agent.Provider {
		settings.Agent.Model = defaults.Agent.Model
	}

	settings.Agent.APIKey = s.configStore.GetString(keyAgentAPIKey)
	if settings.Agent.APIKey == "" {
		if env := settings.Agent.Provider.APIKeyEnv(); env != "" {
			if key, ok := s.lookupEnv(env); ok {
				settings.Agent.APIKey = key
			}
		}
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

// getFloat distinguishes an explicit zero from a missing key,
// since a selection rate of zero is meaningful.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getSeed reads batch.seed as an unsigned value. TOML integers are signed,
// so seeds above math.MaxInt64 may be written as decimal strings.
func (s *SettingsService) getSeed(defaultVal uint64) (uint64, error) {
	val, ok := s.configStore.Get(keySeed)
	if !ok {
		return defaultVal, nil
	}
	switch v := val.(type) {
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%w: %s must not be negative, got %d", domain.ErrInvalidInput, keySeed, v)
		}
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%w: %s must not be negative, got %d", domain.ErrInvalidInput, keySeed, v)
		}
		return uint64(v), nil
	case string:
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, keySeed, err)
		}
		return seed, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an unsigned integer", domain.ErrInvalidInput, keySeed)
	}
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyAgentProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getPDFEngine(defaultVal domain.PDFEngine) domain.PDFEngine {
	val := s.configStore.GetString(keyPDFEngine)
	if val == "" {
		return defaultVal
	}
	engine := domain.PDFEngine(val)
	if !engine.IsValid() {
		return defaultVal
	}
	return engine
}
