package driving

import "github.com/ase-lab/saturate/internal/core/domain"

// SettingsService resolves application settings.
type SettingsService interface {
	// Get merges defaults, the config file and the environment.
	Get() (*domain.Settings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
