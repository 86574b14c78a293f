package driven

import "github.com/patternpath/pagepatch/internal/core/domain"

// ConfigStore provides access to the pagepatch configuration file.
// Keys use dot notation for nested tables, e.g. "generate.template".
type ConfigStore interface {
	// Get reports the raw value stored under key.
	Get(key string) (any, bool)

	// Typed getters return the zero value on a missing key or a type
	// mismatch. GetStringSlice also accepts a single string.
	GetString(key string) string
	GetInt(key string) int
	GetStringSlice(key string) []string

	// Set stores a configuration value in memory. Call Save to persist.
	Set(key string, value any)

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Resolve layers the stored values over domain.DefaultConfig.
	Resolve() (domain.Config, error)

	// Path returns the configuration file path.
	Path() string
}
