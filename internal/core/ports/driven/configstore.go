package driven

import "time"

// ConfigStore provides access to the module's configuration.
// Keys use dot notation for nested tables, e.g. "loops.clock_interval".
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetDuration accepts duration strings ("30s") or integer seconds.
	// Returns 0 if the key is missing or unparsable.
	GetDuration(key string) time.Duration

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
