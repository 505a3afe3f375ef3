package file

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyRotationInterval  = "loops.rotation_interval"
	KeyClockInterval     = "loops.clock_interval"
	KeyRetryBackoff      = "loops.retry_backoff"
	KeyTickTimeout       = "loops.tick_timeout"
	KeyTimeFormat        = "clock.time_format"
	KeyTimezone          = "clock.timezone"
	KeyRequestsPerMinute = "client.requests_per_minute"
	KeyBurst             = "client.burst"
	KeyAuditRetention    = "audit.retention"
	KeyProfileBackend    = "profile.backend"
	KeyProfileDir        = "profile.dir"
)

// Profile backends selectable through profile.backend.
const (
	BackendFilesystem = "filesystem"
	BackendMemory     = "memory"
)

// LoadSettings builds domain.Settings from the store.
// Missing keys keep their defaults; the result is validated.
func LoadSettings(store driven.ConfigStore) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	durations := []struct {
		key    string
		target *time.Duration
	}{
		{KeyRotationInterval, &settings.RotationInterval},
		{KeyClockInterval, &settings.ClockInterval},
		{KeyRetryBackoff, &settings.RetryBackoff},
		{KeyTickTimeout, &settings.TickTimeout},
	}
	for _, field := range durations {
		if _, ok := store.Get(field.key); !ok {
			continue
		}
		d := store.GetDuration(field.key)
		if d <= 0 {
			return domain.Settings{}, fmt.Errorf("%w: %s must be a positive duration", domain.ErrInvalidSettings, field.key)
		}
		*field.target = d
	}

	if format := store.GetString(KeyTimeFormat); format != "" {
		settings.TimeFormat = format
	}
	if tz := store.GetString(KeyTimezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("%w: %s: %w", domain.ErrInvalidSettings, KeyTimezone, err)
		}
		settings.Location = loc
	}

	ints := []struct {
		key    string
		target *int
	}{
		{KeyRequestsPerMinute, &settings.RequestsPerMinute},
		{KeyBurst, &settings.RequestBurst},
		{KeyAuditRetention, &settings.AuditRetention},
	}
	for _, field := range ints {
		if _, ok := store.Get(field.key); ok {
			*field.target = store.GetInt(field.key)
		}
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// ProfileConfig selects the profile client backend.
type ProfileConfig struct {
	Backend string
	Dir     string
}

// LoadProfileConfig reads the backend selection.
// Defaults to a filesystem account under <configDir>/account.
func LoadProfileConfig(store driven.ConfigStore, configDir string) (ProfileConfig, error) {
	cfg := ProfileConfig{
		Backend: BackendFilesystem,
		Dir:     filepath.Join(configDir, "account"),
	}
	if backend := store.GetString(KeyProfileBackend); backend != "" {
		cfg.Backend = backend
	}
	if dir := store.GetString(KeyProfileDir); dir != "" {
		cfg.Dir = dir
	}

	switch cfg.Backend {
	case BackendFilesystem, BackendMemory:
		return cfg, nil
	default:
		return ProfileConfig{}, fmt.Errorf("%w: unknown profile backend %q", domain.ErrInvalidSettings, cfg.Backend)
	}
}
