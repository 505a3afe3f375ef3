package domain

import (
	"fmt"
	"time"
)

// Settings holds tunables for the periodic loops and the network client.
type Settings struct {
	// RotationInterval is the pause between picture rotations.
	RotationInterval time.Duration

	// ClockInterval is the pause between bio/name clock updates.
	ClockInterval time.Duration

	// RetryBackoff replaces the interval after a failed mutation.
	RetryBackoff time.Duration

	// TickTimeout bounds a single mutation.
	TickTimeout time.Duration

	// TimeFormat is the Go layout used to render the time placeholder.
	TimeFormat string

	// Location is the timezone clocks render in.
	Location *time.Location

	// RequestsPerMinute is the sustained client-side request rate.
	RequestsPerMinute int

	// RequestBurst is the maximum request burst.
	RequestBurst int

	// AuditRetention is how many audit events are kept.
	AuditRetention int
}

// DefaultSettings returns the intervals the module has always used.
func DefaultSettings() Settings {
	return Settings{
		RotationInterval:  10 * time.Second,
		ClockInterval:     60 * time.Second,
		RetryBackoff:      30 * time.Second,
		TickTimeout:       2 * time.Minute,
		TimeFormat:        DefaultTimeFormat,
		Location:          time.Local,
		RequestsPerMinute: 40,
		RequestBurst:      8,
		AuditRetention:    1000,
	}
}

// Interval returns the tick interval for a feature.
func (s Settings) Interval(f Feature) time.Duration {
	if f == FeatureRotation {
		return s.RotationInterval
	}
	return s.ClockInterval
}

// Validate checks that every setting is usable.
func (s Settings) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"rotation interval", s.RotationInterval},
		{"clock interval", s.ClockInterval},
		{"retry backoff", s.RetryBackoff},
		{"tick timeout", s.TickTimeout},
	}
	for _, field := range durations {
		if field.d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidSettings, field.name)
		}
	}
	if s.TimeFormat == "" {
		return fmt.Errorf("%w: time format is empty", ErrInvalidSettings)
	}
	if s.Location == nil {
		return fmt.Errorf("%w: location is not set", ErrInvalidSettings)
	}
	if s.RequestsPerMinute <= 0 || s.RequestBurst <= 0 {
		return fmt.Errorf("%w: request rate and burst must be positive", ErrInvalidSettings)
	}
	if s.AuditRetention < 0 {
		return fmt.Errorf("%w: audit retention cannot be negative", ErrInvalidSettings)
	}
	return nil
}
