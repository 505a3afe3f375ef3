package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/autoprofile/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/autoprofile/internal/core/domain"
)

func writeConfig(t *testing.T, content string) *ConfigStore {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0600))
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store
}

func TestLoadSettings_Defaults(t *testing.T) {
	store := writeConfig(t, "")

	settings, err := LoadSettings(store)

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.RotationInterval, settings.RotationInterval)
	assert.Equal(t, defaults.ClockInterval, settings.ClockInterval)
	assert.Equal(t, defaults.RetryBackoff, settings.RetryBackoff)
	assert.Equal(t, defaults.TimeFormat, settings.TimeFormat)
	assert.Equal(t, defaults.AuditRetention, settings.AuditRetention)
}

func TestLoadSettings_Overrides(t *testing.T) {
	store := writeConfig(t, `
[loops]
rotation_interval = "20s"
clock_interval = "2m"
retry_backoff = 10
tick_timeout = "30s"

[clock]
time_format = "15:04:05"
timezone = "UTC"

[client]
requests_per_minute = 60
burst = 2

[audit]
retention = 0
`)

	settings, err := LoadSettings(store)

	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, settings.RotationInterval)
	assert.Equal(t, 2*time.Minute, settings.ClockInterval)
	assert.Equal(t, 10*time.Second, settings.RetryBackoff)
	assert.Equal(t, 30*time.Second, settings.TickTimeout)
	assert.Equal(t, "15:04:05", settings.TimeFormat)
	assert.Equal(t, time.UTC, settings.Location)
	assert.Equal(t, 60, settings.RequestsPerMinute)
	assert.Equal(t, 2, settings.RequestBurst)
	assert.Equal(t, 0, settings.AuditRetention)
}

func TestLoadSettings_InvalidDuration(t *testing.T) {
	store := writeConfig(t, "[loops]\nclock_interval = \"never\"\n")

	_, err := LoadSettings(store)

	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
	assert.Contains(t, err.Error(), KeyClockInterval)
}

func TestLoadSettings_UnknownTimezone(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{KeyTimezone: "Mars/Olympus_Mons"})

	_, err := LoadSettings(store)

	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestLoadSettings_ValidationRuns(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{KeyBurst: 0})

	_, err := LoadSettings(store)

	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestLoadSettings_DurationValueKinds(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyRotationInterval: 15 * time.Second,
		KeyClockInterval:    "90s",
		KeyRetryBackoff:     int64(45),
	})

	settings, err := LoadSettings(store)

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, settings.RotationInterval)
	assert.Equal(t, 90*time.Second, settings.ClockInterval)
	assert.Equal(t, 45*time.Second, settings.RetryBackoff)
}

func TestLoadProfileConfig(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		want    ProfileConfig
		wantErr bool
	}{
		{
			name: "defaults",
			want: ProfileConfig{Backend: BackendFilesystem, Dir: filepath.Join("/cfg", "account")},
		},
		{
			name:   "memory backend",
			values: map[string]any{KeyProfileBackend: BackendMemory},
			want:   ProfileConfig{Backend: BackendMemory, Dir: filepath.Join("/cfg", "account")},
		},
		{
			name:   "custom dir",
			values: map[string]any{KeyProfileDir: "/srv/account"},
			want:   ProfileConfig{Backend: BackendFilesystem, Dir: "/srv/account"},
		},
		{
			name:    "unknown backend",
			values:  map[string]any{KeyProfileBackend: "telepathy"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore(tt.values)

			got, err := LoadProfileConfig(store, "/cfg")

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidSettings)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadProfileConfig_FromFile(t *testing.T) {
	store := writeConfig(t, "[profile]\nbackend = \"memory\"\n")

	got, err := LoadProfileConfig(store, "/cfg")

	require.NoError(t, err)
	assert.Equal(t, BackendMemory, got.Backend)
}

func TestLoadSettings_ReportsFirstInvalidKey(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyRotationInterval: "never",
		KeyClockInterval:    "never",
		KeyTickTimeout:      "never",
	})

	for range 20 {
		_, err := LoadSettings(store)
		require.Error(t, err)
		assert.Contains(t, err.Error(), KeyRotationInterval)
	}
}
