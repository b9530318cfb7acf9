package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "worldsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWorld_MissingFile(t *testing.T) {
	cfg, err := LoadWorld(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWorld(), cfg)
}

func TestLoadWorld_Overrides(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
world: oldcamp
tick_interval: 20ms
clock:
  start_hour: 21.5
audio:
  enabled: false
  zone_refresh: 1s
database:
  enabled: true
  host: db
`)
	cfg, err := LoadWorld(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "oldcamp", cfg.Name)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, float32(21.5), cfg.Clock.StartHour)
	assert.Equal(t, float32(6), cfg.Clock.TimeScale, "default kept")
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, time.Second, cfg.Audio.ZoneRefresh)
	assert.Equal(t, float32(3500), cfg.Audio.MaxDistance)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://openworld:openworld@db:5432/openworld?sslmode=disable", cfg.Database.DSN())
}

func TestLoadWorld_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "world: [\n"},
		{"tick", "tick_interval: 0s\n"},
		{"hour", "clock: {start_hour: 24}\n"},
		{"scale", "clock: {time_scale: -1}\n"},
		{"rate", "audio: {sample_rate: 0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWorld(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
