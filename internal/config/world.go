package config

import (
	"fmt"
	"time"
)

// EnvPath overrides the config file location.
const EnvPath = "OPENWORLD_CONFIG"

// DefaultPath is used when EnvPath is not set.
const DefaultPath = "config/worldsim.yaml"

// World holds all configuration of the world simulation.
type World struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	Name      string `yaml:"world"`
	DataDir   string `yaml:"data_dir"`
	WorldFile string `yaml:"world_file"`
	// Simulation step; the interactive controller and the audio scheduler tick at this rate.
	TickInterval time.Duration `yaml:"tick_interval"`

	Clock    ClockConfig    `yaml:"clock"`
	Audio    AudioConfig    `yaml:"audio"`
	Database DatabaseConfig `yaml:"database"`
}

// ClockConfig sets up the game clock.
type ClockConfig struct {
	Day       int     `yaml:"day"`
	StartHour float32 `yaml:"start_hour"`
	// Game minutes per real second; 1 game day = 24*60/TimeScale seconds.
	TimeScale float32 `yaml:"time_scale"`
}

// AudioConfig configures the mixer and the audio scheduler.
type AudioConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Output        string        `yaml:"output"` // raw PCM file, empty = discard
	SampleRate    int           `yaml:"sample_rate"`
	Buffer        time.Duration `yaml:"buffer"`
	MaxDistance   float32       `yaml:"max_distance"`
	HeadOffset    float32       `yaml:"head_offset"`
	ZoneRefresh   time.Duration `yaml:"zone_refresh"`
	DefaultVolume float64       `yaml:"default_volume"`
}

// DefaultWorld returns World config with sensible defaults.
func DefaultWorld() World {
	return World{
		LogLevel:     "info",
		Name:         "world",
		DataDir:      "data",
		WorldFile:    "world.yaml",
		TickInterval: 50 * time.Millisecond,
		Clock: ClockConfig{
			StartHour: 8,
			TimeScale: 6,
		},
		Audio: AudioConfig{
			Enabled:       true,
			SampleRate:    44100,
			Buffer:        50 * time.Millisecond,
			MaxDistance:   3500,
			HeadOffset:    180,
			ZoneRefresh:   5 * time.Second,
			DefaultVolume: 1,
		},
		Database: DefaultDatabase(),
	}
}

// LoadWorld loads world config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadWorld(path string) (World, error) {
	cfg := DefaultWorld()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (w World) validate() error {
	switch {
	case w.TickInterval <= 0:
		return fmt.Errorf("tick_interval must be positive, got %s", w.TickInterval)
	case w.Clock.StartHour < 0 || w.Clock.StartHour >= 24:
		return fmt.Errorf("clock.start_hour out of range: %v", w.Clock.StartHour)
	case w.Clock.TimeScale < 0:
		return fmt.Errorf("clock.time_scale must not be negative: %v", w.Clock.TimeScale)
	case w.Audio.Enabled && w.Audio.SampleRate <= 0:
		return fmt.Errorf("audio.sample_rate must be positive, got %d", w.Audio.SampleRate)
	}
	return nil
}
