package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openworld/internal/config"
	"github.com/udisondev/openworld/internal/testutil"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func sampleConfig() *config.World {
	cfg := config.DefaultWorld()
	cfg.DataDir = "../../data"
	cfg.Audio.Enabled = false
	return &cfg
}

func TestBuild_SampleWorld(t *testing.T) {
	sim, err := build(testutil.ContextWithTimeout(t, 5*time.Second), sampleConfig(), nil)
	require.NoError(t, err)
	defer sim.close()

	assert.Equal(t, 3, sim.world.Len())
	assert.Equal(t, 4, sim.ctrl.Len())
	require.NotNil(t, sim.world.Player())
	assert.Equal(t, "Hero", sim.world.Player().Name())
	assert.Nil(t, sim.sched)

	chest, ok := sim.ctrl.FindByTag("OC_CHEST_DIEGO")
	require.True(t, ok)
	assert.True(t, chest.IsContainer())
	assert.Equal(t, "DIEGO", chest.OwnerName())
}

func TestSimulation_CharactersPickObjects(t *testing.T) {
	sim, err := build(testutil.ContextWithTimeout(t, 5*time.Second), sampleConfig(), nil)
	require.NoError(t, err)
	defer sim.close()

	sim.step(sim.interval)

	byName := make(map[string]string)
	for _, n := range sim.world.Npcs() {
		if obj, ok := sim.ctrl.Occupied(n.ID()); ok {
			byName[n.Name()] = obj.Tag()
		}
	}
	assert.Equal(t, "OC_BENCH_01", byName["Hero"])
	assert.Equal(t, "OC_BENCH_01", byName["Diego"])
	assert.Equal(t, "OC_GATE_LEVER", byName["Thorus"])
}
