package data

import (
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openworld/internal/model"
)

const visualsYAML = `
skeletons:
  - name: humans
    clips:
      - {name: t_bench_s0_2_stand, duration: 500ms}
      - {name: s_bench_s1, duration: 2s, loop: true}
visuals:
  - name: BENCH_1_OC.ASC
    clips:
      - {name: s_s0}
      - {name: t_s0_2_s1, duration: 250ms}
    points:
      - {name: zs_pos0, node: 1, offset: [0, 0, 100], yaw: 90}
      - {name: ZS_POS1, offset: [50, 0, 100]}
  - name: CHEST.MDS
    skeleton: HUMANS
  - name: STONE.3DS
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"sfx.yaml": {Data: []byte(`
effects:
  - {name: fire_small, file: FIRE.WAV, volume: 0.8}
  - {name: CHEST_OPEN, file: CHEST.WAV}
`)},
		"music.yaml": {Data: []byte(`
themes:
  - {name: oc_day_std, file: OC_DAY.WAV}
  - {name: OC_NGT_STD, file: OC_NGT.WAV, volume: 0.5, loop: false}
`)},
		"visuals.yaml": {Data: []byte(visualsYAML)},
		"world.yaml": {Data: []byte(`
name: OLDCAMP
player: {name: HERO, position: [10, 0, 20], translate_y: 90, skeleton: HUMANS, overlays: [HUMANS_RELAXED]}
npcs:
  - {name: DIEGO, position: [100, 0, 0], skeleton: HUMANS}
mobs:
  - kind: oCMobContainer
    name: CHEST_01
    focus: MOBNAME_CHEST
    visual: CHEST.MDS
    owner: diego
    state_num: 1
    contains: "ItFo_Apple:3,ItMi_Gold"
    position: [500, 0, 500]
    bbox: {min: [450, 0, 450], max: [550, 80, 550]}
  - {kind: oCMobWeird, name: THING}
sounds:
  - {name: CAMPFIRE, position: [0, 0, 0], radius: 1500}
  - {name: BIRDS, mode: random, delay: 5, delay_var: 2, daytime: true, start_hour: 6, end_hour: 20, name2: OWL, start_on: false}
zones:
  - {name: ZEN_MUSIC_OC, min: [-1000, -1000, -1000], max: [1000, 1000, 1000]}
  - {name: ZEN_MUSIC_DEF, default: true}
blockers:
  - {min: [0, 0, 0], max: [100, 300, 100]}
`)},
	}
}

func TestLoadTables(t *testing.T) {
	tables, err := LoadTables(testFS())
	require.NoError(t, err)

	fire, ok := tables.Effects()["FIRE_SMALL"]
	require.True(t, ok)
	assert.Equal(t, "FIRE.WAV", fire.File)
	assert.InDelta(t, 0.8, fire.Volume, 1e-6)
	assert.Equal(t, float32(1), tables.Effects()["CHEST_OPEN"].Volume)

	day := tables.Themes()["OC_DAY_STD"]
	require.NotNil(t, day)
	assert.True(t, day.Loop)
	assert.Equal(t, float32(1), day.Volume)
	night := tables.Themes()["OC_NGT_STD"]
	require.NotNil(t, night)
	assert.False(t, night.Loop)
}

func TestTables_Visuals(t *testing.T) {
	tables, err := LoadTables(testFS())
	require.NoError(t, err)

	points := tables.AttachPoints("bench_1_oc.asc")
	require.Len(t, points, 2)
	assert.Equal(t, model.AttachPointDef{Name: "ZS_POS0", Node: 1, Offset: model.V3(0, 0, 100), Yaw: 90}, points[0])

	bench, ok := tables.Skeleton("BENCH_1_OC.ASC")
	require.True(t, ok)
	seq, ok := bench.Sequence("T_S0_2_S1")
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, seq.Duration)

	chest, ok := tables.Skeleton("CHEST.MDS")
	require.True(t, ok)
	assert.Equal(t, "humans", chest.Name())

	_, ok = tables.Skeleton("STONE.3DS")
	assert.False(t, ok, "visual without clips")
	_, ok = tables.Skeleton("MISSING")
	assert.False(t, ok)
	assert.Nil(t, tables.AttachPoints("MISSING"))

	humans, ok := tables.CharacterSkeleton("HUMANS")
	require.True(t, ok)
	seq, ok = humans.Sequence("S_BENCH_S1")
	require.True(t, ok)
	assert.True(t, seq.Loop)
}

func TestLoadTables_Missing(t *testing.T) {
	tables, err := LoadTables(fstest.MapFS{})
	require.NoError(t, err)
	assert.Empty(t, tables.Effects())
	assert.Empty(t, tables.Themes())
}

func TestLoadTables_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"bad yaml", EffectsFile, "effects: [\n"},
		{"effect without file", EffectsFile, "effects:\n  - {name: X}\n"},
		{"theme without name", ThemesFile, "themes:\n  - {file: X.WAV}\n"},
		{"unknown skeleton", VisualsFile, "visuals:\n  - {name: X, skeleton: NOPE}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTables(fstest.MapFS{tt.file: {Data: []byte(tt.body)}})
			assert.Error(t, err)
		})
	}
}

func TestLoadWorld(t *testing.T) {
	w, err := LoadWorld(testFS(), "world.yaml")
	require.NoError(t, err)

	assert.Equal(t, "OLDCAMP", w.Name)
	assert.Equal(t, "HERO", w.Player.Name)
	assert.Equal(t, float32(90), w.Player.TranslateY)
	assert.Equal(t, []string{"HUMANS_RELAXED"}, w.Player.Overlays)
	require.Len(t, w.Npcs, 1)

	require.Len(t, w.Mobs, 2)
	chest := w.Mobs[0]
	assert.Equal(t, model.VobMobContainer, chest.Kind)
	assert.Equal(t, "ItFo_Apple:3,ItMi_Gold", chest.Contains)
	assert.Equal(t, model.V3(500, 0, 500), chest.Transform.Origin())
	assert.Equal(t, model.V3(550, 80, 550), chest.BBox.Max)
	assert.Equal(t, model.VobMob, w.Mobs[1].Kind, "unknown class")

	require.Len(t, w.Sounds, 2)
	assert.Equal(t, model.SoundLoop, w.Sounds[0].Mode)
	assert.True(t, w.Sounds[0].StartOn)
	birds := w.Sounds[1]
	assert.Equal(t, model.SoundRandom, birds.Mode)
	assert.False(t, birds.StartOn)
	assert.True(t, birds.Daytime)
	assert.Equal(t, "OWL", birds.Name2)
	assert.Equal(t, float32(5), birds.RandDelay)

	require.Len(t, w.Zones, 2)
	assert.True(t, w.Zones[1].IsDefault)
	require.Len(t, w.Blockers, 1)
}

func TestLoadWorld_Errors(t *testing.T) {
	_, err := LoadWorld(fstest.MapFS{}, "world.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = LoadWorld(fstest.MapFS{
		"w.yaml": {Data: []byte("sounds:\n  - {name: X, mode: sometimes}\n")},
	}, "w.yaml")
	assert.ErrorContains(t, err, "unknown sound mode")
}
