package db_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/openworld/internal/db"
	"github.com/udisondev/openworld/internal/model"
	"github.com/udisondev/openworld/internal/testutil"
)

func sampleContent() *db.WorldContent {
	return &db.WorldContent{
		Mobs: []model.MobVob{
			{
				Kind:        model.VobMobContainer,
				Name:        "CHEST_01",
				FocusName:   "MOBNAME_CHEST",
				Visual:      "CHEST.MDS",
				Owner:       "DIEGO",
				StateNum:    1,
				OnStateFunc: "CHESTUSE",
				Contains:    "ItMi_Gold:25",
				BBox:        model.BBox{Min: model.V3(-1, -2, -3), Max: model.V3(4, 5, 6)},
				Transform:   model.Translation(10, 20, 30).Mul(model.RotationY(90)),
			},
			{Kind: model.VobMobSwitch, Name: "LEVER_01", StateNum: 1, TriggerTarget: "GATE", Transform: model.Identity()},
		},
		Sounds: []model.SoundVob{
			{Name: "CAMPFIRE", Position: model.V3(1, 2, 3), Radius: 1500, Mode: model.SoundLoop, StartOn: true},
			{Name: "BIRDS", Name2: "OWL", Mode: model.SoundRandom, RandDelay: 5, RandDelayVar: 2,
				Daytime: true, StartHour: 6, EndHour: 20.5},
		},
		Zones: []model.ZoneVob{
			{Name: "ZEN_MUSIC_OC", BBox: model.BBox{Min: model.V3(-10, -10, -10), Max: model.V3(10, 10, 10)}},
			{Name: "ZEN_MUSIC_DEF", IsDefault: true},
		},
	}
}

func TestWorldRepository_SaveLoad(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := db.NewWorldRepository(pool)

	want := sampleContent()
	require.NoError(t, repo.Save(ctx, "OLDCAMP", want))

	got, err := repo.Load(ctx, "OLDCAMP")
	require.NoError(t, err)
	assert.Equal(t, want.Mobs, got.Mobs)
	assert.Equal(t, want.Sounds, got.Sounds)
	assert.Equal(t, want.Zones, got.Zones)

	// Save replaces, it never appends.
	want.Mobs = want.Mobs[:1]
	require.NoError(t, repo.Save(ctx, "OLDCAMP", want))
	got, err = repo.Load(ctx, "OLDCAMP")
	require.NoError(t, err)
	assert.Len(t, got.Mobs, 1)

	other, err := repo.Load(ctx, "NEWCAMP")
	require.NoError(t, err)
	assert.Empty(t, other.Mobs)
	assert.Empty(t, other.Zones)
}

func TestSaveRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)
	repo := db.NewSaveRepository(pool)

	first, err := repo.Create(ctx, "OLDCAMP", 2, []byte{1, 2, 3})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := repo.Create(ctx, "OLDCAMP", 3, []byte{4, 5})
	require.NoError(t, err)

	slot, err := repo.Load(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, first, slot.ID)
	assert.Equal(t, 2, slot.Objects)
	assert.Equal(t, []byte{1, 2, 3}, slot.Payload)

	latest, err := repo.Latest(ctx, "OLDCAMP")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second, latest.ID)

	ids, err := repo.List(ctx, "OLDCAMP")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second, first}, ids)

	require.NoError(t, repo.Delete(ctx, first))
	slot, err = repo.Load(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, slot)

	none, err := repo.Latest(ctx, "NEWCAMP")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMigrate_AlreadyApplied(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	version, err := db.Migrate(ctx, sqlDB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}
