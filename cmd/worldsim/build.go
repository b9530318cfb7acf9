package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/udisondev/openworld/internal/audio"
	"github.com/udisondev/openworld/internal/config"
	"github.com/udisondev/openworld/internal/data"
	"github.com/udisondev/openworld/internal/db"
	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/game/geo"
	"github.com/udisondev/openworld/internal/game/interactive"
	"github.com/udisondev/openworld/internal/game/music"
	"github.com/udisondev/openworld/internal/game/sound"
	"github.com/udisondev/openworld/internal/game/zone"
	"github.com/udisondev/openworld/internal/world"
)

const (
	geoCellSize   = 100
	geoAbsorption = 0.35
)

// build loads content and assembles the simulation.
func build(ctx context.Context, cfg *config.World, store *storage) (*simulation, error) {
	fsys := os.DirFS(cfg.DataDir)

	tables, err := data.LoadTables(fsys)
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	content, err := data.LoadWorld(fsys, cfg.WorldFile)
	if err != nil {
		return nil, fmt.Errorf("loading world: %w", err)
	}
	if store != nil {
		if err := syncContent(ctx, store.worlds, cfg.Name, content); err != nil {
			return nil, err
		}
	}

	grid := geo.NewGrid(geoCellSize, geoAbsorption)
	for _, b := range content.Blockers {
		grid.AddBlocker(b)
	}

	clock := world.NewClock(cfg.Clock.Day, cfg.Clock.StartHour, cfg.Clock.TimeScale)
	w := world.New()
	spawn(w, tables, clock, content.Player, true)
	for _, c := range content.Npcs {
		spawn(w, tables, clock, c, false)
	}

	bus := world.NewBus()
	scripts := world.NewScripts()
	ctrl := interactive.NewController(interactive.Deps{
		Characters: w,
		Clock:      clock,
		Physics:    grid,
		Bus:        bus,
		Scripts:    scripts,
	})
	for _, mob := range content.Mobs {
		ctrl.Add(interactive.NewObject(mob, tables))
	}
	if store != nil {
		if err := restoreObjects(ctx, store.saves, cfg.Name, tables, ctrl); err != nil {
			return nil, err
		}
	}

	sim := &simulation{
		interval: cfg.TickInterval,
		clock:    clock,
		world:    w,
		ctrl:     ctrl,
		bus:      bus,
		scripts:  scripts,
	}

	if cfg.Audio.Enabled {
		if err := sim.setupAudio(cfg, fsys, tables, grid, content); err != nil {
			sim.close()
			return nil, err
		}
	}
	sim.wireEvents()

	slog.Info("world loaded",
		"world", content.Name,
		"characters", w.Len(),
		"objects", ctrl.Len(),
		"blockers", grid.Len(),
		"audio", cfg.Audio.Enabled)
	return sim, nil
}

func spawn(w *world.World, tables *data.Tables, clock *world.Clock, c data.Character, player bool) {
	if c.Name == "" {
		return
	}
	var skeleton anim.Catalog
	if sk, ok := tables.CharacterSkeleton(c.Skeleton); ok {
		skeleton = sk
	}

	id := w.IDs().NextNpcID()
	if player {
		id = w.IDs().NextPlayerID()
	}
	n := world.NewNpc(id, c.Name, player, c.Position, c.TranslateY, skeleton, clock)
	for _, name := range c.Overlays {
		ov, ok := tables.CharacterSkeleton(name)
		if !ok {
			slog.Warn("unknown overlay", "character", c.Name, "overlay", name)
			continue
		}
		n.Animations().AddOverlay(ov, 0)
	}
	w.AddNpc(n)
}

// syncContent seeds an empty database from the world file, otherwise replaces
// the file placements with the stored ones.
func syncContent(ctx context.Context, repo *db.WorldRepository, name string, w *data.World) error {
	stored, err := repo.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("loading world content: %w", err)
	}
	if len(stored.Mobs)+len(stored.Sounds)+len(stored.Zones) == 0 {
		err := repo.Save(ctx, name, &db.WorldContent{Mobs: w.Mobs, Sounds: w.Sounds, Zones: w.Zones})
		if err != nil {
			return fmt.Errorf("seeding world content: %w", err)
		}
		slog.Info("world content seeded", "world", name, "mobs", len(w.Mobs), "sounds", len(w.Sounds), "zones", len(w.Zones))
		return nil
	}
	w.Mobs, w.Sounds, w.Zones = stored.Mobs, stored.Sounds, stored.Zones
	slog.Info("world content loaded from database", "world", name, "mobs", len(w.Mobs))
	return nil
}

func restoreObjects(ctx context.Context, repo *db.SaveRepository, name string, visuals interactive.Visuals, ctrl *interactive.Controller) error {
	slot, err := repo.Latest(ctx, name)
	if err != nil {
		return fmt.Errorf("loading save slot: %w", err)
	}
	if slot == nil {
		return nil
	}
	objs, err := interactive.DecodeObjects(slot.Payload, visuals)
	if err != nil {
		return fmt.Errorf("decoding save slot %s: %w", slot.ID, err)
	}
	ctrl.Restore(objs)
	slog.Info("objects restored", "slot", slot.ID, "objects", len(objs), "saved_at", slot.CreatedAt)
	return nil
}

func (s *simulation) setupAudio(cfg *config.World, fsys fs.FS, tables *data.Tables, grid *geo.Grid, content *data.World) error {
	var out io.Writer
	if cfg.Audio.Output != "" {
		f, err := os.Create(cfg.Audio.Output)
		if err != nil {
			return fmt.Errorf("opening audio output: %w", err)
		}
		s.closers = append(s.closers, f)
		out = f
	}

	s.device = audio.NewDevice(audio.Config{
		SampleRate: cfg.Audio.SampleRate,
		Buffer:     cfg.Audio.Buffer,
		Volume:     cfg.Audio.DefaultVolume,
	}, out)
	catalog := audio.NewCatalog(s.device, fsys, tables.Effects(), tables.Themes())
	loaded := catalog.Preload()
	s.music = audio.NewMusicPlayer(s.device, catalog)

	zones := zone.NewManager()
	s.sched = sound.NewScheduler(sound.Config{
		MaxDistance: cfg.Audio.MaxDistance,
		HeadOffset:  cfg.Audio.HeadOffset,
		ZoneRefresh: cfg.Audio.ZoneRefresh,
		Seed:        uint64(time.Now().UnixNano()),
	}, sound.Deps{
		Catalog:  catalog,
		Clock:    s.clock,
		Occluder: grid,
		Zones:    zones,
		Music:    music.NewSelector(catalog, s.music),
	})

	for _, z := range content.Zones {
		if z.IsDefault {
			s.sched.SetDefaultZone(z)
			continue
		}
		s.sched.AddZone(z)
	}
	placed := 0
	for _, v := range content.Sounds {
		if s.sched.AddSound(v) {
			placed++
		}
	}
	slog.Info("audio ready",
		"sample_rate", cfg.Audio.SampleRate,
		"zones", zones.Len(),
		"emitters", placed,
		"buffers", loaded,
		"effects", len(tables.Effects()),
		"themes", len(tables.Themes()))
	return nil
}
