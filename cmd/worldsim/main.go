package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/openworld/internal/config"
	"github.com/udisondev/openworld/internal/db"
	"github.com/udisondev/openworld/internal/game/interactive"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.DefaultPath
	if p := os.Getenv(config.EnvPath); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadWorld(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("worldsim starting", "config", cfgPath, "world", cfg.Name, "log_level", cfg.LogLevel)

	var store *storage
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		store = newStorage(database)
	}

	sim, err := build(ctx, &cfg, store)
	if err != nil {
		return err
	}
	defer sim.close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting simulation", "interval", cfg.TickInterval)
		if err := sim.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if sim.device != nil {
		g.Go(func() error {
			if err := sim.device.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("audio device: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	if store != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.saveObjects(saveCtx, cfg.Name, sim.ctrl); err != nil {
			return fmt.Errorf("saving world: %w", err)
		}
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// storage bundles the repositories the binary uses.
type storage struct {
	worlds *db.WorldRepository
	saves  *db.SaveRepository
}

func newStorage(d *db.DB) *storage {
	return &storage{
		worlds: db.NewWorldRepository(d.Pool()),
		saves:  db.NewSaveRepository(d.Pool()),
	}
}

func (s *storage) saveObjects(ctx context.Context, world string, ctrl *interactive.Controller) error {
	_, err := s.saves.Create(ctx, world, ctrl.Len(), ctrl.Snapshot())
	return err
}
