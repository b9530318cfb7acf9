package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/openworld/internal/model"
)

// WorldContent is the placed content of one world.
type WorldContent struct {
	Mobs   []model.MobVob
	Sounds []model.SoundVob
	Zones  []model.ZoneVob
}

// WorldRepository stores placed mobs, sound emitters and music zones per world.
type WorldRepository struct {
	pool *pgxpool.Pool
}

// NewWorldRepository creates a new WorldRepository.
func NewWorldRepository(pool *pgxpool.Pool) *WorldRepository {
	return &WorldRepository{pool: pool}
}

// Save replaces the stored content of world in a single transaction.
func (r *WorldRepository) Save(ctx context.Context, world string, c *WorldContent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for world %s: %w", world, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Удаляем старое содержимое мира
	for _, table := range []string{"mobs", "sound_vobs", "zones"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE world = $1`, world); err != nil {
			return fmt.Errorf("clearing %s of world %s: %w", table, world, err)
		}
	}

	// Вставляем заново через COPY, порядок задаёт колонка ord
	if err := copyMobs(ctx, tx, world, c.Mobs); err != nil {
		return err
	}
	if err := copySounds(ctx, tx, world, c.Sounds); err != nil {
		return err
	}
	if err := copyZones(ctx, tx, world, c.Zones); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction for world %s: %w", world, err)
	}

	slog.Info("world content saved",
		"world", world,
		"mobs", len(c.Mobs),
		"sounds", len(c.Sounds),
		"zones", len(c.Zones))
	return nil
}

func copyMobs(ctx context.Context, tx pgx.Tx, world string, mobs []model.MobVob) error {
	if len(mobs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(mobs))
	for i, m := range mobs {
		rows = append(rows, []any{
			world, int32(i), int16(m.Kind), m.Name, m.FocusName, m.Visual, m.Owner, m.StateNum,
			m.TriggerTarget, m.OnStateFunc, m.Contains, bboxArray(m.BBox), m.Transform.M[:],
		})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"mobs"},
		[]string{"world", "ord", "kind", "name", "focus", "visual", "owner", "state_num",
			"trigger_target", "on_state_func", "contains", "bbox", "transform"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting mobs of world %s: %w", world, err)
	}
	return nil
}

func copySounds(ctx context.Context, tx pgx.Tx, world string, sounds []model.SoundVob) error {
	if len(sounds) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(sounds))
	for i, s := range sounds {
		rows = append(rows, []any{
			world, int32(i), s.Name, s.Name2, s.Position.X, s.Position.Y, s.Position.Z, s.Radius,
			int16(s.Mode), s.StartOn, s.RandDelay, s.RandDelayVar, s.Daytime, s.StartHour, s.EndHour,
		})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"sound_vobs"},
		[]string{"world", "ord", "name", "name2", "x", "y", "z", "radius",
			"mode", "start_on", "rand_delay", "rand_delay_var", "daytime", "start_hour", "end_hour"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting sound vobs of world %s: %w", world, err)
	}
	return nil
}

func copyZones(ctx context.Context, tx pgx.Tx, world string, zones []model.ZoneVob) error {
	if len(zones) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(zones))
	for i, z := range zones {
		rows = append(rows, []any{world, int32(i), z.Name, bboxArray(z.BBox), z.IsDefault})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"zones"},
		[]string{"world", "ord", "name", "bbox", "is_default"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting zones of world %s: %w", world, err)
	}
	return nil
}

// Load reads the stored content of world in insertion order.
// A world that was never saved yields empty content.
func (r *WorldRepository) Load(ctx context.Context, world string) (*WorldContent, error) {
	c := &WorldContent{}
	var err error
	if c.Mobs, err = r.loadMobs(ctx, world); err != nil {
		return nil, err
	}
	if c.Sounds, err = r.loadSounds(ctx, world); err != nil {
		return nil, err
	}
	if c.Zones, err = r.loadZones(ctx, world); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *WorldRepository) loadMobs(ctx context.Context, world string) ([]model.MobVob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT kind, name, focus, visual, owner, state_num,
		       trigger_target, on_state_func, contains, bbox, transform
		FROM mobs
		WHERE world = $1
		ORDER BY ord
	`, world)
	if err != nil {
		return nil, fmt.Errorf("loading mobs of world %s: %w", world, err)
	}
	defer rows.Close()

	var mobs []model.MobVob
	for rows.Next() {
		var (
			m         model.MobVob
			kind      int16
			bbox      []float32
			transform []float32
		)
		if err := rows.Scan(&kind, &m.Name, &m.FocusName, &m.Visual, &m.Owner, &m.StateNum,
			&m.TriggerTarget, &m.OnStateFunc, &m.Contains, &bbox, &transform); err != nil {
			return nil, fmt.Errorf("scanning mob row: %w", err)
		}
		m.Kind = model.VobKind(kind)
		if m.BBox, err = arrayBBox(bbox); err != nil {
			return nil, fmt.Errorf("mob %s: %w", m.Name, err)
		}
		if len(transform) != len(m.Transform.M) {
			return nil, fmt.Errorf("mob %s: transform has %d elements", m.Name, len(transform))
		}
		copy(m.Transform.M[:], transform)
		mobs = append(mobs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mob rows: %w", err)
	}
	return mobs, nil
}

func (r *WorldRepository) loadSounds(ctx context.Context, world string) ([]model.SoundVob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, name2, x, y, z, radius, mode, start_on,
		       rand_delay, rand_delay_var, daytime, start_hour, end_hour
		FROM sound_vobs
		WHERE world = $1
		ORDER BY ord
	`, world)
	if err != nil {
		return nil, fmt.Errorf("loading sound vobs of world %s: %w", world, err)
	}
	defer rows.Close()

	var sounds []model.SoundVob
	for rows.Next() {
		var (
			s    model.SoundVob
			mode int16
		)
		if err := rows.Scan(&s.Name, &s.Name2, &s.Position.X, &s.Position.Y, &s.Position.Z, &s.Radius,
			&mode, &s.StartOn, &s.RandDelay, &s.RandDelayVar, &s.Daytime, &s.StartHour, &s.EndHour); err != nil {
			return nil, fmt.Errorf("scanning sound vob row: %w", err)
		}
		s.Mode = model.SoundMode(mode)
		sounds = append(sounds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sound vob rows: %w", err)
	}
	return sounds, nil
}

func (r *WorldRepository) loadZones(ctx context.Context, world string) ([]model.ZoneVob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, bbox, is_default
		FROM zones
		WHERE world = $1
		ORDER BY ord
	`, world)
	if err != nil {
		return nil, fmt.Errorf("loading zones of world %s: %w", world, err)
	}
	defer rows.Close()

	var zones []model.ZoneVob
	for rows.Next() {
		var (
			z    model.ZoneVob
			bbox []float32
		)
		if err := rows.Scan(&z.Name, &bbox, &z.IsDefault); err != nil {
			return nil, fmt.Errorf("scanning zone row: %w", err)
		}
		if z.BBox, err = arrayBBox(bbox); err != nil {
			return nil, fmt.Errorf("zone %s: %w", z.Name, err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone rows: %w", err)
	}
	return zones, nil
}

func bboxArray(b model.BBox) []float32 {
	return []float32{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}

func arrayBBox(a []float32) (model.BBox, error) {
	if len(a) != 6 {
		return model.BBox{}, fmt.Errorf("bbox has %d elements", len(a))
	}
	return model.BBox{
		Min: model.V3(a[0], a[1], a[2]),
		Max: model.V3(a[3], a[4], a[5]),
	}, nil
}
