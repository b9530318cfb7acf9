package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SaveSlot - один сохранённый снимок интерактивных объектов мира.
type SaveSlot struct {
	ID        uuid.UUID
	World     string
	Objects   int
	Payload   []byte
	CreatedAt time.Time
}

// SaveRepository stores save slots.
type SaveRepository struct {
	pool *pgxpool.Pool
}

// NewSaveRepository creates a new SaveRepository.
func NewSaveRepository(pool *pgxpool.Pool) *SaveRepository {
	return &SaveRepository{pool: pool}
}

// Create stores payload as a new slot and returns its ID.
func (r *SaveRepository) Create(ctx context.Context, world string, objects int, payload []byte) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO save_slots (slot_id, world, objects, payload, created_at)
		 VALUES ($1::uuid, $2, $3, $4, $5)`,
		id.String(), world, int32(objects), payload, time.Now(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating save slot for world %s: %w", world, err)
	}
	slog.Info("save slot created", "slot", id, "world", world, "objects", objects, "bytes", len(payload))
	return id, nil
}

// Load returns a slot by ID. Returns nil, nil if the slot does not exist.
func (r *SaveRepository) Load(ctx context.Context, id uuid.UUID) (*SaveSlot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT slot_id::text, world, objects, payload, created_at
		FROM save_slots
		WHERE slot_id = $1::uuid
	`, id.String())
	slot, err := scanSlot(row)
	if err != nil {
		return nil, fmt.Errorf("loading save slot %s: %w", id, err)
	}
	return slot, nil
}

// Latest returns the newest slot of world. Returns nil, nil if there is none.
func (r *SaveRepository) Latest(ctx context.Context, world string) (*SaveSlot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT slot_id::text, world, objects, payload, created_at
		FROM save_slots
		WHERE world = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, world)
	slot, err := scanSlot(row)
	if err != nil {
		return nil, fmt.Errorf("loading latest save slot of world %s: %w", world, err)
	}
	return slot, nil
}

// List returns slot IDs of world, newest first.
func (r *SaveRepository) List(ctx context.Context, world string) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT slot_id::text FROM save_slots WHERE world = $1 ORDER BY created_at DESC`, world)
	if err != nil {
		return nil, fmt.Errorf("listing save slots of world %s: %w", world, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning save slot id: %w", err)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parsing save slot id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating save slot rows: %w", err)
	}
	return ids, nil
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (r *SaveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM save_slots WHERE slot_id = $1::uuid`, id.String()); err != nil {
		return fmt.Errorf("deleting save slot %s: %w", id, err)
	}
	return nil
}

func scanSlot(row pgx.Row) (*SaveSlot, error) {
	var (
		slot    SaveSlot
		id      string
		objects int32
	)
	err := row.Scan(&id, &slot.World, &objects, &slot.Payload, &slot.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if slot.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing slot id %q: %w", id, err)
	}
	slot.Objects = int(objects)
	return &slot, nil
}
