package testutil

import (
	"sync"

	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/model"
)

// Characters - in-memory реестр персонажей для unit тестов.
type Characters[C any] struct {
	mu    sync.RWMutex
	items map[model.ObjectID]C
}

// NewCharacters creates an empty registry.
func NewCharacters[C any]() *Characters[C] {
	return &Characters[C]{items: make(map[model.ObjectID]C)}
}

// Put registers c under id.
func (r *Characters[C]) Put(id model.ObjectID, c C) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[id] = c
}

// Remove drops id, making existing handles stale.
func (r *Characters[C]) Remove(id model.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// Character looks up a handle.
func (r *Characters[C]) Character(id model.ObjectID) (C, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	return c, ok
}

// Clock - ручные часы: время двигается только через Advance.
type Clock struct {
	mu   sync.Mutex
	ms   uint64
	time model.GameTime
}

// NewClock creates a clock at the given game time.
func NewClock(t model.GameTime) *Clock {
	return &Clock{time: t}
}

func (c *Clock) TickCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ms
}

func (c *Clock) Time() model.GameTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.time
}

// Advance moves the tick counter by ms.
func (c *Clock) Advance(ms uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ms += ms
}

// SetTime sets the game time of day.
func (c *Clock) SetTime(t model.GameTime) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time = t
}

// Physics answers every feasibility query with Feasible.
type Physics struct {
	Feasible bool
}

func (p Physics) MoveIsFeasible(model.Vec3, model.Vec3) bool { return p.Feasible }

// Visuals serves attach points and skeletons from maps.
type Visuals struct {
	Points    map[string][]model.AttachPointDef
	Skeletons map[string]anim.Catalog
}

// NewVisuals creates empty visual tables.
func NewVisuals() *Visuals {
	return &Visuals{
		Points:    make(map[string][]model.AttachPointDef),
		Skeletons: make(map[string]anim.Catalog),
	}
}

func (v *Visuals) AttachPoints(visual string) []model.AttachPointDef {
	return v.Points[visual]
}

func (v *Visuals) Skeleton(visual string) (anim.Catalog, bool) {
	c, ok := v.Skeletons[visual]
	return c, ok
}

// Clips builds zero-length non-looping sequences with the given names.
func Clips(names ...string) []anim.Sequence {
	out := make([]anim.Sequence, 0, len(names))
	for _, n := range names {
		out = append(out, anim.Sequence{Name: n})
	}
	return out
}
