// Package world holds the runtime side of a world: the clock, live characters
// behind weak handles and the event and script hubs objects talk to.
package world

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/udisondev/openworld/internal/game/interactive"
	"github.com/udisondev/openworld/internal/model"
)

// World is the set of live characters of a running world.
type World struct {
	ids    *ObjectIDGenerator
	npcs   Registry[*Npc]
	player *Npc
}

// New creates an empty world.
func New() *World {
	return &World{ids: NewObjectIDGenerator()}
}

// IDs returns the world's ID generator.
func (w *World) IDs() *ObjectIDGenerator { return w.ids }

// AddNpc registers a character. The first player added becomes the controlled player.
func (w *World) AddNpc(n *Npc) {
	w.npcs.Add(n.ID(), n)
	if n.IsPlayer() && w.player == nil {
		w.player = n
	}
	slog.Debug("character added", "npc", n.Name(), "id", n.ID(), "player", n.IsPlayer())
}

// RemoveNpc drops a character; handles to it become stale.
func (w *World) RemoveNpc(id model.ObjectID) {
	if !w.npcs.Remove(id) {
		return
	}
	if w.player != nil && w.player.ID() == id {
		w.player = nil
	}
}

// Npc resolves a handle.
func (w *World) Npc(id model.ObjectID) (*Npc, bool) { return w.npcs.Get(id) }

// Character resolves a handle for the interactive controller.
func (w *World) Character(id model.ObjectID) (interactive.Character, bool) {
	n, ok := w.npcs.Get(id)
	if !ok {
		return nil, false
	}
	return n, true
}

// Player returns the controlled player, nil if none.
func (w *World) Player() *Npc { return w.player }

// Len returns the number of live characters.
func (w *World) Len() int { return w.npcs.Len() }

// Npcs returns the live characters ordered by ID.
func (w *World) Npcs() []*Npc {
	out := make([]*Npc, 0, w.npcs.Len())
	w.npcs.Range(func(_ model.ObjectID, n *Npc) bool {
		out = append(out, n)
		return true
	})
	slices.SortFunc(out, func(a, b *Npc) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

// Update advances per-character state (animation overlays).
func (w *World) Update(now uint64) {
	w.npcs.Range(func(_ model.ObjectID, n *Npc) bool {
		n.Update(now)
		return true
	})
}
