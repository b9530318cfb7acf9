// Package geo is a coarse voxel model of static world geometry. It answers
// the physics questions of the interaction and sound subsystems: can a
// character stand somewhere, can one point see another, and how much solid
// matter lies between a sound and the listener.
package geo

import (
	"log/slog"
	"math"
	"sync"

	"github.com/udisondev/openworld/internal/model"
)

const (
	// DefaultCellSize is the edge of a voxel in world units.
	DefaultCellSize = 100
	// DefaultAbsorption is the occlusion added by every solid cell on a ray.
	DefaultAbsorption = 0.35
)

// Grid is a sparse set of solid cells. Blockers are added at world load;
// queries are safe for concurrent use.
type Grid struct {
	cellSize   float32
	absorption float32

	mu    sync.RWMutex
	solid map[Cell]struct{}
}

// NewGrid creates an empty grid. Non-positive arguments select the defaults.
func NewGrid(cellSize, absorption float32) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if absorption <= 0 {
		absorption = DefaultAbsorption
	}
	return &Grid{
		cellSize:   cellSize,
		absorption: absorption,
		solid:      make(map[Cell]struct{}),
	}
}

// CellOf returns the cell containing p.
func (g *Grid) CellOf(p model.Vec3) Cell {
	return Cell{
		X: int32(math.Floor(float64(p.X / g.cellSize))),
		Y: int32(math.Floor(float64(p.Y / g.cellSize))),
		Z: int32(math.Floor(float64(p.Z / g.cellSize))),
	}
}

// AddBlocker помечает твёрдыми все ячейки, которых касается box.
func (g *Grid) AddBlocker(b model.BBox) {
	lo, hi := g.CellOf(b.Min), g.CellOf(b.Max)

	g.mu.Lock()
	defer g.mu.Unlock()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				g.solid[Cell{x, y, z}] = struct{}{}
			}
		}
	}
}

// Len returns the number of solid cells.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.solid)
}

// IsSolid reports whether p lies inside geometry.
func (g *Grid) IsSolid(p model.Vec3) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.solid[g.CellOf(p)]
	return ok
}

// solidBetween counts solid cells strictly between the endpoint cells.
func (g *Grid) solidBetween(from, to model.Vec3) int {
	a, b := g.CellOf(from), g.CellOf(to)
	if a == b {
		return 0
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	w := newLineWalk(a, b)
	w.Next() // start cell
	for w.Next() {
		c := w.Cell()
		if c == b {
			break
		}
		if _, ok := g.solid[c]; ok {
			n++
		}
	}
	return n
}

// SoundOcclusion returns how much of a sound is blocked between from and to, in [0, 1].
func (g *Grid) SoundOcclusion(from, to model.Vec3) float32 {
	n := g.solidBetween(from, to)
	return min(1, float32(n)*g.absorption)
}

// CanSee reports whether no solid cell lies between from and to.
func (g *Grid) CanSee(from, to model.Vec3) bool {
	return g.solidBetween(from, to) == 0
}

// MoveIsFeasible reports whether a character can be placed at to. The feet
// cell must be free.
func (g *Grid) MoveIsFeasible(from, to model.Vec3) bool {
	if g.IsSolid(to) {
		slog.Debug("move target inside geometry", "from", from, "to", to)
		return false
	}
	return true
}
