package world

import (
	"sync/atomic"

	"github.com/udisondev/openworld/internal/model"
)

// ObjectIDGenerator generates unique object IDs for world characters.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = free attach point)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: NPCs
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextNpcID    atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(0x10000000)
	gen.nextNpcID.Store(0x20000000)
	return gen
}

// NextPlayerID generates next unique player object ID.
func (g *ObjectIDGenerator) NextPlayerID() model.ObjectID {
	return model.ObjectID(g.nextPlayerID.Add(1))
}

// NextNpcID generates next unique NPC object ID.
func (g *ObjectIDGenerator) NextNpcID() model.ObjectID {
	return model.ObjectID(g.nextNpcID.Add(1))
}

// IsPlayerID reports whether id lies in the player range.
func IsPlayerID(id model.ObjectID) bool {
	return id >= 0x10000000 && id < 0x20000000
}
