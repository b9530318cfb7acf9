package testutil

import (
	"sync"

	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/model"
)

// Character - управляемый из теста персонаж. Записывает все запросы анимаций.
type Character struct {
	mu sync.Mutex

	id         model.ObjectID
	player     bool
	pos        model.Vec3
	dir        model.Vec3
	translateY float32
	resolver   *anim.Resolver

	// RejectIdle makes SetAnimation(Idle) fail, holding the quit sequence.
	RejectIdle bool
	// RejectInteract makes interaction clips fail.
	RejectInteract bool

	played []string
	quits  int
}

// NewCharacter creates a character at pos with the given skeleton clips.
func NewCharacter(id model.ObjectID, player bool, pos model.Vec3, clips ...anim.Sequence) *Character {
	return &Character{
		id:       id,
		player:   player,
		pos:      pos,
		resolver: anim.NewResolver(anim.NewMemCatalog("HUMANS", clips...)),
	}
}

func (c *Character) ID() model.ObjectID { return c.id }
func (c *Character) IsPlayer() bool     { return c.player }

func (c *Character) Position() model.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// SetTranslateY sets the vertical origin offset.
func (c *Character) SetTranslateY(y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.translateY = y
}

func (c *Character) TranslateY() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translateY
}

func (c *Character) SetPosition(p model.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = p
}

func (c *Character) SetDirection(d model.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dir = d
}

// Direction returns the last direction set.
func (c *Character) Direction() model.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

func (c *Character) Animations() *anim.Resolver { return c.resolver }

func (c *Character) SetAnimation(tag anim.Tag, seq *anim.Sequence) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tag == anim.Idle {
		if c.RejectIdle {
			return false
		}
		c.played = append(c.played, "IDLE")
		return true
	}
	if c.RejectInteract {
		return false
	}
	if seq != nil {
		c.played = append(c.played, seq.Name)
	}
	return true
}

func (c *Character) QuitInteraction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quits++
}

// Played returns the names of clips accepted so far.
func (c *Character) Played() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.played))
	copy(out, c.played)
	return out
}

// Quits returns how many times QuitInteraction was called.
func (c *Character) Quits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quits
}
