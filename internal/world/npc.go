package world

import (
	"log/slog"
	"sync"

	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/model"
)

// Ticker is the part of the clock a character needs.
type Ticker interface {
	TickCount() uint64
}

// Npc is a world character: the player or a non-player. It is what the
// interactive controller attaches to objects and what the audio scheduler
// listens through.
type Npc struct {
	id     model.ObjectID
	name   string
	player bool
	clock  Ticker

	mu          sync.RWMutex
	pos         model.Vec3
	dir         model.Vec3
	translateY  float32
	targeted    bool
	weaponDrawn bool
	tag         anim.Tag
	quits       int

	anims *anim.Resolver
	pose  anim.Pose
}

// NewNpc creates a character standing at pos. skeleton may be nil.
func NewNpc(id model.ObjectID, name string, player bool, pos model.Vec3, translateY float32, skeleton anim.Catalog, clock Ticker) *Npc {
	return &Npc{
		id:         id,
		name:       name,
		player:     player,
		clock:      clock,
		pos:        pos,
		dir:        model.V3(0, 0, 1),
		translateY: translateY,
		anims:      anim.NewResolver(skeleton),
		tag:        anim.Idle,
	}
}

func (n *Npc) ID() model.ObjectID { return n.id }
func (n *Npc) Name() string       { return n.name }
func (n *Npc) IsPlayer() bool     { return n.player }

func (n *Npc) Position() model.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.pos
}

func (n *Npc) SetPosition(p model.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pos = p
}

// Direction returns the facing vector.
func (n *Npc) Direction() model.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.dir
}

func (n *Npc) SetDirection(d model.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dir = d
}

func (n *Npc) TranslateY() float32 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.translateY
}

// Animations returns the character's own clip resolver.
func (n *Npc) Animations() *anim.Resolver { return n.anims }

// SetAnimation играет seq для tag. Незацикленный клип должен доиграть до конца,
// поэтому Idle после перехода ждёт окончания перехода.
func (n *Npc) SetAnimation(tag anim.Tag, seq *anim.Sequence) bool {
	if !n.pose.Start(seq, n.clock.TickCount()) {
		return false
	}
	n.mu.Lock()
	n.tag = tag
	n.mu.Unlock()
	return true
}

// Animation returns the last accepted tag and the playing clip.
func (n *Npc) Animation() (anim.Tag, *anim.Sequence) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.tag, n.pose.Current()
}

// QuitInteraction is called when an object releases the character.
func (n *Npc) QuitInteraction() {
	n.mu.Lock()
	n.quits++
	n.mu.Unlock()
	slog.Debug("character left interaction", "npc", n.name, "id", n.id)
}

// Quits returns how many interactions released this character.
func (n *Npc) Quits() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.quits
}

func (n *Npc) IsTargeted() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.targeted
}

// SetTargeted marks the character as someone's combat target.
func (n *Npc) SetTargeted(v bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targeted = v
}

func (n *Npc) WeaponDrawn() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.weaponDrawn
}

// SetWeaponDrawn toggles the fight stance.
func (n *Npc) SetWeaponDrawn(v bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.weaponDrawn = v
}

// Update expires timed animation overlays.
func (n *Npc) Update(now uint64) {
	n.anims.Update(now)
}
