package interactive

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/model"
)

// Deps groups the collaborators of a Controller. Characters and Clock are
// required; the others fall back to no-op implementations.
type Deps struct {
	Characters Characters
	Clock      Clock
	Physics    Physics
	Bus        EventBus
	Scripts    ScriptBridge
}

// Controller owns the interactive objects of a world and advances their state
// machines. All methods are safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	objects []*Object

	characters Characters
	clock      Clock
	physics    Physics
	bus        EventBus
	scripts    ScriptBridge
}

// NewController creates a controller with no objects.
func NewController(deps Deps) *Controller {
	c := &Controller{
		characters: deps.Characters,
		clock:      deps.Clock,
		physics:    deps.Physics,
		bus:        deps.Bus,
		scripts:    deps.Scripts,
	}
	if c.physics == nil {
		c.physics = freePhysics{}
	}
	if c.bus == nil {
		c.bus = nopBus{}
	}
	if c.scripts == nil {
		c.scripts = nopScripts{}
	}
	return c
}

// Add registers an object with the controller.
func (c *Controller) Add(obj *Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects = append(c.objects, obj)
}

// Objects returns a snapshot of registered objects.
func (c *Controller) Objects() []*Object {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Object, len(c.objects))
	copy(out, c.objects)
	return out
}

// Len returns the number of registered objects.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.objects)
}

// Snapshot encodes every object record under the tick lock.
func (c *Controller) Snapshot() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return EncodeObjects(c.objects)
}

// Restore replaces all objects, typically with ones decoded from a save slot.
// Attached characters are dropped with the old objects.
func (c *Controller) Restore(objs []*Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects = append(c.objects[:0:0], objs...)
}

// FindByTag returns the first object with the given vob name.
func (c *Controller) FindByTag(tag string) (*Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.objects {
		if o.tag == tag {
			return o, true
		}
	}
	return nil, false
}

// Attach engages ch with the nearest free attach point of obj.
func (c *Controller) Attach(ch Character, obj *Object) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		best  *AttachPoint
		bestD = float32(math.MaxFloat32)
	)
	for i := range obj.points {
		p := &obj.points[i]
		if !p.IsFree() || !p.IsAttachPoint() {
			continue
		}
		if d := obj.qDistanceTo(ch, p); d < bestD {
			best, bestD = p, d
		}
	}
	if best == nil {
		return ErrNoFreePoint
	}
	return c.attachTo(ch, obj, best)
}

// AttachAt engages ch with the attach point at index.
func (c *Controller) AttachAt(ch Character, obj *Object, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(obj.points) {
		return ErrNotAttachPoint
	}
	p := &obj.points[index]
	if !p.IsAttachPoint() {
		return ErrNotAttachPoint
	}
	if !p.IsFree() {
		return ErrOccupied
	}
	return c.attachTo(ch, obj, p)
}

func (c *Controller) attachTo(ch Character, obj *Object, p *AttachPoint) error {
	slot := obj.slotMatrix(p)
	pos := slot.Project(model.Vec3{})
	target := pos.WithY(pos.Y - ch.TranslateY())

	if !c.physics.MoveIsFeasible(ch.Position(), target) {
		return ErrInfeasible
	}

	ch.SetPosition(target)
	ch.SetDirection(slot.Forward())

	p.user = ch.ID()
	if obj.state > 0 {
		obj.reverseState = true
	} else {
		obj.reverseState = false
		obj.state = -1
	}
	p.userState = obj.state
	p.attachMode = true

	slog.Debug("character attached",
		"object", obj.tag,
		"point", p.Name,
		"character", ch.ID(),
		"state", obj.state,
		"reverse", obj.reverseState)
	return nil
}

// Detach asks ch to leave obj. The object walks back to idle on later ticks.
// Returns false when ch does not occupy obj.
func (c *Controller) Detach(ch Character, obj *Object) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detach(ch.ID(), obj)
}

func (c *Controller) detach(id model.ObjectID, obj *Object) bool {
	p := obj.pointOf(id)
	if p == nil {
		return false
	}
	p.attachMode = false
	return true
}

// AutoDetach releases every occupant of obj once the dialog is over.
// Returns the number of occupants asked to leave.
func (c *Controller) AutoDetach(obj *Object) int {
	if !c.scripts.DialogFinished() {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range obj.points {
		p := &obj.points[i]
		if p.user != 0 && p.attachMode {
			p.attachMode = false
			n++
		}
	}
	return n
}

// Occupied returns the object ch is attached to.
func (c *Controller) Occupied(id model.ObjectID) (*Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.objects {
		if o.pointOf(id) != nil {
			return o, true
		}
	}
	return nil, false
}

// Tick advances every object by one step.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.TickCount()
	for _, o := range c.objects {
		c.implTick(o, now)
	}
}

// Start runs the tick loop until ctx is canceled.
func (c *Controller) Start(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("interaction controller started", "interval", interval, "objects", c.Len())

	for {
		select {
		case <-ctx.Done():
			slog.Info("interaction controller stopping")
			return ctx.Err()
		case <-ticker.C:
			c.Tick()
		}
	}
}

func (c *Controller) implTick(obj *Object, now uint64) {
	p := obj.lastOccupied()
	if p == nil {
		return
	}

	ch, ok := c.characters.Character(p.user)
	if !ok {
		// Персонаж удалён из мира: откатываем объект и освобождаем точку
		ch = nil
		p.attachMode = false
	}

	switch {
	case p.attachMode && obj.loopState:
		if !obj.setAnim(anim.Active, now) {
			return
		}
		if ch != nil {
			obj.playCharacter(ch, anim.InteractIn)
		}
	case p.attachMode:
		if ch != nil && !obj.playCharacter(ch, anim.InteractIn) {
			return
		}
		if !obj.setAnim(anim.In, now) {
			return
		}
	default:
		if ch != nil {
			obj.playCharacter(ch, anim.InteractOut)
		}
		if !obj.setAnim(anim.Out, now) {
			return
		}
	}

	if p.userState == -1 && p.attachMode {
		p.userState = 0
		if ch != nil {
			c.bus.PassivePerception(ch.ID(), PercAssessUseMob)
		}
		c.emitTriggerEvent(obj)
	}

	if ch != nil && ch.IsPlayer() {
		c.invokeStateFunc(obj, ch)
	}

	// Шаг на ±1 по направлению, с зажимом в [-1, stateNum]
	prev := obj.state
	if p.attachMode != obj.reverseState {
		obj.state++
	} else {
		obj.state--
	}
	obj.state = max(-1, min(obj.state, obj.stateNum))
	obj.loopState = prev == obj.state
	p.userState = obj.state

	if obj.state == -1 {
		c.quit(obj, p, ch)
		return
	}
	if obj.state == obj.stateNum && releasesOnFullEngagement(obj.kind, obj.stateFunc) {
		c.quit(obj, p, ch)
	}
}

func (c *Controller) invokeStateFunc(obj *Object, ch Character) {
	if obj.loopState || obj.stateFunc == "" || obj.state < 0 {
		return
	}
	fn := stateFuncName(obj.stateFunc, obj.state)
	slog.Debug("calling state function", "object", obj.tag, "func", fn)
	c.scripts.UseInteractive(ch.ID(), fn)
}

func (c *Controller) emitTriggerEvent(obj *Object) {
	if obj.triggerTarget == "" {
		return
	}
	c.bus.TriggerEvent(obj.triggerTarget, obj.tag)
}

// quit releases the point. The player keeps the object while a dialog runs.
func (c *Controller) quit(obj *Object, p *AttachPoint, ch Character) {
	if ch != nil && ch.IsPlayer() && !c.scripts.DialogFinished() {
		return
	}
	if ch != nil {
		if !ch.SetAnimation(anim.Idle, nil) {
			return
		}
		ch.QuitInteraction()
	}

	slog.Debug("character released", "object", obj.tag, "point", p.Name, "character", p.user)

	p.user = 0
	p.userState = -1
	p.attachMode = false
}

func stateFuncName(fn string, state int32) string {
	return fn + "_S" + strconv.Itoa(int(state))
}
