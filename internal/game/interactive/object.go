package interactive

import (
	"log/slog"
	"strings"

	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/model"
)

// Object is an interactive world object.
// State fields are mutated by the Controller only.
type Object struct {
	kind          model.VobKind
	tag           string
	focus         string
	visual        string
	owner         string
	triggerTarget string
	stateFunc     string
	bbox          model.BBox
	transform     model.Matrix4x4
	scheme        string

	points []AttachPoint
	invent Inventory

	// Собственный скелет объекта; nil для статичных мешей.
	solver *anim.Resolver
	pose   anim.Pose

	state        int32
	stateNum     int32
	reverseState bool
	loopState    bool
}

// NewObject creates an object from placed world data.
func NewObject(vob model.MobVob, visuals Visuals) *Object {
	o := &Object{
		kind:          vob.Kind,
		tag:           vob.Name,
		focus:         vob.FocusName,
		visual:        vob.Visual,
		owner:         strings.ToUpper(vob.Owner),
		triggerTarget: vob.TriggerTarget,
		stateFunc:     vob.OnStateFunc,
		bbox:          vob.BBox,
		transform:     vob.Transform,
		stateNum:      vob.StateNum,
		state:         -1,
	}

	if o.IsContainer() {
		for _, it := range ParseContents(vob.Contains) {
			o.invent.Add(it.Name, it.Count)
		}
	}

	o.setVisual(visuals)
	return o
}

func (o *Object) setVisual(visuals Visuals) {
	o.scheme = Scheme(o.focus, o.visual)
	o.points = o.points[:0]
	o.solver = nil
	if visuals == nil {
		return
	}

	for _, def := range visuals.AttachPoints(o.visual) {
		o.points = append(o.points, newAttachPoint(def))
	}
	if sk, ok := visuals.Skeleton(o.visual); ok {
		o.solver = anim.NewResolver(sk)
	}

	if o.scheme == "" {
		slog.Debug("unable to recognize mob scheme", "focus", o.focus, "visual", o.visual)
	}
}

// Tag returns the vob name.
func (o *Object) Tag() string { return o.tag }

// FocusName returns the focus name (display symbol).
func (o *Object) FocusName() string { return o.focus }

// Visual returns the model visual name.
func (o *Object) Visual() string { return o.visual }

// OwnerName returns the owning faction, uppercased.
func (o *Object) OwnerName() string { return o.owner }

// Kind returns the object class.
func (o *Object) Kind() model.VobKind { return o.kind }

// Scheme returns the animation scheme tag.
func (o *Object) Scheme() string { return o.scheme }

// CheckScheme reports whether the object uses the given scheme.
func (o *Object) CheckScheme(name string) bool { return o.scheme == name }

// IsContainer reports whether the object carries an inventory.
func (o *Object) IsContainer() bool { return o.kind == model.VobMobContainer }

// Inventory returns the container payload.
func (o *Object) Inventory() *Inventory { return &o.invent }

// Transform returns the world transform.
func (o *Object) Transform() model.Matrix4x4 { return o.transform }

// BBox returns the bounding box.
func (o *Object) BBox() model.BBox { return o.bbox }

// State returns the current interaction state, -1 when idle.
func (o *Object) State() int32 { return o.state }

// StateNum returns the terminal state.
func (o *Object) StateNum() int32 { return o.stateNum }

// ReverseState reports the direction fixed at the last attach.
func (o *Object) ReverseState() bool { return o.reverseState }

// LoopState is true when the last step did not change the state.
func (o *Object) LoopState() bool { return o.loopState }

// Points returns a snapshot of the attach points.
func (o *Object) Points() []AttachPoint {
	out := make([]AttachPoint, len(o.points))
	copy(out, o.points)
	return out
}

// Position returns the world origin of the object.
func (o *Object) Position() model.Vec3 {
	return o.transform.Project(model.Vec3{})
}

// DisplayPosition is where focus labels go: object origin raised to the bbox top.
func (o *Object) DisplayPosition() model.Vec3 {
	return o.Position().WithY(o.bbox.Max.Y)
}

// BodyState returns the posture the scheme implies, orig when it implies none.
func (o *Object) BodyState(orig BodyState) BodyState {
	if bs, ok := bodyStateByScheme[o.scheme]; ok {
		return bs
	}
	return orig
}

// IsAvailable reports whether any attach point is free.
func (o *Object) IsAvailable() bool {
	return o.findFreePoint() != nil
}

// CanSeeFrom reports whether eye sees any attach point, or the origin of objects
// without attach points (graves and the like).
func (o *Object) CanSeeFrom(eye model.Vec3, los LineOfSight) bool {
	for i := range o.points {
		if los.CanSee(eye, o.worldPos(&o.points[i])) {
			return true
		}
	}
	if len(o.points) == 0 {
		return los.CanSee(eye, o.transform.Origin())
	}
	return false
}

func (o *Object) findFreePoint() *AttachPoint {
	for i := range o.points {
		p := &o.points[i]
		if p.user == 0 && p.IsAttachPoint() {
			return p
		}
	}
	return nil
}

// lastOccupied returns the last occupied point. Objects are assumed to have a
// single occupant, so only that one is advanced per tick.
func (o *Object) lastOccupied() *AttachPoint {
	var found *AttachPoint
	for i := range o.points {
		if o.points[i].user != 0 {
			found = &o.points[i]
		}
	}
	return found
}

func (o *Object) pointOf(id model.ObjectID) *AttachPoint {
	for i := range o.points {
		if o.points[i].user == id {
			return &o.points[i]
		}
	}
	return nil
}

func (o *Object) slotMatrix(p *AttachPoint) model.Matrix4x4 {
	return o.transform.Mul(p.Local)
}

func (o *Object) worldPos(p *AttachPoint) model.Vec3 {
	return o.slotMatrix(p).Project(model.Vec3{})
}

func (o *Object) qDistanceTo(c Character, p *AttachPoint) float32 {
	wp := o.worldPos(p)
	return c.Position().DistanceSquared(wp.WithY(wp.Y - c.TranslateY()))
}

// posTag returns the position tag of the (last) occupied point.
func (o *Object) posTag() string {
	if p := o.lastOccupied(); p != nil {
		return p.PosTag()
	}
	return ""
}

// ObjectAnimKey returns the key of the object's own clip for dir.
func (o *Object) ObjectAnimKey(dir anim.Direction) string {
	return anim.ObjectKey(anim.Step(o.state, o.stateNum, o.reverseState, dir))
}

// SchemeAnimKey returns the character-side key for dir.
func (o *Object) SchemeAnimKey(dir anim.Direction) string {
	return anim.SchemeKey(o.scheme, o.posTag(), anim.Step(o.state, o.stateNum, o.reverseState, dir))
}

// setAnim starts the object's own clip. False means not ready: retry next tick.
func (o *Object) setAnim(dir anim.Direction, now uint64) bool {
	if o.solver == nil {
		return true
	}
	key := o.ObjectAnimKey(dir)
	seq, ok := o.solver.Resolve(key)
	if !ok {
		slog.Debug("object animation not found, waiting", "object", o.tag, "key", key)
		return false
	}
	return o.pose.Start(seq, now)
}

// Pose exposes the object's skeleton pose.
func (o *Object) Pose() *anim.Pose { return &o.pose }

// playCharacter requests the interaction clip on the character. A clip missing
// from the character's skeleton is skipped and does not hold the transition.
func (o *Object) playCharacter(c Character, tag anim.Tag) bool {
	dir := anim.In
	if tag == anim.InteractOut {
		dir = anim.Out
	}
	res := c.Animations()
	if res == nil {
		return true
	}
	key := o.SchemeAnimKey(dir)
	seq, ok := res.Resolve(key)
	if !ok {
		slog.Debug("character animation not found", "object", o.tag, "key", key)
		return true
	}
	return c.SetAnimation(tag, seq)
}
