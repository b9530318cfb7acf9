// Package interactive implements world objects characters can engage with
// (benches, chests, levers, doors) and the state machine that walks an object
// through its interaction states while a character is attached.
package interactive

import (
	"github.com/udisondev/openworld/internal/game/anim"
	"github.com/udisondev/openworld/internal/model"
)

// Character is the part of an NPC or player the controller drives.
type Character interface {
	ID() model.ObjectID
	IsPlayer() bool
	Position() model.Vec3
	// TranslateY is the vertical distance from the feet to the skeleton origin.
	TranslateY() float32
	SetPosition(model.Vec3)
	SetDirection(model.Vec3)
	// Animations resolves the character's own skeleton clips (nil = none).
	Animations() *anim.Resolver
	// SetAnimation returns false when the request is rejected right now.
	// seq carries the resolved interaction clip, nil for generic tags like Idle.
	SetAnimation(tag anim.Tag, seq *anim.Sequence) bool
	QuitInteraction()
}

// Characters resolves weak handles. A missing entry means the character is gone.
type Characters interface {
	Character(id model.ObjectID) (Character, bool)
}

// Physics answers movement feasibility.
type Physics interface {
	MoveIsFeasible(from, to model.Vec3) bool
}

// LineOfSight answers visibility between two points.
type LineOfSight interface {
	CanSee(from, to model.Vec3) bool
}

// EventBus receives trigger and perception events.
type EventBus interface {
	TriggerEvent(target, source string)
	PassivePerception(who model.ObjectID, perception string)
}

// ScriptBridge calls into game scripts. Calls are fire-and-forget.
type ScriptBridge interface {
	UseInteractive(who model.ObjectID, function string)
	DialogFinished() bool
}

// Clock is the world clock in milliseconds.
type Clock interface {
	TickCount() uint64
}

// Visuals provides mesh attach points and skeletons by visual name.
type Visuals interface {
	AttachPoints(visual string) []model.AttachPointDef
	Skeleton(visual string) (anim.Catalog, bool)
}

// PercAssessUseMob is sent when a character settles on an object.
const PercAssessUseMob = "PERC_ASSESSUSEMOB"

type nopBus struct{}

func (nopBus) TriggerEvent(string, string)              {}
func (nopBus) PassivePerception(model.ObjectID, string) {}

type nopScripts struct{}

func (nopScripts) UseInteractive(model.ObjectID, string) {}
func (nopScripts) DialogFinished() bool                  { return true }

type freePhysics struct{}

func (freePhysics) MoveIsFeasible(model.Vec3, model.Vec3) bool { return true }
