// Package sound schedules world audio: one-shot and 3-D effects, named slots,
// placed emitters and the periodic zone music evaluation.
package sound

import (
	"time"

	"github.com/udisondev/openworld/internal/model"
)

// Descriptor is a loadable effect definition.
type Descriptor struct {
	Name   string
	File   string
	Volume float32
	Loop   bool
}

// Handle is one playing (or playable) effect instance.
type Handle interface {
	Play()
	Finished() bool
	Position() model.Vec3
	SetPosition(model.Vec3)
	SetMaxDistance(float32)
	SetRefDistance(float32)
	SetVolume(float32)
	// SetOcclusion sets the attenuation factor in [0, 1], 1 = unobstructed.
	SetOcclusion(float32)
	Duration() time.Duration
}

// Catalog resolves effect names and creates instances. Lookups must not block.
type Catalog interface {
	EffectDescriptor(name string) (*Descriptor, bool)
	WavDescriptor(name string) (*Descriptor, bool)
	DialogDescriptor(name string) (*Descriptor, bool)
	// Instantiate returns nil when the asset cannot be loaded.
	Instantiate(d *Descriptor) Handle
	// PlayGlobal plays d without position.
	PlayGlobal(d *Descriptor)
}

// ListenerSink is implemented by catalogs that track the listener for mixing.
type ListenerSink interface {
	SetListenerPosition(model.Vec3)
}

// Occluder measures how much geometry lies between two points, in [0, 1].
type Occluder interface {
	SoundOcclusion(from, to model.Vec3) float32
}

// Listener is the controlled player as seen by the scheduler.
type Listener interface {
	Position() model.Vec3
	TranslateY() float32
	IsTargeted() bool
	WeaponDrawn() bool
}

// Clock is the world clock.
type Clock interface {
	TickCount() uint64
	Time() model.GameTime
}

type openAir struct{}

func (openAir) SoundOcclusion(model.Vec3, model.Vec3) float32 { return 0 }
