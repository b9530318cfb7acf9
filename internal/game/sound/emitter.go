package sound

import (
	"math/rand/v2"

	"github.com/udisondev/openworld/internal/model"
)

const emitterVolume = 0.5

var endOfDay = model.ClockTime(24, 0)

// Emitter is a placed sound that replays by itself.
type Emitter struct {
	name      string
	pos       model.Vec3
	primary   Handle
	secondary Handle // played outside the day window, may be nil
	current   Handle

	loop     bool
	active   bool
	delay    uint64 // ms
	delayVar uint64 // ms

	start, end model.GameTime // day window [start, end)
	restartAt  uint64
}

// Name returns the effect name.
func (e *Emitter) Name() string { return e.name }

// Position returns the emitter position.
func (e *Emitter) Position() model.Vec3 { return e.pos }

// Active reports whether the emitter replays.
func (e *Emitter) Active() bool { return e.active }

// RestartAt returns the next restart deadline, 0 before the first sweep.
func (e *Emitter) RestartAt() uint64 { return e.restartAt }

// Window returns the day window the primary effect plays in.
func (e *Emitter) Window() (start, end model.GameTime) { return e.start, e.end }

func (e *Emitter) finished() bool {
	return e.current == nil || e.current.Finished()
}

// due: the first sweep only schedules; loops replay as soon as they finish.
func (e *Emitter) due(now uint64) bool {
	return e.active && e.finished() && (e.restartAt < now || e.loop)
}

func (e *Emitter) restart(now uint64, tod model.GameTime, rng *rand.Rand) {
	if e.restartAt != 0 {
		h := e.secondary
		if e.start <= tod && tod < e.end {
			h = e.primary
		}
		if h != nil {
			h.Play()
			e.current = h
		}
	}

	e.restartAt = now + e.delay
	if e.delayVar > 0 {
		e.restartAt += rng.Uint64N(e.delayVar)
	}
}

func setupEmitterHandle(h Handle, pos model.Vec3, radius float32) {
	h.SetPosition(pos)
	h.SetMaxDistance(radius)
	h.SetRefDistance(0)
	h.SetVolume(emitterVolume)
}
