package audio

import (
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/udisondev/openworld/internal/model"
)

// Effect is a positional instance of a decoded buffer. A fresh effect is
// finished until Play is called.
type Effect struct {
	dev *Device
	buf *beep.Buffer

	pos       model.Vec3
	maxDist   float32
	refDist   float32
	volume    float32
	occlusion float32

	ctrl     *beep.Ctrl
	gain     *effects.Gain
	finished *atomic.Bool
}

func newEffect(dev *Device, buf *beep.Buffer, volume float32) *Effect {
	done := &atomic.Bool{}
	done.Store(true)
	return &Effect{
		dev:       dev,
		buf:       buf,
		volume:    volume,
		occlusion: 1,
		finished:  done,
	}
}

// Play (re)starts the effect from the beginning.
func (e *Effect) Play() {
	e.stop()

	done := &atomic.Bool{}
	e.finished = done

	body := beep.Seq(
		e.buf.Streamer(0, e.buf.Len()),
		beep.Callback(func() { done.Store(true) }),
	)
	e.gain = &effects.Gain{Streamer: body}
	e.ctrl = &beep.Ctrl{Streamer: e.gain}
	e.apply()
	e.dev.Play(e.ctrl)
}

func (e *Effect) stop() {
	if e.ctrl == nil {
		return
	}
	e.dev.update(func(model.Vec3) {
		e.ctrl.Streamer = nil
	})
	e.finished.Store(true)
}

// Finished reports whether playback reached the end.
func (e *Effect) Finished() bool { return e.finished.Load() }

func (e *Effect) Position() model.Vec3 { return e.pos }

func (e *Effect) SetPosition(p model.Vec3) {
	e.pos = p
	e.apply()
}

func (e *Effect) SetMaxDistance(d float32) {
	e.maxDist = d
	e.apply()
}

func (e *Effect) SetRefDistance(d float32) {
	e.refDist = d
	e.apply()
}

func (e *Effect) SetVolume(v float32) {
	e.volume = v
	e.apply()
}

func (e *Effect) SetOcclusion(o float32) {
	e.occlusion = o
	e.apply()
}

// Duration returns the buffer length.
func (e *Effect) Duration() time.Duration {
	return e.buf.Format().SampleRate.D(e.buf.Len())
}

// Level returns the current linear gain.
func (e *Effect) Level() float64 {
	var lvl float64
	e.dev.update(func(l model.Vec3) {
		lvl = e.level(l)
	})
	return lvl
}

func (e *Effect) apply() {
	if e.gain == nil {
		return
	}
	e.dev.update(func(l model.Vec3) {
		// effects.Gain scales by 1+Gain.
		e.gain.Gain = e.level(l) - 1
	})
}

func (e *Effect) level(listener model.Vec3) float64 {
	return float64(e.volume*e.occlusion) * attenuation(e.pos.Sub(listener).Length(), e.refDist, e.maxDist)
}

// attenuation is a linear rolloff: full volume up to ref, silent from max on.
// A non-positive far distance disables attenuation.
func attenuation(dist, ref, far float32) float64 {
	switch {
	case far <= 0 || dist <= ref:
		return 1
	case dist >= far:
		return 0
	default:
		return float64((far - dist) / (far - ref))
	}
}
