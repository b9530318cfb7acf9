// Package audio is the beep backed mixing backend: it decodes wav assets,
// mixes live effects with distance and occlusion gain, loops ambient music
// and pumps signed PCM frames into an io.Writer.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/udisondev/openworld/internal/model"
)

// Config describes the output stream.
type Config struct {
	SampleRate int
	Buffer     time.Duration
	Volume     float64
}

// DefaultConfig returns 44.1kHz stereo with a 50ms buffer.
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		Buffer:     50 * time.Millisecond,
		Volume:     1,
	}
}

// Device owns the beep mixer. Streams are added from any goroutine; the pump
// goroutine is the only reader.
type Device struct {
	format beep.Format
	buffer time.Duration
	out    io.Writer

	mu       sync.Mutex
	mixer    *beep.Mixer
	listener model.Vec3
	volume   float64

	played atomic.Uint64
	frames atomic.Uint64
}

// NewDevice creates a device writing 16-bit stereo PCM to out.
func NewDevice(cfg Config, out io.Writer) *Device {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = def.Buffer
	}
	if cfg.Volume <= 0 {
		cfg.Volume = def.Volume
	}
	if out == nil {
		out = io.Discard
	}
	return &Device{
		format: beep.Format{
			SampleRate:  beep.SampleRate(cfg.SampleRate),
			NumChannels: 2,
			Precision:   2,
		},
		buffer: cfg.Buffer,
		out:    out,
		mixer:  &beep.Mixer{},
		volume: cfg.Volume,
	}
}

// Format returns the output format.
func (d *Device) Format() beep.Format { return d.format }

// Play adds s to the mix.
func (d *Device) Play(s beep.Streamer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mixer.Add(s)
	d.played.Add(1)
}

// Active returns the number of streams in the mix.
func (d *Device) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mixer.Len()
}

// Played returns how many streams were ever started.
func (d *Device) Played() uint64 { return d.played.Load() }

// Frames returns how many sample frames were written.
func (d *Device) Frames() uint64 { return d.frames.Load() }

// SetListenerPosition moves the listener used for distance attenuation.
func (d *Device) SetListenerPosition(p model.Vec3) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listener = p
}

// Listener returns the listener position.
func (d *Device) Listener() model.Vec3 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listener
}

// update runs fn under the mixer lock, so the pump never sees half-applied gains.
func (d *Device) update(fn func(listener model.Vec3)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.listener)
}

// Clear stops every stream.
func (d *Device) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mixer.Clear()
}

// Mix renders len(samples) frames.
func (d *Device) Mix(samples [][2]float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(samples)
	d.mixer.Stream(samples)
	if d.volume != 1 {
		for i := range samples {
			samples[i][0] *= d.volume
			samples[i][1] *= d.volume
		}
	}
}

// Start pumps mixed frames into the writer until ctx is canceled.
func (d *Device) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.buffer)
	defer ticker.Stop()

	n := d.format.SampleRate.N(d.buffer)
	samples := make([][2]float64, n)
	out := make([]byte, n*d.format.Width())

	slog.Info("audio device started",
		"sample_rate", int(d.format.SampleRate),
		"buffer", d.buffer)

	for {
		select {
		case <-ctx.Done():
			slog.Info("audio device stopping", "played", d.Played(), "frames", d.Frames())
			return ctx.Err()

		case <-ticker.C:
			if err := d.pump(samples, out); err != nil {
				return err
			}
		}
	}
}

func (d *Device) pump(samples [][2]float64, out []byte) error {
	d.Mix(samples)

	p := out
	for _, s := range samples {
		p = p[d.format.EncodeSigned(p, s):]
	}
	if _, err := d.out.Write(out); err != nil {
		return fmt.Errorf("writing audio frames: %w", err)
	}
	d.frames.Add(uint64(len(samples)))
	return nil
}
