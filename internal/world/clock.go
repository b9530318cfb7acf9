package world

import (
	"sync"
	"time"

	"github.com/udisondev/openworld/internal/model"
)

// Clock is the simulation clock: a millisecond tick counter and the game time
// of day derived from it. Time only moves through Advance.
type Clock struct {
	mu     sync.RWMutex
	ms     uint64
	start  model.GameTime
	scale  float64 // game minutes per real second
	minute float64 // game minutes elapsed since start
}

// NewClock creates a clock at day/hour. scale is game minutes per real second.
func NewClock(day int, hour float32, scale float32) *Clock {
	return &Clock{
		start: model.NewGameTime(day, 0, 0) + model.FromHours(hour),
		scale: float64(scale),
	}
}

// Advance moves the clock by dt of real time.
func (c *Clock) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ms += uint64(dt.Milliseconds())
	c.minute += dt.Seconds() * c.scale
}

// TickCount returns elapsed simulation time in milliseconds.
func (c *Clock) TickCount() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ms
}

// Time returns the current game time.
func (c *Clock) Time() model.GameTime {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.start + model.GameTime(c.minute)
}
