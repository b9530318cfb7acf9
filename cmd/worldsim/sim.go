package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/udisondev/openworld/internal/audio"
	"github.com/udisondev/openworld/internal/game/interactive"
	"github.com/udisondev/openworld/internal/game/sound"
	"github.com/udisondev/openworld/internal/model"
	"github.com/udisondev/openworld/internal/world"
)

const (
	// Characters reconsider what they are doing this often, in world milliseconds.
	actPeriod = 8000
	// Objects farther than this are ignored when a character looks for one.
	actRange = 1500
	// Stats are logged this often, in world milliseconds.
	statsPeriod = 30000
)

// simulation drives the world on a fixed tick.
type simulation struct {
	interval time.Duration
	clock    *world.Clock
	world    *world.World
	ctrl     *interactive.Controller
	bus      *world.Bus
	scripts  *world.Scripts

	device  *audio.Device
	music   *audio.MusicPlayer
	sched   *sound.Scheduler
	closers []io.Closer

	nextAct   uint64
	nextStats uint64
}

// Start runs the tick loop until ctx is canceled.
func (s *simulation) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "ticks", s.clock.TickCount())
			return ctx.Err()
		case <-ticker.C:
			s.step(s.interval)
		}
	}
}

func (s *simulation) step(dt time.Duration) {
	s.clock.Advance(dt)
	now := s.clock.TickCount()

	s.world.Update(now)
	if now >= s.nextAct {
		s.nextAct = now + actPeriod
		s.act()
	}
	s.ctrl.Tick()

	if s.sched != nil {
		if p := s.world.Player(); p != nil {
			s.sched.Tick(p)
		}
	}
	if now >= s.nextStats {
		s.nextStats = now + statsPeriod
		s.logStats()
	}
}

// act lets every character leave its object or pick the nearest available one.
func (s *simulation) act() {
	objs := s.ctrl.Objects()
	for _, n := range s.world.Npcs() {
		if obj, ok := s.ctrl.Occupied(n.ID()); ok {
			if s.ctrl.Detach(n, obj) {
				slog.Debug("character leaves object", "character", n.Name(), "object", obj.Tag())
			}
			continue
		}

		obj := nearestUsable(n, objs)
		if obj == nil {
			continue
		}
		if err := s.ctrl.Attach(n, obj); err != nil {
			slog.Debug("attach failed", "character", n.Name(), "object", obj.Tag(), "err", err)
			continue
		}
		slog.Info("character uses object", "character", n.Name(), "object", obj.Tag(), "scheme", obj.Scheme())
	}
}

// nearestUsable picks the closest free object n is allowed to use.
func nearestUsable(n *world.Npc, objs []*interactive.Object) *interactive.Object {
	var (
		best  *interactive.Object
		bestD float32 = actRange * actRange
	)
	name := strings.ToUpper(n.Name())
	for _, o := range objs {
		if owner := o.OwnerName(); owner != "" && owner != name {
			continue
		}
		if !o.IsAvailable() {
			continue
		}
		if d := n.Position().DistanceSquared(o.Position()); d < bestD {
			best, bestD = o, d
		}
	}
	return best
}

// wireEvents subscribes the bus. Handlers run under the controller tick and
// must not call back into it.
func (s *simulation) wireEvents() {
	s.bus.OnPerception(func(who model.ObjectID, perception string) {
		slog.Debug("perception", "character", who, "perception", perception)
	})

	positions := make(map[string]model.Vec3)
	for _, o := range s.ctrl.Objects() {
		positions[strings.ToUpper(o.Tag())] = o.Position()
	}
	for tag, pos := range positions {
		s.bus.OnTrigger(tag, func(target, source string) {
			slog.Info("object triggered", "target", target, "source", source)
			if s.sched != nil {
				s.sched.EmitSound(target, pos, 0, true)
			}
		})
	}
}

func (s *simulation) logStats() {
	attrs := []any{
		"tick", s.clock.TickCount(),
		"time", s.clock.Time(),
		"characters", s.world.Len(),
		"objects", s.ctrl.Len(),
		"dialog_finished", s.scripts.DialogFinished(),
	}
	if s.sched != nil {
		st := s.sched.Stats()
		attrs = append(attrs,
			"effects", st.Effects,
			"effects_3d", st.Effects3D,
			"slots", st.Slots,
			"emitters", st.Emitters,
			"voices", s.device.Active())
	}
	slog.Info("world stats", attrs...)
}

func (s *simulation) close() {
	if s.music != nil {
		s.music.Stop()
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			slog.Warn("close failed", "err", err)
		}
	}
}
