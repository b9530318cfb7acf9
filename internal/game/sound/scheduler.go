package sound

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/openworld/internal/game/music"
	"github.com/udisondev/openworld/internal/game/zone"
	"github.com/udisondev/openworld/internal/model"
)

// Config holds scheduler tunables.
type Config struct {
	// MaxDistance is the audible distance and the default emission range.
	MaxDistance float32
	// HeadOffset raises the listener (and dialog voices) from the feet to the head.
	HeadOffset float32
	// ZoneRefresh is how often the music zone is evaluated.
	ZoneRefresh time.Duration
	// Seed feeds the emitter delay jitter.
	Seed uint64
}

// DefaultConfig returns the stock tunables.
func DefaultConfig() Config {
	return Config{
		MaxDistance: 3500,
		HeadOffset:  180,
		ZoneRefresh: 5 * time.Second,
	}
}

// Deps groups scheduler collaborators. Catalog and Clock are required.
type Deps struct {
	Catalog  Catalog
	Clock    Clock
	Occluder Occluder
	Zones    *zone.Manager
	Music    *music.Selector
}

// Stats is a snapshot of pool sizes.
type Stats struct {
	Effects   int
	Effects3D int
	Slots     int
	Emitters  int
}

// Scheduler owns all live effect instances of a world. Emission methods may be
// called from any goroutine; Tick is driven by the simulation loop.
type Scheduler struct {
	cfg Config

	catalog  Catalog
	clock    Clock
	occluder Occluder
	zones    *zone.Manager
	music    *music.Selector

	mu        sync.Mutex
	listener  model.Vec3
	effects   []Handle
	effects3d []Handle
	slots     map[string]Handle
	emitters  []*Emitter
	rng       *rand.Rand

	nextZoneUpdate uint64
}

// NewScheduler creates a scheduler with empty pools.
func NewScheduler(cfg Config, deps Deps) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		catalog:  deps.Catalog,
		clock:    deps.Clock,
		occluder: deps.Occluder,
		zones:    deps.Zones,
		music:    deps.Music,
		listener: model.V3(-1000000, -1000000, -1000000),
		slots:    make(map[string]Handle),
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	if s.cfg.MaxDistance <= 0 {
		s.cfg.MaxDistance = DefaultConfig().MaxDistance
	}
	if s.occluder == nil {
		s.occluder = openAir{}
	}
	if s.zones == nil {
		s.zones = zone.NewManager()
	}
	return s
}

// Zones returns the zone manager the scheduler evaluates.
func (s *Scheduler) Zones() *zone.Manager { return s.zones }

// SetDefaultZone sets the fallback music zone.
func (s *Scheduler) SetDefaultZone(v model.ZoneVob) {
	s.zones.SetDefault(zone.New(v.Name, v.BBox))
}

// AddZone registers an explicit music zone.
func (s *Scheduler) AddZone(v model.ZoneVob) {
	s.zones.Add(zone.New(v.Name, v.BBox))
}

// AddSound creates a placed emitter. Returns false when the effect is unknown.
func (s *Scheduler) AddSound(v model.SoundVob) bool {
	d, ok := s.catalog.EffectDescriptor(v.Name)
	if !ok {
		slog.Warn("unknown emitter sound", "sound", v.Name)
		return false
	}
	h := s.catalog.Instantiate(d)
	if h == nil {
		slog.Warn("unable to load emitter sound", "sound", v.Name)
		return false
	}
	setupEmitterHandle(h, v.Position, v.Radius)

	e := &Emitter{
		name:     v.Name,
		pos:      v.Position,
		primary:  h,
		loop:     v.Mode == model.SoundLoop,
		active:   v.StartOn,
		delay:    uint64(v.RandDelay * 1000),
		delayVar: uint64(v.RandDelayVar * 1000),
		start:    0,
		end:      endOfDay,
	}

	if v.Daytime {
		e.start = model.FromHours(v.StartHour)
		e.end = model.FromHours(v.EndHour)

		name2 := v.Name2
		if name2 == "" {
			name2 = v.Name
		}
		if d2, ok := s.catalog.EffectDescriptor(name2); ok {
			if h2 := s.catalog.Instantiate(d2); h2 != nil {
				setupEmitterHandle(h2, v.Position, v.Radius)
				e.secondary = h2
			}
		}
	}

	s.mu.Lock()
	s.emitters = append(s.emitters, e)
	s.mu.Unlock()
	return true
}

// Emitters returns a snapshot of placed emitters.
func (s *Scheduler) Emitters() []*Emitter {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Emitter, len(s.emitters))
	copy(out, s.emitters)
	return out
}

// EmitSound plays an effect from the effect table. With reuseSlot at most one
// instance per name is alive at a time.
func (s *Scheduler) EmitSound(name string, pos model.Vec3, rng float32, reuseSlot bool) {
	s.emit(s.catalog.EffectDescriptor, name, pos, rng, reuseSlot)
}

// EmitSoundRaw is EmitSound for plain wav assets.
func (s *Scheduler) EmitSoundRaw(name string, pos model.Vec3, rng float32, reuseSlot bool) {
	s.emit(s.catalog.WavDescriptor, name, pos, rng, reuseSlot)
}

func (s *Scheduler) emit(lookup func(string) (*Descriptor, bool), name string, pos model.Vec3, rng float32, reuseSlot bool) {
	if rng <= 0 {
		rng = s.cfg.MaxDistance
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inListenerRange(pos, rng) {
		return
	}
	if reuseSlot {
		if h, ok := s.slots[name]; ok && !h.Finished() {
			return
		}
	}

	h := s.load(lookup, name)
	if h == nil {
		return
	}
	s.start(h, pos, rng)

	if reuseSlot {
		s.slots[name] = h
		return
	}
	s.effects = append(s.effects, h)
}

// EmitSound3D always adds a new 3-D instance, without range check or slot reuse.
func (s *Scheduler) EmitSound3D(name string, pos model.Vec3, rng float32) {
	if rng <= 0 {
		rng = s.cfg.MaxDistance
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.load(s.catalog.EffectDescriptor, name)
	if h == nil {
		return
	}
	s.start(h, pos, rng)
	s.effects3d = append(s.effects3d, h)
}

// EmitDialogSound plays a voice line at head height and returns its length.
func (s *Scheduler) EmitDialogSound(name string, pos model.Vec3, rng float32) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inListenerRange(pos, rng) {
		return 0, false
	}
	h := s.load(s.catalog.DialogDescriptor, name)
	if h == nil {
		return 0, false
	}
	pos.Y += s.cfg.HeadOffset
	h.SetPosition(pos)
	h.SetMaxDistance(s.cfg.MaxDistance)
	h.SetRefDistance(rng)
	h.Play()
	s.effects = append(s.effects, h)
	return h.Duration(), true
}

// AIOutput plays "<name>.wav" without position if pos is audible.
func (s *Scheduler) AIOutput(pos model.Vec3, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inListenerRange(pos, 0) {
		return
	}
	d, ok := s.catalog.DialogDescriptor(name + ".wav")
	if !ok {
		slog.Debug("ai output not found", "name", name)
		return
	}
	s.catalog.PlayGlobal(d)
}

// TakeSoundSlot hands a playing instance over to the scheduler.
func (s *Scheduler) TakeSoundSlot(h Handle) {
	if h == nil || h.Finished() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects = append(s.effects, h)
}

// IsInListenerRange reports whether a sound of range rng at pos can be heard.
func (s *Scheduler) IsInListenerRange(pos model.Vec3, rng float32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inListenerRange(pos, rng)
}

func (s *Scheduler) inListenerRange(pos model.Vec3, rng float32) bool {
	r := s.cfg.MaxDistance + rng
	return pos.Sub(s.listener).QuadLength() < 4*r*r
}

func (s *Scheduler) load(lookup func(string) (*Descriptor, bool), name string) Handle {
	d, ok := lookup(name)
	if !ok {
		slog.Debug("sound not found", "sound", name)
		return nil
	}
	h := s.catalog.Instantiate(d)
	if h == nil {
		slog.Debug("unable to load sound", "sound", name, "file", d.File)
	}
	return h
}

func (s *Scheduler) start(h Handle, pos model.Vec3, rng float32) {
	h.SetPosition(pos)
	h.SetMaxDistance(s.cfg.MaxDistance)
	h.SetRefDistance(rng)
	h.Play()
	s.tickSlot(h)
}

// Tick updates the listener and all live instances, restarts due emitters and
// periodically re-evaluates the music zone.
func (s *Scheduler) Tick(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listener = l.Position()
	if sink, ok := s.catalog.(ListenerSink); ok {
		sink.SetListenerPosition(s.listener)
	}

	// Чистим закончившиеся экземпляры и пересчитываем окклюзию живых
	s.effects = s.sweep(s.effects)
	s.effects3d = s.sweep(s.effects3d)
	for _, h := range s.slots {
		s.tickSlot(h)
	}

	now := s.clock.TickCount()
	tod := s.clock.Time().TimeInDay()
	for _, e := range s.emitters {
		if e.due(now) {
			e.restart(now, tod, s.rng)
		}
	}

	s.tickZone(l, now)
}

// sweep drops finished instances by swap-and-pop; order is not preserved.
func (s *Scheduler) sweep(pool []Handle) []Handle {
	for i := 0; i < len(pool); {
		if pool[i].Finished() {
			last := len(pool) - 1
			pool[i] = pool[last]
			pool[last] = nil
			pool = pool[:last]
			continue
		}
		s.tickSlot(pool[i])
		i++
	}
	return pool
}

func (s *Scheduler) tickSlot(h Handle) {
	if h.Finished() {
		return
	}
	// Слушатель на уровне головы, а не ног
	head := s.listener.WithY(s.listener.Y + s.cfg.HeadOffset)
	occ := s.occluder.SoundOcclusion(head, h.Position())
	h.SetOcclusion(1 - min(max(occ, 0), 1))
}

func (s *Scheduler) tickZone(l Listener, now uint64) {
	if now < s.nextZoneUpdate {
		return
	}
	s.nextZoneUpdate = now + uint64(s.cfg.ZoneRefresh.Milliseconds())

	if s.music == nil {
		return
	}

	feet := s.listener.WithY(s.listener.Y + l.TranslateY())
	z := s.zones.Resolve(feet)
	day := music.DayTagFor(s.clock.Time())
	mode := music.ModeFor(l.IsTargeted(), l.WeaponDrawn())
	s.music.Evaluate(z, s.zones.Default(), day, mode)
}

// Stats returns the current pool sizes.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Effects:   len(s.effects),
		Effects3D: len(s.effects3d),
		Slots:     len(s.slots),
		Emitters:  len(s.emitters),
	}
}
