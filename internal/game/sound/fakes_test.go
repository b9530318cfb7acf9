package sound

import (
	"sync"
	"time"

	"github.com/udisondev/openworld/internal/model"
)

type fakeHandle struct {
	mu        sync.Mutex
	name      string
	pos       model.Vec3
	maxDist   float32
	refDist   float32
	volume    float32
	occlusion float32
	plays     int
	finished  bool
	length    time.Duration
}

func (h *fakeHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.plays++
	h.finished = false
}

func (h *fakeHandle) Finished() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.finished
}

func (h *fakeHandle) finish() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished = true
}

func (h *fakeHandle) Position() model.Vec3     { return h.pos }
func (h *fakeHandle) SetPosition(p model.Vec3) { h.pos = p }
func (h *fakeHandle) SetMaxDistance(d float32) { h.maxDist = d }
func (h *fakeHandle) SetRefDistance(d float32) { h.refDist = d }
func (h *fakeHandle) SetVolume(v float32)      { h.volume = v }
func (h *fakeHandle) SetOcclusion(o float32)   { h.occlusion = o }
func (h *fakeHandle) Duration() time.Duration  { return h.length }

// fakeCatalog knows effects, wavs and dialog lines by name. Every instance
// starts finished, as a freshly loaded sound does.
type fakeCatalog struct {
	effects map[string]bool
	wavs    map[string]bool
	dialogs map[string]time.Duration
	broken  map[string]bool

	created  []*fakeHandle
	global   []string
	listener model.Vec3
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		effects: map[string]bool{},
		wavs:    map[string]bool{},
		dialogs: map[string]time.Duration{},
		broken:  map[string]bool{},
	}
}

func (c *fakeCatalog) EffectDescriptor(name string) (*Descriptor, bool) {
	if !c.effects[name] {
		return nil, false
	}
	return &Descriptor{Name: name, File: name + ".WAV"}, true
}

func (c *fakeCatalog) WavDescriptor(name string) (*Descriptor, bool) {
	if !c.wavs[name] {
		return nil, false
	}
	return &Descriptor{Name: name, File: name}, true
}

func (c *fakeCatalog) DialogDescriptor(name string) (*Descriptor, bool) {
	if _, ok := c.dialogs[name]; !ok {
		return nil, false
	}
	return &Descriptor{Name: name, File: name}, true
}

func (c *fakeCatalog) Instantiate(d *Descriptor) Handle {
	if c.broken[d.Name] {
		return nil
	}
	h := &fakeHandle{name: d.Name, finished: true, length: c.dialogs[d.Name]}
	c.created = append(c.created, h)
	return h
}

func (c *fakeCatalog) PlayGlobal(d *Descriptor) {
	c.global = append(c.global, d.Name)
}

func (c *fakeCatalog) SetListenerPosition(p model.Vec3) {
	c.listener = p
}

type fakeListener struct {
	pos        model.Vec3
	translateY float32
	targeted   bool
	armed      bool
}

func (l *fakeListener) Position() model.Vec3 { return l.pos }
func (l *fakeListener) TranslateY() float32  { return l.translateY }
func (l *fakeListener) IsTargeted() bool     { return l.targeted }
func (l *fakeListener) WeaponDrawn() bool    { return l.armed }

type occluderFunc func(from, to model.Vec3) float32

func (f occluderFunc) SoundOcclusion(from, to model.Vec3) float32 { return f(from, to) }
