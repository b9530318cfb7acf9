package zone

import (
	"log/slog"
	"sync"

	"github.com/udisondev/openworld/internal/model"
)

// Manager holds the zones of a world and caches the last resolved one.
type Manager struct {
	mu      sync.RWMutex
	zones   []*Zone
	def     *Zone
	current *Zone
}

// NewManager creates a manager without zones.
func NewManager() *Manager {
	return &Manager{}
}

// AddVob registers a zone from world data.
func (m *Manager) AddVob(v model.ZoneVob) {
	z := New(v.Name, v.BBox)
	if v.IsDefault {
		m.SetDefault(z)
		return
	}
	m.Add(z)
}

// Add registers an explicit zone. Later zones win over earlier ones on overlap.
func (m *Manager) Add(z *Zone) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones = append(m.zones, z)
}

// SetDefault sets the fallback zone.
func (m *Manager) SetDefault(z *Zone) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.def != nil {
		slog.Warn("default music zone replaced", "old", m.def.name, "new", z.name)
	}
	m.def = z
}

// Default returns the fallback zone, nil if none was set.
func (m *Manager) Default() *Zone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// Len returns the number of explicit zones.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones)
}

// Zones returns a snapshot of explicit zones.
func (m *Manager) Zones() []*Zone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Zone, len(m.zones))
	copy(out, m.zones)
	return out
}

// Resolve returns the zone containing the feet position p.
// The cached zone is tested first; otherwise every zone is scanned and the last
// match wins. Falls back to the default zone, which may be nil.
func (m *Manager) Resolve(p model.Vec3) *Zone {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Contains(p) {
		return m.current
	}

	m.current = nil
	for _, z := range m.zones {
		if z.Contains(p) {
			m.current = z
		}
	}
	if m.current != nil {
		return m.current
	}
	return m.def
}

// Current returns the cached explicit zone, nil when outside all of them.
func (m *Manager) Current() *Zone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Reset drops all zones and the cache.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones = nil
	m.def = nil
	m.current = nil
}
