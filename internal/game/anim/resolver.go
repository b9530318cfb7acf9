package anim

import "sync"

type overlay struct {
	catalog Catalog
	until   uint64 // tick after which the overlay expires, 0 = permanent
}

// Resolver resolves keys against a base skeleton with a stack of overlays on top.
// Newest overlay wins. Safe for concurrent use.
type Resolver struct {
	mu       sync.RWMutex
	base     Catalog
	overlays []overlay
}

// NewResolver creates a resolver over a base skeleton catalog (may be nil).
func NewResolver(base Catalog) *Resolver {
	return &Resolver{base: base}
}

// SetBase replaces the base skeleton.
func (r *Resolver) SetBase(base Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = base
}

// Base returns the base skeleton catalog.
func (r *Resolver) Base() Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.base
}

// Resolve looks key up in overlays (newest first), then in the base skeleton.
func (r *Resolver) Resolve(key string) (*Sequence, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.overlays) - 1; i >= 0; i-- {
		if s, ok := r.overlays[i].catalog.Sequence(key); ok {
			return s, true
		}
	}
	if r.base == nil {
		return nil, false
	}
	return r.base.Sequence(key)
}

// AddOverlay pushes an overlay. until is the expiry tick, 0 keeps it forever.
// Re-adding an overlay with the same name refreshes its expiry.
func (r *Resolver) AddOverlay(c Catalog, until uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.overlays {
		if r.overlays[i].catalog.Name() == c.Name() {
			r.overlays[i].until = until
			return
		}
	}
	r.overlays = append(r.overlays, overlay{catalog: c, until: until})
}

// HasOverlay reports whether an overlay with that name is active.
func (r *Resolver) HasOverlay(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.overlays {
		if o.catalog.Name() == name {
			return true
		}
	}
	return false
}

// RemoveOverlay drops an overlay by name.
func (r *Resolver) RemoveOverlay(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.overlays[:0]
	for _, o := range r.overlays {
		if o.catalog.Name() != name {
			kept = append(kept, o)
		}
	}
	r.overlays = kept
}

// Update expires timed overlays.
func (r *Resolver) Update(now uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.overlays[:0]
	for _, o := range r.overlays {
		if o.until == 0 || now < o.until {
			kept = append(kept, o)
		}
	}
	r.overlays = kept
}
