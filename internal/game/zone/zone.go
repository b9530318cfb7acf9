// Package zone resolves the music zone a listener stands in. Zones are
// axis-aligned boxes; one default zone covers everything else.
package zone

import (
	"strings"

	"github.com/udisondev/openworld/internal/model"
)

// Zone is a named music context box.
type Zone struct {
	name string
	bbox model.BBox
}

// New creates a zone.
func New(name string, bbox model.BBox) *Zone {
	return &Zone{name: name, bbox: bbox}
}

// Name returns the full zone name, e.g. "MUSICZONE_OC".
func (z *Zone) Name() string { return z.name }

// BBox returns the zone bounds.
func (z *Zone) BBox() model.BBox { return z.bbox }

// Label is the name stripped up to its first underscore: "MUSICZONE_OC" -> "OC".
// Names without an underscore are returned as is.
func (z *Zone) Label() string {
	if _, after, ok := strings.Cut(z.name, "_"); ok {
		return after
	}
	return z.name
}

// Contains checks p against the half-open box [min, max).
func (z *Zone) Contains(p model.Vec3) bool {
	return z.bbox.ContainsHalfOpen(p)
}
