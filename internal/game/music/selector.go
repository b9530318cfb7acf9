package music

import (
	"log/slog"
	"sync"

	"github.com/udisondev/openworld/internal/game/zone"
)

// Theme is a music theme definition.
type Theme struct {
	Name   string
	File   string
	Volume float32
	Loop   bool
}

// Themes looks up themes by name.
type Themes interface {
	MusicTheme(name string) (*Theme, bool)
}

// Player switches the ambient theme. SetMusic reports false when t cannot be played.
type Player interface {
	SetMusic(t *Theme) bool
}

type state struct {
	zone *zone.Zone
	day  DayTag
	mode Mode
}

// Selector caches the last zone and tags and only searches themes when they change.
type Selector struct {
	mu     sync.Mutex
	themes Themes
	player Player

	last    state
	hasLast bool
	theme   *Theme
}

// NewSelector creates a selector.
func NewSelector(themes Themes, player Player) *Selector {
	return &Selector{themes: themes, player: player}
}

// Evaluate applies the theme for z, falling back to def. Returns true when the
// player accepted a new theme. Nothing changes when no combination resolves.
// A theme the player rejects is not recorded and is retried on the next call.
func (s *Selector) Evaluate(z, def *zone.Zone, day DayTag, mode Mode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := state{zone: z, day: day, mode: mode}
	if s.hasLast && s.last == cur {
		return false
	}
	s.last, s.hasLast = cur, true

	name, t, ok := s.find(z, def, day, mode)
	if !ok {
		slog.Debug("no music theme for zone", "zone", zoneName(z), "day", day, "mode", mode)
		return false
	}

	if !s.player.SetMusic(t) {
		slog.Debug("music theme rejected", "zone", zoneName(z), "theme", name)
		s.hasLast = false
		return false
	}
	slog.Debug("music theme selected", "zone", zoneName(z), "theme", name)
	s.theme = t
	return true
}

func (s *Selector) find(z, def *zone.Zone, day DayTag, mode Mode) (string, *Theme, bool) {
	zones := [2]*zone.Zone{z, def}
	days := [2]DayTag{day, Day}
	modes := [3]Mode{mode, mode.downgrade(), Std}

	for _, zn := range zones {
		if zn == nil {
			continue
		}
		label := zn.Label()
		for _, d := range days {
			for _, m := range modes {
				name := Name(label, d, m)
				if t, ok := s.themes.MusicTheme(name); ok {
					return name, t, true
				}
			}
		}
	}
	return "", nil, false
}

// Current returns the theme last applied, nil if none.
func (s *Selector) Current() *Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Invalidate forces the next Evaluate to search again.
func (s *Selector) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasLast = false
}

func zoneName(z *zone.Zone) string {
	if z == nil {
		return ""
	}
	return z.Name()
}
