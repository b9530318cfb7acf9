// Package music picks the ambient theme for a zone, time of day and combat mode.
package music

import "github.com/udisondev/openworld/internal/model"

// DayTag marks the day or night theme variant.
type DayTag uint8

const (
	Day DayTag = iota
	Night
)

func (t DayTag) String() string {
	if t == Night {
		return "NGT"
	}
	return "DAY"
}

// Mode is the combat mode of the listener.
type Mode uint8

const (
	Std Mode = iota // standard
	Thr             // threatened: targeted while unarmed
	Fgt             // fighting: targeted while armed
)

func (m Mode) String() string {
	switch m {
	case Thr:
		return "THR"
	case Fgt:
		return "FGT"
	default:
		return "STD"
	}
}

// downgrade is the second mode tried when a theme is missing.
func (m Mode) downgrade() Mode {
	if m == Thr {
		return Fgt
	}
	return Std
}

// ModeFor derives the combat mode from the listener state.
func ModeFor(targeted, weaponDrawn bool) Mode {
	switch {
	case targeted && weaponDrawn:
		return Fgt
	case targeted:
		return Thr
	default:
		return Std
	}
}

var (
	dayStart = model.ClockTime(4, 0)
	dayEnd   = model.ClockTime(21, 0)
)

// IsDay reports whether t falls into 04:00..21:00 inclusive.
func IsDay(t model.GameTime) bool {
	tod := t.TimeInDay()
	return dayStart <= tod && tod <= dayEnd
}

// DayTagFor returns the day tag for a game time.
func DayTagFor(t model.GameTime) DayTag {
	if IsDay(t) {
		return Day
	}
	return Night
}

// Name builds a theme name: "OC_DAY_STD".
func Name(label string, day DayTag, mode Mode) string {
	return label + "_" + day.String() + "_" + mode.String()
}
