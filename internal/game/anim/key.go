package anim

import (
	"strconv"
	"strings"
)

// Transition is a pair of interaction states, before and after one step.
type Transition struct {
	From int32
	To   int32
}

// Step computes the transition for dir from state, honoring the reverse flag and
// clamping the target into [-1, stateNum].
func Step(state, stateNum int32, reverse bool, dir Direction) Transition {
	d := int32(dir)
	if reverse {
		d = -d
	}
	to := state + d
	to = max(-1, min(to, stateNum))
	return Transition{From: state, To: to}
}

func stateToken(st int32, sentinel string) string {
	if st < 0 {
		return sentinel
	}
	return "S" + strconv.Itoa(int(st))
}

// ObjectKey builds the key of an object's own skeleton animation:
// "S_S<n>" for a static state, "T_S<a>_2_S<b>" for a transition.
// Any side below zero collapses to "S_S0".
func ObjectKey(t Transition) string {
	if t.From < 0 || t.To < 0 {
		return "S_S0"
	}
	from := stateToken(t.From, "S0")
	if t.From == t.To {
		return "S_" + from
	}
	return "T_" + from + "_2_" + stateToken(t.To, "S0")
}

// SchemeKey builds the character-side key for a scheme and attach position:
// "S_BENCH_FRONT_S1" or "T_BENCH_FRONT_STAND_2_S0". Negative states read as STAND.
func SchemeKey(scheme, posTag string, t Transition) string {
	var b strings.Builder
	from := stateToken(t.From, "STAND")
	if t.From == t.To {
		b.WriteString("S_")
		b.WriteString(scheme)
		b.WriteString(posTag)
		b.WriteByte('_')
		b.WriteString(from)
		return b.String()
	}
	b.WriteString("T_")
	b.WriteString(scheme)
	b.WriteString(posTag)
	b.WriteByte('_')
	b.WriteString(from)
	b.WriteString("_2_")
	b.WriteString(stateToken(t.To, "STAND"))
	return b.String()
}
