package anim

// Tag names a character animation request.
type Tag uint16

const (
	NoAnim Tag = iota
	Idle
	Move
	InteractIn
	InteractOut
	InteractToStand
	InteractFromStand
)

var tagNames = [...]string{
	NoAnim:            "NoAnim",
	Idle:              "Idle",
	Move:              "Move",
	InteractIn:        "InteractIn",
	InteractOut:       "InteractOut",
	InteractToStand:   "InteractToStand",
	InteractFromStand: "InteractFromStand",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "Tag(?)"
}

// Direction is the micro-transition an interactive object is asked to play.
type Direction int32

const (
	Out    Direction = -1
	Active Direction = 0
	In     Direction = 1
)
