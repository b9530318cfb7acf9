package model

// VobKind classifies placed world objects. Values are persisted, do not reorder.
type VobKind uint8

const (
	VobMob VobKind = iota
	VobMobInter
	VobMobBed
	VobMobDoor
	VobMobSwitch
	VobMobContainer
	VobMobFire
	VobMobLadder
	VobMobWheel
)

var vobKindNames = [...]string{
	VobMob:          "oCMOB",
	VobMobInter:     "oCMobInter",
	VobMobBed:       "oCMobBed",
	VobMobDoor:      "oCMobDoor",
	VobMobSwitch:    "oCMobSwitch",
	VobMobContainer: "oCMobContainer",
	VobMobFire:      "oCMobFire",
	VobMobLadder:    "oCMobLadder",
	VobMobWheel:     "oCMobWheel",
}

func (k VobKind) String() string {
	if int(k) < len(vobKindNames) {
		return vobKindNames[k]
	}
	return "unknown"
}

// ParseVobKind maps a class name to its kind. Unknown names map to VobMob.
func ParseVobKind(s string) VobKind {
	for i, n := range vobKindNames {
		if n == s {
			return VobKind(i)
		}
	}
	return VobMob
}

// MobVob is the placed-object record an interactive object is created from.
type MobVob struct {
	Kind          VobKind
	Name          string // tag name
	FocusName     string
	Visual        string
	Owner         string
	StateNum      int32
	TriggerTarget string
	OnStateFunc   string
	Contains      string // container payload, "ItFo_Apple:3,ItMi_Gold"
	BBox          BBox
	Transform     Matrix4x4
}

// SoundMode selects how a placed emitter replays.
type SoundMode uint8

const (
	SoundLoop SoundMode = iota
	SoundOnce
	SoundRandom
)

// SoundVob is a placed sound emitter.
type SoundVob struct {
	Name         string
	Position     Vec3
	Radius       float32
	Mode         SoundMode
	StartOn      bool
	RandDelay    float32 // seconds
	RandDelayVar float32 // seconds

	// Day window; only meaningful when Daytime is set.
	Daytime   bool
	StartHour float32
	EndHour   float32
	// Secondary effect played outside the window. Empty = reuse Name.
	Name2 string
}

// ZoneVob is a named music-zone box.
type ZoneVob struct {
	Name      string
	BBox      BBox
	IsDefault bool
}

// AttachPointDef describes one attach slot of a visual, relative to the object root.
type AttachPointDef struct {
	Name   string
	Node   int
	Offset Vec3
	Yaw    float32 // degrees
}
