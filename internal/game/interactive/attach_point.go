package interactive

import "github.com/udisondev/openworld/internal/model"

// attachPointNames lists slot names characters may occupy.
var attachPointNames = map[string]struct{}{
	"ZS_POS0":       {},
	"ZS_POS0_FRONT": {},
	"ZS_POS0_BACK":  {},
	"ZS_POS0_DIST":  {},
	"ZS_POS1":       {},
	"ZS_POS1_FRONT": {},
	"ZS_POS1_BACK":  {},
	"ZS_POS1_DIST":  {},
	"ZS_POS2":       {},
	"ZS_POS3":       {},
}

// AttachPoint is a named slot on an object where one character may engage.
type AttachPoint struct {
	Name  string
	Node  int
	Local model.Matrix4x4 // root-relative slot transform

	user       model.ObjectID
	userState  int32
	attachMode bool
}

func newAttachPoint(def model.AttachPointDef) AttachPoint {
	local := model.Translation(def.Offset.X, def.Offset.Y, def.Offset.Z).Mul(model.RotationY(def.Yaw))
	return AttachPoint{
		Name:      def.Name,
		Node:      def.Node,
		Local:     local,
		userState: -1,
	}
}

// IsAttachPoint reports whether the slot name is one characters can use.
func (p *AttachPoint) IsAttachPoint() bool {
	_, ok := attachPointNames[p.Name]
	return ok
}

// PosTag returns the position suffix used in scheme animation keys.
func (p *AttachPoint) PosTag() string {
	switch p.Name {
	case "ZS_POS0_FRONT", "ZS_POS1_FRONT":
		return "_FRONT"
	case "ZS_POS0_BACK", "ZS_POS1_BACK":
		return "_BACK"
	}
	return ""
}

// User returns the occupying character handle, 0 when free.
func (p *AttachPoint) User() model.ObjectID { return p.user }

// UserState mirrors the object state as seen by the occupant.
func (p *AttachPoint) UserState() int32 { return p.userState }

// AttachMode is true while the occupant wants to stay engaged.
func (p *AttachPoint) AttachMode() bool { return p.attachMode }

// IsFree reports whether nobody occupies the slot.
func (p *AttachPoint) IsFree() bool { return p.user == 0 }
