package interactive

import "errors"

var (
	ErrNoFreePoint    = errors.New("no free attach point")
	ErrInfeasible     = errors.New("attach position is unreachable")
	ErrOccupied       = errors.New("attach point is occupied")
	ErrNotAttachPoint = errors.New("slot is not an attach point")
)
