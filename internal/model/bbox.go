package model

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min Vec3
	Max Vec3
}

// ContainsHalfOpen reports whether p lies in [Min, Max) on every axis.
func (b BBox) ContainsHalfOpen(p Vec3) bool {
	return b.Min.X <= p.X && p.X < b.Max.X &&
		b.Min.Y <= p.Y && p.Y < b.Max.Y &&
		b.Min.Z <= p.Z && p.Z < b.Max.Z
}

// Height returns Max.Y - Min.Y.
func (b BBox) Height() float32 {
	return b.Max.Y - b.Min.Y
}
