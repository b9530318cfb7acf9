package model

import "math"

// Vec3 is a point or direction in world space. Y axis points up.
// Value type, передаётся по значению.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// V3 is a shorthand constructor for Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// WithY returns a copy of v with Y replaced (immutable pattern).
func (v Vec3) WithY(y float32) Vec3 {
	v.Y = y
	return v
}

// QuadLength returns squared length (без sqrt для производительности).
func (v Vec3) QuadLength() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns euclidean length.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.QuadLength())))
}

// DistanceSquared returns squared distance to o.
func (v Vec3) DistanceSquared(o Vec3) float32 {
	return v.Sub(o).QuadLength()
}
