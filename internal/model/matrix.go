package model

import "math"

// Matrix4x4 is a column-major affine transform. Element (col,row) is M[col*4+row];
// translation lives in column 3.
type Matrix4x4 struct {
	M [16]float32
}

// Identity returns the identity transform.
func Identity() Matrix4x4 {
	var m Matrix4x4
	m.M[0], m.M[5], m.M[10], m.M[15] = 1, 1, 1, 1
	return m
}

// Translation returns a pure translation transform.
func Translation(x, y, z float32) Matrix4x4 {
	m := Identity()
	m.M[12], m.M[13], m.M[14] = x, y, z
	return m
}

// RotationY returns a rotation around the up axis, angle in degrees.
func RotationY(deg float32) Matrix4x4 {
	rad := float64(deg) * math.Pi / 180
	c := float32(math.Cos(rad))
	s := float32(math.Sin(rad))

	m := Identity()
	m.M[0] = c
	m.M[2] = -s
	m.M[8] = s
	m.M[10] = c
	return m
}

// At returns element at column col, row row.
func (m Matrix4x4) At(col, row int) float32 {
	return m.M[col*4+row]
}

// Mul returns m*o (o is applied first).
func (m Matrix4x4) Mul(o Matrix4x4) Matrix4x4 {
	var r Matrix4x4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m.M[k*4+row] * o.M[col*4+k]
			}
			r.M[col*4+row] = sum
		}
	}
	return r
}

// Project transforms point p (w=1) and divides by w.
func (m Matrix4x4) Project(p Vec3) Vec3 {
	x := m.M[0]*p.X + m.M[4]*p.Y + m.M[8]*p.Z + m.M[12]
	y := m.M[1]*p.X + m.M[5]*p.Y + m.M[9]*p.Z + m.M[13]
	z := m.M[2]*p.X + m.M[6]*p.Y + m.M[10]*p.Z + m.M[14]
	w := m.M[3]*p.X + m.M[7]*p.Y + m.M[11]*p.Z + m.M[15]
	if w != 0 && w != 1 {
		x, y, z = x/w, y/w, z/w
	}
	return Vec3{X: x, Y: y, Z: z}
}

// Origin returns the translation part.
func (m Matrix4x4) Origin() Vec3 {
	return Vec3{X: m.M[12], Y: m.M[13], Z: m.M[14]}
}

// Forward returns the direction the local +Z axis maps to.
func (m Matrix4x4) Forward() Vec3 {
	return m.Project(Vec3{Z: 1}).Sub(m.Project(Vec3{}))
}
