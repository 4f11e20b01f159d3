// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"github.com/chewxy/math32"
)

// Vec3 is a point or direction in sketch space. Sketch geometry lives in
// the z=0 plane until an extrusion places it.
type Vec3 struct {
	X, Y, Z float32
}

var (
	Origin = Vec3{}
	UnitX  = Vec3{1, 0, 0}
	UnitY  = Vec3{0, 1, 0}
	UnitZ  = Vec3{0, 0, 1}
)

// XY returns the point (x, y, 0).
func XY(x, y float32) Vec3 {
	return Vec3{X: x, Y: y}
}

func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Length returns the length of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{
		X: a.X + b.X,
		Y: a.Y + b.Y,
		Z: a.Z + b.Z,
	}
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{
		X: a.X - b.X,
		Y: a.Y - b.Y,
		Z: a.Z - b.Z,
	}
}

// Scale returns the vector multiplied by the skalar s
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// Normalize returns the normalized vector
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Dot returns a dot b
func Dot(a Vec3, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a cross b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Distance returns |a - b|
func Distance(a, b Vec3) float32 {
	return Sub(a, b).Length()
}

// Equal returns a == b
func Equal(a Vec3, b Vec3) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}

// Near reports whether every component of a and b differs by at most eps.
func Near(a, b Vec3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps &&
		math32.Abs(a.Y-b.Y) <= eps &&
		math32.Abs(a.Z-b.Z) <= eps
}

func minmax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

func MinMax(a, b Vec3) (Vec3, Vec3) {
	var r, s Vec3
	r.X, s.X = minmax(a.X, b.X)
	r.Y, s.Y = minmax(a.Y, b.Y)
	r.Z, s.Z = minmax(a.Z, b.Z)
	return r, s
}

// RotateX rotates v by angle radians around the x axis through pivot.
//
//	1, 0, 0
//	0, cos, -sin
//	0, sin, cos
func RotateX(v, pivot Vec3, angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	d := Sub(v, pivot)
	return Add(pivot, Vec3{
		X: d.X,
		Y: cos*d.Y - sin*d.Z,
		Z: sin*d.Y + cos*d.Z,
	})
}

// RotateY rotates v by angle radians around the y axis through pivot.
//
//	cos, 0, sin
//	0, 1, 0
//	-sin, 0, cos
func RotateY(v, pivot Vec3, angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	d := Sub(v, pivot)
	return Add(pivot, Vec3{
		X: cos*d.X + sin*d.Z,
		Y: d.Y,
		Z: -sin*d.X + cos*d.Z,
	})
}

// RotateZ rotates v by angle radians around the z axis through pivot.
//
//	cos, -sin, 0
//	sin, cos, 0
//	0, 0, 1
func RotateZ(v, pivot Vec3, angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	d := Sub(v, pivot)
	return Add(pivot, Vec3{
		X: cos*d.X - sin*d.Y,
		Y: sin*d.X + cos*d.Y,
		Z: d.Z,
	})
}

// Collinear reports whether the three points lie on one line, using eps as
// the tolerance on the doubled triangle area.
func Collinear(a, b, c Vec3, eps float32) bool {
	return Cross(Sub(b, a), Sub(c, a)).Length() <= eps
}
