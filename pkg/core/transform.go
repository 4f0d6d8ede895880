package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine transform backed by a 4x4 homogeneous matrix.
// Points pick up the translation, vectors do not, and normals go through
// the inverse-transpose so they stay perpendicular under non-uniform scale.
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// NewTransform builds a transform from a row-major 4x4 matrix
func NewTransform(rows [4][4]float64) Transform {
	var m mgl64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[c*4+r] = rows[r][c]
		}
	}
	return Transform{m: m}
}

// Translate returns a translation by (x, y, z)
func Translate(x, y, z float64) Transform {
	return Transform{m: mgl64.Translate3D(x, y, z)}
}

// Scale returns a scale by (x, y, z) about the origin
func Scale(x, y, z float64) Transform {
	return Transform{m: mgl64.Scale3D(x, y, z)}
}

// Rotate returns a rotation of angle radians about axis
func Rotate(angle float64, axis Vec3) Transform {
	a := axis.Normalize()
	return Transform{m: mgl64.HomogRotate3D(angle, mgl64.Vec3{a.X, a.Y, a.Z})}
}

// Then returns the transform that applies t first and next second
func (t Transform) Then(next Transform) Transform {
	return Transform{m: next.m.Mul4(t.m)}
}

// Matrix returns the underlying column-major matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return t.m
}

// At returns the matrix element at row, col
func (t Transform) At(row, col int) float64 {
	return t.m.At(row, col)
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	return Transform{m: t.m.Inv()}
}

// Point applies the transform to a position
func (t Transform) Point(p Vec3) Vec3 {
	r := t.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{r[0], r[1], r[2]}
}

// Vector applies the linear part of the transform to a direction
func (t Transform) Vector(v Vec3) Vec3 {
	r := t.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vec3{r[0], r[1], r[2]}
}

// Normal transforms a surface normal by the inverse-transpose of the
// linear part and renormalizes it
func (t Transform) Normal(n Vec3) Vec3 {
	r := t.m.Mat3().Inv().Transpose().Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z})
	return Vec3{r[0], r[1], r[2]}.Normalize()
}

// Plane transforms implicit plane coefficients (a, b, c, d)
func (t Transform) Plane(coeffs [4]float64) [4]float64 {
	r := t.m.Inv().Transpose().Mul4x1(mgl64.Vec4{coeffs[0], coeffs[1], coeffs[2], coeffs[3]})
	return [4]float64{r[0], r[1], r[2], r[3]}
}

// Quadric transforms a symmetric 4x4 quadric matrix Q into M^-T Q M^-1
func (t Transform) Quadric(q mgl64.Mat4) mgl64.Mat4 {
	inv := t.m.Inv()
	return inv.Transpose().Mul4(q).Mul4(inv)
}

// LinearScale returns the cube root of the determinant of the linear part,
// the uniform scale factor the transform applies to lengths
func (t Transform) LinearScale() float64 {
	return math.Cbrt(math.Abs(t.m.Mat3().Det()))
}
