package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/go-gl/mathgl/mgl64"
)

const quadraticEpsilon = 1e-7

// Quadratic is the implicit surface
//
//	a x² + 2b xy + 2c xz + 2d x + e y² + 2f yz + 2g y + h z² + 2i z + j = 0
//
// The solid is the region where the left-hand side is negative.
type Quadratic struct {
	A, B, C, D, E, F, G, H, I, J float64
	Material                     core.Material
}

// NewQuadratic creates a quadric surface from its ten coefficients
func NewQuadratic(a, b, c, d, e, f, g, h, i, j float64) *Quadratic {
	return &Quadratic{
		A: a, B: b, C: c, D: d, E: e, F: f, G: g, H: h, I: i, J: j,
		Material: material.NewNormalShading(),
	}
}

// SetMaterial replaces the quadric's material
func (q *Quadratic) SetMaterial(m core.Material) {
	q.Material = m
}

// Intersect solves the quadric along the ray. Rays that meet the surface
// once (aq near zero) or not at all return no hits.
func (q *Quadratic) Intersect(ray core.Ray) []core.Hit {
	d := ray.Direction
	p := ray.Origin

	aq := q.A*d.X*d.X + 2*q.B*d.X*d.Y + 2*q.C*d.X*d.Z +
		q.E*d.Y*d.Y + 2*q.F*d.Y*d.Z +
		q.H*d.Z*d.Z
	if math.Abs(aq) < quadraticEpsilon {
		return nil
	}

	bq := 2 * (q.A*p.X*d.X + q.B*(p.X*d.Y+d.X*p.Y) + q.C*(p.X*d.Z+d.X*p.Z) + q.D*d.X +
		q.E*p.Y*d.Y + q.F*(p.Y*d.Z+d.Y*p.Z) + q.G*d.Y +
		q.H*p.Z*d.Z + q.I*d.Z)

	cq := q.A*p.X*p.X + 2*q.B*p.X*p.Y + 2*q.C*p.X*p.Z + 2*q.D*p.X +
		q.E*p.Y*p.Y + 2*q.F*p.Y*p.Z + 2*q.G*p.Y +
		q.H*p.Z*p.Z + 2*q.I*p.Z +
		q.J

	discriminant := bq*bq - 4*aq*cq
	if discriminant < quadraticEpsilon {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-bq - sqrtD) / (2 * aq)
	t1 := (-bq + sqrtD) / (2 * aq)
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	hits := make([]core.Hit, 0, 2)
	for _, t := range [2]float64{t0, t1} {
		gradient := q.Gradient(ray.At(t))
		entering := gradient.Dot(d) < 0
		hits = append(hits, core.NewHit(ray, t, entering, gradient, q.Material))
	}
	return hits
}

// Gradient returns half the gradient of the implicit function at p,
// which points out of the solid
func (q *Quadratic) Gradient(p core.Vec3) core.Vec3 {
	return core.NewVec3(
		q.A*p.X+q.B*p.Y+q.C*p.Z+q.D,
		q.B*p.X+q.E*p.Y+q.F*p.Z+q.G,
		q.C*p.X+q.F*p.Y+q.H*p.Z+q.I,
	)
}

// Matrix returns the symmetric 4x4 form of the quadric
func (q *Quadratic) Matrix() mgl64.Mat4 {
	// Symmetric, so column-major and row-major layouts coincide
	return mgl64.Mat4{
		q.A, q.B, q.C, q.D,
		q.B, q.E, q.F, q.G,
		q.C, q.F, q.H, q.I,
		q.D, q.G, q.I, q.J,
	}
}

// ApplyTransform replaces Q with M⁻ᵀ Q M⁻¹
func (q *Quadratic) ApplyTransform(t core.Transform) {
	m := t.Quadric(q.Matrix())
	q.A, q.B, q.C, q.D = m.At(0, 0), m.At(0, 1), m.At(0, 2), m.At(0, 3)
	q.E, q.F, q.G = m.At(1, 1), m.At(1, 2), m.At(1, 3)
	q.H, q.I = m.At(2, 2), m.At(2, 3)
	q.J = m.At(3, 3)
}
