package geometry

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// PlaneFar stands in for the infinite end of a half-space span
const PlaneFar = 1e10

// Plane is the half-space a·x + b·y + c·z + d <= 0. It behaves as a solid
// for CSG: every crossing is reported as an entering/leaving pair, with the
// unbounded end placed at ±PlaneFar.
type Plane struct {
	A, B, C, D float64
	Material   core.Material
}

// NewPlane creates a plane from its implicit coefficients
func NewPlane(a, b, c, d float64) *Plane {
	return &Plane{A: a, B: b, C: c, D: d, Material: material.NewNormalShading()}
}

// NewPlaneFromPoint creates a plane through point whose outward normal is normal
func NewPlaneFromPoint(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	return NewPlane(n.X, n.Y, n.Z, -n.Dot(point))
}

// SetMaterial replaces the plane's material
func (p *Plane) SetMaterial(m core.Material) {
	p.Material = m
}

// Normal returns the outward unit normal
func (p *Plane) Normal() core.Vec3 {
	return core.NewVec3(p.A, p.B, p.C).Normalize()
}

// Intersect returns the span of the ray that lies inside the half-space
func (p *Plane) Intersect(ray core.Ray) []core.Hit {
	normal := core.NewVec3(p.A, p.B, p.C)
	if normal.IsZero() {
		return nil
	}

	u := normal.Dot(ray.Origin) + p.D
	v := normal.Dot(ray.Direction)

	if v == 0 {
		// Parallel: either entirely inside or entirely outside
		if u < 0 {
			return []core.Hit{
				core.NewHit(ray, -PlaneFar, true, normal, p.Material),
				core.NewHit(ray, PlaneFar, false, normal, p.Material),
			}
		}
		return nil
	}

	t := -u / v
	if v > 0 {
		// Heading out of the half-space: inside from -∞ until t
		return []core.Hit{
			core.NewHit(ray, -PlaneFar, true, normal, p.Material),
			core.NewHit(ray, t, false, normal, p.Material),
		}
	}
	return []core.Hit{
		core.NewHit(ray, t, true, normal, p.Material),
		core.NewHit(ray, PlaneFar, false, normal, p.Material),
	}
}

// ApplyTransform maps the coefficients through the inverse-transpose
func (p *Plane) ApplyTransform(t core.Transform) {
	c := t.Plane([4]float64{p.A, p.B, p.C, p.D})
	p.A, p.B, p.C, p.D = c[0], c[1], c[2], c[3]
}
