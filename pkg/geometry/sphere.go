package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere with normal-shading material
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material.NewNormalShading(),
	}
}

// NewSphereWithMaterial creates a new sphere with the given material
func NewSphereWithMaterial(center core.Vec3, radius float64, m core.Material) *Sphere {
	s := NewSphere(center, radius)
	s.Material = m
	return s
}

// SetMaterial replaces the sphere's material
func (s *Sphere) SetMaterial(m core.Material) {
	s.Material = m
}

// Intersect returns the entering and leaving hits of the ray, or none.
// A tangent ray (zero discriminant) does not count as a crossing.
func (s *Sphere) Intersect(ray core.Ray) []core.Hit {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 || a == 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-halfB - sqrtD) / a
	t1 := (-halfB + sqrtD) / a

	p0 := ray.At(t0)
	p1 := ray.At(t1)
	return []core.Hit{
		core.NewHit(ray, t0, true, p0.Subtract(s.Center), s.Material),
		core.NewHit(ray, t1, false, p1.Subtract(s.Center), s.Material),
	}
}

// ApplyTransform moves the center as a point and scales the radius by the
// transform's uniform scale factor
func (s *Sphere) ApplyTransform(t core.Transform) {
	s.Center = t.Point(s.Center)
	s.Radius *= t.LinearScale()
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
