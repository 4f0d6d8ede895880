package core

import "fmt"

const (
	// BounceEpsilon offsets reflected, refracted and photon rays from the surface they leave
	BounceEpsilon = 1e-3
	// ShadowEpsilon offsets shadow rays from the surface they leave
	ShadowEpsilon = 1e-4
)

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewOffsetRay creates a ray leaving point along direction, started epsilon
// along the direction so it does not re-hit the surface it leaves.
func NewOffsetRay(point, direction Vec3, epsilon float64) Ray {
	d := direction.Normalize()
	return Ray{Origin: point.Add(d.Multiply(epsilon)), Direction: d}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// String formats the ray as Ray{origin,direction}
func (r Ray) String() string {
	return fmt.Sprintf("Ray{%v,%v}", r.Origin, r.Direction)
}
