package core

import (
	"fmt"
	"sort"
)

// Hit records a single intersection between a ray and a surface.
// Material is a borrowed reference, valid for the lifetime of one trace.
type Hit struct {
	T        float64  // Distance along the incident ray
	Entering bool     // True when the ray passes from outside to inside
	Position Vec3     // Point of intersection
	Normal   Vec3     // Unit normal, oriented against the incident ray
	Material Material // Material of the object that was hit
	Incident Ray      // The ray that produced this hit
}

// NewHit builds a hit at parameter t along ray. The outward normal is
// normalized and flipped so that it faces the incoming ray.
func NewHit(ray Ray, t float64, entering bool, outwardNormal Vec3, material Material) Hit {
	h := Hit{
		T:        t,
		Entering: entering,
		Position: ray.At(t),
		Material: material,
		Incident: ray,
	}
	h.SetFaceNormal(ray, outwardNormal)
	return h
}

// SetFaceNormal stores the normal oriented against the ray direction
func (h *Hit) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	n := outwardNormal.Normalize()
	if n.Dot(ray.Direction) > 0 {
		n = n.Negate()
	}
	h.Normal = n
}

// String formats the hit like Hit{t,[position],[normal]}
func (h Hit) String() string {
	return fmt.Sprintf("Hit{%g,%v,%v}", h.T, h.Position, h.Normal)
}

// SortHits orders hits by nondecreasing t, keeping the relative order of equal hits
func SortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].T < hits[j].T
	})
}
