package scene

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
)

// Scene owns the objects and lights of a picture and answers ray queries
// against them. It is built once and then only read, so any number of
// goroutines may trace through it concurrently.
type Scene struct {
	Objects      []core.Object
	LightList    []core.Light
	Background   core.Vec3 // Radiance of rays that hit nothing
	CameraConfig renderer.CameraConfig

	photons core.PhotonEstimator
}

// New creates an empty scene with a black background
func New() *Scene {
	return &Scene{}
}

// AddObject appends an object; the scene takes ownership of it
func (s *Scene) AddObject(o core.Object) {
	s.Objects = append(s.Objects, o)
}

// AddLight appends a light
func (s *Scene) AddLight(l core.Light) {
	s.LightList = append(s.LightList, l)
}

// Lights returns the scene's lights
func (s *Scene) Lights() []core.Light {
	return s.LightList
}

// SetPhotonMap attaches a built photon map for materials to query.
// Pass nil to detach it.
func (s *Scene) SetPhotonMap(pm core.PhotonEstimator) {
	s.photons = pm
}

// PhotonMap returns the attached photon map, or nil
func (s *Scene) PhotonMap() core.PhotonEstimator {
	return s.photons
}

// SelectFirst returns the hit with the smallest non-negative t
func SelectFirst(hits []core.Hit) (core.Hit, bool) {
	best := -1
	for i := range hits {
		if hits[i].T < 0 {
			continue
		}
		if best < 0 || hits[i].T < hits[best].T {
			best = i
		}
	}
	if best < 0 {
		return core.Hit{}, false
	}
	return hits[best], true
}

// Trace returns the nearest hit in front of the ray origin across all objects
func (s *Scene) Trace(ray core.Ray) (core.Hit, bool) {
	var closest core.Hit
	found := false
	for _, object := range s.Objects {
		hit, ok := SelectFirst(object.Intersect(ray))
		if ok && (!found || hit.T < closest.T) {
			closest = hit
			found = true
		}
	}
	return closest, found
}

// ShadowTrace reports whether an opaque surface lies strictly between 0 and
// limit along ray. Transmissive surfaces do not block.
func (s *Scene) ShadowTrace(ray core.Ray, limit float64) bool {
	for _, object := range s.Objects {
		hit, ok := SelectFirst(object.Intersect(ray))
		if !ok || hit.T <= 0 || hit.T >= limit {
			continue
		}
		if core.IsTransmissive(hit.Material) {
			continue
		}
		return true
	}
	return false
}

// Raytrace returns the radiance arriving along ray and the distance to the
// surface it came from. A spent budget or a miss returns the background at
// depth zero.
func (s *Scene) Raytrace(ray core.Ray, recurse int, sampler core.Sampler) (core.Vec3, float64) {
	if recurse <= 0 {
		return s.Background, 0
	}

	hit, ok := s.Trace(ray)
	if !ok {
		return s.Background, 0
	}

	m := hit.Material
	if m == nil {
		m = material.NewNormalShading()
	}
	return m.Compute(ray.Direction.Negate(), &hit, recurse, s, sampler), hit.T
}
