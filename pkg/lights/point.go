package lights

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Point is an isotropic light at a position
type Point struct {
	Position  core.Vec3
	intensity core.Vec3
}

// NewPoint creates a point light
func NewPoint(position, intensity core.Vec3) *Point {
	return &Point{Position: position, intensity: intensity}
}

// Direction returns the unit direction from surface to the light
func (p *Point) Direction(surface core.Vec3) (core.Vec3, bool) {
	return p.Position.Subtract(surface).Normalize(), true
}

// Intensity is constant; point lights do not fall off with distance
func (p *Point) Intensity(surface core.Vec3) core.Vec3 {
	return p.intensity
}

// Distance returns how far surface is from the light
func (p *Point) Distance(surface core.Vec3) float64 {
	return p.Position.Subtract(surface).Length()
}

// GeneratePhoton emits a direct photon in a uniformly random direction
func (p *Point) GeneratePhoton(sampler core.Sampler) core.Photon {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	return core.Photon{
		Ray:    core.NewRay(p.Position, direction),
		Colour: p.intensity,
		Type:   core.Direct,
	}
}
