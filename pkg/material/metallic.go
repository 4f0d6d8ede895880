package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Metallic is a specular reflector whose mirror direction is jittered by Roughness
type Metallic struct {
	Colour    core.Vec3 // Specular colour
	Roughness float64   // 0 is a perfect mirror
}

// NewMetallic creates a new metallic material
func NewMetallic(colour core.Vec3, roughness float64) *Metallic {
	return &Metallic{Colour: colour, Roughness: roughness}
}

// Compute follows one reflected ray
func (m *Metallic) Compute(viewer core.Vec3, hit *core.Hit, recurse int, env core.Environment, sampler core.Sampler) core.Vec3 {
	reflected := m.Interact(hit, sampler)
	radiance, _ := env.Raytrace(reflected.Ray, recurse-1, sampler)
	return reflected.Attenuation.MultiplyVec(radiance)
}

// Interact always reflects
func (m *Metallic) Interact(hit *core.Hit, sampler core.Sampler) core.Interaction {
	mirror := hit.Incident.Direction.Normalize().Reflect(hit.Normal)
	direction := mirror
	if m.Roughness > 0 {
		direction = mirror.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Roughness)).Normalize()
		// Fuzz must not push the ray below the surface
		if direction.Dot(hit.Normal) <= 0 {
			direction = mirror
		}
	}
	return core.Reflect(core.NewOffsetRay(hit.Position, direction, core.BounceEpsilon), m.Colour)
}
