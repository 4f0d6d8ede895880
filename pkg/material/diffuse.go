package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// DefaultIndirect weights the stochastic bounce used when no photon map is attached
const DefaultIndirect = 0.3

// Diffuse is a Lambertian surface
type Diffuse struct {
	Colour   core.Vec3 // Diffuse reflectance
	Indirect float64   // Weight of the one-bounce indirect estimate without a photon map
}

// NewDiffuse creates a new diffuse material
func NewDiffuse(colour core.Vec3) *Diffuse {
	return &Diffuse{Colour: colour, Indirect: DefaultIndirect}
}

// Compute sums direct lighting from every visible light plus an indirect term,
// taken from the photon map when one is attached
func (d *Diffuse) Compute(viewer core.Vec3, hit *core.Hit, recurse int, env core.Environment, sampler core.Sampler) core.Vec3 {
	var colour core.Vec3
	forEachVisibleLight(hit, env, func(ldir, intensity core.Vec3) {
		cos := max(0, hit.Normal.Dot(ldir))
		colour = colour.Add(intensity.MultiplyVec(d.Colour).Multiply(cos))
	})

	if pm := env.PhotonMap(); pm != nil {
		return colour.Add(d.Colour.MultiplyVec(pm.Estimate(hit.Position)))
	}

	if d.Indirect > 0 && recurse > 1 {
		direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
		bounce := core.NewOffsetRay(hit.Position, direction, core.BounceEpsilon)
		radiance, _ := env.Raytrace(bounce, recurse-1, sampler)
		colour = colour.Add(radiance.MultiplyVec(d.Colour).Multiply(d.Indirect))
	}
	return colour
}

// Interact absorbs or diffusely reflects a photon
func (d *Diffuse) Interact(hit *core.Hit, sampler core.Sampler) core.Interaction {
	return scatterDiffuse(d.Colour, hit, sampler)
}
