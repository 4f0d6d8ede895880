package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// AirIndex is the refractive index outside every dielectric
const AirIndex = 1.0003

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Tint            core.Vec3 // Colour applied to both reflected and transmitted light
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Tint: core.NewVec3(1, 1, 1)}
}

// NewTintedDielectric creates a dielectric that colours the light passing through it
func NewTintedDielectric(refractiveIndex float64, tint core.Vec3) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Tint: tint}
}

// Transmissive reports that dielectrics let light through
func (d *Dielectric) Transmissive() bool {
	return true
}

// Compute follows the sampled reflected or refracted ray
func (d *Dielectric) Compute(viewer core.Vec3, hit *core.Hit, recurse int, env core.Environment, sampler core.Sampler) core.Vec3 {
	next := d.Interact(hit, sampler)
	radiance, _ := env.Raytrace(next.Ray, recurse-1, sampler)
	return next.Attenuation.MultiplyVec(radiance)
}

// Interact chooses between reflection and refraction using Schlick's approximation.
// Total internal reflection always reflects.
func (d *Dielectric) Interact(hit *core.Hit, sampler core.Sampler) core.Interaction {
	var refractionRatio float64
	if hit.Entering {
		refractionRatio = AirIndex / d.RefractiveIndex
	} else {
		refractionRatio = d.RefractiveIndex / AirIndex
	}

	unitDirection := hit.Incident.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	cannotRefract := refractionRatio*sinTheta > 1.0
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction := unitDirection.Reflect(hit.Normal)
		return core.Reflect(core.NewOffsetRay(hit.Position, direction, core.BounceEpsilon), d.Tint)
	}

	direction := refractVector(unitDirection, hit.Normal, refractionRatio)
	return core.Transmit(core.NewOffsetRay(hit.Position, direction, core.BounceEpsilon), d.Tint)
}

// refractVector calculates the refraction of a vector using Snell's law
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
