package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// AmbientIntensity scales the ambient term of shaded materials
const AmbientIntensity = 0.3

// forEachVisibleLight calls fn with the unit direction towards each light
// that faces the surface and is not blocked by an opaque object
func forEachVisibleLight(hit *core.Hit, env core.Environment, fn func(ldir, intensity core.Vec3)) {
	for _, light := range env.Lights() {
		ldir, lit := light.Direction(hit.Position)
		if !lit || ldir.Dot(hit.Normal) < 0 {
			continue
		}

		shadow := core.NewOffsetRay(hit.Position, ldir, core.ShadowEpsilon)
		limit := light.Distance(hit.Position)
		if !math.IsInf(limit, 1) {
			limit -= core.ShadowEpsilon
		}
		if env.ShadowTrace(shadow, limit) {
			continue
		}

		fn(ldir, light.Intensity(hit.Position))
	}
}

// scatterDiffuse is the photon interaction shared by matte surfaces: absorb
// with probability 1 - average(colour), otherwise bounce into the
// cosine-weighted hemisphere about the normal
func scatterDiffuse(colour core.Vec3, hit *core.Hit, sampler core.Sampler) core.Interaction {
	if sampler.Get1D() >= colour.Average() {
		return core.Absorb()
	}
	direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	return core.Reflect(core.NewOffsetRay(hit.Position, direction, core.BounceEpsilon), colour)
}
