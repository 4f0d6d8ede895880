package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Phong implements the classic ambient + diffuse + specular model
type Phong struct {
	Ambient  core.Vec3
	Diffuse  core.Vec3
	Specular core.Vec3
	Power    float64 // Specular exponent
}

// NewPhong creates a new Phong material
func NewPhong(ambient, diffuse, specular core.Vec3, power float64) *Phong {
	return &Phong{Ambient: ambient, Diffuse: diffuse, Specular: specular, Power: power}
}

// Compute returns the ambient term plus the diffuse and specular terms of
// every visible light
func (p *Phong) Compute(viewer core.Vec3, hit *core.Hit, recurse int, env core.Environment, sampler core.Sampler) core.Vec3 {
	colour := p.Ambient.Multiply(AmbientIntensity)
	forEachVisibleLight(hit, env, func(ldir, intensity core.Vec3) {
		diffuse := p.Diffuse.Multiply(max(0, hit.Normal.Dot(ldir)))

		// Mirror the light direction about the normal and compare with the viewer
		reflected := ldir.Negate().Reflect(hit.Normal)
		specular := p.Specular.Multiply(math.Pow(max(0, reflected.Dot(viewer)), p.Power))

		colour = colour.Add(intensity.MultiplyVec(diffuse.Add(specular)))
	})
	return colour
}

// Interact treats the surface as diffuse with the Phong diffuse colour
func (p *Phong) Interact(hit *core.Hit, sampler core.Sampler) core.Interaction {
	return scatterDiffuse(p.Diffuse, hit, sampler)
}
