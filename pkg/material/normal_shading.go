package material

import "github.com/df07/go-photon-raytracer/pkg/core"

// NormalShading maps the surface normal to a colour, -1..1 to 0..1 per axis
type NormalShading struct{}

func NewNormalShading() NormalShading {
	return NormalShading{}
}

func (NormalShading) Compute(viewer core.Vec3, hit *core.Hit, recurse int, env core.Environment, sampler core.Sampler) core.Vec3 {
	return core.NewVec3(
		(hit.Normal.X+1)*0.5,
		(hit.Normal.Y+1)*0.5,
		(-hit.Normal.Z+1)*0.5,
	)
}

func (NormalShading) Interact(hit *core.Hit, sampler core.Sampler) core.Interaction {
	return core.Absorb()
}
