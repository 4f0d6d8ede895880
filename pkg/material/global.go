package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Global shows the photon map: the average colour of the photons stored near
// the hit, scaled by Scale. It is black when no photon map is attached.
type Global struct {
	Scale float64
}

// NewGlobal creates a photon-map visualising material
func NewGlobal(scale float64) *Global {
	return &Global{Scale: scale}
}

func (g *Global) Compute(viewer core.Vec3, hit *core.Hit, recurse int, env core.Environment, sampler core.Sampler) core.Vec3 {
	pm := env.PhotonMap()
	if pm == nil {
		return core.Vec3{}
	}
	colour, _ := pm.Visualise(hit.Position)
	return colour.Multiply(g.Scale)
}

// Interact absorbs; the photon map is only read, never added to, through this material
func (g *Global) Interact(hit *core.Hit, sampler core.Sampler) core.Interaction {
	return core.Absorb()
}
