package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Compound applies several materials to one surface, for example a Phong
// surface with the photon map shown on top
type Compound struct {
	Materials []core.Material
}

// NewCompound creates a compound of the given materials
func NewCompound(materials ...core.Material) *Compound {
	return &Compound{Materials: materials}
}

// Include appends a material
func (c *Compound) Include(m core.Material) {
	c.Materials = append(c.Materials, m)
}

// Compute sums the contributions of every member
func (c *Compound) Compute(viewer core.Vec3, hit *core.Hit, recurse int, env core.Environment, sampler core.Sampler) core.Vec3 {
	var colour core.Vec3
	for _, m := range c.Materials {
		colour = colour.Add(m.Compute(viewer, hit, recurse, env, sampler))
	}
	return colour
}

// Interact defers to one member chosen uniformly at random
func (c *Compound) Interact(hit *core.Hit, sampler core.Sampler) core.Interaction {
	if len(c.Materials) == 0 {
		return core.Absorb()
	}
	i := min(int(sampler.Get1D()*float64(len(c.Materials))), len(c.Materials)-1)
	return c.Materials[i].Interact(hit, sampler)
}
