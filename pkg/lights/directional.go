package lights

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Directional is a light with constant intensity arriving from one direction.
// It has no position, so it is not a photon source.
type Directional struct {
	direction core.Vec3 // Unit direction the light travels in
	intensity core.Vec3
}

// NewDirectional creates a light travelling along direction
func NewDirectional(direction, intensity core.Vec3) *Directional {
	return &Directional{direction: direction.Normalize(), intensity: intensity}
}

// Direction returns the direction towards the light; every surface is lit
func (d *Directional) Direction(surface core.Vec3) (core.Vec3, bool) {
	return d.direction.Negate(), true
}

// Intensity is the same everywhere
func (d *Directional) Intensity(surface core.Vec3) core.Vec3 {
	return d.intensity
}

// Distance is infinite
func (d *Directional) Distance(surface core.Vec3) float64 {
	return math.Inf(1)
}
