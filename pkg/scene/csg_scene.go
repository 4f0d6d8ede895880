package scene

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// NewCSGScene shows every boolean operator and the implicit primitives:
// a glass lens (sphere ∩ sphere), a bitten metal ball (sphere − sphere),
// a row of fused glass beads (nested unions), a capped quadric cylinder
// and a half-space floor
func NewCSGScene() *Scene {
	s := New()
	s.CameraConfig = defaultCamera()
	s.Background = core.NewVec3(0.05, 0.05, 0.08)

	white := material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6))
	blue := material.NewDiffuse(core.NewVec3(0.25, 0.25, 0.85))
	glass := material.NewTintedDielectric(1.52, core.NewVec3(0.95, 0.95, 0.95))
	metal := material.NewMetallic(core.NewVec3(0.8, 0.8, 1), 0.05)

	floor := geometry.NewPlaneFromPoint(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0))
	floor.SetMaterial(white)
	s.AddObject(floor)

	back := geometry.NewPlaneFromPoint(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1))
	back.SetMaterial(white)
	s.AddObject(back)

	// Lens: two overlapping spheres intersected
	lens := geometry.NewCSG(geometry.Intersection,
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 1.5),
		geometry.NewSphere(core.NewVec3(0, 0, 1.2), 1.5),
	)
	lens.SetMaterial(glass)
	lens.ApplyTransform(core.Rotate(0.4, core.NewVec3(0, 1, 0)).Then(core.Translate(0, 0.5, 7)))
	s.AddObject(lens)

	// Ball with a bite taken out of it
	bitten := geometry.NewCSG(geometry.Difference,
		geometry.NewSphere(core.NewVec3(0, 0, 0), 0.9),
		geometry.NewSphere(core.NewVec3(-0.6, 0.4, -0.6), 0.6),
	)
	bitten.SetMaterial(metal)
	bitten.ApplyTransform(core.Translate(1.7, -2.1, 7.6))
	s.AddObject(bitten)

	// Fused beads
	beads := geometry.NewCSG(geometry.Union,
		geometry.NewCSG(geometry.Union,
			geometry.NewSphere(core.NewVec3(0, 0, 0), 0.25),
			geometry.NewSphere(core.NewVec3(0.25, 0, 0), 0.25),
		),
		geometry.NewCSG(geometry.Union,
			geometry.NewSphere(core.NewVec3(0.5, 0, 0), 0.25),
			geometry.NewSphere(core.NewVec3(0.75, 0, 0), 0.25),
		),
	)
	beads.SetMaterial(glass)
	beads.ApplyTransform(core.Rotate(0.05, core.NewVec3(0, 1, 0)).Then(core.Translate(-0.5, -2.75, 6)))
	s.AddObject(beads)

	// Cylinder x² + z² = 0.16 capped between y = -3 and y = -1
	cylinder := geometry.NewCSG(geometry.Intersection,
		geometry.NewQuadratic(1, 0, 0, 0, 0, 0, 0, 1, 0, -0.16),
		geometry.NewCSG(geometry.Intersection,
			geometry.NewPlaneFromPoint(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)),
			geometry.NewPlaneFromPoint(core.NewVec3(0, -3, 0), core.NewVec3(0, -1, 0)),
		),
	)
	cylinder.SetMaterial(blue)
	cylinder.ApplyTransform(core.Translate(-1.8, 0, 8))
	s.AddObject(cylinder)

	s.AddLight(lights.NewPoint(core.NewVec3(0.5, 2.8, 6), core.NewVec3(0.8, 0.8, 0.8)))
	s.AddLight(lights.NewPoint(core.NewVec3(-0.5, 2.8, 6), core.NewVec3(0.8, 0.8, 0.8)))
	s.AddLight(lights.NewDirectional(core.NewVec3(-1, -1, 1), core.NewVec3(0.2, 0.2, 0.2)))
	return s
}
