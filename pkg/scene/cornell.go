package scene

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
)

// defaultCamera looks down +Z from the origin into the room
func defaultCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, 8),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      1.0,
	}
}

// NewCornellScene creates the classic box with Phong walls and a diffuse,
// a glass and a metal sphere under one point light
func NewCornellScene() *Scene {
	s := New()
	s.CameraConfig = defaultCamera()

	white := material.NewPhong(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.6, 0.6, 0.6), core.NewVec3(0.4, 0.4, 0.4), 40)
	red := material.NewPhong(core.NewVec3(0.2, 0, 0), core.NewVec3(0.4, 0, 0), core.NewVec3(0.5, 0.5, 0.5), 40)
	green := material.NewPhong(core.NewVec3(0, 0.2, 0), core.NewVec3(0, 0.4, 0), core.NewVec3(0.5, 0.5, 0.5), 40)
	glass := material.NewTintedDielectric(1.52, core.NewVec3(0.95, 0.95, 0.95))
	metal := material.NewMetallic(core.NewVec3(0.9, 0.9, 1), 0.05)

	addBox(s, white, white, red, green, white)

	s.AddObject(sphere(core.NewVec3(-1.2, 0, 5.5), 0.6, white))
	s.AddObject(sphere(core.NewVec3(0, 0.5, 5.5), 0.6, glass))
	s.AddObject(sphere(core.NewVec3(1.2, -0.5, 5.5), 0.6, metal))

	s.AddLight(lights.NewPoint(core.NewVec3(0, 2.5, 3), core.NewVec3(1, 1, 1)))
	return s
}

// NewMaterialScene creates a diffuse room with metal and glass spheres, lit
// by a point light; it is the scene the photon map is tuned for
func NewMaterialScene() *Scene {
	s := New()
	s.CameraConfig = defaultCamera()

	white := material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6))
	red := material.NewDiffuse(core.NewVec3(0.6, 0, 0))
	green := material.NewDiffuse(core.NewVec3(0, 0.6, 0))
	glass := material.NewDielectric(1.52)
	redGlass := material.NewTintedDielectric(1.52, core.NewVec3(1, 0.8, 0.8))
	metal := material.NewMetallic(core.NewVec3(0.8, 0.8, 1), 0)

	addBox(s, white, white, red, green, white)

	s.AddObject(sphere(core.NewVec3(-1.8, -2.1, 9), 0.9, metal))
	s.AddObject(sphere(core.NewVec3(1.4, -2.7, 7), 0.3, glass))
	s.AddObject(sphere(core.NewVec3(0, -2.2, 7), 0.8, redGlass))

	s.AddLight(lights.NewPoint(core.NewVec3(0, 2, 3), core.NewVec3(1, 1, 1)))
	return s
}
