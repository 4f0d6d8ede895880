package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/loaders"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// NewMeshScene places the mesh stored at path in the diffuse room, scaled to
// fit a 2.4 unit box and resting on the floor
func NewMeshScene(path string, smoothing bool) (*Scene, error) {
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh scene: %w", err)
	}
	if len(data.Triangles) == 0 {
		return nil, fmt.Errorf("mesh %s has no faces", path)
	}

	s := New()
	s.CameraConfig = defaultCamera()

	white := material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6))
	red := material.NewDiffuse(core.NewVec3(0.6, 0, 0))
	green := material.NewDiffuse(core.NewVec3(0, 0.6, 0))
	redGlass := material.NewTintedDielectric(1.52, core.NewVec3(1, 0.8, 0.8))
	addBox(s, white, white, red, green, white)

	mesh := geometry.NewPolyMesh(data.Vertices, data.Triangles, smoothing)
	mesh.SetMaterial(redGlass)

	// Normalise: centre on the origin, scale the largest extent to 2.4
	box := mesh.BoundingBox()
	size := box.Max.Subtract(box.Min)
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	scale := 1.0
	if extent > 0 {
		scale = 2.4 / extent
	}
	c := box.Center()
	mesh.ApplyTransform(core.Translate(-c.X, -c.Y, -c.Z).
		Then(core.Scale(scale, scale, scale)).
		Then(core.Rotate(0.5, core.NewVec3(0, 1, 0))).
		Then(core.Translate(0, -3+size.Y*scale/2, 7)))
	s.AddObject(mesh)

	s.AddObject(sphere(core.NewVec3(-1.8, -2.1, 9), 0.9, material.NewMetallic(core.NewVec3(0.8, 0.8, 1), 0)))
	s.AddLight(lights.NewPoint(core.NewVec3(0, 2, 3), core.NewVec3(1, 1, 1)))
	return s, nil
}
