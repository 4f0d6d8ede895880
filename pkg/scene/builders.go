package scene

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
)

// addQuad adds the quad a, b, c, d as two triangles wound a→b→c and c→d→a
func addQuad(s *Scene, a, b, c, d core.Vec3, m core.Material) {
	for _, tri := range [][3]core.Vec3{{a, b, c}, {c, d, a}} {
		t := geometry.NewTriangle(tri[0], tri[1], tri[2])
		t.SetMaterial(m)
		s.AddObject(t)
	}
}

// addBox adds the five visible walls of the room spanning x,y ∈ [-3,3] and
// z ∈ [4,10], open towards the camera
func addBox(s *Scene, floor, ceiling, left, right, back core.Material) {
	v := func(x, y, z float64) core.Vec3 { return core.NewVec3(x, y, z) }

	addQuad(s, v(-3, -3, 10), v(-3, -3, 4), v(3, -3, 4), v(3, -3, 10), floor)
	addQuad(s, v(-3, 3, 4), v(-3, 3, 10), v(3, 3, 10), v(3, 3, 4), ceiling)
	addQuad(s, v(-3, 3, 4), v(-3, 3, 10), v(-3, -3, 10), v(-3, -3, 4), left)
	addQuad(s, v(3, 3, 10), v(3, 3, 4), v(3, -3, 4), v(3, -3, 10), right)
	addQuad(s, v(-3, -3, 10), v(-3, 3, 10), v(3, 3, 10), v(3, -3, 10), back)
}

func sphere(center core.Vec3, radius float64, m core.Material) *geometry.Sphere {
	return geometry.NewSphereWithMaterial(center, radius, m)
}
