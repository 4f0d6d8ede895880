package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// PolyMesh is a triangle mesh over a shared vertex array.
// With Smoothing set, shading normals are blended from per-vertex normals.
type PolyMesh struct {
	Vertices  []core.Vec3
	Triangles [][3]int
	Smoothing bool
	Material  core.Material

	vertexNormals []core.Vec3
	bbox          core.AABB
	bvh           *core.BVH
}

// NewPolyMesh creates a mesh from vertex positions and triangle index triples.
// It panics if any index is out of range.
func NewPolyMesh(vertices []core.Vec3, triangles [][3]int, smoothing bool) *PolyMesh {
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(vertices) {
				panic(fmt.Sprintf("polymesh: triangle %d references vertex %d of %d", i, idx, len(vertices)))
			}
		}
	}

	m := &PolyMesh{
		Vertices:  vertices,
		Triangles: triangles,
		Smoothing: smoothing,
		Material:  material.NewNormalShading(),
	}
	m.update()
	return m
}

// update recomputes the cached bounding box, triangle hierarchy and vertex normals
func (m *PolyMesh) update() {
	m.bbox = core.NewAABBFromPoints(m.Vertices...)

	boxes := make([]core.AABB, len(m.Triangles))
	for i, tri := range m.Triangles {
		boxes[i] = core.NewAABBFromPoints(m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]).Expand(triangleEpsilon)
	}
	m.bvh = core.NewBVH(boxes)

	// Area-weighted: the unnormalized cross product is twice the face area
	m.vertexNormals = make([]core.Vec3, len(m.Vertices))
	for _, tri := range m.Triangles {
		v0, v1, v2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		n := v1.Subtract(v0).Cross(v2.Subtract(v0))
		for _, idx := range tri {
			m.vertexNormals[idx] = m.vertexNormals[idx].Add(n)
		}
	}
	for i := range m.vertexNormals {
		m.vertexNormals[i] = m.vertexNormals[i].Normalize()
	}
}

// SetMaterial replaces the mesh's material
func (m *PolyMesh) SetMaterial(mat core.Material) {
	m.Material = mat
}

// Intersect returns every surface crossing along the ray's line, sorted by t.
// A crossing through an edge or vertex shared by several triangles is
// reported once.
func (m *PolyMesh) Intersect(ray core.Ray) []core.Hit {
	if len(m.Triangles) == 0 || !m.bbox.Expand(triangleEpsilon).Hit(ray, -PlaneFar, PlaneFar) {
		return nil
	}

	var hits []core.Hit
	m.bvh.Visit(ray, -PlaneFar, PlaneFar, func(i int) {
		tri := m.Triangles[i]
		v0, v1, v2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		c, ok := crossLine(ray, v0, v1, v2)
		if !ok {
			return
		}

		var normal core.Vec3
		if m.Smoothing {
			normal = blendNormals(m.vertexNormals[tri[0]], m.vertexNormals[tri[1]], m.vertexNormals[tri[2]], c.u, c.v)
		} else {
			normal = v1.Subtract(v0).Cross(v2.Subtract(v0))
		}
		hits = append(hits, core.NewHit(ray, c.t, c.front, normal, m.Material))
	})

	core.SortHits(hits)
	return mergeCoincident(hits)
}

// mergeCoincident drops a hit that repeats the previous one: same side of
// the surface at the same t
func mergeCoincident(hits []core.Hit) []core.Hit {
	if len(hits) < 2 {
		return hits
	}
	merged := hits[:1]
	for _, hit := range hits[1:] {
		last := merged[len(merged)-1]
		if hit.Entering == last.Entering && math.Abs(hit.T-last.T) < triangleEpsilon {
			continue
		}
		merged = append(merged, hit)
	}
	return merged
}

// ApplyTransform moves every vertex and recomputes the normals
func (m *PolyMesh) ApplyTransform(t core.Transform) {
	for i, v := range m.Vertices {
		m.Vertices[i] = t.Point(v)
	}
	m.update()
}

// BoundingBox returns the axis-aligned bounding box of the mesh
func (m *PolyMesh) BoundingBox() core.AABB {
	return m.bbox
}

// Stats summarises the hierarchy that culls the mesh's triangles
func (m *PolyMesh) Stats() core.BVHStats {
	return m.bvh.Stats()
}
