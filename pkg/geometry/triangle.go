package geometry

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// triangleEpsilon rejects rays parallel to the triangle plane and hits at the origin
const triangleEpsilon = 1e-7

// Triangle represents a single triangle defined by three vertices, with
// optional per-corner normals for smooth shading
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Normals    *[3]core.Vec3 // Per-corner normals, nil for flat shading
	Material   core.Material // Material of the triangle
	normal     core.Vec3     // Cached face normal
}

// NewTriangle creates a new flat-shaded triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material.NewNormalShading(),
	}
	t.computeNormal()
	return t
}

// NewSmoothTriangle creates a triangle whose shading normal is blended from
// the three corner normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3) *Triangle {
	t := NewTriangle(v0, v1, v2)
	t.Normals = &[3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	return t
}

// computeNormal calculates and caches the triangle's face normal
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// FaceNormal returns the geometric normal (V1-V0)×(V2-V0), normalized
func (t *Triangle) FaceNormal() core.Vec3 {
	return t.normal
}

// SetMaterial replaces the triangle's material
func (t *Triangle) SetMaterial(m core.Material) {
	t.Material = m
}

// Intersect returns the single crossing of the ray with the triangle, or none
func (t *Triangle) Intersect(ray core.Ray) []core.Hit {
	c, ok := mollerTrumbore(ray, t.V0, t.V1, t.V2)
	if !ok {
		return nil
	}

	normal := t.normal
	if t.Normals != nil {
		normal = blendNormals(t.Normals[0], t.Normals[1], t.Normals[2], c.u, c.v)
	}
	return []core.Hit{core.NewHit(ray, c.t, c.front, normal, t.Material)}
}

// ApplyTransform moves the vertices as points and the corner normals
// through the inverse-transpose
func (t *Triangle) ApplyTransform(tr core.Transform) {
	t.V0 = tr.Point(t.V0)
	t.V1 = tr.Point(t.V1)
	t.V2 = tr.Point(t.V2)
	if t.Normals != nil {
		for i := range t.Normals {
			t.Normals[i] = tr.Normal(t.Normals[i])
		}
	}
	t.computeNormal()
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// crossing is the result of a ray/triangle test
type crossing struct {
	t     float64 // ray parameter
	u, v  float64 // barycentric weights of the second and third vertices
	front bool    // ray arrives against the (v1-v0)×(v2-v0) normal
}

// mollerTrumbore tests a ray against the triangle v0, v1, v2.
// Only crossings with t > triangleEpsilon are reported.
func mollerTrumbore(ray core.Ray, v0, v1, v2 core.Vec3) (crossing, bool) {
	c, ok := crossLine(ray, v0, v1, v2)
	if !ok || c.t <= triangleEpsilon {
		return crossing{}, false
	}
	return c, true
}

// crossLine tests the whole line through the ray against the triangle, so
// crossings behind the origin come back with negative t
func crossLine(ray core.Ray, v0, v1, v2 core.Vec3) (crossing, bool) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -triangleEpsilon && a < triangleEpsilon {
		return crossing{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return crossing{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return crossing{}, false
	}

	// a = -(d · (edge1 × edge2)), so a positive determinant is a front-face hit
	return crossing{t: f * edge2.Dot(q), u: u, v: v, front: a > 0}, true
}

// blendNormals interpolates corner normals by barycentric weights
func blendNormals(n0, n1, n2 core.Vec3, u, v float64) core.Vec3 {
	w := 1 - u - v
	return n0.Multiply(w).Add(n1.Multiply(u)).Add(n2.Multiply(v)).Normalize()
}
