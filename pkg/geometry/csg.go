package geometry

import (
	"fmt"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Op is a boolean operator combining two solids
type Op int

const (
	Union Op = iota
	Intersection
	Difference // Left minus Right
)

func (op Op) String() string {
	switch op {
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	case Difference:
		return "difference"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// CSG combines two objects under a boolean operator. Either child may itself
// be a *CSG; any other Object is a leaf.
type CSG struct {
	Left, Right core.Object
	Op          Op

	// Material, when set, replaces the child materials on every emitted hit
	Material core.Material
}

// NewCSG creates a branch combining left and right under op
func NewCSG(op Op, left, right core.Object) *CSG {
	return &CSG{Left: left, Right: right, Op: op}
}

// SetMaterial sets the material used for all hits on the combined solid
func (c *CSG) SetMaterial(m core.Material) {
	c.Material = m
}

// ApplyTransform applies the transform to both children
func (c *CSG) ApplyTransform(t core.Transform) {
	c.Left.ApplyTransform(t)
	c.Right.ApplyTransform(t)
}

// Intersect merges the ordered hit sequences of both children into the
// ordered hit sequence of the combined solid
func (c *CSG) Intersect(ray core.Ray) []core.Hit {
	hits := c.Op.Merge(c.Left.Intersect(ray), c.Right.Intersect(ray))
	if c.Material != nil {
		for i := range hits {
			hits[i].Material = c.Material
		}
	}
	return hits
}

// keepLeft reports whether a crossing of the left solid survives, given
// whether the ray is currently inside the right solid
func (op Op) keepLeft(insideRight bool) bool {
	switch op {
	case Union, Difference:
		return !insideRight
	case Intersection:
		return insideRight
	}
	panic(fmt.Sprintf("csg: unknown operator %v", op))
}

// keepRight reports whether a crossing of the right solid survives, given
// whether the ray is currently inside the left solid
func (op Op) keepRight(insideLeft bool) bool {
	switch op {
	case Union:
		return !insideLeft
	case Intersection, Difference:
		return insideLeft
	}
	panic(fmt.Sprintf("csg: unknown operator %v", op))
}

// Merge combines two hit sequences, each sorted by t, with a merge-scan.
// Equal t values take the left crossing first. Right crossings kept by a
// Difference swap their entering flag since the right solid's surface
// bounds the result from the other side.
func (op Op) Merge(left, right []core.Hit) []core.Hit {
	var result []core.Hit
	insideLeft, insideRight := false, false
	i, j := 0, 0

	takeLeft := func() {
		h := left[i]
		i++
		if op.keepLeft(insideRight) {
			result = append(result, h)
		}
		insideLeft = !insideLeft
	}
	takeRight := func() {
		h := right[j]
		j++
		if op.keepRight(insideLeft) {
			if op == Difference {
				h.Entering = !h.Entering
			}
			result = append(result, h)
		}
		insideRight = !insideRight
	}

	for i < len(left) && j < len(right) {
		if left[i].T <= right[j].T {
			takeLeft()
		} else {
			takeRight()
		}
	}

	// One side is exhausted
	if op == Intersection {
		return result
	}
	for i < len(left) {
		takeLeft()
	}
	for j < len(right) {
		takeRight()
	}
	return result
}
