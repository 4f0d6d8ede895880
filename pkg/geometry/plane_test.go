package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func TestPlane_Intersect(t *testing.T) {
	// Floor at y = 0, solid below
	plane := NewPlaneFromPoint(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name       string
		origin     core.Vec3
		direction  core.Vec3
		expectedT  []float64
		enteringAt float64 // t of the real surface crossing, NaN if none
	}{
		{"downward from above", core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), []float64{2, PlaneFar}, 2},
		{"upward from below", core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), []float64{-PlaneFar, 3}, 3},
		{"parallel above", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), nil, math.NaN()},
		{"parallel inside", core.NewVec3(0, -1, 0), core.NewVec3(1, 0, 0), []float64{-PlaneFar, PlaneFar}, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hits := plane.Intersect(ray)
			if len(hits) != len(tt.expectedT) {
				t.Fatalf("Expected %d hits, got %d", len(tt.expectedT), len(hits))
			}
			checkHits(t, ray, hits)
			for i, want := range tt.expectedT {
				if math.Abs(hits[i].T-want) > 1e-9 {
					t.Errorf("Hit %d: expected t=%g, got t=%g", i, want, hits[i].T)
				}
			}
			if len(hits) == 2 && (!hits[0].Entering || hits[1].Entering) {
				t.Errorf("Expected entering/leaving pair, got %t/%t", hits[0].Entering, hits[1].Entering)
			}
		})
	}
}

func TestPlane_ApplyTransform(t *testing.T) {
	plane := NewPlaneFromPoint(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	plane.ApplyTransform(core.Translate(0, 5, 0))

	ray := core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0))
	hits := plane.Intersect(ray)
	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(hits))
	}
	if math.Abs(hits[0].T-5) > 1e-9 {
		t.Errorf("Expected surface at t=5, got t=%f", hits[0].T)
	}
	if !vecClose(hits[0].Normal, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected normal [0,1,0], got %v", hits[0].Normal)
	}
}

func TestPlane_Degenerate(t *testing.T) {
	plane := NewPlane(0, 0, 0, 1)
	if hits := plane.Intersect(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))); len(hits) != 0 {
		t.Errorf("Expected no hits for zero normal, got %d", len(hits))
	}
}
