package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphere_StaysAboveSurface(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 1000; i++ {
			d := SampleCosineHemisphere(normal, sampler.Get2D())
			if d.Dot(normal) < -1e-12 {
				t.Fatalf("Direction %v below surface with normal %v", d, normal)
			}
			if math.Abs(d.Length()-1) > 1e-9 {
				t.Fatalf("Expected unit direction, got length %f", d.Length())
			}
		}
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(1)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1+1e-12 {
			t.Fatalf("Point %v outside unit sphere", p)
		}
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"miss above", NewRay(NewVec3(0, 2, -5), NewVec3(0, 0, 1)), false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), true},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
