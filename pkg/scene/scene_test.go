package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// countingObject wraps an object and counts intersection queries
type countingObject struct {
	core.Object
	calls int
}

func (c *countingObject) Intersect(ray core.Ray) []core.Hit {
	c.calls++
	return c.Object.Intersect(ray)
}

func newSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func TestSelectFirst(t *testing.T) {
	hits := []core.Hit{{T: -3}, {T: 2}, {T: 0.5}, {T: 7}}
	hit, ok := SelectFirst(hits)
	if !ok || hit.T != 0.5 {
		t.Errorf("Expected t=0.5, got %v ok=%t", hit.T, ok)
	}

	if _, ok := SelectFirst([]core.Hit{{T: -1}, {T: -0.1}}); ok {
		t.Error("Expected no hit when all are behind the origin")
	}
	if _, ok := SelectFirst(nil); ok {
		t.Error("Expected no hit for an empty list")
	}
}

func TestScene_Trace(t *testing.T) {
	s := New()
	near := geometry.NewSphere(core.NewVec3(0, 0, 5), 1)
	far := geometry.NewSphere(core.NewVec3(0, 0, 10), 1)
	s.AddObject(far)
	s.AddObject(near)

	tests := []struct {
		name     string
		ray      core.Ray
		hit      bool
		expected float64
	}{
		{"nearest of two", core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), true, 4},
		{"from inside the near sphere", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)), true, 1},
		{"miss", core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), false, 0},
		{"behind", core.NewRay(core.NewVec3(0, 0, 20), core.NewVec3(0, 0, 1)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := s.Trace(tt.ray)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%t, got %t", tt.hit, ok)
			}
			if ok && math.Abs(hit.T-tt.expected) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expected, hit.T)
			}
		})
	}
}

func TestScene_ShadowTrace(t *testing.T) {
	s := New()
	opaque := geometry.NewSphereWithMaterial(core.NewVec3(0, 0, 5), 1, material.NewDiffuse(core.NewVec3(1, 1, 1)))
	glass := geometry.NewSphereWithMaterial(core.NewVec3(0, 5, 0), 1, material.NewDielectric(1.5))
	s.AddObject(opaque)
	s.AddObject(glass)

	tests := []struct {
		name     string
		ray      core.Ray
		limit    float64
		occluded bool
	}{
		{"opaque within limit", core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 10, true},
		{"opaque beyond limit", core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 3.5, false},
		{"glass does not block", core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), 10, false},
		{"nothing there", core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ShadowTrace(tt.ray, tt.limit); got != tt.occluded {
				t.Errorf("Expected occluded=%t, got %t", tt.occluded, got)
			}
		})
	}
}

func TestScene_ShadowSymmetry(t *testing.T) {
	// Opaque scene: shadow_trace must agree with trace for any ray and limit
	s := NewCornellScene()
	opaque := New()
	for _, o := range s.Objects {
		if sphere, ok := o.(*geometry.Sphere); ok && core.IsTransmissive(sphere.Material) {
			continue
		}
		opaque.AddObject(o)
	}

	random := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		origin := core.NewVec3(random.Float64()*5-2.5, random.Float64()*5-2.5, 4.5+random.Float64()*5)
		direction := core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
		ray := core.NewRay(origin, direction)
		limit := random.Float64() * 8

		hit, ok := opaque.Trace(ray)
		want := ok && hit.T > 0 && hit.T < limit
		if got := opaque.ShadowTrace(ray, limit); got != want {
			t.Fatalf("Ray %v limit %f: shadow=%t, trace hit=%t at t=%f", ray, limit, got, ok, hit.T)
		}
	}
}

func TestScene_RaytraceBudget(t *testing.T) {
	s := New()
	s.Background = core.NewVec3(0.1, 0.2, 0.3)
	counter := &countingObject{Object: geometry.NewSphere(core.NewVec3(0, 0, 5), 1)}
	s.AddObject(counter)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

	for _, budget := range []int{0, -1} {
		colour, depth := s.Raytrace(ray, budget, newSampler())
		if colour != s.Background || depth != 0 {
			t.Errorf("Budget %d: expected background at depth 0, got %v at %f", budget, colour, depth)
		}
	}
	if counter.calls != 0 {
		t.Errorf("Expected no intersection tests with a spent budget, got %d", counter.calls)
	}

	// With budget the sphere is shaded with its normal colour
	colour, depth := s.Raytrace(ray, 1, newSampler())
	if math.Abs(depth-4) > 1e-9 {
		t.Errorf("Expected depth 4, got %f", depth)
	}
	if colour != core.NewVec3(0.5, 0.5, 1) {
		t.Errorf("Expected normal shading [0.5,0.5,1], got %v", colour)
	}

	colour, depth = s.Raytrace(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), 5, newSampler())
	if colour != s.Background || depth != 0 {
		t.Errorf("Expected background for a miss, got %v at %f", colour, depth)
	}
}

func TestScene_RecursionTerminates(t *testing.T) {
	// Two facing mirrors: every bounce recurses until the budget runs out
	s := New()
	s.Background = core.NewVec3(1, 1, 1)
	mirror := material.NewMetallic(core.NewVec3(0.5, 0.5, 0.5), 0)
	near := geometry.NewPlaneFromPoint(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1))
	far := geometry.NewPlaneFromPoint(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	near.SetMaterial(mirror)
	far.SetMaterial(mirror)
	s.AddObject(near)
	s.AddObject(far)

	colour, _ := s.Raytrace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), 4, newSampler())
	// Four reflections of 0.5 before the background is returned
	if math.Abs(colour.X-0.0625) > 1e-9 {
		t.Errorf("Expected 0.0625, got %v", colour)
	}
}

func TestScene_PhotonMapAttachment(t *testing.T) {
	s := New()
	if s.PhotonMap() != nil {
		t.Error("Expected no photon map on a new scene")
	}
	s.AddLight(lights.NewPoint(core.Vec3{}, core.NewVec3(1, 1, 1)))
	if len(s.Lights()) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights()))
	}
}

func TestRegistry(t *testing.T) {
	for _, info := range List() {
		if info.Name == "mesh" {
			if _, err := Load(info.Name, Options{}); err == nil {
				t.Error("Expected an error for the mesh scene without a path")
			}
			continue
		}
		s, err := Load(info.Name, Options{})
		if err != nil {
			t.Fatalf("Scene %s: %v", info.Name, err)
		}
		if len(s.Objects) == 0 || len(s.Lights()) == 0 {
			t.Errorf("Scene %s has %d objects and %d lights", info.Name, len(s.Objects), len(s.Lights()))
		}
		if s.CameraConfig.FOV <= 0 {
			t.Errorf("Scene %s has no camera", info.Name)
		}
	}

	if _, err := Load("nope", Options{}); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
}

func TestCSGScene_CentreRayHitsLens(t *testing.T) {
	s := NewCSGScene()
	hit, ok := s.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0.5, 7).Normalize()))
	if !ok {
		t.Fatal("Expected the centre ray to hit")
	}
	if !core.IsTransmissive(hit.Material) {
		t.Errorf("Expected the glass lens, got %T", hit.Material)
	}
}
