package photonmap

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/scene"
	"github.com/dhconnelly/rtreego"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func testOptions() Options {
	return Options{
		PhotonsPerLight: 2000,
		MaxBounces:      5,
		K:               1000,
		Radius:          0.5,
		Workers:         4,
		Seed:            1,
	}
}

// mapFromHits indexes hand-placed photon hits
func mapFromHits(opts Options, hits ...PhotonHit) *PhotonMap {
	objs := make([]rtreego.Spatial, len(hits))
	for i := range hits {
		objs[i] = &hits[i]
	}
	return newPhotonMap(objs, Stats{}, opts)
}

func hitAt(position core.Vec3, colour core.Vec3, typ core.PhotonType) PhotonHit {
	return PhotonHit{Photon: core.Photon{Colour: colour, Type: typ}, Position: position}
}

func TestBuild_NoPhotonSources(t *testing.T) {
	s := scene.New()
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 5), 1))
	s.AddLight(lights.NewDirectional(core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1)))

	logger := &recordingLogger{}
	opts := testOptions()
	opts.Logger = logger
	pm := Build(s, opts)

	if pm.Len() != 0 {
		t.Errorf("Expected an empty map, got %d photons", pm.Len())
	}
	if pm.Stats().Emitted != 0 {
		t.Errorf("Expected no photons emitted, got %d", pm.Stats().Emitted)
	}
	if len(logger.lines) == 0 {
		t.Error("Expected the skipped light to be logged")
	}

	colour, count := pm.Visualise(core.NewVec3(0, 0, 4))
	if !colour.IsZero() || count != 0 {
		t.Errorf("Expected (0,0,0), 0 from an empty map, got %v, %d", colour, count)
	}
	if est := pm.Estimate(core.NewVec3(0, 0, 4)); !est.IsZero() {
		t.Errorf("Expected a zero estimate from an empty map, got %v", est)
	}
}

func TestBuild_Room(t *testing.T) {
	s := scene.NewMaterialScene()
	opts := testOptions()
	opts.PhotonsPerLight = 4000
	opts.Radius = 1
	pm := Build(s, opts)
	stats := pm.Stats()

	if stats.Emitted != opts.PhotonsPerLight {
		t.Errorf("Expected %d photons emitted, got %d", opts.PhotonsPerLight, stats.Emitted)
	}
	// The room is open towards the light, so some photons escape
	if stats.Direct == 0 || stats.Direct > opts.PhotonsPerLight {
		t.Errorf("Expected between 1 and %d direct photons, got %d", opts.PhotonsPerLight, stats.Direct)
	}
	if stats.Indirect == 0 {
		t.Error("Expected diffuse walls to produce indirect photons")
	}
	if stats.Indirect > stats.Direct*opts.MaxBounces {
		t.Errorf("Indirect photons %d exceed the bounce limit", stats.Indirect)
	}
	if stats.Shadow > stats.Direct*opts.MaxBounces {
		t.Errorf("Shadow photons %d exceed the bounce limit", stats.Shadow)
	}
	if pm.Len() != stats.Stored() {
		t.Errorf("Expected %d stored photons, index holds %d", stats.Stored(), pm.Len())
	}

	// The floor right below the light is well lit
	colour, count := pm.Visualise(core.NewVec3(0, -3, 5))
	if count == 0 || colour.IsZero() {
		t.Errorf("Expected photons on the floor, got %v, %d", colour, count)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	opts := testOptions()
	a := Build(scene.NewMaterialScene(), opts)
	b := Build(scene.NewMaterialScene(), opts)

	if a.Stats() != b.Stats() {
		t.Errorf("Expected identical builds, got %+v and %+v", a.Stats(), b.Stats())
	}

	probes := []core.Vec3{
		core.NewVec3(0, -3, 5),
		core.NewVec3(-3, 0, 7),
		core.NewVec3(0, 0, 10),
	}
	for _, p := range probes {
		ca, na := a.Visualise(p)
		cb, nb := b.Visualise(p)
		if na != nb || ca.Subtract(cb).Length() > 1e-9 {
			t.Errorf("Probe %v: %v (%d) vs %v (%d)", p, ca, na, cb, nb)
		}
	}

	opts.Seed = 2
	c := Build(scene.NewMaterialScene(), opts)
	if c.Stats() == a.Stats() {
		t.Log("Different seeds produced identical statistics")
	}
}

func TestBuild_OpenScene(t *testing.T) {
	// A single mirror sphere in empty space: only photons aimed at it land
	s := scene.New()
	s.AddObject(geometry.NewSphereWithMaterial(core.NewVec3(0, 0, 5), 1, material.NewMetallic(core.NewVec3(1, 1, 1), 0)))
	s.AddLight(lights.NewPoint(core.Vec3{}, core.NewVec3(1, 1, 1)))

	opts := testOptions()
	pm := Build(s, opts)
	stats := pm.Stats()

	// The sphere subtends 1 - cos(asin(1/5)) / 2 of the sphere of directions
	fraction := (1 - math.Sqrt(24)/5) / 2
	expected := fraction * float64(opts.PhotonsPerLight)
	if math.Abs(float64(stats.Direct)-expected) > 0.5*expected+5 {
		t.Errorf("Expected about %.0f direct photons, got %d", expected, stats.Direct)
	}
	// The mirror sends everything back out into empty space
	if stats.Indirect != 0 {
		t.Errorf("Expected no indirect photons, got %d", stats.Indirect)
	}
	// Each direct photon leaves a shadow photon on the back of the sphere
	if stats.Shadow != stats.Direct {
		t.Errorf("Expected one shadow photon per direct photon, got %d and %d", stats.Shadow, stats.Direct)
	}
}

func TestPhotonMap_Nearest(t *testing.T) {
	opts := testOptions()
	opts.K = 2
	opts.Radius = 1
	white := core.NewVec3(1, 1, 1)
	pm := mapFromHits(opts,
		hitAt(core.NewVec3(0.9, 0, 0), white, core.Direct),
		hitAt(core.NewVec3(0.1, 0, 0), white, core.Direct),
		hitAt(core.NewVec3(0, 0.5, 0), white, core.Direct),
		hitAt(core.NewVec3(0.8, 0.8, 0), white, core.Direct), // outside the sphere, inside the box
		hitAt(core.NewVec3(5, 0, 0), white, core.Direct),
	)

	nearest := pm.Nearest(core.Vec3{})
	if len(nearest) != 2 {
		t.Fatalf("Expected K=2 photons, got %d", len(nearest))
	}
	if nearest[0].Position != core.NewVec3(0.1, 0, 0) || nearest[1].Position != core.NewVec3(0, 0.5, 0) {
		t.Errorf("Expected the two closest photons in order, got %v and %v", nearest[0].Position, nearest[1].Position)
	}

	opts.K = 0
	all := mapFromHits(opts,
		hitAt(core.NewVec3(0.9, 0, 0), white, core.Direct),
		hitAt(core.NewVec3(0.8, 0.8, 0), white, core.Direct),
	)
	if got := len(all.Nearest(core.Vec3{})); got != 1 {
		t.Errorf("Expected only photons inside the radius, got %d", got)
	}
}

func TestPhotonMap_Visualise(t *testing.T) {
	pm := mapFromHits(testOptions(),
		hitAt(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.Direct),
		hitAt(core.NewVec3(0.1, 0, 0), core.NewVec3(0, 1, 0), core.Indirect),
		hitAt(core.NewVec3(0, 0.1, 0), core.NewVec3(0, 0, 1), core.Shadow),
	)

	colour, count := pm.Visualise(core.Vec3{})
	if count != 3 {
		t.Errorf("Expected 3 photons, got %d", count)
	}
	if colour.Subtract(core.NewVec3(1, 1, 1).Multiply(1.0/3)).Length() > 1e-12 {
		t.Errorf("Expected the average colour, got %v", colour)
	}

	colour, count = pm.Visualise(core.NewVec3(10, 10, 10))
	if !colour.IsZero() || count != 0 {
		t.Errorf("Expected nothing far away, got %v, %d", colour, count)
	}
}

func TestPhotonMap_EstimateUsesIndirectOnly(t *testing.T) {
	opts := testOptions()
	pm := mapFromHits(opts,
		hitAt(core.NewVec3(0, 0, 0), core.NewVec3(5, 5, 5), core.Direct),
		hitAt(core.NewVec3(0.1, 0, 0), core.NewVec3(0, 2, 0), core.Indirect),
		hitAt(core.NewVec3(0, 0.1, 0), core.NewVec3(0, 1, 0), core.Indirect),
		hitAt(core.NewVec3(0, 0, 0.1), core.NewVec3(5, 5, 5), core.Shadow),
		hitAt(core.NewVec3(3, 0, 0), core.NewVec3(0, 100, 0), core.Indirect),
	)

	got := pm.Estimate(core.Vec3{})
	scale := 1 / (math.Pi * opts.Radius * opts.Radius * float64(opts.PhotonsPerLight))
	expected := core.NewVec3(0, 3*scale, 0)
	if got.Subtract(expected).Length() > 1e-15 {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
