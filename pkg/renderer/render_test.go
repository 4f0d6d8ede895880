package renderer

import (
	"math"
	"sync"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// countingEnv records how many primary rays reach each pixel of a camera
type countingEnv struct {
	camera *Camera
	mu     sync.Mutex
	calls  map[[2]int]int
	colour core.Vec3
}

func newCountingEnv(camera *Camera) *countingEnv {
	return &countingEnv{camera: camera, calls: make(map[[2]int]int), colour: core.NewVec3(0.25, 0.5, 0.75)}
}

func (e *countingEnv) Raytrace(ray core.Ray, recurse int, sampler core.Sampler) (core.Vec3, float64) {
	// Recover the pixel from where the ray crosses the image plane
	d := ray.Direction.Multiply(e.camera.Config.FOV / ray.Direction.Z)
	x := int(math.Floor((d.X/e.camera.aspect + 0.5) * float64(e.camera.Width)))
	y := int(math.Floor((0.5 - d.Y) * float64(e.camera.Height)))

	e.mu.Lock()
	e.calls[[2]int{x, y}]++
	e.mu.Unlock()
	return e.colour, float64(recurse)
}

func (e *countingEnv) ShadowTrace(ray core.Ray, limit float64) bool { return false }
func (e *countingEnv) Lights() []core.Light                         { return nil }
func (e *countingEnv) PhotonMap() core.PhotonEstimator              { return nil }

func TestSplitBands(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		n        int
		expected int
	}{
		{"even split", 100, 4, 4},
		{"uneven split", 101, 4, 4},
		{"more workers than rows", 3, 8, 3},
		{"single worker", 50, 1, 1},
		{"no workers", 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := SplitBands(tt.height, tt.n)
			if len(bands) != tt.expected {
				t.Fatalf("Expected %d bands, got %d", tt.expected, len(bands))
			}
			if len(bands) == 0 {
				return
			}

			next := 0
			smallest, largest := tt.height, 0
			for _, b := range bands {
				if b.MinY != next {
					t.Errorf("Band %v does not start at row %d", b, next)
				}
				next = b.MaxY
				smallest = min(smallest, b.Rows())
				largest = max(largest, b.Rows())
			}
			if next != tt.height {
				t.Errorf("Bands end at row %d, expected %d", next, tt.height)
			}
			if largest-smallest > 1 {
				t.Errorf("Band sizes differ by %d rows", largest-smallest)
			}
		})
	}
}

func TestRender_EveryPixelOnce(t *testing.T) {
	for _, workers := range []int{1, 3, 8} {
		camera := testCamera(37, 23)
		env := newCountingEnv(camera)
		fb := NewFrameBuffer(37, 23)

		stats, err := Render(env, camera, fb, Options{Workers: workers, Recurse: 4})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if stats.TotalPixels != 37*23 {
			t.Errorf("Workers %d: expected %d pixels, got %d", workers, 37*23, stats.TotalPixels)
		}
		if len(env.calls) != 37*23 {
			t.Errorf("Workers %d: expected %d distinct pixels traced, got %d", workers, 37*23, len(env.calls))
		}
		for pixel, n := range env.calls {
			if n != 1 {
				t.Errorf("Workers %d: pixel %v traced %d times", workers, pixel, n)
			}
		}

		for y := 0; y < fb.Height; y++ {
			for x := 0; x < fb.Width; x++ {
				if fb.Pixel(x, y) != env.colour {
					t.Fatalf("Pixel (%d,%d) not written: %v", x, y, fb.Pixel(x, y))
				}
				if fb.Depth(x, y) != 4 {
					t.Fatalf("Pixel (%d,%d) depth %f, expected the recurse budget 4", x, y, fb.Depth(x, y))
				}
			}
		}
	}
}

func TestRender_MultiSample(t *testing.T) {
	camera := testCamera(8, 8)
	camera.Samples = 4
	env := newCountingEnv(camera)
	fb := NewFrameBuffer(8, 8)

	stats, err := Render(env, camera, fb, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.TotalSamples != 8*8*4 || stats.AverageSamples != 4 {
		t.Errorf("Expected 4 samples per pixel, got %d total (%f average)", stats.TotalSamples, stats.AverageSamples)
	}
	if got := fb.Pixel(3, 3); got.Subtract(env.colour).Length() > 1e-12 {
		t.Errorf("Expected the average of identical samples, got %v", got)
	}
	if fb.Depth(3, 3) != DefaultRecurse {
		t.Errorf("Expected the default budget %d as depth, got %f", DefaultRecurse, fb.Depth(3, 3))
	}
}

func TestRender_SizeMismatch(t *testing.T) {
	camera := testCamera(8, 8)
	if _, err := Render(newCountingEnv(camera), camera, NewFrameBuffer(4, 4), Options{}); err == nil {
		t.Error("Expected an error for a frame buffer of the wrong size")
	}
}

type planeTracer struct{}

// Trace hits the plane z = 2 in front of the camera
func (planeTracer) Trace(ray core.Ray) (core.Hit, bool) {
	if ray.Direction.Z <= 0 {
		return core.Hit{}, false
	}
	t := (2 - ray.Origin.Z) / ray.Direction.Z
	return core.Hit{T: t, Position: ray.At(t)}, true
}

type stubEstimator struct {
	mu       sync.Mutex
	requests int
}

func (s *stubEstimator) Visualise(position core.Vec3) (core.Vec3, int) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
	if position.X < 0 {
		return core.NewVec3(1, 0, 0), 3
	}
	return core.Vec3{}, 0
}

func (s *stubEstimator) Estimate(position core.Vec3) core.Vec3 { return core.Vec3{} }

func TestVisualisePhotons(t *testing.T) {
	camera := testCamera(10, 10)
	fb := NewFrameBuffer(10, 10)
	photons := &stubEstimator{}

	if _, err := VisualisePhotons(camera, planeTracer{}, photons, fb, Options{Workers: 3}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if photons.requests != 100 {
		t.Errorf("Expected one lookup per pixel, got %d", photons.requests)
	}
	if fb.Pixel(0, 5) != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected left pixels to show photons, got %v", fb.Pixel(0, 5))
	}
	if !fb.Pixel(9, 5).IsZero() {
		t.Errorf("Expected right pixels to be empty, got %v", fb.Pixel(9, 5))
	}
	if fb.Depth(5, 5) < 2 {
		t.Errorf("Expected depth of at least 2, got %f", fb.Depth(5, 5))
	}
}
