package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// DefaultRecurse is the bounce budget of a primary ray
const DefaultRecurse = 5

// Options controls a render
type Options struct {
	Workers int         // Parallel workers; one row band each (0 = NumCPU)
	Recurse int         // Bounce budget per primary ray (0 = DefaultRecurse)
	Seed    int64       // Base seed for the per-band samplers
	Logger  core.Logger // Progress logging; nil is silent
}

// DefaultOptions returns the options used by the command line
func DefaultOptions() Options {
	return Options{
		Workers: runtime.NumCPU(),
		Recurse: DefaultRecurse,
		Seed:    42,
	}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

func (o Options) recurse() int {
	if o.Recurse <= 0 {
		return DefaultRecurse
	}
	return o.Recurse
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// Tracer answers nearest-hit queries
type Tracer interface {
	Trace(ray core.Ray) (core.Hit, bool)
}

// Render traces every pixel of the camera's image through env and writes
// colour and depth into fb
func Render(env core.Environment, camera *Camera, fb *FrameBuffer, opts Options) (RenderStats, error) {
	recurse := opts.recurse()
	shade := func(ray core.Ray, sampler core.Sampler) (core.Vec3, float64) {
		return env.Raytrace(ray, recurse, sampler)
	}
	return renderBands(camera, fb, shade, opts)
}

// VisualisePhotons renders the photon map directly: each primary ray's first
// hit shows the average colour of the photons stored around it
func VisualisePhotons(camera *Camera, scene Tracer, photons core.PhotonEstimator, fb *FrameBuffer, opts Options) (RenderStats, error) {
	shade := func(ray core.Ray, sampler core.Sampler) (core.Vec3, float64) {
		hit, ok := scene.Trace(ray)
		if !ok {
			return core.Vec3{}, 0
		}
		colour, _ := photons.Visualise(hit.Position)
		return colour, hit.T
	}
	return renderBands(camera, fb, shade, opts)
}

// renderBands splits the image into one row band per worker and aggregates
// the pixels the workers send back into fb on the calling goroutine
func renderBands(camera *Camera, fb *FrameBuffer, shade ShadeFunc, opts Options) (RenderStats, error) {
	if fb.Width != camera.Width || fb.Height != camera.Height {
		return RenderStats{}, fmt.Errorf("frame buffer is %dx%d but camera is %dx%d", fb.Width, fb.Height, camera.Width, camera.Height)
	}

	start := time.Now()
	bands := SplitBands(camera.Height, opts.workers())
	opts.logf("Rendering %dx%d with %d bands, %d samples per pixel", camera.Width, camera.Height, len(bands), max(1, camera.Samples))

	pool := NewWorkerPool(NewBandRenderer(camera, shade), len(bands), len(bands))
	pool.Start()
	for i, band := range bands {
		pool.SubmitTask(BandTask{Band: band, TaskID: i, Seed: opts.Seed + int64(i)})
	}
	go pool.Stop()

	stats := RenderStats{Bands: len(bands)}
	total := camera.Width * camera.Height
	nextReport := total / 10
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		fb.PlotPixel(result.X, result.Y, result.Colour)
		fb.PlotDepth(result.X, result.Y, result.Depth)
		stats.TotalPixels++
		stats.TotalSamples += result.Samples

		if nextReport > 0 && stats.TotalPixels >= nextReport && stats.TotalPixels < total {
			opts.logf("  %d%% complete", 100*stats.TotalPixels/total)
			nextReport += total / 10
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	stats.Duration = time.Since(start)
	opts.logf("Rendered %d pixels in %v", stats.TotalPixels, stats.Duration)
	return stats, nil
}
