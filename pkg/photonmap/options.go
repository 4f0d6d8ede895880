package photonmap

import (
	"runtime"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Options controls how many photons are traced and how queries gather them
type Options struct {
	PhotonsPerLight int         // Photons emitted by each photon source
	MaxBounces      int         // Interactions followed after the first hit
	K               int         // Maximum photons gathered per query
	Radius          float64     // Gather radius
	Workers         int         // Goroutines tracing photons (0 = NumCPU)
	Seed            int64       // Base seed; worker samplers derive from it
	Logger          core.Logger // Optional progress logger
}

// DefaultOptions returns the settings used for a full photon pass
func DefaultOptions() Options {
	return Options{
		PhotonsPerLight: 50000,
		MaxBounces:      5,
		K:               1000,
		Radius:          0.5,
		Workers:         runtime.NumCPU(),
		Seed:            42,
	}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}
