package photonmap

import (
	"sync"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Tracer is the part of a scene the photon pass needs
type Tracer interface {
	// Trace returns the nearest hit with t >= 0 along ray
	Trace(ray core.Ray) (core.Hit, bool)
	Lights() []core.Light
}

// emitTask asks a worker to emit count photons from one source
type emitTask struct {
	source core.PhotonSource
	count  int
	seed   int64
}

// photonWorker traces the photons of the tasks it receives and forwards
// every recorded hit to the collector
type photonWorker struct {
	id      int
	scene   Tracer
	opts    Options
	tasks   <-chan emitTask
	results chan<- []PhotonHit
}

func (w *photonWorker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.tasks {
		sampler := core.NewSeededSampler(task.seed)
		var batch []PhotonHit
		for i := 0; i < task.count; i++ {
			batch = w.tracePhoton(task.source.GeneratePhoton(sampler), sampler, batch)
		}
		w.results <- batch
	}
}

// tracePhoton follows one emitted photon through the scene. The first hit is
// stored as Direct and every later bounce as Indirect. The emitted ray is
// also continued straight through the first surface to mark Shadow hits.
func (w *photonWorker) tracePhoton(photon core.Photon, sampler core.Sampler, batch []PhotonHit) []PhotonHit {
	hit, ok := w.scene.Trace(photon.Ray)
	if !ok {
		return batch
	}
	batch = append(batch, PhotonHit{Photon: photon, Position: hit.Position})
	batch = w.traceShadows(photon, hit, batch)

	colour := photon.Colour
	for bounce := 0; bounce < w.opts.MaxBounces; bounce++ {
		if hit.Material == nil {
			break
		}
		interaction := hit.Material.Interact(&hit, sampler)
		if !interaction.Continues() {
			break
		}

		colour = colour.MultiplyVec(interaction.Attenuation)
		next := core.Photon{Ray: interaction.Ray, Colour: colour, Type: core.Indirect}
		hit, ok = w.scene.Trace(next.Ray)
		if !ok {
			break
		}
		batch = append(batch, PhotonHit{Photon: next, Position: hit.Position})
	}
	return batch
}

// traceShadows records a Shadow photon on each surface behind first along the
// emitted ray, up to MaxBounces of them
func (w *photonWorker) traceShadows(photon core.Photon, first core.Hit, batch []PhotonHit) []PhotonHit {
	shadow := core.Photon{Colour: photon.Colour, Type: core.Shadow}
	hit := first
	for i := 0; i < w.opts.MaxBounces; i++ {
		shadow.Ray = core.NewOffsetRay(hit.Position, photon.Ray.Direction, core.BounceEpsilon)
		next, ok := w.scene.Trace(shadow.Ray)
		if !ok {
			break
		}
		batch = append(batch, PhotonHit{Photon: shadow, Position: next.Position})
		hit = next
	}
	return batch
}
