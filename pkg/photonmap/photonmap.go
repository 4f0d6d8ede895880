package photonmap

import (
	"math"
	"sort"
	"sync"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/dhconnelly/rtreego"
)

// R-tree branching used for the bulk load
const (
	minChildren = 25
	maxChildren = 50
)

// Stats summarises a build
type Stats struct {
	Emitted  int // Photons generated across all sources
	Direct   int
	Indirect int
	Shadow   int
}

// Stored returns the number of photon hits in the map
func (s Stats) Stored() int {
	return s.Direct + s.Indirect + s.Shadow
}

// PhotonMap is an immutable spatial index of recorded photon hits
type PhotonMap struct {
	tree            *rtreego.Rtree
	k               int
	radius          float64
	photonsPerLight int
	stats           Stats
}

// Build emits PhotonsPerLight photons from every light that is a photon
// source, traces them through the scene on Workers goroutines and indexes
// every recorded hit. Lights that cannot emit photons are skipped.
func Build(scene Tracer, opts Options) *PhotonMap {
	numWorkers := opts.workers()

	var sources []core.PhotonSource
	for i, light := range scene.Lights() {
		source, ok := light.(core.PhotonSource)
		if !ok {
			opts.logf("photon map: light %d (%T) cannot emit photons, skipping", i, light)
			continue
		}
		sources = append(sources, source)
	}

	// Split each source's photons into one task per worker
	var tasks []emitTask
	for li, source := range sources {
		for w := 0; w < numWorkers; w++ {
			count := opts.PhotonsPerLight / numWorkers
			if w < opts.PhotonsPerLight%numWorkers {
				count++
			}
			if count == 0 {
				continue
			}
			tasks = append(tasks, emitTask{
				source: source,
				count:  count,
				seed:   opts.Seed + int64(li*numWorkers+w),
			})
		}
	}

	taskQueue := make(chan emitTask, len(tasks))
	resultQueue := make(chan []PhotonHit, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		worker := &photonWorker{id: i, scene: scene, opts: opts, tasks: taskQueue, results: resultQueue}
		wg.Add(1)
		go worker.run(&wg)
	}
	for _, task := range tasks {
		taskQueue <- task
	}
	close(taskQueue)

	go func() {
		wg.Wait()
		close(resultQueue)
	}()

	// Single collector
	stats := Stats{Emitted: len(sources) * opts.PhotonsPerLight}
	var objs []rtreego.Spatial
	for batch := range resultQueue {
		for i := range batch {
			switch batch[i].Photon.Type {
			case core.Direct:
				stats.Direct++
			case core.Indirect:
				stats.Indirect++
			case core.Shadow:
				stats.Shadow++
			}
			objs = append(objs, &batch[i])
		}
	}

	opts.logf("photon map: %d photons from %d sources, %d stored (%d direct, %d indirect, %d shadow)",
		stats.Emitted, len(sources), stats.Stored(), stats.Direct, stats.Indirect, stats.Shadow)

	return newPhotonMap(objs, stats, opts)
}

// newPhotonMap bulk loads the index once; it is never modified afterwards
func newPhotonMap(objs []rtreego.Spatial, stats Stats, opts Options) *PhotonMap {
	return &PhotonMap{
		tree:            rtreego.NewTree(3, minChildren, maxChildren, objs...),
		k:               opts.K,
		radius:          opts.Radius,
		photonsPerLight: opts.PhotonsPerLight,
		stats:           stats,
	}
}

// Len returns the number of stored photon hits
func (pm *PhotonMap) Len() int {
	return pm.tree.Size()
}

// Stats returns the build summary
func (pm *PhotonMap) Stats() Stats {
	return pm.stats
}

// Nearest returns up to K photon hits within Radius of position, closest first
func (pm *PhotonMap) Nearest(position core.Vec3) []*PhotonHit {
	if pm.tree.Size() == 0 {
		return nil
	}

	corner := position.Subtract(core.NewVec3(pm.radius, pm.radius, pm.radius))
	side := 2 * pm.radius
	box, err := rtreego.NewRect(point(corner), []float64{side, side, side})
	if err != nil {
		return nil
	}

	type candidate struct {
		hit      *PhotonHit
		distance float64
	}
	var found []candidate
	radiusSquared := pm.radius * pm.radius
	for _, s := range pm.tree.SearchIntersect(box) {
		hit := s.(*PhotonHit)
		d := hit.Position.Subtract(position).LengthSquared()
		if d <= radiusSquared {
			found = append(found, candidate{hit: hit, distance: d})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distance < found[j].distance
	})
	if pm.k > 0 && len(found) > pm.k {
		found = found[:pm.k]
	}

	hits := make([]*PhotonHit, len(found))
	for i, c := range found {
		hits[i] = c.hit
	}
	return hits
}

// Visualise returns the average colour and the count of the photons near
// position. With no photons nearby it returns black and zero.
func (pm *PhotonMap) Visualise(position core.Vec3) (core.Vec3, int) {
	nearest := pm.Nearest(position)
	if len(nearest) == 0 {
		return core.Vec3{}, 0
	}

	var colour core.Vec3
	for _, hit := range nearest {
		colour = colour.Add(hit.Photon.Colour)
	}
	return colour.Multiply(1 / float64(len(nearest))), len(nearest)
}

// Estimate returns the indirect irradiance at position: the power of the
// Indirect photons in the gather disc divided by its area and by the number
// of photons each light emitted
func (pm *PhotonMap) Estimate(position core.Vec3) core.Vec3 {
	if pm.photonsPerLight <= 0 {
		return core.Vec3{}
	}

	var flux core.Vec3
	for _, hit := range pm.Nearest(position) {
		if hit.Photon.Type == core.Indirect {
			flux = flux.Add(hit.Photon.Colour)
		}
	}
	area := math.Pi * pm.radius * pm.radius
	return flux.Multiply(1 / (area * float64(pm.photonsPerLight)))
}
