package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band   Band
	TaskID int   // Band index, for deterministic seeding
	Seed   int64 // Seed for the band's sampler
}

// PixelResult is one finished pixel sent from a worker to the aggregator
type PixelResult struct {
	Colour  core.Vec3
	Depth   float64
	X, Y    int
	Samples int
}

// WorkerPool manages parallel band rendering. Workers only read the scene;
// every finished pixel goes over a single results channel to whoever drains it.
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan PixelResult
	workers     []*Worker
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	renderer    *BandRenderer
	taskQueue   chan BandTask
	resultQueue chan PixelResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(renderer *BandRenderer, numBands, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, numBands),
		resultQueue: make(chan PixelResult, 256*numWorkers),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for the queued bands to finish and closes the result channel.
// Results must be drained concurrently or Stop blocks.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a finished pixel; ok is false once the pool has stopped
// and every result has been read
func (wp *WorkerPool) GetResult() (PixelResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		sampler := core.NewSeededSampler(task.Seed)
		w.renderer.RenderBand(task.Band, sampler, func(result PixelResult) {
			w.resultQueue <- result
		})
	}
}
