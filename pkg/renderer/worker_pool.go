package renderer

import (
	"runtime"
	"sync"
)

// TileTask is one rectangular region of the image to render for one frame
type TileTask struct {
	TaskID     int
	Frame      int // Frame index, seeds the per-pixel samplers
	X0, Y0     int // Inclusive top-left pixel
	X1, Y1     int // Exclusive bottom-right pixel
}

// TileResult reports completion of one tile
type TileResult struct {
	TaskID  int
	Samples int // Paths traced while rendering the tile
	Error   error
}

// WorkerPool runs tile tasks across a fixed set of goroutines. Tiles are
// disjoint, so workers write to the shared accumulator without locks.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	render      func(TileTask) TileResult
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool of numWorkers goroutines (0 means one per
// CPU) that execute tasks with the given render function.
func NewWorkerPool(numWorkers, queueDepth int, render func(TileTask) TileResult) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueDepth < numWorkers {
		queueDepth = numWorkers
	}
	return &WorkerPool{
		taskQueue:   make(chan TileTask, queueDepth),
		resultQueue: make(chan TileResult, queueDepth),
		numWorkers:  numWorkers,
		render:      render,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop drains the task queue and shuts the workers down
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask enqueues one tile task
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult blocks for the next completed tile
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the worker count
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.resultQueue <- wp.render(task)
	}
}
