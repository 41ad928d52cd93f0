package aggregation

import (
	"runtime"
	"sync"
)

const defaultWorkerCount = 10

// WorkerPool fans per-vehicle computations out over a fixed number of
// goroutines. Each index is handed to exactly one worker; results are written
// by the caller's fn into index-addressed slots, so no merge step is needed.
type WorkerPool struct {
	workers int
}

// NewWorkerPool creates a pool. workers <= 0 uses GOMAXPROCS, capped at the default.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = minInt(runtime.GOMAXPROCS(0), defaultWorkerCount)
	}
	return &WorkerPool{workers: workers}
}

// Workers returns the configured concurrency.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Map runs fn(i) for every i in [0, n) and blocks until all calls return.
func (p *WorkerPool) Map(n int, fn func(i int)) {
	workerCount := minInt(p.workers, n)
	if workerCount <= 0 {
		return
	}
	if workerCount == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	wg.Wait()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
