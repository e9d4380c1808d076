package workers

import (
	"context"
	"sync"
)

// Workers runs a fixed set of workers, each in its own goroutine.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker and returns immediately. Workers stop when ctx is
// cancelled; use Wait to block until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(ctx)
		}(worker)
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
