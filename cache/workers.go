package cache

import (
	"sync"
)

// workerPool runs producers for background refreshes on a fixed number
// of goroutines, so a slow producer occupies one worker slot and
// nothing else. Request goroutines never run through here; their
// synchronous computes happen on their own stack in Resolve.
type workerPool struct {
	workers int
	jobs    chan scheduleRecord
	wg      sync.WaitGroup
}

func newWorkerPool(workers int) *workerPool {
	return &workerPool{
		workers: workers,
		jobs:    make(chan scheduleRecord, workers*2),
	}
}

func (p *workerPool) start(svc *Service) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for rec := range p.jobs {
				svc.refresh(rec)
			}
		}()
	}
}

// submit queues one refresh. Blocks when every worker is busy and the
// queue is full; submissions wait, they are not dropped.
func (p *workerPool) submit(rec scheduleRecord) {
	p.jobs <- rec
}

func (p *workerPool) stop() {
	close(p.jobs)
	p.wg.Wait()
}
