package worker

import (
	"sync"

	"github.com/baharkarakas/ong-backend/internal/metrics"
)

type task func()

// Pool runs tasks on a fixed number of goroutines fed by a bounded queue.
// Submit blocks once the queue is full.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

const defaultQueue = 1024

func NewPool(n int) *Pool {
	return NewPoolWithQueue(n, defaultQueue)
}

func NewPoolWithQueue(n, queue int) *Pool {
	if n <= 0 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, queue)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	p.jobs <- f
	metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
}

// Do runs f on the pool and waits for it to finish.
func (p *Pool) Do(f func()) {
	done := make(chan struct{})
	p.Submit(func() {
		defer close(done)
		f()
	})
	<-done
}

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
