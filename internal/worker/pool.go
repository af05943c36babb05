// Package worker fans headline parsing out across goroutines. The parser is a
// pure function over read-only tables, so workers share one Parser with zero
// coordination and batch throughput scales with cores.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool executes jobs concurrently across a fixed number of workers. A
// collector goroutine drains worker output for the whole lifetime of the pool,
// so Submit can never wedge behind a full results buffer: callers may queue an
// arbitrary number of jobs before calling Wait.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	collected []Result
	mu        sync.Mutex
	wg        sync.WaitGroup
	drainWG   sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers and the result collector.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	p.drainWG.Add(1)
	go p.drain()
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// drain moves results out of the channel as workers produce them. It runs
// until the results channel closes, which only happens after every worker has
// exited, so no result is ever dropped.
func (p *Pool) drain() {
	defer p.drainWG.Done()
	for r := range p.results {
		p.mu.Lock()
		p.collected = append(p.collected, r)
		p.mu.Unlock()
	}
}

// Submit queues a job; it is dropped if the pool has been shut down. Submit
// may block briefly when every worker is busy and the queue is full, but
// always makes progress while the pool is running.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes submission, drains the workers, and returns every collected
// result. Results arrive in completion order, not submission order.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	p.drainWG.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collected
}

// Shutdown cancels outstanding work immediately.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	p.drainWG.Wait()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
