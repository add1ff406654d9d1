/*
	bsp package provides the building blocks for bulk synchronous parallel
	computations: a fixed-size worker pool that executes fork-join phases over
	an index range and an executor that drives a sequence of super steps.
*/

package bsp

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when a phase is submitted to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Partition describes the half-open index range [From, To) that a single
// worker processes during a phase.
type Partition struct {
	// Index of the partition in [0, number of partitions).
	Index int
	From  int
	To    int
}

// Len returns the number of indices covered by the partition.
func (p Partition) Len() int { return p.To - p.From }

// PhaseFunc is invoked once for each partition of a phase. Invocations for
// different partitions of the same phase run concurrently.
type PhaseFunc func(p Partition) error

// Pool executes fork-join phases on a fixed set of worker goroutines. A phase
// splits an index range into partitions, hands them to the workers and blocks
// until every partition has been processed.
//
// Phases submitted to the same pool never overlap: Run serializes callers.
type Pool struct {
	mu                sync.Mutex
	closed            bool
	wg                sync.WaitGroup
	workers           int
	partitions        int
	pendingInPhase    int64
	phaseFn           PhaseFunc
	partitionChan     chan Partition
	errChan           chan error
	phaseCompleteChan chan struct{}
}

// NewPool creates a new Pool instance using the provided configuration. It is
// important for callers to invoke Close() on the returned pool when they are
// done using it.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pool config validation failed: %w", err)
	}

	p := &Pool{
		workers:    cfg.Workers,
		partitions: cfg.Partitions,
	}

	p.startWorkers(cfg.Workers)

	return p, nil
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int { return p.workers }

// Partitions returns the maximum number of partitions a phase is split into.
func (p *Pool) Partitions() int { return p.partitions }

// Close stops the workers and waits for them to exit. Close is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true
	close(p.partitionChan)
	p.wg.Wait()

	return nil
}

// Run executes phaseFn over the index range [0, n) and blocks until all
// partitions have been processed. If one or more invocations fail, one of
// the errors is returned.
func (p *Pool) Run(n int, phaseFn PhaseFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	parts := Split(n, p.partitions)
	if len(parts) == 0 {
		return nil
	}

	// Both fields are published to the workers by the channel sends below.
	p.phaseFn = phaseFn
	p.pendingInPhase = int64(len(parts))

	for _, part := range parts {
		p.partitionChan <- part
	}

	// Block until the worker pool has finished processing all partitions.
	<-p.phaseCompleteChan

	var err error

	select {
	case err = <-p.errChan:
	default:
	}

	return err
}

// Split divides [0, n) into at most k contiguous, non-empty partitions whose
// sizes differ by at most one.
func Split(n, k int) []Partition {
	if n <= 0 {
		return nil
	}

	if k <= 0 {
		k = 1
	}

	if k > n {
		k = n
	}

	parts := make([]Partition, k)
	for i := 0; i < k; i++ {
		parts[i] = Partition{
			Index: i,
			From:  i * n / k,
			To:    (i + 1) * n / k,
		}
	}

	return parts
}

// startWorkers spins up numOfWorkers to execute each phase.
func (p *Pool) startWorkers(numOfWorkers int) {
	p.partitionChan = make(chan Partition)
	// The error channel is buffered because Run only reads it after all
	// partitions are done. Workers that find it full drop their error instead
	// of blocking.
	p.errChan = make(chan error, 1)
	p.phaseCompleteChan = make(chan struct{})

	p.wg.Add(numOfWorkers)
	for i := 0; i < numOfWorkers; i++ {
		go p.phaseWorker()
	}
}

// phaseWorker polls the partition channel and executes the current phase
// function on each partition it receives. The worker exits when the
// partition channel is closed.
func (p *Pool) phaseWorker() {
	defer p.wg.Done()

	for part := range p.partitionChan {
		if err := p.phaseFn(part); err != nil {
			tryToEmitErr(p.errChan, fmt.Errorf(
				"partition %d [%d, %d): %w", part.Index, part.From, part.To, err,
			))
		}

		// Only the worker that completes the last partition signals the
		// barrier.
		if atomic.AddInt64(&p.pendingInPhase, -1) == 0 {
			p.phaseCompleteChan <- struct{}{}
		}
	}
}

func tryToEmitErr(errChan chan<- error, err error) {
	select {
	// Try to enqueue an error.
	case errChan <- err:
	// Error channel already contains another error that has not been read yet.
	default:
	}
}
