// Copyright 2025 The go-parsort Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the persistent, bounded worker pool that runs
// the parallel sorts. A Pool is created once and reused across many sort
// calls, so no goroutines are spawned per task.
//
// Two scheduling primitives are offered:
//
//   - Fork runs two computations as a fork-join pair and returns only after
//     both have finished.
//   - ParallelFor and ParallelForAtomic run a batch of independent indices
//     and act as a barrier: they return only after every index is done.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.Fork(ctx,
//	    func(ctx context.Context) error { return sortLeft(ctx) },
//	    func(ctx context.Context) error { return sortRight(ctx) },
//	)
//
// Panics inside tasks are recovered and reported as *TaskError.
package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
//
// Close must not be called while operations on the pool are still running.
type Pool struct {
	numWorkers int
	// workC carries barrier batches submitted from outside the pool.
	workC chan workItem
	// forkC is unbuffered: a send only succeeds when a worker is idle.
	forkC     chan workItem
	closeOnce sync.Once
	closed    atomic.Bool
}

// workItem represents a single unit of work handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
		forkC: make(chan workItem),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for {
		select {
		case item, ok := <-p.workC:
			if !ok {
				return
			}
			item.fn()
			item.barrier.Done()
		case item := <-p.forkC:
			item.fn()
			item.barrier.Done()
		}
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe. A closed pool keeps working, running
// every task inline on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Fork runs a and b as a fork-join pair and blocks until both have returned.
//
// b is handed to an idle worker when one is waiting; otherwise it runs
// inline after a. A busy worker is never asked to queue b, so a worker that
// forks and then waits can not be blocked behind unstarted work.
//
// If either side fails, the context passed to the other side is cancelled
// so that it can stop at its next task boundary. The returned error joins
// the failures of both sides.
func (p *Pool) Fork(ctx context.Context, a, b func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var errB error
	var wg sync.WaitGroup
	wg.Add(1)
	item := workItem{
		fn: func() {
			if errB = call(ctx, b); errB != nil {
				cancel()
			}
		},
		barrier: &wg,
	}

	handed := false
	if !p.closed.Load() {
		select {
		case p.forkC <- item:
			handed = true
		default:
		}
	}

	errA := call(ctx, a)
	if errA != nil {
		cancel()
	}

	if handed {
		wg.Wait()
	} else if errA == nil {
		errB = call(ctx, b)
	}

	return joinErrors(ctx, errA, errB)
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
// ParallelFor must be called from outside the pool's own tasks.
func (p *Pool) ParallelFor(ctx context.Context, n int, fn func(ctx context.Context, start, end int) error) error {
	if n <= 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := min(p.numWorkers, n)

	if p.closed.Load() || workers == 1 {
		return callRange(ctx, 0, n, fn)
	}

	// Calculate chunk size (ensure all items are covered)
	chunkSize := (n + workers - 1) / workers

	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			// No work for this worker
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return
				}
				if errs[i] = callRange(ctx, start, end, fn); errs[i] != nil {
					cancel()
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return joinErrors(ctx, errs...)
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This provides better load balancing when work per item varies.
// Blocks until all work completes, so consecutive calls form phases that
// never overlap.
//
// fn receives the index to process. After the first failure no further
// indices are started. ParallelForAtomic must be called from outside the
// pool's own tasks.
func (p *Pool) ParallelForAtomic(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := min(p.numWorkers, n)

	if p.closed.Load() || workers == 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := callIndex(ctx, i, fn); err != nil {
				return err
			}
		}
		return nil
	}

	var nextIdx atomic.Int64
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(nextIdx.Add(1)) - 1
					if idx >= n {
						return
					}
					if err := ctx.Err(); err != nil {
						errs[w] = err
						return
					}
					if err := callIndex(ctx, idx, fn); err != nil {
						errs[w] = err
						cancel()
						return
					}
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return joinErrors(ctx, errs...)
}

// joinErrors combines task errors collected at a join or barrier. While the
// caller's context is still live, any context.Canceled was caused by a
// sibling failing and is dropped in favour of that failure.
func joinErrors(ctx context.Context, errs ...error) error {
	var real []error
	var cancelled error
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			if cancelled == nil {
				cancelled = err
			}
		default:
			real = append(real, err)
		}
	}
	if len(real) > 0 {
		return errors.Join(real...)
	}
	if cancelled != nil {
		if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
			return cause
		}
		return cancelled
	}
	return nil
}
