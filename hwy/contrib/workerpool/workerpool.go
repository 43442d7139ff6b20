// Copyright 2025 The go-convolve Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for the
// parallel kernel variants. A Pool is created once and reused across many
// convolutions, so each call pays for a channel send per worker instead of
// a goroutine spawn.
//
// Work is always split into disjoint index ranges: each output row strip
// or output channel is written by exactly one worker, so kernels need no
// locking.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, layer := range layers {
//	    conv.ParallelConvolve(pool, ...)
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a parallel operation.
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
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
// A nil Pool has one worker: the caller.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times, or on a nil Pool, is safe. Operations on a
// closed pool run sequentially on the caller's goroutine.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// sequential reports whether work must run on the caller's goroutine.
func (p *Pool) sequential() bool {
	return p == nil || p.closed.Load()
}

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker and blocks until all ranges are done.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.NumWorkers(), n)
	if p.sequential() || workers == 1 {
		fn(0, n)
		return
	}

	// Calculate chunk size (ensure all items are covered)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelForAligned is ParallelFor with every range boundary except the
// final end rounded to a multiple of align. Kernels that tile by align rows
// use it so that only the last range sees a partial tile.
func (p *Pool) ParallelForAligned(n, align int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if align <= 1 {
		p.ParallelFor(n, fn)
		return
	}

	blocks := (n + align - 1) / align
	p.ParallelFor(blocks, func(start, end int) {
		fn(start*align, min(end*align, n))
	})
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This balances load when work per item varies, such as output
// channels of uneven cost. Blocks until all work completes.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.NumWorkers(), n)
	if p.sequential() || workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var nextIdx atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(nextIdx.Add(1)) - 1
					if idx >= n {
						return
					}
					fn(idx)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
