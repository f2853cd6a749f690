// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a fixed-size, persistent worker pool for the
// data-parallel loops of the benchmark kernels.
//
// A Pool is sized once from the benchmark's thread count and reused across
// every trial, so per-trial timings measure the kernel and not goroutine
// start-up. Work is distributed by static partitioning: each worker gets one
// contiguous range, and ParallelFor returns only after every range finished.
//
// Usage:
//
//	pool := workerpool.New(threads)
//	defer pool.Close()
//
//	for range reps {
//	    pool.ParallelFor(numRowTiles, func(start, end int) {
//	        processRowTiles(start, end)
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and live until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a parallel region.
type workItem struct {
	start, end int
	fn         func(start, end int)
	barrier    *sync.WaitGroup
}

// New creates a pool with numWorkers workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn(item.start, item.end)
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
// A nil pool has one (inline) worker.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Close shuts down the pool. Calling Close multiple times is safe.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Ranges returns the static partition ParallelFor uses for n items over
// workers: contiguous, in order, sizes differing by at most one chunk.
func Ranges(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	workers = max(1, min(workers, n))
	chunk := (n + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for start := 0; start < n; start += chunk {
		out = append(out, [2]int{start, min(start+chunk, n)})
	}
	return out
}

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker and blocks until all ranges complete.
//
// fn receives (start, end) and must process [start, end). A nil or closed
// pool, or a single range, runs fn inline on the caller's goroutine.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p == nil || p.closed.Load() {
		fn(0, n)
		return
	}

	ranges := Ranges(n, p.numWorkers)
	if len(ranges) == 1 {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for _, r := range ranges {
		p.workC <- workItem{start: r[0], end: r[1], fn: fn, barrier: &wg}
	}
	wg.Wait()
}

// ParallelForBlocks partitions [0, n) into blocks of blockSize elements and
// hands each worker a contiguous run of whole blocks. fn receives element
// bounds, so every range except possibly the last starts and ends on a
// block boundary.
func (p *Pool) ParallelForBlocks(n, blockSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if blockSize <= 0 {
		blockSize = n
	}
	numBlocks := (n + blockSize - 1) / blockSize
	p.ParallelFor(numBlocks, func(b0, b1 int) {
		fn(b0*blockSize, min(b1*blockSize, n))
	})
}
