// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for running many
// independent work items in parallel. A Pool is created once and reused
// across calls, avoiding per-call goroutine spawn overhead — which matters
// when batching thousands of small exact dot products.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelForAtomic(len(pairs), func(i int) {
//	    process(pairs[i])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused until Close.
type Pool struct {
	numWorkers int
	taskC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

// task is one unit of submitted work.
type task struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the specified number of workers, spawned
// immediately. If numWorkers <= 0, GOMAXPROCS is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		taskC:      make(chan task, numWorkers*2),
	}
	for w := 0; w < numWorkers; w++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for t := range p.taskC {
		t.fn()
		t.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts the pool down; pending work still completes. Safe to call more
// than once. Work submitted after Close runs sequentially on the caller.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.taskC)
	})
}

// ParallelForAtomic executes fn for each index in [0, n), handing out
// indexes through a shared atomic counter so the load balances itself when
// the cost per item varies (dot products of different lengths, say). Blocks
// until all items complete.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		p.taskC <- task{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
