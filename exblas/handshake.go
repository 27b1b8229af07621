// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import (
	"runtime"
	"sync/atomic"
)

const cacheLineSize = 64

// readyCounter is the per-thread rendezvous slot of the reduction tree. The
// owning thread increments it once per level ("ready for level s") without
// waiting on anyone; at most one other thread per level spins on it before
// reading the owner's superaccumulator. Padding keeps neighbouring counters
// on separate cache lines so the spin never bounces an unrelated thread's
// line.
//
// Counters start at zero from slice allocation, which happens-before the
// worker launches; no initialization store is needed. The Add/Load pair
// below is the only synchronization edge between partner threads.
type readyCounter struct {
	level atomic.Int32
	_     [cacheLineSize - 4]byte
}

// signal marks the owner ready for the next level. The atomic increment
// publishes (release) all superaccumulator writes that precede it.
func (r *readyCounter) signal() {
	r.level.Add(1)
}

// await spins until the owner has signalled level s, yielding to the
// scheduler between polls so the spin stays live even with more workers than
// cores. The load acquires the owner's preceding writes.
func (r *readyCounter) await(s int) {
	for r.level.Load() < int32(s) {
		runtime.Gosched()
	}
}
