// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import (
	"github.com/gomlx/exceptions"

	"github.com/ajroetker/go-exblas/workerpool"
)

// ExDotBatch computes the exact dot product of each pair (as[i], bs[i]) into
// out[i], distributing pairs across the pool's workers. Each pair uses the
// shorter of its two slices as its size, and each out[i] must hold at least
// BinCount words.
//
// Within a pair the accumulation is single-threaded: pool workers own whole
// pairs, so no nested fork-join occurs. A nil pool computes the batch
// sequentially.
func ExDotBatch(pool *workerpool.Pool, as, bs [][]float64, out [][]int64) {
	n := min(len(as), len(bs))
	if len(out) < n {
		exceptions.Panicf("exblas: batch output has %d superaccumulators, need %d",
			len(out), n)
	}
	for i := 0; i < n; i++ {
		if len(out[i]) < BinCount {
			exceptions.Panicf("exblas: batch output %d has %d words, need %d",
				i, len(out[i]), BinCount)
		}
	}

	one := func(i int) {
		size := min(len(as[i]), len(bs[i]))
		exDot(DefaultExpansionSize, 1, size, as[i], bs[i], out[i])
	}
	if pool == nil {
		for i := 0; i < n; i++ {
			one(i)
		}
		return
	}
	pool.ParallelForAtomic(n, one)
}
