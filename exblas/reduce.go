// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

// reductionStep waits for the partner owning acc2 to be ready for this
// level, then merges acc2 into acc1. Both operands are normalized first so
// their canonical digits sum without overflowing a word; the sum itself is
// left raw for the next level (or Round) to normalize.
func reductionStep(step int, acc1, acc2 []int64, partner *readyCounter) {
	partner.await(step)
	imin, imax := IMin, IMax
	Normalize(acc1, &imin, &imax)
	imin, imax = IMin, IMax
	Normalize(acc2, &imin, &imax)
	for i := range acc1 {
		acc1[i] += acc2[i]
	}
}

// treeReduce merges the per-thread superaccumulators into thread 0's slice
// along a binary tree fixed by thread-id bits: at level s, threads whose low
// s bits are zero consume partner tid | 1<<(s-1). The shape depends only on
// tid and tnum, never on arrival order, so the accumulation order — and with
// it the result — is deterministic; scheduling affects only how long the
// awaits spin.
//
// Every live thread signals at every level, even threads that were already
// consumed: their counters must keep advancing for partners still waiting on
// deeper levels. A consumed thread's slice is never written again after its
// final signal.
func treeReduce(tid, tnum int, ready []readyCounter, acc []int64) {
	for s := 1; 1<<(s-1) < tnum; s++ {
		ready[tid].signal() // ready for level s
		if tid%(1<<s) == 0 {
			tid2 := tid | 1<<(s-1)
			if tid2 < tnum {
				reductionStep(s,
					acc[tid*BinCount:(tid+1)*BinCount],
					acc[tid2*BinCount:(tid2+1)*BinCount],
					&ready[tid2])
			}
		}
	}
}
