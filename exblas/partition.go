// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

// Partitioning of [0, n) across tnum threads. Both planners return half-open
// ranges: thread tid covers [lo, hi), and hi of thread t equals lo of thread
// t+1, so the union is gap-free and overlap-free for every n and tnum.
// Ranges may be empty when n < tnum; an empty range is a valid partition
// that accumulates nothing and still joins the reduction as the identity.

// alignedPartition rounds both bounds down to the vector lane width. The
// tail [hi, n) of the last thread is left to the caller, which covers it
// with a single partial load.
func alignedPartition(tid, tnum, n int) (lo, hi int) {
	lo = (tid * n / tnum) &^ (VecLanes - 1)
	hi = ((tid + 1) * n / tnum) &^ (VecLanes - 1)
	return lo, hi
}

// scalarPartition is the unaligned variant used by the scalar strategy.
func scalarPartition(tid, tnum, n int) (lo, hi int) {
	return tid * n / tnum, (tid + 1) * n / tnum
}
