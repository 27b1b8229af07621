// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import "testing"

// The union of all threads' ranges must cover [0, n) with no gaps and no
// overlaps, for every n and tnum.
func TestScalarPartitionCoverage(t *testing.T) {
	for tnum := 1; tnum <= 12; tnum++ {
		for n := 0; n <= 200; n++ {
			next := 0
			for tid := 0; tid < tnum; tid++ {
				lo, hi := scalarPartition(tid, tnum, n)
				if lo != next {
					t.Fatalf("n=%d tnum=%d tid=%d: lo=%d, want %d", n, tnum, tid, lo, next)
				}
				if hi < lo {
					t.Fatalf("n=%d tnum=%d tid=%d: hi=%d < lo=%d", n, tnum, tid, hi, lo)
				}
				next = hi
			}
			if next != n {
				t.Fatalf("n=%d tnum=%d: covered %d", n, tnum, next)
			}
		}
	}
}

func TestAlignedPartitionCoverage(t *testing.T) {
	for tnum := 1; tnum <= 12; tnum++ {
		for n := 0; n <= 200; n++ {
			next := 0
			var lastHi int
			for tid := 0; tid < tnum; tid++ {
				lo, hi := alignedPartition(tid, tnum, n)
				if lo%VecLanes != 0 || hi%VecLanes != 0 {
					t.Fatalf("n=%d tnum=%d tid=%d: unaligned [%d, %d)", n, tnum, tid, lo, hi)
				}
				if lo != next {
					t.Fatalf("n=%d tnum=%d tid=%d: lo=%d, want %d", n, tnum, tid, lo, next)
				}
				if hi < lo {
					t.Fatalf("n=%d tnum=%d tid=%d: hi=%d < lo=%d", n, tnum, tid, hi, lo)
				}
				next = hi
				lastHi = hi
			}
			// The last thread's tail [hi, n) absorbs the remainder.
			if lastHi != n&^(VecLanes-1) {
				t.Fatalf("n=%d tnum=%d: aligned coverage ends at %d, want %d",
					n, tnum, lastHi, n&^(VecLanes-1))
			}
			if tail := n - lastHi; tail < 0 || tail >= VecLanes {
				t.Fatalf("n=%d tnum=%d: tail %d out of range", n, tnum, tail)
			}
		}
	}
}

// Empty ranges are legitimate: when n < tnum some threads must receive
// nothing and still participate in the reduction.
func TestPartitionEmptyRanges(t *testing.T) {
	lo, hi := alignedPartition(0, 8, 3)
	if lo != 0 || hi != 0 {
		t.Errorf("alignedPartition(0, 8, 3) = [%d, %d), want empty", lo, hi)
	}
	lo, hi = scalarPartition(0, 8, 3)
	if lo != 0 || hi != 0 {
		t.Errorf("scalarPartition(0, 8, 3) = [%d, %d), want empty", lo, hi)
	}
}
