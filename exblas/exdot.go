// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import (
	"runtime"
	"sync"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// ExDot computes the exact sum of pairwise products a[i]*b[i] for i in
// [0, size) and writes the resulting superaccumulator into superacc, which
// must hold at least BinCount words and is overwritten in full. Use Round to
// convert the result to a float64.
//
// Operands are either []float64 slices of length >= size or float64 scalars
// broadcast across all indices. The result is bit-identical for any thread
// count, strategy, or element order. size == 0 yields the zero
// superaccumulator.
func ExDot[A, B ArrayOrScalar](size int, a A, b B, superacc []int64) {
	ExDotFPE(DefaultExpansionSize, size, a, b, superacc)
}

// ExDotFPE is ExDot with an explicit expansion cache size (see
// NewExpansion); nbfpe must be between MinExpansionSize and
// MaxExpansionSize. The cache size changes flush frequency, never the
// result.
func ExDotFPE[A, B ArrayOrScalar](nbfpe, size int, a A, b B, superacc []int64) {
	checkArgs(nbfpe, size, superacc)
	checkOperand("a", size, a)
	checkOperand("b", size, b)
	exDot(nbfpe, threadCount(), size, a, b, superacc)
}

// ExDot3 computes the sum of triple products a[i]*b[i]*c[i] with an
// expansion cache of the default size.
//
// Unlike ExDot, the triple form is not fully exact: the first product is
// rounded once before the second multiplication, and that rounding residual
// is not propagated into the accumulation. The accumulated terms themselves
// are summed exactly, so the result is still reproducible bit-for-bit across
// thread counts and strategies.
func ExDot3[A, B, C ArrayOrScalar](size int, a A, b B, c C, superacc []int64) {
	ExDot3FPE(DefaultExpansionSize, size, a, b, c, superacc)
}

// ExDot3FPE is ExDot3 with an explicit expansion cache size.
func ExDot3FPE[A, B, C ArrayOrScalar](nbfpe, size int, a A, b B, c C, superacc []int64) {
	checkArgs(nbfpe, size, superacc)
	checkOperand("a", size, a)
	checkOperand("b", size, b)
	checkOperand("c", size, c)
	exDot3(nbfpe, threadCount(), size, a, b, c, superacc)
}

// threadCount is the fork-join width of one call: the runtime's thread-pool
// width, not caller-specified.
func threadCount() int {
	return runtime.GOMAXPROCS(0)
}

// exDot runs the fork-join region with an explicit width (tests drive
// specific widths through here). Each worker accumulates its partition into
// its own superaccumulator slice, then joins the tree reduction; thread 0's
// slice ends up holding the merged result.
func exDot[A, B ArrayOrScalar](nbfpe, tnum, n int, a A, b B, superacc []int64) {
	klog.V(2).Infof("exblas: exdot n=%d threads=%d fpe=%d strategy=%s",
		n, tnum, nbfpe, currentStrategy)
	acc := make([]int64, tnum*BinCount)
	ready := make([]readyCounter, tnum)

	var wg sync.WaitGroup
	for tid := 0; tid < tnum; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			slice := acc[tid*BinCount : (tid+1)*BinCount]
			if currentStrategy == StrategyVector {
				cache := NewExpansion(slice, nbfpe)
				lo, hi := alignedPartition(tid, tnum, n)
				for i := lo; i+VecLanes <= hi; i += VecLanes {
					p, r := twoProdFMAVec8d(loadVec8d(a, i), loadVec8d(b, i))
					cache.Accumulate(p)
					cache.Accumulate(r) // residual: keeps the product exact
				}
				if tid == tnum-1 && hi < n {
					p, r := twoProdFMAVec8d(
						loadPartialVec8d(a, hi, n-hi),
						loadPartialVec8d(b, hi, n-hi))
					cache.Accumulate(p)
					cache.Accumulate(r)
				}
				cache.Flush()
			} else {
				cache := NewScalarExpansion(slice, nbfpe)
				lo, hi := scalarPartition(tid, tnum, n)
				for i := lo; i < hi; i++ {
					p, r := TwoProdFMA(elemAt(a, i), elemAt(b, i))
					cache.Accumulate(p)
					cache.Accumulate(r)
				}
				cache.Flush()
			}
			imin, imax := IMin, IMax
			Normalize(slice, &imin, &imax)

			treeReduce(tid, tnum, ready, acc)
		}(tid)
	}
	wg.Wait()

	copy(superacc[:BinCount], acc[:BinCount])
}

// exDot3 is the triple-product region. The first multiplication goes through
// a zero-addend FMA (identical to a plain rounded product on every lane) and
// the second rounds once more; neither residual is accumulated.
func exDot3[A, B, C ArrayOrScalar](nbfpe, tnum, n int, a A, b B, c C, superacc []int64) {
	klog.V(2).Infof("exblas: exdot3 n=%d threads=%d fpe=%d strategy=%s",
		n, tnum, nbfpe, currentStrategy)
	acc := make([]int64, tnum*BinCount)
	ready := make([]readyCounter, tnum)

	var wg sync.WaitGroup
	for tid := 0; tid < tnum; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			slice := acc[tid*BinCount : (tid+1)*BinCount]
			if currentStrategy == StrategyVector {
				cache := NewExpansion(slice, nbfpe)
				lo, hi := alignedPartition(tid, tnum, n)
				for i := lo; i+VecLanes <= hi; i += VecLanes {
					x1 := mulAddVec8d(loadVec8d(a, i), loadVec8d(b, i), Vec8d{})
					x2 := mulAddVec8d(x1, loadVec8d(c, i), Vec8d{})
					cache.Accumulate(x2)
				}
				if tid == tnum-1 && hi < n {
					x1 := mulAddVec8d(
						loadPartialVec8d(a, hi, n-hi),
						loadPartialVec8d(b, hi, n-hi), Vec8d{})
					x2 := mulAddVec8d(x1, loadPartialVec8d(c, hi, n-hi), Vec8d{})
					cache.Accumulate(x2)
				}
				cache.Flush()
			} else {
				cache := NewScalarExpansion(slice, nbfpe)
				lo, hi := scalarPartition(tid, tnum, n)
				for i := lo; i < hi; i++ {
					x1 := elemAt(a, i) * elemAt(b, i)
					x2 := x1 * elemAt(c, i)
					cache.Accumulate(x2)
				}
				cache.Flush()
			}
			imin, imax := IMin, IMax
			Normalize(slice, &imin, &imax)

			treeReduce(tid, tnum, ready, acc)
		}(tid)
	}
	wg.Wait()

	copy(superacc[:BinCount], acc[:BinCount])
}

func checkArgs(nbfpe, size int, superacc []int64) {
	if nbfpe < MinExpansionSize || nbfpe > MaxExpansionSize {
		exceptions.Panicf("exblas: expansion size %d outside [%d, %d]",
			nbfpe, MinExpansionSize, MaxExpansionSize)
	}
	if size < 0 {
		exceptions.Panicf("exblas: negative size %d", size)
	}
	if len(superacc) < BinCount {
		exceptions.Panicf("exblas: output superaccumulator has %d words, need %d",
			len(superacc), BinCount)
	}
}

func checkOperand[P ArrayOrScalar](name string, size int, p P) {
	if s := asSlice(p); s != nil && len(s) < size {
		exceptions.Panicf("exblas: operand %s has %d elements, need %d",
			name, len(s), size)
	}
}
