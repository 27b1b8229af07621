// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import "github.com/gomlx/exceptions"

// The expansion caches below defer superaccumulator deposits: each term is
// folded into a short chain of floating-point limbs by error-free addition,
// and only the residue that falls off the end of the chain (plus the limbs
// themselves at Flush) pays the cost of word-level carry handling. A cache
// is owned by exactly one goroutine for its whole lifetime.

// Expansion is the vectorized accumulation cache: each limb is a Vec8d, so
// eight independent expansions run in lockstep, one per lane.
type Expansion struct {
	acc   []int64
	limbs [MaxExpansionSize]Vec8d
	size  int
}

// NewExpansion returns a cache of the given size (limb count) flushing into
// acc. Size must be between MinExpansionSize and MaxExpansionSize and acc
// must hold at least BinCount words.
func NewExpansion(acc []int64, size int) *Expansion {
	checkExpansion(len(acc), size)
	return &Expansion{acc: acc, size: size}
}

// Accumulate folds one vector term into the expansion. Each limb absorbs
// what it can via two-sum; the loop exits early once the carried residual is
// all zeros, and a residual surviving every limb goes straight to the
// superaccumulator.
func (e *Expansion) Accumulate(x Vec8d) {
	for i := 0; i < e.size; i++ {
		e.limbs[i], x = twoSumVec8d(e.limbs[i], x)
		if i != 0 && !x.anyNonzero() {
			return
		}
	}
	if x.anyNonzero() {
		e.dump(x)
	}
}

// Flush forces every deferred limb into the superaccumulator and clears the
// cache. Must be called before the accumulator is read or merged.
func (e *Expansion) Flush() {
	for i := 0; i < e.size; i++ {
		e.dump(e.limbs[i])
		e.limbs[i] = Vec8d{}
	}
}

func (e *Expansion) dump(x Vec8d) {
	for _, v := range x {
		Accumulate(e.acc, v)
	}
}

// ScalarExpansion is the scalar-strategy accumulation cache: identical
// algorithm, one float64 per limb.
type ScalarExpansion struct {
	acc   []int64
	limbs [MaxExpansionSize]float64
	size  int
}

// NewScalarExpansion returns a scalar cache of the given size flushing into
// acc, under the same constraints as NewExpansion.
func NewScalarExpansion(acc []int64, size int) *ScalarExpansion {
	checkExpansion(len(acc), size)
	return &ScalarExpansion{acc: acc, size: size}
}

// Accumulate folds one term into the expansion.
func (e *ScalarExpansion) Accumulate(x float64) {
	for i := 0; i < e.size; i++ {
		e.limbs[i], x = TwoSum(e.limbs[i], x)
		if i != 0 && x == 0 {
			return
		}
	}
	if x != 0 {
		Accumulate(e.acc, x)
	}
}

// Flush forces every deferred limb into the superaccumulator and clears the
// cache.
func (e *ScalarExpansion) Flush() {
	for i := 0; i < e.size; i++ {
		Accumulate(e.acc, e.limbs[i])
		e.limbs[i] = 0
	}
}

func checkExpansion(accLen, size int) {
	if size < MinExpansionSize || size > MaxExpansionSize {
		exceptions.Panicf("exblas: expansion size %d outside [%d, %d]",
			size, MinExpansionSize, MaxExpansionSize)
	}
	if accLen < BinCount {
		exceptions.Panicf("exblas: superaccumulator has %d words, need %d",
			accLen, BinCount)
	}
}
