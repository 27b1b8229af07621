// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import "math"

// VecLanes is the fixed lane width of the vector accumulation strategy.
// Partitions are aligned to this width; the last thread handles the
// remainder with partial loads.
const VecLanes = 8

// Vec8d is an 8-lane vector of float64. It is a plain value type: lanes are
// independent, and all operations are expressible as short fixed-count loops
// the compiler can unroll.
type Vec8d [VecLanes]float64

// loadVec8d loads a full vector starting at element i. Scalar operands
// broadcast to every lane.
func loadVec8d[P ArrayOrScalar](p P, i int) Vec8d {
	var v Vec8d
	if s := asSlice(p); s != nil {
		copy(v[:], s[i:i+VecLanes])
		return v
	}
	x := elemAt(p, i)
	for l := range v {
		v[l] = x
	}
	return v
}

// loadPartialVec8d loads n (< VecLanes) elements starting at i, zeroing the
// remaining lanes. Scalar operands are broadcast but also cut off at n, so a
// remainder of two scalar operands is not overcounted.
func loadPartialVec8d[P ArrayOrScalar](p P, i, n int) Vec8d {
	var v Vec8d
	if s := asSlice(p); s != nil {
		copy(v[:n], s[i:i+n])
		return v
	}
	x := elemAt(p, i)
	for l := 0; l < n; l++ {
		v[l] = x
	}
	return v
}

// mulAddVec8d returns fma(a, b, c) per lane, rounded once.
func mulAddVec8d(a, b, c Vec8d) Vec8d {
	var v Vec8d
	for i := range v {
		v[i] = math.FMA(a[i], b[i], c[i])
	}
	return v
}

// anyNonzero reports whether any lane is nonzero. Signed zeros count as
// zero, which is exactly what the expansion's early exit wants.
func (v Vec8d) anyNonzero() bool {
	for _, x := range v {
		if x != 0 {
			return true
		}
	}
	return false
}
