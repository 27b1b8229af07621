// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import "math"

// TwoProdFMA splits a*b into the correctly rounded product p and a residual
// r such that p + r equals a*b exactly. math.FMA guarantees the single
// rounding the transform needs, in hardware where available and in software
// otherwise.
func TwoProdFMA(a, b float64) (p, r float64) {
	p = a * b
	r = math.FMA(a, b, -p)
	return p, r
}

// TwoSum is Knuth's branch-free error-free addition: s is the rounded sum
// and s + r equals a + b exactly, for any ordering of the operands.
func TwoSum(a, b float64) (s, r float64) {
	s = a + b
	z := s - a
	r = (a - (s - z)) + (b - z)
	return s, r
}

// Lane-wise forms over Vec8d, used by the vector accumulation strategy.

func twoProdFMAVec8d(a, b Vec8d) (p, r Vec8d) {
	for i := range a {
		p[i] = a[i] * b[i]
		r[i] = math.FMA(a[i], b[i], -p[i])
	}
	return p, r
}

func twoSumVec8d(a, b Vec8d) (s, r Vec8d) {
	for i := range a {
		s[i] = a[i] + b[i]
		z := s[i] - a[i]
		r[i] = (a[i] - (s[i] - z)) + (b[i] - z)
	}
	return s, r
}
