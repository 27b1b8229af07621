// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

// Package exblas computes exactly-rounded, reproducible dot products of
// float64 arrays.
//
// Naive parallel reductions of floating-point sums are non-associative: the
// result changes with the thread count and with scheduling order. This
// package instead accumulates every product into a superaccumulator, a
// fixed-point, exponent-binned integer representation wide enough to hold
// any sum of float64 terms without rounding. Per-thread superaccumulators
// are merged by exact integer addition, so the final result is bit-identical
// regardless of how the work was partitioned.
//
// Basic usage:
//
//	a := make([]float64, 1<<20)
//	b := make([]float64, 1<<20)
//	// ... fill a and b ...
//
//	superacc := make([]int64, exblas.BinCount)
//	exblas.ExDot(len(a), a, b, superacc)
//	sum := exblas.Round(superacc)
//
// Operands may also be plain float64 scalars, which are broadcast across all
// indices:
//
//	exblas.ExDot(len(a), a, 2.0, superacc) // 2 * sum(a)
//
// The accumulation loop has two interchangeable strategies, selected at init
// time: an 8-lane vectorized path and a per-element scalar path. Both
// produce bit-identical superaccumulators; see CurrentStrategy.
//
// Inputs must be finite. The design follows the ExBLAS exact BLAS library
// (Iakymchuk, Collange et al.); see also Collange, Defour, Graillat,
// Iakymchuk, "Numerical reproducibility for the parallel reduction on
// multi- and many-core architectures", 2015.
package exblas
