// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import (
	"os"

	"k8s.io/klog/v2"
)

// Strategy selects which accumulation loop the engine runs. Both strategies
// feed the same superaccumulators and produce bit-identical results; they
// differ only in stride (8-lane vectors vs. single elements) and therefore
// in speed.
type Strategy int

const (
	// StrategyScalar accumulates one element at a time over an unaligned
	// partition.
	StrategyScalar Strategy = iota

	// StrategyVector accumulates 8-lane Vec8d strides over a lane-aligned
	// partition, with a partial load for the tail.
	StrategyVector
)

func (s Strategy) String() string {
	switch s {
	case StrategyScalar:
		return "scalar"
	case StrategyVector:
		return "vector"
	}
	return "unknown"
}

// currentStrategy is chosen by the per-architecture init (dispatch_*.go).
var currentStrategy Strategy

// NoVectorEnv reports whether the EXBLAS_NO_VECTOR environment variable is
// set, which forces the scalar strategy regardless of CPU features.
func NoVectorEnv() bool {
	return os.Getenv("EXBLAS_NO_VECTOR") != ""
}

// CurrentStrategy returns the accumulation strategy in use.
func CurrentStrategy() Strategy {
	return currentStrategy
}

// SetStrategy overrides the accumulation strategy. Intended for tests and
// benchmarks; not safe to call concurrently with running dot products.
func SetStrategy(s Strategy) {
	currentStrategy = s
	klog.V(2).Infof("exblas: strategy set to %s", s)
}
