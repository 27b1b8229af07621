// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

//go:build !amd64 && !arm64

package exblas

func init() {
	// Architectures without a known fast FMA default to the scalar loop.
	// Results are identical either way; SetStrategy can override.
	currentStrategy = StrategyScalar
}
