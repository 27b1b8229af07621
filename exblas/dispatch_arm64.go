// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package exblas

import "k8s.io/klog/v2"

func init() {
	// NEON with FMA is baseline on arm64.
	if NoVectorEnv() {
		currentStrategy = StrategyScalar
		return
	}
	currentStrategy = StrategyVector
	klog.V(2).Infof("exblas: dispatch %s", currentStrategy)
}
