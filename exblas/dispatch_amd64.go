// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package exblas

import (
	"golang.org/x/sys/cpu"

	"k8s.io/klog/v2"
)

func init() {
	if NoVectorEnv() {
		currentStrategy = StrategyScalar
		return
	}
	// The vector strategy leans on fused multiply-add in its inner loop;
	// without hardware FMA the softfloat fallback makes it slower than the
	// scalar loop, not just equal.
	if cpu.X86.HasFMA && cpu.X86.HasAVX2 {
		currentStrategy = StrategyVector
	} else {
		currentStrategy = StrategyScalar
	}
	klog.V(2).Infof("exblas: dispatch %s (FMA=%v AVX2=%v)",
		currentStrategy, cpu.X86.HasFMA, cpu.X86.HasAVX2)
}
