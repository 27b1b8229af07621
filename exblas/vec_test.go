// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import (
	"math"
	"testing"
)

func TestLoadVec8dSlice(t *testing.T) {
	src := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	v := loadVec8d(src, 2)
	for l := 0; l < VecLanes; l++ {
		if v[l] != float64(l+2) {
			t.Errorf("lane %d = %g, want %d", l, v[l], l+2)
		}
	}
}

func TestLoadVec8dScalarBroadcast(t *testing.T) {
	v := loadVec8d(3.5, 17) // index is irrelevant for scalars
	for l := 0; l < VecLanes; l++ {
		if v[l] != 3.5 {
			t.Errorf("lane %d = %g, want 3.5", l, v[l])
		}
	}
}

func TestLoadPartialVec8dSlice(t *testing.T) {
	src := []float64{10, 20, 30, 40, 50}
	v := loadPartialVec8d(src, 2, 3)
	want := Vec8d{30, 40, 50, 0, 0, 0, 0, 0}
	if v != want {
		t.Errorf("loadPartialVec8d = %v, want %v", v, want)
	}
}

// A partial broadcast must cut off at n lanes, otherwise a scalar-scalar
// remainder would be counted VecLanes times instead of n.
func TestLoadPartialVec8dScalarCutoff(t *testing.T) {
	v := loadPartialVec8d(2.0, 0, 3)
	want := Vec8d{2, 2, 2, 0, 0, 0, 0, 0}
	if v != want {
		t.Errorf("loadPartialVec8d(scalar) = %v, want %v", v, want)
	}
}

func TestMulAddVec8d(t *testing.T) {
	a := Vec8d{1, 2, 3, 4, 5, 6, 7, 8}
	b := Vec8d{2, 2, 2, 2, 2, 2, 2, 2}
	c := Vec8d{1, 1, 1, 1, 1, 1, 1, 1}
	v := mulAddVec8d(a, b, c)
	for l := range v {
		want := math.FMA(a[l], b[l], c[l])
		if v[l] != want {
			t.Errorf("lane %d = %g, want %g", l, v[l], want)
		}
	}
}

func TestAnyNonzero(t *testing.T) {
	var v Vec8d
	if v.anyNonzero() {
		t.Error("zero vector reported nonzero")
	}
	v[7] = math.SmallestNonzeroFloat64
	if !v.anyNonzero() {
		t.Error("nonzero lane not detected")
	}
	// Signed zero counts as zero.
	v[7] = math.Copysign(0, -1)
	if v.anyNonzero() {
		t.Error("-0 reported nonzero")
	}
}
