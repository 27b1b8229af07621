// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

// ArrayOrScalar constrains a dot product operand: either a slice indexed per
// element, or a single float64 broadcast across all indices. Passing any
// other type is a compile-time error.
type ArrayOrScalar interface {
	float64 | []float64
}

// elemAt returns operand element i; scalars yield the same value for every i.
func elemAt[P ArrayOrScalar](p P, i int) float64 {
	switch v := any(p).(type) {
	case float64:
		return v
	case []float64:
		return v[i]
	}
	return 0
}

// asSlice returns the backing slice of an array operand, or nil for scalars.
func asSlice[P ArrayOrScalar](p P) []float64 {
	if v, ok := any(p).([]float64); ok {
		return v
	}
	return nil
}
