// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import (
	"math"
	"math/big"
	"math/rand"
	"testing"
)

// oraclePrec is wide enough to hold any sum of float64 products exactly
// (product exponents span about 4200 bits).
const oraclePrec = 8192

// bigSum returns the float64 nearest to the exact sum of terms.
func bigSum(terms []float64) float64 {
	sum := new(big.Float).SetPrec(oraclePrec)
	tmp := new(big.Float).SetPrec(oraclePrec)
	for _, v := range terms {
		sum.Add(sum, tmp.SetFloat64(v))
	}
	f, _ := sum.Float64()
	return f
}

// bigDot returns the float64 nearest to the exact sum of pairwise products.
func bigDot(a, b []float64) float64 {
	sum := new(big.Float).SetPrec(oraclePrec)
	x := new(big.Float).SetPrec(oraclePrec)
	y := new(big.Float).SetPrec(oraclePrec)
	for i := range a {
		x.SetFloat64(a[i])
		y.SetFloat64(b[i])
		sum.Add(sum, x.Mul(x, y))
	}
	f, _ := sum.Float64()
	return f
}

// canonical returns a normalized copy of the first BinCount words of acc.
// Normalized digits are unique per exact value, so canonical forms compare
// bit-for-bit.
func canonical(acc []int64) []int64 {
	out := append([]int64(nil), acc[:BinCount]...)
	imin, imax := IMin, IMax
	Normalize(out, &imin, &imax)
	return out
}

func withStrategy(t *testing.T, s Strategy) {
	t.Helper()
	old := CurrentStrategy()
	SetStrategy(s)
	t.Cleanup(func() { SetStrategy(old) })
}

var allStrategies = []Strategy{StrategyScalar, StrategyVector}

// randVec fills a vector with signed values whose exponents spread over
// [-scale, scale), enough dynamic range that naive summation drifts but
// products stay far from the denormal floor.
func randVec(rng *rand.Rand, n, scale int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = (rng.Float64()*2 - 1) * math.Ldexp(1, rng.Intn(2*scale)-scale)
	}
	return v
}
