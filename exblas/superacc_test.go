// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateSimple(t *testing.T) {
	testCases := []struct {
		name  string
		terms []float64
		want  float64
	}{
		{"zero", nil, 0},
		{"one", []float64{1}, 1},
		{"minus one", []float64{-1}, -1},
		{"sixteen ones", []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 16},
		{"cancellation", []float64{1e16, 1, -1e16}, 1},
		{"tiny cancellation", []float64{1, 1e-30, -1}, 1e-30},
		{"smallest denormal", []float64{math.SmallestNonzeroFloat64}, math.SmallestNonzeroFloat64},
		{"denormal pair", []float64{math.SmallestNonzeroFloat64, math.SmallestNonzeroFloat64}, 2 * math.SmallestNonzeroFloat64},
		{"large", []float64{1e300, 1e300}, 2e300},
		{"fractions", []float64{0.1, 0.2, 0.3}, bigSum([]float64{0.1, 0.2, 0.3})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			acc := make([]int64, BinCount)
			for _, v := range tc.terms {
				Accumulate(acc, v)
			}
			got := Round(acc)
			if got != tc.want {
				t.Errorf("Round = %g, want %g", got, tc.want)
			}
		})
	}
}

func TestAccumulateRandomAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		terms := randVec(rng, 200, 300)
		acc := make([]int64, BinCount)
		for _, v := range terms {
			Accumulate(acc, v)
		}
		require.Equal(t, bigSum(terms), Round(acc), "trial %d", trial)
	}
}

// Many same-sign deposits into one word must spill through the carry-save
// path without losing bits.
func TestAccumulateWordOverflow(t *testing.T) {
	x := math.Ldexp(3, 54) // 1.5 * 2^55, lands high in one word
	const n = 100000       // ~2^72 total, forces repeated carry spills

	acc := make([]int64, BinCount)
	for i := 0; i < n; i++ {
		Accumulate(acc, x)
	}
	want := bigSum(repeat(x, n))
	assert.Equal(t, want, Round(acc))

	// Same in the negative direction.
	acc = make([]int64, BinCount)
	for i := 0; i < n; i++ {
		Accumulate(acc, -x)
	}
	assert.Equal(t, -want, Round(acc))
}

func TestAccumulateLargeMagnitudes(t *testing.T) {
	acc := make([]int64, BinCount)
	for i := 0; i < 1000; i++ {
		Accumulate(acc, 1e300)
	}
	require.Equal(t, bigSum(repeat(1e300, 1000)), Round(acc))
}

func TestAccumulateIgnoresNonFinite(t *testing.T) {
	acc := make([]int64, BinCount)
	Accumulate(acc, 1)
	Accumulate(acc, math.Inf(1))
	Accumulate(acc, math.Inf(-1))
	Accumulate(acc, math.NaN())
	require.Equal(t, 1.0, Round(acc))
}

func TestNormalizeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	acc := make([]int64, BinCount)
	for _, v := range randVec(rng, 100, 100) {
		Accumulate(acc, v)
	}

	once := append([]int64(nil), acc...)
	imin, imax := IMin, IMax
	neg1 := Normalize(once, &imin, &imax)

	twice := append([]int64(nil), once...)
	imin, imax = IMin, IMax
	neg2 := Normalize(twice, &imin, &imax)

	assert.Equal(t, once, twice, "Normalize is not idempotent")
	assert.Equal(t, neg1, neg2)
	assert.Equal(t, BinCount-1, imax)
}

func TestNormalizeReportsSign(t *testing.T) {
	acc := make([]int64, BinCount)
	Accumulate(acc, -2.5)
	imin, imax := IMin, IMax
	require.True(t, Normalize(acc, &imin, &imax))
}

// Merging two normalized superaccumulators by per-word addition and
// rounding the merge must equal the correctly rounded total of all terms.
func TestMergeAdditivity(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 20; trial++ {
		t1 := randVec(rng, 150, 250)
		t2 := randVec(rng, 75, 250)

		acc1 := make([]int64, BinCount)
		for _, v := range t1 {
			Accumulate(acc1, v)
		}
		acc2 := make([]int64, BinCount)
		for _, v := range t2 {
			Accumulate(acc2, v)
		}

		imin, imax := IMin, IMax
		Normalize(acc1, &imin, &imax)
		imin, imax = IMin, IMax
		Normalize(acc2, &imin, &imax)
		for i := range acc1 {
			acc1[i] += acc2[i]
		}

		require.Equal(t, bigSum(append(append([]float64(nil), t1...), t2...)),
			Round(acc1), "trial %d", trial)
	}
}

func repeat(x float64, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = x
	}
	return v
}
