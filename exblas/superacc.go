// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import "math"

// exponent extracts the raw biased exponent of x. Denormals all report
// -1023, which is fine: Accumulate only uses it to pick a starting word, and
// two extra low words exist below the smallest normal exponent.
func exponent(x float64) int {
	return int((math.Float64bits(x)>>52)&0x7ff) - 1023
}

// xadd adds x into *p and reports signed 64-bit overflow.
// Returns the previous value of *p.
func xadd(p *int64, x int64) (old int64, overflow bool) {
	old = *p
	*p = old + x
	overflow = (x > 0 && old > math.MaxInt64-x) ||
		(x < 0 && old < math.MinInt64-x)
	return old, overflow
}

// accumulateWord adds x into word i, spilling carry-save overflow into
// higher words. The invariant to preserve: never lose an overflow bit. On
// overflow the true sum's high part moves up as a carry, the bits it left
// behind are cancelled in place, and a compensating carry-save bit keeps the
// word's value consistent with the wrap.
func accumulateWord(acc []int64, i int, x int64) {
	carry := x
	old, overflow := xadd(&acc[i], x)
	for overflow {
		carry = (old + carry) >> digits // arithmetic shift
		var carrybit int64
		if old > 0 {
			carrybit = 1 << krx
		} else {
			carrybit = -1 << krx
		}
		// Cancel the bits that moved into carry.
		xadd(&acc[i], -(carry << digits))
		carry += carrybit
		i++
		if i >= BinCount {
			return // overflowed past the top of the accumulator
		}
		old, overflow = xadd(&acc[i], carry)
	}
}

// Accumulate deposits one floating-point term exactly into acc. The term is
// split into at most three base-2^digits words, each rounded to nearest-even
// so remainders stay within half a unit of the next word down.
//
// Non-finite terms are ignored; callers must feed finite values. acc must be
// owned by the calling goroutine.
func Accumulate(acc []int64, x float64) {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return
	}
	expWord := exponent(x) / digits
	xscaled := math.Ldexp(x, -digits*expWord)
	for i := expWord + fWords; xscaled != 0; i-- {
		xrounded := math.RoundToEven(xscaled)
		accumulateWord(acc, i, int64(xrounded))
		xscaled -= xrounded
		xscaled *= deltaScale
	}
}

// Normalize propagates carries upward so every word except the top holds a
// canonical digit in [0, 2^digits); the top word keeps the residual carry so
// no information is lost. *imin is the first word to process (IMin for a full
// pass) and *imax is set to the last word touched. Reports whether the
// accumulated value is negative.
//
// Normalize is idempotent, and is safe to call on the per-word sum of two
// normalized accumulators: canonical digits sum to at most 2^(digits+1),
// well inside an int64.
func Normalize(acc []int64, imin, imax *int) bool {
	carry := acc[*imin] >> digits
	acc[*imin] -= carry << digits
	var i int
	for i = *imin + 1; i < BinCount; i++ {
		acc[i] += carry
		carryOut := acc[i] >> digits // arithmetic shift
		acc[i] -= carryOut << digits
		carry = carryOut
	}
	*imax = i - 1

	// Keep the last carry instead of cancelling it.
	acc[*imax] += carry << digits

	return carry < 0
}
