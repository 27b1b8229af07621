// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

import "math"

// Round converts a superaccumulator into the correctly rounded float64 value
// of the sum it represents. acc is normalized in place as a side effect.
//
// The leading non-trivial word supplies the top 53 bits; the word below it
// plus a sticky OR of everything further down decide the final rounding via
// Boldo/Melquiond odd-rounded addition, so only the last addition rounds.
func Round(acc []int64) float64 {
	imin, imax := IMin, IMax
	negative := Normalize(acc, &imin, &imax)

	// Find the leading word: skip zero digits, and for negative values also
	// the all-ones digits of the complement representation.
	i := imax
	for i >= imin && acc[i] == 0 {
		i--
	}
	if negative {
		for i >= imin && acc[i]&((1<<digits)-1) == (1<<digits)-1 {
			i--
		}
	}
	if i < 0 {
		return 0.0
	}

	hiword := acc[i]
	if negative {
		hiword = ((1 << digits) - 1) - acc[i]
	}
	rounded := float64(hiword) // rounds to nearest even when hiword needs >53 bits
	hi := math.Ldexp(rounded, (i-fWords)*digits)
	if i == 0 {
		// Lowest word: the single conversion above already rounded correctly.
		if negative {
			return -hi
		}
		return hi
	}
	hiword -= int64(rounded)
	mid := math.Ldexp(float64(hiword), (i-fWords)*digits)

	// sticky is nonzero iff any word below the low word carries bits. For
	// negative values the digits are the base-2^digits complement of the
	// magnitude, so all-zero words below mean the two's-complement borrow is
	// absorbed in the low word itself.
	var sticky int64
	for j := imin; j < i-1; j++ {
		sticky |= acc[j]
	}

	loword := acc[i-1]
	switch {
	case negative && sticky == 0:
		// Borrow absorbed: the magnitude's low digit is exact, one unit
		// above the bitwise complement. Keeping it exact lets the final
		// addition resolve ties to even on its own.
		loword = (1 << digits) - acc[i-1]
	case negative:
		loword = (((1 << digits) - 1) - acc[i-1]) | 1
	case sticky != 0:
		loword |= 1
	}
	lo := math.Ldexp(float64(loword), (i-1-fWords)*digits)

	// hi, mid and lo do not overlap after normalization; fold mid into lo
	// with odd rounding so the final addition is the only rounding step. An
	// odd bit on an exact residual would push ties off center, so it is
	// applied only when mid actually carries bits.
	if mid != 0 {
		lo = oddRoundSum(mid, lo)
	}
	hi += lo
	if negative {
		return -hi
	}
	return hi
}

// oddRoundSum adds th and tl, forcing the mantissa's last bit to 1 whenever
// tl contributed anything. Odd rounding commutes with a later round to
// nearest, which is what makes the two-step rounding in Round exact.
func oddRoundSum(th, tl float64) float64 {
	sum := th + tl
	if tl != 0 {
		return math.Float64frombits(math.Float64bits(sum) | 1)
	}
	return sum
}
