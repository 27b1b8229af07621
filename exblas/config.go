// Copyright 2025 The go-exblas Authors. SPDX-License-Identifier: Apache-2.0

package exblas

// Superaccumulator layout. Each of the BinCount words holds one base-2^digits
// digit of the running sum plus krx carry-save bits of headroom, so up to
// 2^krx deposits can land in a word before carry propagation is forced.
const (
	krx    = 8          // high-radix carry-save bits per word
	digits = 64 - krx   // significant bits per word
	fWords = 20         // words at or below the unit exponent
	eWords = 19         // words above the unit exponent

	// deltaScale shifts a remainder into the next lower word.
	deltaScale = float64(1 << digits)

	// BinCount is the number of 64-bit words in a superaccumulator. Output
	// buffers passed to ExDot and friends must hold at least this many.
	BinCount = fWords + eWords

	// IMin and IMax are the first and last word indexes, the initial values
	// for the in/out bounds of Normalize.
	IMin = 0
	IMax = BinCount - 1
)

// Expansion cache sizing (see NewExpansion). The reference design bounds the
// floating-point expansion to between 3 and 8 limbs; fewer limbs flush to the
// superaccumulator more often, more limbs waste cache space.
const (
	MinExpansionSize     = 3
	MaxExpansionSize     = 8
	DefaultExpansionSize = 8
)
