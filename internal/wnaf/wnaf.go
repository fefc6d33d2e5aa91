// Package wnaf implements windowed-NAF scalar multiplication tables (spec
// C4): precomputed odd multiples of a fixed base point, built once and
// shared read-only across workers, each of which decomposes its own
// scalars into a private scratch buffer.
package wnaf

import "math/big"

// width picks a window size in [2, 22] from the expected number of
// scalars a table will be used for, following the standard tradeoff:
// doubling the window roughly halves additions but doubles table size.
func width(nbScalars int) int {
	switch {
	case nbScalars >= 1<<20:
		return 16
	case nbScalars >= 1<<16:
		return 14
	case nbScalars >= 1<<12:
		return 12
	case nbScalars >= 1<<8:
		return 10
	case nbScalars >= 1<<4:
		return 6
	default:
		return 4
	}
}

// Width is exported so callers sizing two related tables (G1 and G2 bases
// sharing an expected scalar count) can agree on one window.
func Width(nbScalars int) int {
	w := width(nbScalars)
	if w < 2 {
		w = 2
	}
	if w > 22 {
		w = 22
	}
	return w
}

// decompose rewrites n in signed-digit representation with digits in
// {-2^(w-1), ..., 2^(w-1)-1}, one digit per window, most significant window
// first. Digits may be even or zero. It returns the digits directly usable
// by a double-and-add sweep: Scalar(n) = Σ digits[i] · 2^(w·(len-1-i)).
func decompose(n *big.Int, w uint) []int32 {
	if n.Sign() == 0 {
		return nil
	}
	e := new(big.Int).Set(n)
	var digits []int32
	half := int32(1) << (w - 1)
	full := int32(1) << w
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))

	for e.Sign() != 0 {
		digit := int32(new(big.Int).And(e, mask).Int64())
		if digit >= half {
			digit -= full
		}
		e.Sub(e, big.NewInt(int64(digit)))
		digits = append(digits, digit)
		e.Rsh(e, w)
	}

	// reverse to most-significant-window first
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return digits
}
