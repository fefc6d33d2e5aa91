package wnaf

import "math/big"

// point is satisfied by both bn254.G1Jac and bn254.G2Jac: the minimal
// in-place curve arithmetic a window table needs to build itself and to
// answer Scalar queries by double-and-add.
type point[T any] interface {
	*T
	Set(*T) *T
	Double(*T) *T
	AddAssign(*T) *T
	Neg(*T) *T
}

// Table is an immutable windowed-NAF precomputation: the odd multiples
// 1·P, 3·P, 5·P, …, (2^w-1)·P of a fixed base point P. Once built it
// is read-only and safe to share across worker goroutines; Scalar
// allocates its own scratch state per call so concurrent callers never
// interfere with each other.
type Table[T any, PT point[T]] struct {
	width     uint
	multiples []T // multiples[i] = (2i+1)·base
}

// Build precomputes a width-w table for base, with w chosen for an
// expected population of nbScalars upcoming Scalar calls.
func Build[T any, PT point[T]](base T, nbScalars int) *Table[T, PT] {
	w := uint(Width(nbScalars))
	nbOdd := 1 << (w - 1)

	multiples := make([]T, nbOdd)
	PT(&multiples[0]).Set(&base)

	var double T
	PT(&double).Set(&base)
	PT(&double).Double(&double)

	for i := 1; i < nbOdd; i++ {
		PT(&multiples[i]).Set(&multiples[i-1])
		PT(&multiples[i]).AddAssign(&double)
	}

	return &Table[T, PT]{width: w, multiples: multiples}
}

// Width reports the window size the table was built with.
func (t *Table[T, PT]) Width() int { return int(t.width) }

// Scalar computes repr·base using the table's precomputed odd multiples
// and a left-to-right double-and-(add|sub) sweep over repr's signed-digit
// decomposition; an even digit d is applied as (|d|-1)·P plus P. Each call
// builds its own accumulator; the table itself
// is never mutated, so a single Table may back arbitrarily many
// concurrent Scalar calls.
func (t *Table[T, PT]) Scalar(repr *big.Int) T {
	var acc T
	if repr.Sign() == 0 {
		return acc
	}

	digits := decompose(repr, t.width)

	started := false
	for _, d := range digits {
		if started {
			for i := uint(0); i < t.width; i++ {
				PT(&acc).Double(&acc)
			}
		}
		if d != 0 {
			m := abs32(d)
			var term T
			PT(&term).Set(&t.multiples[(m-1)/2])
			if m%2 == 0 {
				PT(&term).AddAssign(&t.multiples[0])
			}
			if d < 0 {
				PT(&term).Neg(&term)
			}
			PT(&acc).AddAssign(&term)
		}
		started = true
	}
	return acc
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
