package constraint

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Term is one (coefficient, wire) pair of a LinearCombination.
type Term struct {
	Coeff fr.Element
	Wire  Wire
}

// LinearCombination is an ordered sequence of (wire, Fr) pairs: the
// symbolic sum Σ cᵢ·wᵢ over wires with scalar coefficients. Duplicates are
// permitted and represent implicit addition; semantics are the
// free-abelian-group sum. Operations append only — they never deduplicate
// or reorder, which keeps construction O(1) amortized per term. Evaluators
// must be duplicate-safe (see ConstraintSystem.Eval).
type LinearCombination []Term

// NewLinearCombination returns the zero linear combination.
func NewLinearCombination() LinearCombination {
	return nil
}

// Add returns lc + (coeff, w), i.e. lc with one term appended.
func (lc LinearCombination) Add(coeff fr.Element, w Wire) LinearCombination {
	return append(lc, Term{Coeff: coeff, Wire: w})
}

// AddWire returns lc + w, shorthand for Add(1, w).
func (lc LinearCombination) AddWire(w Wire) LinearCombination {
	var one fr.Element
	one.SetOne()
	return lc.Add(one, w)
}

// Sub returns lc − (coeff, w), i.e. lc with a negated term appended.
func (lc LinearCombination) Sub(coeff fr.Element, w Wire) LinearCombination {
	var neg fr.Element
	neg.Neg(&coeff)
	return lc.Add(neg, w)
}

// Concat returns lc + other, the concatenation of both term sequences.
func (lc LinearCombination) Concat(other LinearCombination) LinearCombination {
	return append(lc, other...)
}

// ScaleConcat returns lc + (coeff, other): other scaled by coeff, then
// concatenated onto lc.
func (lc LinearCombination) ScaleConcat(coeff fr.Element, other LinearCombination) LinearCombination {
	scaled := make(LinearCombination, len(other))
	for i, t := range other {
		var c fr.Element
		c.Mul(&coeff, &t.Coeff)
		scaled[i] = Term{Coeff: c, Wire: t.Wire}
	}
	return append(lc, scaled...)
}

// Clone returns an independent copy of lc so further appends to either copy
// do not alias the other's backing array.
func (lc LinearCombination) Clone() LinearCombination {
	out := make(LinearCombination, len(lc))
	copy(out, lc)
	return out
}
