package groth16

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/jfourie/groth16core/internal/domain"
)

// ProvingKey holds the evaluation queries a prover needs to turn a
// satisfied witness into a proof. Field layout mirrors the grouping a
// Groth16 prover actually touches together: G1 and G2 query vectors, and
// the two infinity bitmaps that let the prover skip multiplying by
// structurally-zero QAP points.
type ProvingKey struct {
	Domain *domain.Domain

	G1 struct {
		Alpha, Beta, Delta bn254.G1Affine
		A, B               []bn254.G1Affine // per-wire queries, zero entries removed
		Z                  []bn254.G1Affine // H query, one entry per domain point below the degree bound
		K                  []bn254.G1Affine // L query, aux wires only, zero entries removed (none should remain)
	}
	G2 struct {
		Beta, Delta bn254.G2Affine
		B           []bn254.G2Affine
	}

	// InfinityA/InfinityB mark, in full-witness order, which positions
	// were removed from G1.A/G2.B+G1.B because their QAP coefficient is
	// structurally zero. NbInfinityA/NbInfinityB cache the popcount.
	InfinityA, InfinityB     []bool
	NbInfinityA, NbInfinityB uint64

	NbPublicInputs int // includes the constant-1 wire
}

// VerifyingKey holds the pairing-check constants: the fixed αβ term and
// the public-input query IC, one entry per public input including the
// constant-1 wire.
type VerifyingKey struct {
	Alpha              bn254.G1Affine
	Beta, Gamma, Delta bn254.G2Affine
	IC                 []bn254.G1Affine
}

// Proof is a Groth16 proof: three group elements.
type Proof struct {
	Ar, Krs bn254.G1Affine
	Bs      bn254.G2Affine
}
