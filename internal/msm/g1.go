package msm

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/jfourie/groth16core/internal/density"
)

// bn254ScalarBits bounds the BN254 scalar field's bit length; Pippenger's
// window count is derived from it.
const bn254ScalarBits = 254

// G1 computes Σ scalars[i]·bases[skip+i] over the positions dens marks
// live, skipping the first skip bases (the caller's public-input prefix).
func G1(bases []bn254.G1Affine, dens density.Interface, scalars []*big.Int, skip int) (bn254.G1Jac, error) {
	return multiExp[bn254.G1Jac, bn254.G1Affine, *bn254.G1Jac](
		bases, dens, scalars, skip, bn254ScalarBits,
		func(a *bn254.G1Affine) bool { return a.IsInfinity() },
	)
}
