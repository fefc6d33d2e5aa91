package msm

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/jfourie/groth16core/internal/density"
)

// G2 computes Σ scalars[i]·bases[skip+i] over the positions dens marks
// live, skipping the first skip bases (the caller's public-input prefix).
func G2(bases []bn254.G2Affine, dens density.Interface, scalars []*big.Int, skip int) (bn254.G2Jac, error) {
	return multiExp[bn254.G2Jac, bn254.G2Affine, *bn254.G2Jac](
		bases, dens, scalars, skip, bn254ScalarBits,
		func(a *bn254.G2Affine) bool { return a.IsInfinity() },
	)
}
