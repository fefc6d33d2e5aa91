package groth16

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrInvalidProof is returned by Verify when the pairing equation does not
// hold: either the proof was produced against a different circuit/key, or
// it is simply invalid.
var ErrInvalidProof = errors.New("groth16: invalid proof")

// ErrPublicInputSize is returned by Verify when the supplied public input
// vector does not match the verifying key's IC (it must have exactly
// len(vk.IC)-1 entries, one per non-constant public wire).
var ErrPublicInputSize = errors.New("groth16: public input size does not match verifying key")

// Verify checks proof against vk and a public input assignment (the
// constant-1 wire excluded) by the four-pairing Groth16 equation
//
//	e(A, B) = e(α, β) · e(Σ icᵢ·inputᵢ, γ) · e(Krs, δ)
//
// folded into a single PairingCheck by negating A.
func Verify(vk *VerifyingKey, proof *Proof, publicInputs []fr.Element) error {
	if len(publicInputs) != len(vk.IC)-1 {
		return ErrPublicInputSize
	}

	var kSum bn254.G1Jac
	kSum.FromAffine(&vk.IC[0])
	for i, input := range publicInputs {
		var bi big.Int
		input.ToBigInt(&bi)

		var term bn254.G1Jac
		term.FromAffine(&vk.IC[i+1])
		term.ScalarMultiplication(&term, &bi)
		kSum.AddAssign(&term)
	}
	var kSumAff bn254.G1Affine
	kSumAff.FromJacobian(&kSum)

	var arNeg bn254.G1Affine
	arNeg.Neg(&proof.Ar)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{arNeg, vk.Alpha, kSumAff, proof.Krs},
		[]bn254.G2Affine{proof.Bs, vk.Beta, vk.Gamma, vk.Delta},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidProof
	}
	return nil
}
