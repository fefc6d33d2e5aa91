package groth16

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/jfourie/groth16core/constraint"
)

func feltFromInt(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// cubicCircuit builds the textbook x^3 + x + 5 == out circuit: one public
// input (out) and three auxiliary wires (x, x^2, x^3).
func cubicCircuit(x int64) (*constraint.ConstraintSystem, fr.Element) {
	cs := constraint.NewConstraintSystem()

	xVal := feltFromInt(x)
	xWire := cs.Alloc(func() (fr.Element, error) { return xVal, nil })

	var x2Val fr.Element
	x2Val.Mul(&xVal, &xVal)
	x2Wire := cs.Alloc(func() (fr.Element, error) { return x2Val, nil })

	var x3Val fr.Element
	x3Val.Mul(&x2Val, &xVal)
	x3Wire := cs.Alloc(func() (fr.Element, error) { return x3Val, nil })

	var outVal fr.Element
	outVal.Add(&x3Val, &xVal)
	var five fr.Element
	five.SetInt64(5)
	outVal.Add(&outVal, &five)
	outWire := cs.AllocInput(func() (fr.Element, error) { return outVal, nil })

	cs.Enforce(
		constraint.NewLinearCombination().AddWire(xWire),
		constraint.NewLinearCombination().AddWire(xWire),
		constraint.NewLinearCombination().AddWire(x2Wire),
	)
	cs.Enforce(
		constraint.NewLinearCombination().AddWire(x2Wire),
		constraint.NewLinearCombination().AddWire(xWire),
		constraint.NewLinearCombination().AddWire(x3Wire),
	)
	cs.Enforce(
		constraint.NewLinearCombination().
			AddWire(x3Wire).
			AddWire(xWire).
			Add(five, constraint.One),
		constraint.NewLinearCombination().AddWire(constraint.One),
		constraint.NewLinearCombination().AddWire(outWire),
	)

	return cs, outVal
}

func TestSetupProveVerifyRoundTrip(t *testing.T) {
	cs, out := cubicCircuit(3)

	inputs, aux, err := cs.Assignment()
	require.NoError(t, err)
	full := constraint.FullWitness(inputs, aux)
	require.NoError(t, cs.CheckWitness(full))

	pk, vk, err := Setup(cs)
	require.NoError(t, err)

	proof, err := Prove(pk, cs, full)
	require.NoError(t, err)

	err = Verify(vk, proof, []fr.Element{out})
	require.NoError(t, err)
}

func TestVerifyRejectsWrongPublicInput(t *testing.T) {
	cs, _ := cubicCircuit(3)

	inputs, aux, err := cs.Assignment()
	require.NoError(t, err)
	full := constraint.FullWitness(inputs, aux)

	pk, vk, err := Setup(cs)
	require.NoError(t, err)

	proof, err := Prove(pk, cs, full)
	require.NoError(t, err)

	wrong := feltFromInt(99999)
	err = Verify(vk, proof, []fr.Element{wrong})
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestProveRejectsInconsistentWitness(t *testing.T) {
	cs, _ := cubicCircuit(3)

	pk, _, err := Setup(cs)
	require.NoError(t, err)

	inputs, aux, err := cs.Assignment()
	require.NoError(t, err)
	full := constraint.FullWitness(inputs, aux)
	full[2] = feltFromInt(42) // corrupt x (full = [one, out | x, x2, x3])

	_, err = Prove(pk, cs, full)
	require.ErrorIs(t, err, ErrInconsistentWitness)
}

func TestProveRejectsWrongWitnessSize(t *testing.T) {
	cs, _ := cubicCircuit(3)
	pk, _, err := Setup(cs)
	require.NoError(t, err)

	_, err = Prove(pk, cs, []fr.Element{feltFromInt(1)})
	require.ErrorIs(t, err, ErrWitnessSize)
}

// fixedRand repeats a single byte forever, giving Prove a deterministic
// (if cryptographically void) source for its r, s blinding scalars.
func fixedRand(seed byte) *bytes.Reader {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = seed
	}
	return bytes.NewReader(buf)
}

func TestProveIsDeterministicForFixedBlinding(t *testing.T) {
	cs, out := cubicCircuit(3)
	inputs, aux, err := cs.Assignment()
	require.NoError(t, err)
	full := constraint.FullWitness(inputs, aux)

	pk, vk, err := Setup(cs)
	require.NoError(t, err)

	p1, err := Prove(pk, cs, full, WithRand(fixedRand(7)))
	require.NoError(t, err)
	p2, err := Prove(pk, cs, full, WithRand(fixedRand(7)))
	require.NoError(t, err)

	require.Equal(t, p1.Ar, p2.Ar)
	require.Equal(t, p1.Bs, p2.Bs)
	require.Equal(t, p1.Krs, p2.Krs)

	require.NoError(t, Verify(vk, p1, []fr.Element{out}))
}

// TestSetupDetectsUnconstrainedAuxWire exercises scenario S3: a circuit
// allocates an aux wire and never references it in any constraint, so its
// L-query entry evaluates to the point at infinity and Setup must fail
// hard rather than hand the prover a wire a malicious witness could set
// to anything.
func TestSetupDetectsUnconstrainedAuxWire(t *testing.T) {
	cs := constraint.NewConstraintSystem()

	// dangling: allocated, but no Enforce call ever references it.
	cs.Alloc(func() (fr.Element, error) { return feltFromInt(7), nil })

	one := constraint.NewLinearCombination().AddWire(constraint.One)
	cs.Enforce(one, one, one)

	_, _, err := Setup(cs)
	require.ErrorIs(t, err, ErrUnconstrainedWire)
}

func TestWithForceProceedsDespiteInconsistentWitness(t *testing.T) {
	cs, _ := cubicCircuit(3)
	pk, _, err := Setup(cs)
	require.NoError(t, err)

	inputs, aux, err := cs.Assignment()
	require.NoError(t, err)
	full := constraint.FullWitness(inputs, aux)
	full[2] = feltFromInt(42) // corrupt x

	_, err = Prove(pk, cs, full, WithForce(true))
	require.NoError(t, err)
}
