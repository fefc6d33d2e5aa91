package domain

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func randVec(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i].SetUint64(uint64(i*7 + 3))
	}
	return out
}

func TestNewRoundsUpToPowerOfTwo(t *testing.T) {
	d, err := New(5)
	require.NoError(t, err)
	require.Equal(t, uint64(8), d.Cardinality)

	d, err = New(8)
	require.NoError(t, err)
	require.Equal(t, uint64(8), d.Cardinality)
}

func TestGeneratorHasCorrectOrder(t *testing.T) {
	d, err := New(16)
	require.NoError(t, err)

	var acc fr.Element
	acc.Exp(d.Generator, new(big.Int).SetUint64(d.Cardinality))
	var one fr.Element
	one.SetOne()
	require.True(t, acc.Equal(&one), "generator^cardinality must be 1")

	var prev fr.Element
	prev.SetOne()
	require.False(t, d.Generator.Equal(&one), "generator must not itself be 1")
	_ = prev
}

func TestFFTRoundTrip(t *testing.T) {
	d, err := New(16)
	require.NoError(t, err)

	coeffs := randVec(16)
	orig := make([]fr.Element, len(coeffs))
	copy(orig, coeffs)

	d.FFT(coeffs, nil)
	d.FFTInverse(coeffs, nil)

	for i := range coeffs {
		require.True(t, coeffs[i].Equal(&orig[i]), "index %d", i)
	}
}

func TestFFTCosetRoundTrip(t *testing.T) {
	d, err := New(8)
	require.NoError(t, err)

	coeffs := randVec(8)
	orig := make([]fr.Element, len(coeffs))
	copy(orig, coeffs)

	d.FFT(coeffs, &d.FrMultiplicativeGen)
	d.FFTInverse(coeffs, &d.FrMultiplicativeGen)

	for i := range coeffs {
		require.True(t, coeffs[i].Equal(&orig[i]), "index %d", i)
	}
}

// TestComputeHIsZeroWhenABEqualsC exercises the QAP identity directly: if
// a[i]*b[i] == c[i] at every domain point, the polynomial a*b - c vanishes
// on the whole subgroup, so H must be the zero polynomial.
func TestComputeHIsZeroWhenABEqualsC(t *testing.T) {
	d, err := New(4)
	require.NoError(t, err)

	a := randVec(4)
	b := make([]fr.Element, 4)
	for i := range b {
		b[i].SetOne()
	}
	c := make([]fr.Element, 4)
	copy(c, a)

	h := d.ComputeH(a, b, c)
	var zero fr.Element
	for i, v := range h {
		require.True(t, v.Equal(&zero), "H[%d] should be zero, got nonzero witness", i)
	}
}

func TestLagrangeCoefficientsSumToOneAtZero(t *testing.T) {
	d, err := New(4)
	require.NoError(t, err)

	var zero fr.Element
	coeffs := d.LagrangeCoefficientsAtTau(zero)

	var sum fr.Element
	for _, c := range coeffs {
		sum.Add(&sum, &c)
	}
	var one fr.Element
	one.SetOne()
	require.True(t, sum.Equal(&one))
}
