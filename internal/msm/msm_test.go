package msm

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/require"

	"github.com/jfourie/groth16core/internal/density"
)

func TestG1MatchesNaiveSum(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()

	n := 20
	bases := make([]bn254.G1Affine, n)
	scalars := make([]*big.Int, n)
	dens := density.New()

	var want bn254.G1Jac
	for i := 0; i < n; i++ {
		dens.AddElement()
		var jac bn254.G1Jac
		jac.FromAffine(&g1Gen)
		jac.ScalarMultiplication(&jac, big.NewInt(int64(i+1)))
		bases[i].FromJacobian(&jac)
		scalars[i] = big.NewInt(int64(2*i + 1))
		dens.Inc(i)

		var contrib bn254.G1Jac
		contrib.FromAffine(&bases[i])
		contrib.ScalarMultiplication(&contrib, scalars[i])
		want.AddAssign(&contrib)
	}

	got, err := G1(bases, dens, scalars, 0)
	require.NoError(t, err)

	var wantAff, gotAff bn254.G1Affine
	wantAff.FromJacobian(&want)
	gotAff.FromJacobian(&got)
	require.True(t, wantAff.Equal(&gotAff))
}

func TestG1SkipsSparsePositions(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()

	n := 6
	bases := make([]bn254.G1Affine, n)
	scalars := make([]*big.Int, n)
	dens := density.New()

	var want bn254.G1Jac
	for i := 0; i < n; i++ {
		dens.AddElement()
		var jac bn254.G1Jac
		jac.FromAffine(&g1Gen)
		jac.ScalarMultiplication(&jac, big.NewInt(int64(i+1)))
		bases[i].FromJacobian(&jac)
		scalars[i] = big.NewInt(int64(i + 1))

		if i%2 == 0 {
			dens.Inc(i)
			var contrib bn254.G1Jac
			contrib.FromAffine(&bases[i])
			contrib.ScalarMultiplication(&contrib, scalars[i])
			want.AddAssign(&contrib)
		}
	}

	got, err := G1(bases, dens, scalars, 0)
	require.NoError(t, err)

	var wantAff, gotAff bn254.G1Affine
	wantAff.FromJacobian(&want)
	gotAff.FromJacobian(&got)
	require.True(t, wantAff.Equal(&gotAff))
}

func TestG1AssignmentMissing(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()

	bases := []bn254.G1Affine{g1Gen, g1Gen}
	dens := density.New()
	dens.AddElement()
	dens.AddElement()
	dens.Inc(0)
	dens.Inc(1)

	scalars := []*big.Int{big.NewInt(1)} // too short: position 1 has no scalar

	_, err := G1(bases, dens, scalars, 0)
	require.ErrorIs(t, err, ErrAssignmentMissing)
}

func TestG1UnexpectedIdentity(t *testing.T) {
	var infinity bn254.G1Affine // zero value is the point at infinity

	bases := []bn254.G1Affine{infinity}
	dens := density.New()
	dens.AddElement()
	dens.Inc(0)

	scalars := []*big.Int{big.NewInt(5)}

	_, err := G1(bases, dens, scalars, 0)
	require.ErrorIs(t, err, ErrUnexpectedIdentity)
}

func TestG1RespectsSkip(t *testing.T) {
	_, _, g1Gen, _ := bn254.Generators()

	bases := []bn254.G1Affine{g1Gen, g1Gen, g1Gen}
	dens := density.New()
	dens.AddElement() // position 0: the skipped prefix, never live
	dens.AddElement() // position 1
	dens.AddElement() // position 2
	dens.Inc(1)
	dens.Inc(2)

	scalars := []*big.Int{big.NewInt(3), big.NewInt(4)}

	got, err := G1(bases, dens, scalars, 1)
	require.NoError(t, err)

	var want bn254.G1Jac
	want.FromAffine(&g1Gen)
	want.ScalarMultiplication(&want, big.NewInt(3))
	var c2 bn254.G1Jac
	c2.FromAffine(&g1Gen)
	c2.ScalarMultiplication(&c2, big.NewInt(4))
	want.AddAssign(&c2)

	var wantAff, gotAff bn254.G1Affine
	wantAff.FromJacobian(&want)
	gotAff.FromJacobian(&got)
	require.True(t, wantAff.Equal(&gotAff))
}
