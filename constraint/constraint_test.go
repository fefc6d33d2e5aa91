package constraint

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func feltFromInt(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// TestLinearCombinationIsDistributive checks the free-abelian-group
// property the spec requires of LinearCombination: scaling and
// concatenation commute with evaluation.
func TestLinearCombinationIsDistributive(t *testing.T) {
	cs := NewConstraintSystem()
	x := cs.AllocInput(func() (fr.Element, error) { return feltFromInt(3), nil })
	y := cs.Alloc(func() (fr.Element, error) { return feltFromInt(5), nil })

	lc := NewLinearCombination().Add(feltFromInt(2), x).Add(feltFromInt(7), y)

	full := FullWitness(cs.inputValues, cs.auxValues)
	got := cs.Eval(lc, full)

	want := feltFromInt(2*3 + 7*5)
	require.True(t, got.Equal(&want))

	doubled := NewLinearCombination().ScaleConcat(feltFromInt(2), lc)
	gotDoubled := cs.Eval(doubled, full)
	var wantDoubled fr.Element
	wantDoubled.Add(&want, &want)
	require.True(t, gotDoubled.Equal(&wantDoubled))
}

func TestLinearCombinationDuplicateWiresFold(t *testing.T) {
	cs := NewConstraintSystem()
	x := cs.AllocInput(func() (fr.Element, error) { return feltFromInt(4), nil })

	lc := NewLinearCombination().AddWire(x).AddWire(x)
	full := FullWitness(cs.inputValues, cs.auxValues)
	got := cs.Eval(lc, full)

	want := feltFromInt(8)
	require.True(t, got.Equal(&want))
}

func TestCheckWitnessDetectsUnsatisfiedConstraint(t *testing.T) {
	cs := NewConstraintSystem()
	x := cs.AllocInput(func() (fr.Element, error) { return feltFromInt(3), nil })
	y := cs.Alloc(func() (fr.Element, error) { return feltFromInt(9), nil })

	// enforce x*x = y, which holds for x=3, y=9
	cs.Enforce(
		NewLinearCombination().AddWire(x),
		NewLinearCombination().AddWire(x),
		NewLinearCombination().AddWire(y),
	)

	full := FullWitness(cs.inputValues, cs.auxValues)
	require.NoError(t, cs.CheckWitness(full))

	// corrupt the witness and expect detection
	full[2] = feltFromInt(10)
	require.Error(t, cs.CheckWitness(full))
}

func TestAssignmentSurfacesValueFnError(t *testing.T) {
	cs := NewConstraintSystem()
	boom := errors.New("boom")
	cs.Alloc(func() (fr.Element, error) { return fr.Element{}, boom })

	_, _, err := cs.Assignment()
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
}

func TestWireNamespacesAreDisjoint(t *testing.T) {
	cs := NewConstraintSystem()
	require.True(t, One.IsInput())
	in := cs.AllocInput(func() (fr.Element, error) { return feltFromInt(1), nil })
	aux := cs.Alloc(func() (fr.Element, error) { return feltFromInt(1), nil })
	require.True(t, in.IsInput())
	require.False(t, aux.IsInput())
}
