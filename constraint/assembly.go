package constraint

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/jfourie/groth16core/internal/logger"
)

// Constraint is one R1CS triple (A, B, C) with the invariant ⟨A,w⟩·⟨B,w⟩ = ⟨C,w⟩.
type Constraint struct {
	A, B, C LinearCombination
}

// ValueFn produces the witness value of a freshly allocated wire. It is
// supplied by the circuit synthesizer and invoked exactly once, at
// allocation time.
type ValueFn func() (fr.Element, error)

// ConstraintSystem accumulates wires and R1CS triples from a circuit
// synthesis pass. Three monotonically growing collections: the input and
// aux assignment vectors (each value computed by its ValueFn at allocation
// time), and the constraint list. Invariants: every wire referenced by any LC has been
// allocated before use (enforced structurally — Wire values only come from
// Alloc/AllocInput); allocation order determines evaluation index; once
// allocated a wire's index is stable.
type ConstraintSystem struct {
	inputValues []fr.Element
	auxValues   []fr.Element
	inputErrs   []error
	auxErrs     []error

	Constraints []Constraint

	namespace []string
}

// NewConstraintSystem returns an assembly seeded with the mandatory
// Input(0) == 1 wire.
func NewConstraintSystem() *ConstraintSystem {
	cs := &ConstraintSystem{}
	var one fr.Element
	one.SetOne()
	cs.inputValues = append(cs.inputValues, one)
	cs.inputErrs = append(cs.inputErrs, nil)
	return cs
}

// AllocInput allocates a new public-input wire, appending value() to the
// input assignment, and returns Input(k).
func (cs *ConstraintSystem) AllocInput(value ValueFn) Wire {
	v, err := value()
	idx := len(cs.inputValues)
	cs.inputValues = append(cs.inputValues, v)
	cs.inputErrs = append(cs.inputErrs, err)
	return Wire{Namespace: Input, Index: idx}
}

// Alloc allocates a new auxiliary wire, appending value() to the aux
// assignment, and returns Aux(k).
func (cs *ConstraintSystem) Alloc(value ValueFn) Wire {
	v, err := value()
	idx := len(cs.auxValues)
	cs.auxValues = append(cs.auxValues, v)
	cs.auxErrs = append(cs.auxErrs, err)
	return Wire{Namespace: Aux, Index: idx}
}

// Enforce appends the constraint a·b = c.
func (cs *ConstraintSystem) Enforce(a, b, c LinearCombination) {
	cs.Constraints = append(cs.Constraints, Constraint{A: a, B: b, C: c})
}

// Namespace is purely diagnostic; it has no algebraic effect and exists so
// circuit authors can label regions of synthesis for debugging.
func (cs *ConstraintSystem) Namespace(name string) {
	cs.namespace = append(cs.namespace, name)
}

// NbInputs returns the size of the input namespace, including Input(0).
func (cs *ConstraintSystem) NbInputs() int { return len(cs.inputValues) }

// NbAux returns the size of the auxiliary namespace.
func (cs *ConstraintSystem) NbAux() int { return len(cs.auxValues) }

// NbConstraints returns the number of enforced triples.
func (cs *ConstraintSystem) NbConstraints() int { return len(cs.Constraints) }

// Assignment returns the (input, aux) witness vectors built during
// synthesis, or the first ValueFn error encountered, in allocation order
// (inputs checked before aux).
func (cs *ConstraintSystem) Assignment() ([]fr.Element, []fr.Element, error) {
	for i, err := range cs.inputErrs {
		if err != nil {
			return nil, nil, fmt.Errorf("constraint: input wire %d: %w", i, err)
		}
	}
	for i, err := range cs.auxErrs {
		if err != nil {
			return nil, nil, fmt.Errorf("constraint: aux wire %d: %w", i, err)
		}
	}
	return cs.inputValues, cs.auxValues, nil
}

// Eval evaluates a linear combination against a full witness vector: full
// is indexed as [inputs(0..NbInputs) | aux(0..NbAux)], i.e. the same
// layout the QAP evaluator and the prover's MSM partitions use. Eval is
// duplicate-safe: it folds every term in lc regardless of repeated wires,
// matching the free-abelian-group semantics of LinearCombination.
func (cs *ConstraintSystem) Eval(lc LinearCombination, full []fr.Element) fr.Element {
	var acc fr.Element
	nbInputs := cs.NbInputs()
	for _, t := range lc {
		idx := t.Wire.Index
		if t.Wire.Namespace == Aux {
			idx += nbInputs
		}
		var term fr.Element
		term.Mul(&t.Coeff, &full[idx])
		acc.Add(&acc, &term)
	}
	return acc
}

// CheckWitness verifies ⟨A,w⟩·⟨B,w⟩ = ⟨C,w⟩ at every constraint row for
// the given full witness vector (spec §8 property 5: QAP consistency).
func (cs *ConstraintSystem) CheckWitness(full []fr.Element) error {
	start := time.Now()
	defer func() {
		logger.Logger.Debug().
			Int("nb_constraints", len(cs.Constraints)).
			Dur("took", time.Since(start)).
			Msg("constraint: CheckWitness")
	}()

	for i, c := range cs.Constraints {
		a := cs.Eval(c.A, full)
		b := cs.Eval(c.B, full)
		want := cs.Eval(c.C, full)

		var got fr.Element
		got.Mul(&a, &b)
		if !got.Equal(&want) {
			return fmt.Errorf("constraint: row %d unsatisfied", i)
		}
	}
	return nil
}

// FullWitness concatenates the input and aux assignment vectors into the
// [inputs | aux] layout Eval and CheckWitness expect.
func FullWitness(input, aux []fr.Element) []fr.Element {
	full := make([]fr.Element, 0, len(input)+len(aux))
	full = append(full, input...)
	full = append(full, aux...)
	return full
}
