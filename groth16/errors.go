package groth16

import (
	"errors"

	"github.com/jfourie/groth16core/internal/domain"
	"github.com/jfourie/groth16core/internal/msm"
)

// ErrAssignmentMissing and ErrUnexpectedIdentity are raised deep inside
// the MultiExp bucket method (internal/msm), where the mismatch between a
// query's bases/density/scalars is actually detected; re-exported here so
// callers of this package never need to import internal/msm to use
// errors.Is against them.
var (
	ErrAssignmentMissing  = msm.ErrAssignmentMissing
	ErrUnexpectedIdentity = msm.ErrUnexpectedIdentity
)

// ErrPolynomialDegreeTooLarge is raised by internal/domain when a circuit
// has more constraints than the scalar field's 2-adicity can support;
// re-exported for the same reason as above.
var ErrPolynomialDegreeTooLarge = domain.ErrPolynomialDegreeTooLarge

// ErrIO is returned by the WriteTo/ReadFrom methods of ProvingKey,
// VerifyingKey and Proof (io.go) when cbor encoding or decoding fails.
var ErrIO = errors.New("groth16: io error")

var (
	// ErrMalformedWireSize is returned by Setup when the per-wire QAP
	// coefficient vectors and the evaluation query vectors they are
	// written into disagree in length.
	ErrMalformedWireSize = errors.New("groth16: malformed wire size")

	// ErrUnconstrainedWire is returned by Setup when an auxiliary wire's L
	// query entry evaluates to the identity: the wire never appears with a
	// nonzero coefficient in any constraint's (β·A + α·B + C) combination,
	// so a malicious prover could assign it any value without affecting
	// the proof. Earlier designs merely warned; this one fails the setup.
	ErrUnconstrainedWire = errors.New("groth16: auxiliary wire is unconstrained")

	// ErrDegenerateTrapdoor is returned by Setup on the astronomically
	// unlikely event that a sampled trapdoor (γ or δ) is zero and so has
	// no inverse.
	ErrDegenerateTrapdoor = errors.New("groth16: sampled trapdoor is zero")

	// ErrWitnessSize is returned by Prove when the supplied witness vector
	// does not match the proving key's expected (input, aux) sizes.
	ErrWitnessSize = errors.New("groth16: witness size does not match proving key")

	// ErrInconsistentWitness is returned by Prove when witness checking is
	// enabled and the full witness fails CheckWitness.
	ErrInconsistentWitness = errors.New("groth16: witness does not satisfy the constraint system")
)
