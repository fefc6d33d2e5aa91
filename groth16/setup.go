package groth16

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/jfourie/groth16core/constraint"
	"github.com/jfourie/groth16core/internal/domain"
	"github.com/jfourie/groth16core/internal/logger"
	"github.com/jfourie/groth16core/internal/parallel"
	"github.com/jfourie/groth16core/internal/wnaf"
)

// rowCoeff is one (constraint row, coefficient) contribution a wire makes
// to one of the three QAP polynomials A, B, C.
type rowCoeff struct {
	row   int
	coeff fr.Element
}

// wireTerms transposes a ConstraintSystem's row-major (A,B,C) triples into
// per-wire columns, so eval-at-tau can be computed one wire at a time.
type wireTerms struct {
	a, b, c []rowCoeff
}

func buildWireTerms(cs *constraint.ConstraintSystem) []wireTerms {
	nbWires := cs.NbInputs() + cs.NbAux()
	terms := make([]wireTerms, nbWires)

	fullIndex := func(w constraint.Wire) int {
		if w.Namespace == constraint.Aux {
			return cs.NbInputs() + w.Index
		}
		return w.Index
	}

	for row, c := range cs.Constraints {
		for _, t := range c.A {
			idx := fullIndex(t.Wire)
			terms[idx].a = append(terms[idx].a, rowCoeff{row: row, coeff: t.Coeff})
		}
		for _, t := range c.B {
			idx := fullIndex(t.Wire)
			terms[idx].b = append(terms[idx].b, rowCoeff{row: row, coeff: t.Coeff})
		}
		for _, t := range c.C {
			idx := fullIndex(t.Wire)
			terms[idx].c = append(terms[idx].c, rowCoeff{row: row, coeff: t.Coeff})
		}
	}
	return terms
}

func evalAtTau(lagrange []fr.Element, terms []rowCoeff) fr.Element {
	var acc fr.Element
	for _, t := range terms {
		var e fr.Element
		e.Mul(&lagrange[t.row], &t.coeff)
		acc.Add(&acc, &e)
	}
	return acc
}

// trapdoors are the five secret field elements sampled once by the setup
// ceremony and discarded (toxic waste) after the keys are derived.
type trapdoors struct {
	tau, alpha, beta, gammaInv, deltaInv fr.Element
}

func sampleTrapdoors() (trapdoors, error) {
	var t trapdoors
	for _, f := range []*fr.Element{&t.tau, &t.alpha, &t.beta} {
		if _, err := f.SetRandom(); err != nil {
			return t, err
		}
	}

	var gamma, delta fr.Element
	if _, err := gamma.SetRandom(); err != nil {
		return t, err
	}
	if _, err := delta.SetRandom(); err != nil {
		return t, err
	}
	if gamma.IsZero() || delta.IsZero() {
		return t, ErrDegenerateTrapdoor
	}
	t.gammaInv.Inverse(&gamma)
	t.deltaInv.Inverse(&delta)
	return t, nil
}

// Setup runs the Groth16 trusted-setup key generator (spec C5): it samples
// fresh trapdoors, evaluates the QAP at τ via one Lagrange interpolation,
// and derives the proving and verifying keys from them. The trapdoors are
// never returned; callers who need a reproducible or multi-party ceremony
// must implement that above this function.
func Setup(cs *constraint.ConstraintSystem) (*ProvingKey, *VerifyingKey, error) {
	dom, err := domain.New(cs.NbConstraints())
	if err != nil {
		return nil, nil, err
	}

	td, err := sampleTrapdoors()
	if err != nil {
		return nil, nil, err
	}

	logger.Logger.Debug().
		Uint64("domain_cardinality", dom.Cardinality).
		Int("nb_constraints", cs.NbConstraints()).
		Int("nb_inputs", cs.NbInputs()).
		Int("nb_aux", cs.NbAux()).
		Msg("groth16: starting setup")

	lagrange := dom.LagrangeCoefficientsAtTau(td.tau)
	terms := buildWireTerms(cs)

	nbInputs, nbAux := cs.NbInputs(), cs.NbAux()
	nbWires := nbInputs + nbAux

	if len(terms) != nbWires || len(lagrange) < cs.NbConstraints() {
		return nil, nil, ErrMalformedWireSize
	}

	_, _, g1Gen, g2Gen := bn254.Generators()
	g1Table := wnaf.BuildG1(g1Gen, nbWires)
	g2Table := wnaf.BuildG2(g2Gen, nbWires)

	aJac := make([]bn254.G1Jac, nbWires)
	bG1Jac := make([]bn254.G1Jac, nbWires)
	bG2Jac := make([]bn254.G2Jac, nbWires)
	extJac := make([]bn254.G1Jac, nbWires)

	// Each wire's (at, bt, ct, ext) evaluation only reads its own column of
	// terms and only writes its own index in aJac/bG1Jac/bG2Jac/extJac, so
	// workers operate on disjoint slice ranges with no shared mutable
	// state beyond the (read-only, concurrency-safe) wnaf tables.
	parallel.Execute(nbWires, func(start, end int) {
		for j := start; j < end; j++ {
			at := evalAtTau(lagrange, terms[j].a)
			bt := evalAtTau(lagrange, terms[j].b)
			ct := evalAtTau(lagrange, terms[j].c)

			if !at.IsZero() {
				var repr big.Int
				at.ToBigInt(&repr)
				aJac[j] = g1Table.Scalar(&repr)
			}
			if !bt.IsZero() {
				var repr big.Int
				bt.ToBigInt(&repr)
				bG1Jac[j] = g1Table.Scalar(&repr)
				bG2Jac[j] = g2Table.Scalar(&repr)
			}

			var e, tmp fr.Element
			tmp.Mul(&at, &td.beta)
			e.Add(&e, &tmp)
			tmp.Mul(&bt, &td.alpha)
			e.Add(&e, &tmp)
			e.Add(&e, &ct)

			if j < nbInputs {
				e.Mul(&e, &td.gammaInv)
			} else {
				e.Mul(&e, &td.deltaInv)
			}

			var repr big.Int
			e.ToBigInt(&repr)
			extJac[j] = g1Table.Scalar(&repr)
		}
	})

	ic := extJac[:nbInputs]
	lQuery := extJac[nbInputs:]
	for _, p := range lQuery {
		if p.Z.IsZero() {
			return nil, nil, ErrUnconstrainedWire
		}
	}

	pk := &ProvingKey{Domain: dom, NbPublicInputs: nbInputs}
	pk.G1.Alpha.FromJacobian(jacScalar(g1Gen, &td.alpha))
	pk.G1.Beta.FromJacobian(jacScalar(g1Gen, &td.beta))
	var delta fr.Element
	delta.Inverse(&td.deltaInv)
	pk.G1.Delta.FromJacobian(jacScalar(g1Gen, &delta))

	pk.G2.Beta.FromJacobian(jacScalarG2(g2Gen, &td.beta))
	pk.G2.Delta.FromJacobian(jacScalarG2(g2Gen, &delta))

	pk.G1.A, pk.InfinityA, pk.NbInfinityA = filterG1(aJac)
	bG1Filtered, infB, nbInfB := filterG1(bG1Jac)
	pk.G1.B, pk.InfinityB, pk.NbInfinityB = bG1Filtered, infB, nbInfB
	pk.G2.B = filterG2ByMask(bG2Jac, pk.InfinityB)

	pk.G1.K, _, _ = filterG1(lQuery)
	pk.G1.Z = computeZQuery(dom, g1Table, td.tau, td.deltaInv)

	var gamma fr.Element
	gamma.Inverse(&td.gammaInv)
	vk := &VerifyingKey{Alpha: pk.G1.Alpha}
	vk.Beta.FromJacobian(jacScalarG2(g2Gen, &td.beta))
	vk.Gamma.FromJacobian(jacScalarG2(g2Gen, &gamma))
	vk.Delta.FromJacobian(jacScalarG2(g2Gen, &delta))
	vk.IC = make([]bn254.G1Affine, len(ic))
	bn254.BatchJacobianToAffineG1(ic, vk.IC)

	logger.Logger.Info().
		Int("nb_a", len(pk.G1.A)).
		Int("nb_b", len(pk.G1.B)).
		Int("nb_k", len(pk.G1.K)).
		Msg("groth16: setup complete")

	return pk, vk, nil
}

func jacScalar(base bn254.G1Affine, s *fr.Element) *bn254.G1Jac {
	var repr big.Int
	s.ToBigInt(&repr)
	var jac bn254.G1Jac
	jac.FromAffine(&base)
	jac.ScalarMultiplication(&jac, &repr)
	return &jac
}

func jacScalarG2(base bn254.G2Affine, s *fr.Element) *bn254.G2Jac {
	var repr big.Int
	s.ToBigInt(&repr)
	var jac bn254.G2Jac
	jac.FromAffine(&base)
	jac.ScalarMultiplication(&jac, &repr)
	return &jac
}

// filterG1 removes points at infinity from pts, returning the compacted
// affine slice alongside a full-length bitmap recording which original
// positions were removed.
func filterG1(pts []bn254.G1Jac) ([]bn254.G1Affine, []bool, uint64) {
	mask := make([]bool, len(pts))
	kept := make([]bn254.G1Jac, 0, len(pts))
	var nbRemoved uint64
	for i, p := range pts {
		if p.Z.IsZero() {
			mask[i] = true
			nbRemoved++
			continue
		}
		kept = append(kept, p)
	}
	affine := make([]bn254.G1Affine, len(kept))
	bn254.BatchJacobianToAffineG1(kept, affine)
	return affine, mask, nbRemoved
}

func filterG2ByMask(pts []bn254.G2Jac, mask []bool) []bn254.G2Affine {
	kept := make([]bn254.G2Jac, 0, len(pts))
	for i, p := range pts {
		if mask[i] {
			continue
		}
		kept = append(kept, p)
	}
	affine := make([]bn254.G2Affine, len(kept))
	bn254.BatchJacobianToAffineG2(kept, affine)
	return affine
}

// computeZQuery derives the H query δ⁻¹·Z(τ)·τ^i·g1 for i in [0, cardinality-1),
// where Z(τ) = τ^m − 1: the points the prover contracts H's coefficients
// against to fold δ⁻¹·H(τ)·Z(τ) into Krs without ever learning τ or δ.
func computeZQuery(dom *domain.Domain, g1Table *wnaf.G1Table, tau, deltaInv fr.Element) []bn254.G1Affine {
	n := int(dom.Cardinality) - 1
	jac := make([]bn254.G1Jac, n)

	var zt, one fr.Element
	zt.Exp(tau, new(big.Int).SetUint64(dom.Cardinality))
	one.SetOne()
	zt.Sub(&zt, &one)

	var power fr.Element
	power.Mul(&deltaInv, &zt)
	for i := 0; i < n; i++ {
		var repr big.Int
		power.ToBigInt(&repr)
		jac[i] = g1Table.Scalar(&repr)
		power.Mul(&power, &tau)
	}
	return normalizeG1(jac)
}

func normalizeG1(jac []bn254.G1Jac) []bn254.G1Affine {
	affine := make([]bn254.G1Affine, len(jac))
	bn254.BatchJacobianToAffineG1(jac, affine)
	return affine
}
