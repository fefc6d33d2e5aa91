package groth16

import (
	"context"
	cryptorand "crypto/rand"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/jfourie/groth16core/constraint"
	"github.com/jfourie/groth16core/internal/density"
	"github.com/jfourie/groth16core/internal/logger"
	"github.com/jfourie/groth16core/internal/msm"
	"github.com/jfourie/groth16core/internal/parallel"
)

// ProverOption configures one Prove call.
type ProverOption func(*ProverConfig)

// ProverConfig holds the knobs Prove accepts via ProverOption: whether to
// recheck the witness before committing CPU to MultiExp, whether to
// proceed on an inconsistent witness instead of failing outright, and
// where the r/s blinding scalars are sampled from.
type ProverConfig struct {
	checkWitness bool
	force        bool
	rand         io.Reader
}

// WithWitnessCheck enables (or disables) running CheckWitness before
// proving. It is enabled by default; disable it for large circuits where
// the caller has already validated the witness and the O(constraints)
// recheck is a measurable cost.
func WithWitnessCheck(enabled bool) ProverOption {
	return func(c *ProverConfig) { c.checkWitness = enabled }
}

// WithForce proceeds with proving even when the witness check fails,
// logging a warning instead of returning ErrInconsistentWitness. Intended
// for benchmarking MultiExp/FFT cost in isolation from circuit solving;
// the resulting proof will not verify.
func WithForce(force bool) ProverOption {
	return func(c *ProverConfig) { c.force = force }
}

// WithRand overrides the randomness source used to sample the r, s
// blinding scalars, for deterministic tests.
func WithRand(r io.Reader) ProverOption {
	return func(c *ProverConfig) { c.rand = r }
}

func newProverConfig(opts ...ProverOption) ProverConfig {
	cfg := ProverConfig{checkWitness: true, rand: cryptorand.Reader}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// randomFr draws a uniform scalar from r, the way SetRandom would from
// crypto/rand.Reader, but through an overridable source so tests can pin
// the r, s blinding factors.
func randomFr(r io.Reader) (fr.Element, error) {
	var buf [fr.Bytes]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fr.Element{}, err
	}
	var e fr.Element
	e.SetBytes(buf[:])
	return e, nil
}

func toBigInts(elems []fr.Element) []*big.Int {
	out := make([]*big.Int, len(elems))
	for i := range elems {
		var bi big.Int
		elems[i].ToBigInt(&bi)
		out[i] = &bi
	}
	return out
}

func filterByMask(full []fr.Element, mask []bool) []fr.Element {
	out := make([]fr.Element, 0, len(full))
	for i, v := range full {
		if i < len(mask) && mask[i] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// densityOf builds a runtime sparsity bitmap over vals: wires whose
// witness value happens to be zero are skipped by the MSM even though
// their QAP coefficient is structurally nonzero.
func densityOf(vals []fr.Element) *density.Density {
	d := density.New()
	for i, v := range vals {
		d.AddElement()
		if !v.IsZero() {
			d.Inc(i)
		}
	}
	return d
}

// Prove computes a Groth16 proof (spec C8) for the given witness against
// pk. full must be laid out [inputs | aux] as produced by
// constraint.FullWitness; inputs[0] must be the constant 1.
func Prove(pk *ProvingKey, cs *constraint.ConstraintSystem, full []fr.Element, opts ...ProverOption) (*Proof, error) {
	cfg := newProverConfig(opts...)

	if len(full) != cs.NbInputs()+cs.NbAux() {
		return nil, ErrWitnessSize
	}
	if cfg.checkWitness {
		if err := cs.CheckWitness(full); err != nil {
			if !cfg.force {
				return nil, ErrInconsistentWitness
			}
			logger.Logger.Warn().Err(err).Msg("groth16: proving against an inconsistent witness (force)")
		}
	}

	logger.Logger.Debug().Int("nb_constraints", cs.NbConstraints()).Msg("groth16: proving")

	a := make([]fr.Element, cs.NbConstraints(), pk.Domain.Cardinality)
	b := make([]fr.Element, cs.NbConstraints(), pk.Domain.Cardinality)
	c := make([]fr.Element, cs.NbConstraints(), pk.Domain.Cardinality)
	for i, con := range cs.Constraints {
		a[i] = cs.Eval(con.A, full)
		b[i] = cs.Eval(con.B, full)
		c[i] = cs.Eval(con.C, full)
	}

	ctx := context.Background()

	hFuture := parallel.Go(ctx, func(ctx context.Context) ([]fr.Element, error) {
		return pk.Domain.ComputeH(a, b, c), nil
	})

	wireValuesA := filterByMask(full, pk.InfinityA)
	wireValuesB := filterByMask(full, pk.InfinityB)

	r, err := randomFr(cfg.rand)
	if err != nil {
		return nil, err
	}
	s, err := randomFr(cfg.rand)
	if err != nil {
		return nil, err
	}
	var kr fr.Element
	kr.Mul(&r, &s).Neg(&kr)

	var rBig, sBig big.Int
	r.ToBigInt(&rBig)
	s.ToBigInt(&sBig)

	deltas := bn254.BatchScalarMultiplicationG1(&pk.G1.Delta, []fr.Element{r, s, kr})

	proof := &Proof{}

	arFuture := parallel.Go(ctx, func(ctx context.Context) (bn254.G1Jac, error) {
		densA := densityOf(wireValuesA)
		ar, err := msm.G1(pk.G1.A, densA, toBigInts(wireValuesA), 0)
		if err != nil {
			return bn254.G1Jac{}, err
		}
		var alphaJac, deltaAJac bn254.G1Jac
		alphaJac.FromAffine(&pk.G1.Alpha)
		deltaAJac.FromAffine(&deltas[0])
		ar.AddAssign(&alphaJac)
		ar.AddAssign(&deltaAJac)
		return ar, nil
	})

	bs1Future := parallel.Go(ctx, func(ctx context.Context) (bn254.G1Jac, error) {
		densB := densityOf(wireValuesB)
		bs1, err := msm.G1(pk.G1.B, densB, toBigInts(wireValuesB), 0)
		if err != nil {
			return bn254.G1Jac{}, err
		}
		var betaJac, deltaBJac bn254.G1Jac
		betaJac.FromAffine(&pk.G1.Beta)
		deltaBJac.FromAffine(&deltas[1])
		bs1.AddAssign(&betaJac)
		bs1.AddAssign(&deltaBJac)
		return bs1, nil
	})

	bs2Future := parallel.Go(ctx, func(ctx context.Context) (bn254.G2Jac, error) {
		densB := densityOf(wireValuesB)
		bs2, err := msm.G2(pk.G2.B, densB, toBigInts(wireValuesB), 0)
		if err != nil {
			return bn254.G2Jac{}, err
		}
		var deltaJac bn254.G2Jac
		deltaJac.FromAffine(&pk.G2.Delta)
		deltaJac.ScalarMultiplication(&deltaJac, &sBig)
		bs2.AddAssign(&deltaJac)
		var betaJac bn254.G2Jac
		betaJac.FromAffine(&pk.G2.Beta)
		bs2.AddAssign(&betaJac)
		return bs2, nil
	})

	// Ar and Bs1 share a type, so they join into one ordered wait; the
	// order (Ar before Bs1) matches the scalar multiplications Krs folds
	// them through below and keeps fixed-randomness proofs bit-exact.
	ab, err := parallel.Join(arFuture, bs1Future)
	if err != nil {
		return nil, err
	}
	ar, bs1 := ab[0], ab[1]
	proof.Ar.FromJacobian(&ar)

	h, err := hFuture.Wait()
	if err != nil {
		return nil, err
	}

	krsFuture := parallel.Go(ctx, func(ctx context.Context) (bn254.G1Jac, error) {
		krs2, err := msm.G1(pk.G1.Z, density.Full, toBigInts(h[:len(pk.G1.Z)]), 0)
		if err != nil {
			return bn254.G1Jac{}, err
		}

		auxValues := full[pk.NbPublicInputs:]
		krs, err := msm.G1(pk.G1.K, density.Full, toBigInts(auxValues), 0)
		if err != nil {
			return bn254.G1Jac{}, err
		}

		var deltaKJac bn254.G1Jac
		deltaKJac.FromAffine(&deltas[2])
		krs.AddAssign(&deltaKJac)
		krs.AddAssign(&krs2)

		var p1 bn254.G1Jac
		p1.ScalarMultiplication(&ar, &sBig)
		krs.AddAssign(&p1)

		p1.ScalarMultiplication(&bs1, &rBig)
		krs.AddAssign(&p1)

		return krs, nil
	})

	bs2, err := bs2Future.Wait()
	if err != nil {
		return nil, err
	}
	proof.Bs.FromJacobian(&bs2)

	krs, err := krsFuture.Wait()
	if err != nil {
		return nil, err
	}
	proof.Krs.FromJacobian(&krs)

	logger.Logger.Debug().Msg("groth16: proof complete")
	return proof, nil
}
