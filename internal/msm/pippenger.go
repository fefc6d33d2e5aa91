// Package msm implements multi-scalar multiplication (spec C7): Pippenger's
// bucket method, density-filtered so zero-scalar bases are skipped instead
// of multiplied, with partial window sums computed in parallel and combined
// in a fixed, deterministic order.
package msm

import (
	"errors"
	"math/big"
	"math/bits"
	"time"

	"github.com/jfourie/groth16core/internal/density"
	"github.com/jfourie/groth16core/internal/logger"
	"github.com/jfourie/groth16core/internal/parallel"
)

// ErrAssignmentMissing is returned when density reports more nonzero
// positions than the scalar vector has entries for: the query and the
// witness it was built against have fallen out of sync.
var ErrAssignmentMissing = errors.New("msm: density references a scalar position with no assignment")

// ErrUnexpectedIdentity is returned when a base the density marks as
// contributing is the point at infinity: a proving key's query vector
// should never contain infinity at a position a correctly dense witness
// touches.
var ErrUnexpectedIdentity = errors.New("msm: unexpected point at infinity in a live base")

// jacobian is satisfied by bn254.G1Jac and bn254.G2Jac: the accumulator
// operations Pippenger's bucket/window combination needs.
type jacobian[J any, A any] interface {
	*J
	Set(*J) *J
	Double(*J) *J
	AddAssign(*J) *J
	AddMixed(*A) *J
	Neg(*J) *J
}

// windowBits picks Pippenger's window size c from the population size,
// following the standard c ≈ log2(n) heuristic, clamped to a sane range.
func windowBits(n int) int {
	if n < 4 {
		return 2
	}
	c := bits.Len(uint(n))
	if c < 2 {
		c = 2
	}
	if c > 22 {
		c = 22
	}
	return c
}

// multiExp computes Σ scalars[i]·bases[skip+i] over positions the density
// marks live, using a c-bit-window bucket method. dens is indexed in the
// same space as bases (the skipped prefix still occupies positions in
// dens, simply never live); scalars is indexed from 0 over the
// post-skip subset. nbBits bounds the scalar bit-length (254 for the
// BN254 scalar field).
func multiExp[J any, A any, PJ jacobian[J, A]](
	bases []A,
	dens density.Interface,
	scalars []*big.Int,
	skip int,
	nbBits int,
	isInfinity func(*A) bool,
) (J, error) {
	multiExpStart := time.Now()
	defer func() {
		logger.Logger.Debug().
			Int("nb_bases", len(bases)).
			Dur("took", time.Since(multiExpStart)).
			Msg("msm: multiExp")
	}()

	var zero J

	n := len(bases) - skip
	if n < 0 {
		n = 0
	}
	for i := 0; i < n; i++ {
		if dens.Get(skip+i) && i >= len(scalars) {
			return zero, ErrAssignmentMissing
		}
	}

	c := windowBits(len(scalars))
	nbWindows := (nbBits + c - 1) / c
	nbBuckets := (1 << c) - 1

	windowSums := make([]J, nbWindows)

	var firstErr error
	parallel.Execute(nbWindows, func(start, end int) {
		for w := start; w < end; w++ {
			buckets := make([]J, nbBuckets)
			shift := uint(w * c)
			mask := (uint64(1) << uint(c)) - 1

			for i := 0; i < n; i++ {
				if !dens.Get(skip + i) {
					continue
				}
				s := scalars[i]
				digit := extractWindow(s, shift, mask)
				if digit == 0 {
					continue
				}
				base := &bases[skip+i]
				if isInfinity(base) {
					if firstErr == nil {
						firstErr = ErrUnexpectedIdentity
					}
					continue
				}
				PJ(&buckets[digit-1]).AddMixed(base)
			}

			var runningSum, total J
			for j := len(buckets) - 1; j >= 0; j-- {
				PJ(&runningSum).AddAssign(&buckets[j])
				PJ(&total).AddAssign(&runningSum)
			}
			windowSums[w] = total
		}
	}, len(windowSums))

	if firstErr != nil {
		return zero, firstErr
	}

	var acc J
	for w := nbWindows - 1; w >= 0; w-- {
		if w != nbWindows-1 {
			for i := 0; i < c; i++ {
				PJ(&acc).Double(&acc)
			}
		}
		PJ(&acc).AddAssign(&windowSums[w])
	}
	return acc, nil
}

func extractWindow(s *big.Int, shift uint, mask uint64) uint64 {
	shifted := new(big.Int).Rsh(s, shift)
	masked := new(big.Int).And(shifted, new(big.Int).SetUint64(mask))
	return masked.Uint64()
}
