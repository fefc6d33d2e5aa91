// Package domain implements the QAP evaluator (spec C3): evaluation and
// interpolation over a power-of-two multiplicative subgroup of the BN254
// scalar field, Lagrange coefficients at a secret point τ, and the coset
// FFT used to compute the prover's H(X) polynomial.
package domain

import (
	"errors"
	"math/big"
	"math/bits"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/jfourie/groth16core/internal/logger"
	"github.com/jfourie/groth16core/internal/parallel"
)

// ErrPolynomialDegreeTooLarge is returned when the requested domain size
// exceeds the largest power of two the scalar field's multiplicative group
// supports (its 2-adicity).
var ErrPolynomialDegreeTooLarge = errors.New("domain: polynomial degree too large for available subgroup")

// Domain holds the size m = 2^k >= minSize of a multiplicative subgroup,
// a generator ω of that subgroup, m⁻¹, and the coset shift used to avoid
// divisor zeros in the H(X) computation.
type Domain struct {
	Cardinality    uint64
	Log2Cardinality uint64
	Generator      fr.Element
	GeneratorInv   fr.Element
	CardinalityInv fr.Element

	// FrMultiplicativeGen is a generator of Fr*, used to shift evaluation
	// onto a coset disjoint from the subgroup so X^m - 1 never vanishes.
	FrMultiplicativeGen    fr.Element
	FrMultiplicativeGenInv fr.Element
}

// New builds the smallest power-of-two domain with cardinality >= minSize.
func New(minSize int) (*Domain, error) {
	if minSize < 1 {
		minSize = 1
	}
	log2Size := bits.Len(uint(minSize - 1))
	cardinality := uint64(1) << uint(log2Size)

	// fr.Element has 2-adicity fr.Generator's order constraints; gnark-crypto
	// exposes the root-of-unity generator of the largest 2-power subgroup
	// via fr.RootOfUnity/fr.Generator conventions. We derive our ω by
	// exponentiating the canonical root of unity down to the requested size.
	if log2Size > fr.RootOfUnityBitLen {
		return nil, ErrPolynomialDegreeTooLarge
	}

	var generator fr.Element
	generator.Set(&fr.RootOfUnity)
	expo := new(big.Int).Lsh(big.NewInt(1), fr.RootOfUnityBitLen-uint(log2Size))
	generator.Exp(generator, expo)

	var generatorInv, cardinalityInv fr.Element
	generatorInv.Inverse(&generator)
	cardinalityInv.SetUint64(cardinality)
	cardinalityInv.Inverse(&cardinalityInv)

	var mGen, mGenInv fr.Element
	mGen.Set(&fr.MultiplicativeGen)
	mGenInv.Inverse(&mGen)

	return &Domain{
		Cardinality:            cardinality,
		Log2Cardinality:        uint64(log2Size),
		Generator:              generator,
		GeneratorInv:           generatorInv,
		CardinalityInv:         cardinalityInv,
		FrMultiplicativeGen:    mGen,
		FrMultiplicativeGenInv: mGenInv,
	}, nil
}

// bitReverse permutes vals in place so vals[i] and vals[reverse(i)] swap,
// the standard prelude to an iterative radix-2 butterfly network.
func bitReverse(vals []fr.Element) {
	n := uint(len(vals))
	if n == 0 {
		return
	}
	logN := uint(bits.Len(n) - 1)
	for i := uint(0); i < n; i++ {
		j := bitsReverse(i, logN)
		if i < j {
			vals[i], vals[j] = vals[j], vals[i]
		}
	}
}

func bitsReverse(x, logN uint) uint {
	var r uint
	for i := uint(0); i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// fft runs the iterative radix-2 Cooley-Tukey butterfly network in place,
// using root as the primitive m-th root driving the twiddle factors.
// Butterfly layer k only ever reads values written by layer k-1: each
// layer is an implicit synchronization barrier, parallelized by splitting
// every layer's independent butterfly pairs across workers.
func fft(vals []fr.Element, root fr.Element) {
	bitReverse(vals)
	n := len(vals)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		var wGroup fr.Element
		wGroup.Exp(root, big.NewInt(int64(n/size)))

		nbGroups := n / size
		parallel.Execute(nbGroups, func(start, end int) {
			var w fr.Element
			for g := start; g < end; g++ {
				base := g * size
				w.SetOne()
				for j := 0; j < half; j++ {
					var t fr.Element
					t.Mul(&vals[base+j+half], &w)

					var a fr.Element
					a.Set(&vals[base+j])

					vals[base+j].Add(&a, &t)
					vals[base+j+half].Sub(&a, &t)

					w.Mul(&w, &wGroup)
				}
			}
		})
	}
}

// FFT evaluates coeffs (coefficient form) at every point of the domain,
// in place: coeffs[i] becomes the polynomial's value at ω^i (or, with a
// non-nil shift, at shift·ω^i).
func (d *Domain) FFT(coeffs []fr.Element, shift *fr.Element) {
	vals := applyShift(coeffs, shift)
	fft(vals, d.Generator)
	copy(coeffs, vals)
}

// FFTInverse interpolates evaluation-form vals back to coefficient form,
// in place.
func (d *Domain) FFTInverse(vals []fr.Element, shift *fr.Element) {
	fft(vals, d.GeneratorInv)
	for i := range vals {
		vals[i].Mul(&vals[i], &d.CardinalityInv)
	}
	unapplyShift(vals, shift)
}

func applyShift(coeffs []fr.Element, shift *fr.Element) []fr.Element {
	out := make([]fr.Element, len(coeffs))
	copy(out, coeffs)
	if shift == nil {
		return out
	}
	var power fr.Element
	power.SetOne()
	for i := range out {
		out[i].Mul(&out[i], &power)
		power.Mul(&power, shift)
	}
	return out
}

func unapplyShift(vals []fr.Element, shift *fr.Element) {
	if shift == nil {
		return
	}
	var shiftInv fr.Element
	shiftInv.Inverse(shift)
	var power fr.Element
	power.SetOne()
	for i := range vals {
		vals[i].Mul(&vals[i], &power)
		power.Mul(&power, &shiftInv)
	}
}

// LagrangeCoefficientsAtTau computes L_i(τ) for i in [0, m) in one inverse
// FFT: build the vector [τ⁰, τ¹, …, τ^{m−1}] and interpolate it as though
// it were itself a coefficient vector. The resulting "coefficients" are
// exactly the Lagrange basis evaluated at τ, by the standard geometric-
// series identity Σ_j (τ·ω^{-i})^j = ω^i·(τ^m − 1)/(τ − ω^i) · (used
// implicitly by the IFFT's twiddle structure).
func (d *Domain) LagrangeCoefficientsAtTau(tau fr.Element) []fr.Element {
	powers := make([]fr.Element, d.Cardinality)
	var cur fr.Element
	cur.SetOne()
	for i := range powers {
		powers[i] = cur
		cur.Mul(&cur, &tau)
	}
	d.FFTInverse(powers, nil)
	return powers
}

// ComputeH computes the quotient polynomial H(X) = (A(X)·B(X) − C(X)) / Z(X)
// where Z(X) = X^m − 1, from the witness-evaluated a, b, c vectors (one
// entry per constraint row). a, b, c must have capacity d.Cardinality;
// they are padded with zeros and overwritten.
func (d *Domain) ComputeH(a, b, c []fr.Element) []fr.Element {
	computeHStart := time.Now()
	defer func() {
		logger.Logger.Debug().Dur("took", time.Since(computeHStart)).Msg("domain: ComputeH")
	}()

	n := len(a)
	padding := make([]fr.Element, int(d.Cardinality)-n)
	a = append(a, padding...)
	b = append(b, padding...)
	c = append(c, padding...)

	d.FFTInverse(a, nil)
	d.FFTInverse(b, nil)
	d.FFTInverse(c, nil)

	d.FFT(a, &d.FrMultiplicativeGen)
	d.FFT(b, &d.FrMultiplicativeGen)
	d.FFT(c, &d.FrMultiplicativeGen)

	var zInv fr.Element
	zInv.Exp(d.FrMultiplicativeGen, new(big.Int).SetUint64(d.Cardinality))
	var one fr.Element
	one.SetOne()
	zInv.Sub(&zInv, &one)
	zInv.Inverse(&zInv)

	parallel.Execute(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i].Mul(&a[i], &b[i]).
				Sub(&a[i], &c[i]).
				Mul(&a[i], &zInv)
		}
	})

	d.FFTInverse(a, &d.FrMultiplicativeGen)
	return a
}
