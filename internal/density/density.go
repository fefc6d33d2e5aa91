// Package density implements the growable sparsity bitmap (spec C6) that
// drives multi-exponentiation compression: a query's density tracks which
// auxiliary wire positions contribute a nonzero term, so MultiExp can skip
// the rest instead of multiplying by zero scalars.
package density

import "github.com/bits-and-blooms/bitset"

// Density is a bit-set plus a running nonzero count, one per query (A, B,
// L). It is indexed by auxiliary wire position. The invariant
// count == popcount(bits) holds after any sequence of AddElement/Inc.
type Density struct {
	bits  *bitset.BitSet
	count uint
	len   uint
}

// New returns an empty density tracking zero elements.
func New() *Density {
	return &Density{bits: bitset.New(0)}
}

// AddElement extends the density by one zero bit, to be called once per
// auxiliary wire as it is allocated.
func (d *Density) AddElement() {
	d.len++
	d.bits.Set(d.len - 1)
	d.bits.Clear(d.len - 1)
}

// Inc sets bit i to one and increments the nonzero count. Setting an
// already-set bit is idempotent and does not re-increment, matching the
// spec's invariant. Inc panics if i is out of range (i >= len), since that
// indicates a caller referencing a wire never allocated via AddElement.
func (d *Density) Inc(i int) {
	if uint(i) >= d.len {
		panic("density: index out of range")
	}
	if d.bits.Test(uint(i)) {
		return
	}
	d.bits.Set(uint(i))
	d.count++
}

// Count returns the number of set bits.
func (d *Density) Count() int {
	return int(d.count)
}

// Len returns the number of tracked elements.
func (d *Density) Len() int {
	return int(d.len)
}

// Get reports whether bit i is set.
func (d *Density) Get(i int) bool {
	return d.bits.Test(uint(i))
}

// Indices returns the set bit positions in ascending order.
func (d *Density) Indices() []int {
	out := make([]int, 0, d.count)
	for i, e := d.bits.NextSet(0); e; i, e = d.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Full is the FullDensity sentinel: every position is considered nonzero,
// used for the H and L queries which are never sparse.
type fullDensity struct{}

// Full implements the MultiExp density interface by reporting every
// position as set, without materializing a bitmap.
var Full Interface = fullDensity{}

// Interface abstracts over Density and Full so MultiExp can treat a real
// bitmap and the always-true sentinel uniformly.
type Interface interface {
	Get(i int) bool
}

func (fullDensity) Get(i int) bool { return true }

var _ Interface = (*Density)(nil)
