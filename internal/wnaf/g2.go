package wnaf

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G2Table is a windowed-NAF table over the G2 base point.
type G2Table struct {
	t *Table[bn254.G2Jac, *bn254.G2Jac]
}

// BuildG2 builds a table for base g2, sized for nbScalars expected queries.
func BuildG2(base bn254.G2Affine, nbScalars int) *G2Table {
	var jac bn254.G2Jac
	jac.FromAffine(&base)
	return &G2Table{t: Build[bn254.G2Jac, *bn254.G2Jac](jac, nbScalars)}
}

// Width reports the table's window size.
func (g *G2Table) Width() int { return g.t.Width() }

// Scalar returns repr·base in Jacobian coordinates.
func (g *G2Table) Scalar(repr *big.Int) bn254.G2Jac {
	return g.t.Scalar(repr)
}
