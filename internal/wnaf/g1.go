package wnaf

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// G1Table is a windowed-NAF table over the G1 base point.
type G1Table struct {
	t *Table[bn254.G1Jac, *bn254.G1Jac]
}

// BuildG1 builds a table for base g1, sized for nbScalars expected queries.
func BuildG1(base bn254.G1Affine, nbScalars int) *G1Table {
	var jac bn254.G1Jac
	jac.FromAffine(&base)
	return &G1Table{t: Build[bn254.G1Jac, *bn254.G1Jac](jac, nbScalars)}
}

// Width reports the table's window size.
func (g *G1Table) Width() int { return g.t.Width() }

// Scalar returns repr·base in Jacobian coordinates.
func (g *G1Table) Scalar(repr *big.Int) bn254.G1Jac {
	return g.t.Scalar(repr)
}
