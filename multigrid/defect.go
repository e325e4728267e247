package multigrid

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/stencil"
)

// Defect writes f - A(u) into dst
func Defect(lvl grid.Level, op stencil.Operator, u, f, dst []float64) {
	op.Apply(lvl, u, dst)
	floats.SubTo(dst, f, dst)
}

// ResidualNorm returns ||f - A(u)||₂ for the 7-point operator. The sum of
// squares is carried in float64 regardless of how the field was produced, so
// solvers outside this package can be scored on the same footing.
func ResidualNorm(lvl grid.Level, u, f []float64) float64 {
	d := grid.NewField(lvl)
	Defect(lvl, stencil.SevenPoint{}, u, f, d)
	return floats.Norm(d, 2)
}
