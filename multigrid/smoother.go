package multigrid

import (
	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/stencil"
)

// Smooth runs red-black Gauss-Seidel passes on u in place. Each pass is a red
// sweep followed by a black sweep; the black sweep reads the red values the
// red sweep just wrote.
func Smooth(lvl grid.Level, op stencil.Operator, u, f []float64, passes int) error {
	rb, err := grid.Split(lvl, u)
	if err != nil {
		return err
	}
	for pass := 0; pass < passes; pass++ {
		op.Relax(lvl, grid.Red, rb, f)
		op.Relax(lvl, grid.Black, rb, f)
	}
	rb.Gather(u)
	return nil
}
