package baseline

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
	"github.com/notargets/FASPoisson/stencil"
)

// newJacobi updates every cell from the previous iterate:
// u += (f - A u) / diag
func newJacobi(lvl grid.Level, u, f []float64, workers int) func() error {
	var (
		op    = stencil.SevenPoint{Workers: workers}
		d     = grid.NewField(lvl)
		scale = 1 / op.Diagonal(lvl)
	)
	return func() error {
		multigrid.Defect(lvl, op, u, f, d)
		floats.AddScaled(u, scale, d)
		return nil
	}
}

// newGaussSeidel sweeps the cells in storage order, each update seeing the
// ones before it
func newGaussSeidel(lvl grid.Level, u, f []float64) func() error {
	var (
		n  = lvl.Size
		h2 = lvl.H * lvl.H
	)
	return func() error {
		idx := 0
		for z := 0; z < n; z++ {
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					var sum float64
					c := grid.Coord{X: x, Y: y, Z: z}
					for _, face := range grid.Faces {
						if nb := face.Neighbor(c); lvl.InBounds(nb) {
							sum += u[lvl.Index(nb)]
						}
					}
					u[idx] = (sum - h2*f[idx]) / 6
					idx++
				}
			}
		}
		return nil
	}
}
