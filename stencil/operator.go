package stencil

import (
	"errors"

	"github.com/notargets/FASPoisson/grid"
)

// ErrMehrstellenUnavailable is returned when the fourth-order compact stencil
// is requested. Its coefficients are not part of this package.
var ErrMehrstellenUnavailable = errors.New("mehrstellen discretization is not implemented")

// Operator is a discretization of the Laplacian on one level. Neighbors
// outside the domain contribute zero; far-field effects reach the solver only
// through the right-hand side.
type Operator interface {
	Name() string

	// Diagonal returns the center coefficient of the stencil at lvl
	Diagonal(lvl grid.Level) float64

	// Apply writes A·u into dst
	Apply(lvl grid.Level, u, dst []float64)

	// Relax performs one Gauss-Seidel sweep over the cells of color sweep,
	// reading neighbors from the opposite half of rb and writing in place
	Relax(lvl grid.Level, sweep grid.Color, rb *grid.RedBlack, rhs []float64)
}

// Select returns the discretization for the given flag
func Select(useMehrstellen bool, workers int) (Operator, error) {
	if useMehrstellen {
		return nil, ErrMehrstellenUnavailable
	}
	return SevenPoint{Workers: workers}, nil
}
