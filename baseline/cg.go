package baseline

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
	"github.com/notargets/FASPoisson/stencil"
)

// newCG runs unpreconditioned conjugate gradients on -A u = -f; the negated
// 7-point operator is symmetric positive definite.
func newCG(lvl grid.Level, u, f []float64, workers int) func() error {
	var (
		op  = stencil.SevenPoint{Workers: workers}
		r   = grid.NewField(lvl)
		p   = grid.NewField(lvl)
		ap  = grid.NewField(lvl)
		rho float64
	)
	multigrid.Defect(lvl, op, u, f, r)
	floats.Scale(-1, r) // r = -f - (-A u)
	copy(p, r)
	rho = floats.Dot(r, r)

	return func() error {
		if rho == 0 {
			return nil
		}
		op.Apply(lvl, p, ap)
		floats.Scale(-1, ap)
		alpha := rho / floats.Dot(p, ap) // α = ρ / (p · Ap)
		floats.AddScaled(u, alpha, p)    // u = u + α p
		floats.AddScaled(r, -alpha, ap)  // r = r - α Ap

		rhoNext := floats.Dot(r, r)
		beta := rhoNext / rho
		floats.AddScaledTo(p, r, beta, p) // p = r + β p
		rho = rhoNext
		return nil
	}
}
