package electrostatics

import (
	"fmt"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
)

// Solution is the potential on the finest level together with the solve
// statistics
type Solution struct {
	Level     grid.Level
	Potential []float64
	Result    multigrid.Result
}

// Potential solves ∇²φ = -4πρ for the charges on the grid described by cfg,
// starting from φ = 0. The ghost model supplies the potential outside the
// box.
func Potential(cfg multigrid.Config, charges []PointCharge, model GhostModel) (Solution, error) {
	solver, err := multigrid.NewSolver(cfg)
	if err != nil {
		return Solution{}, err
	}
	lvl := solver.Finest()
	source, err := SourceTerm(lvl, charges)
	if err != nil {
		return Solution{}, err
	}
	ghost, err := Supplier(model, charges)
	if err != nil {
		return Solution{}, err
	}
	f, err := solver.RightHandSide(source, ghost)
	if err != nil {
		return Solution{}, fmt.Errorf("building right-hand side: %w", err)
	}
	u := grid.NewField(lvl)
	res, err := solver.Solve(u, f)
	if err != nil {
		return Solution{}, err
	}
	return Solution{Level: lvl, Potential: u, Result: res}, nil
}
