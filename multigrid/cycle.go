package multigrid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/FASPoisson/grid"
)

// Cycle runs one FAS V-cycle on level depth, updating u in place. f is the
// right-hand side for that level: the boundary-corrected source at depth 0,
// the tau term deeper down.
//
//	smooth u
//	uc0 = R u
//	tau = A_c(uc0) + R(f - A u)
//	uc  = Cycle(depth+1, uc0, tau)
//	u  += P(uc - uc0)
//	smooth u
func (s *Solver) Cycle(depth int, u, f []float64) error {
	if depth < 0 || depth >= len(s.levels) {
		return fmt.Errorf("depth %d outside hierarchy of %d levels", depth, len(s.levels))
	}
	lvl := s.levels[depth]
	if len(u) != lvl.CellCount() || len(f) != lvl.CellCount() {
		return fmt.Errorf("u has %d values and f has %d, %s needs %d",
			len(u), len(f), lvl, lvl.CellCount())
	}

	s.logger.Debug("pre-smooth", "depth", depth)
	if err := s.smooth(depth, u, f); err != nil {
		return err
	}
	if lvl.Size == 1 {
		s.logger.Debug("base case", "depth", depth)
		return nil
	}

	coarse := s.levels[depth+1]
	uc0 := s.transfer.Restrict(lvl, u)

	d := grid.NewField(lvl)
	Defect(lvl, s.op, u, f, d)
	tau := grid.NewField(coarse)
	s.op.Apply(coarse, uc0, tau)
	floats.Add(tau, s.transfer.Restrict(lvl, d))
	if i := grid.FirstNonFinite(tau); i >= 0 {
		return &NumericalDivergenceError{Depth: depth + 1, Field: "tau", Index: i, Value: tau[i]}
	}

	uc := grid.Clone(uc0)
	if err := s.Cycle(depth+1, uc, tau); err != nil {
		return err
	}
	floats.Sub(uc, uc0)
	floats.Add(u, s.transfer.Prolong(coarse, uc))
	s.logger.Debug("correction", "depth", depth)

	s.logger.Debug("post-smooth", "depth", depth)
	return s.smooth(depth, u, f)
}

func (s *Solver) smooth(depth int, u, f []float64) error {
	if err := Smooth(s.levels[depth], s.op, u, f, s.cfg.SmoothingPasses); err != nil {
		return err
	}
	if i := grid.FirstNonFinite(u); i >= 0 {
		return &NumericalDivergenceError{Depth: depth, Field: "u", Index: i, Value: u[i]}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
