package multigrid

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/stencil"
	"github.com/notargets/FASPoisson/utils"
)

// Solver runs FAS V-cycles over a fixed level hierarchy. Level 0 is the
// finest grid; every deeper level halves the cell count per side down to a
// single cell.
type Solver struct {
	cfg      Config
	levels   []grid.Level
	op       stencil.Operator
	transfer Transfer
	faces    *grid.FaceConnector
	logger   *slog.Logger
}

// Result summarizes a call to Solve
type Result struct {
	Cycles       int       // V-cycles run
	InitialNorm  float64   // Residual 2-norm before the first cycle
	ResidualNorm float64   // Residual 2-norm after the last cycle
	History      []float64 // Residual 2-norm after each cycle
	Converged    bool      // ResidualNorm fell below Tolerance
}

// NewSolver validates cfg and builds the level hierarchy. All configuration
// problems are reported here as *ConfigurationError.
func NewSolver(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	levels, err := grid.NewHierarchy(cfg.GridSize, cfg.Spacing)
	if err != nil {
		return nil, &ConfigurationError{Field: "GridSize", Value: cfg.GridSize,
			Reason: err.Error(), Err: err}
	}
	workers := utils.Workers(cfg.Workers)
	op, err := stencil.Select(cfg.UseMehrstellen, workers)
	if err != nil {
		return nil, &ConfigurationError{Field: "UseMehrstellen", Value: cfg.UseMehrstellen,
			Reason: "only the 7-point stencil is available", Err: err}
	}
	faces, err := grid.NewFaceConnector(levels[0])
	if err != nil {
		return nil, err
	}
	if err = faces.Verify(); err != nil {
		return nil, fmt.Errorf("boundary faces of %s: %w", levels[0], err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Solver{
		cfg:      cfg,
		levels:   levels,
		op:       op,
		transfer: Transfer{Workers: workers},
		faces:    faces,
		logger:   logger,
	}, nil
}

func (s *Solver) Levels() []grid.Level { return s.levels }

func (s *Solver) Config() Config { return s.cfg }

func (s *Solver) Operator() stencil.Operator { return s.op }

// Finest returns level 0
func (s *Solver) Finest() grid.Level { return s.levels[0] }

// RightHandSide builds the finest-level f from a source field and the ghost
// supplier. The boundary correction is folded in here, once; coarser levels
// never see ghost values. A nil ghost leaves the source unchanged, which is
// the same as zero potential outside the box.
func (s *Solver) RightHandSide(source []float64, ghost GhostSupplier) ([]float64, error) {
	lvl := s.levels[0]
	if len(source) != lvl.CellCount() {
		return nil, fmt.Errorf("source has %d values, %s needs %d",
			len(source), lvl, lvl.CellCount())
	}
	f := grid.Clone(source)
	if ghost != nil {
		floats.Sub(f, BoundaryCorrection(s.faces, ghost))
	}
	if i := grid.FirstNonFinite(f); i >= 0 {
		return nil, &NumericalDivergenceError{Depth: 0, Field: "f", Index: i, Value: f[i]}
	}
	return f, nil
}

// Solve runs V-cycles on u in place until the residual 2-norm drops below
// Tolerance or MaxCycles is used up. A Tolerance of zero runs every cycle.
// Reaching MaxCycles is not an error; check Result.Converged.
func (s *Solver) Solve(u, f []float64) (Result, error) {
	var (
		res Result
		lvl = s.levels[0]
	)
	if len(u) != lvl.CellCount() || len(f) != lvl.CellCount() {
		return res, fmt.Errorf("u has %d values and f has %d, %s needs %d",
			len(u), len(f), lvl, lvl.CellCount())
	}
	if i := grid.FirstNonFinite(f); i >= 0 {
		return res, &NumericalDivergenceError{Depth: 0, Field: "f", Index: i, Value: f[i]}
	}
	if i := grid.FirstNonFinite(u); i >= 0 {
		return res, &NumericalDivergenceError{Depth: 0, Field: "u", Index: i, Value: u[i]}
	}

	start := time.Now()
	res.InitialNorm = ResidualNorm(lvl, u, f)
	res.ResidualNorm = res.InitialNorm
	res.History = make([]float64, 0, s.cfg.MaxCycles)
	s.logger.Info("starting solve", "grid", lvl.String(), "levels", len(s.levels),
		"stencil", s.op.Name(), "residual", res.InitialNorm)

	for res.Cycles < s.cfg.MaxCycles {
		if err := s.Cycle(0, u, f); err != nil {
			return res, fmt.Errorf("v-cycle %d: %w", res.Cycles+1, err)
		}
		res.Cycles++
		norm := ResidualNorm(lvl, u, f)
		if !isFinite(norm) {
			return res, &NumericalDivergenceError{Depth: 0, Field: "residual", Index: -1, Value: norm}
		}
		res.ResidualNorm = norm
		res.History = append(res.History, norm)
		s.logger.Debug("v-cycle complete", "cycle", res.Cycles, "residual", norm)
		if s.cfg.Tolerance > 0 && norm < s.cfg.Tolerance {
			res.Converged = true
			break
		}
	}
	s.logger.Info("solve finished", "cycles", res.Cycles, "residual", res.ResidualNorm,
		"converged", res.Converged, "elapsed", time.Since(start))
	return res, nil
}

// IsDivergence reports whether err carries a *NumericalDivergenceError
func IsDivergence(err error) bool {
	var nde *NumericalDivergenceError
	return errors.As(err, &nde)
}
