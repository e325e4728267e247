// Package baseline holds single-grid iterative solvers for the same 7-point
// system the multigrid solver handles. They exist for cross-checking results
// and comparing convergence; every method is scored with
// multigrid.ResidualNorm so the numbers line up.
package baseline

import (
	"fmt"
	"strings"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
)

type Method string

const (
	Jacobi            Method = "jacobi"
	GaussSeidel       Method = "gauss-seidel"
	ConjugateGradient Method = "cg"
	PreconditionedCG  Method = "pcg"
)

var Methods = []Method{Jacobi, GaussSeidel, ConjugateGradient, PreconditionedCG}

// ParseMethod accepts a method name in any case
func ParseMethod(name string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown baseline method %q", name)
}

// Settings controls an iterative run
type Settings struct {
	MaxIterations int
	Tolerance     float64 // Stop once the residual 2-norm is below this; 0 runs every iteration
	Workers       int
}

// Stats reports the outcome of a run
type Stats struct {
	Method       Method
	Iterations   int
	InitialNorm  float64
	ResidualNorm float64
	History      []float64
	Converged    bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%-12s %4d iterations, residual %.3e -> %.3e",
		s.Method, s.Iterations, s.InitialNorm, s.ResidualNorm)
}

// Run solves A u = f on lvl in place with the named method
func Run(method Method, lvl grid.Level, u, f []float64, settings Settings) (Stats, error) {
	if len(u) != lvl.CellCount() || len(f) != lvl.CellCount() {
		return Stats{}, fmt.Errorf("u has %d values and f has %d, %s needs %d",
			len(u), len(f), lvl, lvl.CellCount())
	}
	if settings.MaxIterations < 1 {
		return Stats{}, fmt.Errorf("max iterations must be at least 1, got %d", settings.MaxIterations)
	}
	var step func() error
	switch method {
	case Jacobi:
		step = newJacobi(lvl, u, f, settings.Workers)
	case GaussSeidel:
		step = newGaussSeidel(lvl, u, f)
	case ConjugateGradient:
		step = newCG(lvl, u, f, settings.Workers)
	case PreconditionedCG:
		step = newPCG(lvl, u, f, settings.Workers)
	default:
		return Stats{}, fmt.Errorf("unknown baseline method %q", method)
	}

	stats := Stats{Method: method, InitialNorm: multigrid.ResidualNorm(lvl, u, f)}
	stats.ResidualNorm = stats.InitialNorm
	for stats.Iterations < settings.MaxIterations {
		if err := step(); err != nil {
			return stats, fmt.Errorf("%s iteration %d: %w", method, stats.Iterations+1, err)
		}
		stats.Iterations++
		stats.ResidualNorm = multigrid.ResidualNorm(lvl, u, f)
		stats.History = append(stats.History, stats.ResidualNorm)
		if settings.Tolerance > 0 && stats.ResidualNorm < settings.Tolerance {
			stats.Converged = true
			break
		}
	}
	if i := grid.FirstNonFinite(u); i >= 0 {
		return stats, &multigrid.NumericalDivergenceError{Field: "u", Index: i, Value: u[i]}
	}
	return stats, nil
}
