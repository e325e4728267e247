package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/FASPoisson/baseline"
	"github.com/notargets/FASPoisson/config"
	"github.com/notargets/FASPoisson/electrostatics"
	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
)

type runFlags struct {
	configPath string
	gridSize   int
	spacing    float64
	maxCycles  int
	tolerance  float64
	passes     int
	workers    int
	ghost      string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags runFlags
	root := &cobra.Command{
		Use:   "poisson",
		Short: "Solve the 3D Poisson equation for point charges with FAS multigrid",
		Long: `poisson deposits point charges on a cubic grid and solves
∇²φ = -4πρ with full approximation scheme V-cycles. The potential outside
the box comes from a ghost model: the exact point-charge sum, a multipole
expansion, or zero.`,
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML run file")
	pf.IntVarP(&flags.gridSize, "grid-size", "n", 0, "cells per side, a power of two")
	pf.Float64Var(&flags.spacing, "spacing", 0, "finest cell spacing")
	pf.IntVar(&flags.maxCycles, "max-cycles", 0, "V-cycle budget (0 uses log2(N)²)")
	pf.Float64Var(&flags.tolerance, "tolerance", 0, "residual 2-norm target")
	pf.IntVar(&flags.passes, "passes", 0, "red-black passes per level")
	pf.IntVarP(&flags.workers, "workers", "w", 0, "goroutines per sweep (0 uses every CPU)")
	pf.StringVar(&flags.ghost, "ghost", "", "ghost model: point, multipole or none")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(newSolveCmd(&flags), newCompareCmd(&flags))
	return root
}

// load reads the run file and applies every flag the user set
func (rf *runFlags) load(cmd *cobra.Command) (config.File, *slog.Logger, error) {
	cfg, err := config.Load(rf.configPath)
	if err != nil {
		return cfg, nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("grid-size") {
		cfg.Grid.Size = rf.gridSize
	}
	if fs.Changed("spacing") {
		cfg.Grid.Spacing = rf.spacing
	}
	if fs.Changed("max-cycles") {
		cfg.Solver.MaxCycles = rf.maxCycles
	}
	if fs.Changed("tolerance") {
		cfg.Solver.Tolerance = rf.tolerance
	}
	if fs.Changed("passes") {
		cfg.Solver.SmoothingPasses = rf.passes
	}
	if fs.Changed("workers") {
		cfg.Solver.Workers = rf.workers
	}
	if fs.Changed("ghost") {
		cfg.GhostModel = rf.ghost
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = rf.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	return cfg, logger, nil
}

func newSolveCmd(flags *runFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve for the potential and report accuracy against the exact 1/r sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			start := time.Now()
			sol, err := electrostatics.Potential(cfg.MultigridConfig(logger), cfg.Charges, cfg.Ghost())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %d charges, ghost model %s\n", sol.Level, len(cfg.Charges), cfg.GhostModel)
			fmt.Fprintf(out, "cycles %d, residual %.3e -> %.3e, converged %v, %v\n",
				sol.Result.Cycles, sol.Result.InitialNorm, sol.Result.ResidualNorm,
				sol.Result.Converged, elapsed.Round(time.Microsecond))
			acc, err := electrostatics.Compare(sol.Level, sol.Potential,
				electrostatics.Reference(sol.Level, cfg.Charges))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "accuracy vs point-charge sum: %s\n", acc)

			if output != "" {
				if err := writePotential(output, sol.Level, sol.Potential); err != nil {
					return err
				}
				logger.Info("wrote potential", "path", output, "cells", len(sol.Potential))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write x y z phi rows to this file")
	return cmd
}

func newCompareCmd(flags *runFlags) *cobra.Command {
	var iterations int
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare multigrid with Jacobi, Gauss-Seidel, CG and preconditioned CG on the same system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			mgCfg := cfg.MultigridConfig(logger)
			solver, err := multigrid.NewSolver(mgCfg)
			if err != nil {
				return err
			}
			lvl := solver.Finest()
			source, err := electrostatics.SourceTerm(lvl, cfg.Charges)
			if err != nil {
				return err
			}
			ghost, err := electrostatics.Supplier(cfg.Ghost(), cfg.Charges)
			if err != nil {
				return err
			}
			f, err := solver.RightHandSide(source, ghost)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, %d charges, ghost model %s, %s stencil\n",
				lvl, len(cfg.Charges), cfg.GhostModel, solver.Operator().Name())
			fmt.Fprintf(out, "%-12s %10s %12s %12s\n", "method", "iterations", "residual", "time")

			u := grid.NewField(lvl)
			start := time.Now()
			res, err := solver.Solve(u, f)
			if err != nil {
				return err
			}
			printRow(out, "multigrid", res.Cycles, res.ResidualNorm, time.Since(start))

			for _, m := range baseline.Methods {
				u := grid.NewField(lvl)
				start := time.Now()
				stats, err := baseline.Run(m, lvl, u, f, baseline.Settings{
					MaxIterations: iterations,
					Tolerance:     mgCfg.Tolerance,
					Workers:       mgCfg.Workers,
				})
				if err != nil {
					return err
				}
				printRow(out, string(m), stats.Iterations, stats.ResidualNorm, time.Since(start))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", 100, "iteration budget for each baseline method")
	return cmd
}

func printRow(w io.Writer, name string, iterations int, residual float64, elapsed time.Duration) {
	fmt.Fprintf(w, "%-12s %10d %12.3e %12v\n", name, iterations, residual, elapsed.Round(time.Microsecond))
}

func writePotential(path string, lvl grid.Level, u []float64) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer fh.Close()
	for idx, phi := range u {
		p := lvl.CellCenter(lvl.Coords(idx))
		if _, err := fmt.Fprintf(fh, "%g %g %g %.10g\n", p[0], p[1], p[2], phi); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return fh.Close()
}
