// Package config loads run files for the poisson command. A run file names
// the grid, the solver settings, the charges and the far-field model.
//
// Example:
//
//	grid:
//	  size: 16
//	  spacing: 0.125
//	solver:
//	  tolerance: 1.0e-6
//	  smoothing_passes: 4
//	ghost_model: multipole
//	charges:
//	  - position: [1, 1, 1]
//	    charge: 1
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/notargets/FASPoisson/electrostatics"
	"github.com/notargets/FASPoisson/multigrid"
)

// File is the top-level run file
type File struct {
	Grid       GridConfig                   `yaml:"grid"`
	Solver     SolverConfig                 `yaml:"solver"`
	Charges    []electrostatics.PointCharge `yaml:"charges" validate:"min=1"`
	GhostModel string                       `yaml:"ghost_model" validate:"oneof=point multipole none"`
	LogLevel   string                       `yaml:"log_level" validate:"oneof=debug info warn error"`
}

type GridConfig struct {
	Size    int     `yaml:"size" validate:"gte=2"`
	Spacing float64 `yaml:"spacing" validate:"gt=0"`
}

type SolverConfig struct {
	MaxCycles       int     `yaml:"max_cycles" validate:"gte=0"` // 0 picks log2(N)²
	Tolerance       float64 `yaml:"tolerance" validate:"gte=0"`
	SmoothingPasses int     `yaml:"smoothing_passes" validate:"gte=1"`
	UseMehrstellen  bool    `yaml:"use_mehrstellen"`
	Workers         int     `yaml:"workers"`
}

// Default is a unit charge in the middle of an 8³ box of side 2
func Default() File {
	d := multigrid.DefaultConfig(8, 0.25)
	return File{
		Grid: GridConfig{Size: d.GridSize, Spacing: d.Spacing},
		Solver: SolverConfig{
			Tolerance:       d.Tolerance,
			SmoothingPasses: d.SmoothingPasses,
		},
		Charges: []electrostatics.PointCharge{
			{Position: [3]float64{1, 1, 1}, Charge: 1},
		},
		GhostModel: string(electrostatics.GhostPoint),
		LogLevel:   "info",
	}
}

var fileValidate = validator.New()

// Load reads a run file on top of the defaults, then applies environment
// overrides. An empty path returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *File) error {
	if v := os.Getenv("FASPOISSON_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("FASPOISSON_GRID_SIZE"); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("FASPOISSON_GRID_SIZE=%q is not an integer: %w", v, err)
		}
		cfg.Grid.Size = i
	}
	return nil
}

// Validate checks field rules, then the solver settings derived from them
func (f File) Validate() error {
	if err := fileValidate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Param() != "" {
				return fmt.Errorf("config %s: value %v fails %s=%s", fe.Namespace(), fe.Value(), fe.Tag(), fe.Param())
			}
			return fmt.Errorf("config %s: value %v fails %s", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return f.MultigridConfig(nil).Validate()
}

// MultigridConfig converts the file into solver settings
func (f File) MultigridConfig(logger *slog.Logger) multigrid.Config {
	c := multigrid.DefaultConfig(f.Grid.Size, f.Grid.Spacing)
	if f.Solver.MaxCycles > 0 {
		c.MaxCycles = f.Solver.MaxCycles
	}
	c.Tolerance = f.Solver.Tolerance
	c.SmoothingPasses = f.Solver.SmoothingPasses
	c.UseMehrstellen = f.Solver.UseMehrstellen
	c.Workers = f.Solver.Workers
	c.Logger = logger
	return c
}

func (f File) Ghost() electrostatics.GhostModel {
	return electrostatics.GhostModel(f.GhostModel)
}

// Level maps LogLevel onto slog
func (f File) Level() slog.Level {
	switch f.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
