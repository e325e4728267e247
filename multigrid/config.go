package multigrid

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/notargets/FASPoisson/grid"
)

// DefaultSmoothingPasses is the number of red-black passes before and after
// each coarse-grid correction
const DefaultSmoothingPasses = 4

// Config holds the settings for a Solver
type Config struct {
	GridSize        int     `validate:"gte=2,pow2"` // Cells per side N, a power of two
	Spacing         float64 `validate:"gt=0,finite"` // Finest cell spacing h0
	MaxCycles       int     `validate:"gte=1"`      // Outer V-cycle budget
	Tolerance       float64 `validate:"gte=0"`      // Residual 2-norm target, 0 runs every cycle
	SmoothingPasses int     `validate:"gte=1"`      // Passes per level, before and after recursion
	UseMehrstellen  bool    // Selects the compact fourth-order stencil
	Workers         int     // Goroutines per sweep, 0 uses every CPU, < 0 serial

	Logger *slog.Logger `validate:"-"`
}

// DefaultConfig returns four smoothing passes and a 1e-3 residual target
// within log2(N)² cycles, using every CPU.
func DefaultConfig(n int, h0 float64) Config {
	stages := 0
	for s := n; s > 1; s >>= 1 {
		stages++
	}
	maxCycles := stages * stages
	if maxCycles < 1 {
		maxCycles = 1
	}
	return Config{
		GridSize:        n,
		Spacing:         h0,
		MaxCycles:       maxCycles,
		Tolerance:       1e-3,
		SmoothingPasses: DefaultSmoothingPasses,
	}
}

// configValidate is the validator instance for solver settings.
// Initialized in init() with the power-of-two rule.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("pow2", validatePowerOfTwo)
	_ = configValidate.RegisterValidation("finite", validateFinite)
}

func validatePowerOfTwo(fl validator.FieldLevel) bool {
	return grid.IsPowerOfTwo(int(fl.Field().Int()))
}

func validateFinite(fl validator.FieldLevel) bool {
	return isFinite(fl.Field().Float())
}

// Validate checks every field and returns a *ConfigurationError for the
// first one that fails
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ConfigurationError{
				Field:  fe.Field(),
				Value:  fe.Value(),
				Reason: describeRule(fe.Tag(), fe.Param()),
				Err:    err,
			}
		}
		return &ConfigurationError{Field: "Config", Value: c, Reason: err.Error(), Err: err}
	}
	return nil
}

func describeRule(tag, param string) string {
	switch tag {
	case "pow2":
		return "must be a power of two"
	case "finite":
		return "must be finite"
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "gte":
		return fmt.Sprintf("must be at least %s", param)
	default:
		return fmt.Sprintf("failed rule %q", tag)
	}
}
