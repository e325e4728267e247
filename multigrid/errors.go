package multigrid

import (
	"fmt"
)

// ConfigurationError reports a solver setting that cannot be used. It is
// returned by NewSolver before any work is done.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
	Err    error // Underlying cause, if any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("multigrid: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NumericalDivergenceError reports a NaN or infinite value found in a field.
// Depth is the level holding the field; Field is one of "u", "f", "tau" or
// "residual".
type NumericalDivergenceError struct {
	Depth int
	Field string
	Index int
	Value float64
}

func (e *NumericalDivergenceError) Error() string {
	return fmt.Sprintf("multigrid: non-finite %s[%d] = %v at depth %d",
		e.Field, e.Index, e.Value, e.Depth)
}
