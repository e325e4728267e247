package multigrid

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(64, 1.0/32)
	assert.Equal(t, 36, cfg.MaxCycles)
	assert.Equal(t, DefaultSmoothingPasses, cfg.SmoothingPasses)
	assert.Equal(t, 1e-3, cfg.Tolerance)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
		reason string
	}{
		{"size not power of two", func(c *Config) { c.GridSize = 6 }, "GridSize", "must be a power of two"},
		{"size too small", func(c *Config) { c.GridSize = 1 }, "GridSize", "must be at least 2"},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }, "Spacing", "must be greater than 0"},
		{"infinite spacing", func(c *Config) { c.Spacing = math.Inf(1) }, "Spacing", "must be finite"},
		{"no cycles", func(c *Config) { c.MaxCycles = 0 }, "MaxCycles", "must be at least 1"},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }, "Tolerance", "must be at least 0"},
		{"no smoothing", func(c *Config) { c.SmoothingPasses = 0 }, "SmoothingPasses", "must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(8, 0.25)
			tt.mutate(&cfg)

			_, err := NewSolver(cfg)
			require.Error(t, err)
			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce), "got %T", err)
			assert.Equal(t, tt.field, ce.Field)
			assert.Equal(t, tt.reason, ce.Reason)
		})
	}
}
