package multigrid

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/notargets/FASPoisson/grid"
)

// nucleusSource puts a unit charge at the box center, split evenly over the
// eight cells around it, and returns -4πρ.
func nucleusSource(lvl grid.Level) []float64 {
	var (
		f = grid.NewField(lvl)
		m = lvl.Size / 2
		v = -4 * math.Pi * 0.125 / (lvl.H * lvl.H * lvl.H)
	)
	for z := m - 1; z <= m; z++ {
		for y := m - 1; y <= m; y++ {
			for x := m - 1; x <= m; x++ {
				f[lvl.Index(grid.Coord{X: x, Y: y, Z: z})] = v
			}
		}
	}
	return f
}

// coulombGhost is the exact potential of the unit charge at the box center
func coulombGhost(lvl grid.Level, cell grid.Coord, face grid.Face) float64 {
	var (
		p   = lvl.GhostCenter(cell, face)
		mid = lvl.Extent() / 2
	)
	dx, dy, dz := p[0]-mid, p[1]-mid, p[2]-mid
	return 1 / math.Sqrt(dx*dx+dy*dy+dz*dz)
}

func nucleusProblem(s *Solver, ghost GhostSupplier) (u, f []float64, err error) {
	f, err = s.RightHandSide(nucleusSource(s.Finest()), ghost)
	if err != nil {
		return nil, nil, err
	}
	return grid.NewField(s.Finest()), f, nil
}

// traceHandler records the message and depth of every log record
type traceHandler struct {
	mu     sync.Mutex
	events []string
	depths []int
}

func (h *traceHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *traceHandler) Handle(_ context.Context, r slog.Record) error {
	depth := -1
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "depth" {
			depth = int(a.Value.Int64())
			return false
		}
		return true
	})
	if depth < 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, r.Message)
	h.depths = append(h.depths, depth)
	return nil
}

func (h *traceHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *traceHandler) WithGroup(string) slog.Handler { return h }
