package electrostatics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/FASPoisson/grid"
)

// Reference returns the exact potential of the charges at every cell center
// of lvl. Cells whose center coincides with a charge hold +Inf or -Inf.
func Reference(lvl grid.Level, charges []PointCharge) []float64 {
	var (
		ref = grid.NewField(lvl)
		pcs = PointCharges(charges)
	)
	for idx := range ref {
		ref[idx] = pcs.Potential(lvl.CellCenter(lvl.Coords(idx)))
	}
	return ref
}

// Accuracy compares a computed potential with a reference. RMS and MAD are
// volume weighted, so they approximate the L2 and L1 norms of the error.
type Accuracy struct {
	RMS float64
	MAD float64
	Max float64
}

func (a Accuracy) String() string {
	return fmt.Sprintf("rms=%.4f mad=%.4f max=%.4f", a.RMS, a.MAD, a.Max)
}

// Compare returns the error statistics of u against ref on lvl
func Compare(lvl grid.Level, u, ref []float64) (Accuracy, error) {
	if len(u) != len(ref) || len(u) != lvl.CellCount() {
		return Accuracy{}, fmt.Errorf("field lengths %d and %d do not match %s",
			len(u), len(ref), lvl)
	}
	var (
		diff = make([]float64, len(u))
		dv   = lvl.H * lvl.H * lvl.H
	)
	floats.SubTo(diff, u, ref)
	return Accuracy{
		RMS: floats.Norm(diff, 2) * math.Sqrt(dv),
		MAD: floats.Norm(diff, 1) * dv,
		Max: floats.Norm(diff, math.Inf(1)),
	}, nil
}
