package multigrid

import (
	"github.com/notargets/FASPoisson/grid"
)

// GhostSupplier approximates the potential of the cell across a boundary
// face, produced by charge outside the simulated box. It must be a
// deterministic function of position and the charge model.
type GhostSupplier interface {
	GhostValue(lvl grid.Level, cell grid.Coord, face grid.Face) float64
}

// GhostFunc adapts a plain function to GhostSupplier
type GhostFunc func(lvl grid.Level, cell grid.Coord, face grid.Face) float64

func (g GhostFunc) GhostValue(lvl grid.Level, cell grid.Coord, face grid.Face) float64 {
	return g(lvl, cell, face)
}

// BoundaryCorrection evaluates the ghost supplier once per boundary face and
// returns, for every cell, the ghost terms the 7-point stencil leaves out:
// Σ_{outside faces} ghost / h². Subtracting it from the right-hand side moves
// the far field into f.
func BoundaryCorrection(fc *grid.FaceConnector, ghost GhostSupplier) []float64 {
	var (
		lvl   = fc.Level
		out   = grid.NewField(lvl)
		invH2 = 1 / (lvl.H * lvl.H)
	)
	for _, bf := range fc.All() {
		out[bf.Index] += invH2 * ghost.GhostValue(lvl, bf.Cell, bf.Face)
	}
	return out
}
