package electrostatics

import (
	"fmt"
	"math"

	"github.com/notargets/FASPoisson/grid"
)

// PointCharge is a charge q at a position inside the simulation box, in the
// same units as the grid spacing
type PointCharge struct {
	Position [3]float64 `yaml:"position"`
	Charge   float64    `yaml:"charge"`
}

func (pc PointCharge) String() string {
	return fmt.Sprintf("%+g@(%g, %g, %g)", pc.Charge,
		pc.Position[0], pc.Position[1], pc.Position[2])
}

// TotalCharge sums the charges
func TotalCharge(charges []PointCharge) (q float64) {
	for _, pc := range charges {
		q += pc.Charge
	}
	return
}

// SourceTerm deposits the charges onto the cells of lvl with cloud-in-cell
// weights and returns -4πρ. A charge sitting on a cell vertex is shared
// equally by the eight cells around it. Weight that would land outside the
// box is moved to the nearest boundary cell, so the deposited charge always
// equals the total charge.
func SourceTerm(lvl grid.Level, charges []PointCharge) ([]float64, error) {
	var (
		f     = grid.NewField(lvl)
		scale = -4 * math.Pi / (lvl.H * lvl.H * lvl.H)
	)
	for n, pc := range charges {
		if err := checkInside(lvl, pc); err != nil {
			return nil, fmt.Errorf("charge %d: %w", n, err)
		}
		var (
			lo [3]int
			w  [3][2]float64
		)
		for d := 0; d < 3; d++ {
			s := pc.Position[d]/lvl.H - 0.5
			i0 := math.Floor(s)
			frac := s - i0
			lo[d] = int(i0)
			w[d] = [2]float64{1 - frac, frac}
		}
		for dz := 0; dz < 2; dz++ {
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					weight := w[0][dx] * w[1][dy] * w[2][dz]
					if weight == 0 {
						continue
					}
					c := grid.Coord{
						X: clamp(lo[0]+dx, lvl.Size),
						Y: clamp(lo[1]+dy, lvl.Size),
						Z: clamp(lo[2]+dz, lvl.Size),
					}
					f[lvl.Index(c)] += scale * weight * pc.Charge
				}
			}
		}
	}
	return f, nil
}

func checkInside(lvl grid.Level, pc PointCharge) error {
	if math.IsNaN(pc.Charge) || math.IsInf(pc.Charge, 0) {
		return fmt.Errorf("non-finite charge %v", pc.Charge)
	}
	ext := lvl.Extent()
	for d, x := range pc.Position {
		if math.IsNaN(x) || x < 0 || x > ext {
			return fmt.Errorf("coordinate %d = %v outside box [0, %g]", d, x, ext)
		}
	}
	return nil
}

func clamp(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
