package electrostatics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
)

// GhostModel names a far-field approximation for ghost cells
type GhostModel string

const (
	GhostPoint     GhostModel = "point"     // direct Coulomb sum over the charges
	GhostMultipole GhostModel = "multipole" // expansion up to the octupole
	GhostNone      GhostModel = "none"      // zero potential outside the box
)

// Supplier returns the ghost supplier for model, or nil for GhostNone
func Supplier(model GhostModel, charges []PointCharge) (multigrid.GhostSupplier, error) {
	switch model {
	case GhostPoint:
		return PointCharges(charges), nil
	case GhostMultipole:
		return NewMultipole(charges), nil
	case GhostNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown ghost model %q", model)
	}
}

// PointCharges evaluates the exact Coulomb potential of a set of charges
type PointCharges []PointCharge

// Potential returns Σ q_i / |r - r_i|
func (pcs PointCharges) Potential(r [3]float64) (phi float64) {
	for _, pc := range pcs {
		phi += pc.Charge / distance(r, pc.Position)
	}
	return
}

func (pcs PointCharges) GhostValue(lvl grid.Level, cell grid.Coord, face grid.Face) float64 {
	return pcs.Potential(lvl.GhostCenter(cell, face))
}

// MaxMultipoleOrder is the highest order kept by Multipole (octupole)
const MaxMultipoleOrder = 3

// Multipole is the monopole through octupole moments of a charge
// distribution about Origin
type Multipole struct {
	Origin     [3]float64
	Monopole   float64
	Dipole     *mat.VecDense // Σ q r'
	Quadrupole *mat.SymDense // Σ q (3 r'r'ᵀ - |r'|² I), traceless

	// Σ q (15 r'_i r'_j r'_k - 3 |r'|² (r'_i δ_jk + r'_j δ_ik + r'_k δ_ij))
	Octupole [3][3][3]float64
}

// NewMultipole expands the charges about their center of absolute charge
func NewMultipole(charges []PointCharge) *Multipole {
	m := &Multipole{
		Dipole:     mat.NewVecDense(3, nil),
		Quadrupole: mat.NewSymDense(3, nil),
	}
	var absQ float64
	for _, pc := range charges {
		a := math.Abs(pc.Charge)
		absQ += a
		for d := 0; d < 3; d++ {
			m.Origin[d] += a * pc.Position[d]
		}
	}
	if absQ > 0 {
		for d := 0; d < 3; d++ {
			m.Origin[d] /= absQ
		}
	}

	rel := mat.NewVecDense(3, nil)
	for _, pc := range charges {
		for d := 0; d < 3; d++ {
			rel.SetVec(d, pc.Position[d]-m.Origin[d])
		}
		m.Monopole += pc.Charge
		m.Dipole.AddScaledVec(m.Dipole, pc.Charge, rel)

		r2 := mat.Dot(rel, rel)
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				q := 3 * rel.AtVec(i) * rel.AtVec(j)
				if i == j {
					q -= r2
				}
				m.Quadrupole.SetSym(i, j, m.Quadrupole.At(i, j)+pc.Charge*q)
			}
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					o := 15 * rel.AtVec(i) * rel.AtVec(j) * rel.AtVec(k)
					if j == k {
						o -= 3 * r2 * rel.AtVec(i)
					}
					if i == k {
						o -= 3 * r2 * rel.AtVec(j)
					}
					if i == j {
						o -= 3 * r2 * rel.AtVec(k)
					}
					m.Octupole[i][j][k] += pc.Charge * o
				}
			}
		}
	}
	return m
}

// Potential evaluates the full expansion at r
func (m *Multipole) Potential(r [3]float64) float64 {
	return m.PotentialOrder(r, MaxMultipoleOrder)
}

// PotentialOrder sums the terms up to order (0 monopole ... 3 octupole):
// q/r + p·r̂/r² + ½ r̂ᵀQr̂/r³ + ⅙ O:r̂r̂r̂/r⁴
func (m *Multipole) PotentialOrder(r [3]float64, order int) float64 {
	dir := mat.NewVecDense(3, []float64{
		r[0] - m.Origin[0],
		r[1] - m.Origin[1],
		r[2] - m.Origin[2],
	})
	dist := mat.Norm(dir, 2)
	if dist == 0 {
		return math.Inf(1)
	}
	dir.ScaleVec(1/dist, dir)

	phi := m.Monopole / dist
	if order >= 1 {
		phi += mat.Dot(m.Dipole, dir) / (dist * dist)
	}
	if order >= 2 {
		phi += 0.5 * mat.Inner(dir, m.Quadrupole, dir) / (dist * dist * dist)
	}
	if order >= 3 {
		n := dir.RawVector().Data
		var o float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < 3; k++ {
					o += m.Octupole[i][j][k] * n[i] * n[j] * n[k]
				}
			}
		}
		phi += o / (6 * dist * dist * dist * dist)
	}
	return phi
}

func (m *Multipole) GhostValue(lvl grid.Level, cell grid.Coord, face grid.Face) float64 {
	return m.Potential(lvl.GhostCenter(cell, face))
}

func distance(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
