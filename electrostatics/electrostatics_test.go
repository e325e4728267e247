package electrostatics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
)

var nucleus = []PointCharge{{Position: [3]float64{1, 1, 1}, Charge: 1}}

func TestSourceTermSplitsVertexChargeOverEightCells(t *testing.T) {
	lvl := grid.Level{Size: 8, H: 0.25}
	f, err := SourceTerm(lvl, nucleus)
	require.NoError(t, err)

	want := -4 * math.Pi * 0.125 / (lvl.H * lvl.H * lvl.H)
	nonZero := 0
	for idx, v := range f {
		c := lvl.Coords(idx)
		center := (c.X == 3 || c.X == 4) && (c.Y == 3 || c.Y == 4) && (c.Z == 3 || c.Z == 4)
		if center {
			assert.InDelta(t, want, v, 1e-9, "cell %v", c)
			nonZero++
		} else {
			assert.Equal(t, 0.0, v, "cell %v", c)
		}
	}
	assert.Equal(t, 8, nonZero)
}

func TestSourceTermConservesCharge(t *testing.T) {
	var (
		lvl     = grid.Level{Size: 16, H: 0.125}
		rng     = rand.New(rand.NewSource(42))
		charges []PointCharge
	)
	for i := 0; i < 20; i++ {
		charges = append(charges, PointCharge{
			Position: [3]float64{rng.Float64() * 2, rng.Float64() * 2, rng.Float64() * 2},
			Charge:   rng.Float64()*2 - 1,
		})
	}
	// corners and faces of the box
	charges = append(charges,
		PointCharge{Position: [3]float64{0, 0, 0}, Charge: 0.7},
		PointCharge{Position: [3]float64{2, 2, 2}, Charge: -0.3},
		PointCharge{Position: [3]float64{2, 1, 0.01}, Charge: 0.4},
	)

	f, err := SourceTerm(lvl, charges)
	require.NoError(t, err)
	deposited := floats.Sum(f) * lvl.H * lvl.H * lvl.H
	assert.InDelta(t, -4*math.Pi*TotalCharge(charges), deposited, 1e-9)
}

func TestSourceTermRejectsChargeOutsideBox(t *testing.T) {
	lvl := grid.Level{Size: 8, H: 0.25}
	tests := []struct {
		name string
		pc   PointCharge
	}{
		{"beyond +x", PointCharge{Position: [3]float64{2.5, 1, 1}, Charge: 1}},
		{"below -z", PointCharge{Position: [3]float64{1, 1, -0.1}, Charge: 1}},
		{"NaN position", PointCharge{Position: [3]float64{math.NaN(), 1, 1}, Charge: 1}},
		{"infinite charge", PointCharge{Position: [3]float64{1, 1, 1}, Charge: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SourceTerm(lvl, []PointCharge{tt.pc})
			assert.Error(t, err)
		})
	}
}

func molecule() []PointCharge {
	return []PointCharge{
		{Position: [3]float64{0.9, 1.0, 1.0}, Charge: 1},
		{Position: [3]float64{1.15, 1.1, 0.9}, Charge: -0.5},
		{Position: [3]float64{1.0, 0.85, 1.1}, Charge: 0.5},
	}
}

func TestMultipoleMoments(t *testing.T) {
	m := NewMultipole(molecule())
	assert.InDelta(t, 1.0, m.Monopole, 1e-15)

	var trace float64
	for i := 0; i < 3; i++ {
		trace += m.Quadrupole.At(i, i)
	}
	assert.InDelta(t, 0, trace, 1e-12)

	single := NewMultipole(nucleus)
	assert.Equal(t, nucleus[0].Position, single.Origin)
	assert.Equal(t, 0.0, mat.Norm(single.Dipole, 2))
	assert.Equal(t, 0.0, mat.Norm(single.Quadrupole, 1))
}

func TestMultipoleApproachesDirectSum(t *testing.T) {
	var (
		charges = molecule()
		m       = NewMultipole(charges)
		direct  = PointCharges(charges)
	)
	far := [3]float64{m.Origin[0] + 30, m.Origin[1] - 20, m.Origin[2] + 40}
	assert.InEpsilon(t, direct.Potential(far), m.Potential(far), 1e-5)

	for _, scale := range []float64{1, 0.5} {
		near := [3]float64{m.Origin[0] + 3*scale, m.Origin[1] - 2*scale, m.Origin[2] + 4*scale}
		exact := direct.Potential(near)
		prev := math.Inf(1)
		for order := 0; order <= MaxMultipoleOrder; order++ {
			e := math.Abs(m.PotentialOrder(near, order) - exact)
			assert.Less(t, e, prev, "order %d at scale %g", order, scale)
			prev = e
		}
		assert.Equal(t, m.PotentialOrder(near, MaxMultipoleOrder), m.Potential(near))
	}
}

func TestOctupoleIsSymmetricAndTraceless(t *testing.T) {
	o := NewMultipole(molecule()).Octupole
	for i := 0; i < 3; i++ {
		var trace float64
		for j := 0; j < 3; j++ {
			trace += o[i][j][j]
			for k := 0; k < 3; k++ {
				assert.InDelta(t, o[i][j][k], o[j][i][k], 1e-14)
				assert.InDelta(t, o[i][j][k], o[i][k][j], 1e-14)
			}
		}
		assert.InDelta(t, 0, trace, 1e-12, "contraction over index %d", i)
	}
	assert.Equal(t, [3][3][3]float64{}, NewMultipole(nucleus).Octupole)
}

func TestSupplier(t *testing.T) {
	g, err := Supplier(GhostPoint, nucleus)
	require.NoError(t, err)
	assert.IsType(t, PointCharges{}, g)

	g, err = Supplier(GhostMultipole, nucleus)
	require.NoError(t, err)
	assert.IsType(t, &Multipole{}, g)

	g, err = Supplier(GhostNone, nucleus)
	require.NoError(t, err)
	assert.Nil(t, g)

	_, err = Supplier("dipole", nucleus)
	assert.Error(t, err)
}

func TestNucleusPotentialAccuracy(t *testing.T) {
	sol, err := Potential(multigrid.DefaultConfig(8, 0.25), nucleus, GhostPoint)
	require.NoError(t, err)
	require.True(t, sol.Result.Converged)

	acc, err := Compare(sol.Level, sol.Potential, Reference(sol.Level, nucleus))
	require.NoError(t, err)
	t.Logf("%d cycles, %s", sol.Result.Cycles, acc)
	assert.Less(t, acc.RMS, 0.10)
	assert.Less(t, acc.MAD, 0.14)
	assert.Less(t, acc.Max, 0.19)
}

func TestGhostModelsAgreeForCenteredCharge(t *testing.T) {
	cfg := multigrid.DefaultConfig(8, 0.25)
	point, err := Potential(cfg, nucleus, GhostPoint)
	require.NoError(t, err)
	expansion, err := Potential(cfg, nucleus, GhostMultipole)
	require.NoError(t, err)
	for i := range point.Potential {
		assert.InDelta(t, point.Potential[i], expansion.Potential[i], 1e-9)
	}

	bare, err := Potential(cfg, nucleus, GhostNone)
	require.NoError(t, err)
	acc, err := Compare(bare.Level, bare.Potential, point.Potential)
	require.NoError(t, err)
	assert.Greater(t, acc.Max, cfg.Tolerance)
}

func TestPotentialErrors(t *testing.T) {
	cfg := multigrid.DefaultConfig(8, 0.25)
	_, err := Potential(cfg, nucleus, "dipole")
	assert.Error(t, err)

	_, err = Potential(cfg, []PointCharge{{Position: [3]float64{3, 1, 1}, Charge: 1}}, GhostPoint)
	assert.Error(t, err)

	cfg.GridSize = 12
	_, err = Potential(cfg, nucleus, GhostPoint)
	var ce *multigrid.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}
