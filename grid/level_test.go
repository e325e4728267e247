package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHierarchy(t *testing.T) {
	levels, err := NewHierarchy(8, 0.25)
	require.NoError(t, err)
	require.Len(t, levels, 4)

	expectedSizes := []int{8, 4, 2, 1}
	expectedH := []float64{0.25, 0.5, 1, 2}
	for k, lvl := range levels {
		assert.Equal(t, k, lvl.Depth)
		assert.Equal(t, expectedSizes[k], lvl.Size)
		assert.InDelta(t, expectedH[k], lvl.H, 1e-15)
		// The physical extent is the same on every level
		assert.InDelta(t, 2.0, lvl.Extent(), 1e-15)
	}
	assert.Equal(t, levels[1], levels[0].Coarser())
}

func TestNewHierarchyRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		n    int
		h    float64
	}{
		{"zero size", 0, 1},
		{"single cell", 1, 1},
		{"not power of two", 12, 1},
		{"negative size", -4, 1},
		{"zero spacing", 8, 0},
		{"negative spacing", 8, -0.5},
		{"NaN spacing", 8, math.NaN()},
		{"infinite spacing", 8, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHierarchy(tt.n, tt.h)
			assert.Error(t, err)
		})
	}
}

func TestIndexRoundTrip(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8} {
		n := size * size * size
		seen := make(map[int]bool, n)
		for z := 0; z < size; z++ {
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					idx := Index(size, x, y, z)
					require.True(t, idx >= 0 && idx < n, "index %d out of range", idx)
					require.False(t, seen[idx], "index %d produced twice", idx)
					seen[idx] = true
					gx, gy, gz := Coords(size, idx)
					require.Equal(t, [3]int{x, y, z}, [3]int{gx, gy, gz})
				}
			}
		}
		assert.Len(t, seen, n)
	}
	assert.Equal(t, 3*64+2*8+1, Index(8, 1, 2, 3))
}

func TestGhostCenter(t *testing.T) {
	lvl := Level{Size: 4, H: 0.5}
	c := Coord{X: 0, Y: 3, Z: 1}
	assert.False(t, lvl.InBounds(XMinus.Neighbor(c)))
	assert.False(t, lvl.InBounds(YPlus.Neighbor(c)))
	assert.True(t, lvl.InBounds(ZPlus.Neighbor(c)))

	assert.Equal(t, [3]float64{-0.25, 1.75, 0.75}, lvl.GhostCenter(c, XMinus))
	assert.Equal(t, [3]float64{0.25, 2.25, 0.75}, lvl.GhostCenter(c, YPlus))
}

func TestFaceGeometry(t *testing.T) {
	for _, f := range Faces {
		assert.Equal(t, f, f.Opposite().Opposite())
		assert.Equal(t, f.Axis(), f.Opposite().Axis())
		assert.Equal(t, -f.Shift(), f.Opposite().Shift())
		c := Coord{X: 2, Y: 2, Z: 2}
		assert.Equal(t, c, f.Opposite().Neighbor(f.Neighbor(c)), "face %s", f)
	}
}
