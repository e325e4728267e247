package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedBlackSplitMerge(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8} {
		lvl := Level{Size: size, H: 1}
		field := make([]float64, lvl.CellCount())
		for i := range field {
			field[i] = float64(i) + 0.5
		}

		rb, err := Split(lvl, field)
		require.NoError(t, err)
		n := lvl.CellCount()
		assert.Equal(t, [3]int{0, (n + 1) / 2, n}, rb.Offsets)
		assert.Len(t, rb.GlobalData, n)

		back := make([]float64, n)
		rb.Gather(back)
		assert.Equal(t, field, back, "size %d", size)

		for idx := range field {
			x, y, z := Coords(size, idx)
			assert.Equal(t, field[idx], rb.Half(ColorOf(x, y, z))[idx/2])
		}
	}
}

// Every half index is owned by exactly one cell of each color on even grids
func TestRedBlackHalvesAreDisjoint(t *testing.T) {
	size := 4
	lvl := Level{Size: size, H: 1}
	owners := map[Color]map[int]int{Red: {}, Black: {}}
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				idx := Index(size, x, y, z)
				owners[ColorOf(x, y, z)][idx/2]++
			}
		}
	}
	n := lvl.CellCount() / 2
	for _, c := range []Color{Red, Black} {
		assert.Len(t, owners[c], n, "color %s", c)
		for half, count := range owners[c] {
			assert.Equal(t, 1, count, "color %s half index %d", c, half)
		}
	}

	rb := NewRedBlack(lvl)
	assert.Len(t, rb.Half(Red), n)
	assert.Len(t, rb.Half(Black), n)
}

func TestSingleCellLevelIsRed(t *testing.T) {
	lvl := Level{Size: 1, H: 2}
	rb, err := Split(lvl, []float64{3})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, rb.Half(Red))
	assert.Empty(t, rb.Half(Black))
	back := make([]float64, 1)
	rb.Gather(back)
	assert.Equal(t, []float64{3}, back)
}

func TestFirstXMatchesColor(t *testing.T) {
	for _, c := range []Color{Red, Black} {
		for z := 0; z < 4; z++ {
			for y := 0; y < 4; y++ {
				x := FirstX(c, y, z)
				assert.Equal(t, c, ColorOf(x, y, z))
				assert.NotEqual(t, c, ColorOf(x+1, y, z))
			}
		}
	}
}

func TestSplitLengthMismatch(t *testing.T) {
	_, err := Split(Level{Size: 2, H: 1}, make([]float64, 7))
	assert.Error(t, err)
}
