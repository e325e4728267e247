package grid

import (
	"fmt"
)

// Color is the red-black sweep class of a cell
type Color uint8

const (
	Red   Color = iota // parity 0
	Black              // parity 1
)

// ColorOf returns (x ^ y ^ z) & 1
func ColorOf(x, y, z int) Color {
	return Color((x ^ y ^ z) & 1)
}

// Opposite returns the other color
func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// FirstX returns the smallest x of the given color in row (y, z)
func FirstX(c Color, y, z int) int {
	return (int(c) ^ y ^ z) & 1
}

// RedBlack holds a field split by color.
// Layout: [Red Data][Black Data], each half indexed by linearAddress/2.
// Cells of one color never neighbor each other, so a sweep over one half
// only reads the other.
type RedBlack struct {
	// Contiguous storage for both halves
	GlobalData []float64

	// Offsets[c] is where color c starts, Offsets[2] is the total length
	Offsets [3]int

	Level Level
}

// NewRedBlack allocates zeroed halves for a level. An odd cell count only
// happens on the 1x1x1 level, whose single cell is red.
func NewRedBlack(lvl Level) *RedBlack {
	n := lvl.CellCount()
	redLen := (n + 1) / 2
	return &RedBlack{
		GlobalData: make([]float64, n),
		Offsets:    [3]int{0, redLen, n},
		Level:      lvl,
	}
}

// Split scatters a row-major field into its red and black halves
func Split(lvl Level, field []float64) (*RedBlack, error) {
	if len(field) != lvl.CellCount() {
		return nil, fmt.Errorf("field length %d does not match %s", len(field), lvl)
	}
	rb := NewRedBlack(lvl)
	rb.Scatter(field)
	return rb, nil
}

// Scatter copies a row-major field into the halves
func (rb *RedBlack) Scatter(field []float64) {
	var (
		size  = rb.Level.Size
		red   = rb.Half(Red)
		black = rb.Half(Black)
	)
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				idx := Index(size, x, y, z)
				if ColorOf(x, y, z) == Red {
					red[idx/2] = field[idx]
				} else {
					black[idx/2] = field[idx]
				}
			}
		}
	}
}

// Gather writes the halves back into a row-major field
func (rb *RedBlack) Gather(field []float64) {
	var (
		size  = rb.Level.Size
		red   = rb.Half(Red)
		black = rb.Half(Black)
	)
	for z := 0; z < size; z++ {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				idx := Index(size, x, y, z)
				if ColorOf(x, y, z) == Red {
					field[idx] = red[idx/2]
				} else {
					field[idx] = black[idx/2]
				}
			}
		}
	}
}

// Half returns the slice holding color c
func (rb *RedBlack) Half(c Color) []float64 {
	return rb.GlobalData[rb.Offsets[c]:rb.Offsets[c+1]]
}
