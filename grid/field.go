package grid

import "math"

// NewField allocates a zeroed field for a level
func NewField(lvl Level) []float64 {
	return make([]float64, lvl.CellCount())
}

// Clone returns a copy of a field
func Clone(field []float64) []float64 {
	out := make([]float64, len(field))
	copy(out, field)
	return out
}

// FirstNonFinite returns the index of the first NaN or ±Inf entry, or -1
func FirstNonFinite(field []float64) int {
	for i, v := range field {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}
