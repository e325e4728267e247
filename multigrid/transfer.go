package multigrid

import (
	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/utils"
)

// Transfer moves fields between adjacent levels. Work is split across coarse
// z-planes; every coarse cell owns a disjoint 2x2x2 block of fine cells.
type Transfer struct {
	Workers int
}

// Restrict averages each 2x2x2 block of the fine field into one coarse cell
// (full weighting, every child weighted 1/8)
func (t Transfer) Restrict(fine grid.Level, src []float64) []float64 {
	var (
		fs     = fine.Size
		cs     = fs / 2
		coarse = make([]float64, cs*cs*cs)
	)
	utils.ParallelRange(cs, t.Workers, func(low, high int) {
		for z := low; z < high; z++ {
			for y := 0; y < cs; y++ {
				for x := 0; x < cs; x++ {
					base := grid.Index(fs, 2*x, 2*y, 2*z)
					var (
						b0 = base
						b1 = base + fs
						b2 = base + fs*fs
						b3 = base + fs*fs + fs
					)
					// Pairwise sum: eight equal children average exactly
					sum := ((src[b0] + src[b0+1]) + (src[b1] + src[b1+1])) +
						((src[b2] + src[b2+1]) + (src[b3] + src[b3+1]))
					coarse[grid.Index(cs, x, y, z)] = 0.125 * sum
				}
			}
		}
	})
	return coarse
}

// Prolong copies every coarse value into its eight fine children (constant
// injection). The result is meant as a correction to add to a fine solution.
func (t Transfer) Prolong(coarse grid.Level, src []float64) []float64 {
	var (
		cs   = coarse.Size
		fs   = cs * 2
		fine = make([]float64, fs*fs*fs)
	)
	utils.ParallelRange(cs, t.Workers, func(low, high int) {
		for z := low; z < high; z++ {
			for y := 0; y < cs; y++ {
				for x := 0; x < cs; x++ {
					v := src[grid.Index(cs, x, y, z)]
					for dz := 0; dz < 2; dz++ {
						for dy := 0; dy < 2; dy++ {
							row := grid.Index(fs, 2*x, 2*y+dy, 2*z+dz)
							fine[row] = v
							fine[row+1] = v
						}
					}
				}
			}
		}
	})
	return fine
}
