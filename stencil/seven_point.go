package stencil

import (
	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/utils"
)

// SevenPoint is the second order Laplacian
//
//	(Au)[c] = (Σ_faces u[nb] - 6 u[c]) / h²
//
// Work is split across z-planes; Workers <= 1 runs serially.
type SevenPoint struct {
	Workers int
}

func (SevenPoint) Name() string { return "7-point" }

func (SevenPoint) Diagonal(lvl grid.Level) float64 {
	return -6 / (lvl.H * lvl.H)
}

// faceSum adds the in-bounds face neighbors of (x, y, z) read from src at
// address/div. div is 1 for a row-major field and 2 for a red-black half.
func faceSum(src []float64, size, x, y, z, idx, div int) (sum float64) {
	plane := size * size
	if x > 0 {
		sum += src[(idx-1)/div]
	}
	if x < size-1 {
		sum += src[(idx+1)/div]
	}
	if y > 0 {
		sum += src[(idx-size)/div]
	}
	if y < size-1 {
		sum += src[(idx+size)/div]
	}
	if z > 0 {
		sum += src[(idx-plane)/div]
	}
	if z < size-1 {
		sum += src[(idx+plane)/div]
	}
	return
}

func (op SevenPoint) Apply(lvl grid.Level, u, dst []float64) {
	var (
		size  = lvl.Size
		invH2 = 1 / (lvl.H * lvl.H)
	)
	utils.ParallelRange(size, op.Workers, func(low, high int) {
		for z := low; z < high; z++ {
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					idx := grid.Index(size, x, y, z)
					dst[idx] = (faceSum(u, size, x, y, z, idx, 1) - 6*u[idx]) * invH2
				}
			}
		}
	})
}

func (op SevenPoint) Relax(lvl grid.Level, sweep grid.Color, rb *grid.RedBlack, rhs []float64) {
	var (
		size = lvl.Size
		h2   = lvl.H * lvl.H
		out  = rb.Half(sweep)
		in   = rb.Half(sweep.Opposite())
	)
	utils.ParallelRange(size, op.Workers, func(low, high int) {
		for z := low; z < high; z++ {
			for y := 0; y < size; y++ {
				for x := grid.FirstX(sweep, y, z); x < size; x += 2 {
					idx := grid.Index(size, x, y, z)
					out[idx/2] = (faceSum(in, size, x, y, z, idx, 2) - h2*rhs[idx]) / 6
				}
			}
		}
	})
}
