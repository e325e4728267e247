package baseline

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/FASPoisson/grid"
	"github.com/notargets/FASPoisson/multigrid"
	"github.com/notargets/FASPoisson/stencil"
	"github.com/notargets/FASPoisson/utils"
)

// kernelTap is one point of the preconditioner convolution
type kernelTap struct {
	dx, dy, dz int
	weight     float64
}

// convolutionKernel returns the 33 taps with |offset|² <= 4 of
// 0.6·exp(-2.25 d²) + 0.4·exp(-0.72 d²), quantized to 1/32767 steps
func convolutionKernel() []kernelTap {
	taps := make([]kernelTap, 0, 33)
	for dz := -2; dz <= 2; dz++ {
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				d2 := float64(dx*dx + dy*dy + dz*dz)
				if d2 > 4 {
					continue
				}
				k := 0.6*math.Exp(-2.25*d2) + 0.4*math.Exp(-0.72*d2)
				quantized := math.Trunc(k * 32767)
				taps = append(taps, kernelTap{dx: dx, dy: dy, dz: dz, weight: quantized / 32767})
			}
		}
	}
	return taps
}

// convolve writes K·src into dst, dropping taps that leave the domain
func convolve(lvl grid.Level, taps []kernelTap, src, dst []float64, workers int) {
	n := lvl.Size
	utils.ParallelRange(n, workers, func(low, high int) {
		for z := low; z < high; z++ {
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					var acc float64
					for _, tp := range taps {
						nb := grid.Coord{X: x + tp.dx, Y: y + tp.dy, Z: z + tp.dz}
						if lvl.InBounds(nb) {
							acc += tp.weight * src[lvl.Index(nb)]
						}
					}
					dst[grid.Index(n, x, y, z)] = acc
				}
			}
		}
	})
}

// newPCG runs conjugate gradients on -A u = -f with the Gaussian convolution
// K as preconditioner: z = K r, β = (r'·Kr') / (r·Kr).
func newPCG(lvl grid.Level, u, f []float64, workers int) func() error {
	var (
		op   = stencil.SevenPoint{Workers: workers}
		taps = convolutionKernel()
		r    = grid.NewField(lvl)
		z    = grid.NewField(lvl)
		p    = grid.NewField(lvl)
		ap   = grid.NewField(lvl)
		rz   float64
	)
	multigrid.Defect(lvl, op, u, f, r)
	floats.Scale(-1, r)
	convolve(lvl, taps, r, z, workers)
	copy(p, z)
	rz = floats.Dot(r, z)

	return func() error {
		if rz == 0 {
			return nil
		}
		op.Apply(lvl, p, ap)
		floats.Scale(-1, ap)
		alpha := rz / floats.Dot(p, ap) // α = (r·z) / (p·Ap)
		floats.AddScaled(u, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		convolve(lvl, taps, r, z, workers)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		floats.AddScaledTo(p, z, beta, p) // p = z + β p
		rz = rzNext
		return nil
	}
}
