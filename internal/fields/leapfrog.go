package fields

import (
	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/lattice"
	"github.com/san-kum/gaugesim/internal/sim"
)

// before: E(t), B(t+dt/2); after: E(t+dt), B(t+3dt/2)
func stepLeapfrog(sm *sim.Simulation) {
	g := sm.Grid
	dt := sm.Dt
	dims := g.Dimensions()
	invVol := 1 / g.CellVolume()

	sim.ParallelFor(sm.Workers, g.TotalCells(), func(start, end int) {
		for i := start; i < end; i++ {
			for d := 0; d < dims; d++ {
				curl := curlComponent(g, i, d, g.B)
				g.AddE(i, d, curl.Sub(g.J(i, d).Mult(invVol)).Mult(dt))
			}
		}
	})

	efield := func(i, k int) color.Algebra {
		if k >= dims {
			return g.Factory().Zero()
		}
		return g.E(i, k)
	}
	sim.ParallelFor(sm.Workers, g.TotalCells(), func(start, end int) {
		for i := start; i < end; i++ {
			for c := 0; c < 3; c++ {
				curl := curlComponent(g, i, c, efield)
				g.SetB(i, c, g.B(i, c).Sub(curl.Mult(dt)))
			}
		}
	})
}

// curlComponent is (∇×F)_c = ∂_{c+1} F_{c+2} - ∂_{c+2} F_{c+1} with
// centered differences; derivatives along missing axes vanish.
func curlComponent(g *lattice.Grid, i, c int, f func(i, k int) color.Algebra) color.Algebra {
	a, b := (c+1)%3, (c+2)%3
	return derivative(g, i, a, b, f).Sub(derivative(g, i, b, a, f))
}

func derivative(g *lattice.Grid, i, axis, k int, f func(i, k int) color.Algebra) color.Algebra {
	if axis >= g.Dimensions() {
		return g.Factory().Zero()
	}
	ip := g.Shift(i, axis, 1)
	im := g.Shift(i, axis, -1)
	return f(ip, k).Sub(f(im, k)).Mult(1 / (2 * g.Spacing()))
}
