package fields

import (
	"math"

	"github.com/san-kum/gaugesim/internal/sim"
)

// stepYangMills kicks E with the plaquette force using the links at t+dt/2
// and then rotates every link to t+3dt/2. After the swap Unext holds the
// links of the previous half step.
func stepYangMills(sm *sim.Simulation) {
	g := sm.Grid
	dt := sm.Dt
	dims := g.Dimensions()
	as := g.Spacing()
	invVol := 1 / g.CellVolume()
	forceFactor := dt / (sm.Coupling * math.Pow(as, 3))

	sim.ParallelFor(sm.Workers, g.TotalCells(), func(start, end int) {
		for i := start; i < end; i++ {
			for d := 0; d < dims; d++ {
				force := g.Factory().Zero()
				for k := 0; k < dims; k++ {
					if k == d {
						continue
					}
					force.AddAssign(g.Plaquette(i, d, k, 1, 1).Proj())
					force.AddAssign(g.Plaquette(i, d, k, 1, -1).Proj())
				}
				g.AddE(i, d, force.Mult(forceFactor).Sub(g.J(i, d).Mult(dt*invVol)))
			}
		}
	})

	rotation := -sm.Coupling * as * dt
	sim.ParallelFor(sm.Workers, g.TotalCells(), func(start, end int) {
		for i := start; i < end; i++ {
			for d := 0; d < dims; d++ {
				g.SetUnext(i, d, g.E(i, d).Mult(rotation).Exp().Mult(g.U(i, d)))
			}
		}
	})
	g.SwapLinks()
	refreshMagneticField(sm)
}

// refreshMagneticField recomputes B from the current links. Grids outside
// two and three dimensions have no B and are left alone.
func refreshMagneticField(sm *sim.Simulation) {
	g := sm.Grid
	if dims := g.Dimensions(); dims != 2 && dims != 3 {
		return
	}
	sim.ParallelFor(sm.Workers, g.TotalCells(), func(start, end int) {
		for i := start; i < end; i++ {
			for c := 0; c < 3; c++ {
				b, _ := g.MagneticField(i, c, sm.Coupling)
				g.SetB(i, c, b)
			}
		}
	})
}
