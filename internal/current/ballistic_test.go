package current_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gaugesim/internal/current"
	"github.com/san-kum/gaugesim/internal/sim"
)

var _ = Describe("Ballistic", func() {
	It("conserves charge at every site while wrapping around the box", func() {
		s := newSim(1, 0.5, 8, 8)
		b := current.NewBallistic()
		b.Add([]float64{6.3, 2.2}, []float64{0.8, 0.5}, charge(s.Grid.Factory(), 1))
		b.Add([]float64{1.1, 0.4}, []float64{-0.3, -0.9}, charge(s.Grid.Factory(), -0.5))
		Expect(b.InitializeCurrent(s)).To(Succeed())

		for step := 0; step < 12; step++ {
			before := snapshotRho(s)
			s.Grid.ResetCharges()
			b.ApplyCurrent(s)

			g := s.Grid
			for i := 0; i < g.TotalCells(); i++ {
				div := 0.0
				for d := 0; d < 2; d++ {
					div += g.J(i, d).Get(0) - g.J(g.Shift(i, d, -1), d).Get(0)
				}
				res := g.Rho(i).Get(0) - before[i].Get(0) + s.Dt/g.Spacing()*div
				Expect(math.Abs(res)).To(BeNumerically("<", 1e-12), "step %d cell %v", step, g.CellPos(i))
			}
		}

		for _, p := range b.Particles() {
			for d, x := range p.Pos {
				Expect(x).To(BeNumerically(">=", 0))
				Expect(x).To(BeNumerically("<", s.BoxSize(d)))
			}
		}
	})

	It("rejects particles faster than light", func() {
		s := newSim(1, 0.5, 8, 8)
		b := current.NewBallistic()
		b.Add([]float64{1, 1}, []float64{0.9, 0.9}, charge(s.Grid.Factory(), 1))
		Expect(b.InitializeCurrent(s)).To(MatchError(sim.ErrInvalidParameter))
	})
})
