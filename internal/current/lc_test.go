package current_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gaugesim/internal/current"
	"github.com/san-kum/gaugesim/internal/fields"
	"github.com/san-kum/gaugesim/internal/sim"
)

var _ = Describe("LCCurrent", func() {
	Describe("point charges", func() {
		It("rejects a zero color direction", func() {
			lc := current.NewLCCurrent(0, 1, 8, 1)
			err := lc.AddCharge([]float64{2}, []float64{0, 0, 0}, 1)
			Expect(err).To(MatchError(current.ErrDegenerateCharge))
		})

		It("rejects locations of the wrong size", func() {
			s := newSim(1, 0.5, 16, 8)
			lc := current.NewLCCurrent(0, 1, 8, 1)
			Expect(lc.AddCharge([]float64{2, 3}, []float64{1}, 1)).To(Succeed())
			Expect(lc.InitializeCurrent(s)).To(MatchError(sim.ErrInvalidParameter))
		})

		It("rejects an invalid geometry", func() {
			s := newSim(1, 0.5, 16, 8)
			lc := current.NewLCCurrent(2, 1, 8, 1)
			Expect(lc.InitializeCurrent(s)).To(MatchError(sim.ErrInvalidParameter))
		})

		It("normalizes the color direction", func() {
			s := newSim(2, 0.5, 16, 8)
			lc := current.NewLCCurrent(0, 1, 8, 1)
			Expect(lc.AddCharge([]float64{3}, []float64{0, 3, 4}, 2)).To(Succeed())
			Expect(lc.AddCharge([]float64{5}, []float64{0, -3, -4}, 2)).To(Succeed())
			Expect(lc.InitializeCurrent(s)).To(Succeed())

			q := lc.Density().Cells[3]
			Expect(q.Get(0)).To(Equal(0.0))
			Expect(q.Get(1)).To(BeNumerically("~", 1.2, 1e-15))
			Expect(q.Get(2)).To(BeNumerically("~", 1.6, 1e-15))
		})
	})

	DescribeTable("deposits the displacement current of a single U(1) particle",
		func(start float64, orientation int) {
			s := newSim(1, 0.5, 16, 4)
			randomizeLinks(s, rand.New(rand.NewSource(3)), false)
			lc := current.NewLCCurrent(0, orientation, 8, 1)
			lc.Seed([]float64{start, 2}, charge(s.Grid.Factory(), 0.7))

			lc.ApplyCurrent(s)

			moved := lc.Particles()[0].Pos[0]
			want := 0.7 * (moved - start) / s.Dt
			Expect(sumJ(s, 0, 0)).To(BeNumerically("~", want, 1e-14*math.Abs(want)))
			Expect(sumJ(s, 1, 0)).To(Equal(0.0))
		},
		Entry("within one cell", 5.2, 1),
		Entry("crossing to the right", 5.8, 1),
		Entry("landing on a site", 5.5, 1),
		Entry("within one cell moving left", 5.7, -1),
		Entry("crossing to the left", 6.3, -1),
	)

	DescribeTable("satisfies the covariant continuity equation for static links",
		func(colors int, start float64, orientation int) {
			s := newSim(colors, 0.5, 12, 4)
			randomizeLinks(s, rand.New(rand.NewSource(int64(10*start))), true)
			lc := current.NewLCCurrent(0, orientation, 6, 1)
			lc.Seed([]float64{start, 2}, charge(s.Grid.Factory(), 0.4, -0.9, 0.3))

			lc.ApplyCurrent(s)
			before := snapshotRho(s)
			s.Grid.ResetCharges()
			lc.ApplyCurrent(s)

			Expect(continuityResidual(s, before, 0)).To(BeNumerically("<", 1e-12))
		},
		Entry("u1 one cell", 1, 4.6, 1),
		Entry("u1 right crossing", 1, 5.2, 1),
		Entry("u1 left crossing", 1, 6.7, -1),
		Entry("su2 one cell", 2, 4.6, 1),
		Entry("su2 right crossing", 2, 5.2, 1),
		Entry("su2 right crossing onto a site", 2, 5.0, 1),
		Entry("su2 one cell moving left", 2, 6.3, -1),
		Entry("su2 left crossing", 2, 6.7, -1),
	)

	It("deposits same-signed currents for an ensemble moving one way", func() {
		s := newSim(1, 0.5, 32, 8)
		randomizeLinks(s, rand.New(rand.NewSource(5)), false)
		lc := current.NewLCCurrent(0, 1, 16, 1)
		rng := rand.New(rand.NewSource(9))
		for i := 0; i < 500; i++ {
			pos := []float64{2 + 25*rng.Float64(), float64(rng.Intn(8))}
			lc.Seed(pos, charge(s.Grid.Factory(), 0.1+rng.Float64()))
		}

		for step := 0; step < 4; step++ {
			s.Grid.ResetCharges()
			lc.ApplyCurrent(s)
			for i := 0; i < s.Grid.TotalCells(); i++ {
				Expect(s.Grid.J(i, 0).Get(0)).To(BeNumerically(">=", 0))
			}
		}
	})

	It("removes a particle on the step it leaves the box", func() {
		s := newSim(1, 0.5, 16, 4)
		f := s.Grid.Factory()
		right := current.NewLCCurrent(0, 1, 8, 1)
		right.Seed([]float64{14.9, 1}, charge(f, 1))

		right.ApplyCurrent(s)
		right.ApplyCurrent(s)
		Expect(right.NumParticles()).To(Equal(1))
		Expect(right.Particles()[0].Pos[0]).To(BeNumerically("~", 15.9, 1e-12))

		right.ApplyCurrent(s)
		Expect(right.NumParticles()).To(Equal(0))
		Expect(right.Removed()).To(Equal(1))

		left := current.NewLCCurrent(0, -1, 8, 1)
		left.Seed([]float64{0.6, 1}, charge(f, 1))
		left.Seed([]float64{0.4, 2}, charge(f, 1))
		left.ApplyCurrent(s)
		Expect(left.NumParticles()).To(Equal(1))
		Expect(left.Removed()).To(Equal(1))
		Expect(left.Particles()[0].Pos[0]).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("leaves the grid untouched for a zero charge", func() {
		s := newSim(2, 0.5, 16, 4)
		randomizeLinks(s, rand.New(rand.NewSource(1)), false)
		f := s.Grid.Factory()
		charged := current.NewLCCurrent(0, 1, 8, 1)
		charged.Seed([]float64{5.8, 1}, charge(f, 0.2, 0.5, -0.1))
		charged.ApplyCurrent(s)

		before := snapshotRho(s)
		beforeJ := make([][3]float64, s.Grid.TotalCells())
		for i := range beforeJ {
			for c := 0; c < 3; c++ {
				beforeJ[i][c] = s.Grid.J(i, 0).Get(c)
			}
		}

		empty := current.NewLCCurrent(0, 1, 8, 1)
		empty.Seed([]float64{5.8, 1}, f.Zero())
		empty.Seed([]float64{7.1, 2}, f.Zero())
		empty.ApplyCurrent(s)

		for i := 0; i < s.Grid.TotalCells(); i++ {
			for c := 0; c < 3; c++ {
				Expect(s.Grid.Rho(i).Get(c)).To(Equal(before[i].Get(c)))
				Expect(s.Grid.J(i, 0).Get(c)).To(Equal(beforeJ[i][c]))
			}
		}
	})

	It("preserves the invariant charge under SU(2) transport", func() {
		s := newSim(2, 0.5, 24, 4)
		rng := rand.New(rand.NewSource(17))
		lc := current.NewLCCurrent(0, 1, 8, 1)
		q := charge(s.Grid.Factory(), 0.3, -0.4, 1.2)
		lc.Seed([]float64{1.3, 2}, q)

		for step := 0; step < 40; step++ {
			randomizeLinks(s, rng, false)
			s.Grid.ResetCharges()
			lc.ApplyCurrent(s)
		}

		p := lc.Particles()[0]
		Expect(p.Pos[0]).To(BeNumerically("~", 21.3, 1e-9))
		Expect(p.Q.Square()).To(BeNumerically("~", q.Square(), 1e-12))
		Expect(p.Q.Get(2)).NotTo(BeNumerically("~", 1.2, 1e-6))
	})

	Describe("with the light-cone Poisson solver", func() {
		var s *sim.Simulation

		build := func(orientation int, location float64, opts ...current.Option) *current.LCCurrent {
			lc := current.NewLCCurrent(0, orientation, location, 1, opts...)
			Expect(lc.AddCharge([]float64{4}, []float64{1}, 1)).To(Succeed())
			Expect(lc.AddCharge([]float64{11.5}, []float64{1}, -1)).To(Succeed())
			return lc
		}

		BeforeEach(func() {
			s = newSim(1, 0.5, 32, 16)
		})

		It("samples particles from the Gauss constraint", func() {
			lc := build(1, 16)
			Expect(lc.InitializeCurrent(s)).To(Succeed())

			Expect(lc.NumParticles()).To(BeNumerically(">", 0))
			for _, p := range lc.Particles() {
				Expect(p.Vel).To(Equal([]float64{1, 0}))
				Expect(p.Pos[0]).To(Equal(math.Floor(p.Pos[0])))
			}
			Expect(gaussResidual(s)).To(BeNumerically("<", 1e-7))
		})

		It("keeps Gauss's law through a U(1) evolution", func() {
			solver, err := fields.New(fields.YangMills, 2)
			Expect(err).NotTo(HaveOccurred())
			gens := []current.Generator{build(1, 12), build(-1, 20)}
			for _, g := range gens {
				Expect(g.InitializeCurrent(s)).To(Succeed())
			}

			for step := 0; step < 10; step++ {
				s.Grid.ResetCharges()
				for _, g := range gens {
					g.ApplyCurrent(s)
				}
				solver.Step(s)
				s.Steps++
				Expect(gaussResidual(s)).To(BeNumerically("<", 1e-7), "step %d", step)
			}
		})

		It("bounds the Gauss residual through an SU(2) evolution", func() {
			s := newSim(2, 0.5, 32, 16)
			solver, err := fields.New(fields.YangMills, 2)
			Expect(err).NotTo(HaveOccurred())
			lc := current.NewLCCurrent(0, 1, 12, 1)
			Expect(lc.AddCharge([]float64{4}, []float64{1, 0, 0}, 1)).To(Succeed())
			Expect(lc.AddCharge([]float64{11.5}, []float64{0, 1, 1}, -1)).To(Succeed())
			Expect(lc.InitializeCurrent(s)).To(Succeed())
			Expect(gaussResidual(s)).To(BeNumerically("<", 1e-7))

			// Links change while a charge crosses a cell, so the covariant
			// continuity law only holds up to the link change per step.
			for step := 0; step < 20; step++ {
				s.Grid.ResetCharges()
				lc.ApplyCurrent(s)
				solver.Step(s)
				s.Steps++
				Expect(gaussResidual(s)).To(BeNumerically("<", 1e-3), "step %d", step)
			}
		})

		It("removes the monopole moment on request", func() {
			lc := current.NewLCCurrent(0, 1, 16, 1, current.WithMonopoleRemoval())
			Expect(lc.AddCharge([]float64{4}, []float64{1}, 2)).To(Succeed())
			Expect(lc.InitializeCurrent(s)).To(Succeed())
			Expect(lc.Density().TotalCharge().Get(0)).To(BeNumerically("~", 0, 1e-12))
		})
	})
})
