package fields_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gaugesim/internal/fields"
	"github.com/san-kum/gaugesim/internal/sim"
)

func newSim(colors int, dt float64, cells ...int) *sim.Simulation {
	s, err := sim.New(sim.Params{NumCells: cells, Spacing: 1, Dt: dt, Coupling: 1, Colors: colors, Workers: 2})
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Solver construction", func() {
	It("parses every listed kind", func() {
		for _, name := range fields.Kinds() {
			k, err := fields.ParseKind(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(k.String()).To(Equal(name))
		}
	})

	It("rejects unknown kinds", func() {
		_, err := fields.ParseKind("fdtd")
		Expect(err).To(MatchError(sim.ErrInvalidParameter))
	})

	It("requires two or three dimensions for the leapfrog solver", func() {
		_, err := fields.New(fields.Leapfrog, 1)
		Expect(err).To(MatchError(sim.ErrUnsupportedDimension))
		_, err = fields.New(fields.Leapfrog, 4)
		Expect(err).To(MatchError(sim.ErrUnsupportedDimension))
		_, err = fields.New(fields.YangMills, 1)
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Leapfrog", func() {
	var (
		s      *sim.Simulation
		solver *fields.Solver
	)

	BeforeEach(func() {
		s = newSim(1, 0.5, 8, 8)
		var err error
		solver, err = fields.New(fields.Leapfrog, 2)
		Expect(err).NotTo(HaveOccurred())
	})

	It("leaves uniform fields unchanged", func() {
		g := s.Grid
		for i := 0; i < g.TotalCells(); i++ {
			g.E(i, 0).Set(0, 0.3)
			g.E(i, 1).Set(0, -0.2)
			g.B(i, 2).Set(0, 0.7)
		}

		solver.Step(s)

		for i := 0; i < g.TotalCells(); i++ {
			Expect(g.E(i, 0).Get(0)).To(Equal(0.3))
			Expect(g.E(i, 1).Get(0)).To(Equal(-0.2))
			Expect(g.B(i, 2).Get(0)).To(Equal(0.7))
		}
	})

	It("subtracts the current from E", func() {
		g := s.Grid
		i := g.CellIndex([]int{3, 4})
		j := g.Factory().Zero()
		j.Set(0, 2.0)
		g.AddJ(i, 1, j)

		solver.Step(s)

		Expect(g.E(i, 1).Get(0)).To(BeNumerically("~", -1.0, 1e-15))
		Expect(g.E(i, 0).Get(0)).To(Equal(0.0))
	})

	It("updates B from the centered curl of E", func() {
		g := s.Grid
		x0 := g.CellIndex([]int{4, 4})
		g.E(x0, 1).Set(0, 1.0)

		solver.Step(s)

		Expect(g.B(g.Shift(x0, 0, 1), 2).Get(0)).To(BeNumerically("~", 0.25, 1e-15))
		Expect(g.B(g.Shift(x0, 0, -1), 2).Get(0)).To(BeNumerically("~", -0.25, 1e-15))
		Expect(g.B(x0, 2).Get(0)).To(Equal(0.0))
	})

	It("wraps the stencil around the boundary", func() {
		g := s.Grid
		edge := g.CellIndex([]int{7, 2})
		g.E(edge, 1).Set(0, 1.0)

		solver.Step(s)

		Expect(g.B(g.CellIndex([]int{0, 2}), 2).Get(0)).To(BeNumerically("~", 0.25, 1e-15))
	})
})

var _ = Describe("YangMills", func() {
	It("preserves the abelian Gauss law for arbitrary links", func() {
		s := newSim(1, 0.25, 6, 5, 4)
		g := s.Grid
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < g.TotalCells(); i++ {
			for d := 0; d < 3; d++ {
				a := g.Factory().Zero()
				a.Set(0, rng.Float64()-0.5)
				g.SetU(i, d, a.Exp())
				g.E(i, d).Set(0, rng.Float64()-0.5)
			}
		}
		before := make([]float64, g.TotalCells())
		for i := range before {
			before[i] = g.GaussLaw(i).Get(0)
		}

		solver, err := fields.New(fields.YangMills, 3)
		Expect(err).NotTo(HaveOccurred())
		for step := 0; step < 5; step++ {
			solver.Step(s)
		}

		for i := range before {
			Expect(g.GaussLaw(i).Get(0)).To(BeNumerically("~", before[i], 1e-12))
		}
	})

	It("keeps the vacuum unchanged for SU(2)", func() {
		s := newSim(2, 0.5, 4, 4)
		solver, err := fields.New(fields.YangMills, 2)
		Expect(err).NotTo(HaveOccurred())

		solver.Step(s)

		g := s.Grid
		for i := 0; i < g.TotalCells(); i++ {
			for d := 0; d < 2; d++ {
				Expect(g.E(i, d).Square()).To(Equal(0.0))
				Expect(g.U(i, d).Log().Square()).To(BeNumerically("<", 1e-30))
			}
		}
	})

	It("rotates links by the electric field and keeps the old links in Unext", func() {
		s := newSim(1, 0.5, 4, 4)
		g := s.Grid
		i := g.CellIndex([]int{1, 2})
		j := g.Factory().Zero()
		j.Set(0, 1.0)
		g.AddJ(i, 0, j)

		solver, _ := fields.New(fields.YangMills, 2)
		solver.Step(s)

		// E = -dt·J, link phase = -g·as·dt·E
		Expect(g.E(i, 0).Get(0)).To(BeNumerically("~", -0.5, 1e-15))
		Expect(g.U(i, 0).Log().Get(0)).To(BeNumerically("~", 0.25, 1e-15))
		Expect(g.Unext(i, 0).Log().Get(0)).To(BeNumerically("~", 0, 1e-15))
		Expect(math.Abs(g.B(i, 2).Get(0))).To(BeNumerically("~", 0.25, 1e-14))
	})
})
