package fields_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gaugesim/internal/fields"
	"github.com/san-kum/gaugesim/internal/sim"
)

var _ = Describe("PlanePulse", func() {
	pulse := fields.PlanePulse{
		Direction:    []float64{1, 0},
		Position:     []float64{10, 0},
		Polarization: []float64{0, 1},
		Color:        []float64{1},
		Amplitude:    0.1,
		Sigma:        3,
	}

	centerOfE := func(s *sim.Simulation) float64 {
		g := s.Grid
		sum, weight := 0.0, 0.0
		for i := 0; i < g.TotalCells(); i++ {
			w := g.E(i, 1).Square()
			sum += w * float64(g.CellPos(i)[0]) * g.Spacing()
			weight += w
		}
		return sum / weight
	}

	It("validates its vectors", func() {
		s := newSim(1, 0.5, 16, 4)
		bad := pulse
		bad.Direction = []float64{1, 0, 0}
		Expect(bad.Apply(s)).To(MatchError(sim.ErrInvalidParameter))

		bad = pulse
		bad.Polarization = []float64{0, 0}
		Expect(bad.Apply(s)).To(MatchError(sim.ErrInvalidParameter))

		bad = pulse
		bad.Sigma = 0
		Expect(bad.Apply(s)).To(MatchError(sim.ErrInvalidParameter))
	})

	It("starts divergence free and travels at the speed of light", func() {
		s := newSim(1, 0.5, 48, 4)
		Expect(pulse.Apply(s)).To(Succeed())
		Expect(centerOfE(s)).To(BeNumerically("~", 10, 0.1))

		solver, err := fields.New(fields.YangMills, 2)
		Expect(err).NotTo(HaveOccurred())
		for step := 0; step < 20; step++ {
			solver.Step(s)
		}

		g := s.Grid
		for i := 0; i < g.TotalCells(); i++ {
			Expect(g.GaussLaw(i).Get(0)).To(BeNumerically("~", 0, 1e-12))
		}
		Expect(centerOfE(s)).To(BeNumerically("~", 20, 1))
	})

	It("seeds B so the leapfrog solver moves the pulse in one piece", func() {
		s := newSim(1, 0.5, 48, 4)
		Expect(pulse.Apply(s)).To(Succeed())

		solver, err := fields.New(fields.Leapfrog, 2)
		Expect(err).NotTo(HaveOccurred())
		solver.Init(s)
		for step := 0; step < 20; step++ {
			solver.Step(s)
		}

		g := s.Grid
		inside, total := 0.0, 0.0
		for i := 0; i < g.TotalCells(); i++ {
			w := g.E(i, 1).Square()
			if x := g.CellPos(i)[0]; x >= 12 && x <= 28 {
				inside += w
			}
			total += w
		}
		Expect(inside / total).To(BeNumerically(">", 0.9))
	})

	It("derives B from the links on Init", func() {
		s := newSim(2, 0.5, 24, 6)
		su2 := pulse
		su2.Color = []float64{0, 1, 0}
		Expect(su2.Apply(s)).To(Succeed())

		solver, err := fields.New(fields.YangMills, 2)
		Expect(err).NotTo(HaveOccurred())
		solver.Init(s)

		g := s.Grid
		nonzero := false
		for i := 0; i < g.TotalCells(); i++ {
			want, err := g.MagneticField(i, 2, s.Coupling)
			Expect(err).NotTo(HaveOccurred())
			for c := 0; c < 3; c++ {
				Expect(g.B(i, 2).Get(c)).To(Equal(want.Get(c)))
			}
			nonzero = nonzero || want.Square() > 1e-6
		}
		Expect(nonzero).To(BeTrue())
	})
})
