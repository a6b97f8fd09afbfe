package current_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/gomega"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/sim"
)

func newSim(colors int, dt float64, cells ...int) *sim.Simulation {
	s, err := sim.New(sim.Params{NumCells: cells, Spacing: 1, Dt: dt, Coupling: 1, Colors: colors, Workers: 1})
	Expect(err).NotTo(HaveOccurred())
	return s
}

func charge(f color.Factory, v ...float64) color.Algebra {
	return color.FromComponents(f, v)
}

// randomizeLinks fills both link buffers. With static set U and Unext are
// the same, otherwise they are drawn independently.
func randomizeLinks(s *sim.Simulation, rng *rand.Rand, static bool) {
	g := s.Grid
	f := g.Factory()
	draw := func() color.Group {
		v := make([]float64, f.Components())
		for i := range v {
			v[i] = 2*rng.Float64() - 1
		}
		return color.FromComponents(f, v).Exp()
	}
	for i := 0; i < g.TotalCells(); i++ {
		for d := 0; d < g.Dimensions(); d++ {
			u := draw()
			g.SetU(i, d, u)
			if static {
				g.SetUnext(i, d, u)
			} else {
				g.SetUnext(i, d, draw())
			}
		}
	}
}

func snapshotRho(s *sim.Simulation) []color.Algebra {
	rho := make([]color.Algebra, s.Grid.TotalCells())
	for i := range rho {
		rho[i] = s.Grid.Rho(i).Copy()
	}
	return rho
}

// continuityResidual is the largest violation of
// ρ(t+dt) - ρ(t) = -(dt/as)·(J(x) - U†(x-d)·J(x-d)·U(x-d)) along dir.
func continuityResidual(s *sim.Simulation, before []color.Algebra, dir int) float64 {
	g := s.Grid
	scale := s.Dt / g.Spacing()
	worst := 0.0
	for i := 0; i < g.TotalCells(); i++ {
		back := g.Shift(i, dir, -1)
		div := g.J(i, dir).Sub(g.J(back, dir).Act(g.U(back, dir).Adj()))
		res := g.Rho(i).Sub(before[i]).Add(div.Mult(scale))
		worst = math.Max(worst, math.Sqrt(res.Square()))
	}
	return worst
}

func sumJ(s *sim.Simulation, dir, comp int) float64 {
	sum := 0.0
	for i := 0; i < s.Grid.TotalCells(); i++ {
		sum += s.Grid.J(i, dir).Get(comp)
	}
	return sum
}

func gaussResidual(s *sim.Simulation) float64 {
	g := s.Grid
	worst := 0.0
	for i := 0; i < g.TotalCells(); i++ {
		res := g.GaussLaw(i).Sub(g.Rho(i))
		worst = math.Max(worst, math.Sqrt(res.Square()))
	}
	return worst
}
