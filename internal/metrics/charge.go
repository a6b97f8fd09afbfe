package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaugesim/internal/sim"
)

// GaussViolation is Σ|G(x) - ρ(x)|², zero when the fields and the deposited
// charge agree.
type GaussViolation struct {
	value float64
}

func NewGaussViolation() *GaussViolation { return &GaussViolation{} }

func (v *GaussViolation) Name() string { return "gauss_violation" }

func (v *GaussViolation) Observe(s *sim.Simulation) {
	g := s.Grid
	sq := make([]float64, g.TotalCells())
	for i := range sq {
		sq[i] = g.GaussLaw(i).Sub(g.Rho(i)).Square()
	}
	v.value = floats.Sum(sq)
}

func (v *GaussViolation) Value() float64 { return v.value }
func (v *GaussViolation) Reset()         { v.value = 0 }

// TotalCharge is |Σρ|². Particles leaving the box take their charge with
// them, so this is not conserved in general.
type TotalCharge struct {
	value float64
}

func NewTotalCharge() *TotalCharge { return &TotalCharge{} }

func (t *TotalCharge) Name() string { return "total_charge" }

func (t *TotalCharge) Observe(s *sim.Simulation) {
	g := s.Grid
	total := g.Factory().Zero()
	for i := 0; i < g.TotalCells(); i++ {
		total.AddAssign(g.Rho(i))
	}
	t.value = total.Square()
}

func (t *TotalCharge) Value() float64 { return t.value }
func (t *TotalCharge) Reset()         { t.value = 0 }

// Counter reports a particle count. current.LCCurrent and current.Ballistic
// implement it.
type Counter interface {
	NumParticles() int
}

type Particles struct {
	counters []Counter
	value    float64
}

func NewParticles(counters ...Counter) *Particles { return &Particles{counters: counters} }

func (p *Particles) Name() string { return "particles" }

func (p *Particles) Observe(*sim.Simulation) {
	n := 0
	for _, c := range p.counters {
		n += c.NumParticles()
	}
	p.value = float64(n)
}

func (p *Particles) Value() float64 { return p.value }
func (p *Particles) Reset()         { p.value = 0 }
