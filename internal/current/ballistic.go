package current

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/interp"
	"github.com/san-kum/gaugesim/internal/sim"
)

// Ballistic moves test charges with constant velocity through a periodic
// box. Charges are not transported, so the deposit is exact only for U(1)
// or for charges along a single color direction.
type Ballistic struct {
	pos [][]float64
	vel [][]float64
	q   []color.Algebra
}

var (
	_ Generator = (*Ballistic)(nil)
	_ Counter   = (*Ballistic)(nil)
)

func NewBallistic() *Ballistic { return &Ballistic{} }

func (b *Ballistic) Add(pos, vel []float64, q color.Algebra) {
	b.pos = append(b.pos, append([]float64(nil), pos...))
	b.vel = append(b.vel, append([]float64(nil), vel...))
	b.q = append(b.q, q.Copy())
}

func (b *Ballistic) NumParticles() int { return len(b.pos) }

func (b *Ballistic) Particles() []Particle {
	out := make([]Particle, len(b.pos))
	for i := range b.pos {
		out[i] = Particle{
			Pos: append([]float64(nil), b.pos[i]...),
			Vel: append([]float64(nil), b.vel[i]...),
			Q:   b.q[i].Copy(),
		}
	}
	return out
}

// InitializeCurrent wraps the particles into the box and deposits their
// charge.
func (b *Ballistic) InitializeCurrent(s *sim.Simulation) error {
	dims := s.Dimensions()
	for i := range b.pos {
		if len(b.pos[i]) != dims || len(b.vel[i]) != dims {
			return fmt.Errorf("%w: particle %d has %d coordinates, grid has %d",
				sim.ErrInvalidParameter, i, len(b.pos[i]), dims)
		}
		if speed := floats.Norm(b.vel[i], 2); speed > 1 {
			return fmt.Errorf("%w: particle %d moves faster than light (%g)",
				sim.ErrInvalidParameter, i, speed)
		}
		wrap(b.pos[i], s)
		interp.DepositCharge(s.Grid, b.pos[i], b.q[i])
	}
	return nil
}

func (b *Ballistic) ApplyCurrent(s *sim.Simulation) {
	to := make([]float64, s.Dimensions())
	for i, pos := range b.pos {
		for d := range to {
			to[d] = pos[d] + b.vel[i][d]*s.Dt
		}
		interp.Deposit(s.Grid, pos, to, b.q[i], s.Dt)
		copy(pos, to)
		wrap(pos, s)
		interp.DepositCharge(s.Grid, pos, b.q[i])
	}
}

func wrap(pos []float64, s *sim.Simulation) {
	for d := range pos {
		box := s.BoxSize(d)
		pos[d] = math.Mod(pos[d], box)
		if pos[d] < 0 {
			pos[d] += box
		}
		if pos[d] >= box {
			pos[d] = 0
		}
	}
}
