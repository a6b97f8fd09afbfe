package current

import "github.com/san-kum/gaugesim/internal/color"

// Particle is a copy of a particle's current state.
type Particle struct {
	Pos []float64
	Vel []float64
	Q   color.Algebra
}

type snapshot struct {
	pos []float64
	q   color.Algebra
}

// particle keeps two snapshots. cur selects the newer one, so swapping
// old and new is a single index flip.
type particle struct {
	snap [2]snapshot
	cur  int
	vel  []float64
}

func newParticle(prev, now []float64, vel []float64, q color.Algebra) *particle {
	return &particle{
		snap: [2]snapshot{
			{pos: prev, q: q.Copy()},
			{pos: now, q: q.Copy()},
		},
		cur: 1,
		vel: vel,
	}
}

func (p *particle) prev() *snapshot { return &p.snap[p.cur^1] }
func (p *particle) now() *snapshot  { return &p.snap[p.cur] }
func (p *particle) swap()           { p.cur ^= 1 }

func (p *particle) move(dt float64) {
	prev, now := p.prev(), p.now()
	for i := range now.pos {
		now.pos[i] = prev.pos[i] + p.vel[i]*dt
	}
}

// evolve sets the new charge to the old one transported along u.
func (p *particle) evolve(u color.Group) {
	p.now().q = p.prev().q.Act(u.Adj())
}

func (p *particle) export() Particle {
	now := p.now()
	return Particle{
		Pos: append([]float64(nil), now.pos...),
		Vel: append([]float64(nil), p.vel...),
		Q:   now.q.Copy(),
	}
}
