package current

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/initial"
	"github.com/san-kum/gaugesim/internal/lattice"
	"github.com/san-kum/gaugesim/internal/sim"
)

// particleThreshold bounds the particle count: sites whose Gauss charge
// satisfies |G|² <= particleThreshold·(g·as)² get no particle.
const particleThreshold = 1e-17

// PointCharge is a transverse location with a normalized color direction.
type PointCharge struct {
	Location       []float64
	ColorDirection []float64
	Magnitude      float64
}

// SolverFunc builds the initial condition solver for a sheet.
type SolverFunc func(geo initial.Geometry, density []color.Algebra) initial.Solver

type Option func(*LCCurrent)

// WithMonopoleRemoval subtracts the mean charge from the transverse density
// before solving.
func WithMonopoleRemoval() Option { return func(lc *LCCurrent) { lc.monopole = true } }

// WithDipoleRemoval cancels the dipole moment of every color component of
// the transverse density before solving.
func WithDipoleRemoval() Option { return func(lc *LCCurrent) { lc.dipole = true } }

func WithSolver(f SolverFunc) Option { return func(lc *LCCurrent) { lc.newSolver = f } }

func WithLogger(l *slog.Logger) Option { return func(lc *LCCurrent) { lc.logger = l } }

// LCCurrent is the current of a sheet of color charge moving at the speed of
// light along one lattice axis.
type LCCurrent struct {
	geo     initial.Geometry
	charges []PointCharge

	monopole  bool
	dipole    bool
	newSolver SolverFunc
	logger    *slog.Logger

	density   *Density
	solver    initial.Solver
	particles []*particle
	removed   int
}

var (
	_ Generator = (*LCCurrent)(nil)
	_ Counter   = (*LCCurrent)(nil)
)

func NewLCCurrent(direction, orientation int, location, width float64, opts ...Option) *LCCurrent {
	lc := &LCCurrent{
		geo: initial.Geometry{
			Direction:   direction,
			Orientation: orientation,
			Location:    location,
			Width:       width,
		},
		newSolver: func(geo initial.Geometry, density []color.Algebra) initial.Solver {
			return initial.NewLCPoisson(geo, density)
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(lc)
	}
	return lc
}

func (lc *LCCurrent) Geometry() initial.Geometry { return lc.geo }

// AddCharge registers a point charge at a transverse location. The color
// direction is normalized.
func (lc *LCCurrent) AddCharge(location, colorDirection []float64, magnitude float64) error {
	norm := floats.Norm(colorDirection, 2)
	if norm == 0 || math.IsNaN(norm) {
		return fmt.Errorf("%w: %v", ErrDegenerateCharge, colorDirection)
	}
	dir := append([]float64(nil), colorDirection...)
	floats.Scale(1/norm, dir)
	lc.charges = append(lc.charges, PointCharge{
		Location:       append([]float64(nil), location...),
		ColorDirection: dir,
		Magnitude:      magnitude,
	})
	return nil
}

// Seed adds a particle directly, bypassing the initial condition solver. The
// particle sits at pos and moves along the sheet's axis.
func (lc *LCCurrent) Seed(pos []float64, q color.Algebra) {
	vel := make([]float64, len(pos))
	vel[lc.geo.Direction] = float64(lc.geo.Orientation)
	lc.particles = append(lc.particles, newParticle(
		append([]float64(nil), pos...),
		append([]float64(nil), pos...),
		vel, q,
	))
}

// Density is the transverse charge density built by InitializeCurrent.
func (lc *LCCurrent) Density() *Density { return lc.density }

func (lc *LCCurrent) NumParticles() int { return len(lc.particles) }

// Removed counts particles dropped at the box boundary. Their charge is
// lost.
func (lc *LCCurrent) Removed() int { return lc.removed }

func (lc *LCCurrent) Particles() []Particle {
	out := make([]Particle, len(lc.particles))
	for i, p := range lc.particles {
		out[i] = p.export()
	}
	return out
}

// InitializeCurrent builds the transverse density from the point charges,
// writes the sheet's fields into the grid, samples particles from the
// implied charge and deposits their initial ρ and J.
func (lc *LCCurrent) InitializeCurrent(s *sim.Simulation) error {
	g := s.Grid
	dims := g.Dimensions()
	if err := lc.geo.Validate(dims); err != nil {
		return err
	}

	as := g.Spacing()
	transverse := lattice.ReduceGridPos(g.NumCells(), lc.geo.Direction)
	lc.density = NewDensity(transverse, as, g.Factory())
	area := math.Pow(as, float64(dims-1))
	for _, c := range lc.charges {
		if len(c.Location) != len(transverse) {
			return fmt.Errorf("%w: charge location %v needs %d coordinates",
				sim.ErrInvalidParameter, c.Location, len(transverse))
		}
		amp := color.FromComponents(g.Factory(), c.ColorDirection).Mult(c.Magnitude / area)
		lc.density.Deposit(c.Location, amp)
	}
	if lc.monopole {
		lc.density.RemoveMonopoleMoment()
	}
	if lc.dipole {
		lc.density.RemoveDipoleMoment()
	}

	lc.solver = lc.newSolver(lc.geo, lc.density.Cells)
	if err := lc.solver.Initialize(s); err != nil {
		return fmt.Errorf("initial condition: %w", err)
	}
	if err := lc.solver.Solve(s); err != nil {
		return fmt.Errorf("initial condition: %w", err)
	}

	lc.initializeParticles(s)
	lc.logger.Info("light-cone current initialized",
		"direction", lc.geo.Direction,
		"orientation", lc.geo.Orientation,
		"charges", len(lc.charges),
		"particles", len(lc.particles))

	lc.ApplyCurrent(s)
	return nil
}

func (lc *LCCurrent) initializeParticles(s *sim.Simulation) {
	g := s.Grid
	as, dt := g.Spacing(), s.Dt
	dir, o := lc.geo.Direction, float64(lc.geo.Orientation)
	limit := particleThreshold * (s.Coupling * as) * (s.Coupling * as)

	lc.particles = lc.particles[:0]
	lc.removed = 0
	for i := 0; i < g.TotalCells(); i++ {
		q := lc.solver.GaussConstraint(i)
		if q == nil || q.Square() <= limit {
			continue
		}
		cell := g.CellPos(i)
		prev := make([]float64, len(cell))
		now := make([]float64, len(cell))
		vel := make([]float64, len(cell))
		for k, c := range cell {
			prev[k] = float64(c) * as
			now[k] = float64(c) * as
		}
		prev[dir] -= 2 * dt * o
		now[dir] -= dt * o
		vel[dir] = o
		lc.particles = append(lc.particles, newParticle(prev, now, vel, q))
	}
}

// ApplyCurrent advances every particle by one step, drops those that left
// the box and deposits ρ and J for the rest.
func (lc *LCCurrent) ApplyCurrent(s *sim.Simulation) {
	lc.evolveCharges(s)
	lc.removeParticles(s)
	lc.interpolateChargesAndCurrents(s)
}

func (lc *LCCurrent) evolveCharges(s *sim.Simulation) {
	g := s.Grid
	as, dt := g.Spacing(), s.Dt
	dir := lc.geo.Direction

	for _, p := range lc.particles {
		p.swap()
		p.move(dt)
		prev, now := p.prev(), p.now()

		iOld := longitudinalIndex(prev.pos[dir], as)
		iNew := longitudinalIndex(now.pos[dir], as)
		cellOld := g.CellIndex(lattice.FlooredGridPoint(prev.pos, as))

		switch {
		case iOld == iNew:
			u := color.Pow(g.U(cellOld, dir), math.Abs(p.vel[dir]*dt/as))
			if p.vel[dir] < 0 {
				u = u.Adj()
			}
			p.evolve(u)
		case iOld < iNew:
			cellNew := g.CellIndex(lattice.FlooredGridPoint(now.pos, as))
			d0 := math.Abs(float64(iNew) - prev.pos[dir]/as)
			d1 := math.Abs(float64(iNew) - now.pos[dir]/as)
			u0 := color.Pow(g.U(cellOld, dir), d0)
			u1 := color.Pow(g.U(cellNew, dir), d1)
			p.evolve(u0.Mult(u1))
		default:
			cellNew := g.CellIndex(lattice.FlooredGridPoint(now.pos, as))
			d0 := math.Abs(float64(iOld) - prev.pos[dir]/as)
			d1 := math.Abs(float64(iOld) - now.pos[dir]/as)
			u0 := color.Pow(g.U(cellOld, dir), d0)
			u1 := color.Pow(g.U(cellNew, dir), d1)
			p.evolve(u1.Mult(u0).Adj())
		}
	}
}

func (lc *LCCurrent) removeParticles(s *sim.Simulation) {
	kept := lc.particles[:0]
	for _, p := range lc.particles {
		if inside(p.now().pos, s) {
			kept = append(kept, p)
			continue
		}
		lc.removed++
	}
	for i := len(kept); i < len(lc.particles); i++ {
		lc.particles[i] = nil
	}
	lc.particles = kept
}

func (lc *LCCurrent) interpolateChargesAndCurrents(s *sim.Simulation) {
	g := s.Grid
	as := g.Spacing()
	c := as / s.Dt
	dir := lc.geo.Direction

	for _, p := range lc.particles {
		prev, now := p.prev(), p.now()

		posOld := lattice.FlooredGridPoint(prev.pos, as)
		posNew := lattice.FlooredGridPoint(now.pos, as)
		cell0Old := g.CellIndex(posOld)
		cell0New := g.CellIndex(posNew)
		cell1New := g.Shift(cell0New, dir, 1)

		d0New := now.pos[dir]/as - float64(posNew[dir])
		d1New := 1 - d0New
		d0Old := prev.pos[dir]/as - float64(posOld[dir])
		d1Old := 1 - d0Old

		uOld := g.Unext(cell0Old, dir)
		uNew := g.U(cell0New, dir)

		q0New := now.q.Act(color.Pow(uNew, d0New)).Mult(d1New)
		q1New := now.q.Act(color.Pow(uNew, d1New).Adj()).Mult(d0New)
		g.AddRho(cell0New, q0New)
		g.AddRho(cell1New, q1New)

		q0Old := prev.q.Act(color.Pow(uOld, d0Old)).Mult(d1Old)

		switch {
		case posOld[dir] == posNew[dir]:
			g.AddJ(cell0New, dir, q0New.Sub(q0Old).Mult(-c))
		case posNew[dir] > posOld[dir]:
			q1Old := prev.q.Act(color.Pow(uOld, d1Old).Adj()).Mult(d0Old)
			jOld := q0Old.Mult(c)
			jNew := jOld.Act(g.U(cell0Old, dir).Adj())
			jNew.AddAssign(q0New.Sub(q1Old).Mult(-c))
			g.AddJ(cell0Old, dir, jOld)
			g.AddJ(cell0New, dir, jNew)
		default:
			jNew := q0New.Mult(-c)
			jOld := jNew.Act(uNew.Adj())
			jOld.AddAssign(q1New.Sub(q0Old).Mult(-c))
			g.AddJ(cell0Old, dir, jOld)
			g.AddJ(cell0New, dir, jNew)
		}
	}
}

func longitudinalIndex(x, as float64) int {
	return int(math.Floor(x / as))
}

// inside reports whether pos lies in [0, box) on every axis.
func inside(pos []float64, s *sim.Simulation) bool {
	for d, x := range pos {
		if x < 0 || x >= s.BoxSize(d) {
			return false
		}
	}
	return true
}
