package experiment

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/config"
	"github.com/san-kum/gaugesim/internal/current"
	"github.com/san-kum/gaugesim/internal/fields"
	"github.com/san-kum/gaugesim/internal/sim"
)

type Registry struct {
	solvers map[string]func(dims int) (*fields.Solver, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		solvers: make(map[string]func(dims int) (*fields.Solver, error)),
	}
	for _, name := range fields.Kinds() {
		kind, _ := fields.ParseKind(name)
		r.solvers[name] = func(dims int) (*fields.Solver, error) { return fields.New(kind, dims) }
	}
	return r
}

func (r *Registry) GetSolver(name string, dims int) (*fields.Solver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s", name)
	}
	return fn(dims)
}

func (r *Registry) ListSolvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generators builds one light-cone current per sheet followed by a single
// ballistic generator holding every test particle. Random sheet charges are
// drawn from rng in sheet order.
func (r *Registry) Generators(cfg *config.Config, f color.Factory, rng *rand.Rand, logger *slog.Logger) ([]current.Generator, error) {
	var gens []current.Generator
	for i, sh := range cfg.Sheets {
		opts := []current.Option{current.WithLogger(logger)}
		if sh.RemoveMonopole {
			opts = append(opts, current.WithMonopoleRemoval())
		}
		if sh.RemoveDipole {
			opts = append(opts, current.WithDipoleRemoval())
		}
		lc := current.NewLCCurrent(sh.Direction, sh.Orientation, sh.Location, sh.Width, opts...)
		for j, c := range cfg.SheetCharges(i, rng) {
			if err := lc.AddCharge(c.Location, c.Color, c.Magnitude); err != nil {
				return nil, fmt.Errorf("sheet %d charge %d: %w", i, j, err)
			}
		}
		gens = append(gens, lc)
	}

	if len(cfg.Particles) > 0 {
		b := current.NewBallistic()
		for _, p := range cfg.Particles {
			b.Add(p.Position, p.Velocity, color.FromComponents(f, p.Charge))
		}
		gens = append(gens, b)
	}
	return gens, nil
}

func (r *Registry) Pulses(cfg *config.Config) []fields.PlanePulse {
	out := make([]fields.PlanePulse, len(cfg.Pulses))
	for i, p := range cfg.Pulses {
		out[i] = fields.PlanePulse{
			Direction:    p.Direction,
			Position:     p.Position,
			Polarization: p.Polarization,
			Color:        p.Color,
			Amplitude:    p.Amplitude,
			Sigma:        p.Sigma,
		}
	}
	return out
}

// Build assembles an experiment from a validated configuration.
func (r *Registry) Build(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := sim.New(cfg.Params())
	if err != nil {
		return nil, err
	}
	solver, err := r.GetSolver(cfg.Solver, s.Dimensions())
	if err != nil {
		return nil, err
	}

	e := newExperiment(cfg, s, solver, opts...)
	rng := rand.New(rand.NewSource(cfg.Seed))
	gens, err := r.Generators(cfg, s.Grid.Factory(), rng, e.logger)
	if err != nil {
		return nil, err
	}
	e.generators = gens
	e.pulses = r.Pulses(cfg)
	if e.metrics == nil {
		e.metrics = defaultMetrics(gens)
	}
	return e, nil
}
