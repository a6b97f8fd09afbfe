package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/san-kum/gaugesim/internal/config"
	"github.com/san-kum/gaugesim/internal/current"
	"github.com/san-kum/gaugesim/internal/fields"
	"github.com/san-kum/gaugesim/internal/metrics"
	"github.com/san-kum/gaugesim/internal/sim"
)

// StepInfo is passed to observers after every completed step, and once
// after Setup with Step = 0.
type StepInfo struct {
	Step    int
	Time    float64
	Elapsed time.Duration
	Metrics map[string]float64
}

type Observer interface {
	OnStep(info StepInfo)
}

type ObserverFunc func(info StepInfo)

func (f ObserverFunc) OnStep(info StepInfo) { f(info) }

// Series holds one row of metric values per recorded step. Columns follow
// Names.
type Series struct {
	Names  []string
	Steps  []int
	Times  []float64
	Values [][]float64
}

// Column returns the values of the named metric, or nil if it was not
// recorded.
func (s *Series) Column(name string) []float64 {
	col := -1
	for i, n := range s.Names {
		if n == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	out := make([]float64, len(s.Values))
	for i, row := range s.Values {
		out[i] = row[col]
	}
	return out
}

func (s *Series) Len() int { return len(s.Steps) }

type Result struct {
	Steps     int
	Time      float64
	Elapsed   time.Duration
	Metrics   map[string]float64
	Series    Series
	Particles int
	Removed   int
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option { return func(e *Experiment) { e.logger = l } }

func WithObserver(o Observer) Option {
	return func(e *Experiment) { e.observers = append(e.observers, o) }
}

// WithMetrics replaces the default metric set.
func WithMetrics(m ...metrics.Metric) Option { return func(e *Experiment) { e.metrics = m } }

type Experiment struct {
	cfg        *config.Config
	sim        *sim.Simulation
	solver     *fields.Solver
	generators []current.Generator
	pulses     []fields.PlanePulse
	metrics    []metrics.Metric
	observers  []Observer
	logger     *slog.Logger

	ready  bool
	series Series
}

// New assembles an experiment from cfg using the default registry.
func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	return NewRegistry().Build(cfg, opts...)
}

// NewWith wires an experiment from prebuilt parts. Generators are
// initialized by Setup in the order given.
func NewWith(s *sim.Simulation, solver *fields.Solver, gens []current.Generator, opts ...Option) *Experiment {
	e := newExperiment(nil, s, solver, opts...)
	e.generators = gens
	if e.metrics == nil {
		e.metrics = defaultMetrics(gens)
	}
	return e
}

func newExperiment(cfg *config.Config, s *sim.Simulation, solver *fields.Solver, opts ...Option) *Experiment {
	e := &Experiment{cfg: cfg, sim: s, solver: solver}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

func defaultMetrics(gens []current.Generator) []metrics.Metric {
	cs := make([]metrics.Counter, 0, len(gens))
	for _, g := range gens {
		if c, ok := g.(metrics.Counter); ok {
			cs = append(cs, c)
		}
	}
	return metrics.Default(cs...)
}

func (e *Experiment) Simulation() *sim.Simulation     { return e.sim }
func (e *Experiment) Solver() *fields.Solver          { return e.solver }
func (e *Experiment) Generators() []current.Generator { return e.generators }
func (e *Experiment) Metrics() []metrics.Metric       { return e.metrics }
func (e *Experiment) Config() *config.Config          { return e.cfg }
func (e *Experiment) AddObserver(o Observer)          { e.observers = append(e.observers, o) }
func (e *Experiment) Series() *Series                 { return &e.series }

// Setup initializes every generator, adds the plane pulses, seeds B from
// the resulting links and records the initial state. It must be called once
// before Step.
func (e *Experiment) Setup() error {
	if e.ready {
		return fmt.Errorf("experiment already set up")
	}
	for i, g := range e.generators {
		if err := g.InitializeCurrent(e.sim); err != nil {
			return fmt.Errorf("generator %d: %w", i, err)
		}
	}
	for i, p := range e.pulses {
		if err := p.Apply(e.sim); err != nil {
			return fmt.Errorf("pulse %d: %w", i, err)
		}
	}
	e.solver.Init(e.sim)

	e.series = Series{}
	for _, m := range e.metrics {
		m.Reset()
		e.series.Names = append(e.series.Names, m.Name())
	}
	e.ready = true

	e.logger.Info("experiment ready",
		"solver", e.solver.Kind(),
		"dims", e.sim.Dimensions(),
		"cells", e.sim.Grid.TotalCells(),
		"colors", e.sim.Colors,
		"generators", len(e.generators),
		"particles", e.particles())

	e.record(0)
	return nil
}

// Step advances the system by one time step: charges are cleared, every
// generator deposits its current, the field solver runs and the metrics are
// read.
func (e *Experiment) Step() error {
	if !e.ready {
		return fmt.Errorf("experiment not setup")
	}
	start := time.Now()

	e.sim.Grid.ResetCharges()
	for _, g := range e.generators {
		g.ApplyCurrent(e.sim)
	}
	e.solver.Step(e.sim)
	e.sim.Steps++

	energy := metrics.ElectricFieldEnergy(e.sim) + metrics.MagneticFieldEnergy(e.sim)
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return &sim.StepError{Step: e.sim.Steps, Time: e.sim.Time(), Err: sim.ErrUnstable}
	}

	info := e.record(time.Since(start))
	e.logger.Debug("step", "step", info.Step, "t", info.Time, "energy", energy, "elapsed", info.Elapsed)
	return nil
}

func (e *Experiment) record(elapsed time.Duration) StepInfo {
	values := make(map[string]float64, len(e.metrics))
	row := make([]float64, len(e.metrics))
	for i, m := range e.metrics {
		m.Observe(e.sim)
		row[i] = m.Value()
		values[m.Name()] = row[i]
	}
	e.series.Steps = append(e.series.Steps, e.sim.Steps)
	e.series.Times = append(e.series.Times, e.sim.Time())
	e.series.Values = append(e.series.Values, row)

	info := StepInfo{Step: e.sim.Steps, Time: e.sim.Time(), Elapsed: elapsed, Metrics: values}
	for _, o := range e.observers {
		o.OnStep(info)
	}
	return info
}

// Run calls Setup if needed and then performs steps steps. Cancellation is
// checked between steps; the partial result is returned alongside the
// error.
func (e *Experiment) Run(ctx context.Context, steps int) (*Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: negative step count %d", sim.ErrInvalidParameter, steps)
	}
	if !e.ready {
		if err := e.Setup(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			err := &sim.StepError{
				Step: e.sim.Steps,
				Time: e.sim.Time(),
				Err:  fmt.Errorf("%w: %w", sim.ErrCanceled, ctx.Err()),
			}
			return e.Result(time.Since(start)), err
		default:
		}
		if err := e.Step(); err != nil {
			return e.Result(time.Since(start)), err
		}
	}

	res := e.Result(time.Since(start))
	e.logger.Info("run complete", "steps", res.Steps, "t", res.Time, "elapsed", res.Elapsed, "removed", res.Removed)
	return res, nil
}

// Result summarizes the run so far. elapsed is reported as given.
func (e *Experiment) Result(elapsed time.Duration) *Result {
	final := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		final[m.Name()] = m.Value()
	}
	return &Result{
		Steps:     e.sim.Steps,
		Time:      e.sim.Time(),
		Elapsed:   elapsed,
		Metrics:   final,
		Series:    e.series,
		Particles: e.particles(),
		Removed:   e.removed(),
	}
}

func (e *Experiment) particles() int {
	n := 0
	for _, g := range e.generators {
		if c, ok := g.(current.Counter); ok {
			n += c.NumParticles()
		}
	}
	return n
}

func (e *Experiment) removed() int {
	n := 0
	for _, g := range e.generators {
		if r, ok := g.(interface{ Removed() int }); ok {
			n += r.Removed()
		}
	}
	return n
}
