package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gaugesim/internal/color"
	"github.com/san-kum/gaugesim/internal/fields"
	"github.com/san-kum/gaugesim/internal/sim"
)

const (
	DefaultSpacing  = 1.0
	DefaultDt       = 0.5
	DefaultCoupling = 1.0
	DefaultColors   = 2
	DefaultSteps    = 100
	DefaultSolver   = "yangmills"
)

type Config struct {
	Name      string           `yaml:"name"`
	Grid      GridConfig       `yaml:"grid"`
	Solver    string           `yaml:"solver"`
	Workers   int              `yaml:"workers,omitempty"`
	Steps     int              `yaml:"steps"`
	Seed      int64            `yaml:"seed"`
	Sheets    []SheetConfig    `yaml:"sheets,omitempty"`
	Particles []ParticleConfig `yaml:"particles,omitempty"`
	Pulses    []PulseConfig    `yaml:"pulses,omitempty"`
}

type GridConfig struct {
	Cells    []int   `yaml:"cells"`
	Spacing  float64 `yaml:"spacing"`
	Dt       float64 `yaml:"dt"`
	Coupling float64 `yaml:"coupling"`
	Colors   int     `yaml:"colors"`
}

// SheetConfig describes one light-cone current.
type SheetConfig struct {
	Direction      int                 `yaml:"direction"`
	Orientation    int                 `yaml:"orientation"`
	Location       float64             `yaml:"location"`
	Width          float64             `yaml:"width"`
	RemoveMonopole bool                `yaml:"remove_monopole,omitempty"`
	RemoveDipole   bool                `yaml:"remove_dipole,omitempty"`
	Charges        []ChargeConfig      `yaml:"charges,omitempty"`
	Random         *RandomChargeConfig `yaml:"random,omitempty"`
}

type ChargeConfig struct {
	Location  []float64 `yaml:"location"`
	Color     []float64 `yaml:"color"`
	Magnitude float64   `yaml:"magnitude"`
}

// RandomChargeConfig scatters Count charges of the given magnitude with
// random transverse locations and color directions.
type RandomChargeConfig struct {
	Count     int     `yaml:"count"`
	Magnitude float64 `yaml:"magnitude"`
}

type ParticleConfig struct {
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
	Charge   []float64 `yaml:"charge"`
}

type PulseConfig struct {
	Direction    []float64 `yaml:"direction"`
	Position     []float64 `yaml:"position"`
	Polarization []float64 `yaml:"polarization"`
	Color        []float64 `yaml:"color"`
	Amplitude    float64   `yaml:"amplitude"`
	Sigma        float64   `yaml:"sigma"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "default",
		Grid: GridConfig{
			Cells:    []int{64, 32},
			Spacing:  DefaultSpacing,
			Dt:       DefaultDt,
			Coupling: DefaultCoupling,
			Colors:   DefaultColors,
		},
		Solver: DefaultSolver,
		Steps:  DefaultSteps,
		Seed:   1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy of c. No slice of the copy aliases c.
func (c *Config) Clone() *Config {
	out := *c
	out.Grid.Cells = append([]int(nil), c.Grid.Cells...)
	if c.Sheets != nil {
		out.Sheets = make([]SheetConfig, len(c.Sheets))
		for i, sh := range c.Sheets {
			if sh.Charges != nil {
				charges := make([]ChargeConfig, len(sh.Charges))
				for k, ch := range sh.Charges {
					ch.Location = cloneFloats(ch.Location)
					ch.Color = cloneFloats(ch.Color)
					charges[k] = ch
				}
				sh.Charges = charges
			}
			if sh.Random != nil {
				r := *sh.Random
				sh.Random = &r
			}
			out.Sheets[i] = sh
		}
	}
	if c.Particles != nil {
		out.Particles = make([]ParticleConfig, len(c.Particles))
		for i, p := range c.Particles {
			out.Particles[i] = ParticleConfig{
				Position: cloneFloats(p.Position),
				Velocity: cloneFloats(p.Velocity),
				Charge:   cloneFloats(p.Charge),
			}
		}
	}
	if c.Pulses != nil {
		out.Pulses = make([]PulseConfig, len(c.Pulses))
		for i, p := range c.Pulses {
			p.Direction = cloneFloats(p.Direction)
			p.Position = cloneFloats(p.Position)
			p.Polarization = cloneFloats(p.Polarization)
			p.Color = cloneFloats(p.Color)
			out.Pulses[i] = p
		}
	}
	return &out
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}

// Params converts the grid section into simulation parameters.
func (c *Config) Params() sim.Params {
	return sim.Params{
		NumCells: append([]int(nil), c.Grid.Cells...),
		Spacing:  c.Grid.Spacing,
		Dt:       c.Grid.Dt,
		Coupling: c.Grid.Coupling,
		Colors:   c.Grid.Colors,
		Workers:  c.Workers,
	}
}

// Validate checks what can be checked without building the grid. The
// simulation, solver and generators validate the rest on construction.
func (c *Config) Validate() error {
	if len(c.Grid.Cells) == 0 {
		return fmt.Errorf("%w: grid has no cells", sim.ErrInvalidParameter)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: negative step count %d", sim.ErrInvalidParameter, c.Steps)
	}
	if _, err := fields.ParseKind(c.Solver); err != nil {
		return err
	}
	dims := len(c.Grid.Cells)
	for i, sh := range c.Sheets {
		if sh.Direction < 0 || sh.Direction >= dims {
			return fmt.Errorf("%w: sheet %d direction %d", sim.ErrInvalidParameter, i, sh.Direction)
		}
		if sh.Random != nil && sh.Random.Count < 0 {
			return fmt.Errorf("%w: sheet %d random count %d", sim.ErrInvalidParameter, i, sh.Random.Count)
		}
	}
	for i, p := range c.Particles {
		if len(p.Position) != dims || len(p.Velocity) != dims {
			return fmt.Errorf("%w: particle %d needs %d coordinates", sim.ErrInvalidParameter, i, dims)
		}
	}
	return nil
}

// SheetCharges returns the explicit charges of a sheet followed by its
// random ones. Random charges are drawn from rng, so a fixed seed gives a
// fixed configuration.
func (c *Config) SheetCharges(i int, rng *rand.Rand) []ChargeConfig {
	sh := c.Sheets[i]
	out := append([]ChargeConfig(nil), sh.Charges...)
	if sh.Random == nil {
		return out
	}

	components := color.ComponentsFor(c.Grid.Colors)
	for n := 0; n < sh.Random.Count; n++ {
		loc := make([]float64, 0, len(c.Grid.Cells)-1)
		for d, cells := range c.Grid.Cells {
			if d != sh.Direction {
				loc = append(loc, rng.Float64()*float64(cells-1)*c.Grid.Spacing)
			}
		}
		col := make([]float64, components)
		for k := range col {
			col[k] = rng.NormFloat64()
		}
		out = append(out, ChargeConfig{Location: loc, Color: col, Magnitude: sh.Random.Magnitude})
	}
	return out
}
