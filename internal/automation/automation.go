package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gaugesim/internal/config"
	"github.com/san-kum/gaugesim/internal/experiment"
	"github.com/san-kum/gaugesim/internal/storage"
)

// Scenario is a scripted batch of runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun starts from a preset or a config file and overrides a few
// top-level settings. Zero overrides keep the base value.
type ScenarioRun struct {
	Preset string `yaml:"preset,omitempty"`
	Config string `yaml:"config,omitempty"`
	Name   string `yaml:"name,omitempty"`
	Solver string `yaml:"solver,omitempty"`
	Steps  int    `yaml:"steps,omitempty"`
	Seed   int64  `yaml:"seed,omitempty"`
}

// Outcome pairs a finished run with its stored ID. RunID is empty when the
// scenario runs without a store.
type Outcome struct {
	Name   string
	RunID  string
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("%s: scenario has no runs", path)
	}
	return &scenario, nil
}

// Resolve builds the configuration of one run.
func (r ScenarioRun) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case r.Config != "" && r.Preset != "":
		return nil, fmt.Errorf("run sets both preset %q and config %q", r.Preset, r.Config)
	case r.Config != "":
		c, err := config.Load(r.Config)
		if err != nil {
			return nil, err
		}
		cfg = c
	case r.Preset != "":
		cfg = config.GetPreset(r.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", r.Preset)
		}
	default:
		return nil, fmt.Errorf("run needs a preset or a config")
	}

	if r.Name != "" {
		cfg.Name = r.Name
	}
	if r.Solver != "" {
		cfg.Solver = r.Solver
	}
	if r.Steps > 0 {
		cfg.Steps = r.Steps
	}
	if r.Seed != 0 {
		cfg.Seed = r.Seed
	}
	return cfg, cfg.Validate()
}

// RunScenario executes the runs in order and saves each one to st when st
// is not nil. It stops at the first failing run.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger *slog.Logger) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		cfg, err := run.Resolve()
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}
		logger.Info("scenario run", "scenario", scenario.Name, "index", i+1, "of", len(scenario.Runs), "name", cfg.Name)

		exp, err := experiment.New(cfg, experiment.WithLogger(logger.With("run", cfg.Name)))
		if err != nil {
			return outcomes, fmt.Errorf("run %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx, cfg.Steps)
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		out := Outcome{Name: cfg.Name, Result: result}
		if st != nil {
			if out.RunID, err = st.Save(cfg, result); err != nil {
				return outcomes, fmt.Errorf("run %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
