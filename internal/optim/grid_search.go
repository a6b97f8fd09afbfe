package optim

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/gaugesim/internal/config"
	"github.com/san-kum/gaugesim/internal/experiment"
)

// Setter writes one swept value into a configuration.
type Setter func(cfg *config.Config, v float64)

// Parameters are the configuration values a grid search can vary.
var Parameters = map[string]Setter{
	"dt":       func(c *config.Config, v float64) { c.Grid.Dt = v },
	"spacing":  func(c *config.Config, v float64) { c.Grid.Spacing = v },
	"coupling": func(c *config.Config, v float64) { c.Grid.Coupling = v },
	"width": func(c *config.Config, v float64) {
		for i := range c.Sheets {
			c.Sheets[i].Width = v
		}
	},
	"amplitude": func(c *config.Config, v float64) {
		for i := range c.Pulses {
			c.Pulses[i].Amplitude = v
		}
	},
}

func ParameterNames() []string {
	names := make([]string, 0, len(Parameters))
	for name := range Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluation is one point of the search.
type Evaluation struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := Parameters[name]; !ok {
			return nil, fmt.Errorf("unknown parameter %q", name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("parameter %q has no values", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search runs base for steps steps at every grid point and returns the
// point with the smallest final value of metric, along with every
// evaluation in grid order. Points whose configuration is invalid or whose
// run diverges are recorded with their error and never win. Cancellation
// stops the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, steps int, metric string) (*Evaluation, []Evaluation, error) {
	var evals []Evaluation
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, steps, metric, &evals)
	if err != nil {
		return nil, evals, err
	}

	var best *Evaluation
	for i := range evals {
		e := &evals[i]
		if e.Err != nil || math.IsNaN(e.Value) {
			continue
		}
		if best == nil || e.Value < best.Value {
			best = e
		}
	}
	if best == nil {
		return nil, evals, fmt.Errorf("no grid point produced %s", metric)
	}
	return best, evals, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	steps int,
	metric string,
	evals *[]Evaluation,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*evals = append(*evals, evaluate(ctx, base, params, steps, metric))
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, base, steps, metric, evals); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

func evaluate(ctx context.Context, base *config.Config, params map[string]float64, steps int, metric string) Evaluation {
	cfg := base.Clone()
	for name, v := range params {
		Parameters[name](cfg, v)
	}

	eval := Evaluation{Params: params, Value: math.NaN()}
	exp, err := experiment.New(cfg)
	if err != nil {
		eval.Err = err
		return eval
	}
	result, err := exp.Run(ctx, steps)
	if err != nil {
		eval.Err = err
		return eval
	}
	v, ok := result.Metrics[metric]
	if !ok {
		eval.Err = fmt.Errorf("metric %q not recorded", metric)
		return eval
	}
	eval.Value = v
	return eval
}
