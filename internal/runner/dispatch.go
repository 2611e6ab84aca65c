package runner

import (
	"context"
	"sort"

	"github.com/scenario-runner/sr/internal/errors"
	"github.com/scenario-runner/sr/internal/status"
	"github.com/scenario-runner/sr/internal/types"
)

// Target is a scenario together with the global scope it runs under.
type Target struct {
	Scenario *types.Scenario
	Global   types.GlobalScope
}

// Dispatch maps scenario names to runnable targets.
type Dispatch map[string]Target

// NewDispatch builds the dispatch table for every scenario in cfg.
func NewDispatch(cfg *types.Configuration) Dispatch {
	d := make(Dispatch, len(cfg.Scenarios))
	for name, sc := range cfg.Scenarios {
		d[name] = Target{Scenario: sc, Global: cfg.Global}
	}
	return d
}

// Names returns the scenario names in sorted order.
func (d Dispatch) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the target registered under name.
func (d Dispatch) Lookup(name string) (Target, error) {
	t, ok := d[name]
	if !ok {
		return Target{}, errors.ConfigUnknownScenario(name)
	}
	return t, nil
}

// RunNamed looks up name and runs it on engine.
func (d Dispatch) RunNamed(ctx context.Context, engine *Engine, name string) (*status.Report, error) {
	t, err := d.Lookup(name)
	if err != nil {
		return nil, err
	}
	return engine.Run(ctx, t.Scenario, t.Global), nil
}
