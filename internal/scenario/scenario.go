// Package scenario expands intervention scenarios into engine runs and
// executes them as a parallel batch.
package scenario

import (
	"fmt"

	"github.com/jacobknodle8/EpidemicModel/internal/config"
	"github.com/jacobknodle8/EpidemicModel/internal/seir"
)

// Run is one scheduled simulation: a scenario plus a replicate index.
// After RunAll completes, Result holds the engine output.
type Run struct {
	Scenario  config.Scenario
	Replicate int
	Result    seir.Result
}

// Configure builds a Model for the scenario on top of the shared parameters.
// It returns a configuration error before any simulation starts if the
// scenario's intervention blocks are invalid.
func Configure(params seir.Params, sc config.Scenario) (*seir.Model, error) {
	m, err := seir.New(params)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	if q := sc.Quarantine; q != nil {
		if err := m.SetQuarantine(q.Probability, trigger(q.StartDay, q.Threshold)); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	if mk := sc.Masking; mk != nil {
		if err := m.SetMasking(mk.Effectiveness, trigger(mk.StartDay, mk.Threshold)); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	if v := sc.Vaccination; v != nil {
		if err := m.SetVaccination(v.Rate, v.StartDay, v.LeadDays); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	if d := sc.Distancing; d != nil {
		if err := m.SetDistancing(d.Factor, trigger(d.StartDay, d.Threshold)); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	return m, nil
}

// trigger passes the configured day/threshold pair through unchanged so the
// engine's exactly-one validation applies to the YAML form as well.
func trigger(startDay int, threshold float64) seir.Trigger {
	return seir.Trigger{StartDay: startDay, Threshold: threshold}
}
