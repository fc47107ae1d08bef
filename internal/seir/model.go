package seir

import "fmt"

// Model is a configured simulation. Construct with New, optionally apply
// intervention setters, then call Run. Run never mutates the Model, so a
// single Model can execute any number of independent runs.
type Model struct {
	params Params
	iv     InterventionSettings
}

// New validates the parameters and returns a Model with no interventions
// configured.
func New(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	return &Model{params: p}, nil
}

// Params returns the simulation parameters.
func (m *Model) Params() Params { return m.params }

// Interventions returns the currently configured intervention settings.
func (m *Model) Interventions() InterventionSettings { return m.iv }

// latched tracks which interventions have activated. Activation is
// monotonic: once a trigger fires, the intervention stays on even if the
// infectious count later drops below its threshold.
type latched struct {
	quarantine  bool
	masking     bool
	vaccination bool
	distancing  bool
}

func (a *latched) update(iv InterventionSettings, day int, infectious float64) {
	if iv.QuarantineEnabled && !a.quarantine {
		a.quarantine = iv.QuarantineTrigger.fires(day, infectious)
	}
	if iv.MaskingEnabled && !a.masking {
		a.masking = iv.MaskTrigger.fires(day, infectious)
	}
	if iv.VaccinationEnabled && !a.vaccination {
		a.vaccination = day >= iv.VaccineStartDay
	}
	if iv.DistancingEnabled && !a.distancing {
		a.distancing = iv.DistancingTrigger.fires(day, infectious)
	}
}

// Run simulates the configured horizon and returns the daily history and the
// run summary. All flows are clamped to their source compartments, so a run
// always completes and S+E+I+R is conserved on every day.
func (m *Model) Run() Result {
	p := m.params
	n := float64(p.Population)

	s := n - float64(p.InitInfected) - float64(p.InitExposed)
	e := float64(p.InitExposed)
	i := float64(p.InitInfected)
	r := 0.0
	q := 0.0 // quarantined, a subset of i
	v := 0.0 // vaccinated, a subset of s

	totalInfected := e + i
	history := make([]DayRecord, 0, p.Days)

	var active latched
	for day := 1; day <= p.Days; day++ {
		active.update(m.iv, day, i)

		beta := p.Beta
		if active.masking {
			beta *= 1 - m.iv.MaskEffectiveness
		}
		contacts := p.ActRate
		if active.distancing {
			contacts *= m.iv.DistancingFactor
		}

		// Force of infection over the start-of-day state. Quarantined
		// individuals do not transmit; vaccinated individuals cannot be
		// infected.
		exposures := clamp(beta*contacts*((i-q)/n)*(s-v), s-v)
		toInfectious := clamp(p.Sigma*e, e)
		toRecovered := clamp(p.Gamma*i, i)
		recoveredFromQ := clamp(p.Gamma*q, q)

		s -= exposures
		e += exposures - toInfectious
		i += toInfectious - toRecovered
		r += toRecovered
		q -= recoveredFromQ

		if active.quarantine {
			q += clamp(m.iv.QuarantineProb*(i-q), i-q)
		}
		if active.vaccination {
			v += clamp(m.iv.VaccineRate*(s-v), s-v)
		}

		totalInfected += exposures
		history = append(history, DayRecord{
			Day:         day,
			Susceptible: s,
			Exposed:     e,
			Infectious:  i,
			Recovered:   r,
			Quarantined: q,
			Vaccinated:  v,
		})
	}

	return Result{
		Params:  p,
		History: history,
		Summary: summarize(m.iv, history, totalInfected),
	}
}

// clamp bounds a flow to [0, limit] so no transition can overdraw its source
// compartment.
func clamp(x, limit float64) float64 {
	if x < 0 {
		return 0
	}
	if x > limit {
		return limit
	}
	return x
}
