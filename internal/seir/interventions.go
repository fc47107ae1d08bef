package seir

import "fmt"

// Trigger is the activation rule for an intervention: either a start day or
// an infectious-count threshold, never both. Once a trigger fires it stays
// active for the remainder of the run.
type Trigger struct {
	// StartDay activates the intervention on every day >= StartDay (1-based).
	// Zero means unset.
	StartDay int `json:"start_day,omitempty"`

	// Threshold activates the intervention once the infectious compartment
	// reaches this count, evaluated at the start of each day. Zero means
	// unset.
	Threshold float64 `json:"threshold,omitempty"`
}

// OnDay returns a trigger that fires on the given day.
func OnDay(day int) Trigger { return Trigger{StartDay: day} }

// AtInfectious returns a trigger that fires once the infectious count
// reaches n.
func AtInfectious(n float64) Trigger { return Trigger{Threshold: n} }

func (tr Trigger) validate() error {
	if tr.StartDay != 0 && tr.Threshold != 0 {
		return fmt.Errorf("cannot set both a start day and a threshold")
	}
	if tr.StartDay == 0 && tr.Threshold == 0 {
		return fmt.Errorf("either a start day or a threshold is required")
	}
	if tr.StartDay < 0 {
		return fmt.Errorf("start day must be positive, got %d", tr.StartDay)
	}
	if tr.Threshold < 0 {
		return fmt.Errorf("threshold must be positive, got %g", tr.Threshold)
	}
	return nil
}

// fires reports whether the trigger condition holds on the given day with the
// given infectious count. Latching is the caller's responsibility.
func (tr Trigger) fires(day int, infectious float64) bool {
	if tr.StartDay > 0 {
		return day >= tr.StartDay
	}
	return infectious >= tr.Threshold
}

// InterventionSettings is the configured intervention state of a Model. It is
// echoed back unchanged in the run summary so that downstream analysis can
// key results by scenario parameters.
type InterventionSettings struct {
	QuarantineEnabled bool    `json:"quarantine_enabled"`
	QuarantineProb    float64 `json:"quarantine_prob,omitempty"`
	QuarantineTrigger Trigger `json:"quarantine_trigger,omitempty"`

	MaskingEnabled    bool    `json:"masking_enabled"`
	MaskEffectiveness float64 `json:"mask_effectiveness,omitempty"`
	MaskTrigger       Trigger `json:"mask_trigger,omitempty"`

	VaccinationEnabled bool    `json:"vaccination_enabled"`
	VaccineRate        float64 `json:"vaccine_rate,omitempty"`
	VaccineStartDay    int     `json:"vaccine_start_day,omitempty"`

	DistancingEnabled bool    `json:"distancing_enabled"`
	DistancingFactor  float64 `json:"distancing_factor,omitempty"`
	DistancingTrigger Trigger `json:"distancing_trigger,omitempty"`
}

// SetQuarantine configures daily isolation of infectious individuals: once
// active, a fraction prob of the non-quarantined infectious pool is isolated
// each day. Quarantined individuals keep recovering but no longer transmit.
// Calling SetQuarantine again replaces the previous configuration.
func (m *Model) SetQuarantine(prob float64, tr Trigger) error {
	if prob < 0 || prob > 1 {
		return fmt.Errorf("quarantine probability must be between 0 and 1, got %g", prob)
	}
	if err := tr.validate(); err != nil {
		return fmt.Errorf("quarantine trigger: %w", err)
	}
	m.iv.QuarantineEnabled = true
	m.iv.QuarantineProb = prob
	m.iv.QuarantineTrigger = tr
	return nil
}

// SetMasking configures a multiplicative reduction of the transmission
// probability: once active, effective beta = beta * (1 - effectiveness).
// Calling SetMasking again replaces the previous configuration.
func (m *Model) SetMasking(effectiveness float64, tr Trigger) error {
	if effectiveness < 0 || effectiveness > 1 {
		return fmt.Errorf("mask effectiveness must be between 0 and 1, got %g", effectiveness)
	}
	if err := tr.validate(); err != nil {
		return fmt.Errorf("masking trigger: %w", err)
	}
	m.iv.MaskingEnabled = true
	m.iv.MaskEffectiveness = effectiveness
	m.iv.MaskTrigger = tr
	return nil
}

// SetVaccination configures daily immunization of the susceptible pool
// starting on startDay + leadDays. leadDays models vaccine development time
// before doses are available. Vaccinated individuals leave the susceptible
// pool permanently for the remainder of the run. Calling SetVaccination again
// replaces the previous configuration.
func (m *Model) SetVaccination(rate float64, startDay, leadDays int) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("vaccination rate must be between 0 and 1, got %g", rate)
	}
	if startDay <= 0 {
		return fmt.Errorf("vaccination start day must be positive, got %d", startDay)
	}
	if leadDays < 0 {
		return fmt.Errorf("vaccine lead days must be non-negative, got %d", leadDays)
	}
	m.iv.VaccinationEnabled = true
	m.iv.VaccineRate = rate
	m.iv.VaccineStartDay = startDay + leadDays
	return nil
}

// SetDistancing configures a multiplicative reduction of the contact rate:
// once active, effective contacts = act_rate * factor. The factor must be in
// (0,1) so the effective contact rate stays strictly positive and actually
// reduced. Calling SetDistancing again replaces the previous configuration.
func (m *Model) SetDistancing(factor float64, tr Trigger) error {
	if factor <= 0 || factor >= 1 {
		return fmt.Errorf("distancing factor must be between 0 and 1 exclusive, got %g", factor)
	}
	if err := tr.validate(); err != nil {
		return fmt.Errorf("distancing trigger: %w", err)
	}
	m.iv.DistancingEnabled = true
	m.iv.DistancingFactor = factor
	m.iv.DistancingTrigger = tr
	return nil
}
