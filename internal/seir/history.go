package seir

// DayRecord is the compartment snapshot at the end of one simulated day.
// Days are 1-based; the history holds exactly Params.Days records.
type DayRecord struct {
	Day         int     `json:"day"`
	Susceptible float64 `json:"susceptible"`
	Exposed     float64 `json:"exposed"`
	Infectious  float64 `json:"infectious"`
	Recovered   float64 `json:"recovered"`
	Quarantined float64 `json:"quarantined"`
	Vaccinated  float64 `json:"vaccinated"`
}

// Infected is the combined E+I count, the quantity tracked as "infected"
// in the run summary.
func (d DayRecord) Infected() float64 { return d.Exposed + d.Infectious }

// Summary is the run-level record: the scenario's intervention parameters
// echoed back plus the derived peak and cumulative metrics.
type Summary struct {
	Interventions InterventionSettings `json:"interventions"`

	// MaxInfected is the peak combined E+I over the run.
	MaxInfected    float64 `json:"max_infected"`
	MaxExposed     float64 `json:"max_exposed"`
	MaxQuarantined float64 `json:"max_quarantined"`
	MaxVaccinated  float64 `json:"max_vaccinated"`

	// TotalInfected is the cumulative number of individuals ever infected,
	// including the initial exposed and infectious seed.
	TotalInfected float64 `json:"total_infected"`
}

// Result is the complete output of one run.
type Result struct {
	Params  Params      `json:"params"`
	History []DayRecord `json:"history"`
	Summary Summary     `json:"summary"`
}

// summarize derives the peak metrics from the history so that the reported
// summary is exactly the column maxima of the returned rows.
func summarize(iv InterventionSettings, history []DayRecord, totalInfected float64) Summary {
	s := Summary{Interventions: iv, TotalInfected: totalInfected}
	for _, d := range history {
		if inf := d.Infected(); inf > s.MaxInfected {
			s.MaxInfected = inf
		}
		if d.Exposed > s.MaxExposed {
			s.MaxExposed = d.Exposed
		}
		if d.Quarantined > s.MaxQuarantined {
			s.MaxQuarantined = d.Quarantined
		}
		if d.Vaccinated > s.MaxVaccinated {
			s.MaxVaccinated = d.Vaccinated
		}
	}
	return s
}
