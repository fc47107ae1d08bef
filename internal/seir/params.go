package seir

import "fmt"

// Params holds the simulation parameters for one run. Params are immutable
// once a Model is constructed.
type Params struct {
	// Population is the total population size N.
	Population int `json:"population"`

	// InitInfected and InitExposed seed the I and E compartments on day 0.
	// Together they must not exceed Population.
	InitInfected int `json:"init_infected"`
	InitExposed  int `json:"init_exposed"`

	// Days is the simulation horizon.
	Days int `json:"days"`

	// Beta is the transmission probability per contact, in [0,1].
	Beta float64 `json:"beta"`

	// Sigma is the exposed -> infectious rate, in [0,1].
	Sigma float64 `json:"sigma"`

	// Gamma is the infectious -> recovered rate, in [0,1].
	Gamma float64 `json:"gamma"`

	// ActRate is the number of contacts per individual per day.
	ActRate float64 `json:"act_rate"`
}

// Validate checks the construction constraints. It returns the first
// violation found.
func (p Params) Validate() error {
	if p.Population <= 0 {
		return fmt.Errorf("population must be positive, got %d", p.Population)
	}
	if p.InitInfected < 0 {
		return fmt.Errorf("init_infected must be non-negative, got %d", p.InitInfected)
	}
	if p.InitExposed < 0 {
		return fmt.Errorf("init_exposed must be non-negative, got %d", p.InitExposed)
	}
	if p.InitInfected+p.InitExposed > p.Population {
		return fmt.Errorf("init_infected + init_exposed (%d) exceeds population %d",
			p.InitInfected+p.InitExposed, p.Population)
	}
	if p.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", p.Days)
	}
	if p.Beta < 0 || p.Beta > 1 {
		return fmt.Errorf("beta must be between 0 and 1, got %g", p.Beta)
	}
	if p.Sigma < 0 || p.Sigma > 1 {
		return fmt.Errorf("sigma must be between 0 and 1, got %g", p.Sigma)
	}
	if p.Gamma < 0 || p.Gamma > 1 {
		return fmt.Errorf("gamma must be between 0 and 1, got %g", p.Gamma)
	}
	if p.ActRate <= 0 {
		return fmt.Errorf("act_rate must be positive, got %g", p.ActRate)
	}
	return nil
}
