// Package config provides unified configuration loading for epimodel.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jacobknodle8/EpidemicModel/internal/seir"
)

// Config contains all epimodel configuration settings.
type Config struct {
	// Model holds the shared simulation parameters for every scenario.
	Model ModelConfig `yaml:"model"`

	// Batch controls scenario sweep execution.
	Batch BatchConfig `yaml:"batch"`

	// Output names the persistence targets for run results.
	Output OutputConfig `yaml:"output"`

	// Logging configures operational logging.
	Logging LoggingConfig `yaml:"logging"`

	// Scenarios is the list of intervention combinations to sweep.
	// An empty list means a single no-intervention baseline.
	Scenarios []Scenario `yaml:"scenarios"`
}

// ModelConfig mirrors seir.Params in YAML form.
type ModelConfig struct {
	Population   int     `yaml:"population"`
	InitInfected int     `yaml:"init_infected"`
	InitExposed  int     `yaml:"init_exposed"`
	Days         int     `yaml:"days"`
	Beta         float64 `yaml:"beta"`
	Sigma        float64 `yaml:"sigma"`
	Gamma        float64 `yaml:"gamma"`
	ActRate      float64 `yaml:"act_rate"`
}

// Params converts the YAML form to engine parameters.
func (m ModelConfig) Params() seir.Params {
	return seir.Params{
		Population:   m.Population,
		InitInfected: m.InitInfected,
		InitExposed:  m.InitExposed,
		Days:         m.Days,
		Beta:         m.Beta,
		Sigma:        m.Sigma,
		Gamma:        m.Gamma,
		ActRate:      m.ActRate,
	}
}

// BatchConfig controls the scenario sweep.
type BatchConfig struct {
	// Replicates is the number of runs per scenario. The engine is
	// deterministic, so replicates mainly shape the output dataset for
	// downstream analysis.
	Replicates int `yaml:"replicates"`

	// Workers caps the number of runs executing concurrently.
	Workers int `yaml:"workers"`
}

// OutputConfig names the persistence targets. Empty values disable a target.
type OutputConfig struct {
	// CSV is the path of the cumulative summary dataset.
	CSV string `yaml:"csv,omitempty"`

	// SQLite is the path of the relational store.
	SQLite string `yaml:"sqlite,omitempty"`
}

// LoggingConfig configures operational logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" additionally enables the per-run JSONL trace.
	Level string `yaml:"level"`
}

// Scenario is one intervention combination in the sweep. Unset blocks leave
// the corresponding intervention disabled.
type Scenario struct {
	Name        string           `yaml:"name"`
	Quarantine  *QuarantineSpec  `yaml:"quarantine,omitempty"`
	Masking     *MaskingSpec     `yaml:"masking,omitempty"`
	Vaccination *VaccinationSpec `yaml:"vaccination,omitempty"`
	Distancing  *DistancingSpec  `yaml:"distancing,omitempty"`
}

// QuarantineSpec configures infectious-case isolation. Exactly one of
// StartDay or Threshold must be set.
type QuarantineSpec struct {
	Probability float64 `yaml:"probability"`
	StartDay    int     `yaml:"start_day,omitempty"`
	Threshold   float64 `yaml:"threshold,omitempty"`
}

// MaskingSpec configures transmission reduction. Exactly one of StartDay or
// Threshold must be set.
type MaskingSpec struct {
	Effectiveness float64 `yaml:"effectiveness"`
	StartDay      int     `yaml:"start_day,omitempty"`
	Threshold     float64 `yaml:"threshold,omitempty"`
}

// VaccinationSpec configures daily immunization from StartDay + LeadDays.
type VaccinationSpec struct {
	Rate     float64 `yaml:"rate"`
	StartDay int     `yaml:"start_day"`
	LeadDays int     `yaml:"lead_days,omitempty"`
}

// DistancingSpec configures contact-rate reduction. Exactly one of StartDay
// or Threshold must be set.
type DistancingSpec struct {
	Factor    float64 `yaml:"factor"`
	StartDay  int     `yaml:"start_day,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
}

// Default returns a Config with sensible defaults: the reference parameter
// set and a single baseline scenario.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Population:   10000,
			InitInfected: 10,
			InitExposed:  5,
			Days:         100,
			Beta:         0.2,
			Sigma:        0.1,
			Gamma:        0.1,
			ActRate:      7,
		},
		Batch: BatchConfig{
			Replicates: 1,
			Workers:    4,
		},
		Output: OutputConfig{
			CSV: "epidemic_data.csv",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Scenarios: []Scenario{{Name: "baseline"}},
	}
}

// Load loads configuration from path and applies environment overrides.
// An empty path returns the defaults with overrides applied.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	config.Scenarios = nil // file scenarios replace the default baseline
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if len(config.Scenarios) == 0 {
		config.Scenarios = []Scenario{{Name: "baseline"}}
	}
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Model.Params().Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if c.Batch.Replicates <= 0 {
		return fmt.Errorf("batch replicates must be positive, got %d", c.Batch.Replicates)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch workers must be positive, got %d", c.Batch.Workers)
	}

	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	names := make(map[string]bool, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		if sc.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if names[sc.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, sc.Name)
		}
		names[sc.Name] = true
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("EPIMODEL_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("EPIMODEL_CSV"); v != "" {
		config.Output.CSV = v
	}
	if v := os.Getenv("EPIMODEL_SQLITE"); v != "" {
		config.Output.SQLite = v
	}
	if v := os.Getenv("EPIMODEL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Batch.Workers = n
		}
	}
	if v := os.Getenv("EPIMODEL_REPLICATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Batch.Replicates = n
		}
	}
}
