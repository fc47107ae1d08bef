package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default() config invalid: %v", err)
	}
	if c.Model.Population != 10000 {
		t.Errorf("Population = %d, want 10000", c.Model.Population)
	}
	if len(c.Scenarios) != 1 || c.Scenarios[0].Name != "baseline" {
		t.Errorf("Scenarios = %+v, want single baseline", c.Scenarios)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
model:
  population: 5000
  init_infected: 20
  init_exposed: 10
  days: 60
  beta: 0.3
  sigma: 0.2
  gamma: 0.15
  act_rate: 5
batch:
  replicates: 3
  workers: 8
output:
  csv: out.csv
  sqlite: out.db
logging:
  level: debug
scenarios:
  - name: baseline
  - name: mask-50
    masking:
      effectiveness: 0.5
      start_day: 10
  - name: quarantine-threshold
    quarantine:
      probability: 0.75
      threshold: 100
  - name: vaccinate-delayed
    vaccination:
      rate: 0.05
      start_day: 10
      lead_days: 30
  - name: distance-40
    distancing:
      factor: 0.6
      start_day: 15
`
	path := filepath.Join(t.TempDir(), "epimodel.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if c.Model.Population != 5000 || c.Model.Beta != 0.3 {
		t.Errorf("Model = %+v", c.Model)
	}
	if c.Batch.Replicates != 3 || c.Batch.Workers != 8 {
		t.Errorf("Batch = %+v", c.Batch)
	}
	if c.Output.SQLite != "out.db" {
		t.Errorf("Output.SQLite = %q, want out.db", c.Output.SQLite)
	}
	if len(c.Scenarios) != 5 {
		t.Fatalf("len(Scenarios) = %d, want 5", len(c.Scenarios))
	}

	mask := c.Scenarios[1].Masking
	if mask == nil || mask.Effectiveness != 0.5 || mask.StartDay != 10 {
		t.Errorf("masking scenario = %+v", c.Scenarios[1])
	}
	quar := c.Scenarios[2].Quarantine
	if quar == nil || quar.Probability != 0.75 || quar.Threshold != 100 {
		t.Errorf("quarantine scenario = %+v", c.Scenarios[2])
	}
	vac := c.Scenarios[3].Vaccination
	if vac == nil || vac.LeadDays != 30 {
		t.Errorf("vaccination scenario = %+v", c.Scenarios[3])
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadFromFile() succeeded on missing file")
	}
}

func TestLoadFromFileEmptyScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epimodel.yaml")
	if err := os.WriteFile(path, []byte("model:\n  population: 100\n  init_infected: 1\n  days: 10\n  beta: 0.2\n  sigma: 0.1\n  gamma: 0.1\n  act_rate: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if len(c.Scenarios) != 1 || c.Scenarios[0].Name != "baseline" {
		t.Errorf("Scenarios = %+v, want single baseline fallback", c.Scenarios)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad model", func(c *Config) { c.Model.Population = 0 }},
		{"zero replicates", func(c *Config) { c.Batch.Replicates = 0 }},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unnamed scenario", func(c *Config) { c.Scenarios = append(c.Scenarios, Scenario{}) }},
		{"duplicate scenario", func(c *Config) {
			c.Scenarios = append(c.Scenarios, Scenario{Name: "baseline"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() accepted invalid config")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EPIMODEL_LOG_LEVEL", "trace")
	t.Setenv("EPIMODEL_WORKERS", "16")
	t.Setenv("EPIMODEL_CSV", "override.csv")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Logging.Level != "trace" {
		t.Errorf("Level = %q, want trace", c.Logging.Level)
	}
	if c.Batch.Workers != 16 {
		t.Errorf("Workers = %d, want 16", c.Batch.Workers)
	}
	if c.Output.CSV != "override.csv" {
		t.Errorf("CSV = %q, want override.csv", c.Output.CSV)
	}
}
