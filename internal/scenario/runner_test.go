package scenario

import (
	"testing"

	"github.com/jacobknodle8/EpidemicModel/internal/config"
	"github.com/jacobknodle8/EpidemicModel/internal/seir"
)

func testParams() seir.Params {
	return seir.Params{
		Population:   1000,
		InitInfected: 5,
		InitExposed:  2,
		Days:         30,
		Beta:         0.2,
		Sigma:        0.1,
		Gamma:        0.1,
		ActRate:      6,
	}
}

func testScenarios() []config.Scenario {
	return []config.Scenario{
		{Name: "baseline"},
		{Name: "mask-50", Masking: &config.MaskingSpec{Effectiveness: 0.5, StartDay: 5}},
		{Name: "quarantine-75", Quarantine: &config.QuarantineSpec{Probability: 0.75, Threshold: 20}},
	}
}

func TestConfigureAppliesInterventions(t *testing.T) {
	sc := config.Scenario{
		Name:        "all",
		Quarantine:  &config.QuarantineSpec{Probability: 0.5, StartDay: 10},
		Masking:     &config.MaskingSpec{Effectiveness: 0.6, Threshold: 50},
		Vaccination: &config.VaccinationSpec{Rate: 0.02, StartDay: 5, LeadDays: 20},
		Distancing:  &config.DistancingSpec{Factor: 0.7, StartDay: 8},
	}

	m, err := Configure(testParams(), sc)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	iv := m.Interventions()
	if !iv.QuarantineEnabled || iv.QuarantineProb != 0.5 {
		t.Errorf("quarantine = %+v", iv)
	}
	if !iv.MaskingEnabled || iv.MaskTrigger.Threshold != 50 {
		t.Errorf("masking = %+v", iv)
	}
	if !iv.VaccinationEnabled || iv.VaccineStartDay != 25 {
		t.Errorf("vaccination = %+v", iv)
	}
	if !iv.DistancingEnabled || iv.DistancingFactor != 0.7 {
		t.Errorf("distancing = %+v", iv)
	}
}

func TestConfigureRejectsConflictingTrigger(t *testing.T) {
	sc := config.Scenario{
		Name:    "conflict",
		Masking: &config.MaskingSpec{Effectiveness: 0.5, StartDay: 5, Threshold: 100},
	}
	if _, err := Configure(testParams(), sc); err == nil {
		t.Fatal("Configure() accepted a scenario with both start day and threshold")
	}
}

func TestRunAllCountAndOrder(t *testing.T) {
	runner := NewRunner(testParams(), 4, nil)
	runs, err := runner.RunAll(testScenarios(), 3)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}

	if len(runs) != 9 {
		t.Fatalf("len(runs) = %d, want 9", len(runs))
	}

	wantOrder := []struct {
		name      string
		replicate int
	}{
		{"baseline", 1}, {"baseline", 2}, {"baseline", 3},
		{"mask-50", 1}, {"mask-50", 2}, {"mask-50", 3},
		{"quarantine-75", 1}, {"quarantine-75", 2}, {"quarantine-75", 3},
	}
	for i, want := range wantOrder {
		if runs[i].Scenario.Name != want.name || runs[i].Replicate != want.replicate {
			t.Errorf("runs[%d] = %s/%d, want %s/%d",
				i, runs[i].Scenario.Name, runs[i].Replicate, want.name, want.replicate)
		}
		if len(runs[i].Result.History) != testParams().Days {
			t.Errorf("runs[%d]: history length = %d, want %d",
				i, len(runs[i].Result.History), testParams().Days)
		}
	}
}

// TestRunAllParallelMatchesSerial: the engine is deterministic, so the worker
// count must not change any result.
func TestRunAllParallelMatchesSerial(t *testing.T) {
	serial, err := NewRunner(testParams(), 1, nil).RunAll(testScenarios(), 2)
	if err != nil {
		t.Fatalf("serial RunAll() error = %v", err)
	}
	parallel, err := NewRunner(testParams(), 8, nil).RunAll(testScenarios(), 2)
	if err != nil {
		t.Fatalf("parallel RunAll() error = %v", err)
	}

	for i := range serial {
		if serial[i].Result.Summary != parallel[i].Result.Summary {
			t.Errorf("run %d: serial summary %+v != parallel summary %+v",
				i, serial[i].Result.Summary, parallel[i].Result.Summary)
		}
	}
}

func TestRunAllAbortsOnBadScenario(t *testing.T) {
	scenarios := append(testScenarios(), config.Scenario{
		Name:    "broken",
		Masking: &config.MaskingSpec{Effectiveness: 1.5, StartDay: 5},
	})

	runner := NewRunner(testParams(), 2, nil)
	if _, err := runner.RunAll(scenarios, 1); err == nil {
		t.Fatal("RunAll() accepted an invalid scenario")
	}
}

func TestRunAllReplicatesIdentical(t *testing.T) {
	runner := NewRunner(testParams(), 4, nil)
	runs, err := runner.RunAll([]config.Scenario{{Name: "baseline"}}, 3)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Result.Summary != runs[0].Result.Summary {
			t.Errorf("replicate %d summary differs from replicate 1", i+1)
		}
	}
}
