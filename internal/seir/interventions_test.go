package seir

import "testing"

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(validParams())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestTriggerRequiresExactlyOneRule(t *testing.T) {
	m := newTestModel(t)

	if err := m.SetQuarantine(0.5, Trigger{StartDay: 10, Threshold: 50}); err == nil {
		t.Error("SetQuarantine accepted both a start day and a threshold")
	}
	if err := m.SetQuarantine(0.5, Trigger{}); err == nil {
		t.Error("SetQuarantine accepted an empty trigger")
	}
	if err := m.SetQuarantine(0.5, OnDay(10)); err != nil {
		t.Errorf("SetQuarantine(OnDay) error = %v", err)
	}
	if err := m.SetQuarantine(0.5, AtInfectious(50)); err != nil {
		t.Errorf("SetQuarantine(AtInfectious) error = %v", err)
	}
}

func TestSetterRangeChecks(t *testing.T) {
	m := newTestModel(t)

	if err := m.SetQuarantine(1.5, OnDay(10)); err == nil {
		t.Error("SetQuarantine accepted probability > 1")
	}
	if err := m.SetMasking(-0.1, OnDay(10)); err == nil {
		t.Error("SetMasking accepted negative effectiveness")
	}
	if err := m.SetVaccination(1.2, 10, 0); err == nil {
		t.Error("SetVaccination accepted rate > 1")
	}
	if err := m.SetVaccination(0.1, 0, 0); err == nil {
		t.Error("SetVaccination accepted non-positive start day")
	}
	if err := m.SetVaccination(0.1, 10, -1); err == nil {
		t.Error("SetVaccination accepted negative lead days")
	}
	if err := m.SetDistancing(0, OnDay(10)); err == nil {
		t.Error("SetDistancing accepted zero factor")
	}
	if err := m.SetDistancing(1.0, OnDay(10)); err == nil {
		t.Error("SetDistancing accepted factor of 1")
	}
}

func TestSetterLastWriteWins(t *testing.T) {
	m := newTestModel(t)

	if err := m.SetMasking(0.3, OnDay(5)); err != nil {
		t.Fatalf("SetMasking() error = %v", err)
	}
	if err := m.SetMasking(0.8, AtInfectious(100)); err != nil {
		t.Fatalf("SetMasking() error = %v", err)
	}

	iv := m.Interventions()
	if iv.MaskEffectiveness != 0.8 {
		t.Errorf("MaskEffectiveness = %g, want 0.8", iv.MaskEffectiveness)
	}
	if iv.MaskTrigger.StartDay != 0 || iv.MaskTrigger.Threshold != 100 {
		t.Errorf("MaskTrigger = %+v, want threshold 100", iv.MaskTrigger)
	}
}

func TestVaccinationLeadDaysDelayStart(t *testing.T) {
	m := newTestModel(t)
	if err := m.SetVaccination(0.05, 10, 30); err != nil {
		t.Fatalf("SetVaccination() error = %v", err)
	}
	if got := m.Interventions().VaccineStartDay; got != 40 {
		t.Errorf("VaccineStartDay = %d, want 40", got)
	}
}
