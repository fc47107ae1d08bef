package seir

import "testing"

func validParams() Params {
	return Params{
		Population:   10000,
		InitInfected: 10,
		InitExposed:  5,
		Days:         100,
		Beta:         0.2,
		Sigma:        0.1,
		Gamma:        0.1,
		ActRate:      7,
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"valid", func(p *Params) {}, false},
		{"zero population", func(p *Params) { p.Population = 0 }, true},
		{"negative population", func(p *Params) { p.Population = -5 }, true},
		{"negative init infected", func(p *Params) { p.InitInfected = -1 }, true},
		{"negative init exposed", func(p *Params) { p.InitExposed = -1 }, true},
		{"seed exceeds population", func(p *Params) { p.InitInfected = 9999; p.InitExposed = 2 }, true},
		{"seed equals population", func(p *Params) { p.InitInfected = 9995; p.InitExposed = 5 }, false},
		{"zero days", func(p *Params) { p.Days = 0 }, true},
		{"beta above one", func(p *Params) { p.Beta = 1.1 }, true},
		{"beta negative", func(p *Params) { p.Beta = -0.1 }, true},
		{"sigma above one", func(p *Params) { p.Sigma = 2 }, true},
		{"gamma negative", func(p *Params) { p.Gamma = -1 }, true},
		{"zero act rate", func(p *Params) { p.ActRate = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsInvalidParams(t *testing.T) {
	p := validParams()
	p.Population = -1
	if _, err := New(p); err == nil {
		t.Fatal("New() accepted invalid parameters")
	}
}
