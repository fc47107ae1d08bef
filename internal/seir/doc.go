// Package seir implements a compartmental SEIR epidemic model with an
// optional public-health intervention layer (quarantine, masking,
// vaccination, social distancing).
//
// The model is deterministic: compartments are continuous (float64) and every
// transition is a rate flow computed from the start-of-day state, so a run is
// fully reproducible from its parameters alone. There is no random sampling
// and therefore no rounding policy.
//
// Compartment accounting: S + E + I + R equals the population size N on every
// day. Quarantined (Q) and vaccinated (V) are cross-cutting labels — Q counts
// individuals inside I that have been isolated, V counts individuals inside S
// that have been immunized — so neither adds to the total.
//
// A Model is configured with setters before Run. Run allocates fresh state on
// each call; a Model holds no results and may be run repeatedly or from
// several goroutines at once.
package seir
