package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jacobknodle8/EpidemicModel/internal/seir"
)

// RunStore persists completed simulation runs to a SQLite database.
// Run identifiers are assigned by the store on insert.
type RunStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the run database at path and initializes the
// schema.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// SaveRun writes one completed run in a single transaction: the run row, its
// per-day history, and its totals. It returns the run id assigned by the
// store.
func (s *RunStore) SaveRun(ctx context.Context, scenario string, replicate int, res seir.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p := res.Params
	iv := res.Summary.Interventions
	insert, err := tx.ExecContext(ctx, `
		INSERT INTO simulation_runs (
			scenario, replicate, created_at,
			population, init_infected, init_exposed, days,
			beta, sigma, gamma, act_rate,
			quarantine_enabled, quarantine_prob, quarantine_start_day, quarantine_threshold,
			masking_enabled, mask_effectiveness, mask_start_day, mask_threshold,
			vaccination_enabled, vaccine_rate, vaccine_start_day,
			distancing_enabled, distancing_factor, distancing_start_day, distancing_threshold
		) VALUES (?, ?, datetime('now'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scenario, replicate,
		p.Population, p.InitInfected, p.InitExposed, p.Days,
		p.Beta, p.Sigma, p.Gamma, p.ActRate,
		iv.QuarantineEnabled, iv.QuarantineProb, iv.QuarantineTrigger.StartDay, iv.QuarantineTrigger.Threshold,
		iv.MaskingEnabled, iv.MaskEffectiveness, iv.MaskTrigger.StartDay, iv.MaskTrigger.Threshold,
		iv.VaccinationEnabled, iv.VaccineRate, iv.VaccineStartDay,
		iv.DistancingEnabled, iv.DistancingFactor, iv.DistancingTrigger.StartDay, iv.DistancingTrigger.Threshold,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := insert.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	dayStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO simulation_results (run_id, day, susceptible, exposed, infectious, recovered, quarantined, vaccinated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare results insert: %w", err)
	}
	defer dayStmt.Close()

	for _, d := range res.History {
		if _, err := dayStmt.ExecContext(ctx, runID, d.Day,
			d.Susceptible, d.Exposed, d.Infectious, d.Recovered, d.Quarantined, d.Vaccinated); err != nil {
			return 0, fmt.Errorf("failed to insert day %d: %w", d.Day, err)
		}
	}

	sum := res.Summary
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO run_totals (run_id, max_infected, max_exposed, max_quarantined, max_vaccinated, total_infected)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, sum.MaxInfected, sum.MaxExposed, sum.MaxQuarantined, sum.MaxVaccinated, sum.TotalInfected); err != nil {
		return 0, fmt.Errorf("failed to insert totals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// RunMeta identifies a stored run.
type RunMeta struct {
	ID        int64
	Scenario  string
	Replicate int
	CreatedAt string
}

// ListRuns returns all stored runs in insertion order.
func (s *RunStore) ListRuns(ctx context.Context) ([]RunMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scenario, replicate, created_at FROM simulation_runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		var m RunMeta
		if err := rows.Scan(&m.ID, &m.Scenario, &m.Replicate, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

// History returns the per-day compartment snapshots of a run in day order.
func (s *RunStore) History(ctx context.Context, runID int64) ([]seir.DayRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, susceptible, exposed, infectious, recovered, quarantined, vaccinated
		FROM simulation_results WHERE run_id = ? ORDER BY day`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []seir.DayRecord
	for rows.Next() {
		var d seir.DayRecord
		if err := rows.Scan(&d.Day, &d.Susceptible, &d.Exposed, &d.Infectious,
			&d.Recovered, &d.Quarantined, &d.Vaccinated); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		history = append(history, d)
	}
	return history, rows.Err()
}

// Totals returns the peak and cumulative metrics of a run.
func (s *RunStore) Totals(ctx context.Context, runID int64) (seir.Summary, error) {
	var sum seir.Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT max_infected, max_exposed, max_quarantined, max_vaccinated, total_infected
		FROM run_totals WHERE run_id = ?`, runID).Scan(
		&sum.MaxInfected, &sum.MaxExposed, &sum.MaxQuarantined, &sum.MaxVaccinated, &sum.TotalInfected)
	if err != nil {
		return seir.Summary{}, fmt.Errorf("failed to query totals for run %d: %w", runID, err)
	}
	return sum, nil
}
