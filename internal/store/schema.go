// Package store persists simulation runs to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the SQLite store.
const schemaV1 = `
-- One row per simulation run (parameters and intervention settings,
-- denormalized so a run is reproducible from its row alone)
CREATE TABLE IF NOT EXISTS simulation_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    scenario TEXT NOT NULL,
    replicate INTEGER NOT NULL,
    created_at TEXT NOT NULL,

    -- Model parameters
    population INTEGER NOT NULL,
    init_infected INTEGER NOT NULL,
    init_exposed INTEGER NOT NULL,
    days INTEGER NOT NULL,
    beta REAL NOT NULL,
    sigma REAL NOT NULL,
    gamma REAL NOT NULL,
    act_rate REAL NOT NULL,

    -- Intervention settings (enabled flags gate the remaining columns)
    quarantine_enabled INTEGER NOT NULL DEFAULT 0,
    quarantine_prob REAL NOT NULL DEFAULT 0,
    quarantine_start_day INTEGER NOT NULL DEFAULT 0,
    quarantine_threshold REAL NOT NULL DEFAULT 0,

    masking_enabled INTEGER NOT NULL DEFAULT 0,
    mask_effectiveness REAL NOT NULL DEFAULT 0,
    mask_start_day INTEGER NOT NULL DEFAULT 0,
    mask_threshold REAL NOT NULL DEFAULT 0,

    vaccination_enabled INTEGER NOT NULL DEFAULT 0,
    vaccine_rate REAL NOT NULL DEFAULT 0,
    vaccine_start_day INTEGER NOT NULL DEFAULT 0,

    distancing_enabled INTEGER NOT NULL DEFAULT 0,
    distancing_factor REAL NOT NULL DEFAULT 0,
    distancing_start_day INTEGER NOT NULL DEFAULT 0,
    distancing_threshold REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_scenario ON simulation_runs(scenario);

-- Per-day compartment snapshots
CREATE TABLE IF NOT EXISTS simulation_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
    day INTEGER NOT NULL,
    susceptible REAL NOT NULL,
    exposed REAL NOT NULL,
    infectious REAL NOT NULL,
    recovered REAL NOT NULL,
    quarantined REAL NOT NULL,
    vaccinated REAL NOT NULL,
    UNIQUE (run_id, day)
);
CREATE INDEX IF NOT EXISTS idx_results_run ON simulation_results(run_id);

-- Run-level peak and cumulative metrics
CREATE TABLE IF NOT EXISTS run_totals (
    run_id INTEGER PRIMARY KEY REFERENCES simulation_runs(id) ON DELETE CASCADE,
    max_infected REAL NOT NULL,
    max_exposed REAL NOT NULL,
    max_quarantined REAL NOT NULL,
    max_vaccinated REAL NOT NULL,
    total_infected REAL NOT NULL
);

-- Schema version
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InitSchema initializes the database schema.
// It creates all tables and applies migrations as needed.
func InitSchema(ctx context.Context, db *sql.DB) error {
	// Check current schema version
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// Schema version table doesn't exist yet, create fresh schema
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}

	// Apply migrations if needed
	if currentVersion < SchemaVersion {
		if err := migrateSchema(ctx, db, currentVersion); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version from the database.
// Returns 0 and an error if the schema_version table doesn't exist.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// createSchema creates the initial database schema.
func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// migrateSchema applies migrations from currentVersion to SchemaVersion.
func migrateSchema(ctx context.Context, db *sql.DB, currentVersion int) error {
	// Currently only one version, no migrations needed
	_ = currentVersion
	return nil
}
