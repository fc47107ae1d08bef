package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jacobknodle8/EpidemicModel/internal/config"
	"github.com/jacobknodle8/EpidemicModel/internal/export"
	"github.com/jacobknodle8/EpidemicModel/internal/logging"
	"github.com/jacobknodle8/EpidemicModel/internal/scenario"
	"github.com/jacobknodle8/EpidemicModel/internal/store"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run a scenario sweep from a config file",
		Long: `Run every scenario in the config file, replicated and in parallel.

Results accumulate in the configured CSV dataset and SQLite database.
Without --config, a single baseline scenario runs with default parameters.

Example:
  epimodel batch --config scenarios.yaml --workers 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				cfg.Batch.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if cmd.Flags().Changed("replicates") {
				cfg.Batch.Replicates, _ = cmd.Flags().GetInt("replicates")
			}
			if cmd.Flags().Changed("csv") {
				cfg.Output.CSV, _ = cmd.Flags().GetString("csv")
			}
			if cmd.Flags().Changed("db") {
				cfg.Output.SQLite, _ = cmd.Flags().GetString("db")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logging.NewLogger(cfg.Logging.Level, os.Stderr)
			traceDir := "."
			if cfg.Output.SQLite != "" {
				traceDir = filepath.Dir(cfg.Output.SQLite)
			}
			trace := logging.NewTraceLogger(traceDir, cfg.Logging.Level)
			defer trace.Close()

			runner := scenario.NewRunner(cfg.Model.Params(), cfg.Batch.Workers, log).WithTrace(trace)

			log.Info("starting batch",
				"scenarios", len(cfg.Scenarios),
				"replicates", cfg.Batch.Replicates,
				"workers", cfg.Batch.Workers)

			runs, err := runner.RunAll(cfg.Scenarios, cfg.Batch.Replicates)
			if err != nil {
				return err
			}

			if err := persistRuns(cfg, runs); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			return printBatch(cmd, cfg, runs, jsonOut)
		},
	}

	cmd.Flags().String("config", "", "Path to the scenario sweep YAML")
	cmd.Flags().Int("workers", 0, "Override the configured worker count")
	cmd.Flags().Int("replicates", 0, "Override the configured replicate count")
	cmd.Flags().String("csv", "", "Override the summary CSV path")
	cmd.Flags().String("db", "", "Override the SQLite database path")

	return cmd
}

// persistRuns writes completed runs to the configured outputs. Runs are
// written in submission order so the dataset is stable across invocations
// with the same config.
func persistRuns(cfg *config.Config, runs []scenario.Run) error {
	var st *store.RunStore
	if cfg.Output.SQLite != "" {
		var err error
		st, err = store.Open(cfg.Output.SQLite)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	ctx := context.Background()
	for _, run := range runs {
		if st != nil {
			if _, err := st.SaveRun(ctx, run.Scenario.Name, run.Replicate, run.Result); err != nil {
				return fmt.Errorf("saving %s replicate %d: %w", run.Scenario.Name, run.Replicate, err)
			}
		}
		if cfg.Output.CSV != "" {
			if err := export.AppendSummary(cfg.Output.CSV, run.Scenario.Name, run.Replicate, run.Result.Summary); err != nil {
				return fmt.Errorf("appending %s replicate %d: %w", run.Scenario.Name, run.Replicate, err)
			}
		}
	}
	return nil
}

func printBatch(cmd *cobra.Command, cfg *config.Config, runs []scenario.Run, jsonOut bool) error {
	out := cmd.OutOrStdout()

	if jsonOut {
		type runSummary struct {
			Scenario      string  `json:"scenario"`
			Replicate     int     `json:"replicate"`
			MaxInfected   float64 `json:"max_infected"`
			TotalInfected float64 `json:"total_infected"`
		}
		summaries := make([]runSummary, 0, len(runs))
		for _, run := range runs {
			summaries = append(summaries, runSummary{
				Scenario:      run.Scenario.Name,
				Replicate:     run.Replicate,
				MaxInfected:   run.Result.Summary.MaxInfected,
				TotalInfected: run.Result.Summary.TotalInfected,
			})
		}
		return json.NewEncoder(out).Encode(map[string]any{
			"runs":  summaries,
			"count": len(summaries),
			"csv":   cfg.Output.CSV,
			"db":    cfg.Output.SQLite,
		})
	}

	fmt.Fprintf(out, "Completed %d runs (%d scenarios x %d replicates)\n\n",
		len(runs), len(cfg.Scenarios), cfg.Batch.Replicates)
	fmt.Fprintf(out, "%-20s %10s %14s %16s\n", "scenario", "replicate", "max_infected", "total_infected")
	for _, run := range runs {
		fmt.Fprintf(out, "%-20s %10d %14.1f %16.1f\n",
			run.Scenario.Name, run.Replicate,
			run.Result.Summary.MaxInfected, run.Result.Summary.TotalInfected)
	}
	if cfg.Output.CSV != "" {
		fmt.Fprintf(out, "\nSummary dataset: %s\n", cfg.Output.CSV)
	}
	if cfg.Output.SQLite != "" {
		fmt.Fprintf(out, "Run database: %s\n", cfg.Output.SQLite)
	}
	return nil
}
