package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobknodle8/EpidemicModel/internal/export"
	"github.com/jacobknodle8/EpidemicModel/internal/seir"
	"github.com/jacobknodle8/EpidemicModel/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single simulation",
		Long: `Run one simulation with the given parameters and interventions.

Each intervention is enabled by setting its main flag plus exactly one
activation flag: a start day or an infectious-count threshold (vaccination
takes a start day and optional lead days instead).

Examples:
  epimodel run --days 100 --beta 0.2
  epimodel run --mask-effectiveness 0.5 --mask-day 10
  epimodel run --quarantine-prob 0.3 --quarantine-threshold 50 --db runs.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := seir.Params{}
			params.Population, _ = cmd.Flags().GetInt("population")
			params.InitInfected, _ = cmd.Flags().GetInt("infected")
			params.InitExposed, _ = cmd.Flags().GetInt("exposed")
			params.Days, _ = cmd.Flags().GetInt("days")
			params.Beta, _ = cmd.Flags().GetFloat64("beta")
			params.Sigma, _ = cmd.Flags().GetFloat64("sigma")
			params.Gamma, _ = cmd.Flags().GetFloat64("gamma")
			params.ActRate, _ = cmd.Flags().GetFloat64("act-rate")

			model, err := seir.New(params)
			if err != nil {
				return err
			}

			if prob, _ := cmd.Flags().GetFloat64("quarantine-prob"); cmd.Flags().Changed("quarantine-prob") {
				day, _ := cmd.Flags().GetInt("quarantine-day")
				threshold, _ := cmd.Flags().GetFloat64("quarantine-threshold")
				if err := model.SetQuarantine(prob, seir.Trigger{StartDay: day, Threshold: threshold}); err != nil {
					return err
				}
			}
			if eff, _ := cmd.Flags().GetFloat64("mask-effectiveness"); cmd.Flags().Changed("mask-effectiveness") {
				day, _ := cmd.Flags().GetInt("mask-day")
				threshold, _ := cmd.Flags().GetFloat64("mask-threshold")
				if err := model.SetMasking(eff, seir.Trigger{StartDay: day, Threshold: threshold}); err != nil {
					return err
				}
			}
			if rate, _ := cmd.Flags().GetFloat64("vaccine-rate"); cmd.Flags().Changed("vaccine-rate") {
				day, _ := cmd.Flags().GetInt("vaccine-day")
				lead, _ := cmd.Flags().GetInt("vaccine-lead")
				if err := model.SetVaccination(rate, day, lead); err != nil {
					return err
				}
			}
			if factor, _ := cmd.Flags().GetFloat64("distancing-factor"); cmd.Flags().Changed("distancing-factor") {
				day, _ := cmd.Flags().GetInt("distancing-day")
				threshold, _ := cmd.Flags().GetFloat64("distancing-threshold")
				if err := model.SetDistancing(factor, seir.Trigger{StartDay: day, Threshold: threshold}); err != nil {
					return err
				}
			}

			res := model.Run()

			if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
				if err := export.WriteHistory(csvPath, res.History); err != nil {
					return err
				}
			}
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				s, err := store.Open(dbPath)
				if err != nil {
					return err
				}
				defer s.Close()
				if _, err := s.SaveRun(context.Background(), "run", 1, res); err != nil {
					return err
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			showHistory, _ := cmd.Flags().GetBool("history")
			return printResult(cmd, res, jsonOut, showHistory)
		},
	}

	cmd.Flags().Int("population", 10000, "Total population")
	cmd.Flags().Int("infected", 10, "Initial infectious count")
	cmd.Flags().Int("exposed", 5, "Initial exposed count")
	cmd.Flags().Int("days", 100, "Simulation horizon in days")
	cmd.Flags().Float64("beta", 0.2, "Transmission probability per contact")
	cmd.Flags().Float64("sigma", 0.1, "Exposed to infectious rate")
	cmd.Flags().Float64("gamma", 0.1, "Infectious to recovered rate")
	cmd.Flags().Float64("act-rate", 7, "Contacts per individual per day")

	cmd.Flags().Float64("quarantine-prob", 0, "Daily quarantine probability for infectious cases")
	cmd.Flags().Int("quarantine-day", 0, "Quarantine start day")
	cmd.Flags().Float64("quarantine-threshold", 0, "Quarantine infectious-count trigger")
	cmd.Flags().Float64("mask-effectiveness", 0, "Mask transmission reduction (0-1)")
	cmd.Flags().Int("mask-day", 0, "Masking start day")
	cmd.Flags().Float64("mask-threshold", 0, "Masking infectious-count trigger")
	cmd.Flags().Float64("vaccine-rate", 0, "Daily vaccination rate of susceptibles")
	cmd.Flags().Int("vaccine-day", 0, "Vaccine program start day")
	cmd.Flags().Int("vaccine-lead", 0, "Vaccine development lead days")
	cmd.Flags().Float64("distancing-factor", 0, "Contact rate multiplier, between 0 and 1 exclusive")
	cmd.Flags().Int("distancing-day", 0, "Distancing start day")
	cmd.Flags().Float64("distancing-threshold", 0, "Distancing infectious-count trigger")

	cmd.Flags().Bool("history", false, "Print the per-day compartment table")
	cmd.Flags().String("csv", "", "Write the per-day history to this CSV file")
	cmd.Flags().String("db", "", "Save the run to this SQLite database")

	return cmd
}

func printResult(cmd *cobra.Command, res seir.Result, jsonOut, showHistory bool) error {
	out := cmd.OutOrStdout()

	if jsonOut {
		if showHistory {
			return json.NewEncoder(out).Encode(res)
		}
		return json.NewEncoder(out).Encode(res.Summary)
	}

	sum := res.Summary
	fmt.Fprintf(out, "Simulated %d days over a population of %d\n\n", res.Params.Days, res.Params.Population)
	fmt.Fprintf(out, "  Peak infected (E+I): %.1f\n", sum.MaxInfected)
	fmt.Fprintf(out, "  Peak exposed:        %.1f\n", sum.MaxExposed)
	if sum.Interventions.QuarantineEnabled {
		fmt.Fprintf(out, "  Peak quarantined:    %.1f\n", sum.MaxQuarantined)
	}
	if sum.Interventions.VaccinationEnabled {
		fmt.Fprintf(out, "  Peak vaccinated:     %.1f\n", sum.MaxVaccinated)
	}
	fmt.Fprintf(out, "  Total ever infected: %.1f\n", sum.TotalInfected)

	if showHistory {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%5s %12s %12s %12s %12s %12s %12s\n",
			"day", "susceptible", "exposed", "infectious", "recovered", "quarantined", "vaccinated")
		for _, d := range res.History {
			fmt.Fprintf(out, "%5d %12.2f %12.2f %12.2f %12.2f %12.2f %12.2f\n",
				d.Day, d.Susceptible, d.Exposed, d.Infectious, d.Recovered, d.Quarantined, d.Vaccinated)
		}
	}
	return nil
}
