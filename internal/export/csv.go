// Package export writes run summaries to cumulative CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jacobknodle8/EpidemicModel/internal/seir"
)

// csvHeader is the column layout of the summary CSV. One row per run,
// keyed by scenario and replicate, with the intervention settings echoed
// so rows are self-describing.
var csvHeader = []string{
	"scenario", "replicate",
	"quarantine_enabled", "quarantine_prob", "quarantine_start_day", "quarantine_threshold",
	"masking_enabled", "mask_effectiveness", "mask_start_day", "mask_threshold",
	"vaccination_enabled", "vaccine_rate", "vaccine_start_day",
	"distancing_enabled", "distancing_factor", "distancing_start_day", "distancing_threshold",
	"max_infected", "max_exposed", "max_quarantined", "max_vaccinated", "total_infected",
}

// AppendSummary appends one run summary row to the CSV at path, writing the
// header first if the file does not exist yet. Repeated calls accumulate
// rows across runs and process restarts.
func AppendSummary(path, scenario string, replicate int, sum seir.Summary) error {
	writeHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}

	iv := sum.Interventions
	row := []string{
		scenario, strconv.Itoa(replicate),
		formatBool(iv.QuarantineEnabled), formatFloat(iv.QuarantineProb),
		strconv.Itoa(iv.QuarantineTrigger.StartDay), formatFloat(iv.QuarantineTrigger.Threshold),
		formatBool(iv.MaskingEnabled), formatFloat(iv.MaskEffectiveness),
		strconv.Itoa(iv.MaskTrigger.StartDay), formatFloat(iv.MaskTrigger.Threshold),
		formatBool(iv.VaccinationEnabled), formatFloat(iv.VaccineRate),
		strconv.Itoa(iv.VaccineStartDay),
		formatBool(iv.DistancingEnabled), formatFloat(iv.DistancingFactor),
		strconv.Itoa(iv.DistancingTrigger.StartDay), formatFloat(iv.DistancingTrigger.Threshold),
		formatFloat(sum.MaxInfected), formatFloat(sum.MaxExposed),
		formatFloat(sum.MaxQuarantined), formatFloat(sum.MaxVaccinated),
		formatFloat(sum.TotalInfected),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}

	w.Flush()
	return w.Error()
}

// WriteHistory writes the full per-day history of one run to its own CSV at
// path, overwriting any existing file.
func WriteHistory(path string, history []seir.DayRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"day", "susceptible", "exposed", "infectious", "recovered", "quarantined", "vaccinated"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, d := range history {
		row := []string{
			strconv.Itoa(d.Day),
			formatFloat(d.Susceptible), formatFloat(d.Exposed), formatFloat(d.Infectious),
			formatFloat(d.Recovered), formatFloat(d.Quarantined), formatFloat(d.Vaccinated),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write day %d: %w", d.Day, err)
		}
	}

	w.Flush()
	return w.Error()
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
