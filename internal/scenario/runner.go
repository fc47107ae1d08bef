package scenario

import (
	"io"
	"log/slog"
	"sync"

	"github.com/jacobknodle8/EpidemicModel/internal/config"
	"github.com/jacobknodle8/EpidemicModel/internal/logging"
	"github.com/jacobknodle8/EpidemicModel/internal/seir"
)

// Runner executes a scenario sweep against shared model parameters. Each run
// owns independent engine state, so runs execute concurrently across a
// bounded pool of workers with no synchronization beyond result placement.
type Runner struct {
	params  seir.Params
	workers int
	log     *slog.Logger
	trace   *logging.TraceLogger
}

// NewRunner creates a runner. workers below 1 is treated as 1; a nil logger
// discards output.
func NewRunner(params seir.Params, workers int, log *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{params: params, workers: workers, log: log}
}

// WithTrace attaches a per-run JSONL trace logger. A nil trace is allowed.
func (r *Runner) WithTrace(trace *logging.TraceLogger) *Runner {
	r.trace = trace
	return r
}

// RunAll executes every scenario with the given replicate count and returns
// the completed runs in submission order (scenario order, then replicate).
// Every scenario is validated up front: a configuration error aborts the
// batch before any simulation starts.
func (r *Runner) RunAll(scenarios []config.Scenario, replicates int) ([]Run, error) {
	if replicates < 1 {
		replicates = 1
	}

	for _, sc := range scenarios {
		if _, err := Configure(r.params, sc); err != nil {
			return nil, err
		}
	}

	runs := make([]Run, 0, len(scenarios)*replicates)
	for _, sc := range scenarios {
		for rep := 1; rep <= replicates; rep++ {
			runs = append(runs, Run{Scenario: sc, Replicate: rep})
		}
	}

	workers := r.workers
	if workers > len(runs) {
		workers = len(runs)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				r.execute(&runs[idx])
			}
		}()
	}
	for idx := range runs {
		indexes <- idx
	}
	close(indexes)
	wg.Wait()

	return runs, nil
}

// execute runs one scheduled simulation in place. The scenario was validated
// in RunAll, so Configure cannot fail here.
func (r *Runner) execute(run *Run) {
	m, err := Configure(r.params, run.Scenario)
	if err != nil {
		r.log.Error("configure run", "scenario", run.Scenario.Name, "error", err)
		return
	}
	run.Result = m.Run()

	r.log.Debug("run complete",
		"scenario", run.Scenario.Name,
		"replicate", run.Replicate,
		"max_infected", run.Result.Summary.MaxInfected,
		"total_infected", run.Result.Summary.TotalInfected)
	r.trace.Log(map[string]any{
		"scenario":       run.Scenario.Name,
		"replicate":      run.Replicate,
		"max_infected":   run.Result.Summary.MaxInfected,
		"max_exposed":    run.Result.Summary.MaxExposed,
		"total_infected": run.Result.Summary.TotalInfected,
	})
}
