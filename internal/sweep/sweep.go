// Package sweep runs many independent simulations with consecutive seeds and
// aggregates their summaries.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"infospread-sim/internal/report"
	"infospread-sim/internal/simulation"
)

// Options control a sweep.
type Options struct {
	Runs    int
	Workers int // <= 0 uses GOMAXPROCS
	Logger  *slog.Logger
}

// RunResult is the outcome of one simulation in the sweep.
type RunResult struct {
	RunID   string                `json:"run_id"`
	Seed    int64                 `json:"seed"`
	Reason  simulation.StopReason `json:"reason"`
	Summary report.Summary        `json:"summary"`
}

// Stat is a sample mean and standard deviation.
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Result aggregates a sweep. Runs are ordered by seed.
type Result struct {
	Runs      []RunResult `json:"runs"`
	PeakAware Stat        `json:"peak_aware"`
	PeakTick  Stat        `json:"peak_tick"`
	Reach     Stat        `json:"reach"`
	Ticks     Stat        `json:"ticks"`
}

// Run executes opts.Runs simulations with seeds cfg.Seed, cfg.Seed+1, ...
// Each run owns its stepper and RNG, so results do not depend on the number
// of workers. The first failure cancels the remaining runs.
func Run(ctx context.Context, cfg simulation.Config, opts Options) (Result, error) {
	if opts.Runs <= 0 {
		return Result{}, fmt.Errorf("runs must be positive, got %d", opts.Runs)
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	runs := make([]RunResult, opts.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range runs {
		runCfg := cfg
		runCfg.Seed = cfg.Seed + int64(i)
		g.Go(func() error {
			res, err := runOne(ctx, runCfg)
			if err != nil {
				return fmt.Errorf("run with seed %d: %w", runCfg.Seed, err)
			}
			runs[i] = res
			logger.Debug("sweep run finished",
				"run_id", res.RunID,
				"seed", res.Seed,
				"ticks", res.Summary.Ticks,
				"peak_aware", res.Summary.PeakAware)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	out := aggregate(runs)
	logger.Info("sweep finished",
		"runs", len(runs),
		"workers", workers,
		"peak_aware_mean", out.PeakAware.Mean,
		"reach_mean", out.Reach.Mean)
	return out, nil
}

func runOne(ctx context.Context, cfg simulation.Config) (RunResult, error) {
	series := simulation.NewSeries()
	s, err := simulation.NewStepper(cfg, simulation.WithRecorder(series))
	if err != nil {
		return RunResult{}, err
	}
	res, err := s.Run(ctx)
	if err != nil {
		return RunResult{}, err
	}
	summary, err := report.Summarize(series.Records(), cfg.TotalAgents)
	if err != nil {
		return RunResult{}, fmt.Errorf("summarizing run: %w", err)
	}
	return RunResult{RunID: res.RunID, Seed: cfg.Seed, Reason: res.Reason, Summary: summary}, nil
}

func aggregate(runs []RunResult) Result {
	peak := make([]float64, len(runs))
	peakTick := make([]float64, len(runs))
	reach := make([]float64, len(runs))
	ticks := make([]float64, len(runs))
	for i, r := range runs {
		peak[i] = float64(r.Summary.PeakAware)
		peakTick[i] = float64(r.Summary.PeakTick)
		reach[i] = r.Summary.Reach
		ticks[i] = float64(r.Summary.Ticks)
	}
	return Result{
		Runs:      runs,
		PeakAware: meanStdDev(peak),
		PeakTick:  meanStdDev(peakTick),
		Reach:     meanStdDev(reach),
		Ticks:     meanStdDev(ticks),
	}
}

func meanStdDev(x []float64) Stat {
	if len(x) == 1 {
		return Stat{Mean: x[0]}
	}
	mean, std := stat.MeanStdDev(x, nil)
	return Stat{Mean: mean, StdDev: std}
}
