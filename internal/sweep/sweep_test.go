package sweep

import (
	"context"
	"errors"
	"testing"

	"infospread-sim/internal/simulation"
)

func sweepConfig() simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.TotalAgents = 80
	cfg.ShareRadius = 0.3
	cfg.SharingRate = 0.2
	cfg.MaxTicks = 150
	cfg.Seed = 100
	return cfg
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	cfg := sweepConfig()

	serial, err := Run(context.Background(), cfg, Options{Runs: 6, Workers: 1})
	if err != nil {
		t.Fatalf("serial sweep failed: %v", err)
	}
	parallel, err := Run(context.Background(), cfg, Options{Runs: 6, Workers: 4})
	if err != nil {
		t.Fatalf("parallel sweep failed: %v", err)
	}

	for i := range serial.Runs {
		a, b := serial.Runs[i], parallel.Runs[i]
		if a.Seed != cfg.Seed+int64(i) || a.Seed != b.Seed {
			t.Fatalf("run %d seeds %d / %d", i, a.Seed, b.Seed)
		}
		if a.Summary != b.Summary {
			t.Fatalf("run %d summaries differ:\n%+v\n%+v", i, a.Summary, b.Summary)
		}
		if a.RunID == "" || a.RunID == b.RunID {
			t.Fatalf("run %d should carry distinct run ids", i)
		}
	}
	if serial.PeakAware != parallel.PeakAware || serial.Reach != parallel.Reach {
		t.Fatal("aggregates differ between worker counts")
	}
}

func TestAggregate(t *testing.T) {
	cfg := sweepConfig()
	res, err := Run(context.Background(), cfg, Options{Runs: 4})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(res.Runs) != 4 {
		t.Fatalf("got %d runs, want 4", len(res.Runs))
	}
	sum := 0.0
	for _, r := range res.Runs {
		sum += float64(r.Summary.PeakAware)
		if r.Summary.Ticks > cfg.MaxTicks {
			t.Fatalf("run %d exceeded max ticks", r.Seed)
		}
	}
	if want := sum / 4; res.PeakAware.Mean != want {
		t.Fatalf("peak mean = %v, want %v", res.PeakAware.Mean, want)
	}
	if res.Reach.Mean < 0 || res.Reach.Mean > 1 {
		t.Fatalf("reach mean out of range: %v", res.Reach.Mean)
	}
}

func TestSingleRunHasZeroSpread(t *testing.T) {
	res, err := Run(context.Background(), sweepConfig(), Options{Runs: 1})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if res.PeakAware.StdDev != 0 {
		t.Fatalf("std dev = %v, want 0", res.PeakAware.StdDev)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	if _, err := Run(context.Background(), sweepConfig(), Options{Runs: 0}); err == nil {
		t.Fatal("expected error for zero runs")
	}

	cfg := sweepConfig()
	cfg.SharingRate = 3
	if _, err := Run(context.Background(), cfg, Options{Runs: 2}); !errors.Is(err, simulation.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, sweepConfig(), Options{Runs: 3, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
