package simulation

import (
	"testing"

	"infospread-sim/internal/common"
)

// scriptedSource replays vals in a loop and counts draws.
type scriptedSource struct {
	vals  []float64
	draws int
}

func (s *scriptedSource) Float64() float64 {
	v := s.vals[s.draws%len(s.vals)]
	s.draws++
	return v
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.TotalAgents = 150
	cfg.ShareRadius = 0.3
	cfg.SharingRate = 0.2
	cfg.MaxTicks = 300
	cfg.Seed = 42
	return cfg
}

func unitBounds() common.Bounds {
	return common.NewBounds(-1, 1, -1, 1)
}

func agentAt(state State, x, y float64) Agent {
	a := Agent{Position: common.NewVector(x, y), State: state, AwareSince: NotAware}
	if state != Unaware {
		a.AwareSince = 0
	}
	return a
}

func newTestStepper(t *testing.T, cfg Config, opts ...Option) *Stepper {
	t.Helper()
	s, err := NewStepper(cfg, opts...)
	if err != nil {
		t.Fatalf("NewStepper failed: %v", err)
	}
	return s
}
