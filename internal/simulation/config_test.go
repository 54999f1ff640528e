package simulation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"infospread-sim/internal/common"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero agents", func(c *Config) { c.TotalAgents = 0 }, "total_agents"},
		{"degenerate bounds", func(c *Config) { c.Bounds = common.NewBounds(1, 1, 0, 1) }, "bounds"},
		{"margin too wide", func(c *Config) { c.SpawnMargin = 3 }, "spawn_margin"},
		{"zero radius", func(c *Config) { c.ShareRadius = 0 }, "share_radius"},
		{"nan radius", func(c *Config) { c.ShareRadius = math.NaN() }, "share_radius"},
		{"sharing above one", func(c *Config) { c.SharingRate = 1.5 }, "sharing_rate"},
		{"negative ignore", func(c *Config) { c.IgnoreRate = -0.1 }, "ignore_rate"},
		{"negative speed", func(c *Config) { c.Speed = -1 }, "speed"},
		{"too many aware", func(c *Config) { c.InitialAware = c.TotalAgents + 1 }, "initial_aware_count"},
		{"negative aware", func(c *Config) { c.InitialAware = -1 }, "initial_aware_count"},
		{"zero dwell", func(c *Config) { c.DwellThreshold = 0 }, "dwell_threshold"},
		{"zero max ticks", func(c *Config) { c.MaxTicks = 0 }, "max_ticks"},
		{"zero min ticks", func(c *Config) { c.MinTicksBeforeTermination = 0 }, "min_ticks_before_termination"},
		{"bad policy", func(c *Config) { c.Policy = ContagionPolicy(7) }, "policy"},
		{"bad index", func(c *Config) { c.Index = IndexKind(7) }, "index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("field = %q, want %q", cerr.Field, tt.field)
			}

			if _, err := NewStepper(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewStepper accepted invalid config: %v", err)
			}
		})
	}
}

func TestConfigValidateReportsEveryViolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SharingRate = 2
	cfg.IgnoreRate = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, field := range []string{"sharing_rate", "ignore_rate"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error %q does not mention %s", msg, field)
		}
	}
}

func TestNewPopulation(t *testing.T) {
	cfg := DefaultConfig()
	agents, err := NewPopulation(cfg, NewRNG(cfg.Seed))
	if err != nil {
		t.Fatalf("NewPopulation failed: %v", err)
	}
	if len(agents) != cfg.TotalAgents {
		t.Fatalf("len = %d, want %d", len(agents), cfg.TotalAgents)
	}

	spawn, _ := cfg.Bounds.Inset(cfg.SpawnMargin)
	for i, a := range agents {
		if a.ID != i {
			t.Fatalf("agent %d has ID %d", i, a.ID)
		}
		if !spawn.Contains(a.Position) {
			t.Fatalf("agent %d spawned at %s outside %s", i, a.Position, spawn)
		}
		if math.Abs(a.Velocity.X) > cfg.Speed || math.Abs(a.Velocity.Y) > cfg.Speed {
			t.Fatalf("agent %d velocity %s exceeds speed %g", i, a.Velocity, cfg.Speed)
		}
		wantState, wantSince := Unaware, NotAware
		if i < cfg.InitialAware {
			wantState, wantSince = Aware, 0
		}
		if a.State != wantState || a.AwareSince != wantSince {
			t.Fatalf("agent %d = %s, want %s since %d", i, a, wantState, wantSince)
		}
	}
}
