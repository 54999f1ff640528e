package simulation

import (
	"errors"
	"fmt"
	"math"

	"infospread-sim/internal/common"
)

// ErrInvalidConfig is matched by every configuration error.
var ErrInvalidConfig = errors.New("invalid simulation configuration")

// ConfigError describes one violated configuration constraint.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Config holds everything a Stepper needs before its first tick.
type Config struct {
	TotalAgents  int
	Bounds       common.Bounds
	ShareRadius  float64
	SharingRate  float64
	IgnoreRate   float64
	Speed        float64
	InitialAware int
	// DwellThreshold is the number of aware ticks before boredom draws begin.
	DwellThreshold            int
	MaxTicks                  int
	MinTicksBeforeTermination int
	// SpawnMargin insets the rectangle agents are spawned in.
	SpawnMargin float64
	Seed        int64

	Policy ContagionPolicy
	Index  IndexKind
}

// DefaultConfig returns the parameters of the reference scene.
func DefaultConfig() Config {
	return Config{
		TotalAgents:               500,
		Bounds:                    common.NewBounds(-6.5, -1, -2, 2),
		ShareRadius:               0.15,
		SharingRate:               0.08,
		IgnoreRate:                0.05,
		Speed:                     0.04,
		InitialAware:              5,
		DwellThreshold:            40,
		MaxTicks:                  1200,
		MinTicksBeforeTermination: 20,
		SpawnMargin:               0.2,
		Seed:                      1,
		Policy:                    LiveRead,
		Index:                     BruteForce,
	}
}

// Validate checks every constraint and returns all violations joined.
func (c Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if c.TotalAgents <= 0 {
		bad("total_agents", "must be positive, got %d", c.TotalAgents)
	}
	if err := c.Bounds.Validate(); err != nil {
		bad("bounds", "%v", err)
	} else if _, err := c.Bounds.Inset(c.SpawnMargin); err != nil {
		bad("spawn_margin", "%v", err)
	}
	if !(c.ShareRadius > 0) || math.IsInf(c.ShareRadius, 0) {
		bad("share_radius", "must be a positive finite number, got %g", c.ShareRadius)
	}
	if !isProbability(c.SharingRate) {
		bad("sharing_rate", "must be in [0, 1], got %g", c.SharingRate)
	}
	if !isProbability(c.IgnoreRate) {
		bad("ignore_rate", "must be in [0, 1], got %g", c.IgnoreRate)
	}
	if !(c.Speed >= 0) || math.IsInf(c.Speed, 0) {
		bad("speed", "must be a non-negative finite number, got %g", c.Speed)
	}
	if c.InitialAware < 0 || c.InitialAware > c.TotalAgents {
		bad("initial_aware_count", "must be in [0, total_agents=%d], got %d", c.TotalAgents, c.InitialAware)
	}
	if c.DwellThreshold <= 0 {
		bad("dwell_threshold", "must be positive, got %d", c.DwellThreshold)
	}
	if c.MaxTicks <= 0 {
		bad("max_ticks", "must be positive, got %d", c.MaxTicks)
	}
	if c.MinTicksBeforeTermination <= 0 {
		bad("min_ticks_before_termination", "must be positive, got %d", c.MinTicksBeforeTermination)
	}
	if !c.Policy.valid() {
		bad("policy", "unknown contagion policy %d", c.Policy)
	}
	if !c.Index.valid() {
		bad("index", "unknown neighbor index %d", c.Index)
	}

	return errors.Join(errs...)
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
