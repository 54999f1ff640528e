// Package config provides configuration loading for the simulation driver.
// It supports loading from YAML files and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"infospread-sim/internal/common"
	"infospread-sim/internal/simulation"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INFOSPREAD_"

// Config contains all driver settings.
type Config struct {
	// Simulation holds the model parameters of a run.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Sweep controls multi-run experiments.
	Sweep SweepConfig `json:"sweep" yaml:"sweep"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig mirrors simulation.Config with file-friendly names.
type SimulationConfig struct {
	TotalAgents               int           `json:"total_agents" yaml:"total_agents" env:"AGENTS"`
	Bounds                    common.Bounds `json:"bounds" yaml:"bounds"`
	ShareRadius               float64       `json:"share_radius" yaml:"share_radius" env:"SHARE_RADIUS"`
	SharingRate               float64       `json:"sharing_rate" yaml:"sharing_rate" env:"SHARING_RATE"`
	IgnoreRate                float64       `json:"ignore_rate" yaml:"ignore_rate" env:"IGNORE_RATE"`
	Speed                     float64       `json:"speed" yaml:"speed" env:"SPEED"`
	InitialAwareCount         int           `json:"initial_aware_count" yaml:"initial_aware_count" env:"INITIAL_AWARE"`
	DwellThreshold            int           `json:"dwell_threshold" yaml:"dwell_threshold" env:"DWELL_THRESHOLD"`
	MaxTicks                  int           `json:"max_ticks" yaml:"max_ticks" env:"MAX_TICKS"`
	MinTicksBeforeTermination int           `json:"min_ticks_before_termination" yaml:"min_ticks_before_termination" env:"MIN_TICKS"`
	SpawnMargin               float64       `json:"spawn_margin" yaml:"spawn_margin" env:"SPAWN_MARGIN"`
	Seed                      int64         `json:"seed" yaml:"seed" env:"SEED"`

	// Policy is "live" (default) or "snapshot".
	Policy string `json:"policy" yaml:"policy" env:"POLICY"`

	// Index is "brute" (default) or "kdtree".
	Index string `json:"index" yaml:"index" env:"INDEX"`
}

// SweepConfig configures the sweep command.
type SweepConfig struct {
	Runs    int `json:"runs" yaml:"runs" env:"SWEEP_RUNS"`
	Workers int `json:"workers" yaml:"workers" env:"SWEEP_WORKERS"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level" env:"LOG_LEVEL"`
}

// Default returns a Config with the reference scene parameters.
func Default() *Config {
	d := simulation.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			TotalAgents:               d.TotalAgents,
			Bounds:                    d.Bounds,
			ShareRadius:               d.ShareRadius,
			SharingRate:               d.SharingRate,
			IgnoreRate:                d.IgnoreRate,
			Speed:                     d.Speed,
			InitialAwareCount:         d.InitialAware,
			DwellThreshold:            d.DwellThreshold,
			MaxTicks:                  d.MaxTicks,
			MinTicksBeforeTermination: d.MinTicksBeforeTermination,
			SpawnMargin:               d.SpawnMargin,
			Seed:                      d.Seed,
			Policy:                    d.Policy.String(),
			Index:                     d.Index.String(),
		},
		Sweep: SweepConfig{
			Runs:    20,
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration.
// Order: defaults -> path (if non-empty) -> environment variables
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys that are absent keep their defaults; unknown keys are rejected.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Sweep.Runs < 0 {
		return fmt.Errorf("sweep.runs must be non-negative, got %d", c.Sweep.Runs)
	}
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	simCfg, err := c.ToSimulation()
	if err != nil {
		return err
	}
	return simCfg.Validate()
}

// ToSimulation converts the file representation into a simulation.Config.
func (c *Config) ToSimulation() (simulation.Config, error) {
	s := c.Simulation
	policy, err := simulation.ParseContagionPolicy(s.Policy)
	if err != nil {
		return simulation.Config{}, err
	}
	index, err := simulation.ParseIndexKind(s.Index)
	if err != nil {
		return simulation.Config{}, err
	}
	return simulation.Config{
		TotalAgents:               s.TotalAgents,
		Bounds:                    s.Bounds,
		ShareRadius:               s.ShareRadius,
		SharingRate:               s.SharingRate,
		IgnoreRate:                s.IgnoreRate,
		Speed:                     s.Speed,
		InitialAware:              s.InitialAwareCount,
		DwellThreshold:            s.DwellThreshold,
		MaxTicks:                  s.MaxTicks,
		MinTicksBeforeTermination: s.MinTicksBeforeTermination,
		SpawnMargin:               s.SpawnMargin,
		Seed:                      s.Seed,
		Policy:                    policy,
		Index:                     index,
	}, nil
}

// applyEnvOverrides applies INFOSPREAD_* environment variables to the config.
// Unset variables leave the current value in place.
func applyEnvOverrides(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
