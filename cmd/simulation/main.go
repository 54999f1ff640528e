package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"infospread-sim/internal/config"
	"infospread-sim/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "infospread",
		Short: "Agent-based simulation of information spread",
		Long: `infospread simulates a population of agents moving inside a box.
Aware agents pass a piece of information to unaware agents they come close
to, and lose interest after a while. Each tick reports how many agents are
unaware, aware and bored.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug or trace (overrides config)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newSweepCmd(),
		newModelCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "infospread version %s\n", version)
		},
	}
}

// loadConfig resolves the configuration for a command: defaults, the
// --config file, INFOSPREAD_* variables, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	s := &cfg.Simulation
	if flags.Changed("seed") {
		s.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("agents") {
		s.TotalAgents, _ = flags.GetInt("agents")
	}
	if flags.Changed("index") {
		s.Index, _ = flags.GetString("index")
	}
	if flags.Changed("policy") {
		s.Policy, _ = flags.GetString("policy")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

// addSimulationFlags registers the overrides shared by run and sweep.
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "Random seed (overrides config)")
	cmd.Flags().Int("agents", 0, "Number of agents (overrides config)")
	cmd.Flags().String("index", "", "Neighbor index: brute or kdtree")
	cmd.Flags().String("policy", "", "Contagion policy: live or snapshot")
}
