package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"infospread-sim/internal/sweep"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run many seeds and aggregate their summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("runs") {
				cfg.Sweep.Runs, _ = cmd.Flags().GetInt("runs")
			}
			if cmd.Flags().Changed("workers") {
				cfg.Sweep.Workers, _ = cmd.Flags().GetInt("workers")
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			simCfg, err := cfg.ToSimulation()
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			res, err := sweep.Run(ctx, simCfg, sweep.Options{
				Runs:    cfg.Sweep.Runs,
				Workers: cfg.Sweep.Workers,
				Logger:  newLogger(cmd, cfg),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEED\tTICKS\tPEAK\tPEAK TICK\tREACH\tSTOP")
			for _, r := range res.Runs {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.1f%%\t%s\n",
					r.Seed, r.Summary.Ticks, r.Summary.PeakAware, r.Summary.PeakTick, r.Summary.Reach*100, r.Reason)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d runs\n", len(res.Runs))
			fmt.Fprintf(out, "peak aware: %.2f ± %.2f\n", res.PeakAware.Mean, res.PeakAware.StdDev)
			fmt.Fprintf(out, "peak tick:  %.2f ± %.2f\n", res.PeakTick.Mean, res.PeakTick.StdDev)
			fmt.Fprintf(out, "reach:      %.1f%% ± %.1f%%\n", res.Reach.Mean*100, res.Reach.StdDev*100)
			fmt.Fprintf(out, "ticks:      %.2f ± %.2f\n", res.Ticks.Mean, res.Ticks.StdDev)
			return nil
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().Int("runs", 0, "Number of runs (overrides config)")
	cmd.Flags().Int("workers", 0, "Concurrent runs, 0 for GOMAXPROCS")
	return cmd
}
