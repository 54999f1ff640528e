package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"infospread-sim/internal/meanfield"
	"infospread-sim/internal/report"
	"infospread-sim/internal/simulation"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print its record stream",
		Long: `Run a single simulation until no agent is aware or the tick limit is
reached. Records go to stdout in the chosen format; a summary follows text
output and goes to stderr for csv and jsonl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, cfg)

			formatName, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			every, _ := cmd.Flags().GetInt("every")
			if every < 1 {
				return fmt.Errorf("--every must be at least 1, got %d", every)
			}
			fit, _ := cmd.Flags().GetBool("fit")
			jsonOut, _ := cmd.Flags().GetBool("json")

			simCfg, err := cfg.ToSimulation()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writer, err := report.NewWriter(format, out)
			if err != nil {
				return err
			}
			series := simulation.NewSeries()
			stepper, err := simulation.NewStepper(simCfg,
				simulation.WithLogger(logger),
				simulation.WithRecorder(simulation.Multi(series, simulation.Sampled(every, writer))))
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			res, runErr := stepper.Run(ctx)
			if err := writer.Flush(); err != nil {
				return fmt.Errorf("failed to flush records: %w", err)
			}
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}

			summaryOut := out
			if format != report.FormatText {
				summaryOut = cmd.ErrOrStderr()
			}
			if series.Len() > 0 {
				if err := printRunSummary(summaryOut, jsonOut, res, series.Records(), simCfg.TotalAgents, fit); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	addSimulationFlags(cmd)
	cmd.Flags().String("format", "text", "Record format: text, csv or jsonl")
	cmd.Flags().Int("every", 1, "Emit every Nth record")
	cmd.Flags().Bool("fit", false, "Fit mean-field rates to the run")
	return cmd
}

type runReport struct {
	simulation.Result
	Summary report.Summary `json:"summary"`
	Fit     *fitReport     `json:"fit,omitempty"`
}

type fitReport struct {
	Delta           float64 `json:"delta"`
	Epsilon         float64 `json:"epsilon"`
	Virality        float64 `json:"virality"`
	Regime          string  `json:"regime"`
	DeltaResidual   float64 `json:"delta_residual"`
	EpsilonResidual float64 `json:"epsilon_residual"`
}

func printRunSummary(w io.Writer, jsonOut bool, res simulation.Result, records []simulation.Record, total int, fit bool) error {
	summary, err := report.Summarize(records, total)
	if err != nil {
		return err
	}

	rep := runReport{Result: res, Summary: summary}
	if fit {
		f, err := meanfield.FitRates(records, total)
		if err != nil {
			return fmt.Errorf("failed to fit rates: %w", err)
		}
		rep.Fit = &fitReport{
			Delta:           f.Delta,
			Epsilon:         f.Epsilon,
			Regime:          "undefined",
			DeltaResidual:   f.DeltaResidual,
			EpsilonResidual: f.EpsilonResidual,
		}
		// A run that never saw boredom fits epsilon = 0.
		if f.Epsilon > 0 {
			rep.Fit.Virality = f.Virality()
			rep.Fit.Regime = f.Regime().String()
		}
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintf(w, "\nrun %s stopped: %s\n", res.RunID, res.Reason)
	if err := report.WriteSummary(w, summary); err != nil {
		return err
	}
	if rep.Fit != nil {
		fmt.Fprintf(w, "fitted delta: %.4f  epsilon: %.4f  Vo: %.3f (%s)\n",
			rep.Fit.Delta, rep.Fit.Epsilon, rep.Fit.Virality, rep.Fit.Regime)
	}
	return nil
}
