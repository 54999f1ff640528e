package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"infospread-sim/internal/meanfield"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Integrate the mean-field spread equations",
		Long: `Integrate dU/dt = -δUA, dA/dt = δUA - εA, dB/dt = εA from a small
aware fraction and print the virality index Vo = δ/ε with the trajectory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			delta, _ := flags.GetFloat64("delta")
			epsilon, _ := flags.GetFloat64("epsilon")
			dt, _ := flags.GetFloat64("dt")
			steps, _ := flags.GetInt("steps")
			aware0, _ := flags.GetFloat64("aware0")
			every, _ := flags.GetInt("every")
			jsonOut, _ := flags.GetBool("json")
			if every < 1 {
				return fmt.Errorf("--every must be at least 1, got %d", every)
			}

			p := meanfield.Params{Delta: delta, Epsilon: epsilon}
			initial, err := meanfield.InitialState(aware0)
			if err != nil {
				return err
			}
			states, err := meanfield.Integrate(p, initial, dt, steps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"params":   p,
					"virality": p.Virality(),
					"regime":   p.Regime().String(),
					"states":   states,
				})
			}

			fmt.Fprintf(out, "Vo = %.3f (%s)\n", p.Virality(), p.Regime())
			fmt.Fprintf(out, "%8s %8s %8s %8s\n", "t", "U", "A", "B")
			for i, s := range states {
				if i%every != 0 && i != len(states)-1 {
					continue
				}
				fmt.Fprintf(out, "%8.2f %8.4f %8.4f %8.4f\n", s.T, s.U, s.A, s.B)
			}
			return nil
		},
	}

	cmd.Flags().Float64("delta", 0.5, "Contact spread rate δ")
	cmd.Flags().Float64("epsilon", 0.1, "Stop rate ε")
	cmd.Flags().Float64("dt", 0.1, "Integration step")
	cmd.Flags().Int("steps", 500, "Number of integration steps")
	cmd.Flags().Float64("aware0", 0.01, "Initial aware fraction")
	cmd.Flags().Int("every", 10, "Print every Nth state")
	return cmd
}
