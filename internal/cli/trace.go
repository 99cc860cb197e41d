package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pulsim/internal/config"
	"github.com/katalvlaran/pulsim/sim"
)

// newTraceCmd prints every delivered pulse for a small number of
// presses, one line per pulse, presses separated by a blank line.
func newTraceCmd(cfg **config.Config) *cobra.Command {
	var presses int

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print every delivered pulse for N presses",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg

			circ, err := loadCircuit(c)
			if err != nil {
				return err
			}
			out := newRenderer(c)

			var total sim.RunResult
			for i := 0; i < presses; i++ {
				if i > 0 {
					fmt.Println()
				}
				res, err := sim.Press(circ, sim.WithObserver(out.PulseFn(circ)))
				if err != nil {
					return err
				}
				total.Presses++
				total.Low += res.Low
				total.High += res.High
			}

			fmt.Println()
			out.KV("low", fmt.Sprint(total.Low))
			out.KV("high", fmt.Sprint(total.High))
			return nil
		},
	}

	cmd.Flags().IntVarP(&presses, "presses", "n", 1, "number of button presses to trace")
	return cmd
}
