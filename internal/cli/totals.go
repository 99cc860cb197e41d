package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pulsim/internal/config"
	"github.com/katalvlaran/pulsim/sim"
)

// newTotalsCmd sums low/high pulse counts over a fixed press count and
// prints their product.
func newTotalsCmd(cfg **config.Config) *cobra.Command {
	var presses int

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Press the button N times and report pulse totals",
		Long: `totals presses the button a fixed number of times, sums the low and
high pulses delivered across all presses, and prints both totals and
their product.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			if cmd.Flags().Changed("presses") {
				c.Presses = presses
			}

			circ, err := loadCircuit(c)
			if err != nil {
				return err
			}
			res, err := sim.Run(circ, c.Presses, sim.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			log.Debug().Uint64("low", res.Low).Uint64("high", res.High).
				Msg("run complete")

			out := newRenderer(c)
			out.KV("presses", fmt.Sprint(res.Presses))
			out.KV("low", fmt.Sprint(res.Low))
			out.KV("high", fmt.Sprint(res.High))
			out.KV("product", fmt.Sprint(res.Product()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&presses, "presses", "n", 1000, "number of button presses")
	return cmd
}
