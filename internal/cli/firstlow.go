package cli

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pulsim/cadence"
	"github.com/katalvlaran/pulsim/circuit"
	"github.com/katalvlaran/pulsim/internal/config"
	"github.com/katalvlaran/pulsim/sim"
)

// newFirstLowCmd predicts the press index of the first low pulse into
// the target module, either by cycle decomposition (default) or by the
// brute-force search.
func newFirstLowCmd(cfg **config.Config) *cobra.Command {
	var (
		target     string
		maxPresses int
		brute      bool
	)

	cmd := &cobra.Command{
		Use:   "firstlow",
		Short: "Find the first press that sends a low pulse to the target",
		Long: `firstlow reports the smallest press count at which the target module
receives a low pulse.

By default it observes the first high-pulse press index of every feeder
of the conjunction gating the target and combines them by least common
multiple; the target must be fed by exactly one conjunction. With
--brute it instead presses the button until the pulse actually arrives,
which works on any wiring but may never terminate without a budget.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg
			if cmd.Flags().Changed("target") {
				c.Target = target
			}
			if cmd.Flags().Changed("max-presses") {
				c.MaxPresses = maxPresses
			}

			circ, err := loadCircuit(c)
			if err != nil {
				return err
			}
			out := newRenderer(c)

			if brute {
				targetID, ok := circ.Lookup(c.Target)
				if !ok {
					return fmt.Errorf("%w: %q", cadence.ErrTargetNotFound, c.Target)
				}
				res, err := sim.PressUntil(circ,
					func(p circuit.Pulse) bool {
						return p.Dest == targetID && p.Level == circuit.Low
					},
					sim.WithContext(cmd.Context()),
					sim.WithMaxPresses(c.MaxPresses),
				)
				if err != nil {
					return err
				}
				out.KV("presses", fmt.Sprint(res.Presses))
				return nil
			}

			res, err := cadence.FirstLow(circ, c.Target,
				cadence.WithContext(cmd.Context()),
				cadence.WithMaxPresses(c.MaxPresses),
			)
			if err != nil {
				return err
			}
			log.Debug().Str("gate", res.Gate).Msg("decomposition complete")

			feeders := make([]string, 0, len(res.Periods))
			for name := range res.Periods {
				feeders = append(feeders, name)
			}
			sort.Strings(feeders)
			for _, name := range feeders {
				out.KV("period "+name, fmt.Sprint(res.Periods[name]))
			}
			out.KV("presses", fmt.Sprint(res.Presses))
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "rx", "module to watch for a low pulse")
	cmd.Flags().IntVar(&maxPresses, "max-presses", cadence.DefaultMaxPresses,
		"press budget for the observation phase (0 = unbounded)")
	cmd.Flags().BoolVar(&brute, "brute", false,
		"press until the low pulse actually arrives instead of decomposing cycles")
	return cmd
}
