package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pulsim/internal/config"
)

// newInspectCmd prints the module table and summary counters of the
// loaded circuit without pressing the button.
func newInspectCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the module table and circuit statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *cfg

			circ, err := loadCircuit(c)
			if err != nil {
				return err
			}
			out := newRenderer(c)
			out.Table(circ)
			out.Stats(circ.Stats())
			return nil
		},
	}
}
