// Package cli assembles the pulsim command tree.
//
// The root command resolves configuration (file and environment via
// internal/config, command-line flags last), wires logging, and hands a
// loaded, primed circuit to each subcommand.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/pulsim/circuit"
	"github.com/katalvlaran/pulsim/internal/config"
	"github.com/katalvlaran/pulsim/internal/logging"
	"github.com/katalvlaran/pulsim/internal/render"
)

// Version is stamped by the build; "dev" for local builds.
var Version = "dev"

// NewRootCmd builds the pulsim command tree.
func NewRootCmd() *cobra.Command {
	var (
		cfg        *config.Config
		verbosity  int
		configPath string
		noColor    bool
		input      string
	)

	root := &cobra.Command{
		Use:   "pulsim",
		Short: "Simulate pulse propagation through a module circuit",
		Long: `pulsim reads a circuit of broadcast, flip-flop and conjunction
modules and simulates button presses through it: count pulse totals,
trace individual pulses, or predict when a target module first goes low.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags given on the command line override every other layer.
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbosity = verbosity
			}
			if cmd.Flags().Changed("no-color") {
				cfg.NoColor = noColor
			}
			if cmd.Flags().Changed("input") {
				cfg.Input = input
			}
			logging.Setup(cfg.Log.Verbosity, cfg.NoColor, cfg.Log.File)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
	}

	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity (-v info, -vv debug, -vvv trace)")
	root.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: pulsim.toml or pulsim.yaml in cwd)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable styled output")
	root.PersistentFlags().StringVarP(&input, "input", "i", "",
		"circuit description file (default: stdin)")

	root.AddCommand(
		newTotalsCmd(&cfg),
		newFirstLowCmd(&cfg),
		newTraceCmd(&cfg),
		newInspectCmd(&cfg),
		newVersionCmd(),
	)
	return root
}

// newVersionCmd prints the build version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pulsim version %s\n", Version)
		},
	}
}

// loadCircuit parses and primes the configured input.
func loadCircuit(cfg *config.Config) (*circuit.Circuit, error) {
	var src io.Reader = os.Stdin
	name := "stdin"
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("open circuit: %w", err)
		}
		defer f.Close()
		src, name = f, cfg.Input
	}

	c, err := circuit.Parse(src)
	if err != nil {
		return nil, err
	}
	if err := c.Prime(); err != nil {
		return nil, err
	}
	s := c.Stats()
	log.Info().Str("input", name).Int("modules", s.Modules).
		Int("wires", s.Wires).Msg("circuit loaded")
	return c, nil
}

// newRenderer builds the styled stdout renderer for one command run.
func newRenderer(cfg *config.Config) *render.Renderer {
	return render.New(os.Stdout, cfg.NoColor)
}
