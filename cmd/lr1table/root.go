package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/lkndy/lr1-visualizer/internal/telemetry"
)

// config is the shape of the TOML file --config points at, per
// SPEC_FULL.md's ambient-stack config section.
type config struct {
	MaxStates int `toml:"max_states"`
	MaxSteps  int `toml:"max_steps"`
}

var rootFlags = struct {
	configPath *string
	verbose    *bool
}{}

var cfg config
var logger *telemetry.Logger

var rootCmd = &cobra.Command{
	Use:   "lr1table",
	Short: "Build canonical LR(1) parsing tables and trace shift-reduce parses",
	Long: `lr1table provides three features:
- Builds the canonical collection of LR(1) item sets and the ACTION/GOTO
  table for a grammar given in a plain-text BNF-style notation.
- Runs the shift-reduce parse driver against that table, recording a
  step-by-step trace.
- Prints read-only snapshots of automaton states and parsing tables.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootFlags.configPath = rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootFlags.verbose = rootCmd.PersistentFlags().Bool("verbose", false, "enable debug-level logging")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	logger, err = telemetry.New(*rootFlags.verbose)
	if err != nil {
		return err
	}

	if *rootFlags.configPath == "" {
		return nil
	}
	if _, err := toml.DecodeFile(*rootFlags.configPath, &cfg); err != nil {
		return fmt.Errorf("cannot read config file %s: %w", *rootFlags.configPath, err)
	}
	return nil
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
