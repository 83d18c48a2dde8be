package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildFlags = struct {
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build <grammar-file>",
		Short:   "Build the canonical LR(1) automaton and ACTION/GOTO table for a grammar",
		Example: `  lr1table build expr.grammar --start S`,
		Args:    cobra.ExactArgs(1),
		RunE:    runBuild,
	}
	buildFlags.start = cmd.Flags().String("start", "", "start symbol name (required)")
	cmd.MarkFlagRequired("start")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	_, a, t, err := buildPipeline(args[0], *buildFlags.start)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d states, %d conflicts\n", a.StateCount(), len(t.Conflicts()))
	return nil
}
