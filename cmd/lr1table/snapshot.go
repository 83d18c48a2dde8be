package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lkndy/lr1-visualizer/facade"
)

var snapshotFlags = struct {
	start *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "snapshot <grammar-file>",
		Short:   "Emit the ACTION/GOTO table and every state as JSON, for external consumers",
		Example: `  lr1table snapshot expr.grammar --start S`,
		Args:    cobra.ExactArgs(1),
		RunE:    runSnapshot,
	}
	snapshotFlags.start = cmd.Flags().String("start", "", "start symbol name (required)")
	cmd.MarkFlagRequired("start")
	rootCmd.AddCommand(cmd)
}

type snapshotOutput struct {
	States []*facade.StateSnapshot `json:"states"`
	Table  *facade.TableSnapshot   `json:"table"`
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	g, a, t, err := buildPipeline(args[0], *snapshotFlags.start)
	if err != nil {
		return err
	}

	out := &snapshotOutput{Table: facade.SnapshotTable(g, t)}
	for s := 0; s < a.StateCount(); s++ {
		out.States = append(out.States, facade.SnapshotState(g, a, s))
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
