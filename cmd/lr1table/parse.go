package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lkndy/lr1-visualizer/driver"
	"github.com/lkndy/lr1-visualizer/facade"
	"github.com/lkndy/lr1-visualizer/grammar"
)

var parseFlags = struct {
	start *string
	input *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar-file>",
		Short:   "Run the shift-reduce parse driver and print the step trace",
		Example: `  lr1table parse expr.grammar --start S --input "id + id * id"`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.start = cmd.Flags().String("start", "", "start symbol name (required)")
	parseFlags.input = cmd.Flags().String("input", "", "whitespace-separated input tokens")
	cmd.MarkFlagRequired("start")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	g, _, t, err := buildPipeline(args[0], *parseFlags.start)
	if err != nil {
		return err
	}

	tokens, diag := grammar.Tokenize(g, *parseFlags.input)
	if diag != nil {
		return fmt.Errorf("%s", diag.Error())
	}

	parseOpts := []driver.ParseOption{driver.WithTrace(driver.TraceFunc(logger.Sink()))}
	if cfg.MaxSteps > 0 {
		parseOpts = append(parseOpts, driver.WithMaxSteps(cfg.MaxSteps))
	}
	result := driver.Parse(g, t, tokens, parseOpts...)

	tokenNames := make([]string, len(tokens))
	for i, tok := range tokens {
		tokenNames[i] = g.SymbolName(tok)
	}
	view := facade.SnapshotParse(g, result, tokenNames)

	out, err := yaml.Marshal(view)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	if !result.Success {
		return fmt.Errorf("parse rejected: %s", result.Reject.Error())
	}
	return nil
}
