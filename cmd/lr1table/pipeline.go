package main

import (
	"fmt"
	"os"

	verr "github.com/lkndy/lr1-visualizer/error"
	"github.com/lkndy/lr1-visualizer/grammar"
)

// buildPipeline runs C2 -> C1 -> C4 -> C5 for the grammar file at
// path with the given start symbol, applying any MAX_STATES override
// from the loaded config. Diagnostics are always printed to stderr,
// even non-fatal ones, per spec.md §7 kind 2's "callers can show all
// problems at once".
func buildPipeline(path, start string) (*grammar.Grammar, *grammar.Automaton, *grammar.Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cannot read grammar file %s: %w", path, err)
	}

	prods, diags := grammar.ParseGrammarText(string(src))
	printDiagnostics(diags)
	if len(prods) == 0 {
		return nil, nil, nil, fmt.Errorf("grammar file %s has no productions", path)
	}

	g, diags := grammar.Build(prods, start)
	printDiagnostics(diags)
	if g == nil {
		return nil, nil, nil, fmt.Errorf("grammar %s failed to build", path)
	}

	var autoOpts []grammar.AutomatonOption
	if cfg.MaxStates > 0 {
		autoOpts = append(autoOpts, grammar.WithMaxStates(cfg.MaxStates))
	}
	autoOpts = append(autoOpts, grammar.WithTrace(grammar.TraceFunc(logger.Sink())))

	a, diags := grammar.BuildAutomaton(g, autoOpts...)
	printDiagnostics(diags)
	if diags.HasKind(verr.KindResourceExhaustion) {
		return nil, nil, nil, fmt.Errorf("automaton construction aborted")
	}

	t, diags := grammar.BuildTable(g, a)
	printDiagnostics(diags)
	if t.HasConflicts() {
		fmt.Fprintf(os.Stderr, "%d conflict(s) found; tie-break policy applied\n", len(t.Conflicts()))
	}

	return g, a, t, nil
}

func printDiagnostics(diags verr.Diagnostics) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}
