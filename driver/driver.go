package driver

import (
	"fmt"

	verr "github.com/lkndy/lr1-visualizer/error"
	"github.com/lkndy/lr1-visualizer/grammar"
	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// DefaultMaxSteps bounds the number of steps Parse will record before
// aborting with a StepLimitExceeded diagnostic (spec.md §4.6).
const DefaultMaxSteps = 10000

// ParseOption configures Parse, following the functional-options
// idiom nihei9-vartan uses for driver.ParserOption.
type ParseOption func(*parseConfig)

// TraceFunc receives one structured trace line per driver step,
// mirroring grammar.TraceFunc (see internal/telemetry.Logger.Sink).
type TraceFunc func(level, msg string, fields map[string]any)

type parseConfig struct {
	maxSteps int
	trace    TraceFunc
}

// WithMaxSteps overrides DefaultMaxSteps.
func WithMaxSteps(n int) ParseOption {
	return func(c *parseConfig) { c.maxSteps = n }
}

// WithTrace attaches a TraceFunc that receives one line per shift or
// reduce step; the final accept, reject, or step-limit step is not
// traced.
func WithTrace(fn TraceFunc) ParseOption {
	return func(c *parseConfig) { c.trace = fn }
}

// StackEntry is one (state, symbol_name) pair on the parser's stack,
// per spec.md §3 ("Parse step"). Position 0 always carries the
// synthetic start state and an empty symbol name.
type StackEntry struct {
	State      int
	SymbolName string
}

// Step is an immutable snapshot of one driver iteration (spec.md §3).
type Step struct {
	Ordinal        int
	Stack          []StackEntry
	RemainingIn    []string
	Lookahead      string
	Action         grammar.Action
	ActionText     string
	Explanation    string
	NewNodes       []NodeID
	SententialForm string
}

// Result is what Parse returns: the full step trace plus, on success,
// the finished tree.
type Result struct {
	Success bool
	Steps   []*Step
	Tree    *Tree
	Reject  *verr.Diagnostic // non-nil iff !Success
}

// Parse runs the canonical LR(1) shift-reduce algorithm against g and
// t for the given token list (already $-terminated, e.g. by
// grammar.Tokenize), recording one Step per iteration (spec.md §4.6).
//
// Grounded on nihei9-vartan/driver/parser.go's stack-loop shape: a
// state stack and a parallel value stack, consult-action /
// shift-or-reduce / repeat. The teacher's value stack holds
// AST/CST-builder state (a Non-goal here); this driver's parallel
// stack holds tree-node ids into a bare arena instead.
func Parse(g *grammar.Grammar, t *grammar.Table, tokens []symbol.Symbol, opts ...ParseOption) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}
			result = &Result{
				Success: false,
				Reject:  &verr.Diagnostic{Kind: verr.KindInternalInvariant, Cause: err.Error()},
			}
		}
	}()
	return runParse(g, t, tokens, opts...)
}

func runParse(g *grammar.Grammar, t *grammar.Table, tokens []symbol.Symbol, opts ...ParseOption) *Result {
	cfg := &parseConfig{maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(cfg)
	}

	states := []int{0}
	nodeStack := []NodeID{}
	tree := newTree()

	pos := 0
	var steps []*Step

	remaining := func() []string {
		out := make([]string, 0, len(tokens)-pos)
		for _, tok := range tokens[pos:] {
			out = append(out, g.SymbolName(tok))
		}
		return out
	}

	sententialForm := func() string {
		var parts []string
		for i := 1; i < len(states); i++ {
			parts = append(parts, nodeSymbolName(tree, nodeStack[i-1]))
		}
		rem := remaining()
		if len(rem) > 0 {
			parts = append(parts, rem[:len(rem)-1]...)
		}
		return concat(parts)
	}

	for {
		if len(steps)+1 > cfg.maxSteps {
			steps = append(steps, &Step{
				Ordinal:     len(steps) + 1,
				Explanation: fmt.Sprintf("aborted: exceeded MAX_STEPS=%d", cfg.maxSteps),
			})
			return &Result{
				Success: false, Steps: steps,
				Reject: &verr.Diagnostic{Kind: verr.KindResourceExhaustion, Cause: verr.CauseStepLimitExceeded},
			}
		}

		top := states[len(states)-1]
		lookahead := tokens[pos]
		action, ok := t.ActionAt(top, lookahead)

		step := &Step{
			Ordinal:     len(steps) + 1,
			Stack:       snapshotStack(states, nodeStack, tree),
			RemainingIn: remaining(),
			Lookahead:   g.SymbolName(lookahead),
		}

		if !ok {
			step.Action = grammar.Action{Kind: grammar.ActionError}
			expected := expectedTerminals(g, t, top)
			step.Explanation = fmt.Sprintf(
				"reject: state %d has no action for lookahead %q; expected one of: %s",
				top, g.SymbolName(lookahead), concat(expected))
			step.SententialForm = sententialForm()
			steps = append(steps, step)
			return &Result{
				Success: false, Steps: steps,
				Reject: &verr.Diagnostic{
					Kind: verr.KindParseReject, Detail: g.SymbolName(lookahead), Context: step.Explanation,
				},
			}
		}

		step.Action = action

		switch action.Kind {
		case grammar.ActionShift:
			leaf := tree.newLeaf(g.SymbolName(lookahead))
			states = append(states, action.NextState)
			nodeStack = append(nodeStack, leaf)
			pos++
			step.ActionText = fmt.Sprintf("shift %d", action.NextState)
			step.Explanation = fmt.Sprintf("shift %q, push state %d", g.SymbolName(lookahead), action.NextState)
			step.NewNodes = []NodeID{leaf}

		case grammar.ActionReduce:
			lhs, rhs := g.Production(action.Production)
			k := len(rhs)
			if len(states) < k+1 {
				panic(verr.NewInternalInvariantViolation(
					fmt.Sprintf("stack underflow reducing production %d", action.Production)))
			}
			children := append([]NodeID{}, nodeStack[len(nodeStack)-k:]...)
			states = states[:len(states)-k]
			nodeStack = nodeStack[:len(nodeStack)-k]

			s2 := states[len(states)-1]
			to, ok := t.GotoAt(s2, lhs)
			if !ok {
				panic(verr.NewInternalInvariantViolation(
					fmt.Sprintf("no GOTO[%d, %s] during reduce of production %d", s2, g.SymbolName(lhs), action.Production)))
			}
			node := tree.newInternal(g.SymbolName(lhs), action.Production, children)
			states = append(states, to)
			nodeStack = append(nodeStack, node)
			step.ActionText = fmt.Sprintf("reduce %d", action.Production)
			step.Explanation = fmt.Sprintf("reduce by production %d (%s -> %s), goto state %d",
				action.Production, g.SymbolName(lhs), symbolsText(g, rhs), to)
			step.NewNodes = []NodeID{node}

		case grammar.ActionAccept:
			tree.Root = nodeStack[len(nodeStack)-1]
			step.ActionText = "accept"
			step.Explanation = "accept"
			step.SententialForm = sententialForm()
			steps = append(steps, step)
			return &Result{Success: true, Steps: steps, Tree: tree}
		}

		step.SententialForm = sententialForm()
		steps = append(steps, step)
		if cfg.trace != nil {
			cfg.trace("debug", "step", map[string]any{"ordinal": step.Ordinal, "action": step.ActionText})
		}
	}
}

func snapshotStack(states []int, nodeStack []NodeID, tree *Tree) []StackEntry {
	out := make([]StackEntry, len(states))
	out[0] = StackEntry{State: states[0], SymbolName: ""}
	for i := 1; i < len(states); i++ {
		out[i] = StackEntry{State: states[i], SymbolName: nodeSymbolName(tree, nodeStack[i-1])}
	}
	return out
}

func nodeSymbolName(tree *Tree, id NodeID) string {
	return tree.Node(id).SymbolName
}

func expectedTerminals(g *grammar.Grammar, t *grammar.Table, state int) []string {
	var out []string
	for _, term := range g.Terminals() {
		if _, ok := t.ActionAt(state, term); ok {
			out = append(out, g.SymbolName(term))
		}
	}
	return out
}

func symbolsText(g *grammar.Grammar, syms []symbol.Symbol) string {
	if len(syms) == 0 {
		return "ε"
	}
	s := ""
	for i, sym := range syms {
		if i > 0 {
			s += " "
		}
		s += g.SymbolName(sym)
	}
	return s
}

func concat(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += " "
		}
		s += p
	}
	return s
}
