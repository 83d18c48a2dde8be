// Package facade provides read-only, serializable snapshot views over
// the grammar/automaton/table/driver outputs (C7), for external
// collaborators — the HTTP layer, CLI, and visualizer — that must
// never reach into the core packages' internal representations.
//
// Grounded on nihei9-vartan/cmd/vartan/describe.go and show.go, which
// similarly translate internal grammar/automaton state into plain,
// marshalable structs before printing or emitting JSON.
package facade

import (
	"github.com/lkndy/lr1-visualizer/driver"
	"github.com/lkndy/lr1-visualizer/grammar"
)

// StateSnapshot is snapshot_state's output shape (spec.md §6): the
// printed items of one automaton state, its shift symbols, the
// production indices it can reduce, and its outgoing transitions.
type StateSnapshot struct {
	State                 int      `json:"state" yaml:"state"`
	Items                 []string `json:"items" yaml:"items"`
	ShiftSymbols          []string `json:"shiftSymbols" yaml:"shiftSymbols"`
	ReduceProductionIndices []int  `json:"reduceProductionIndices" yaml:"reduceProductionIndices"`
	Transitions           []TransitionView `json:"transitions" yaml:"transitions"`
}

// TransitionView is the serializable form of one GOTO edge.
type TransitionView struct {
	On string `json:"on" yaml:"on"`
	To int    `json:"to" yaml:"to"`
}

// SnapshotState implements the snapshot_state entry point of spec.md
// §6.
func SnapshotState(g *grammar.Grammar, a *grammar.Automaton, state int) *StateSnapshot {
	items := a.Items(state)
	printed := make([]string, len(items))
	var reduceIdx []int
	for i, it := range items {
		printed[i] = it.String(g)
		_, rhs := g.Production(it.Production)
		if it.Dot == len(rhs) {
			reduceIdx = append(reduceIdx, it.Production)
		}
	}

	shiftSyms := a.ShiftSymbolsOf(state)
	shiftNames := make([]string, len(shiftSyms))
	for i, s := range shiftSyms {
		shiftNames[i] = g.SymbolName(s)
	}

	var transitions []TransitionView
	for _, t := range a.Transitions() {
		if t.From == state {
			transitions = append(transitions, TransitionView{On: g.SymbolName(t.On), To: t.To})
		}
	}

	return &StateSnapshot{
		State:                   state,
		Items:                   printed,
		ShiftSymbols:            shiftNames,
		ReduceProductionIndices: reduceIdx,
		Transitions:             transitions,
	}
}

// TableSnapshot is snapshot_table's output shape (spec.md §6): the
// ACTION and GOTO tables rendered as headers + rows, plus the
// recorded conflicts.
type TableSnapshot struct {
	ActionHeaders []string           `json:"actionHeaders" yaml:"actionHeaders"`
	ActionRows    [][]string         `json:"actionRows" yaml:"actionRows"`
	GotoHeaders   []string           `json:"gotoHeaders" yaml:"gotoHeaders"`
	GotoRows      [][]string         `json:"gotoRows" yaml:"gotoRows"`
	Conflicts     []ConflictView     `json:"conflicts" yaml:"conflicts"`
}

// ConflictView is the serializable form of a Conflict record.
type ConflictView struct {
	Kind     string `json:"kind" yaml:"kind"`
	State    int    `json:"state" yaml:"state"`
	Terminal string `json:"terminal" yaml:"terminal"`
	Chosen   string `json:"chosen" yaml:"chosen"`
	Rejected []string `json:"rejected" yaml:"rejected"`
}

// SnapshotTable implements the snapshot_table entry point of spec.md
// §6.
func SnapshotTable(g *grammar.Grammar, t *grammar.Table) *TableSnapshot {
	terms := g.Terminals()
	nonTerms := g.NonTerminals()

	actionHeaders := make([]string, len(terms))
	for i, term := range terms {
		actionHeaders[i] = g.SymbolName(term)
	}
	gotoHeaders := make([]string, len(nonTerms))
	for i, nt := range nonTerms {
		gotoHeaders[i] = g.SymbolName(nt)
	}

	var actionRows, gotoRows [][]string
	for s := 0; s < t.StateCount(); s++ {
		row := make([]string, len(terms))
		for i, term := range terms {
			if a, ok := t.ActionAt(s, term); ok {
				row[i] = renderAction(g, a)
			}
		}
		actionRows = append(actionRows, row)

		grow := make([]string, len(nonTerms))
		for i, nt := range nonTerms {
			if to, ok := t.GotoAt(s, nt); ok {
				grow[i] = itoa(to)
			}
		}
		gotoRows = append(gotoRows, grow)
	}

	var conflicts []ConflictView
	for _, c := range t.Conflicts() {
		var rejected []string
		for _, r := range c.Rejected {
			rejected = append(rejected, renderAction(g, r))
		}
		kind := "ShiftReduce"
		if c.Kind == grammar.ConflictReduceReduce {
			kind = "ReduceReduce"
		}
		conflicts = append(conflicts, ConflictView{
			Kind: kind, State: c.State, Terminal: g.SymbolName(c.Terminal),
			Chosen: renderAction(g, c.Chosen), Rejected: rejected,
		})
	}

	return &TableSnapshot{
		ActionHeaders: actionHeaders, ActionRows: actionRows,
		GotoHeaders: gotoHeaders, GotoRows: gotoRows,
		Conflicts: conflicts,
	}
}

func renderAction(g *grammar.Grammar, a grammar.Action) string {
	switch a.Kind {
	case grammar.ActionShift:
		return "s" + itoa(a.NextState)
	case grammar.ActionReduce:
		return "r" + itoa(a.Production)
	case grammar.ActionAccept:
		return "acc"
	default:
		return ""
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ParseResultView is the serializable form of a driver.Result, used
// by the `parse` library entry point (spec.md §6).
type ParseResultView struct {
	Success bool           `json:"success" yaml:"success"`
	Steps   []StepView     `json:"steps" yaml:"steps"`
	Tree    []NodeView     `json:"tree,omitempty" yaml:"tree,omitempty"`
	Root    int            `json:"root,omitempty" yaml:"root,omitempty"`
	Tokens  []string       `json:"tokens" yaml:"tokens"`
}

// StepView is the serializable form of one driver.Step.
type StepView struct {
	Ordinal        int      `json:"ordinal" yaml:"ordinal"`
	Stack          []string `json:"stack" yaml:"stack"`
	RemainingInput []string `json:"remainingInput" yaml:"remainingInput"`
	Lookahead      string   `json:"lookahead" yaml:"lookahead"`
	Action         string   `json:"action" yaml:"action"`
	Explanation    string   `json:"explanation" yaml:"explanation"`
	NewNodes       []int    `json:"newNodes" yaml:"newNodes"`
	SententialForm string   `json:"sententialForm" yaml:"sententialForm"`
}

// NodeView is the serializable form of one driver.Node.
type NodeView struct {
	ID         int    `json:"id" yaml:"id"`
	Symbol     string `json:"symbol" yaml:"symbol"`
	Terminal   bool   `json:"terminal" yaml:"terminal"`
	Children   []int  `json:"children,omitempty" yaml:"children,omitempty"`
	Production *int   `json:"production,omitempty" yaml:"production,omitempty"`
}

// SnapshotParse translates a driver.Result into its serializable
// view, for the `parse` library entry point of spec.md §6.
func SnapshotParse(g *grammar.Grammar, r *driver.Result, tokenNames []string) *ParseResultView {
	view := &ParseResultView{Success: r.Success, Tokens: tokenNames}

	for _, step := range r.Steps {
		stack := make([]string, len(step.Stack))
		for i, e := range step.Stack {
			stack[i] = itoa(e.State) + ":" + e.SymbolName
		}
		newNodes := make([]int, len(step.NewNodes))
		for i, id := range step.NewNodes {
			newNodes[i] = int(id)
		}
		view.Steps = append(view.Steps, StepView{
			Ordinal: step.Ordinal, Stack: stack, RemainingInput: step.RemainingIn,
			Lookahead: step.Lookahead, Action: step.ActionText, Explanation: step.Explanation,
			NewNodes: newNodes, SententialForm: step.SententialForm,
		})
	}

	if r.Success && r.Tree != nil {
		view.Root = int(r.Tree.Root)
		for i := 0; i < r.Tree.NodeCount(); i++ {
			n := r.Tree.Node(driver.NodeID(i))
			children := make([]int, len(n.Children))
			for j, c := range n.Children {
				children[j] = int(c)
			}
			view.Tree = append(view.Tree, NodeView{
				ID: int(n.ID), Symbol: n.SymbolName, Terminal: n.Kind == driver.SymbolKindTerminal,
				Children: children, Production: n.Production,
			})
		}
	}

	return view
}
