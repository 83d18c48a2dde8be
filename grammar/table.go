package grammar

import "github.com/lkndy/lr1-visualizer/grammar/symbol"

// ActionKind classifies a single cell of the ACTION table, per
// spec.md §4.4.
type ActionKind int

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// Action is one entry of the ACTION table. NextState is valid when
// Kind == ActionShift; Production (a stable zero-based production
// index, spec.md §3) is valid when Kind == ActionReduce.
type Action struct {
	Kind       ActionKind
	NextState  int
	Production int
}

// ConflictKind distinguishes the two ways an LR(1) table cell can be
// ambiguous, per spec.md §4.4.
type ConflictKind int

const (
	ConflictShiftReduce ConflictKind = iota
	ConflictReduceReduce
)

// Conflict records a table cell where more than one action applied,
// and which one the tie-break policy chose.
type Conflict struct {
	Kind     ConflictKind
	State    int
	Terminal symbol.Symbol
	Chosen   Action
	Rejected []Action
}

// Table is the ACTION/GOTO table produced by BuildTable. Cells are
// addressed by (state, symbol); ACTION cells (keyed by terminal) and
// GOTO cells (keyed by non-terminal) live in two separate maps.
//
// Grounded on nihei9-vartan/grammar/parsing_table.go's dense
// state-by-symbol layout, generalized from the teacher's LALR table
// (one action per cell by construction, since conflicts are resolved
// at build time by lookahead-set intersection) to a canonical LR(1)
// table that records conflicts explicitly rather than silently
// resolving them.
type Table struct {
	g         *Grammar
	stateN    int
	action    map[stateID]map[symbol.Symbol]Action
	goTo      map[stateID]map[symbol.Symbol]stateID
	conflicts []*Conflict
}

// ActionAt returns the ACTION table entry for (state, terminal).
func (t *Table) ActionAt(s int, terminal symbol.Symbol) (Action, bool) {
	row, ok := t.action[stateID(s)]
	if !ok {
		return Action{}, false
	}
	a, ok := row[terminal]
	return a, ok
}

// GotoAt returns the GOTO table entry for (state, nonTerminal).
func (t *Table) GotoAt(s int, nonTerminal symbol.Symbol) (int, bool) {
	row, ok := t.goTo[stateID(s)]
	if !ok {
		return 0, false
	}
	to, ok := row[nonTerminal]
	return int(to), ok
}

// ActionsAt returns every terminal with a defined ACTION in state s,
// mapped to that action.
func (t *Table) ActionsAt(s int) map[symbol.Symbol]Action {
	return t.action[stateID(s)]
}

// Conflicts returns every conflict recorded while building the table,
// in the order the table builder encountered them.
func (t *Table) Conflicts() []*Conflict { return t.conflicts }

// HasConflicts reports whether any shift/reduce or reduce/reduce
// conflict was found.
func (t *Table) HasConflicts() bool { return len(t.conflicts) > 0 }

// StateCount returns the number of states the table covers.
func (t *Table) StateCount() int { return t.stateN }
