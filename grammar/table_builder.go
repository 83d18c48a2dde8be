package grammar

import (
	verr "github.com/lkndy/lr1-visualizer/error"
	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// BuildTable assembles the ACTION/GOTO table from an automaton, per
// spec.md §4.4. For every state s and item A -> α·aβ,b with a a
// terminal, it records SHIFT on a; for every complete item A -> α·,a
// with A the augmented start, it records ACCEPT on $; for every other
// complete item A -> α·,a it records REDUCE(A -> α) on a. GOTO cells
// come directly from the automaton's transitions on non-terminals.
//
// Grounded on nihei9-vartan/grammar/parsing_table_builder.go's
// per-state item walk, and on dekarrin-tunaq/clr1.go's explicit
// shift/reduce/accept case split for canonical LR(1) (the teacher
// itself never needs this split, since LALR conflicts are resolved
// earlier by lookahead-set merging).
//
// Conflicts are never silently dropped: every rejected action is kept
// on the returned Conflict record (spec.md §4.4's tie-break policy:
// prefer shift over reduce; among reduces prefer the smallest
// production index), and the full grammar is still assembled into a
// usable, deterministic table.
func BuildTable(g *Grammar, a *Automaton) (*Table, verr.Diagnostics) {
	t := &Table{
		g:      g,
		stateN: a.StateCount(),
		action: map[stateID]map[symbol.Symbol]Action{},
		goTo:   map[stateID]map[symbol.Symbol]stateID{},
	}

	for s := 0; s < a.StateCount(); s++ {
		for _, it := range a.Items(s) {
			_, rhs := g.Production(it.Production)

			if it.Dot < len(rhs) {
				dotSym := rhs[it.Dot]
				if dotSym.IsTerminal() && !dotSym.IsEOF() {
					to, ok := a.Goto(s, dotSym)
					if !ok {
						continue
					}
					t.setAction(s, dotSym, Action{Kind: ActionShift, NextState: to})
				}
				continue
			}

			if it.Production == 0 && it.Lookahead.IsEOF() {
				t.setAction(s, it.Lookahead, Action{Kind: ActionAccept})
				continue
			}
			t.setAction(s, it.Lookahead, Action{Kind: ActionReduce, Production: it.Production})
		}

		for _, nt := range g.NonTerminals() {
			if to, ok := a.Goto(s, nt); ok {
				if t.goTo[stateID(s)] == nil {
					t.goTo[stateID(s)] = map[symbol.Symbol]stateID{}
				}
				t.goTo[stateID(s)][nt] = stateID(to)
			}
		}
	}

	return t, nil
}

// setAction installs action at (state, terminal), resolving any
// conflict with an action already present there by spec.md §4.4's
// tie-break policy and recording the conflict either way.
func (t *Table) setAction(s int, terminal symbol.Symbol, action Action) {
	sid := stateID(s)
	if t.action[sid] == nil {
		t.action[sid] = map[symbol.Symbol]Action{}
	}
	existing, had := t.action[sid][terminal]
	if !had {
		t.action[sid][terminal] = action
		return
	}
	if existing == action {
		return
	}

	chosen, rejected, kind := resolveConflict(existing, action)
	t.action[sid][terminal] = chosen
	t.conflicts = append(t.conflicts, &Conflict{
		Kind:     kind,
		State:    s,
		Terminal: terminal,
		Chosen:   chosen,
		Rejected: []Action{rejected},
	})
}

// resolveConflict applies the tie-break policy: shift beats reduce;
// between two reduces, the smaller production index wins.
func resolveConflict(a, b Action) (chosen, rejected Action, kind ConflictKind) {
	if a.Kind == ActionShift || b.Kind == ActionShift {
		if a.Kind == ActionShift {
			return a, b, ConflictShiftReduce
		}
		return b, a, ConflictShiftReduce
	}
	if a.Production <= b.Production {
		return a, b, ConflictReduceReduce
	}
	return b, a, ConflictReduceReduce
}
