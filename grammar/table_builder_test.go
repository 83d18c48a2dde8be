package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTableFor(t *testing.T, text, start string) (*Grammar, *Table) {
	t.Helper()
	g := mustBuild(t, text, start)
	a, diags := BuildAutomaton(g)
	require.Empty(t, diags)
	tbl, diags := BuildTable(g, a)
	require.Empty(t, diags)
	return g, tbl
}

func TestBuildTable_ExprGrammarHasNoConflicts(t *testing.T) {
	_, tbl := buildTableFor(t, exprGrammar, "S")
	assert.False(t, tbl.HasConflicts())
}

// Scenario B: dangling-else ambiguity. Exactly one ShiftReduce
// conflict; the tie-break installs Shift.
const danglingElseGrammar = `
S -> I
I -> if E then I | if E then I else I | other
E -> x
`

func TestBuildTable_DanglingElseIsShiftReduce(t *testing.T) {
	_, tbl := buildTableFor(t, danglingElseGrammar, "S")

	require.True(t, tbl.HasConflicts())
	require.Len(t, tbl.Conflicts(), 1, "expected exactly one ShiftReduce conflict")
	var found *Conflict
	for _, c := range tbl.Conflicts() {
		if c.Kind == ConflictShiftReduce {
			found = c
		}
	}
	require.NotNil(t, found, "expected exactly one ShiftReduce conflict")
	assert.Equal(t, ActionShift, found.Chosen.Kind, "tie-break must prefer shift over reduce")

	for _, c := range tbl.Conflicts() {
		assert.Equal(t, ConflictShiftReduce, c.Kind, "dangling-else should not produce any ReduceReduce conflict")
	}
}

// Scenario C: reduce-reduce conflict between A -> x and B -> x on the
// shared lookahead 'a'.
const reduceReduceGrammar = `
S -> A a | B a
A -> x
B -> x
`

func TestBuildTable_ReduceReduceConflict(t *testing.T) {
	g, tbl := buildTableFor(t, reduceReduceGrammar, "S")

	require.True(t, tbl.HasConflicts())
	var found *Conflict
	for _, c := range tbl.Conflicts() {
		if c.Kind == ConflictReduceReduce {
			found = c
		}
	}
	require.NotNil(t, found, "expected a ReduceReduce conflict")
	assert.Equal(t, "a", g.SymbolName(found.Terminal))
	assert.Equal(t, ActionReduce, found.Chosen.Kind)

	// tie-break prefers the smallest production index among the
	// rejected alternatives too.
	for _, rej := range found.Rejected {
		assert.GreaterOrEqual(t, rej.Production, found.Chosen.Production)
	}
}

func TestBuildTable_AcceptAppearsExactlyOnce(t *testing.T) {
	_, tbl := buildTableFor(t, exprGrammar, "S")

	count := 0
	for s := 0; s < tbl.StateCount(); s++ {
		for _, a := range tbl.ActionsAt(s) {
			if a.Kind == ActionAccept {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
}
