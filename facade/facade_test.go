package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkndy/lr1-visualizer/driver"
	"github.com/lkndy/lr1-visualizer/grammar"
)

const exprGrammar = `
S -> E
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func buildAll(t *testing.T) (*grammar.Grammar, *grammar.Automaton, *grammar.Table) {
	t.Helper()
	prods, diags := grammar.ParseGrammarText(exprGrammar)
	require.Empty(t, diags)
	g, diags := grammar.Build(prods, "S")
	require.NotNil(t, g, "%v", diags)
	a, diags := grammar.BuildAutomaton(g)
	require.Empty(t, diags)
	tbl, diags := grammar.BuildTable(g, a)
	require.Empty(t, diags)
	return g, a, tbl
}

func TestSnapshotState_PrintsCanonicalItemForm(t *testing.T) {
	g, a, _ := buildAll(t)
	snap := SnapshotState(g, a, 0)

	require.NotEmpty(t, snap.Items)
	for _, printed := range snap.Items {
		assert.Contains(t, printed, "→")
		assert.Contains(t, printed, "·")
		assert.Contains(t, printed, ",")
	}
}

func TestSnapshotTable_HeadersMatchSymbolCounts(t *testing.T) {
	g, _, tbl := buildAll(t)
	snap := SnapshotTable(g, tbl)

	assert.Len(t, snap.ActionHeaders, len(g.Terminals()))
	assert.Len(t, snap.GotoHeaders, len(g.NonTerminals()))
	assert.Len(t, snap.ActionRows, tbl.StateCount())
	assert.Len(t, snap.GotoRows, tbl.StateCount())
	assert.Empty(t, snap.Conflicts)
}

func TestSnapshotParse_RoundTripsSuccessfulParse(t *testing.T) {
	g, _, tbl := buildAll(t)
	toks, diag := grammar.Tokenize(g, "id + id")
	require.Nil(t, diag)

	result := driver.Parse(g, tbl, toks)
	require.True(t, result.Success)

	names := make([]string, len(toks))
	for i, tok := range toks {
		names[i] = g.SymbolName(tok)
	}
	view := SnapshotParse(g, result, names)

	assert.True(t, view.Success)
	assert.Len(t, view.Steps, len(result.Steps))
	assert.NotEmpty(t, view.Tree)
	assert.Equal(t, int(result.Tree.Root), view.Root)
}
