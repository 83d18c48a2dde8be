package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkndy/lr1-visualizer/grammar"
	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// setup runs the full C2->C1->C4->C5 pipeline and tokenizes input,
// returning everything Parse needs.
func setup(t *testing.T, text, start, input string) (*grammar.Grammar, *grammar.Table, []symbol.Symbol) {
	t.Helper()
	prods, diags := grammar.ParseGrammarText(text)
	require.Empty(t, diags)
	g, diags := grammar.Build(prods, start)
	require.NotNil(t, g, "%v", diags)
	a, diags := grammar.BuildAutomaton(g)
	require.Empty(t, diags)
	tbl, diags := grammar.BuildTable(g, a)
	require.Empty(t, diags)
	toks, tokDiag := grammar.Tokenize(g, input)
	require.Nil(t, tokDiag)
	return g, tbl, toks
}

const exprGrammar = `
S -> E
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

// Scenario A: classic expression grammar, success in 14 steps.
func TestParse_ScenarioA_ExpressionGrammar(t *testing.T) {
	g, tbl, toks := setup(t, exprGrammar, "S", "id + id * id")

	result := Parse(g, tbl, toks)
	require.True(t, result.Success, "%v", result.Reject)
	assert.Len(t, result.Steps, 14)

	root := result.Tree.Node(result.Tree.Root)
	assert.Equal(t, "S", root.SymbolName)
	require.Len(t, root.Children, 1)
}

// Scenario D: an ε-production accepts the empty token list in three
// steps. This driver records one step per ACTION consulted and no
// separate step for the initial configuration, so the steps are:
// reduce L->ε, reduce S->L, accept.
const epsilonGrammar = `
S -> L
L -> L x | ε
`

func TestParse_ScenarioD_EpsilonAcceptsEmptyInput(t *testing.T) {
	g, tbl, toks := setup(t, epsilonGrammar, "S", "")

	result := Parse(g, tbl, toks)
	require.True(t, result.Success, "%v", result.Reject)
	assert.Len(t, result.Steps, 3)
	assert.Equal(t, 3, result.Tree.NodeCount())
}

// Scenario E: rejection at the first unexpected token.
func TestParse_ScenarioE_RejectsIncompleteInput(t *testing.T) {
	g, tbl, toks := setup(t, exprGrammar, "S", "id +")

	result := Parse(g, tbl, toks)
	require.False(t, result.Success)
	last := result.Steps[len(result.Steps)-1]
	assert.Equal(t, "$", last.Lookahead)
}

// Scenario F: a token that matches no declared terminal fails during
// tokenization itself, before any step is ever recorded.
func TestParse_ScenarioF_UnknownTokenNeverReachesTheDriver(t *testing.T) {
	prods, diags := grammar.ParseGrammarText(exprGrammar)
	require.Empty(t, diags)
	g, diags := grammar.Build(prods, "S")
	require.NotNil(t, g, "%v", diags)

	_, diag := grammar.Tokenize(g, "id ? id")
	require.NotNil(t, diag)
}

func TestParse_StepSequenceIsDeterministic(t *testing.T) {
	g, tbl, toks := setup(t, exprGrammar, "S", "id + id * id")

	r1 := Parse(g, tbl, toks)
	r2 := Parse(g, tbl, toks)
	require.True(t, r1.Success)
	require.True(t, r2.Success)
	require.Equal(t, len(r1.Steps), len(r2.Steps))
	for i := range r1.Steps {
		assert.Equal(t, r1.Steps[i].ActionText, r2.Steps[i].ActionText)
		assert.Equal(t, r1.Steps[i].SententialForm, r2.Steps[i].SententialForm)
	}
}

func TestParse_MaxStepsGuard(t *testing.T) {
	g, tbl, toks := setup(t, exprGrammar, "S", "id + id * id")

	result := Parse(g, tbl, toks, WithMaxSteps(1))
	require.False(t, result.Success)
	require.NotNil(t, result.Reject)
}
