package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verr "github.com/lkndy/lr1-visualizer/error"
	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

func mustBuild(t *testing.T, text, start string) *Grammar {
	t.Helper()
	prods, diags := ParseGrammarText(text)
	require.Empty(t, diags, "unexpected syntax diagnostics: %v", diags)
	g, diags := Build(prods, start)
	require.NotNil(t, g, "grammar failed to build: %v", diags)
	return g
}

const exprGrammar = `
S -> E
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func TestBuild_AugmentsStart(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")

	lhs, rhs := g.Production(0)
	assert.Equal(t, g.AugmentedStart(), lhs)
	require.Len(t, rhs, 1)
	assert.Equal(t, g.Start(), rhs[0])
	assert.NotEqual(t, g.Start(), g.AugmentedStart())
}

func TestBuild_ClassifiesTerminalsAndNonTerminals(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")

	var names []string
	for _, s := range g.NonTerminals() {
		names = append(names, g.SymbolName(s))
	}
	assert.Contains(t, names, "S")
	assert.Contains(t, names, "E")
	assert.Contains(t, names, "T")
	assert.Contains(t, names, "F")

	names = nil
	for _, s := range g.Terminals() {
		names = append(names, g.SymbolName(s))
	}
	assert.Contains(t, names, "+")
	assert.Contains(t, names, "*")
	assert.Contains(t, names, "(")
	assert.Contains(t, names, ")")
	assert.Contains(t, names, "id")
	assert.Contains(t, names, "$")
}

func TestBuild_ProductionIndicesAreStable(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	// production 0 is always the synthesized S' -> S; the first
	// user production (S -> E) is production 1, in source order.
	lhs, rhs := g.Production(1)
	assert.Equal(t, "S", g.SymbolName(lhs))
	require.Len(t, rhs, 1)
	assert.Equal(t, "E", g.SymbolName(rhs[0]))
}

func TestBuild_EpsilonProduction(t *testing.T) {
	g := mustBuild(t, "S -> L\nL -> L x | ε\n", "S")

	prods := g.ProductionsOf(symbolByName(t, g, "L"))
	var sawEmpty bool
	for _, p := range prods {
		if len(p.rhs) == 0 {
			sawEmpty = true
		}
	}
	assert.True(t, sawEmpty, "expected an epsilon alternative for L")
}

func TestBuild_DuplicateEmptyAlternativesDiagnosed(t *testing.T) {
	prods, _ := ParseGrammarText("S -> a\nS -> a\n")
	g, diags := Build(prods, "S")
	require.NotNil(t, g)
	require.True(t, diags.HasKind(verr.KindGrammarSemantic))
	found := false
	for _, d := range diags {
		if d.Cause == verr.CauseDuplicateEmptyAlternatives {
			found = true
		}
	}
	assert.True(t, found)
	// the duplicate alternative was not inserted a second time.
	assert.Len(t, g.ProductionsOf(g.Start()), 1)
}

func TestBuild_UnreachableFromStartDiagnosed(t *testing.T) {
	prods, _ := ParseGrammarText("S -> a\nU -> b\n")
	g, diags := Build(prods, "S")
	require.NotNil(t, g)
	found := false
	for _, d := range diags {
		if d.Detail == "U" {
			found = true
		}
	}
	assert.True(t, found, "expected an UnreachableFromStart diagnostic naming U")
}

func TestBuild_NoDiagnosticsWhenEverySymbolIsUsed(t *testing.T) {
	prods, _ := ParseGrammarText("S -> a\n")
	_, diags := Build(prods, "S")
	assert.Empty(t, diags, "every symbol in this grammar is used; expected no diagnostics")
}

func symbolByName(t *testing.T, g *Grammar, name string) symbol.Symbol {
	t.Helper()
	s, ok := g.symTab.Reader().ToSymbol(name)
	require.True(t, ok, "symbol %q not found", name)
	return s
}
