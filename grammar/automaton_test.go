package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verr "github.com/lkndy/lr1-visualizer/error"
)

func TestBuildAutomaton_ExprGrammarIsDeterministic(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")

	a1, diags1 := BuildAutomaton(g)
	require.Empty(t, diags1)
	a2, diags2 := BuildAutomaton(g)
	require.Empty(t, diags2)

	assert.Equal(t, a1.StateCount(), a2.StateCount())
	for i := 0; i < a1.StateCount(); i++ {
		items1 := a1.Items(i)
		items2 := a2.Items(i)
		require.Len(t, items2, len(items1), "state %d item count mismatch across runs", i)
		for j := range items1 {
			assert.Equal(t, items1[j], items2[j], "state %d item %d mismatch across runs", i, j)
		}
	}
}

func TestBuildAutomaton_EveryShiftHasAReverseItem(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	a, diags := BuildAutomaton(g)
	require.Empty(t, diags)

	for _, tr := range a.Transitions() {
		target := a.Items(tr.To)
		found := false
		for _, it := range target {
			_, rhs := g.Production(it.Production)
			if it.Dot > 0 && rhs[it.Dot-1] == tr.On {
				found = true
				break
			}
		}
		assert.True(t, found, "transition (%d, %s, %d) has no matching advanced item in the target state",
			tr.From, g.SymbolName(tr.On), tr.To)
	}
}

func TestBuildAutomaton_StateExplosionGuard(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	_, diags := BuildAutomaton(g, WithMaxStates(1))
	require.True(t, diags.HasKind(verr.KindResourceExhaustion))
}
