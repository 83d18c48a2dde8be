package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

func TestClosure_InitialStateOfExprGrammar(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")

	startItem := item{prod: 0, dot: 0, lookahead: symbol.SymbolEOF}
	set := closure(g, []item{startItem})

	require.True(t, set.contains(startItem), "CLOSURE must contain its own kernel")
	assert.Greater(t, set.len(), 1, "CLOSURE of S' -> ·S, $ should add derived items")

	// Every item with a non-terminal dot-symbol should have spawned a
	// dot-at-0 item for every production of that non-terminal.
	eSym := symbolByName(t, g, "E")
	eProds := g.ProductionsOf(eSym)
	for _, p := range eProds {
		found := false
		for it := range set.items {
			if it.prod == p.id && it.dot == 0 {
				found = true
			}
		}
		assert.True(t, found, "expected a dot-at-0 item for production %v in the closure", p.id)
	}
}

func TestItemSet_EqualityIsOrderIndependent(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	startItem := item{prod: 0, dot: 0, lookahead: symbol.SymbolEOF}

	a := closure(g, []item{startItem})
	b := newItemSet()
	// insert the same items in reverse discovery order.
	var all []item
	for it := range a.items {
		all = append(all, it)
	}
	for i := len(all) - 1; i >= 0; i-- {
		b.add(all[i])
	}

	assert.True(t, a.equal(b))
	assert.Equal(t, a.hash, b.hash)
}

func TestGoto_UndefinedWhenNoItemAdvances(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	startItem := item{prod: 0, dot: 0, lookahead: symbol.SymbolEOF}
	set := closure(g, []item{startItem})

	plus := symbolByName(t, g, "+")
	// in the initial state, no item has '+' immediately after the dot.
	result := gotoSet(g, set, plus)
	assert.Nil(t, result)
}

func TestGoto_AdvancesDotAndRecloses(t *testing.T) {
	g := mustBuild(t, exprGrammar, "S")
	startItem := item{prod: 0, dot: 0, lookahead: symbol.SymbolEOF}
	set := closure(g, []item{startItem})

	idSym := symbolByName(t, g, "id")
	result := gotoSet(g, set, idSym)
	require.NotNil(t, result)

	fSym := symbolByName(t, g, "F")
	fProds := g.ProductionsOf(fSym)
	var idProd productionID
	for _, p := range fProds {
		if len(p.rhs) == 1 && p.rhs[0] == idSym {
			idProd = p.id
		}
	}
	found := false
	for it := range result.items {
		if it.prod == idProd && it.dot == 1 {
			found = true
		}
	}
	assert.True(t, found, "GOTO on 'id' should advance F -> id to F -> id ·")
}
