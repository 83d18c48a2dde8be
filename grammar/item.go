package grammar

import (
	"fmt"

	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// item is an LR(1) item (production_index, dot_position, lookahead),
// per spec.md §4.2. Unlike nihei9-vartan's LR0Item (which carries no
// lookahead, since the teacher builds LALR by propagating lookaheads
// onto an LR0 automaton after the fact), a canonical LR(1) item's
// identity includes the lookahead terminal itself — grounded on
// dekarrin-tunaq/clr1.go's Item type (Algorithm 4.56).
type item struct {
	prod      productionID
	dot       int
	lookahead symbol.Symbol
}

// dotSymbol returns the symbol immediately after the dot, and whether
// one exists (false at the end of the production).
func (it item) dotSymbol(ps *productionSet) (symbol.Symbol, bool) {
	p := ps.get(it.prod)
	if it.dot >= len(p.rhs) {
		return 0, false
	}
	return p.rhs[it.dot], true
}

// isComplete reports whether the dot has reached the end of the
// production's RHS, i.e. this item calls for a REDUCE.
func (it item) isComplete(ps *productionSet) bool {
	return it.dot >= len(ps.get(it.prod).rhs)
}

// advance returns the item with the dot moved one position to the
// right. Callers must only call this when dotSymbol reported a symbol.
func (it item) advance() item {
	return item{prod: it.prod, dot: it.dot + 1, lookahead: it.lookahead}
}

// Item is the exported, cross-package view of an LR(1) item, used by
// the automaton's public accessors and by the serialization facade
// (C7). Production is the stable zero-based production index (spec.md
// §3).
type Item struct {
	Production int
	Dot        int
	Lookahead  symbol.Symbol
}

func (it item) export() Item {
	return Item{Production: int(it.prod), Dot: it.dot, Lookahead: it.lookahead}
}

// String renders an item in the canonical printed form spec.md §6
// specifies: "A → α · β , a".
func (it Item) String(g *Grammar) string {
	p := g.prods.get(productionID(it.Production))
	s := g.SymbolName(p.lhs) + " →"
	for i, sym := range p.rhs {
		if i == it.Dot {
			s += " ·"
		}
		s += " " + g.SymbolName(sym)
	}
	if it.Dot == len(p.rhs) {
		s += " ·"
	}
	return fmt.Sprintf("%s , %s", s, g.SymbolName(it.Lookahead))
}

func (it item) String(g *Grammar) string {
	return it.export().String(g)
}
