package grammar

import "github.com/lkndy/lr1-visualizer/grammar/symbol"

// productionID identifies a production by its zero-based insertion
// index, per spec.md §3 ("that index is used in REDUCE actions and in
// step records"). The teacher derives production identity from a
// sha256 hash of LHS/RHS bytes (nihei9-vartan/grammar/production.go);
// this package keeps no such hash: a production's only identity is its
// stable insertion index, which is also what item-set hashing mixes in
// (see itemHash in itemset.go).
type productionID int

type production struct {
	id  productionID
	lhs symbol.Symbol
	rhs []symbol.Symbol
}

func (p *production) isEmpty() bool { return len(p.rhs) == 0 }

// productionSet owns every production of a grammar in insertion order.
// Grounded on nihei9-vartan/grammar/production.go's productionSet, which
// maintains both an insertion-ordered list and an LHS index.
type productionSet struct {
	all   []*production
	byLHS map[symbol.Symbol][]*production
}

func newProductionSet() *productionSet {
	return &productionSet{byLHS: map[symbol.Symbol][]*production{}}
}

func (ps *productionSet) append(lhs symbol.Symbol, rhs []symbol.Symbol) *production {
	p := &production{id: productionID(len(ps.all)), lhs: lhs, rhs: rhs}
	ps.all = append(ps.all, p)
	ps.byLHS[lhs] = append(ps.byLHS[lhs], p)
	return p
}

func (ps *productionSet) get(id productionID) *production {
	return ps.all[id]
}

func (ps *productionSet) findByLHS(lhs symbol.Symbol) []*production {
	return ps.byLHS[lhs]
}

func (ps *productionSet) count() int { return len(ps.all) }
