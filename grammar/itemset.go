package grammar

import (
	"sort"

	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// itemSet is an unordered set of LR(1) items — one state of the
// canonical collection (spec.md §4.3). Equality and hashing must be
// order-independent, since CLOSURE and GOTO build items in whatever
// order their worklists visit them; spec.md calls for combining
// per-item hashes with XOR so insertion order never matters.
type itemSet struct {
	items map[item]struct{}
	hash  uint64
}

func newItemSet() *itemSet {
	return &itemSet{items: map[item]struct{}{}}
}

func itemHash(it item) uint64 {
	// FNV-1a over the item's three fields, treated as a byte stream.
	// Any order-independent set hash would do; spec.md §4.3 only
	// requires that identical sets hash identically regardless of
	// construction order, which XOR-accumulation of per-item hashes
	// guarantees.
	h := uint64(14695981039346656037)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= (v >> (8 * i)) & 0xff
			h *= 1099511628211
		}
	}
	mix(uint64(it.prod))
	mix(uint64(it.dot))
	mix(uint64(it.lookahead))
	return h
}

func (s *itemSet) add(it item) bool {
	if _, ok := s.items[it]; ok {
		return false
	}
	s.items[it] = struct{}{}
	s.hash ^= itemHash(it)
	return true
}

func (s *itemSet) contains(it item) bool {
	_, ok := s.items[it]
	return ok
}

func (s *itemSet) len() int { return len(s.items) }

// equal reports whether two item sets contain exactly the same items.
// The hash is compared first as a cheap filter before the full
// element-wise comparison.
func (s *itemSet) equal(o *itemSet) bool {
	if s.hash != o.hash || len(s.items) != len(o.items) {
		return false
	}
	for it := range s.items {
		if _, ok := o.items[it]; !ok {
			return false
		}
	}
	return true
}

// sorted returns the set's items in a deterministic order (by
// production index, then dot position, then lookahead name) — used
// only for display (C7) and tests, never for construction, since
// construction must stay order-independent.
func (s *itemSet) sorted(g *Grammar) []item {
	out := make([]item, 0, len(s.items))
	for it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].prod != out[j].prod {
			return out[i].prod < out[j].prod
		}
		if out[i].dot != out[j].dot {
			return out[i].dot < out[j].dot
		}
		return g.SymbolName(out[i].lookahead) < g.SymbolName(out[j].lookahead)
	})
	return out
}

// closure computes CLOSURE(I) per spec.md §4.3: repeatedly, for every
// item A -> α·Bβ,a in the set, add B -> ·γ,b for every production
// B -> γ and every b ∈ FIRST(βa).
//
// Grounded on dekarrin-tunaq/clr1.go's Closure (Algorithm 4.56),
// adapted to this package's worklist idiom (nihei9-vartan/lr0.go uses
// the same repeat-until-no-change shape for its LR0 closure).
func closure(g *Grammar, start []item) *itemSet {
	set := newItemSet()
	worklist := make([]item, 0, len(start))
	for _, it := range start {
		if set.add(it) {
			worklist = append(worklist, it)
		}
	}

	for len(worklist) > 0 {
		it := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		dotSym, ok := it.dotSymbol(g.prods)
		if !ok || !dotSym.IsNonTerminal() {
			continue
		}

		p := g.prods.get(it.prod)
		beta := p.rhs[it.dot+1:]
		lookaheadSeq := append(append([]symbol.Symbol{}, beta...), it.lookahead)
		firstSeq, _ := g.FirstOfSequence(lookaheadSeq)

		for _, prod := range g.ProductionsOf(dotSym) {
			for _, b := range firstSeq {
				newItem := item{prod: prod.id, dot: 0, lookahead: b}
				if set.add(newItem) {
					worklist = append(worklist, newItem)
				}
			}
		}
	}

	return set
}

// gotoSet computes GOTO(I, X) per spec.md §4.3: advance every item in
// I whose dot-symbol is X, then close the result. An empty item set
// (no item advances on X) means there is no transition on X.
func gotoSet(g *Grammar, set *itemSet, x symbol.Symbol) *itemSet {
	var advanced []item
	for it := range set.items {
		dotSym, ok := it.dotSymbol(g.prods)
		if ok && dotSym == x {
			advanced = append(advanced, it.advance())
		}
	}
	if len(advanced) == 0 {
		return nil
	}
	return closure(g, advanced)
}
