package grammar

import "github.com/lkndy/lr1-visualizer/grammar/symbol"

// followSet computes FOLLOW(A) for every non-terminal A by the standard
// definition in spec.md §4.1. Exposed read-only; the canonical LR(1)
// construction (C3/C4/C5) never consults it — lookaheads come from
// FIRST(βa) during CLOSURE instead (spec.md §4.3).
//
// Grounded on nihei9-vartan/grammar/follow.go's worklist-over-productions
// fixpoint shape.
type followSet struct {
	g   *Grammar
	set map[symbol.Symbol]map[symbol.Symbol]struct{}
}

func computeFollowSet(g *Grammar) *followSet {
	fol := &followSet{g: g, set: map[symbol.Symbol]map[symbol.Symbol]struct{}{}}
	for _, nt := range g.NonTerminals() {
		fol.set[nt] = map[symbol.Symbol]struct{}{}
	}

	fol.set[g.start][symbol.SymbolEOF] = struct{}{}

	for {
		changed := false
		for _, p := range g.prods.all {
			for i, sym := range p.rhs {
				if !sym.IsNonTerminal() {
					continue
				}
				beta := p.rhs[i+1:]
				firstBeta, hasEpsilon := g.first.ofSequence(beta)
				for _, t := range firstBeta {
					if _, ok := fol.set[sym][t]; !ok {
						fol.set[sym][t] = struct{}{}
						changed = true
					}
				}
				if len(beta) == 0 || hasEpsilon {
					for t := range fol.set[p.lhs] {
						if _, ok := fol.set[sym][t]; !ok {
							fol.set[sym][t] = struct{}{}
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			break
		}
	}
	return fol
}

func (fol *followSet) of(nonTerm symbol.Symbol) []symbol.Symbol {
	set, ok := fol.set[nonTerm]
	if !ok {
		return nil
	}
	out := make([]symbol.Symbol, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return sortedByName(out, fol.g.symTab)
}
