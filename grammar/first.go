package grammar

import (
	"fmt"

	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// firstEntry mirrors nihei9-vartan/grammar/first.go's firstEntry: a set
// of terminals plus a separate "can derive ε" flag, so ε never has to be
// smuggled into the symbol set itself.
type firstEntry struct {
	terms map[symbol.Symbol]struct{}
	empty bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{terms: map[symbol.Symbol]struct{}{}}
}

func (e *firstEntry) add(s symbol.Symbol) bool {
	if _, ok := e.terms[s]; ok {
		return false
	}
	e.terms[s] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

func (e *firstEntry) mergeExceptEmpty(o *firstEntry) bool {
	changed := false
	for s := range o.terms {
		if e.add(s) {
			changed = true
		}
	}
	return changed
}

func (e *firstEntry) sorted(g *Grammar) []symbol.Symbol {
	out := make([]symbol.Symbol, 0, len(e.terms))
	for s := range e.terms {
		out = append(out, s)
	}
	return sortedByName(out, g.symTab)
}

type firstSet struct {
	g   *Grammar
	set map[symbol.Symbol]*firstEntry
}

// computeFirstSet computes FIRST(N) for every non-terminal N by
// monotone least-fixed-point iteration (spec.md §4.1, §9), grounded on
// nihei9-vartan/grammar/first.go's genFirstSet repeat-until-no-change
// loop.
func computeFirstSet(g *Grammar) (*firstSet, error) {
	fst := &firstSet{g: g, set: map[symbol.Symbol]*firstEntry{}}
	for _, nt := range g.NonTerminals() {
		fst.set[nt] = newFirstEntry()
	}

	for {
		changed := false
		for _, p := range g.prods.all {
			entry := fst.set[p.lhs]
			e, err := fst.firstOfTail(p.rhs, 0)
			if err != nil {
				return nil, err
			}
			if entry.mergeExceptEmpty(e) {
				changed = true
			}
			if e.empty && entry.addEmpty() {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return fst, nil
}

// firstOfTail computes FIRST(rhs[head:]) in terms of the current
// (possibly still-growing) fixed point, per the recursive rule in
// spec.md §4.1: FIRST(ε)={ε}; FIRST(aα')={a}; FIRST(Aα') includes
// FIRST(A)\{ε}, plus FIRST(α') when ε ∈ FIRST(A).
func (fst *firstSet) firstOfTail(rhs []symbol.Symbol, head int) (*firstEntry, error) {
	e := newFirstEntry()
	if head >= len(rhs) {
		e.addEmpty()
		return e, nil
	}
	for _, s := range rhs[head:] {
		if s.IsTerminal() {
			e.add(s)
			return e, nil
		}
		sub, ok := fst.set[s]
		if !ok {
			return nil, fmt.Errorf("FIRST set not found for non-terminal %v", s)
		}
		for t := range sub.terms {
			e.add(t)
		}
		if !sub.empty {
			return e, nil
		}
	}
	e.addEmpty()
	return e, nil
}

// of returns FIRST(sym): for a terminal, the singleton {sym}; for a
// non-terminal, the memoized fixed-point set.
func (fst *firstSet) of(sym symbol.Symbol) ([]symbol.Symbol, bool) {
	if sym.IsTerminal() {
		return []symbol.Symbol{sym}, false
	}
	e, ok := fst.set[sym]
	if !ok {
		return nil, false
	}
	return e.sorted(fst.g), e.empty
}

// ofSequence computes FIRST(α) for an arbitrary symbol sequence,
// including the empty sequence (FIRST(ε) = {ε}).
func (fst *firstSet) ofSequence(seq []symbol.Symbol) ([]symbol.Symbol, bool) {
	e, err := fst.firstOfTail(seq, 0)
	if err != nil {
		return nil, false
	}
	return e.sorted(fst.g), e.empty
}
