// Package grammar implements the core of the LR(1) parser-generator:
// the grammar model with FIRST/FOLLOW (C1), the grammar-text frontend
// (C2), LR(1) items and item-sets (C3), the canonical-collection
// automaton builder (C4), and the ACTION/GOTO table builder (C5).
//
// Grounded on nihei9-vartan/grammar/grammar.go's GrammarBuilder shape,
// generalized away from the teacher's lexical-spec/precedence/directive
// machinery to the plain production-only model spec.md §3 describes.
package grammar

import (
	"fmt"
	"sort"

	verr "github.com/lkndy/lr1-visualizer/error"
	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// startSymbolSuffix picks a fresh augmented-start name; spec.md §4.1
// requires it not collide with any existing non-terminal.
const startSymbolSuffix = "'"

// Grammar owns the augmented production set, terminal/non-terminal
// symbol tables, and the memoized FIRST/FOLLOW sets, per spec.md §3.
type Grammar struct {
	symTab        *symbol.SymbolTable
	prods         *productionSet
	start         symbol.Symbol // user's declared start symbol, S
	augmentedGoal symbol.Symbol // synthesized S'
	first         *firstSet
	follow        *followSet
}

// AugmentedStart returns the synthesized S' symbol. Production 0 is
// always S' → S.
func (g *Grammar) AugmentedStart() symbol.Symbol { return g.augmentedGoal }

// Start returns the user-declared start symbol S.
func (g *Grammar) Start() symbol.Symbol { return g.start }

// ProductionCount returns the number of productions, including the
// synthesized production 0.
func (g *Grammar) ProductionCount() int { return g.prods.count() }

// Production returns the production at the given stable index.
func (g *Grammar) Production(id int) (lhs symbol.Symbol, rhs []symbol.Symbol) {
	p := g.prods.get(productionID(id))
	return p.lhs, p.rhs
}

// Terminals returns every terminal symbol (including $), sorted by
// name, per spec.md §9's reproducibility requirement.
func (g *Grammar) Terminals() []symbol.Symbol {
	return sortedByName(g.symTab.Reader().TerminalSymbols(), g.symTab)
}

// NonTerminals returns every non-terminal symbol (including S'), sorted
// by name.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	return sortedByName(g.symTab.Reader().NonTerminalSymbols(), g.symTab)
}

// AllSymbolsSorted returns terminals then non-terminals, each
// alphabetical by name — the shift-symbol iteration order spec.md §4.4
// mandates.
func (g *Grammar) AllSymbolsSorted() []symbol.Symbol {
	return g.symTab.Reader().AllSymbolsSortedByName()
}

// SymbolName returns the textual name of a symbol.
func (g *Grammar) SymbolName(s symbol.Symbol) string {
	name, _ := g.symTab.Reader().ToText(s)
	return name
}

// ProductionsOf returns every production with the given LHS.
func (g *Grammar) ProductionsOf(lhs symbol.Symbol) []*production {
	return g.prods.findByLHS(lhs)
}

func sortedByName(syms []symbol.Symbol, tab *symbol.SymbolTable) []symbol.Symbol {
	out := make([]symbol.Symbol, len(syms))
	copy(out, syms)
	sort.Slice(out, func(i, j int) bool {
		ni, _ := tab.Reader().ToText(out[i])
		nj, _ := tab.Reader().ToText(out[j])
		return ni < nj
	})
	return out
}

// First returns FIRST(sym) for a non-terminal, or the singleton {sym}
// for a terminal, per spec.md §4.1.
func (g *Grammar) First(sym symbol.Symbol) (terms []symbol.Symbol, hasEpsilon bool) {
	return g.first.of(sym)
}

// FirstOfSequence returns FIRST(α) for a sequence of symbols, per the
// recursive definition in spec.md §4.1.
func (g *Grammar) FirstOfSequence(seq []symbol.Symbol) (terms []symbol.Symbol, hasEpsilon bool) {
	return g.first.ofSequence(seq)
}

// Follow returns FOLLOW(nonTerm), per spec.md §4.1. Exposed read-only;
// not used by the canonical LR(1) construction itself (spec.md §4.1).
func (g *Grammar) Follow(nonTerm symbol.Symbol) []symbol.Symbol {
	return g.follow.of(nonTerm)
}

// rawProduction is the pre-classification shape the grammar-text parser
// (C2) hands to the builder: plain names, not yet tagged terminal vs.
// non-terminal. Classification happens after every LHS is known, per
// spec.md §9 ("Dynamic classification").
type rawProduction struct {
	LHS string
	RHS []string // empty slice denotes an ε-production
	Row int
}

// Build constructs a Grammar from raw productions plus a start-symbol
// name, performing the two-pass classification and validation spec.md
// §4.1 describes. It always returns every diagnostic it finds, even
// when some are fatal, so a caller can show the whole picture (spec.md
// §7 kind 2).
func Build(prods []rawProduction, startName string) (*Grammar, verr.Diagnostics) {
	var diags verr.Diagnostics

	if len(prods) == 0 {
		diags = append(diags, &verr.Diagnostic{Kind: verr.KindGrammarSemantic, Cause: "NoProductions"})
		return nil, diags
	}

	lhsNames := map[string]bool{}
	for _, p := range prods {
		lhsNames[p.LHS] = true
	}
	if !lhsNames[startName] {
		diags = append(diags, &verr.Diagnostic{
			Kind: verr.KindGrammarSemantic, Cause: "UndefinedNonTerminal", Detail: startName,
		})
		return nil, diags
	}

	augName := startName + startSymbolSuffix
	for lhsNames[augName] {
		augName += startSymbolSuffix
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()
	augStart, _ := w.RegisterStartSymbol(augName)
	startSym, _ := w.RegisterNonTerminalSymbol(startName)

	// Pass 1 (already done above: collect LHS names). Pass 2: classify
	// every RHS token and register it, per spec.md §9.
	usedAsRHS := map[string][]int{} // name -> rows it appears on a RHS
	for _, p := range prods {
		for _, tok := range p.RHS {
			usedAsRHS[tok] = append(usedAsRHS[tok], p.Row)
		}
	}

	for name := range lhsNames {
		if name == startName {
			continue
		}
		_, _ = w.RegisterNonTerminalSymbol(name)
	}
	for name := range usedAsRHS {
		if lhsNames[name] {
			continue
		}
		_, _ = w.RegisterTerminalSymbol(name)
	}

	ps := newProductionSet()
	ps.append(augStart, []symbol.Symbol{startSym}) // production 0: S' -> S

	seen := map[string]int{} // dedup key -> first row, for DuplicateEmptyAlternatives
	for _, p := range prods {
		lhs, _ := symTab.Reader().ToSymbol(p.LHS)
		rhs := make([]symbol.Symbol, 0, len(p.RHS))
		for _, tok := range p.RHS {
			s, _ := symTab.Reader().ToSymbol(tok)
			rhs = append(rhs, s)
		}
		key := dedupKey(p.LHS, p.RHS)
		if first, dup := seen[key]; dup {
			diags = append(diags, &verr.Diagnostic{
				Kind: verr.KindGrammarSemantic, Cause: verr.CauseDuplicateEmptyAlternatives,
				Detail: p.LHS, Row: p.Row,
				Context: fmt.Sprintf("identical to the alternative declared at line %d", first),
			})
			continue
		}
		seen[key] = p.Row
		ps.append(lhs, rhs)
	}

	g := &Grammar{
		symTab:        symTab,
		prods:         ps,
		start:         startSym,
		augmentedGoal: augStart,
	}

	diags = append(diags, g.validate(usedAsRHS)...)

	fst, err := computeFirstSet(g)
	if err != nil {
		diags = append(diags, &verr.Diagnostic{Kind: verr.KindInternalInvariant, Cause: err.Error()})
		return nil, diags
	}
	g.first = fst
	g.follow = computeFollowSet(g)

	return g, diags
}

func dedupKey(lhs string, rhs []string) string {
	key := lhs + "->"
	for _, s := range rhs {
		key += s + " "
	}
	return key
}

// validate implements spec.md §4.1's validation diagnostics.
func (g *Grammar) validate(usedAsRHS map[string][]int) verr.Diagnostics {
	var diags verr.Diagnostics

	// UndefinedNonTerminal (spec.md §4.1) cannot be produced by this
	// classification scheme: a name is a non-terminal iff it is some
	// production's LHS (§4.2/§9's two-pass classification), so any
	// non-terminal by definition has at least one production by the
	// time Build reaches this point. The diagnostic kind is still
	// defined in error/error.go for a stricter frontend that declares
	// non-terminals independently of usage.

	// UnreachableFromStart: warning-as-error, construction proceeds.
	reachable := map[symbol.Symbol]bool{g.start: true}
	worklist := []symbol.Symbol{g.start}
	for len(worklist) > 0 {
		nt := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, p := range g.prods.findByLHS(nt) {
			for _, s := range p.rhs {
				if s.IsNonTerminal() && !reachable[s] {
					reachable[s] = true
					worklist = append(worklist, s)
				}
			}
		}
	}
	for _, nt := range g.NonTerminals() {
		if nt == g.augmentedGoal || reachable[nt] {
			continue
		}
		diags = append(diags, &verr.Diagnostic{
			Kind: verr.KindGrammarSemantic, Cause: verr.CauseUnreachableFromStart,
			Detail: g.SymbolName(nt),
		})
	}

	// UnusedSymbol: declared (has productions, for non-terminals) but
	// never appears on any RHS, and is not the start symbol.
	rhsUse := map[symbol.Symbol]bool{}
	for _, p := range g.prods.all {
		for _, s := range p.rhs {
			rhsUse[s] = true
		}
	}
	for _, nt := range g.NonTerminals() {
		if nt == g.start || nt == g.augmentedGoal || rhsUse[nt] {
			continue
		}
		diags = append(diags, &verr.Diagnostic{
			Kind: verr.KindGrammarSemantic, Cause: verr.CauseUnusedSymbol,
			Detail: g.SymbolName(nt),
		})
	}
	for _, t := range g.Terminals() {
		if t.IsEOF() || rhsUse[t] {
			continue
		}
		diags = append(diags, &verr.Diagnostic{
			Kind: verr.KindGrammarSemantic, Cause: verr.CauseUnusedSymbol,
			Detail: g.SymbolName(t),
		})
	}

	return diags
}
