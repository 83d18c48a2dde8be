package grammar

import (
	"fmt"

	verr "github.com/lkndy/lr1-visualizer/error"
	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// stateID identifies a state of the canonical collection by its
// zero-based discovery order — state 0 is always
// CLOSURE({S' -> ·S, $}), per spec.md §4.3.
type stateID int

// transition records a single GOTO edge of the automaton.
type transition struct {
	from stateID
	on   symbol.Symbol
	to   stateID
}

// Automaton is the canonical collection of LR(1) item sets plus the
// GOTO edges between them (spec.md §4.3/§4.4). Built by BuildAutomaton
// from a Grammar.
//
// Grounded on nihei9-vartan/grammar/lr0.go's genLR0Automaton: a
// worklist over discovered states, visiting shift-symbols in a fixed
// sorted order so that state discovery order — and therefore every
// stateID — is fully deterministic (spec.md §9).
type Automaton struct {
	g           *Grammar
	states      []*itemSet
	transitions []transition
	byFrom      map[stateID]map[symbol.Symbol]stateID
}

// DefaultMaxStates bounds the number of states BuildAutomaton will
// construct before giving up with a StateExplosion diagnostic
// (spec.md §7 kind 5).
const DefaultMaxStates = 10000

// AutomatonOption configures BuildAutomaton, following the functional-
// options idiom nihei9-vartan uses for driver.ParserOption.
type AutomatonOption func(*automatonConfig)

// TraceFunc receives one structured trace line during construction.
// Core packages depend only on this function type, never on a
// concrete logging library (see internal/telemetry.Logger.Sink).
type TraceFunc func(level, msg string, fields map[string]any)

type automatonConfig struct {
	maxStates int
	trace     TraceFunc
}

// WithMaxStates overrides DefaultMaxStates.
func WithMaxStates(n int) AutomatonOption {
	return func(c *automatonConfig) { c.maxStates = n }
}

// WithTrace attaches a TraceFunc that receives one line per state
// discovered during construction.
func WithTrace(fn TraceFunc) AutomatonOption {
	return func(c *automatonConfig) { c.trace = fn }
}

// BuildAutomaton constructs the canonical LR(1) collection of states
// and transitions for g (spec.md §4.3/§4.4).
func BuildAutomaton(g *Grammar, opts ...AutomatonOption) (*Automaton, verr.Diagnostics) {
	cfg := &automatonConfig{maxStates: DefaultMaxStates}
	for _, opt := range opts {
		opt(cfg)
	}

	startItem := item{prod: 0, dot: 0, lookahead: symbol.SymbolEOF}
	startSet := closure(g, []item{startItem})

	a := &Automaton{
		g:      g,
		states: []*itemSet{startSet},
		byFrom: map[stateID]map[symbol.Symbol]stateID{},
	}

	shiftSymbols := g.AllSymbolsSorted()

	worklist := []stateID{0}
	for len(worklist) > 0 {
		from := worklist[0]
		worklist = worklist[1:]

		for _, x := range shiftSymbols {
			to := gotoSet(g, a.states[from], x)
			if to == nil || to.len() == 0 {
				continue
			}

			beforeCount := len(a.states)
			target := a.findOrAdd(to)
			isNew := len(a.states) > beforeCount
			if isNew && len(a.states) > cfg.maxStates {
				return a, verr.Diagnostics{{
					Kind:   verr.KindResourceExhaustion,
					Cause:  verr.CauseStateExplosion,
					Detail: fmt.Sprintf("exceeded MAX_STATES=%d", cfg.maxStates),
				}}
			}

			if a.byFrom[from] == nil {
				a.byFrom[from] = map[symbol.Symbol]stateID{}
			}
			if _, exists := a.byFrom[from][x]; !exists {
				a.byFrom[from][x] = target
				a.transitions = append(a.transitions, transition{from: from, on: x, to: target})
				if isNew {
					worklist = append(worklist, target)
					if cfg.trace != nil {
						cfg.trace("debug", "discovered state", map[string]any{
							"state": int(target), "from": int(from), "on": g.SymbolName(x),
						})
					}
				}
			}
		}
	}

	return a, nil
}

// findOrAdd returns the stateID of an existing state equal to set, or
// appends set as a new state and returns its id.
func (a *Automaton) findOrAdd(set *itemSet) stateID {
	for i, s := range a.states {
		if s.equal(set) {
			return stateID(i)
		}
	}
	a.states = append(a.states, set)
	return stateID(len(a.states) - 1)
}

// StateCount returns the number of states in the canonical collection.
func (a *Automaton) StateCount() int { return len(a.states) }

// Items returns the LR(1) items of the given state, sorted for
// deterministic display.
func (a *Automaton) Items(s int) []Item {
	items := a.states[stateID(s)].sorted(a.g)
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.export()
	}
	return out
}

// Goto returns the target state of the transition out of s on x, if
// any.
func (a *Automaton) Goto(s int, x symbol.Symbol) (int, bool) {
	to, ok := a.byFrom[stateID(s)][x]
	return int(to), ok
}

// Transition is the exported, cross-package view of a single GOTO
// edge of the automaton.
type Transition struct {
	From int
	On   symbol.Symbol
	To   int
}

// Transitions returns every transition of the automaton, in discovery
// order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, len(a.transitions))
	for i, t := range a.transitions {
		out[i] = Transition{From: int(t.from), On: t.on, To: int(t.to)}
	}
	return out
}

// ShiftSymbolsOf returns the dot-symbols of state s's items, in
// sorted (terminals-then-non-terminals, alphabetical) order — the
// "shift symbols" spec.md §4.4 defines for a state.
func (a *Automaton) ShiftSymbolsOf(s int) []symbol.Symbol {
	seen := map[symbol.Symbol]bool{}
	for it := range a.states[stateID(s)].items {
		if dotSym, ok := it.dotSymbol(a.g.prods); ok {
			seen[dotSym] = true
		}
	}
	var out []symbol.Symbol
	for _, sym := range a.g.AllSymbolsSorted() {
		if seen[sym] {
			out = append(out, sym)
		}
	}
	return out
}
