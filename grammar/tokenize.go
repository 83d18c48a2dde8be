package grammar

import (
	"strings"

	verr "github.com/lkndy/lr1-visualizer/error"
	"github.com/lkndy/lr1-visualizer/grammar/symbol"
)

// Tokenize splits an input string on whitespace and maps each piece to
// a declared terminal symbol of g, appending $ at the end (spec.md
// §4.2's input tokenization). A piece matching no declared terminal
// fails the whole call with an UnknownToken diagnostic, since the
// driver must not emit any step records beyond step 0 in that case.
func Tokenize(g *Grammar, input string) ([]symbol.Symbol, *verr.Diagnostic) {
	fields := strings.Fields(input)
	toks := make([]symbol.Symbol, 0, len(fields)+1)
	for _, f := range fields {
		s, ok := g.symTab.Reader().ToSymbol(f)
		if !ok || !s.IsTerminal() || s.IsEOF() {
			return nil, &verr.Diagnostic{
				Kind: verr.KindGrammarSyntax, Cause: verr.CauseUnknownToken, Detail: f,
			}
		}
		toks = append(toks, s)
	}
	toks = append(toks, symbol.SymbolEOF)
	return toks, nil
}
