package grammar

import (
	verr "github.com/lkndy/lr1-visualizer/error"
)

// ParseGrammarText parses the line-oriented BNF-style notation spec.md
// §4.2 describes into raw productions, ready for Build once a start
// symbol name is chosen. It never classifies names as terminal or
// non-terminal — that is C1's job, once every LHS is known.
//
// Grounded on nihei9-vartan/spec/parser.go's recursive-descent idiom:
// a single token of lookahead, consume(expected) checks, and
// raiseSyntaxError via panic, recovered once at this function's
// boundary and turned into a verr.Diagnostic of kind GrammarSyntax.
func ParseGrammarText(text string) (prods []rawProduction, diags verr.Diagnostics) {
	p := &textParser{lex: newLexer(text)}
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*syntaxError)
			if !ok {
				panic(r)
			}
			diags = append(diags, &verr.Diagnostic{
				Kind: verr.KindGrammarSyntax, Cause: se.message, Row: se.row, Col: se.col,
			})
			prods = nil
		}
	}()

	p.advance()
	for p.tok.kind != tokEOF {
		if p.tok.kind == tokNewline {
			p.advance()
			continue
		}
		prods = append(prods, p.parseLine()...)
	}

	if len(prods) == 0 {
		diags = append(diags, &verr.Diagnostic{Kind: verr.KindGrammarSyntax, Cause: synErrNoProductions.message})
	}
	return prods, diags
}

type textParser struct {
	lex *lexer
	tok token
}

func (p *textParser) advance() {
	p.tok = p.lex.next()
}

func (p *textParser) raise(se *syntaxError) {
	panic(se.at(p.tok.row, p.tok.col))
}

// parseLine parses one `LHS -> RHS1 | RHS2 | ...` line into one or
// more rawProductions, one per alternative, preserving source order.
func (p *textParser) parseLine() []rawProduction {
	if p.tok.kind != tokName {
		p.raise(synErrNoProductionName)
	}
	lhs := p.tok.text
	row := p.tok.row
	p.advance()

	if p.tok.kind != tokArrow {
		p.raise(synErrNoArrow)
	}
	p.advance()

	var out []rawProduction
	for {
		rhs := p.parseAlternative()
		out = append(out, rawProduction{LHS: lhs, RHS: rhs, Row: row})
		if p.tok.kind != tokPipe {
			break
		}
		p.advance()
	}

	if p.tok.kind != tokNewline && p.tok.kind != tokEOF {
		p.raise(synErrUnexpectedToken)
	}
	if p.tok.kind == tokNewline {
		p.advance()
	}
	return out
}

// parseAlternative reads the RHS up to the next '|', newline, or EOF.
// An alternative consisting only of ε/epsilon, or no symbols at all,
// denotes the empty production (spec.md §4.2).
func (p *textParser) parseAlternative() []string {
	var rhs []string
	for {
		switch p.tok.kind {
		case tokName:
			rhs = append(rhs, p.tok.text)
			p.advance()
		case tokEpsilon:
			p.advance()
		case tokPipe, tokNewline, tokEOF:
			return rhs
		default:
			p.raise(synErrUnexpectedToken)
		}
		if p.tok.kind == tokPipe || p.tok.kind == tokNewline || p.tok.kind == tokEOF {
			return rhs
		}
	}
}
