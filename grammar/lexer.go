package grammar

import (
	"strings"
	"unicode/utf8"
)

// tokenKind classifies one lexical token of the grammar-text format
// (spec.md §4.2). Grounded on nihei9-vartan/spec/lexer.go's tokenKind
// enumeration, pared down to the handful of shapes this smaller BNF
// dialect needs.
type tokenKind int

const (
	tokName tokenKind = iota
	tokArrow
	tokPipe
	tokEpsilon
	tokNewline
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	row  int
	col  int
}

// lexer scans grammar text rune by rune, grounded on
// nihei9-vartan/spec/lexer.go's hand-rolled scanner idiom (no
// text/scanner, no regexp — the teacher's lexer package exists
// precisely because the team prefers a scanner they fully control for
// this kind of small, line-sensitive grammar).
type lexer struct {
	src  []rune
	pos  int
	row  int
	col  int
}

func newLexer(text string) *lexer {
	return &lexer{src: []rune(text), row: 1, col: 1}
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() (rune, bool) {
	r, ok := l.peek()
	if !ok {
		return 0, false
	}
	l.pos++
	if r == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}
	return r, true
}

func isNameRune(r rune) bool {
	return !isSpace(r) && r != '|' && r != '#' && r != '\n' && r != utf8.RuneError
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// next returns the next token, skipping spaces and comments but not
// newlines (newlines are significant: each production occupies
// exactly one line, per spec.md §4.2).
func (l *lexer) next() token {
	for {
		r, ok := l.peek()
		if !ok {
			return token{kind: tokEOF, row: l.row, col: l.col}
		}
		if isSpace(r) {
			l.advance()
			continue
		}
		if r == '#' {
			for {
				r, ok := l.peek()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
			continue
		}
		break
	}

	row, col := l.row, l.col
	r, _ := l.peek()

	switch {
	case r == '\n':
		l.advance()
		return token{kind: tokNewline, row: row, col: col}
	case r == '|':
		l.advance()
		return token{kind: tokPipe, text: "|", row: row, col: col}
	case r == '-' && l.lookaheadIs('>'):
		l.advance()
		l.advance()
		return token{kind: tokArrow, text: "->", row: row, col: col}
	case r == '→':
		l.advance()
		return token{kind: tokArrow, text: "→", row: row, col: col}
	case r == 'ε':
		l.advance()
		return token{kind: tokEpsilon, text: "ε", row: row, col: col}
	}

	var sb strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isNameRune(r) {
			break
		}
		sb.WriteRune(r)
		l.advance()
	}
	name := sb.String()
	if name == "" {
		// A character we don't recognize (stray '>' or similar);
		// consume it so next() always makes progress.
		l.advance()
		return token{kind: tokName, text: string(r), row: row, col: col}
	}
	if name == "epsilon" {
		return token{kind: tokEpsilon, text: name, row: row, col: col}
	}
	return token{kind: tokName, text: name, row: row, col: col}
}

func (l *lexer) lookaheadIs(want rune) bool {
	if l.pos+1 >= len(l.src) {
		return false
	}
	return l.src[l.pos+1] == want
}
