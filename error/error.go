// Package error defines the structured diagnostic kinds surfaced at the
// boundary of the grammar, table-construction, and parse-driver packages.
// Nothing in this module ever aborts the process; every failure mode
// described in spec.md §7 is represented here as a plain value.
package error

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a Diagnostic into one of the five failure families
// from spec.md §7, or as an InternalInvariantViolation.
type Kind string

const (
	KindGrammarSyntax      = Kind("GrammarSyntax")
	KindGrammarSemantic    = Kind("GrammarSemantic")
	KindTableConflict      = Kind("TableConflict")
	KindParseReject        = Kind("ParseReject")
	KindResourceExhaustion = Kind("ResourceExhaustion")
	KindInternalInvariant  = Kind("InternalInvariantViolation")
)

// Semantic diagnostic causes, reported as the Detail of a GrammarSemantic
// Diagnostic (spec.md §4.1).
const (
	CauseUndefinedNonTerminal       = "UndefinedNonTerminal"
	CauseUnreachableFromStart       = "UnreachableFromStart"
	CauseUnusedSymbol               = "UnusedSymbol"
	CauseDuplicateEmptyAlternatives = "DuplicateEmptyAlternatives"
)

// Resource-exhaustion causes (spec.md §4.4, §4.6).
const (
	CauseStateExplosion    = "StateExplosion"
	CauseStepLimitExceeded = "StepLimitExceeded"
)

// Parse-reject / tokenization causes (spec.md §4.2, §4.6).
const (
	CauseUnknownToken = "UnknownToken"
)

// Diagnostic is a single structured failure. Row is 1-based and zero when
// not applicable (e.g. a table conflict, which is state-based rather than
// line-based).
type Diagnostic struct {
	Kind    Kind
	Cause   string // short machine-readable tag, e.g. "UndefinedNonTerminal"
	Detail  string // offending name or fragment
	Row     int
	Col     int
	Context string // the offending line of source text, when known
}

func (d *Diagnostic) Error() string {
	var loc string
	if d.Row > 0 {
		loc = fmt.Sprintf("%d:%d: ", d.Row, d.Col)
	}
	if d.Detail == "" {
		return fmt.Sprintf("%v%v: %v", loc, d.Kind, d.Cause)
	}
	msg := fmt.Sprintf("%v%v: %v: %v", loc, d.Kind, d.Cause, d.Detail)
	if d.Context != "" {
		msg += fmt.Sprintf("\n    %v", d.Context)
	}
	return msg
}

// Diagnostics is a list of diagnostics reported together so a caller can
// show every problem at once, per spec.md §4.1's validation contract.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return "no diagnostics"
	}
	if len(ds) == 1 {
		return ds[0].Error()
	}
	s := fmt.Sprintf("%d diagnostics:", len(ds))
	for _, d := range ds {
		s += "\n  " + d.Error()
	}
	return s
}

// HasKind reports whether any diagnostic in the list has the given kind.
func (ds Diagnostics) HasKind(k Kind) bool {
	for _, d := range ds {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// NewInternalInvariantViolation builds an error for a bug in
// construction (missing GOTO during reduce, stack underflow) rather
// than a Diagnostic, since these never originate from untrusted input.
// The returned error carries a pkg/errors stack trace; the driver
// panics with it and its top-level recover turns it into a Diagnostic
// of kind InternalInvariantViolation whose Cause is the error message
// only (the stack trace is not kept).
func NewInternalInvariantViolation(msg string) error {
	return errors.Wrap(errors.New(msg), string(KindInternalInvariant))
}
