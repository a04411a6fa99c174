// Package diagnostics implements the append-only diagnostic sink named in
// spec.md §5/§6/§7, grounded on cmd/lsp/diagnostics.go's DiagnosticError
// (Token/Code/File) and fathom/src/pass/core_to_rust/diagnostics.rs's
// severity/label structure.
package diagnostics

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/token"
	"github.com/google/uuid"
)

// Severity mirrors the four severities spec.md §6 lists.
type Severity int

const (
	Bug Severity = iota
	Error
	Warning
	Help
)

func (s Severity) String() string {
	switch s {
	case Bug:
		return "bug"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}

// Code enumerates the diagnostic kinds spec.md §6 says the core emits.
type Code string

const (
	CodeParseError             Code = "parse-error"
	CodeTypeMismatch           Code = "type-mismatch"
	CodeUnboundName            Code = "unbound-name"
	CodeAmbiguousMeta          Code = "ambiguous-metavariable"
	CodeRangeOverflow          Code = "range-overflow"
	CodeNonFormatAsFormat      Code = "non-format-used-as-format"
	CodeUnconstrainedInt       Code = "unconstrained-integer"
	CodeOversaturatedElim      Code = "oversaturated-elimination"
	CodeItemRedefinition       Code = "item-redefinition"
	CodeUnboundItem            Code = "unbound-item"
	CodeExpectedType           Code = "expected-type"
	CodeExpectedInteger        Code = "expected-integer"
	CodeIntegerOutOfBounds     Code = "integer-out-of-bounds"
	CodeUnexpectedElimination  Code = "unexpected-elimination"
)

// Label is a (file, span, message) annotation, primary or secondary.
type Label struct {
	Span    token.Span
	Message string
}

// Diagnostic carries a severity, a message, one primary label and zero or
// more secondary labels, exactly as spec.md §6 specifies.
type Diagnostic struct {
	Severity  Severity
	Code      Code
	Message   string
	Primary   Label
	Secondary []Label

	// SessionID correlates a Bug-severity diagnostic with the elaboration
	// run that produced the ill-formed core term (spec.md §7 taxonomy #2).
	SessionID uuid.UUID
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// Sink is the append-only collaborator passed by reference through
// elaboration (spec.md §5). Diagnostic order must follow elaboration
// order (DFS over surface terms in source order); callers are
// responsible for reporting in that order since the sink itself is a
// dumb collector.
type Sink interface {
	Report(Diagnostic)
}

// Bag is the default Sink: an ordered slice of everything reported.
type Bag struct {
	Diagnostics []Diagnostic
}

func NewBag() *Bag { return &Bag{} }

func (b *Bag) Report(d Diagnostic) {
	b.Diagnostics = append(b.Diagnostics, d)
}

// HasErrors reports whether any Bug- or Error-severity diagnostic was
// collected.
func (b *Bag) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity == Bug || d.Severity == Error {
			return true
		}
	}
	return false
}
