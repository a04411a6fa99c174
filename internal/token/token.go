// Package token defines the position and lexical-token representation
// shared by the diagnostic sink and the surface AST. The lexer that
// produces a stream of these is out of scope (spec.md §1); this package
// only fixes the shape that the in-scope components depend on.
package token

// Kind enumerates the token categories named in spec.md §6.
type Kind int

const (
	Illegal Kind = iota
	EOF

	Ident
	DocComment

	IntLiteral
	FloatLiteral
	BoolLiteral

	// Keywords
	KwStruct
	KwLet
	KwIf
	KwElse
	KwFn
	KwMatch
	KwType
	KwFormat

	// Punctuation
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Equals
	FatArrow
	Pipe
	Dot
	Arrow
	Underscore
)

// Token is the (start, kind, end) triple spec.md §6 says the elaborator
// consumes, plus the lexeme text diagnostics render in labels.
type Token struct {
	Kind   Kind
	Lexeme string
	Start  Pos
	End    Pos
}

// Pos is a byte offset paired with the 1-based line/column a diagnostic
// renders, matching the Line/Column fields used by
// cmd/lsp/diagnostics.go's convertDiagnostics.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Span covers the source range used for a diagnostic label or a quoted
// term's provenance. Spans are orthogonal to semantic equality (spec.md
// §9): two terms compare equal regardless of their spans.
type Span struct {
	FileID int
	Start  Pos
	End    Pos
}
