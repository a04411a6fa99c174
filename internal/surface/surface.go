// Package surface is the elaborator's input type: a minimal abstract
// syntax tree standing in for the lexer/parser's output (spec.md §1,
// "out of scope": the LALR grammar and lexer themselves are external
// collaborators; this package only needs to name the shapes the
// grammar in spec.md §6 produces so internal/elaborator has something
// concrete to consume).
package surface

import "github.com/fathomlang/fathom/internal/token"

// Term is a surface expression (spec.md §6). Every concrete type below
// implements it; nothing outside this package should add variants.
type Term interface {
	Span() token.Span
	isTerm()
}

type base struct{ span token.Span }

func (b base) Span() token.Span { return b.span }

// Name is a bound or free identifier reference.
type Name struct {
	base
	Ident string
}

// Hole is the `?` placeholder: infer a fresh metavariable.
type Hole struct {
	base
}

// Ann is `e : t`.
type Ann struct {
	base
	Term Term
	Type Term
}

// Let is `let name : type? = defn; body` (type may be nil).
type Let struct {
	base
	Name string
	Type Term // nil if omitted
	Defn Term
	Body Term
}

// UniverseTerm is the literal `Type` keyword.
type UniverseTerm struct {
	base
}

// FormatTerm is the literal `Format` keyword, the distinguished type of
// format descriptions living inside Type (spec.md §3).
type FormatTerm struct {
	base
}

// FunType is `fn (name? : domain) -> codomain` or the arrow sugar `domain -> codomain`.
type FunType struct {
	base
	Name     string // "" if anonymous (arrow sugar)
	Domain   Term
	Codomain Term
}

// FunLit is `fn name => body`.
type FunLit struct {
	base
	Name string
	Body Term
}

// FunApp is application by juxtaposition, left-associative.
type FunApp struct {
	base
	Head Term
	Arg  Term
}

// RecordType is `{ f : t, … }`.
type RecordType struct {
	base
	Labels []string
	Types  []Term
}

// RecordLit is `{ f = e, … }`.
type RecordLit struct {
	base
	Labels []string
	Exprs  []Term
}

// RecordProj is `e.f`.
type RecordProj struct {
	base
	Head  Term
	Label string
}

// ArrayLit is `[e, e, …]`.
type ArrayLit struct {
	base
	Exprs []Term
}

// FormatRecord is `struct { field* }` where fields read sequentially.
type FormatRecord struct {
	base
	Labels  []string
	Docs    []string // parallel to Labels; "" when a field has no doc comment
	Formats []Term
}

// FormatOverlap is the overlap-struct sugar: all fields share a start
// position (spec.md §3, §4.4).
type FormatOverlap struct {
	base
	Labels  []string
	Docs    []string
	Formats []Term
}

// IntLit is a decimal/binary/hex/ASCII-tagged integer literal token
// (spec.md §6). Style is carried from the lexer; Value is the
// literal's unsigned magnitude (a leading `-` is folded in by the
// parser into a separate negation, kept out of scope here).
type IntLit struct {
	base
	Value uint64
	Style int // mirrors core.UIntStyle's encoding; see elaborator/literals.go
}

// FloatLit is a floating point literal.
type FloatLit struct {
	base
	Value float64
}

// BoolLit is `true` / `false`.
type BoolLit struct {
	base
	Value bool
}

// MatchArm is one `pattern => body` arm of a Match; Default is true for
// the `_ => body` catch-all arm (Pattern is unused when Default is set).
type MatchArm struct {
	Pattern Term
	Body    Term
	Default bool
}

// Match is `match e { p => b, …, _ => b }`.
type Match struct {
	base
	Scrutinee Term
	Arms      []MatchArm
}

func (Name) isTerm()          {}
func (Hole) isTerm()          {}
func (Ann) isTerm()           {}
func (Let) isTerm()           {}
func (UniverseTerm) isTerm()  {}
func (FormatTerm) isTerm()   {}
func (FunType) isTerm()       {}
func (FunLit) isTerm()        {}
func (FunApp) isTerm()        {}
func (RecordType) isTerm()    {}
func (RecordLit) isTerm()     {}
func (RecordProj) isTerm()    {}
func (ArrayLit) isTerm()      {}
func (FormatRecord) isTerm()  {}
func (FormatOverlap) isTerm() {}
func (IntLit) isTerm()        {}
func (FloatLit) isTerm()      {}
func (BoolLit) isTerm()       {}
func (Match) isTerm()         {}

// Item is one top-level module declaration (spec.md §6: `alias name =
// term;` or `struct name { field* }`). Both desugar to the same shape
// here — a named term — since a struct declaration is sugar for `alias
// name = struct { field* };` once the elaborator sees it.
type Item struct {
	Name string
	Doc  string
	Defn Term
	Span token.Span
}

// Module is a flat, ordered list of items (spec.md §1 Non-goals: no
// module system beyond this).
type Module struct {
	Items []Item
}
