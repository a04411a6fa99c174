// Package domain is the semantic domain of the evaluator: normal forms,
// closures, neutral terms (spec.md §3, "Values (semantic domain)"). It
// has no knowledge of surface syntax and performs no reduction itself —
// that belongs to internal/evaluator, which is the only package that
// constructs and inspects these values by running eval/quote.
package domain

import "github.com/fathomlang/fathom/internal/core"

// Env is the rigid *value* environment: a stack (by de Bruijn level,
// index 0 = outermost) mapping bound variables to their values. Closures
// capture an Env by slice header, which Go shares by reference the way
// spec.md §9 requires ("avoid linear ownership of the captured
// environment") as long as callers always extend via append-to-copy
// (see Env.Extend) rather than mutating in place.
type Env []Value

// Extend returns a new environment with v appended, never mutating the
// receiver — necessary because multiple closures can share a prefix of
// the same Env.
func (e Env) Extend(v Value) Env {
	next := make(Env, len(e)+1)
	copy(next, e)
	next[len(e)] = v
	return next
}

// Closure pairs a captured environment with an unevaluated core-term
// body; it must be callable multiple times (spec.md §9).
type Closure struct {
	Env  Env
	Body core.Term
}

// Telescope is a closure producing successive field types (or formats):
// the type of field i may depend on the values of fields 0..i-1, which
// are appended to Env in order as each field is stepped through.
type Telescope struct {
	Env   Env
	Terms []core.Term
}

// Value is a semantic value — a fully- or partially-reduced term in
// normal form up to the point a neutral head blocks further reduction.
type Value interface{ isValue() }

type VUniverse struct{}

type VFunType struct {
	Name     *string
	Domain   Value
	Codomain Closure
}

type VFunLit struct {
	Name *string
	Body Closure
}

type VRecordType struct {
	Labels []string
	Types  Telescope
}

type VRecordLit struct {
	Labels []string
	Values []Value
}

type VArrayLit struct {
	Values []Value
}

type VFormatRecord struct {
	Labels  []string
	Formats Telescope
}

type VFormatOverlap struct {
	Labels  []string
	Formats Telescope
}

type VConstLit struct {
	Value core.Const
}

// VError is the post-error continuation sentinel (spec.md §3); distinct
// from VStuck over Prim(ReportedError), used internally by the
// evaluator/elaborator when no better value is available.
type VError struct{}

// HeadKind distinguishes the three possible neutral heads.
type HeadKind int

const (
	HeadRigid HeadKind = iota
	HeadFlexible
	HeadPrim
)

// Head is the unresolved head of a neutral value.
type Head struct {
	Kind  HeadKind
	Level int           // valid when Kind == HeadRigid
	Meta  core.MetaID   // valid when Kind == HeadFlexible
	Prim  core.PrimName // valid when Kind == HeadPrim
}

func RigidHead(level int) Head       { return Head{Kind: HeadRigid, Level: level} }
func FlexibleHead(m core.MetaID) Head { return Head{Kind: HeadFlexible, Meta: m} }
func PrimHead(p core.PrimName) Head  { return Head{Kind: HeadPrim, Prim: p} }

// ElimKind distinguishes the three possible spine eliminations.
type ElimKind int

const (
	ElimApp ElimKind = iota
	ElimProj
	ElimMatch
)

// ConstBranchVal is one arm of a stuck ConstMatch elimination.
type ConstBranchVal struct {
	Pattern core.Const
	Body    core.Term
}

// Elim is one entry in a neutral value's spine.
type Elim struct {
	Kind  ElimKind
	Arg   Value            // valid when Kind == ElimApp
	Label string           // valid when Kind == ElimProj
	Env   Env              // the environment ConstMatch branches/default close over
	Branches []ConstBranchVal // valid when Kind == ElimMatch
	Default  core.Term       // valid when Kind == ElimMatch; nil if absent
}

// VStuck is a neutral value: an unresolved head followed by a spine of
// eliminations. Neutrals never appear as the fully-reduced body of a
// closure — they exist only while a head is unresolved.
type VStuck struct {
	Head  Head
	Spine []Elim
}

func (VUniverse) isValue()      {}
func (VFunType) isValue()       {}
func (VFunLit) isValue()        {}
func (VRecordType) isValue()    {}
func (VRecordLit) isValue()     {}
func (VArrayLit) isValue()      {}
func (VFormatRecord) isValue()  {}
func (VFormatOverlap) isValue() {}
func (VConstLit) isValue()      {}
func (VError) isValue()         {}
func (VStuck) isValue()         {}

// Rigid constructs the neutral value for a freshly allocated rigid
// variable at the given level, used when quoting under a closure or when
// the unifier needs a scratch variable.
func Rigid(level int) Value {
	return VStuck{Head: RigidHead(level)}
}
