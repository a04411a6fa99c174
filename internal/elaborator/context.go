// Package elaborator implements the bidirectional check/infer
// algorithm (spec.md §4.3): it takes a surface.Term and produces core
// terms with metavariables solved, issuing unification queries against
// internal/unify and reducing with internal/evaluator along the way.
// Grounded on the walker/Analyzer shape of internal/analyzer/analyzer.go
// (a struct bundling a symbol table, a diagnostic sink, an inference
// context and per-file state) and internal/analyzer/inference.go's
// mutually-recursive infer/check pair, adapted from Hindley-Milner
// inference over an AST to bidirectional NbE-based elaboration.
package elaborator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/evaluator"
	"github.com/fathomlang/fathom/internal/symbols"
	"github.com/fathomlang/fathom/internal/token"
	"github.com/fathomlang/fathom/internal/unify"
	"github.com/google/uuid"
)

// RigidEntry is one slot of the rigid environment: a type value and
// whether it was bound as a Parameter (rigidly, e.g. a lambda
// argument) or a Definition (a let-binding, skipped when building a
// FlexibleInsertion's spine) — spec.md §3, Environments.
type RigidEntry struct {
	Kind core.EntryKind
	Type domain.Value
}

// Context is threaded through every infer/check call (spec.md §4.3):
// the three environments, a name-to-level table (folded into the
// parallel NamesAt slice so Lookup can do simple shadowing by scanning
// from the innermost binder outward), a source file id, and a
// diagnostic sink. Session is a per-module elaboration id attached to
// Bug-severity diagnostics (SPEC_FULL.md domain stack, "google/uuid").
type Context struct {
	Types   []RigidEntry
	Values  domain.Env
	NamesAt []string

	FileID  int
	Session uuid.UUID

	Sink    diagnostics.Sink
	Metas   *unify.MetaContext
	Uni     *unify.Unifier
	Eval    *evaluator.Evaluator
	Symbols *symbols.Table
	Arena   *core.Arena
}

// New creates an elaboration context for one module/file, acquiring
// the arena that will own every core term the module's items elaborate
// to (spec.md §5: "Arena for core terms — acquired at
// module-elaboration entry, released on exit").
func New(fileID int, sink diagnostics.Sink) *Context {
	metas := unify.NewMetaContext()
	ev := evaluator.New(metas)
	return &Context{
		FileID:  fileID,
		Session: uuid.New(),
		Sink:    sink,
		Metas:   metas,
		Uni:     unify.New(ev, metas),
		Eval:    ev,
		Symbols: symbols.NewTable(),
		Arena:   core.NewArena(),
	}
}

// Len is the current rigid environment length, used as both the de
// Bruijn level of the next bound variable and the `envLen` argument to
// evaluator/unifier operations.
func (c *Context) Len() int {
	return len(c.Types)
}

// PushParam binds a fresh rigid Parameter at the current length and
// returns its value, for use inside the scope just entered (spec.md
// §4.3, "Function type: ... push Parameter with that type").
func (c *Context) PushParam(name string, typeVal domain.Value) domain.Value {
	fresh := domain.Rigid(c.Len())
	c.Types = append(c.Types, RigidEntry{Kind: core.Parameter, Type: typeVal})
	c.NamesAt = append(c.NamesAt, name)
	c.Values = c.Values.Extend(fresh)
	return fresh
}

// PushDefinition binds name to an already-known value at its already-
// known type, used by `let` (spec.md §4.3, "push Definition").
func (c *Context) PushDefinition(name string, typeVal, value domain.Value) {
	c.Types = append(c.Types, RigidEntry{Kind: core.Definition, Type: typeVal})
	c.NamesAt = append(c.NamesAt, name)
	c.Values = c.Values.Extend(value)
}

// PopTo truncates the rigid environment back to a previously observed
// length, the "pop-on-exit" half of spec.md §3's scope discipline.
func (c *Context) PopTo(level int) {
	c.Types = c.Types[:level]
	c.NamesAt = c.NamesAt[:level]
	c.Values = c.Values[:level]
}

// Lookup resolves a name to its de Bruijn level and entry, scanning
// from the innermost binder outward so shadowing falls out for free.
func (c *Context) Lookup(name string) (level int, entry RigidEntry, ok bool) {
	for i := len(c.NamesAt) - 1; i >= 0; i-- {
		if c.NamesAt[i] == name {
			return i, c.Types[i], true
		}
	}
	return 0, RigidEntry{}, false
}

// FreshMeta allocates a metavariable of the given (debug) name and
// type, returning both its id and the neutral value referring to it.
func (c *Context) FreshMeta(typeVal domain.Value, name string) (core.MetaID, domain.Value) {
	id := c.Metas.Fresh(typeVal, name)
	return id, domain.VStuck{Head: domain.FlexibleHead(id)}
}

// FreshInsertion allocates a metavariable applied to every Parameter
// entry currently in scope (spec.md §4.3, "Metavariable insertion"):
// the mechanism behind implicit-argument insertion. It returns both
// the core term (a FlexibleInsertion, to embed in the result) and its
// value (evaluated eagerly against the current rigid-value
// environment, for immediate use by the caller).
func (c *Context) FreshInsertion(typeVal domain.Value, name string) (core.Term, domain.Value) {
	id := c.Metas.Fresh(typeVal, name)
	entries := make([]core.EntryKind, len(c.Types))
	for i, e := range c.Types {
		entries[i] = e.Kind
	}
	term := core.FlexibleInsertion{Meta: id, Entries: entries}
	return term, c.Eval.Eval(c.Values, term)
}

// indexOf reads the index-space representation of the current
// level back, the conversion Quote performs at the rigid-variable head
// (spec.md §9: indices in terms, levels in values).
func (c *Context) indexOf(level int) int {
	return c.Len() - 1 - level
}
