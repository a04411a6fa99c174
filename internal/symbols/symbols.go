// Package symbols is the flat, per-module item table: spec.md §1's
// Non-goals rule out a module system beyond one file's list of named
// items, so this is deliberately small — a name-to-definition map, not
// the teacher's cross-file export/trait resolution machinery
// (internal/symbols/symbol_table_core.go in funvibe/funxy, ~1900 lines
// of trait/instance bookkeeping this domain has no use for).
package symbols

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/token"
)

// Symbol is one elaborated top-level item: its core definition term,
// its type (as both a core term and a semantic value, since the
// elaborator needs the value to typecheck later references and the
// term to let a quoted module be re-emitted), and the span it was
// declared at.
type Symbol struct {
	Name     string
	Doc      string
	Defn     core.Term
	Type     core.Term
	TypeVal  domain.Value
	DefSpan  token.Span
}

// Table is the module's item table, built incrementally as each item
// elaborates (spec.md §1, "flat list of named items per file").
type Table struct {
	order   []string
	symbols map[string]Symbol
}

func NewTable() *Table {
	return &Table{symbols: make(map[string]Symbol)}
}

// Lookup finds a previously elaborated item by name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Define registers a newly elaborated item. It returns a DuplicateError
// if the name was already defined earlier in the same module (spec.md
// §6, "item redefinition").
func (t *Table) Define(s Symbol) error {
	if _, exists := t.symbols[s.Name]; exists {
		return &DuplicateError{Name: s.Name, Span: s.DefSpan}
	}
	t.symbols[s.Name] = s
	t.order = append(t.order, s.Name)
	return nil
}

// Names returns every defined item name in declaration order.
func (t *Table) Names() []string {
	return t.order
}

// Len reports how many items have been defined so far.
func (t *Table) Len() int {
	return len(t.order)
}

// DuplicateError reports a second top-level item reusing a name
// already bound in this module (spec.md §6, CodeItemRedefinition).
type DuplicateError struct {
	Name string
	Span token.Span
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("item %q is already defined in this module", e.Name)
}
