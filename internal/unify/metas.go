package unify

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// metaEntry tracks one flexible variable's solution state and, purely
// for diagnostics, the type it was created at and the debug name it
// was given (both filled in by the elaborator).
type metaEntry struct {
	solution domain.Value
	solved   bool
	typeVal  domain.Value
	name     string
}

// MetaContext owns the flexible environment: every metavariable ever
// created during one module's elaboration, solved or not (spec.md §5,
// "Metavariable context"). It implements evaluator.Metas so the NbE
// evaluator can resolve solved metas as it evaluates.
type MetaContext struct {
	entries []metaEntry
}

func NewMetaContext() *MetaContext {
	return &MetaContext{}
}

// Fresh allocates a new, unsolved metavariable of the given type and
// debug name (name may be empty).
func (m *MetaContext) Fresh(typeVal domain.Value, name string) core.MetaID {
	id := core.MetaID(len(m.entries))
	m.entries = append(m.entries, metaEntry{typeVal: typeVal, name: name})
	return id
}

// Solution implements evaluator.Metas.
func (m *MetaContext) Solution(id core.MetaID) (domain.Value, bool) {
	e := m.entries[id]
	if !e.solved {
		return nil, false
	}
	return e.solution, true
}

// Assign records a metavariable's solution. Callers must have already
// run the occurs check and scope inversion (see solvePattern); Assign
// itself performs no validation.
func (m *MetaContext) Assign(id core.MetaID, v domain.Value) {
	e := &m.entries[id]
	e.solution = v
	e.solved = true
}

// IsSolved reports whether a metavariable already has a solution.
func (m *MetaContext) IsSolved(id core.MetaID) bool {
	return m.entries[id].solved
}

// TypeOf returns the type a metavariable was created at.
func (m *MetaContext) TypeOf(id core.MetaID) domain.Value {
	return m.entries[id].typeVal
}

// Name returns a metavariable's debug name, or "?n" if it has none.
func (m *MetaContext) Name(id core.MetaID) string {
	if n := m.entries[id].name; n != "" {
		return n
	}
	return fmt.Sprintf("?%d", id)
}

// Unsolved returns every metavariable that never received a solution,
// in creation order — the elaborator reports one diagnostic per entry
// once a module finishes (spec.md §4.3, error recovery).
func (m *MetaContext) Unsolved() []core.MetaID {
	var out []core.MetaID
	for i, e := range m.entries {
		if !e.solved {
			out = append(out, core.MetaID(i))
		}
	}
	return out
}

// Len returns the number of metavariables created so far.
func (m *MetaContext) Len() int {
	return len(m.entries)
}
