package core

import "golang.org/x/exp/slices"

// Arena owns every core term produced while elaborating one module
// (spec.md §5): "acquired at module-elaboration entry, released on
// exit; all core terms outlive by-reference uses within the same
// module." Go's GC already manages the memory, so Arena's job is purely
// bookkeeping — letting the elaborator hand back one value whose
// lifetime scopes the whole module instead of leaking globals, and
// giving tests a term count to assert against.
type Arena struct {
	terms []Term
}

// NewArena acquires a fresh arena for one module elaboration.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc records a term as owned by this arena and returns it unchanged.
// AllocTree records each node of a finished item through Alloc, so the
// arena's Len reflects the module's term count.
func (a *Arena) Alloc(t Term) Term {
	a.terms = append(a.terms, t)
	return t
}

// Len returns the number of terms allocated into this arena.
func (a *Arena) Len() int { return len(a.terms) }

// Release drops the arena's bookkeeping slice. Sub-terms already handed
// out to callers remain valid (they are ordinary Go values), matching
// spec.md §5's "released on exit" lifetime without invalidating
// in-flight references.
func (a *Arena) Release() {
	a.terms = nil
}

// AllocTree walks t and every sub-term reachable from it, recording
// each one into the arena, then returns t unchanged. The elaborator
// calls this once per top-level item rather than threading Alloc
// through every single constructor call site in infer.go/check.go: a
// module's terms are only ever handed to the arena as complete,
// already-built trees, so walking once at that boundary gives the same
// per-module term count spec.md §5 asks for with far less churn at
// every call site that builds a sub-term.
func (a *Arena) AllocTree(t Term) Term {
	if t == nil {
		return t
	}
	a.Alloc(t)
	switch n := t.(type) {
	case Ann:
		a.AllocTree(n.Term)
		a.AllocTree(n.Type)
	case Let:
		a.AllocTree(n.Type)
		a.AllocTree(n.Defn)
		a.AllocTree(n.Body)
	case FunType:
		a.AllocTree(n.Domain)
		a.AllocTree(n.Codomain)
	case FunLit:
		a.AllocTree(n.Body)
	case FunApp:
		a.AllocTree(n.Head)
		a.AllocTree(n.Arg)
	case RecordType:
		for _, ty := range n.Types {
			a.AllocTree(ty)
		}
	case RecordLit:
		for _, e := range n.Exprs {
			a.AllocTree(e)
		}
	case RecordProj:
		a.AllocTree(n.Head)
	case ArrayLit:
		for _, e := range n.Exprs {
			a.AllocTree(e)
		}
	case FormatRecord:
		for _, f := range n.Formats {
			a.AllocTree(f)
		}
	case FormatOverlap:
		for _, f := range n.Formats {
			a.AllocTree(f)
		}
	case ConstMatch:
		a.AllocTree(n.Scrutinee)
		for _, b := range n.Branches {
			a.AllocTree(b.Body)
		}
		if n.Default != nil {
			a.AllocTree(n.Default)
		}
	}
	return t
}

// LabelsEqual reports whether two label lists are identical in order,
// the invariant RecordType/FormatRecord/ConstMatch rely on.
func LabelsEqual(a, b []string) bool {
	return slices.Equal(a, b)
}

// IndexOfLabel returns the position of label within labels, or -1.
func IndexOfLabel(labels []string, label string) int {
	return slices.Index(labels, label)
}

// HasDuplicateLabel reports whether labels contains the same label
// twice, violating the RecordType/FormatRecord distinctness invariant.
func HasDuplicateLabel(labels []string) bool {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			return true
		}
		seen[l] = struct{}{}
	}
	return false
}
