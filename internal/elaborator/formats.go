package elaborator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/surface"
)

// inferFormatTelescope elaborates the fields of a `struct { … }` or
// overlap-struct format description (spec.md §3, §4.4). Every field
// term is checked against `Format`; for a sequentially-read
// FormatRecord, each field's bound variable (in scope for later
// fields) carries the type `Repr(field)` — the type its parsed value
// will have — so later formats can depend on earlier ones the same way
// a dependent record's fields can. An overlap format shares that same
// dependency story; the only difference is where the binary interpreter
// starts reading each field, which is a runtime concern, not a
// typechecking one.
func (c *Context) inferFormatTelescope(labels []string, fields []surface.Term, overlap bool) (core.Term, domain.Value) {
	formatTy := c.primType(core.FormatType)
	terms := make([]core.Term, len(labels))
	level := c.Len()
	for i, field := range fields {
		terms[i] = c.Check(field, formatTy)
		fieldVal := c.Eval.Eval(c.Values, terms[i])
		reprVal := c.Eval.Apply(c.primType(core.FormatRepr), fieldVal)
		c.PushParam(labels[i], reprVal)
	}
	c.PopTo(level)

	if overlap {
		return core.FormatOverlap{Labels: labels, Formats: terms}, formatTy
	}
	return core.FormatRecord{Labels: labels, Formats: terms}, formatTy
}
