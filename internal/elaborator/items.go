package elaborator

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/surface"
	"github.com/fathomlang/fathom/internal/symbols"
)

// ElaborateModule elaborates every item in a module in declaration
// order, registering each into the context's symbol table so later
// items can refer to earlier ones by name (spec.md §1: a flat,
// single-file item list, no cross-file module system). At the end it
// reports any metavariable left unsolved, since an elaborated module
// with dangling holes isn't a valid result (spec.md §4.2, "Any
// metavariable left unsolved at the end of elaborating a module is
// reported").
func (c *Context) ElaborateModule(m surface.Module) {
	defer c.Arena.Release()

	for _, item := range m.Items {
		defnCore, typeVal := c.Infer(item.Defn)
		typeCore := c.Eval.Quote(c.Len(), typeVal)
		c.Arena.AllocTree(defnCore)
		c.Arena.AllocTree(typeCore)

		err := c.Symbols.Define(symbols.Symbol{
			Name:    item.Name,
			Doc:     item.Doc,
			Defn:    defnCore,
			Type:    typeCore,
			TypeVal: typeVal,
			DefSpan: item.Span,
		})
		if err != nil {
			c.reportError(item.Span, diagnostics.CodeItemRedefinition, err.Error())
		}
	}

	for _, id := range c.Metas.Unsolved() {
		c.Sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.Error,
			Code:     diagnostics.CodeAmbiguousMeta,
			Message:  fmt.Sprintf("unsolved metavariable %s left over after elaborating this module", c.Metas.Name(id)),
		})
	}
}
