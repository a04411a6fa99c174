package pipeline

import "github.com/fathomlang/fathom/internal/core"

// ElaborateStage runs the bidirectional elaborator over ctx.Module,
// populating ctx.Elab's symbol table and reporting diagnostics into
// ctx.Sink (spec.md §4.3). ctx.Elab must already be constructed (it
// owns the meta/rigid environments the next stage's normalization
// reads from).
type ElaborateStage struct{}

func (ElaborateStage) Process(ctx *PipelineContext) *PipelineContext {
	ctx.Elab.ElaborateModule(ctx.Module)
	return ctx
}

// NormalizeStage quotes every elaborated item's definition and type
// back to normal form (spec.md §4.1's Normalize = quote . eval) and
// renders both to source-like text for the documentation/serialization
// emitters named in spec.md §1 as external collaborators — this stage
// only produces the normalized core terms they would consume, not the
// emitters themselves.
type NormalizeStage struct{}

func (NormalizeStage) Process(ctx *PipelineContext) *PipelineContext {
	out := make(map[string]NormalizedItem, ctx.Elab.Symbols.Len())
	for _, name := range ctx.Elab.Symbols.Names() {
		sym, ok := ctx.Elab.Symbols.Lookup(name)
		if !ok {
			continue
		}
		defnNorm := ctx.Elab.Eval.Normalize(nil, sym.Defn)
		typeNorm := ctx.Elab.Eval.Normalize(nil, sym.Type)
		out[name] = NormalizedItem{
			Name: name,
			Defn: core.Sprint(defnNorm),
			Type: core.Sprint(typeNorm),
		}
	}
	ctx.Normalized = out
	return ctx
}
