// Package pipeline wires the three in-scope stages — surface, elaborate,
// normalize — into the same Pipeline{processors}/Run(ctx) shape the
// teacher's internal/pipeline/pipeline.go uses to sequence parse/analyze/
// backend stages. The lexer and parser that would produce the
// surface.Module handed to the first stage are out of scope (spec.md
// §1); this package starts from an already-parsed module.
package pipeline

import (
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/elaborator"
	"github.com/fathomlang/fathom/internal/surface"
)

// PipelineContext threads through every stage: the surface module to
// process, the elaboration context each stage reads from and writes
// to, and the diagnostic sink every stage reports into.
type PipelineContext struct {
	FileID int
	Module surface.Module
	Sink   diagnostics.Sink
	Elab   *elaborator.Context

	// Normalized holds each item's fully-normalized defining term, filled
	// in by NormalizeStage; nil until that stage has run.
	Normalized map[string]NormalizedItem
}

// NormalizedItem is one module item's definition and type, both
// quoted back to normal form (spec.md §4.1, Normalize = quote(eval(t))).
type NormalizedItem struct {
	Name string
	Defn string
	Type string
}

// Processor is one pipeline stage. Like the teacher's Processor, it
// takes and returns a *PipelineContext rather than an error, so later
// stages still run (and can report their own diagnostics) even after
// an earlier stage found problems — exactly the "continue on errors to
// collect diagnostics from all stages" comment in the teacher's Run.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages
		// (e.g. LSP needs both parse and semantic errors).
	}
	return ctx
}

// Default builds the Surface -> Elaborate -> Normalize pipeline
// SPEC_FULL.md's CLI/pipeline glue section names.
func Default() *Pipeline {
	return New(ElaborateStage{}, NormalizeStage{})
}
