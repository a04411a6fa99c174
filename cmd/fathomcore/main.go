// Command fathomcore is a thin driver over the three in-scope
// components (spec.md §1): it builds a single in-memory module,
// elaborates it, normalizes every item, and prints the result. The
// lexer, LALR parser, and CLI argument handling a real driver would
// need are out of scope (spec.md §1) — this binary exists only to give
// the pipeline package somewhere to run from, the way the teacher's
// cmd/funxy/main.go wires internal/pipeline's stages around its own
// lexer/parser/backend.
package main

import (
	"fmt"
	"os"

	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/elaborator"
	"github.com/fathomlang/fathom/internal/pipeline"
	"github.com/fathomlang/fathom/internal/surface"
	"github.com/fathomlang/fathom/internal/token"
)

// sampleModule stands in for what a real lexer/parser would hand the
// elaborator after parsing `Byte = u8; Test = struct { inner : f64be };`
// (spec.md §8's own worked examples) — this binary's only job is to
// prove the pipeline wiring, not to read source files.
func sampleModule() surface.Module {
	sp := token.Span{}
	return surface.Module{
		Items: []surface.Item{
			{
				Name: "Byte",
				Defn: surface.Name{Ident: "u8"},
				Span: sp,
			},
			{
				Name: "Test",
				Defn: surface.FormatRecord{
					Labels:  []string{"inner"},
					Docs:    []string{""},
					Formats: []surface.Term{surface.Name{Ident: "f64be"}},
				},
				Span: sp,
			},
		},
	}
}

func main() {
	sink := diagnostics.NewBag()
	ctx := &pipeline.PipelineContext{
		FileID: 0,
		Module: sampleModule(),
		Sink:   sink,
		Elab:   elaborator.New(0, sink),
	}

	result := pipeline.Default().Run(ctx)

	for _, d := range sink.Diagnostics {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	if sink.HasErrors() {
		os.Exit(1)
	}

	for _, name := range result.Elab.Symbols.Names() {
		item := result.Normalized[name]
		fmt.Printf("%s : %s = %s\n", item.Name, item.Type, item.Defn)
	}
}
