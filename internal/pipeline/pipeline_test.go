package pipeline

import (
	"testing"

	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/elaborator"
	"github.com/fathomlang/fathom/internal/surface"
	"github.com/fathomlang/fathom/internal/token"
)

func TestDefaultPipelineElaboratesAndNormalizes(t *testing.T) {
	sink := diagnostics.NewBag()
	ctx := &PipelineContext{
		FileID: 0,
		Module: surface.Module{Items: []surface.Item{
			{Name: "Byte", Defn: surface.Name{Ident: "u8"}, Span: token.Span{}},
		}},
		Sink: sink,
		Elab: elaborator.New(0, sink),
	}

	result := Default().Run(ctx)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics)
	}
	item, ok := result.Normalized["Byte"]
	if !ok {
		t.Fatalf("expected a normalized entry for Byte, got %v", result.Normalized)
	}
	if item.Type != "Format" {
		t.Fatalf("Byte's normalized type = %q, want Format", item.Type)
	}
	if item.Defn != "u8" {
		t.Fatalf("Byte's normalized definition = %q, want u8", item.Defn)
	}
}

func TestPipelineContinuesAfterStageError(t *testing.T) {
	sink := diagnostics.NewBag()
	ctx := &PipelineContext{
		FileID: 0,
		Module: surface.Module{Items: []surface.Item{
			{Name: "Bad", Defn: surface.Name{Ident: "does-not-exist"}, Span: token.Span{}},
		}},
		Sink: sink,
		Elab: elaborator.New(0, sink),
	}

	result := Default().Run(ctx)

	if !sink.HasErrors() {
		t.Fatalf("expected an unbound-name diagnostic")
	}
	// NormalizeStage should still have run and produced an entry for
	// the item, even though it elaborated to the error sentinel.
	if result.Normalized == nil {
		t.Fatalf("NormalizeStage should still run after an earlier elaboration error")
	}
}
