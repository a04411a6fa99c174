package core

import (
	"strings"
	"testing"

	"github.com/fathomlang/fathom/internal/config"
)

func TestSprintRendersBoundNames(t *testing.T) {
	name := "x"
	term := FunType{Name: &name, Domain: Universe{}, Codomain: Universe{}}
	got := Sprint(term)
	want := "fn (x : Type) -> Type"
	if got != want {
		t.Fatalf("Sprint(FunType) = %q, want %q", got, want)
	}
}

func TestSprintAnonymousBinder(t *testing.T) {
	term := FunLit{Body: RigidVar{Index: 0}}
	got := Sprint(term)
	if !strings.Contains(got, "fn _ =>") {
		t.Fatalf("Sprint should render a nil Name as _, got %q", got)
	}
}

func TestSprintMetaNormalizesUnderTestMode(t *testing.T) {
	prev := config.IsTestMode
	defer func() { config.IsTestMode = prev }()

	config.IsTestMode = false
	withID := Sprint(FlexibleVar{Meta: MetaID(7)})
	if withID != "?7" {
		t.Fatalf("Sprint(meta) outside test mode = %q, want ?7", withID)
	}

	config.IsTestMode = true
	normalized := Sprint(FlexibleVar{Meta: MetaID(7)})
	if normalized != "?" {
		t.Fatalf("Sprint(meta) under IsTestMode = %q, want ?", normalized)
	}
}

func TestSprintRecordAndProjection(t *testing.T) {
	rt := RecordType{Labels: []string{"inner"}, Types: []Term{Prim{Name: mustLookupPrim(t, "f64be")}}}
	got := Sprint(rt)
	if !strings.Contains(got, "inner :") {
		t.Fatalf("Sprint(RecordType) = %q, want it to mention label inner", got)
	}

	proj := RecordProj{Head: RigidVar{Index: 0}, Label: "inner"}
	if got := Sprint(proj); got != "#0.inner" {
		t.Fatalf("Sprint(RecordProj) = %q, want #0.inner", got)
	}
}

func mustLookupPrim(t *testing.T, name string) PrimName {
	t.Helper()
	p, ok := LookupPrim(name)
	if !ok {
		t.Fatalf("LookupPrim(%q) not found", name)
	}
	return p
}
