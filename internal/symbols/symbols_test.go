package symbols

import (
	"testing"

	"github.com/fathomlang/fathom/internal/core"
)

func TestDefineAndLookup(t *testing.T) {
	tbl := NewTable()
	err := tbl.Define(Symbol{Name: "Byte", Defn: core.Prim{Name: core.U8Type}})
	if err != nil {
		t.Fatalf("unexpected error defining Byte: %v", err)
	}
	sym, ok := tbl.Lookup("Byte")
	if !ok {
		t.Fatalf("Lookup(Byte) failed after Define")
	}
	if sym.Defn != (core.Term)(core.Prim{Name: core.U8Type}) {
		t.Fatalf("Lookup(Byte).Defn = %#v, want Prim{U8Type}", sym.Defn)
	}
}

func TestDefineRejectsDuplicate(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Define(Symbol{Name: "Byte"}); err != nil {
		t.Fatalf("first Define failed: %v", err)
	}
	err := tbl.Define(Symbol{Name: "Byte"})
	if err == nil {
		t.Fatalf("expected a DuplicateError redefining Byte")
	}
	if _, ok := err.(*DuplicateError); !ok {
		t.Fatalf("expected *DuplicateError, got %T", err)
	}
}

func TestNamesPreservesDeclarationOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Define(Symbol{Name: "B"})
	tbl.Define(Symbol{Name: "A"})
	tbl.Define(Symbol{Name: "C"})

	got := tbl.Names()
	want := []string{"B", "A", "C"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
}
