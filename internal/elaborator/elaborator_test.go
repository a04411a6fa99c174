package elaborator

import (
	"reflect"
	"testing"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/surface"
	"github.com/fathomlang/fathom/internal/token"
)

func name(ident string) surface.Name { return surface.Name{Ident: ident} }

func TestInferUnboundNameReportsError(t *testing.T) {
	sink := diagnostics.NewBag()
	c := New(0, sink)

	_, ty := c.Infer(name("nope"))
	if !isReportedError(ty) {
		t.Fatalf("expected the error sentinel for an unbound name")
	}
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for an unbound name")
	}
	if sink.Diagnostics[0].Code != diagnostics.CodeUnboundName {
		t.Fatalf("got code %v, want CodeUnboundName", sink.Diagnostics[0].Code)
	}
}

func TestInferFormatNameResolvesToFormatConstructor(t *testing.T) {
	// The lowercase identifier "u8" names the *format* that reads a
	// byte, distinct from the type "U8" it decodes to; its own type is
	// Format, not Type.
	sink := diagnostics.NewBag()
	c := New(0, sink)

	term, ty := c.Infer(name("u8"))
	if term != (core.Term)(core.Prim{Name: core.FormatU8}) {
		t.Fatalf("Infer(u8) term = %#v, want Prim{FormatU8}", term)
	}
	stuck, ok := ty.(domain.VStuck)
	if !ok || stuck.Head.Kind != domain.HeadPrim || stuck.Head.Prim != core.FormatType {
		t.Fatalf("Infer(u8) type = %#v, want Format", ty)
	}
}

func TestInferTypeNameResolvesToUniverse(t *testing.T) {
	// The uppercase identifier "U8" names the host type itself, a
	// member of Type.
	sink := diagnostics.NewBag()
	c := New(0, sink)

	term, ty := c.Infer(name("U8"))
	if term != (core.Term)(core.Prim{Name: core.U8Type}) {
		t.Fatalf("Infer(U8) term = %#v, want Prim{U8Type}", term)
	}
	if _, ok := ty.(domain.VUniverse); !ok {
		t.Fatalf("Infer(U8) type = %#v, want VUniverse", ty)
	}
}

func TestInferUIntOperatorResolvesToFunctionType(t *testing.T) {
	sink := diagnostics.NewBag()
	c := New(0, sink)

	_, ty := c.Infer(name("u8_add"))
	outer, ok := ty.(domain.VFunType)
	if !ok {
		t.Fatalf("Infer(u8_add) type = %#v, want VFunType", ty)
	}
	if dom, ok := outer.Domain.(domain.VStuck); !ok || dom.Head.Prim != core.U8Type {
		t.Fatalf("u8_add domain = %#v, want U8", outer.Domain)
	}
	codVal := c.Eval.Eval(outer.Codomain.Env.Extend(outer.Domain), outer.Codomain.Body)
	inner, ok := codVal.(domain.VFunType)
	if !ok {
		t.Fatalf("u8_add codomain = %#v, want U8 -> U8", codVal)
	}
	if dom, ok := inner.Domain.(domain.VStuck); !ok || dom.Head.Prim != core.U8Type {
		t.Fatalf("u8_add inner domain = %#v, want U8", inner.Domain)
	}
	resultVal := c.Eval.Eval(inner.Codomain.Env.Extend(inner.Domain), inner.Codomain.Body)
	if res, ok := resultVal.(domain.VStuck); !ok || res.Head.Prim != core.U8Type {
		t.Fatalf("u8_add result = %#v, want U8", resultVal)
	}
}

func TestCheckIdentityFunctionAgainstConcreteArrow(t *testing.T) {
	// (fn x => x) : U8 -> U8, the worked example of an identity
	// function checked against a fully concrete function type: no
	// metavariables should be left unsolved.
	sink := diagnostics.NewBag()
	c := New(0, sink)

	arrow := surface.FunType{Domain: name("U8"), Codomain: name("U8")}
	arrowCore := c.Check(arrow, domain.VUniverse{})
	arrowVal := c.Eval.Eval(c.Values, arrowCore)

	idFn := surface.FunLit{Name: "x", Body: name("x")}
	idCore := c.Check(idFn, arrowVal)

	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics)
	}
	want := core.FunLit{Name: strPtr("x"), Body: core.RigidVar{Index: 0}}
	if !reflect.DeepEqual(idCore, core.Term(want)) {
		t.Fatalf("Check(id, U8->U8) = %#v, want %#v", idCore, want)
	}
	if len(c.Metas.Unsolved()) != 0 {
		t.Fatalf("expected no unsolved metavariables, got %v", c.Metas.Unsolved())
	}
}

func TestCheckIdentityFunctionSolvesMetaArrow(t *testing.T) {
	// (fn x => x) : ?a -> ?a, unified against U8 -> U8 (by checking the
	// lambda against a meta-headed function type, then separately
	// forcing ?a to U8) should solve ?a := U8.
	sink := diagnostics.NewBag()
	c := New(0, sink)

	metaID, metaVal := c.FreshMeta(domain.VUniverse{}, "a")
	arrowVal := domain.VFunType{Domain: metaVal, Codomain: domain.Closure{Body: core.FlexibleVar{Meta: metaID}}}

	idFn := surface.FunLit{Name: "x", Body: name("x")}
	c.Check(idFn, arrowVal)

	u8Val := domain.VStuck{Head: domain.PrimHead(core.U8Type)}
	if err := c.Uni.Unify(0, metaVal, u8Val); err != nil {
		t.Fatalf("Unify(?a, U8) failed: %v", err)
	}
	sol, ok := c.Metas.Solution(metaID)
	if !ok || !c.Eval.IsEqual(0, sol, u8Val) {
		t.Fatalf("?a should solve to U8, got %#v", sol)
	}
}

func TestCheckIntLitTruncatesOnOverflow(t *testing.T) {
	sink := diagnostics.NewBag()
	c := New(0, sink)

	lit := surface.IntLit{Value: 300, Style: int(core.Decimal)}
	u8Ty := domain.VStuck{Head: domain.PrimHead(core.U8Type)}
	got := c.Check(lit, u8Ty)

	want := core.ConstLit{Value: core.U8Const(uint8(300), core.Decimal)}
	if got != want {
		t.Fatalf("Check(300, U8) = %#v, want %#v (300 truncated to %d)", got, want, uint8(300))
	}
}

func TestInferReprOfFormatRecordNormalizesToRecordType(t *testing.T) {
	// struct { inner : f64be } infers to Format; Repr of its evaluated
	// value should normalize to { inner : F64 } (the worked binary
	// example).
	sink := diagnostics.NewBag()
	c := New(0, sink)

	rec := surface.FormatRecord{
		Labels:  []string{"inner"},
		Docs:    []string{""},
		Formats: []surface.Term{name("f64be")},
	}
	recCore, _ := c.Infer(rec)
	recVal := c.Eval.Eval(c.Values, recCore)

	reprVal := c.Eval.Apply(domain.VStuck{Head: domain.PrimHead(core.FormatRepr)}, recVal)
	reprCore := c.Eval.Quote(0, reprVal)

	want := core.RecordType{Labels: []string{"inner"}, Types: []core.Term{core.Prim{Name: core.F64Type}}}
	if !reflect.DeepEqual(reprCore, core.Term(want)) {
		t.Fatalf("Repr(struct{inner:f64be}) = %s, want %s", core.Sprint(reprCore), core.Sprint(want))
	}
}

func TestElaborateModuleReportsUnsolvedMeta(t *testing.T) {
	sink := diagnostics.NewBag()
	c := New(0, sink)

	m := surface.Module{Items: []surface.Item{
		{Name: "Ambiguous", Defn: surface.Hole{}, Span: token.Span{}},
	}}
	c.ElaborateModule(m)

	found := false
	for _, d := range sink.Diagnostics {
		if d.Code == diagnostics.CodeAmbiguousMeta {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an ambiguous-metavariable diagnostic for an unconstrained hole, got %v", sink.Diagnostics)
	}
}

func TestElaborateModuleRejectsRedefinition(t *testing.T) {
	sink := diagnostics.NewBag()
	c := New(0, sink)

	m := surface.Module{Items: []surface.Item{
		{Name: "Byte", Defn: name("u8"), Span: token.Span{}},
		{Name: "Byte", Defn: name("u8"), Span: token.Span{}},
	}}
	c.ElaborateModule(m)

	found := false
	for _, d := range sink.Diagnostics {
		if d.Code == diagnostics.CodeItemRedefinition {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an item-redefinition diagnostic, got %v", sink.Diagnostics)
	}
}

func strPtr(s string) *string { return &s }
