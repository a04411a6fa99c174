package evaluator

import (
	"reflect"
	"testing"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// noMetas is a Metas implementation with nothing ever solved, enough
// for every test here that doesn't exercise flexible variables.
type noMetas struct{}

func (noMetas) Solution(core.MetaID) (domain.Value, bool) { return nil, false }

func newEval() *Evaluator { return New(noMetas{}) }

func TestEvalQuoteRoundTripIdentity(t *testing.T) {
	e := newEval()
	// (fn x => x) applied to U8, quoted back, should be exactly U8.
	id := core.FunLit{Body: core.RigidVar{Index: 0}}
	u8 := core.Prim{Name: core.U8Type}
	applied := core.FunApp{Head: id, Arg: u8}

	v := e.Eval(nil, applied)
	got := e.Quote(0, v)

	if got != (core.Prim{Name: core.U8Type}) {
		t.Fatalf("Quote(Eval(id U8)) = %#v, want Prim{U8Type}", got)
	}
}

func TestEvalQuoteRoundTripUnderBinder(t *testing.T) {
	e := newEval()
	// fn x => x : fn (_ : Type) -> Type, quoted back, should reproduce
	// the same de Bruijn-indexed lambda.
	term := core.FunLit{Body: core.RigidVar{Index: 0}}
	v := e.Eval(nil, term)
	got := e.Quote(0, v)

	want := core.FunLit{Body: core.RigidVar{Index: 0}}
	if got != want {
		t.Fatalf("Quote(Eval(fn x => x)) = %#v, want %#v", got, want)
	}
}

func TestNormalizeReducesApplication(t *testing.T) {
	e := newEval()
	constFn := core.FunLit{Body: core.ConstLit{Value: core.U8Const(31, core.Decimal)}}
	app := core.FunApp{Head: constFn, Arg: core.ConstLit{Value: core.BoolConst(true)}}

	got := e.Normalize(nil, app)
	want := core.ConstLit{Value: core.U8Const(31, core.Decimal)}
	if got != want {
		t.Fatalf("Normalize(const-fn applied) = %#v, want %#v", got, want)
	}
}

func TestIsEqualReflexiveOnNeutral(t *testing.T) {
	e := newEval()
	v := domain.VStuck{Head: domain.PrimHead(core.U8Type)}
	if !e.IsEqual(0, v, v) {
		t.Fatalf("IsEqual must be reflexive on a neutral value")
	}
}

func TestIsEqualFunctionEtaExpansion(t *testing.T) {
	e := newEval()
	// A neutral function value compared against its own eta-expansion
	// (fn x => neutralFn x) must be equal: applying both sides to a
	// fresh variable yields the same thing.
	neutralFn := domain.Rigid(0)
	etaExpanded := domain.VFunLit{Body: domain.Closure{
		Env:  domain.Env{neutralFn},
		Body: core.FunApp{Head: core.RigidVar{Index: 1}, Arg: core.RigidVar{Index: 0}},
	}}

	if !e.IsEqual(1, etaExpanded, neutralFn) {
		t.Fatalf("IsEqual should accept eta-expanded form of a neutral function")
	}
}

func TestIsEqualRecordFieldwise(t *testing.T) {
	e := newEval()
	labels := []string{"inner"}
	lit := domain.VRecordLit{Labels: labels, Values: []domain.Value{domain.VConstLit{Value: core.U8Const(5, core.Decimal)}}}
	other := domain.VRecordLit{Labels: labels, Values: []domain.Value{domain.VConstLit{Value: core.U8Const(5, core.Decimal)}}}
	if !e.IsEqual(0, lit, other) {
		t.Fatalf("IsEqual should equate two record literals with identical fields")
	}

	mismatched := domain.VRecordLit{Labels: labels, Values: []domain.Value{domain.VConstLit{Value: core.U8Const(6, core.Decimal)}}}
	if e.IsEqual(0, lit, mismatched) {
		t.Fatalf("IsEqual must distinguish records with different field values")
	}
}

// stuckBoolMatch builds `match p { true => body, false => body }` stuck
// on the rigid variable at the given level, closing both branches over
// env.
func stuckBoolMatch(env domain.Env, level int, body core.Term) domain.VStuck {
	return domain.VStuck{
		Head: domain.RigidHead(level),
		Spine: []domain.Elim{{
			Kind: domain.ElimMatch,
			Env:  env,
			Branches: []domain.ConstBranchVal{
				{Pattern: core.BoolConst(true), Body: body},
				{Pattern: core.BoolConst(false), Body: body},
			},
		}},
	}
}

func TestQuoteStuckMatchReevaluatesBranchesAtEachDepth(t *testing.T) {
	e := newEval()
	// The match is stuck on rigid level 0 (x) and its branches both
	// return x, closed over an env of length 1.
	shared := stuckBoolMatch(domain.Env{domain.Rigid(0)}, 0, core.RigidVar{Index: 0})

	// Quoting at envLen=1 (same depth the match was built at) should
	// reproduce the match unchanged, with branch bodies referring to x.
	gotShallow := e.Quote(1, shared)
	wantShallow := core.ConstMatch{
		Scrutinee: core.RigidVar{Index: 0},
		Branches: []core.ConstBranch{
			{Pattern: core.BoolConst(true), Body: core.RigidVar{Index: 0}},
			{Pattern: core.BoolConst(false), Body: core.RigidVar{Index: 0}},
		},
	}
	if !reflect.DeepEqual(gotShallow, wantShallow) {
		t.Fatalf("Quote(1, shared) = %#v, want %#v", gotShallow, wantShallow)
	}

	// Quoting the very same stuck value at envLen=2 (as happens when
	// it's read back under an extra binder, e.g. nested in a field
	// whose value is a function) must still resolve each branch body to
	// x, not to the newly introduced binder variable y.
	gotDeep := e.Quote(2, shared)
	wantDeep := core.ConstMatch{
		Scrutinee: core.RigidVar{Index: 1},
		Branches: []core.ConstBranch{
			{Pattern: core.BoolConst(true), Body: core.RigidVar{Index: 1}},
			{Pattern: core.BoolConst(false), Body: core.RigidVar{Index: 1}},
		},
	}
	if !reflect.DeepEqual(gotDeep, wantDeep) {
		t.Fatalf("Quote(2, shared) = %#v, want %#v", gotDeep, wantDeep)
	}
}

func TestIsEqualDistinguishesMatchesWithDifferentBranchBodies(t *testing.T) {
	e := newEval()
	env := domain.Env{domain.Rigid(0), domain.Rigid(1)}
	a := domain.VStuck{
		Head: domain.RigidHead(0),
		Spine: []domain.Elim{{
			Kind: domain.ElimMatch,
			Env:  env,
			Branches: []domain.ConstBranchVal{
				{Pattern: core.BoolConst(true), Body: core.RigidVar{Index: 0}},
				{Pattern: core.BoolConst(false), Body: core.RigidVar{Index: 1}},
			},
		}},
	}
	b := domain.VStuck{
		Head: domain.RigidHead(0),
		Spine: []domain.Elim{{
			Kind: domain.ElimMatch,
			Env:  env,
			Branches: []domain.ConstBranchVal{
				{Pattern: core.BoolConst(true), Body: core.RigidVar{Index: 1}},
				{Pattern: core.BoolConst(false), Body: core.RigidVar{Index: 0}},
			},
		}},
	}

	if e.IsEqual(2, a, b) {
		t.Fatalf("IsEqual must distinguish matches with the same patterns but swapped branch bodies")
	}
	if !e.IsEqual(2, a, a) {
		t.Fatalf("IsEqual must be reflexive for a stuck match")
	}
}

func TestIsEqualDistinguishesMatchDefaults(t *testing.T) {
	e := newEval()
	env := domain.Env{domain.Rigid(0), domain.Rigid(1)}
	base := domain.Elim{
		Kind: domain.ElimMatch,
		Env:  env,
		Branches: []domain.ConstBranchVal{
			{Pattern: core.BoolConst(true), Body: core.RigidVar{Index: 0}},
		},
	}
	withDefaultA := base
	withDefaultA.Default = core.RigidVar{Index: 0}
	withDefaultB := base
	withDefaultB.Default = core.RigidVar{Index: 1}

	a := domain.VStuck{Head: domain.RigidHead(0), Spine: []domain.Elim{withDefaultA}}
	b := domain.VStuck{Head: domain.RigidHead(0), Spine: []domain.Elim{withDefaultB}}
	if e.IsEqual(2, a, b) {
		t.Fatalf("IsEqual must distinguish matches with different defaults")
	}
}

func TestIsEqualDistinguishesConstants(t *testing.T) {
	e := newEval()
	a := domain.VConstLit{Value: core.U8Const(1, core.Decimal)}
	b := domain.VConstLit{Value: core.U8Const(2, core.Decimal)}
	if e.IsEqual(0, a, b) {
		t.Fatalf("IsEqual must distinguish different constants")
	}
}

func TestIsEqualErrorSentinelAbsorbs(t *testing.T) {
	e := newEval()
	errVal := domain.VError{}
	anything := domain.VConstLit{Value: core.BoolConst(true)}
	if !e.IsEqual(0, errVal, anything) {
		t.Fatalf("the error sentinel must compare equal to anything")
	}
}

func TestReprOfFormatRecordProducesRecordType(t *testing.T) {
	e := newEval()
	// struct { inner : f64be } reduces to { inner : F64 }.
	rec := domain.VFormatRecord{
		Labels: []string{"inner"},
		Formats: domain.Telescope{
			Terms: []core.Term{core.Prim{Name: core.FormatF64Be}},
		},
	}
	v, ok := e.reduceRepr(rec)
	if !ok {
		t.Fatalf("reduceRepr(struct{inner:f64be}) did not reduce")
	}
	rt, ok := v.(domain.VRecordType)
	if !ok {
		t.Fatalf("reduceRepr(struct) should produce a VRecordType, got %#v", v)
	}
	if len(rt.Labels) != 1 || rt.Labels[0] != "inner" {
		t.Fatalf("unexpected labels %v", rt.Labels)
	}

	fieldTy := e.EvalTelescopeStep(rt.Types, 0, nil)
	if !e.IsEqual(0, fieldTy, domain.VStuck{Head: domain.PrimHead(core.F64Type)}) {
		t.Fatalf("field 'inner' repr should be F64, got %#v", fieldTy)
	}
}

func TestReprOfFixedWidthPrimitives(t *testing.T) {
	e := newEval()
	v, ok := e.reduceRepr(domain.VStuck{Head: domain.PrimHead(core.FormatU8)})
	if !ok {
		t.Fatalf("Repr(u8) should reduce")
	}
	if !e.IsEqual(0, v, domain.VStuck{Head: domain.PrimHead(core.U8Type)}) {
		t.Fatalf("Repr(u8) = %#v, want U8Type", v)
	}
}

func TestUIntComparisonReduction(t *testing.T) {
	a := domain.VConstLit{Value: core.U8Const(10, core.Decimal)}
	b := domain.VConstLit{Value: core.U8Const(5, core.Decimal)}
	got, ok := reduceUIntPrim(core.U8Gt, []domain.Value{a, b})
	if !ok {
		t.Fatalf("u8_gt(10, 5) should reduce")
	}
	c, ok := got.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindBool || !c.Value.Bool {
		t.Fatalf("u8_gt(10, 5) = %#v, want true", got)
	}
}

func TestApplyPrimitiveReducesOnceSaturated(t *testing.T) {
	e := newEval()
	notFn := domain.VStuck{Head: domain.PrimHead(core.BoolNot)}
	result := e.Apply(notFn, domain.VConstLit{Value: core.BoolConst(false)})
	c, ok := result.(domain.VConstLit)
	if !ok || !c.Value.Bool {
		t.Fatalf("bool_not(false) = %#v, want true", result)
	}
}
