package unify

import (
	"testing"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/evaluator"
)

func newUnifier() (*Unifier, *MetaContext) {
	metas := NewMetaContext()
	ev := evaluator.New(metas)
	return New(ev, metas), metas
}

func TestUnifySolvesSimpleFlexVar(t *testing.T) {
	u, metas := newUnifier()
	// ?a := U8, a meta whose spine is empty (the trivial pattern case).
	id := metas.Fresh(domain.VUniverse{}, "a")
	meta := domain.VStuck{Head: domain.FlexibleHead(id)}
	u8 := domain.VStuck{Head: domain.PrimHead(core.U8Type)}

	if err := u.Unify(0, meta, u8); err != nil {
		t.Fatalf("Unify(?a, U8) failed: %v", err)
	}
	if !metas.IsSolved(id) {
		t.Fatalf("?a should be solved after unifying with U8")
	}
	sol, _ := metas.Solution(id)
	if !u.Eval.IsEqual(0, sol, u8) {
		t.Fatalf("?a solved to %#v, want U8", sol)
	}
}

func TestUnifyPatternSolutionWithSpine(t *testing.T) {
	u, metas := newUnifier()
	// ?a applied to rigid var 0 unified against rigid var 0 itself
	// solves ?a := fn x => x (the identity), since the pattern spine is
	// a single distinct rigid variable.
	id := metas.Fresh(domain.VUniverse{}, "a")
	rigid0 := domain.Rigid(0)
	metaApplied := domain.VStuck{
		Head:  domain.FlexibleHead(id),
		Spine: []domain.Elim{{Kind: domain.ElimApp, Arg: rigid0}},
	}

	if err := u.Unify(1, metaApplied, rigid0); err != nil {
		t.Fatalf("Unify(?a x, x) failed: %v", err)
	}
	if !metas.IsSolved(id) {
		t.Fatalf("?a should be solved")
	}
}

func TestUnifyOccursCheckFails(t *testing.T) {
	u, metas := newUnifier()
	id := metas.Fresh(domain.VUniverse{}, "a")
	rigid0 := domain.Rigid(0)
	metaApplied := domain.VStuck{
		Head:  domain.FlexibleHead(id),
		Spine: []domain.Elim{{Kind: domain.ElimApp, Arg: rigid0}},
	}
	// ?a x =?= { x = ?a }: the right-hand side mentions the very meta
	// being solved, nested inside a record, which inversion must refuse
	// rather than produce an infinite solution.
	selfReferential := domain.VRecordLit{
		Labels: []string{"x"},
		Values: []domain.Value{domain.VStuck{Head: domain.FlexibleHead(id)}},
	}

	err := u.Unify(1, metaApplied, selfReferential)
	if err == nil {
		t.Fatalf("expected an error unifying a meta against a term containing itself")
	}
	uerr, ok := err.(*Error)
	if !ok || uerr.Kind != Occurs {
		t.Fatalf("expected an Occurs error, got %#v", err)
	}
}

func TestUnifyEscapeCheckFails(t *testing.T) {
	u, metas := newUnifier()
	// ?a (created before any rigid variable exists) unified against a
	// rigid variable the meta's spine doesn't capture must fail: the
	// solution would mention a variable out of the meta's scope.
	id := metas.Fresh(domain.VUniverse{}, "a")
	metaNoSpine := domain.VStuck{Head: domain.FlexibleHead(id)}
	rigid0 := domain.Rigid(0)

	err := u.Unify(1, metaNoSpine, rigid0)
	if err == nil {
		t.Fatalf("expected an escape error solving ?a := x when x isn't in ?a's spine")
	}
}

func TestUnifyMismatchedConstants(t *testing.T) {
	u, _ := newUnifier()
	a := domain.VConstLit{Value: core.U8Const(1, core.Decimal)}
	b := domain.VConstLit{Value: core.U8Const(2, core.Decimal)}
	if err := u.Unify(0, a, b); err == nil {
		t.Fatalf("expected a mismatch error unifying different constants")
	}
}

func TestUnifyRecordTypesFieldwise(t *testing.T) {
	u, _ := newUnifier()
	labels := []string{"inner"}
	rt := func(prim core.PrimName) domain.Value {
		return domain.VRecordType{
			Labels: labels,
			Types:  domain.Telescope{Terms: []core.Term{core.Prim{Name: prim}}},
		}
	}
	if err := u.Unify(0, rt(core.U8Type), rt(core.U8Type)); err != nil {
		t.Fatalf("identical record types should unify: %v", err)
	}
	if err := u.Unify(0, rt(core.U8Type), rt(core.U16Type)); err == nil {
		t.Fatalf("record types with differing field types must not unify")
	}
}

func TestUnifyDistinguishesMatchesWithDifferentBranchBodies(t *testing.T) {
	u, _ := newUnifier()
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

	if err := u.Unify(2, a, a); err != nil {
		t.Fatalf("a stuck match should unify with itself: %v", err)
	}
	if err := u.Unify(2, a, b); err == nil {
		t.Fatalf("expected a mismatch unifying matches with the same patterns but swapped branch bodies")
	}
}

func TestUnifySolvesMetaNestedInMatchBranchBody(t *testing.T) {
	u, metas := newUnifier()
	// A meta appearing inside a stuck match's branch body must still get
	// solved when that match is unified against an identical one with a
	// concrete value in its place.
	id := metas.Fresh(domain.VUniverse{}, "a")
	env := domain.Env{domain.Rigid(0)}
	withMeta := domain.VStuck{
		Head: domain.RigidHead(0),
		Spine: []domain.Elim{{
			Kind: domain.ElimMatch,
			Env:  env,
			Branches: []domain.ConstBranchVal{
				{Pattern: core.BoolConst(true), Body: core.FlexibleVar{Meta: id}},
			},
		}},
	}
	withU8 := domain.VStuck{
		Head: domain.RigidHead(0),
		Spine: []domain.Elim{{
			Kind: domain.ElimMatch,
			Env:  env,
			Branches: []domain.ConstBranchVal{
				{Pattern: core.BoolConst(true), Body: core.Prim{Name: core.U8Type}},
			},
		}},
	}

	if err := u.Unify(1, withMeta, withU8); err != nil {
		t.Fatalf("Unify should solve the meta inside the match branch: %v", err)
	}
	if !metas.IsSolved(id) {
		t.Fatalf("?a should be solved")
	}
	sol, _ := metas.Solution(id)
	if !u.Eval.IsEqual(1, sol, domain.VStuck{Head: domain.PrimHead(core.U8Type)}) {
		t.Fatalf("?a solved to %#v, want U8", sol)
	}
}

func TestUnifyFunctionTypeWithItself(t *testing.T) {
	u, _ := newUnifier()
	fnTy := domain.VFunType{Domain: domain.VUniverse{}, Codomain: domain.Closure{Body: core.Universe{}}}
	if err := u.Unify(0, fnTy, fnTy); err != nil {
		t.Fatalf("a function type should unify with itself: %v", err)
	}
}
