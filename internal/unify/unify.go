package unify

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/evaluator"
)

// Unifier decides definitional equality up to solving metavariables,
// mutating MetaContext as it goes (spec.md §4.2). Structurally it
// mirrors evaluator.IsEqual; the difference is what happens when a
// flexible head is encountered unsolved.
type Unifier struct {
	Eval  *evaluator.Evaluator
	Metas *MetaContext
}

func New(ev *evaluator.Evaluator, metas *MetaContext) *Unifier {
	return &Unifier{Eval: ev, Metas: metas}
}

// Unify tries to make a and b definitionally equal, solving any
// unsolved metavariables it encounters along the way. envLen is the
// number of rigid variables in scope.
func (u *Unifier) Unify(envLen int, a, b domain.Value) error {
	av := u.Eval.Force(a)
	bv := u.Eval.Force(b)

	// The error sentinel, as VError or as a stuck ReportedError, absorbs
	// any unification (spec.md §9).
	for _, v := range []domain.Value{av, bv} {
		if _, ok := v.(domain.VError); ok {
			return nil
		}
		if s, ok := v.(domain.VStuck); ok && s.Head.Kind == domain.HeadPrim && s.Head.Prim == core.ReportedError {
			return nil
		}
	}

	aFlex, aIsFlex := asUnsolvedFlex(av)
	bFlex, bIsFlex := asUnsolvedFlex(bv)
	if aIsFlex || bIsFlex {
		return u.unifyFlex(envLen, aFlex, aIsFlex, bFlex, bIsFlex, av, bv)
	}

	// Eta for functions: works regardless of what the other side's
	// shape is, since it may itself be a neutral of function type.
	if isFunLit(av) || isFunLit(bv) {
		fresh := domain.Rigid(envLen)
		return u.Unify(envLen+1, u.Eval.Apply(av, fresh), u.Eval.Apply(bv, fresh))
	}
	if labels, ok := recordLabels(av); ok {
		return u.unifyRecordFields(envLen, labels, av, bv)
	}
	if labels, ok := recordLabels(bv); ok {
		return u.unifyRecordFields(envLen, labels, av, bv)
	}

	switch x := av.(type) {
	case domain.VUniverse:
		if _, ok := bv.(domain.VUniverse); !ok {
			return mismatch("expected Type, found %T", bv)
		}
		return nil

	case domain.VFunType:
		y, ok := bv.(domain.VFunType)
		if !ok {
			return mismatch("expected a function type, found %T", bv)
		}
		if err := u.Unify(envLen, x.Domain, y.Domain); err != nil {
			return err
		}
		fresh := domain.Rigid(envLen)
		return u.Unify(envLen+1,
			u.Eval.Eval(x.Codomain.Env.Extend(fresh), x.Codomain.Body),
			u.Eval.Eval(y.Codomain.Env.Extend(fresh), y.Codomain.Body))

	case domain.VRecordType:
		y, ok := bv.(domain.VRecordType)
		if !ok || !core.LabelsEqual(x.Labels, y.Labels) {
			return mismatch("record type field mismatch")
		}
		prevX := make([]domain.Value, 0, len(x.Labels))
		prevY := make([]domain.Value, 0, len(y.Labels))
		for i := range x.Labels {
			tx := u.Eval.EvalTelescopeStep(x.Types, i, prevX)
			ty := u.Eval.EvalTelescopeStep(y.Types, i, prevY)
			if err := u.Unify(envLen, tx, ty); err != nil {
				return err
			}
			fresh := domain.Rigid(envLen)
			prevX = append(prevX, fresh)
			prevY = append(prevY, fresh)
		}
		return nil

	case domain.VArrayLit:
		y, ok := bv.(domain.VArrayLit)
		if !ok || len(x.Values) != len(y.Values) {
			return mismatch("array literal length mismatch")
		}
		for i := range x.Values {
			if err := u.Unify(envLen, x.Values[i], y.Values[i]); err != nil {
				return err
			}
		}
		return nil

	case domain.VFormatRecord:
		y, ok := bv.(domain.VFormatRecord)
		if !ok {
			return mismatch("expected a record format, found %T", bv)
		}
		return u.unifyTelescopes(envLen, x.Labels, x.Formats, y.Labels, y.Formats)

	case domain.VFormatOverlap:
		y, ok := bv.(domain.VFormatOverlap)
		if !ok {
			return mismatch("expected an overlap format, found %T", bv)
		}
		return u.unifyTelescopes(envLen, x.Labels, x.Formats, y.Labels, y.Formats)

	case domain.VConstLit:
		y, ok := bv.(domain.VConstLit)
		if !ok || !core.ConstEqual(x.Value, y.Value) {
			return mismatch("constant mismatch: %s vs %v", x.Value, bv)
		}
		return nil

	case domain.VError:
		return nil

	case domain.VStuck:
		if _, ok := bv.(domain.VError); ok {
			return nil
		}
		y, ok := bv.(domain.VStuck)
		if !ok {
			return mismatch("expected a neutral value, found %T", bv)
		}
		return u.unifyStuck(envLen, x, y)

	default:
		return mismatch("cannot unify value of type %T", x)
	}
}

func (u *Unifier) unifyTelescopes(envLen int, la []string, ta domain.Telescope, lb []string, tb domain.Telescope) error {
	if !core.LabelsEqual(la, lb) {
		return mismatch("field mismatch")
	}
	prevA := make([]domain.Value, 0, len(la))
	prevB := make([]domain.Value, 0, len(lb))
	for i := range la {
		va := u.Eval.EvalTelescopeStep(ta, i, prevA)
		vb := u.Eval.EvalTelescopeStep(tb, i, prevB)
		if err := u.Unify(envLen, va, vb); err != nil {
			return err
		}
		fresh := domain.Rigid(envLen)
		prevA = append(prevA, fresh)
		prevB = append(prevB, fresh)
	}
	return nil
}

func (u *Unifier) unifyRecordFields(envLen int, labels []string, a, b domain.Value) error {
	for _, l := range labels {
		if err := u.Unify(envLen, u.Eval.Project(a, l), u.Eval.Project(b, l)); err != nil {
			return err
		}
	}
	return nil
}

// unifyStuck compares two neutrals that aren't flexible heads: same
// head, then pointwise-equal spines.
func (u *Unifier) unifyStuck(envLen int, x, y domain.VStuck) error {
	if x.Head.Kind != y.Head.Kind {
		return mismatch("different neutral heads")
	}
	switch x.Head.Kind {
	case domain.HeadRigid:
		if x.Head.Level != y.Head.Level {
			return mismatch("different variables (levels %d vs %d)", x.Head.Level, y.Head.Level)
		}
	case domain.HeadPrim:
		if x.Head.Prim != y.Head.Prim {
			return mismatch("different primitives (%s vs %s)", x.Head.Prim, y.Head.Prim)
		}
	}
	if len(x.Spine) != len(y.Spine) {
		return mismatch("spine length mismatch")
	}
	for i := range x.Spine {
		if err := u.unifyElim(envLen, x.Spine[i], y.Spine[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *Unifier) unifyElim(envLen int, a, b domain.Elim) error {
	if a.Kind != b.Kind {
		return mismatch("different eliminations")
	}
	switch a.Kind {
	case domain.ElimApp:
		return u.Unify(envLen, a.Arg, b.Arg)
	case domain.ElimProj:
		if a.Label != b.Label {
			return mismatch("different projected fields: %q vs %q", a.Label, b.Label)
		}
		return nil
	case domain.ElimMatch:
		if !core.LabelsEqual(patternStrings(a.Branches), patternStrings(b.Branches)) {
			return mismatch("match branches differ")
		}
		for i := range a.Branches {
			av := u.Eval.Eval(a.Env, a.Branches[i].Body)
			bv := u.Eval.Eval(b.Env, b.Branches[i].Body)
			if err := u.Unify(envLen, av, bv); err != nil {
				return err
			}
		}
		return u.unifyElimMatchDefaults(envLen, a, b)
	default:
		return mismatch("unsupported elimination")
	}
}

func (u *Unifier) unifyElimMatchDefaults(envLen int, a, b domain.Elim) error {
	if (a.Default == nil) != (b.Default == nil) {
		return mismatch("match default presence differs")
	}
	if a.Default == nil {
		return nil
	}
	return u.Unify(envLen, u.Eval.Eval(a.Env, a.Default), u.Eval.Eval(b.Env, b.Default))
}

func patternStrings(branches []domain.ConstBranchVal) []string {
	out := make([]string, len(branches))
	for i, b := range branches {
		out[i] = b.Pattern.String()
	}
	return out
}

func isFunLit(v domain.Value) bool {
	_, ok := v.(domain.VFunLit)
	return ok
}

func recordLabels(v domain.Value) ([]string, bool) {
	if r, ok := v.(domain.VRecordLit); ok {
		return r.Labels, true
	}
	return nil, false
}

func asUnsolvedFlex(v domain.Value) (domain.VStuck, bool) {
	s, ok := v.(domain.VStuck)
	if !ok || s.Head.Kind != domain.HeadFlexible {
		return domain.VStuck{}, false
	}
	return s, true
}
