package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// IsEqual decides definitional equality of two values up to eta for
// functions and records (spec.md §4.1, §8 property #2). envLen is the
// number of rigid variables already in scope, used to allocate fresh
// variables when eta-expanding.
func (e *Evaluator) IsEqual(envLen int, a, b domain.Value) bool {
	av := e.Force(a)
	bv := e.Force(b)

	if _, ok := bv.(domain.VError); ok {
		return true
	}

	// Eta for functions: if either side is a FunLit, apply both sides to
	// a fresh variable and recurse, regardless of what the other side is
	// (it might be a neutral function-typed value).
	if isFunLit(av) || isFunLit(bv) {
		fresh := domain.Rigid(envLen)
		return e.IsEqual(envLen+1, e.Apply(av, fresh), e.Apply(bv, fresh))
	}

	// Eta for records: if either side is a RecordLit, compare field by
	// field by projecting both sides.
	if labels, ok := recordLabels(av); ok {
		return e.recordFieldsEqual(envLen, labels, av, bv)
	}
	if labels, ok := recordLabels(bv); ok {
		return e.recordFieldsEqual(envLen, labels, av, bv)
	}

	switch x := av.(type) {
	case domain.VUniverse:
		_, ok := bv.(domain.VUniverse)
		return ok

	case domain.VFunType:
		y, ok := bv.(domain.VFunType)
		if !ok || !e.IsEqual(envLen, x.Domain, y.Domain) {
			return false
		}
		fresh := domain.Rigid(envLen)
		return e.IsEqual(envLen+1,
			e.Eval(x.Codomain.Env.Extend(fresh), x.Codomain.Body),
			e.Eval(y.Codomain.Env.Extend(fresh), y.Codomain.Body))

	case domain.VRecordType:
		y, ok := bv.(domain.VRecordType)
		if !ok || !core.LabelsEqual(x.Labels, y.Labels) {
			return false
		}
		prevX := make([]domain.Value, 0, len(x.Labels))
		prevY := make([]domain.Value, 0, len(y.Labels))
		for i := range x.Labels {
			tx := e.EvalTelescopeStep(x.Types, i, prevX)
			ty := e.EvalTelescopeStep(y.Types, i, prevY)
			if !e.IsEqual(envLen, tx, ty) {
				return false
			}
			fresh := domain.Rigid(envLen)
			prevX = append(prevX, fresh)
			prevY = append(prevY, fresh)
		}
		return true

	case domain.VArrayLit:
		y, ok := bv.(domain.VArrayLit)
		if !ok || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !e.IsEqual(envLen, x.Values[i], y.Values[i]) {
				return false
			}
		}
		return true

	case domain.VFormatRecord:
		y, ok := bv.(domain.VFormatRecord)
		return ok && e.telescopesEqual(envLen, x.Labels, x.Formats, y.Labels, y.Formats)

	case domain.VFormatOverlap:
		y, ok := bv.(domain.VFormatOverlap)
		return ok && e.telescopesEqual(envLen, x.Labels, x.Formats, y.Labels, y.Formats)

	case domain.VConstLit:
		y, ok := bv.(domain.VConstLit)
		return ok && core.ConstEqual(x.Value, y.Value)

	case domain.VError:
		// The error sentinel absorbs any comparison (spec.md §9).
		return true

	case domain.VStuck:
		if _, ok := bv.(domain.VError); ok {
			return true
		}
		y, ok := bv.(domain.VStuck)
		return ok && e.headsAndSpinesEqual(envLen, x, y)

	default:
		return false
	}
}

func (e *Evaluator) telescopesEqual(envLen int, la []string, ta domain.Telescope, lb []string, tb domain.Telescope) bool {
	if !core.LabelsEqual(la, lb) {
		return false
	}
	prevA := make([]domain.Value, 0, len(la))
	prevB := make([]domain.Value, 0, len(lb))
	for i := range la {
		va := e.EvalTelescopeStep(ta, i, prevA)
		vb := e.EvalTelescopeStep(tb, i, prevB)
		if !e.IsEqual(envLen, va, vb) {
			return false
		}
		fresh := domain.Rigid(envLen)
		prevA = append(prevA, fresh)
		prevB = append(prevB, fresh)
	}
	return true
}

// headsAndSpinesEqual compares two neutrals structurally. Two unsolved
// metas compare equal only when they share an id and an identical spine
// (spec.md §4.1).
func (e *Evaluator) headsAndSpinesEqual(envLen int, x, y domain.VStuck) bool {
	if !headsEqual(x.Head, y.Head) {
		return false
	}
	if len(x.Spine) != len(y.Spine) {
		return false
	}
	for i := range x.Spine {
		if !e.elimsEqual(envLen, x.Spine[i], y.Spine[i]) {
			return false
		}
	}
	return true
}

func headsEqual(a, b domain.Head) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case domain.HeadRigid:
		return a.Level == b.Level
	case domain.HeadFlexible:
		return a.Meta == b.Meta
	case domain.HeadPrim:
		return a.Prim == b.Prim
	default:
		return false
	}
}

func (e *Evaluator) elimsEqual(envLen int, a, b domain.Elim) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case domain.ElimApp:
		return e.IsEqual(envLen, a.Arg, b.Arg)
	case domain.ElimProj:
		return a.Label == b.Label
	case domain.ElimMatch:
		if !core.LabelsEqual(branchPatternsToStrings(a.Branches), branchPatternsToStrings(b.Branches)) {
			return false
		}
		for i := range a.Branches {
			av := e.Eval(a.Env, a.Branches[i].Body)
			bv := e.Eval(b.Env, b.Branches[i].Body)
			if !e.IsEqual(envLen, av, bv) {
				return false
			}
		}
		return e.elimMatchDefaultsEqual(envLen, a, b)
	default:
		return false
	}
}

func (e *Evaluator) elimMatchDefaultsEqual(envLen int, a, b domain.Elim) bool {
	if (a.Default == nil) != (b.Default == nil) {
		return false
	}
	if a.Default == nil {
		return true
	}
	return e.IsEqual(envLen, e.Eval(a.Env, a.Default), e.Eval(b.Env, b.Default))
}

func branchPatternsToStrings(branches []domain.ConstBranchVal) []string {
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

func (e *Evaluator) recordFieldsEqual(envLen int, labels []string, a, b domain.Value) bool {
	for _, l := range labels {
		if !e.IsEqual(envLen, e.Project(a, l), e.Project(b, l)) {
			return false
		}
	}
	return true
}
