package unify

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// unifyFlex handles the case where at least one side forced to an
// unsolved metavariable (spec.md §4.2).
func (u *Unifier) unifyFlex(envLen int, aFlex domain.VStuck, aIsFlex bool, bFlex domain.VStuck, bIsFlex bool, av, bv domain.Value) error {
	switch {
	case aIsFlex && bIsFlex && aFlex.Head.Meta == bFlex.Head.Meta:
		return u.intersect(envLen, aFlex, bFlex)
	case aIsFlex && bIsFlex:
		// Neither side's identity helps; try inverting whichever spine
		// is a pattern. Prefer the side with the shorter spine, since
		// it's cheaper to re-derive the other from it once solved.
		if len(aFlex.Spine) <= len(bFlex.Spine) {
			if err := u.trySolve(envLen, aFlex, bv); err == nil {
				return nil
			}
			return u.trySolve(envLen, bFlex, av)
		}
		if err := u.trySolve(envLen, bFlex, av); err == nil {
			return nil
		}
		return u.trySolve(envLen, aFlex, bv)
	case aIsFlex:
		return u.trySolve(envLen, aFlex, bv)
	default:
		return u.trySolve(envLen, bFlex, av)
	}
}

// trySolve inverts rhs into a solution for flex's metavariable. rhs
// must not itself mention flex's spine variables in a way the pattern
// check would reject — that's exactly what solvePattern validates.
func (u *Unifier) trySolve(envLen int, flex domain.VStuck, rhs domain.Value) error {
	levels, ok := u.patternSpine(flex.Spine)
	if !ok {
		return &Error{Kind: NotAPattern, Message: "metavariable spine is not a sequence of distinct variables"}
	}
	return u.solvePattern(envLen, flex.Head.Meta, levels, rhs)
}

// intersect implements flex-flex unification when both sides share the
// same metavariable applied to two different (but both pattern) spines
// of the same length: `?m x1 x2 x3` vs `?m x1 y2 x3`. The only sound
// solution is to restrict ?m to ignore whichever argument positions
// disagree, by solving the original meta in terms of a fresh, smaller
// meta applied to just the positions that agree (a simplified version
// of the standard pruning rule).
func (u *Unifier) intersect(envLen int, a, b domain.VStuck) error {
	levelsA, okA := u.patternSpine(a.Spine)
	levelsB, okB := u.patternSpine(b.Spine)
	if !okA || !okB || len(levelsA) != len(levelsB) {
		// Not both patterns of equal arity: fall back to comparing the
		// spines structurally (this is sound when the spines happen to
		// already agree pointwise).
		return u.unifyStuck(envLen, a, b)
	}

	keep := make([]int, 0, len(levelsA))
	for i := range levelsA {
		if levelsA[i] == levelsB[i] {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(levelsA) {
		return nil // identical spines: already equal
	}

	n := len(levelsA)
	newMeta := u.Metas.Fresh(nil, "")
	var body core.Term = core.FlexibleVar{Meta: newMeta}
	for _, idx := range keep {
		body = core.FunApp{Head: body, Arg: core.RigidVar{Index: n - 1 - idx}}
	}
	solution := body
	for i := 0; i < n; i++ {
		solution = core.FunLit{Body: solution}
	}
	value := u.Eval.Eval(domain.Env{}, solution)
	u.Metas.Assign(a.Head.Meta, value)
	return nil
}
