package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// Force looks through a solved metavariable head, re-applying any spine
// the neutral had accumulated while it was still unsolved. It is the
// operation quote/is_equal/unify call before inspecting a value's shape,
// since eval only resolves a meta at the instant it is first evaluated —
// a value built earlier may still carry a stale unsolved head that has
// since been solved.
func (e *Evaluator) Force(v domain.Value) domain.Value {
	stuck, ok := v.(domain.VStuck)
	if !ok || stuck.Head.Kind != domain.HeadFlexible {
		return v
	}
	solution, ok := e.Metas.Solution(stuck.Head.Meta)
	if !ok {
		return v
	}
	result := solution
	for _, elim := range stuck.Spine {
		result = e.applyElim(result, elim)
	}
	return e.Force(result)
}

func (e *Evaluator) applyElim(v domain.Value, el domain.Elim) domain.Value {
	switch el.Kind {
	case domain.ElimApp:
		return e.Apply(v, el.Arg)
	case domain.ElimProj:
		return e.Project(v, el.Label)
	case domain.ElimMatch:
		return e.MatchConst(el.Env, v, el.Branches, el.Default)
	default:
		return domain.VError{}
	}
}

// Apply implements function application (spec.md §4.1): a FunLit
// extends its closure with the argument and evaluates the body; a
// neutral value appends a FunApp elim (attempting primitive reduction
// first, when the head is a primitive with enough concrete arguments).
func (e *Evaluator) Apply(fn domain.Value, arg domain.Value) domain.Value {
	switch f := e.Force(fn).(type) {
	case domain.VFunLit:
		return e.Eval(f.Body.Env.Extend(arg), f.Body.Body)

	case domain.VStuck:
		spine := appendElim(f.Spine, domain.Elim{Kind: domain.ElimApp, Arg: arg})
		if f.Head.Kind == domain.HeadPrim {
			if reduced, ok := e.reducePrim(f.Head.Prim, spine); ok {
				return reduced
			}
		}
		return domain.VStuck{Head: f.Head, Spine: spine}

	default:
		return domain.VError{}
	}
}

// Project implements field projection. On a RecordLit it returns the
// stored value; on a RecordType it returns the *type* of that field,
// substituting earlier fields by recursively projecting them off the
// same head (self-referential telescope); on a neutral it appends a
// RecordProj elim.
func (e *Evaluator) Project(rec domain.Value, label string) domain.Value {
	switch r := e.Force(rec).(type) {
	case domain.VRecordLit:
		for i, l := range r.Labels {
			if l == label {
				return r.Values[i]
			}
		}
		return domain.VError{}

	case domain.VRecordType:
		for i, l := range r.Labels {
			if l != label {
				continue
			}
			prev := make([]domain.Value, i)
			for j := 0; j < i; j++ {
				prev[j] = e.Project(rec, r.Labels[j])
			}
			return e.EvalTelescopeStep(r.Types, i, prev)
		}
		return domain.VError{}

	case domain.VStuck:
		spine := appendElim(r.Spine, domain.Elim{Kind: domain.ElimProj, Label: label})
		return domain.VStuck{Head: r.Head, Spine: spine}

	default:
		return domain.VError{}
	}
}

// MatchConst implements ConstMatch reduction: on a concrete ConstLit
// scrutinee matching some pattern, it evaluates that branch (patterns
// bind nothing); otherwise it falls through to the default, or becomes
// a neutral elim when the scrutinee is stuck.
func (e *Evaluator) MatchConst(env domain.Env, scrutinee domain.Value, branches []domain.ConstBranchVal, def core.Term) domain.Value {
	switch s := e.Force(scrutinee).(type) {
	case domain.VConstLit:
		for _, b := range branches {
			if core.ConstEqual(s.Value, b.Pattern) {
				return e.Eval(env, b.Body)
			}
		}
		if def != nil {
			return e.Eval(env, def)
		}
		return domain.VError{}

	case domain.VStuck:
		spine := appendElim(s.Spine, domain.Elim{
			Kind:     domain.ElimMatch,
			Env:      env,
			Branches: branches,
			Default:  def,
		})
		return domain.VStuck{Head: s.Head, Spine: spine}

	default:
		return domain.VError{}
	}
}

func appendElim(spine []domain.Elim, el domain.Elim) []domain.Elim {
	next := make([]domain.Elim, len(spine)+1)
	copy(next, spine)
	next[len(spine)] = el
	return next
}
