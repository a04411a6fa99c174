package unify

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// patternSpine validates that a spine is a sequence of plain
// applications to distinct rigid variables — the condition under which
// a flexible variable's occurrence can be inverted (spec.md §4.2). It
// returns the rigid levels in spine order.
func (u *Unifier) patternSpine(spine []domain.Elim) ([]int, bool) {
	levels := make([]int, 0, len(spine))
	seen := make(map[int]bool, len(spine))
	for _, el := range spine {
		if el.Kind != domain.ElimApp {
			return nil, false
		}
		forced := u.Eval.Force(el.Arg)
		stuck, ok := forced.(domain.VStuck)
		if !ok || stuck.Head.Kind != domain.HeadRigid || len(stuck.Spine) != 0 {
			return nil, false
		}
		if seen[stuck.Head.Level] {
			return nil, false
		}
		seen[stuck.Head.Level] = true
		levels = append(levels, stuck.Head.Level)
	}
	return levels, true
}

// solvePattern solves meta := fn x1 .. xn => rhs, where the xi are the
// pattern spine's rigid variables renamed into the meta's own binder
// scope. Renaming fails with Escape if rhs mentions a rigid variable
// outside the spine, and with Occurs if it mentions meta itself.
func (u *Unifier) solvePattern(envLen int, meta core.MetaID, levels []int, rhs domain.Value) error {
	paramCount := len(levels)
	levelMap := make(map[int]int, paramCount)
	for i, lv := range levels {
		levelMap[lv] = i
	}

	r := &renamer{u: u, meta: meta, levelMap: levelMap, paramCount: paramCount, originalEnvLen: envLen}
	body := r.rename(paramCount, rhs)
	if r.err != nil {
		return r.err
	}

	solution := body
	for i := 0; i < paramCount; i++ {
		solution = core.FunLit{Body: solution}
	}
	value := u.Eval.Eval(domain.Env{}, solution)
	u.Metas.Assign(meta, value)
	return nil
}

// renamer inverts a value out of the ambient environment into a
// closed solution term for a single metavariable, tracking rigid
// variables that belong to the meta's pattern spine (levelMap) versus
// ones introduced fresh while renaming under a binder (any level at or
// above originalEnvLen, assigned new-context positions in traversal
// order, immediately after the pattern parameters).
type renamer struct {
	u              *Unifier
	meta           core.MetaID
	levelMap       map[int]int
	paramCount     int
	originalEnvLen int
	err            error
}

func (r *renamer) fail(e *Error) {
	if r.err == nil {
		r.err = e
	}
}

// newLevelOf maps an original rigid level to its position in the
// solution's own binder scope (pattern params first, then binders
// entered while renaming, in order).
func (r *renamer) newLevelOf(origLevel int) (int, bool) {
	if nl, ok := r.levelMap[origLevel]; ok {
		return nl, true
	}
	if origLevel >= r.originalEnvLen {
		return r.paramCount + (origLevel - r.originalEnvLen), true
	}
	return 0, false
}

// freshExtra allocates the rigid value for a binder entered while
// renaming at the given depth (depth equals the new-context level it
// will be assigned, following the same convention Quote uses).
func (r *renamer) freshExtra(depth int) domain.Value {
	localExtra := depth - r.paramCount
	return domain.Rigid(r.originalEnvLen + localExtra)
}

func (r *renamer) rename(depth int, v domain.Value) core.Term {
	if r.err != nil {
		return core.Prim{Name: core.ReportedError}
	}
	switch x := r.u.Eval.Force(v).(type) {
	case domain.VUniverse:
		return core.Universe{}

	case domain.VFunType:
		domTerm := r.rename(depth, x.Domain)
		fresh := r.freshExtra(depth)
		bodyVal := r.u.Eval.Apply(domain.VFunLit{Body: x.Codomain}, fresh)
		codTerm := r.rename(depth+1, bodyVal)
		return core.FunType{Name: x.Name, Domain: domTerm, Codomain: codTerm}

	case domain.VFunLit:
		fresh := r.freshExtra(depth)
		bodyVal := r.u.Eval.Eval(x.Body.Env.Extend(fresh), x.Body.Body)
		bodyTerm := r.rename(depth+1, bodyVal)
		return core.FunLit{Name: x.Name, Body: bodyTerm}

	case domain.VRecordType:
		types := make([]core.Term, len(x.Labels))
		prev := make([]domain.Value, 0, len(x.Labels))
		for i := range x.Labels {
			fieldTy := r.u.Eval.EvalTelescopeStep(x.Types, i, prev)
			types[i] = r.rename(depth+i, fieldTy)
			prev = append(prev, r.freshExtra(depth+i))
		}
		return core.RecordType{Labels: x.Labels, Types: types}

	case domain.VRecordLit:
		exprs := make([]core.Term, len(x.Values))
		for i, fv := range x.Values {
			exprs[i] = r.rename(depth, fv)
		}
		return core.RecordLit{Labels: x.Labels, Exprs: exprs}

	case domain.VArrayLit:
		exprs := make([]core.Term, len(x.Values))
		for i, ev := range x.Values {
			exprs[i] = r.rename(depth, ev)
		}
		return core.ArrayLit{Exprs: exprs}

	case domain.VFormatRecord:
		formats := make([]core.Term, len(x.Labels))
		prev := make([]domain.Value, 0, len(x.Labels))
		for i := range x.Labels {
			f := r.u.Eval.EvalTelescopeStep(x.Formats, i, prev)
			formats[i] = r.rename(depth+i, f)
			prev = append(prev, r.freshExtra(depth+i))
		}
		return core.FormatRecord{Labels: x.Labels, Formats: formats}

	case domain.VFormatOverlap:
		formats := make([]core.Term, len(x.Labels))
		prev := make([]domain.Value, 0, len(x.Labels))
		for i := range x.Labels {
			f := r.u.Eval.EvalTelescopeStep(x.Formats, i, prev)
			formats[i] = r.rename(depth+i, f)
			prev = append(prev, r.freshExtra(depth+i))
		}
		return core.FormatOverlap{Labels: x.Labels, Formats: formats}

	case domain.VConstLit:
		return core.ConstLit{Value: x.Value}

	case domain.VError:
		return core.Prim{Name: core.ReportedError}

	case domain.VStuck:
		return r.renameStuck(depth, x)

	default:
		r.fail(mismatch("cannot invert value of type %T", x))
		return core.Prim{Name: core.ReportedError}
	}
}

func (r *renamer) renameStuck(depth int, val domain.VStuck) core.Term {
	var head core.Term
	switch val.Head.Kind {
	case domain.HeadRigid:
		nl, ok := r.newLevelOf(val.Head.Level)
		if !ok {
			r.fail(&Error{Kind: Escape, Message: "variable escapes the metavariable's scope"})
			return core.Prim{Name: core.ReportedError}
		}
		head = core.RigidVar{Index: depth - 1 - nl}

	case domain.HeadFlexible:
		if val.Head.Meta == r.meta {
			r.fail(&Error{Kind: Occurs, Message: "metavariable occurs in its own solution"})
			return core.Prim{Name: core.ReportedError}
		}
		head = core.FlexibleVar{Meta: val.Head.Meta}

	case domain.HeadPrim:
		head = core.Prim{Name: val.Head.Prim}
	}

	for _, el := range val.Spine {
		if r.err != nil {
			break
		}
		switch el.Kind {
		case domain.ElimApp:
			head = core.FunApp{Head: head, Arg: r.rename(depth, el.Arg)}
		case domain.ElimProj:
			head = core.RecordProj{Head: head, Label: el.Label}
		case domain.ElimMatch:
			r.fail(&Error{Kind: NotAPattern, Message: "cannot invert a value blocked on an unresolved match"})
		}
	}
	return head
}
