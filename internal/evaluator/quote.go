package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// Quote is the inverse of Eval up to alpha-equivalence (spec.md §4.1):
// read a value back to a core term under an environment of the given
// length, allocating fresh rigid variables for anything under a binder.
func (e *Evaluator) Quote(envLen int, v domain.Value) core.Term {
	switch val := e.Force(v).(type) {
	case domain.VUniverse:
		return core.Universe{}

	case domain.VFunType:
		bodyVal := e.Apply(closureAsFun(val.Codomain), domain.Rigid(envLen))
		return core.FunType{
			Name:     val.Name,
			Domain:   e.Quote(envLen, val.Domain),
			Codomain: e.Quote(envLen+1, bodyVal),
		}

	case domain.VFunLit:
		bodyVal := e.Eval(val.Body.Env.Extend(domain.Rigid(envLen)), val.Body.Body)
		return core.FunLit{Name: val.Name, Body: e.Quote(envLen+1, bodyVal)}

	case domain.VRecordType:
		types := make([]core.Term, len(val.Labels))
		prev := make([]domain.Value, 0, len(val.Labels))
		for i := range val.Labels {
			fieldTy := e.EvalTelescopeStep(val.Types, i, prev)
			types[i] = e.Quote(envLen+i, fieldTy)
			prev = append(prev, domain.Rigid(envLen+i))
		}
		return core.RecordType{Labels: val.Labels, Types: types}

	case domain.VRecordLit:
		exprs := make([]core.Term, len(val.Values))
		for i, fv := range val.Values {
			exprs[i] = e.Quote(envLen, fv)
		}
		return core.RecordLit{Labels: val.Labels, Exprs: exprs}

	case domain.VArrayLit:
		exprs := make([]core.Term, len(val.Values))
		for i, ev := range val.Values {
			exprs[i] = e.Quote(envLen, ev)
		}
		return core.ArrayLit{Exprs: exprs}

	case domain.VFormatRecord:
		formats := make([]core.Term, len(val.Labels))
		prev := make([]domain.Value, 0, len(val.Labels))
		for i := range val.Labels {
			f := e.EvalTelescopeStep(val.Formats, i, prev)
			formats[i] = e.Quote(envLen+i, f)
			prev = append(prev, domain.Rigid(envLen+i))
		}
		return core.FormatRecord{Labels: val.Labels, Formats: formats}

	case domain.VFormatOverlap:
		formats := make([]core.Term, len(val.Labels))
		prev := make([]domain.Value, 0, len(val.Labels))
		for i := range val.Labels {
			f := e.EvalTelescopeStep(val.Formats, i, prev)
			formats[i] = e.Quote(envLen+i, f)
			prev = append(prev, domain.Rigid(envLen+i))
		}
		return core.FormatOverlap{Labels: val.Labels, Formats: formats}

	case domain.VConstLit:
		return core.ConstLit{Value: val.Value}

	case domain.VError:
		return core.Prim{Name: core.ReportedError}

	case domain.VStuck:
		return e.quoteStuck(envLen, val)

	default:
		return core.Prim{Name: core.ReportedError}
	}
}

func (e *Evaluator) quoteStuck(envLen int, val domain.VStuck) core.Term {
	var head core.Term
	switch val.Head.Kind {
	case domain.HeadRigid:
		// Level -> index: the binder envLen-1-level steps away from the
		// point this value is being read back at.
		head = core.RigidVar{Index: envLen - 1 - val.Head.Level}
	case domain.HeadFlexible:
		head = core.FlexibleVar{Meta: val.Head.Meta}
	case domain.HeadPrim:
		head = core.Prim{Name: val.Head.Prim}
	}
	for _, el := range val.Spine {
		switch el.Kind {
		case domain.ElimApp:
			head = core.FunApp{Head: head, Arg: e.Quote(envLen, el.Arg)}
		case domain.ElimProj:
			head = core.RecordProj{Head: head, Label: el.Label}
		case domain.ElimMatch:
			branches := make([]core.ConstBranch, len(el.Branches))
			for i, b := range el.Branches {
				branches[i] = core.ConstBranch{Pattern: b.Pattern, Body: e.Quote(envLen, e.Eval(el.Env, b.Body))}
			}
			var def core.Term
			if el.Default != nil {
				def = e.Quote(envLen, e.Eval(el.Env, el.Default))
			}
			head = core.ConstMatch{Scrutinee: head, Branches: branches, Default: def}
		}
	}
	return head
}

// Normalize is eval followed by quote under the environment's own
// length, the composite operation spec.md §4.1 names explicitly.
func (e *Evaluator) Normalize(env domain.Env, t core.Term) core.Term {
	return e.Quote(len(env), e.Eval(env, t))
}

func closureAsFun(c domain.Closure) domain.Value {
	return domain.VFunLit{Body: c}
}
