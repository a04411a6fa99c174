package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// Eval walks a core term under a rigid-value environment, producing its
// semantic value (spec.md §4.1).
func (e *Evaluator) Eval(env domain.Env, t core.Term) domain.Value {
	switch n := t.(type) {
	case core.RigidVar:
		// Index n.Index counts from the innermost binder; env is ordered
		// outermost-first, so the value sits at len(env)-1-index.
		return env[len(env)-1-n.Index]

	case core.FlexibleVar:
		if v, ok := e.Metas.Solution(n.Meta); ok {
			return v
		}
		return domain.VStuck{Head: domain.FlexibleHead(n.Meta)}

	case core.FlexibleInsertion:
		if v, ok := e.Metas.Solution(n.Meta); ok {
			// Re-apply the captured parameters to the (now known)
			// solution, in case it's itself a function.
			result := v
			for i, kind := range n.Entries {
				if kind == core.Parameter {
					result = e.Apply(result, env[i])
				}
			}
			return result
		}
		spine := make([]domain.Elim, 0, len(n.Entries))
		for i, kind := range n.Entries {
			if kind == core.Parameter {
				spine = append(spine, domain.Elim{Kind: domain.ElimApp, Arg: env[i]})
			}
		}
		return domain.VStuck{Head: domain.FlexibleHead(n.Meta), Spine: spine}

	case core.Ann:
		return e.Eval(env, n.Term)

	case core.Let:
		defn := e.Eval(env, n.Defn)
		return e.Eval(env.Extend(defn), n.Body)

	case core.Universe:
		return domain.VUniverse{}

	case core.FunType:
		return domain.VFunType{
			Name:     n.Name,
			Domain:   e.Eval(env, n.Domain),
			Codomain: domain.Closure{Env: env, Body: n.Codomain},
		}

	case core.FunLit:
		return domain.VFunLit{Name: n.Name, Body: domain.Closure{Env: env, Body: n.Body}}

	case core.FunApp:
		return e.Apply(e.Eval(env, n.Head), e.Eval(env, n.Arg))

	case core.RecordType:
		return domain.VRecordType{
			Labels: n.Labels,
			Types:  domain.Telescope{Env: env, Terms: n.Types},
		}

	case core.RecordLit:
		values := make([]domain.Value, len(n.Exprs))
		for i, expr := range n.Exprs {
			values[i] = e.Eval(env, expr)
		}
		return domain.VRecordLit{Labels: n.Labels, Values: values}

	case core.RecordProj:
		return e.Project(e.Eval(env, n.Head), n.Label)

	case core.ArrayLit:
		values := make([]domain.Value, len(n.Exprs))
		for i, expr := range n.Exprs {
			values[i] = e.Eval(env, expr)
		}
		return domain.VArrayLit{Values: values}

	case core.FormatRecord:
		return domain.VFormatRecord{
			Labels:  n.Labels,
			Formats: domain.Telescope{Env: env, Terms: n.Formats},
		}

	case core.FormatOverlap:
		return domain.VFormatOverlap{
			Labels:  n.Labels,
			Formats: domain.Telescope{Env: env, Terms: n.Formats},
		}

	case core.Prim:
		return domain.VStuck{Head: domain.PrimHead(n.Name)}

	case core.ConstLit:
		return domain.VConstLit{Value: n.Value}

	case core.ConstMatch:
		scrutinee := e.Eval(env, n.Scrutinee)
		branches := make([]domain.ConstBranchVal, len(n.Branches))
		for i, b := range n.Branches {
			branches[i] = domain.ConstBranchVal{Pattern: b.Pattern, Body: b.Body}
		}
		return e.MatchConst(env, scrutinee, branches, n.Default)

	default:
		return domain.VError{}
	}
}

// EvalTelescopeStep evaluates the i-th entry of a telescope given the
// values already produced for entries 0..i-1, by extending the
// telescope's captured environment with prevValues in order. This is
// how RecordType field i's type (or FormatRecord field i's format) gets
// to refer to fields 0..i-1 as rigid variables (spec.md §3 invariant).
func (e *Evaluator) EvalTelescopeStep(tel domain.Telescope, i int, prevValues []domain.Value) domain.Value {
	env := tel.Env
	for _, v := range prevValues {
		env = env.Extend(v)
	}
	return e.Eval(env, tel.Terms[i])
}
