package elaborator

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/surface"
	"github.com/fathomlang/fathom/internal/unify"
)

// Check is the analysis half of bidirectional elaboration (spec.md
// §4.3): given an expected type value, it either applies a specialised
// rule (lambdas against function types, literals against their
// primitive types) or falls back to inferring and unifying.
func (c *Context) Check(t surface.Term, expected domain.Value) core.Term {
	switch n := t.(type) {
	case surface.FunLit:
		forced := c.Eval.Force(expected)
		funTy, ok := forced.(domain.VFunType)
		if !ok {
			term, _ := c.reportError(n.Span(), diagnostics.CodeTypeMismatch,
				fmt.Sprintf("this function literal was used where a value of type %s was expected", describeType(c, expected)))
			return term
		}
		level := c.Len()
		c.PushParam(n.Name, funTy.Domain)
		argVal := domain.Rigid(level)
		codVal := c.Eval.Eval(funTy.Codomain.Env.Extend(argVal), funTy.Codomain.Body)
		bodyCore := c.Check(n.Body, codVal)
		c.PopTo(level)
		var namePtr *string
		if n.Name != "" {
			namePtr = &n.Name
		}
		return core.FunLit{Name: namePtr, Body: bodyCore}

	case surface.Hole:
		_, v := c.FreshMeta(expected, "?")
		return c.Eval.Quote(c.Len(), v)

	case surface.IntLit:
		return c.checkIntLit(n, expected)

	case surface.FloatLit:
		return c.checkFloatLit(n, expected)

	case surface.Let:
		return c.checkLet(n, expected)

	case surface.Match:
		return c.checkMatch(n, expected)

	case surface.RecordLit:
		if forced, ok := c.Eval.Force(expected).(domain.VRecordType); ok {
			return c.checkRecordLit(n, forced)
		}
	}

	core_, inferredTy := c.Infer(t)
	if isReportedError(inferredTy) {
		return core_
	}

	core_, inferredTy = c.insertImplicits(core_, inferredTy, expected)

	if err := c.Uni.Unify(c.Len(), inferredTy, expected); err != nil {
		code := diagnostics.CodeTypeMismatch
		if uerr, ok := err.(*unify.Error); ok {
			code = unifyErrorCode(uerr)
		}
		core_, _ = c.reportError(t.Span(), code,
			fmt.Sprintf("type mismatch: expected %s, found %s (%s)",
				describeType(c, expected), describeType(c, inferredTy), err.Error()))
	}
	return core_
}

// insertImplicits auto-applies a function-typed term to fresh
// FlexibleInsertion metas until its result type is no longer a function
// type, when the expected type itself isn't one either (spec.md §4.3,
// "Metavariable insertion"). When the expected type is a function type
// the term and its type are returned unchanged.
func (c *Context) insertImplicits(term core.Term, inferredTy, expected domain.Value) (core.Term, domain.Value) {
	if _, expectedIsFun := c.Eval.Force(expected).(domain.VFunType); expectedIsFun {
		return term, inferredTy
	}
	for {
		forced := c.Eval.Force(inferredTy)
		funTy, ok := forced.(domain.VFunType)
		if !ok {
			return term, inferredTy
		}
		argTerm, argVal := c.FreshInsertion(funTy.Domain, core.Name(funTy.Name))
		term = core.FunApp{Head: term, Arg: argTerm}
		inferredTy = c.Eval.Eval(funTy.Codomain.Env.Extend(argVal), funTy.Codomain.Body)
	}
}

func (c *Context) checkLet(n surface.Let, expected domain.Value) core.Term {
	var defnCore core.Term
	var defnTyVal domain.Value
	var typeCore core.Term

	if n.Type != nil {
		typeCore = c.Check(n.Type, domain.VUniverse{})
		defnTyVal = c.Eval.Eval(c.Values, typeCore)
		defnCore = c.Check(n.Defn, defnTyVal)
	} else {
		defnCore, defnTyVal = c.Infer(n.Defn)
		typeCore = c.Eval.Quote(c.Len(), defnTyVal)
	}

	defnVal := c.Eval.Eval(c.Values, defnCore)
	level := c.Len()
	c.PushDefinition(n.Name, defnTyVal, defnVal)
	bodyCore := c.Check(n.Body, expected)
	c.PopTo(level)

	name := n.Name
	return core.Let{Name: &name, Type: typeCore, Defn: defnCore, Body: bodyCore}
}

func (c *Context) checkRecordLit(n surface.RecordLit, expected domain.VRecordType) core.Term {
	if len(n.Labels) != len(expected.Labels) {
		term, _ := c.reportError(n.Span(), diagnostics.CodeTypeMismatch,
			fmt.Sprintf("record literal has %d fields, expected %d", len(n.Labels), len(expected.Labels)))
		return term
	}
	exprs := make([]core.Term, len(n.Labels))
	level := c.Len()
	prevValues := make([]domain.Value, 0, len(n.Labels))
	for i, label := range n.Labels {
		if label != expected.Labels[i] {
			term, _ := c.reportError(n.Span(), diagnostics.CodeTypeMismatch,
				fmt.Sprintf("field %d is named %q, expected %q", i, label, expected.Labels[i]))
			return term
		}
		fieldTy := c.Eval.EvalTelescopeStep(expected.Types, i, prevValues)
		exprs[i] = c.Check(n.Exprs[i], fieldTy)
		fieldVal := c.Eval.Eval(c.Values, exprs[i])
		prevValues = append(prevValues, fieldVal)
		c.PushParam(label, fieldTy)
	}
	c.PopTo(level)
	return core.RecordLit{Labels: n.Labels, Exprs: exprs}
}

// unifyErrorCode maps a unifier failure to the closest diagnostic code.
func unifyErrorCode(err *unify.Error) diagnostics.Code {
	switch err.Kind {
	case unify.Occurs:
		return diagnostics.CodeAmbiguousMeta
	case unify.Escape:
		return diagnostics.CodeAmbiguousMeta
	case unify.NotAPattern:
		return diagnostics.CodeAmbiguousMeta
	default:
		return diagnostics.CodeTypeMismatch
	}
}
