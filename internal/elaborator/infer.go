package elaborator

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/surface"
)

// Infer is the synthesis half of bidirectional elaboration (spec.md
// §4.3): it produces both a core term and the type value it inferred,
// without any outside pressure on what that type should be.
func (c *Context) Infer(t surface.Term) (core.Term, domain.Value) {
	switch n := t.(type) {
	case surface.Name:
		level, entry, ok := c.Lookup(n.Ident)
		if ok {
			return core.RigidVar{Index: c.indexOf(level)}, entry.Type
		}
		if sym, ok := c.Symbols.Lookup(n.Ident); ok {
			return sym.Defn, sym.TypeVal
		}
		if prim, ok := core.LookupPrim(n.Ident); ok {
			return core.Prim{Name: prim}, c.typeOfPrim(prim)
		}
		return c.reportError(n.Span(), diagnostics.CodeUnboundName,
			fmt.Sprintf("unbound name %q", n.Ident))

	case surface.Hole:
		_, tyVal := c.FreshMeta(domain.VUniverse{}, "?ty")
		valID, _ := c.FreshMeta(tyVal, "?")
		return core.FlexibleVar{Meta: valID}, tyVal

	case surface.Ann:
		typeCore := c.Check(n.Type, domain.VUniverse{})
		typeVal := c.Eval.Eval(c.Values, typeCore)
		termCore := c.Check(n.Term, typeVal)
		return core.Ann{Term: termCore, Type: typeCore}, typeVal

	case surface.Let:
		return c.inferLet(n)

	case surface.UniverseTerm:
		return core.Universe{}, domain.VUniverse{}

	case surface.FormatTerm:
		return core.Prim{Name: core.FormatType}, domain.VUniverse{}

	case surface.FunType:
		return c.inferFunType(n)

	case surface.FunLit:
		return c.inferFunLit(n)

	case surface.FunApp:
		return c.inferFunApp(n)

	case surface.RecordType:
		return c.inferRecordType(n)

	case surface.RecordLit:
		return c.inferRecordLit(n)

	case surface.RecordProj:
		return c.inferRecordProj(n)

	case surface.ArrayLit:
		return c.inferArrayLit(n)

	case surface.FormatRecord:
		return c.inferFormatTelescope(n.Labels, n.Formats, false)

	case surface.FormatOverlap:
		return c.inferFormatTelescope(n.Labels, n.Formats, true)

	case surface.IntLit:
		// Open question (spec.md §9): whether an integer literal with
		// nothing to constrain its width should default or err is left
		// unresolved by the source. We flag rather than guess: a bare
		// numeral with no expected type is an immediate elaboration
		// error, not a deferred, silently-defaulted meta (see
		// DESIGN.md).
		return c.reportError(n.Span(), diagnostics.CodeUnconstrainedInt,
			"cannot infer a type for this integer literal; write it with an explicit annotation")

	case surface.FloatLit:
		return c.reportError(n.Span(), diagnostics.CodeUnconstrainedInt,
			"cannot infer a type for this float literal; write it with an explicit annotation")

	case surface.BoolLit:
		return core.ConstLit{Value: core.BoolConst(n.Value)}, c.primType(core.BoolType)

	case surface.Match:
		return c.inferMatch(n)

	default:
		return c.reportBug(t.Span(), diagnostics.CodeExpectedType, fmt.Sprintf("unhandled surface term %T", t))
	}
}

func (c *Context) primType(p core.PrimName) domain.Value {
	return domain.VStuck{Head: domain.PrimHead(p)}
}

// typeOfPrim gives the type of a bare primitive identifier resolved by
// name (LookupPrim), distinct from primType above: primType builds the
// *value* a zero-arity type prim denotes, while typeOfPrim answers "what
// type does this name itself have". Type formers live in Type, nullary
// format constructors live in Format, and operators get the ordinary
// function type their arity implies. Array*Find/Option* are left to a
// fresh metavariable since their signatures quantify over an element
// type that a bare primitive name carries no evidence for.
func (c *Context) typeOfPrim(p core.PrimName) domain.Value {
	switch p {
	case core.VoidType, core.BoolType,
		core.U8Type, core.U16Type, core.U32Type, core.U64Type,
		core.S8Type, core.S16Type, core.S32Type, core.S64Type,
		core.F32Type, core.F64Type, core.PosType, core.FormatType:
		return domain.VUniverse{}

	case core.OptionType, core.ArrayType:
		return c.arrow(core.Universe{}, core.Universe{})
	case core.Array8Type:
		return c.arrow(core.Prim{Name: core.U8Type}, core.Universe{}, core.Universe{})
	case core.Array16Type:
		return c.arrow(core.Prim{Name: core.U16Type}, core.Universe{}, core.Universe{})
	case core.Array32Type:
		return c.arrow(core.Prim{Name: core.U32Type}, core.Universe{}, core.Universe{})
	case core.Array64Type:
		return c.arrow(core.Prim{Name: core.U64Type}, core.Universe{}, core.Universe{})
	case core.RefType:
		return c.arrow(core.Prim{Name: core.FormatType}, core.Universe{})

	case core.FormatU8, core.FormatS8,
		core.FormatU16Be, core.FormatU16Le, core.FormatS16Be, core.FormatS16Le,
		core.FormatU32Be, core.FormatU32Le, core.FormatS32Be, core.FormatS32Le, core.FormatF32Be, core.FormatF32Le,
		core.FormatU64Be, core.FormatU64Le, core.FormatS64Be, core.FormatS64Le, core.FormatF64Be, core.FormatF64Le,
		core.FormatStreamPos, core.FormatFail:
		return domain.VStuck{Head: domain.PrimHead(core.FormatType)}

	case core.FormatArray8:
		return c.arrow(core.Prim{Name: core.U8Type}, core.Prim{Name: core.FormatType}, core.Prim{Name: core.FormatType})
	case core.FormatArray16:
		return c.arrow(core.Prim{Name: core.U16Type}, core.Prim{Name: core.FormatType}, core.Prim{Name: core.FormatType})
	case core.FormatArray32:
		return c.arrow(core.Prim{Name: core.U32Type}, core.Prim{Name: core.FormatType}, core.Prim{Name: core.FormatType})
	case core.FormatArray64:
		return c.arrow(core.Prim{Name: core.U64Type}, core.Prim{Name: core.FormatType}, core.Prim{Name: core.FormatType})
	case core.FormatRepeatUntilEnd, core.FormatUnwrap:
		return c.arrow(core.Prim{Name: core.FormatType}, core.Prim{Name: core.FormatType})
	case core.FormatLink, core.FormatDeref:
		return c.arrow(core.Prim{Name: core.PosType}, core.Prim{Name: core.FormatType}, core.Prim{Name: core.FormatType})
	case core.FormatRepr:
		return c.arrow(core.Prim{Name: core.FormatType}, core.Universe{})

	case core.BoolNot:
		return c.arrow(core.Prim{Name: core.BoolType}, core.Prim{Name: core.BoolType})
	case core.BoolEq, core.BoolNeq, core.BoolAnd, core.BoolOr, core.BoolXor:
		return c.arrow(core.Prim{Name: core.BoolType}, core.Prim{Name: core.BoolType}, core.Prim{Name: core.BoolType})

	case core.PosAddU8:
		return c.arrow(core.Prim{Name: core.PosType}, core.Prim{Name: core.U8Type}, core.Prim{Name: core.PosType})
	case core.PosAddU16:
		return c.arrow(core.Prim{Name: core.PosType}, core.Prim{Name: core.U16Type}, core.Prim{Name: core.PosType})
	case core.PosAddU32:
		return c.arrow(core.Prim{Name: core.PosType}, core.Prim{Name: core.U32Type}, core.Prim{Name: core.PosType})
	case core.PosAddU64:
		return c.arrow(core.Prim{Name: core.PosType}, core.Prim{Name: core.U64Type}, core.Prim{Name: core.PosType})
	}

	if ty, ok := c.typeOfUIntPrim(p); ok {
		return ty
	}
	if ty, ok := c.typeOfSIntPrim(p); ok {
		return ty
	}

	_, ty := c.FreshMeta(domain.VUniverse{}, "?prim")
	return ty
}

// arrow evaluates a chain of non-dependent function types ending in the
// last argument's result, e.g. arrow(U8, U8, Bool) is U8 -> U8 -> Bool.
// None of the codomains reference their bound variable, so an empty
// environment is always enough to evaluate them.
func (c *Context) arrow(terms ...core.Term) domain.Value {
	t := terms[len(terms)-1]
	for i := len(terms) - 2; i >= 0; i-- {
		t = core.FunType{Domain: terms[i], Codomain: t}
	}
	return c.Eval.Eval(nil, t)
}

// typeOfUIntPrim types the U8/U16/U32/U64 comparison and arithmetic
// operators: comparisons return Bool, unary bitwise not keeps the width,
// and the rest are homogeneous binary operators over that width.
func (c *Context) typeOfUIntPrim(p core.PrimName) (domain.Value, bool) {
	widths := []struct {
		lo, hi core.PrimName
		ty     core.PrimName
	}{
		{core.U8Eq, core.U8Xor, core.U8Type},
		{core.U16Eq, core.U16Xor, core.U16Type},
		{core.U32Eq, core.U32Xor, core.U32Type},
		{core.U64Eq, core.U64Xor, core.U64Type},
	}
	for _, w := range widths {
		if p < w.lo || p > w.hi {
			continue
		}
		width := core.Prim{Name: w.ty}
		switch p - w.lo {
		case 0, 1, 2, 3, 4, 5: // eq, neq, gt, lt, gte, lte
			return c.arrow(width, width, core.Prim{Name: core.BoolType}), true
		case 10: // not
			return c.arrow(width, width), true
		default: // add, sub, mul, div, shl, shr, and, or, xor
			return c.arrow(width, width, width), true
		}
	}
	return nil, false
}

// typeOfSIntPrim types the S8/S16/S32/S64 operators the same way, plus
// neg/abs (width -> width) and unsigned_abs, which crosses into the
// matching unsigned width.
func (c *Context) typeOfSIntPrim(p core.PrimName) (domain.Value, bool) {
	widths := []struct {
		lo, hi, ty, uty core.PrimName
	}{
		{core.S8Eq, core.S8UAbs, core.S8Type, core.U8Type},
		{core.S16Eq, core.S16UAbs, core.S16Type, core.U16Type},
		{core.S32Eq, core.S32UAbs, core.S32Type, core.U32Type},
		{core.S64Eq, core.S64UAbs, core.S64Type, core.U64Type},
	}
	for _, w := range widths {
		if p < w.lo || p > w.hi {
			continue
		}
		width := core.Prim{Name: w.ty}
		switch p - w.lo {
		case 0, 1, 2, 3, 4, 5: // eq, neq, gt, lt, gte, lte
			return c.arrow(width, width, core.Prim{Name: core.BoolType}), true
		case 6, 11: // neg, abs
			return c.arrow(width, width), true
		case 12: // unsigned_abs
			return c.arrow(width, core.Prim{Name: w.uty}), true
		default: // add, sub, mul, div
			return c.arrow(width, width, width), true
		}
	}
	return nil, false
}

func (c *Context) inferLet(n surface.Let) (core.Term, domain.Value) {
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
	bodyCore, bodyTyVal := c.Infer(n.Body)
	c.PopTo(level)

	name := n.Name
	return core.Let{Name: &name, Type: typeCore, Defn: defnCore, Body: bodyCore}, bodyTyVal
}

func (c *Context) inferFunType(n surface.FunType) (core.Term, domain.Value) {
	domCore := c.Check(n.Domain, domain.VUniverse{})
	domVal := c.Eval.Eval(c.Values, domCore)

	level := c.Len()
	c.PushParam(n.Name, domVal)
	codCore := c.Check(n.Codomain, domain.VUniverse{})
	c.PopTo(level)

	var namePtr *string
	if n.Name != "" {
		namePtr = &n.Name
	}
	return core.FunType{Name: namePtr, Domain: domCore, Codomain: codCore}, domain.VUniverse{}
}

func (c *Context) inferFunLit(n surface.FunLit) (core.Term, domain.Value) {
	_, domVal := c.FreshMeta(domain.VUniverse{}, n.Name+"-dom")

	level := c.Len()
	envBefore := c.Values
	c.PushParam(n.Name, domVal)
	bodyCore, bodyTyVal := c.Infer(n.Body)
	codCore := c.Eval.Quote(level+1, bodyTyVal)
	c.PopTo(level)

	var namePtr *string
	if n.Name != "" {
		namePtr = &n.Name
	}
	funTy := domain.VFunType{Name: namePtr, Domain: domVal, Codomain: domain.Closure{Env: envBefore, Body: codCore}}
	return core.FunLit{Name: namePtr, Body: bodyCore}, funTy
}

func (c *Context) inferFunApp(n surface.FunApp) (core.Term, domain.Value) {
	headCore, headTyVal := c.Infer(n.Head)
	if isReportedError(headTyVal) {
		return headCore, headTyVal
	}
	forced := c.Eval.Force(headTyVal)
	funTy, ok := forced.(domain.VFunType)
	if !ok {
		return c.reportError(n.Span(), diagnostics.CodeTypeMismatch,
			fmt.Sprintf("applied a value of non-function type %s", describeType(c, headTyVal)))
	}
	argCore := c.Check(n.Arg, funTy.Domain)
	argVal := c.Eval.Eval(c.Values, argCore)
	codVal := c.Eval.Eval(funTy.Codomain.Env.Extend(argVal), funTy.Codomain.Body)
	return core.FunApp{Head: headCore, Arg: argCore}, codVal
}

func (c *Context) inferRecordType(n surface.RecordType) (core.Term, domain.Value) {
	types := make([]core.Term, len(n.Labels))
	level := c.Len()
	for i, fieldTy := range n.Types {
		types[i] = c.Check(fieldTy, domain.VUniverse{})
		fieldVal := c.Eval.Eval(c.Values, types[i])
		c.PushParam(n.Labels[i], fieldVal)
	}
	c.PopTo(level)
	return core.RecordType{Labels: n.Labels, Types: types}, domain.VUniverse{}
}

func (c *Context) inferRecordLit(n surface.RecordLit) (core.Term, domain.Value) {
	exprs := make([]core.Term, len(n.Labels))
	types := make([]domain.Value, len(n.Labels))
	level := c.Len()
	for i, e := range n.Exprs {
		var ty domain.Value
		exprs[i], ty = c.Infer(e)
		types[i] = ty
		c.PushParam(n.Labels[i], ty)
	}
	c.PopTo(level)

	typeTerms := make([]core.Term, len(n.Labels))
	for i, ty := range types {
		typeTerms[i] = c.Eval.Quote(level+i, ty)
	}
	resultTy := domain.VRecordType{Labels: n.Labels, Types: domain.Telescope{Env: c.Values, Terms: typeTerms}}
	return core.RecordLit{Labels: n.Labels, Exprs: exprs}, resultTy
}

func (c *Context) inferRecordProj(n surface.RecordProj) (core.Term, domain.Value) {
	headCore, headTyVal := c.Infer(n.Head)
	if isReportedError(headTyVal) {
		return headCore, headTyVal
	}
	forced := c.Eval.Force(headTyVal)
	recTy, ok := forced.(domain.VRecordType)
	if !ok {
		return c.reportError(n.Span(), diagnostics.CodeTypeMismatch,
			fmt.Sprintf("projected a field from a non-record value of type %s", describeType(c, headTyVal)))
	}
	idx := core.IndexOfLabel(recTy.Labels, n.Label)
	if idx < 0 {
		return c.reportError(n.Span(), diagnostics.CodeTypeMismatch,
			fmt.Sprintf("no field %q in this record type", n.Label))
	}
	headVal := c.Eval.Eval(c.Values, headCore)
	prev := make([]domain.Value, idx)
	for j := 0; j < idx; j++ {
		prev[j] = c.Eval.Project(headVal, recTy.Labels[j])
	}
	fieldTy := c.Eval.EvalTelescopeStep(recTy.Types, idx, prev)
	return core.RecordProj{Head: headCore, Label: n.Label}, fieldTy
}

func (c *Context) inferArrayLit(n surface.ArrayLit) (core.Term, domain.Value) {
	if len(n.Exprs) == 0 {
		_, elemTyVal := c.FreshMeta(domain.VUniverse{}, "?elem")
		return core.ArrayLit{}, c.Eval.Apply(c.primType(core.ArrayType), elemTyVal)
	}
	exprs := make([]core.Term, len(n.Exprs))
	var elemTyVal domain.Value
	exprs[0], elemTyVal = c.Infer(n.Exprs[0])
	for i := 1; i < len(n.Exprs); i++ {
		exprs[i] = c.Check(n.Exprs[i], elemTyVal)
	}
	return core.ArrayLit{Exprs: exprs}, c.Eval.Apply(c.primType(core.ArrayType), elemTyVal)
}
