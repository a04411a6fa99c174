package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// reducePrim attempts to fire a primitive's reduction rule once its
// spine holds enough concrete arguments (spec.md §4.1). It returns
// ok=false when the primitive isn't saturated yet, when an argument
// isn't concrete enough to reduce (left stuck, e.g. division by a
// non-constant), or when the primitive has no closed-form reduction at
// all (Array*Find — spec.md §4.1, open question in §9).
func (e *Evaluator) reducePrim(prim core.PrimName, spine []domain.Elim) (domain.Value, bool) {
	args, ok := appArgs(spine)
	if !ok {
		return nil, false
	}

	switch prim {
	case core.FormatRepr:
		if len(args) != 1 {
			return nil, false
		}
		return e.reduceRepr(args[0])

	case core.OptionFold:
		if len(args) != 3 {
			return nil, false
		}
		return e.reduceOptionFold(args[0], args[1], args[2])

	case core.PosAddU8, core.PosAddU16, core.PosAddU32, core.PosAddU64:
		if len(args) != 2 {
			return nil, false
		}
		return reducePosAdd(args[0], args[1])

	case core.BoolNot:
		return e.reduceBoolUnary(args, func(a bool) bool { return !a })
	case core.BoolEq:
		return e.reduceBoolBinary(args, func(a, b bool) bool { return a == b })
	case core.BoolNeq:
		return e.reduceBoolBinary(args, func(a, b bool) bool { return a != b })
	case core.BoolAnd:
		return e.reduceBoolBinary(args, func(a, b bool) bool { return a && b })
	case core.BoolOr:
		return e.reduceBoolBinary(args, func(a, b bool) bool { return a || b })
	case core.BoolXor:
		return e.reduceBoolBinary(args, func(a, b bool) bool { return a != b })
	}

	if v, ok := reduceUIntPrim(prim, args); ok {
		return v, true
	}
	if v, ok := reduceSIntPrim(prim, args); ok {
		return v, true
	}
	return nil, false
}

// appArgs returns the ElimApp arguments of spine, or ok=false if the
// spine contains anything that isn't a plain application (which can't
// be a saturated primitive call).
func appArgs(spine []domain.Elim) ([]domain.Value, bool) {
	args := make([]domain.Value, len(spine))
	for i, el := range spine {
		if el.Kind != domain.ElimApp {
			return nil, false
		}
		args[i] = el.Arg
	}
	return args, true
}

func (e *Evaluator) asConst(v domain.Value) (core.Const, bool) {
	c, ok := e.Force(v).(domain.VConstLit)
	if !ok {
		return core.Const{}, false
	}
	return c.Value, true
}

func (e *Evaluator) reduceBoolUnary(args []domain.Value, op func(bool) bool) (domain.Value, bool) {
	if len(args) != 1 {
		return nil, false
	}
	c, ok := e.asConst(args[0])
	if !ok || c.Kind != core.KindBool {
		return nil, false
	}
	return domain.VConstLit{Value: core.BoolConst(op(c.Bool))}, true
}

func (e *Evaluator) reduceBoolBinary(args []domain.Value, op func(a, b bool) bool) (domain.Value, bool) {
	if len(args) != 2 {
		return nil, false
	}
	a, ok := e.asConst(args[0])
	if !ok || a.Kind != core.KindBool {
		return nil, false
	}
	b, ok := e.asConst(args[1])
	if !ok || b.Kind != core.KindBool {
		return nil, false
	}
	return domain.VConstLit{Value: core.BoolConst(op(a.Bool, b.Bool))}, true
}

// --- Repr ---------------------------------------------------------------

// reduceRepr implements Repr(F)'s structural reduction over format
// primitives (spec.md §4.1).
func (e *Evaluator) reduceRepr(f domain.Value) (domain.Value, bool) {
	forced := e.Force(f)

	if rec, ok := forced.(domain.VFormatRecord); ok {
		return e.reprOfTelescope(rec.Labels, rec.Formats), true
	}
	if ov, ok := forced.(domain.VFormatOverlap); ok {
		return e.reprOfTelescope(ov.Labels, ov.Formats), true
	}

	stuck, ok := forced.(domain.VStuck)
	if !ok || stuck.Head.Kind != domain.HeadPrim {
		return nil, false
	}

	args, ok := appArgs(stuck.Spine)
	if !ok {
		return nil, false
	}

	switch stuck.Head.Prim {
	case core.FormatU8, core.FormatS8:
		return typeOf(widthType(stuck.Head.Prim)), true
	case core.FormatU16Be, core.FormatU16Le, core.FormatS16Be, core.FormatS16Le:
		return typeOf(widthType(stuck.Head.Prim)), true
	case core.FormatU32Be, core.FormatU32Le, core.FormatS32Be, core.FormatS32Le, core.FormatF32Be, core.FormatF32Le:
		return typeOf(widthType(stuck.Head.Prim)), true
	case core.FormatU64Be, core.FormatU64Le, core.FormatS64Be, core.FormatS64Le, core.FormatF64Be, core.FormatF64Le:
		return typeOf(widthType(stuck.Head.Prim)), true

	case core.FormatArray8, core.FormatArray16, core.FormatArray32, core.FormatArray64:
		if len(args) != 2 {
			return nil, false
		}
		elemRepr, ok := e.reduceRepr(args[1])
		if !ok {
			elemRepr = e.Apply(typeOf(core.FormatRepr), args[1])
		}
		return e.Apply(e.Apply(typeOf(arrayKindOf(stuck.Head.Prim)), args[0]), elemRepr), true

	case core.FormatRepeatUntilEnd:
		if len(args) != 1 {
			return nil, false
		}
		elemRepr, ok := e.reduceRepr(args[0])
		if !ok {
			elemRepr = e.Apply(typeOf(core.FormatRepr), args[0])
		}
		return e.Apply(typeOf(core.ArrayType), elemRepr), true

	case core.FormatStreamPos:
		return typeOf(core.PosType), true

	case core.FormatLink:
		if len(args) != 2 {
			return nil, false
		}
		elemRepr, ok := e.reduceRepr(args[1])
		if !ok {
			elemRepr = e.Apply(typeOf(core.FormatRepr), args[1])
		}
		return e.Apply(typeOf(core.RefType), elemRepr), true

	case core.FormatSucceed:
		if len(args) != 2 {
			return nil, false
		}
		return args[0], true

	case core.FormatFail:
		if len(args) != 1 {
			return nil, false
		}
		return args[0], true

	default:
		return nil, false
	}
}

func (e *Evaluator) reprOfTelescope(labels []string, tel domain.Telescope) domain.Value {
	types := make([]core.Term, len(tel.Terms))
	for i, t := range tel.Terms {
		types[i] = core.FunApp{Head: core.Prim{Name: core.FormatRepr}, Arg: t}
	}
	return domain.VRecordType{Labels: labels, Types: domain.Telescope{Env: tel.Env, Terms: types}}
}

func typeOf(p core.PrimName) domain.Value {
	return domain.VStuck{Head: domain.PrimHead(p)}
}

func widthType(format core.PrimName) core.PrimName {
	switch format {
	case core.FormatU8:
		return core.U8Type
	case core.FormatU16Be, core.FormatU16Le:
		return core.U16Type
	case core.FormatU32Be, core.FormatU32Le:
		return core.U32Type
	case core.FormatU64Be, core.FormatU64Le:
		return core.U64Type
	case core.FormatS8:
		return core.S8Type
	case core.FormatS16Be, core.FormatS16Le:
		return core.S16Type
	case core.FormatS32Be, core.FormatS32Le:
		return core.S32Type
	case core.FormatS64Be, core.FormatS64Le:
		return core.S64Type
	case core.FormatF32Be, core.FormatF32Le:
		return core.F32Type
	case core.FormatF64Be, core.FormatF64Le:
		return core.F64Type
	default:
		return core.VoidType
	}
}

func arrayKindOf(format core.PrimName) core.PrimName {
	switch format {
	case core.FormatArray8:
		return core.Array8Type
	case core.FormatArray16:
		return core.Array16Type
	case core.FormatArray32:
		return core.Array32Type
	default:
		return core.Array64Type
	}
}

// --- Option ---------------------------------------------------------------

// reduceOptionFold implements option_fold(opt, onNone, onSome): applies
// onSome to the wrapped value when opt is `some x`, returns onNone when
// opt is `none`, otherwise stays stuck.
func (e *Evaluator) reduceOptionFold(opt, onNone, onSome domain.Value) (domain.Value, bool) {
	stuck, ok := e.Force(opt).(domain.VStuck)
	if !ok || stuck.Head.Kind != domain.HeadPrim {
		return nil, false
	}
	switch stuck.Head.Prim {
	case core.OptionSome:
		args, ok := appArgs(stuck.Spine)
		if !ok || len(args) != 1 {
			return nil, false
		}
		return e.Apply(onSome, args[0]), true
	case core.OptionNone:
		if len(stuck.Spine) != 0 {
			return nil, false
		}
		return onNone, true
	default:
		return nil, false
	}
}

// --- Position arithmetic ----------------------------------------------------

func reducePosAdd(pos, offset domain.Value) (domain.Value, bool) {
	p, ok := pos.(domain.VConstLit)
	if !ok || p.Value.Kind != core.KindPos {
		return nil, false
	}
	o, ok := offset.(domain.VConstLit)
	if !ok {
		return nil, false
	}
	var delta uint64
	switch o.Value.Kind {
	case core.KindU8:
		delta = uint64(o.Value.U8)
	case core.KindU16:
		delta = uint64(o.Value.U16)
	case core.KindU32:
		delta = uint64(o.Value.U32)
	case core.KindU64:
		delta = o.Value.U64
	default:
		return nil, false
	}
	return domain.VConstLit{Value: core.PosConst(p.Value.Pos + delta)}, true
}
