package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// reduceSIntPrim dispatches the S8/S16/S32/S64 arithmetic and comparison
// primitives (spec.md §3, §4.1). unsigned_abs reduces to the matching
// unsigned-width constant, since its whole purpose is converting across
// the signed/unsigned boundary.
func reduceSIntPrim(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	switch {
	case prim >= core.S8Eq && prim <= core.S8UAbs:
		return reduceS8(prim, args)
	case prim >= core.S16Eq && prim <= core.S16UAbs:
		return reduceS16(prim, args)
	case prim >= core.S32Eq && prim <= core.S32UAbs:
		return reduceS32(prim, args)
	case prim >= core.S64Eq && prim <= core.S64UAbs:
		return reduceS64(prim, args)
	default:
		return nil, false
	}
}

func constS8(v domain.Value) (int8, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindS8 {
		return 0, false
	}
	return c.Value.S8, true
}

func reduceS8(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	switch prim {
	case core.S8Neg:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS8(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.S8Const(-a)}, true
	case core.S8Abs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS8(args[0])
		if !ok {
			return nil, false
		}
		if a < 0 {
			a = -a
		}
		return domain.VConstLit{Value: core.S8Const(a)}, true
	case core.S8UAbs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS8(args[0])
		if !ok {
			return nil, false
		}
		var u uint8
		if a < 0 {
			u = uint8(-int16(a))
		} else {
			u = uint8(a)
		}
		return domain.VConstLit{Value: core.U8Const(u, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constS8(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constS8(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.S8Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.S8Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.S8Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.S8Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.S8Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.S8Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.S8Add:
		return domain.VConstLit{Value: core.S8Const(a + b)}, true
	case core.S8Sub:
		return domain.VConstLit{Value: core.S8Const(a - b)}, true
	case core.S8Mul:
		return domain.VConstLit{Value: core.S8Const(a * b)}, true
	case core.S8Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.S8Const(a / b)}, true
	default:
		return nil, false
	}
}

func constS16(v domain.Value) (int16, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindS16 {
		return 0, false
	}
	return c.Value.S16, true
}

func reduceS16(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	switch prim {
	case core.S16Neg:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS16(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.S16Const(-a)}, true
	case core.S16Abs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS16(args[0])
		if !ok {
			return nil, false
		}
		if a < 0 {
			a = -a
		}
		return domain.VConstLit{Value: core.S16Const(a)}, true
	case core.S16UAbs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS16(args[0])
		if !ok {
			return nil, false
		}
		var u uint16
		if a < 0 {
			u = uint16(-int32(a))
		} else {
			u = uint16(a)
		}
		return domain.VConstLit{Value: core.U16Const(u, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constS16(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constS16(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.S16Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.S16Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.S16Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.S16Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.S16Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.S16Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.S16Add:
		return domain.VConstLit{Value: core.S16Const(a + b)}, true
	case core.S16Sub:
		return domain.VConstLit{Value: core.S16Const(a - b)}, true
	case core.S16Mul:
		return domain.VConstLit{Value: core.S16Const(a * b)}, true
	case core.S16Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.S16Const(a / b)}, true
	default:
		return nil, false
	}
}

func constS32(v domain.Value) (int32, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindS32 {
		return 0, false
	}
	return c.Value.S32, true
}

func reduceS32(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	switch prim {
	case core.S32Neg:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS32(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.S32Const(-a)}, true
	case core.S32Abs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS32(args[0])
		if !ok {
			return nil, false
		}
		if a < 0 {
			a = -a
		}
		return domain.VConstLit{Value: core.S32Const(a)}, true
	case core.S32UAbs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS32(args[0])
		if !ok {
			return nil, false
		}
		var u uint32
		if a < 0 {
			u = uint32(-int64(a))
		} else {
			u = uint32(a)
		}
		return domain.VConstLit{Value: core.U32Const(u, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constS32(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constS32(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.S32Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.S32Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.S32Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.S32Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.S32Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.S32Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.S32Add:
		return domain.VConstLit{Value: core.S32Const(a + b)}, true
	case core.S32Sub:
		return domain.VConstLit{Value: core.S32Const(a - b)}, true
	case core.S32Mul:
		return domain.VConstLit{Value: core.S32Const(a * b)}, true
	case core.S32Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.S32Const(a / b)}, true
	default:
		return nil, false
	}
}

func constS64(v domain.Value) (int64, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindS64 {
		return 0, false
	}
	return c.Value.S64, true
}

func reduceS64(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	switch prim {
	case core.S64Neg:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS64(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.S64Const(-a)}, true
	case core.S64Abs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS64(args[0])
		if !ok {
			return nil, false
		}
		if a < 0 {
			a = -a
		}
		return domain.VConstLit{Value: core.S64Const(a)}, true
	case core.S64UAbs:
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constS64(args[0])
		if !ok {
			return nil, false
		}
		var u uint64
		if a < 0 {
			u = uint64(-a)
		} else {
			u = uint64(a)
		}
		return domain.VConstLit{Value: core.U64Const(u, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constS64(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constS64(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.S64Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.S64Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.S64Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.S64Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.S64Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.S64Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.S64Add:
		return domain.VConstLit{Value: core.S64Const(a + b)}, true
	case core.S64Sub:
		return domain.VConstLit{Value: core.S64Const(a - b)}, true
	case core.S64Mul:
		return domain.VConstLit{Value: core.S64Const(a * b)}, true
	case core.S64Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.S64Const(a / b)}, true
	default:
		return nil, false
	}
}
