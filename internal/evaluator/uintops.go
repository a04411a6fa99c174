package evaluator

import (
	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
)

// reduceUIntPrim dispatches the U8/U16/U32/U64 arithmetic, comparison
// and bitwise primitives (spec.md §3, §4.1). Each width shares the same
// rule shape; they're kept as separate blocks (rather than a generic
// helper over a Const union) because each width also has to rebuild a
// differently-kinded core.Const on the way out.
func reduceUIntPrim(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	switch {
	case prim >= core.U8Eq && prim <= core.U8Xor:
		return reduceU8(prim, args)
	case prim >= core.U16Eq && prim <= core.U16Xor:
		return reduceU16(prim, args)
	case prim >= core.U32Eq && prim <= core.U32Xor:
		return reduceU32(prim, args)
	case prim >= core.U64Eq && prim <= core.U64Xor:
		return reduceU64(prim, args)
	default:
		return nil, false
	}
}

func constU8(v domain.Value) (uint8, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindU8 {
		return 0, false
	}
	return c.Value.U8, true
}

func reduceU8(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	if prim == core.U8Not {
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constU8(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.U8Const(^a, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constU8(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constU8(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.U8Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.U8Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.U8Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.U8Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.U8Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.U8Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.U8Add:
		return domain.VConstLit{Value: core.U8Const(a+b, core.Decimal)}, true
	case core.U8Sub:
		return domain.VConstLit{Value: core.U8Const(a-b, core.Decimal)}, true
	case core.U8Mul:
		return domain.VConstLit{Value: core.U8Const(a*b, core.Decimal)}, true
	case core.U8Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.U8Const(a/b, core.Decimal)}, true
	case core.U8Shl:
		return domain.VConstLit{Value: core.U8Const(a<<(b%8), core.Decimal)}, true
	case core.U8Shr:
		return domain.VConstLit{Value: core.U8Const(a>>(b%8), core.Decimal)}, true
	case core.U8And:
		return domain.VConstLit{Value: core.U8Const(a&b, core.Decimal)}, true
	case core.U8Or:
		return domain.VConstLit{Value: core.U8Const(a|b, core.Decimal)}, true
	case core.U8Xor:
		return domain.VConstLit{Value: core.U8Const(a^b, core.Decimal)}, true
	default:
		return nil, false
	}
}

func constU16(v domain.Value) (uint16, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindU16 {
		return 0, false
	}
	return c.Value.U16, true
}

func reduceU16(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	if prim == core.U16Not {
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constU16(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.U16Const(^a, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constU16(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constU16(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.U16Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.U16Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.U16Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.U16Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.U16Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.U16Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.U16Add:
		return domain.VConstLit{Value: core.U16Const(a+b, core.Decimal)}, true
	case core.U16Sub:
		return domain.VConstLit{Value: core.U16Const(a-b, core.Decimal)}, true
	case core.U16Mul:
		return domain.VConstLit{Value: core.U16Const(a*b, core.Decimal)}, true
	case core.U16Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.U16Const(a/b, core.Decimal)}, true
	case core.U16Shl:
		return domain.VConstLit{Value: core.U16Const(a<<(b%16), core.Decimal)}, true
	case core.U16Shr:
		return domain.VConstLit{Value: core.U16Const(a>>(b%16), core.Decimal)}, true
	case core.U16And:
		return domain.VConstLit{Value: core.U16Const(a&b, core.Decimal)}, true
	case core.U16Or:
		return domain.VConstLit{Value: core.U16Const(a|b, core.Decimal)}, true
	case core.U16Xor:
		return domain.VConstLit{Value: core.U16Const(a^b, core.Decimal)}, true
	default:
		return nil, false
	}
}

func constU32(v domain.Value) (uint32, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindU32 {
		return 0, false
	}
	return c.Value.U32, true
}

func reduceU32(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	if prim == core.U32Not {
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constU32(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.U32Const(^a, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constU32(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constU32(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.U32Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.U32Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.U32Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.U32Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.U32Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.U32Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.U32Add:
		return domain.VConstLit{Value: core.U32Const(a+b, core.Decimal)}, true
	case core.U32Sub:
		return domain.VConstLit{Value: core.U32Const(a-b, core.Decimal)}, true
	case core.U32Mul:
		return domain.VConstLit{Value: core.U32Const(a*b, core.Decimal)}, true
	case core.U32Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.U32Const(a/b, core.Decimal)}, true
	case core.U32Shl:
		return domain.VConstLit{Value: core.U32Const(a<<(b%32), core.Decimal)}, true
	case core.U32Shr:
		return domain.VConstLit{Value: core.U32Const(a>>(b%32), core.Decimal)}, true
	case core.U32And:
		return domain.VConstLit{Value: core.U32Const(a&b, core.Decimal)}, true
	case core.U32Or:
		return domain.VConstLit{Value: core.U32Const(a|b, core.Decimal)}, true
	case core.U32Xor:
		return domain.VConstLit{Value: core.U32Const(a^b, core.Decimal)}, true
	default:
		return nil, false
	}
}

func constU64(v domain.Value) (uint64, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindU64 {
		return 0, false
	}
	return c.Value.U64, true
}

func reduceU64(prim core.PrimName, args []domain.Value) (domain.Value, bool) {
	if prim == core.U64Not {
		if len(args) != 1 {
			return nil, false
		}
		a, ok := constU64(args[0])
		if !ok {
			return nil, false
		}
		return domain.VConstLit{Value: core.U64Const(^a, core.Decimal)}, true
	}
	if len(args) != 2 {
		return nil, false
	}
	a, ok := constU64(args[0])
	if !ok {
		return nil, false
	}
	b, ok := constU64(args[1])
	if !ok {
		return nil, false
	}
	switch prim {
	case core.U64Eq:
		return domain.VConstLit{Value: core.BoolConst(a == b)}, true
	case core.U64Neq:
		return domain.VConstLit{Value: core.BoolConst(a != b)}, true
	case core.U64Gt:
		return domain.VConstLit{Value: core.BoolConst(a > b)}, true
	case core.U64Lt:
		return domain.VConstLit{Value: core.BoolConst(a < b)}, true
	case core.U64Gte:
		return domain.VConstLit{Value: core.BoolConst(a >= b)}, true
	case core.U64Lte:
		return domain.VConstLit{Value: core.BoolConst(a <= b)}, true
	case core.U64Add:
		return domain.VConstLit{Value: core.U64Const(a+b, core.Decimal)}, true
	case core.U64Sub:
		return domain.VConstLit{Value: core.U64Const(a-b, core.Decimal)}, true
	case core.U64Mul:
		return domain.VConstLit{Value: core.U64Const(a*b, core.Decimal)}, true
	case core.U64Div:
		if b == 0 {
			return nil, false
		}
		return domain.VConstLit{Value: core.U64Const(a/b, core.Decimal)}, true
	case core.U64Shl:
		return domain.VConstLit{Value: core.U64Const(a<<(b%64), core.Decimal)}, true
	case core.U64Shr:
		return domain.VConstLit{Value: core.U64Const(a>>(b%64), core.Decimal)}, true
	case core.U64And:
		return domain.VConstLit{Value: core.U64Const(a&b, core.Decimal)}, true
	case core.U64Or:
		return domain.VConstLit{Value: core.U64Const(a|b, core.Decimal)}, true
	case core.U64Xor:
		return domain.VConstLit{Value: core.U64Const(a^b, core.Decimal)}, true
	default:
		return nil, false
	}
}
