package core

// PrimName is a closed enumeration of built-in primitives (spec.md §3).
// Names are normative and match fathom/src/core.rs's Prim enum 1:1 so
// that surface identifiers resolve to exactly the primitives the spec
// lists, no more and no fewer.
type PrimName int

const (
	// Type constructors.
	VoidType PrimName = iota
	BoolType
	U8Type
	U16Type
	U32Type
	U64Type
	S8Type
	S16Type
	S32Type
	S64Type
	F32Type
	F64Type
	OptionType
	ArrayType
	Array8Type
	Array16Type
	Array32Type
	Array64Type
	PosType
	RefType
	FormatType

	// Format constructors.
	FormatU8
	FormatU16Be
	FormatU16Le
	FormatU32Be
	FormatU32Le
	FormatU64Be
	FormatU64Le
	FormatS8
	FormatS16Be
	FormatS16Le
	FormatS32Be
	FormatS32Le
	FormatS64Be
	FormatS64Le
	FormatF32Be
	FormatF32Le
	FormatF64Be
	FormatF64Le
	FormatArray8
	FormatArray16
	FormatArray32
	FormatArray64
	FormatRepeatUntilEnd
	FormatStreamPos
	FormatLink
	FormatDeref
	FormatSucceed
	FormatFail
	FormatUnwrap
	FormatRepr

	// Sentinel.
	ReportedError

	// Boolean operations.
	BoolEq
	BoolNeq
	BoolNot
	BoolAnd
	BoolOr
	BoolXor

	// Unsigned integer operations (repeated per width 8/16/32/64).
	U8Eq
	U8Neq
	U8Gt
	U8Lt
	U8Gte
	U8Lte
	U8Add
	U8Sub
	U8Mul
	U8Div
	U8Not
	U8Shl
	U8Shr
	U8And
	U8Or
	U8Xor

	U16Eq
	U16Neq
	U16Gt
	U16Lt
	U16Gte
	U16Lte
	U16Add
	U16Sub
	U16Mul
	U16Div
	U16Not
	U16Shl
	U16Shr
	U16And
	U16Or
	U16Xor

	U32Eq
	U32Neq
	U32Gt
	U32Lt
	U32Gte
	U32Lte
	U32Add
	U32Sub
	U32Mul
	U32Div
	U32Not
	U32Shl
	U32Shr
	U32And
	U32Or
	U32Xor

	U64Eq
	U64Neq
	U64Gt
	U64Lt
	U64Gte
	U64Lte
	U64Add
	U64Sub
	U64Mul
	U64Div
	U64Not
	U64Shl
	U64Shr
	U64And
	U64Or
	U64Xor

	// Signed integer operations (repeated per width 8/16/32/64).
	S8Eq
	S8Neq
	S8Gt
	S8Lt
	S8Gte
	S8Lte
	S8Neg
	S8Add
	S8Sub
	S8Mul
	S8Div
	S8Abs
	S8UAbs

	S16Eq
	S16Neq
	S16Gt
	S16Lt
	S16Gte
	S16Lte
	S16Neg
	S16Add
	S16Sub
	S16Mul
	S16Div
	S16Abs
	S16UAbs

	S32Eq
	S32Neq
	S32Gt
	S32Lt
	S32Gte
	S32Lte
	S32Neg
	S32Add
	S32Sub
	S32Mul
	S32Div
	S32Abs
	S32UAbs

	S64Eq
	S64Neq
	S64Gt
	S64Lt
	S64Gte
	S64Lte
	S64Neg
	S64Add
	S64Sub
	S64Mul
	S64Div
	S64Abs
	S64UAbs

	// Option.
	OptionSome
	OptionNone
	OptionFold

	// Array search (left stuck; see spec.md §4.1).
	Array8Find
	Array16Find
	Array32Find
	Array64Find

	// Position arithmetic.
	PosAddU8
	PosAddU16
	PosAddU32
	PosAddU64
)

var primNames = map[PrimName]string{
	VoidType: "Void", BoolType: "Bool",
	U8Type: "U8", U16Type: "U16", U32Type: "U32", U64Type: "U64",
	S8Type: "S8", S16Type: "S16", S32Type: "S32", S64Type: "S64",
	F32Type: "F32", F64Type: "F64",
	OptionType: "Option", ArrayType: "Array",
	Array8Type: "Array8", Array16Type: "Array16", Array32Type: "Array32", Array64Type: "Array64",
	PosType: "Pos", RefType: "Ref", FormatType: "Format",

	FormatU8: "u8", FormatU16Be: "u16be", FormatU16Le: "u16le",
	FormatU32Be: "u32be", FormatU32Le: "u32le", FormatU64Be: "u64be", FormatU64Le: "u64le",
	FormatS8: "s8", FormatS16Be: "s16be", FormatS16Le: "s16le",
	FormatS32Be: "s32be", FormatS32Le: "s32le", FormatS64Be: "s64be", FormatS64Le: "s64le",
	FormatF32Be: "f32be", FormatF32Le: "f32le", FormatF64Be: "f64be", FormatF64Le: "f64le",
	FormatArray8: "array8", FormatArray16: "array16", FormatArray32: "array32", FormatArray64: "array64",
	FormatRepeatUntilEnd: "repeat_until_end", FormatStreamPos: "stream_pos",
	FormatLink: "link", FormatDeref: "deref",
	FormatSucceed: "succeed", FormatFail: "fail", FormatUnwrap: "unwrap", FormatRepr: "Repr",

	ReportedError: "reported_error",

	BoolEq: "bool_eq", BoolNeq: "bool_neq", BoolNot: "bool_not",
	BoolAnd: "bool_and", BoolOr: "bool_or", BoolXor: "bool_xor",

	U8Eq: "u8_eq", U8Neq: "u8_neq", U8Gt: "u8_gt", U8Lt: "u8_lt", U8Gte: "u8_gte", U8Lte: "u8_lte",
	U8Add: "u8_add", U8Sub: "u8_sub", U8Mul: "u8_mul", U8Div: "u8_div", U8Not: "u8_not",
	U8Shl: "u8_shl", U8Shr: "u8_shr", U8And: "u8_and", U8Or: "u8_or", U8Xor: "u8_xor",

	U16Eq: "u16_eq", U16Neq: "u16_neq", U16Gt: "u16_gt", U16Lt: "u16_lt", U16Gte: "u16_gte", U16Lte: "u16_lte",
	U16Add: "u16_add", U16Sub: "u16_sub", U16Mul: "u16_mul", U16Div: "u16_div", U16Not: "u16_not",
	U16Shl: "u16_shl", U16Shr: "u16_shr", U16And: "u16_and", U16Or: "u16_or", U16Xor: "u16_xor",

	U32Eq: "u32_eq", U32Neq: "u32_neq", U32Gt: "u32_gt", U32Lt: "u32_lt", U32Gte: "u32_gte", U32Lte: "u32_lte",
	U32Add: "u32_add", U32Sub: "u32_sub", U32Mul: "u32_mul", U32Div: "u32_div", U32Not: "u32_not",
	U32Shl: "u32_shl", U32Shr: "u32_shr", U32And: "u32_and", U32Or: "u32_or", U32Xor: "u32_xor",

	U64Eq: "u64_eq", U64Neq: "u64_neq", U64Gt: "u64_gt", U64Lt: "u64_lt", U64Gte: "u64_gte", U64Lte: "u64_lte",
	U64Add: "u64_add", U64Sub: "u64_sub", U64Mul: "u64_mul", U64Div: "u64_div", U64Not: "u64_not",
	U64Shl: "u64_shl", U64Shr: "u64_shr", U64And: "u64_and", U64Or: "u64_or", U64Xor: "u64_xor",

	S8Eq: "s8_eq", S8Neq: "s8_neq", S8Gt: "s8_gt", S8Lt: "s8_lt", S8Gte: "s8_gte", S8Lte: "s8_lte",
	S8Neg: "s8_neg", S8Add: "s8_add", S8Sub: "s8_sub", S8Mul: "s8_mul", S8Div: "s8_div",
	S8Abs: "s8_abs", S8UAbs: "s8_unsigned_abs",

	S16Eq: "s16_eq", S16Neq: "s16_neq", S16Gt: "s16_gt", S16Lt: "s16_lt", S16Gte: "s16_gte", S16Lte: "s16_lte",
	S16Neg: "s16_neg", S16Add: "s16_add", S16Sub: "s16_sub", S16Mul: "s16_mul", S16Div: "s16_div",
	S16Abs: "s16_abs", S16UAbs: "s16_unsigned_abs",

	S32Eq: "s32_eq", S32Neq: "s32_neq", S32Gt: "s32_gt", S32Lt: "s32_lt", S32Gte: "s32_gte", S32Lte: "s32_lte",
	S32Neg: "s32_neg", S32Add: "s32_add", S32Sub: "s32_sub", S32Mul: "s32_mul", S32Div: "s32_div",
	S32Abs: "s32_abs", S32UAbs: "s32_unsigned_abs",

	S64Eq: "s64_eq", S64Neq: "s64_neq", S64Gt: "s64_gt", S64Lt: "s64_lt", S64Gte: "s64_gte", S64Lte: "s64_lte",
	S64Neg: "s64_neg", S64Add: "s64_add", S64Sub: "s64_sub", S64Mul: "s64_mul", S64Div: "s64_div",
	S64Abs: "s64_abs", S64UAbs: "s64_unsigned_abs",

	OptionSome: "some", OptionNone: "none", OptionFold: "option_fold",

	Array8Find: "array8_find", Array16Find: "array16_find",
	Array32Find: "array32_find", Array64Find: "array64_find",

	PosAddU8: "pos_add_u8", PosAddU16: "pos_add_u16",
	PosAddU32: "pos_add_u32", PosAddU64: "pos_add_u64",
}

func (p PrimName) String() string {
	if n, ok := primNames[p]; ok {
		return n
	}
	return "<unknown-prim>"
}

var primsByName map[string]PrimName

func init() {
	primsByName = make(map[string]PrimName, len(primNames))
	for id, name := range primNames {
		primsByName[name] = id
	}
}

// LookupPrim resolves a surface identifier to a primitive, used by the
// elaborator's prelude when a bare name shadows nothing in scope.
func LookupPrim(name string) (PrimName, bool) {
	id, ok := primsByName[name]
	return id, ok
}
