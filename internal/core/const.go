package core

import (
	"fmt"
	"math"
	"strings"
)

// UIntStyle is printing metadata for unsigned integer constants — binary,
// decimal, hexadecimal, or four-character-code — preserved across
// evaluation but semantically irrelevant to equality (spec.md §3, §9).
// Supplemented from the original Rust implementation's UIntStyle (see
// SPEC_FULL.md, "Supplemented features" #1 and #4).
type UIntStyle int

const (
	Decimal UIntStyle = iota
	Binary
	Hexadecimal
	Ascii
)

// MergeUIntStyle implements the merge rule from spec.md §9:
// (decimal, s) -> s, (s, s) -> s, otherwise decimal.
func MergeUIntStyle(left, right UIntStyle) UIntStyle {
	if left == Decimal {
		return right
	}
	if left == right {
		return left
	}
	return Decimal
}

// ConstKind distinguishes the kind of constant a ConstMatch pattern set
// must be uniform over.
type ConstKind int

const (
	KindBool ConstKind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindS8
	KindS16
	KindS32
	KindS64
	KindF32
	KindF64
	KindPos
	KindRef
)

// Const is a boolean/int/float/position/reference literal constant.
// Float equality and formatting follow spec.md §3/§9: bit-pattern
// equality distinguishes -0 from +0 and treats identically-bit-patterned
// NaNs as equal, so that ConstEqual is reflexive.
type Const struct {
	Kind ConstKind

	Bool bool

	U8  uint8
	U16 uint16
	U32 uint32
	U64 uint64

	S8  int8
	S16 int16
	S32 int32
	S64 int64

	F32 float32
	F64 float64

	// Pos/Ref share the u64 representation.
	Pos uint64
	Ref uint64

	// Style is printing metadata for unsigned-int constants; ignored by
	// ConstEqual.
	Style UIntStyle
}

func BoolConst(v bool) Const { return Const{Kind: KindBool, Bool: v} }

func U8Const(v uint8, style UIntStyle) Const  { return Const{Kind: KindU8, U8: v, Style: style} }
func U16Const(v uint16, style UIntStyle) Const { return Const{Kind: KindU16, U16: v, Style: style} }
func U32Const(v uint32, style UIntStyle) Const { return Const{Kind: KindU32, U32: v, Style: style} }
func U64Const(v uint64, style UIntStyle) Const { return Const{Kind: KindU64, U64: v, Style: style} }

func S8Const(v int8) Const   { return Const{Kind: KindS8, S8: v} }
func S16Const(v int16) Const { return Const{Kind: KindS16, S16: v} }
func S32Const(v int32) Const { return Const{Kind: KindS32, S32: v} }
func S64Const(v int64) Const { return Const{Kind: KindS64, S64: v} }

func F32Const(v float32) Const { return Const{Kind: KindF32, F32: v} }
func F64Const(v float64) Const { return Const{Kind: KindF64, F64: v} }

func PosConst(v uint64) Const { return Const{Kind: KindPos, Pos: v} }
func RefConst(v uint64) Const { return Const{Kind: KindRef, Ref: v} }

// ConstEqual is logical equality: it ignores UIntStyle and uses
// bit-pattern equality for floats (spec.md §3, §9).
func ConstEqual(a, b Const) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.Bool == b.Bool
	case KindU8:
		return a.U8 == b.U8
	case KindU16:
		return a.U16 == b.U16
	case KindU32:
		return a.U32 == b.U32
	case KindU64:
		return a.U64 == b.U64
	case KindS8:
		return a.S8 == b.S8
	case KindS16:
		return a.S16 == b.S16
	case KindS32:
		return a.S32 == b.S32
	case KindS64:
		return a.S64 == b.S64
	case KindF32:
		return math.Float32bits(a.F32) == math.Float32bits(b.F32)
	case KindF64:
		return math.Float64bits(a.F64) == math.Float64bits(b.F64)
	case KindPos:
		return a.Pos == b.Pos
	case KindRef:
		return a.Ref == b.Ref
	default:
		return false
	}
}

// String renders a constant using its UIntStyle for unsigned integers,
// and plain decimal for everything else.
func (c Const) String() string {
	switch c.Kind {
	case KindBool:
		return fmt.Sprintf("%t", c.Bool)
	case KindU8:
		return formatUInt(uint64(c.U8), 1, c.Style)
	case KindU16:
		return formatUInt(uint64(c.U16), 2, c.Style)
	case KindU32:
		return formatUInt(uint64(c.U32), 4, c.Style)
	case KindU64:
		return formatUInt(c.U64, 8, c.Style)
	case KindS8:
		return fmt.Sprintf("%d", c.S8)
	case KindS16:
		return fmt.Sprintf("%d", c.S16)
	case KindS32:
		return fmt.Sprintf("%d", c.S32)
	case KindS64:
		return fmt.Sprintf("%d", c.S64)
	case KindF32:
		return fmt.Sprintf("%v", c.F32)
	case KindF64:
		return fmt.Sprintf("%v", c.F64)
	case KindPos:
		return fmt.Sprintf("pos(%d)", c.Pos)
	case KindRef:
		return fmt.Sprintf("ref(%d)", c.Ref)
	default:
		return "<const>"
	}
}

// formatUInt implements UIntStyle::format from the original Rust source:
// Binary -> "0b...", Decimal -> plain, Hexadecimal -> "0x...", Ascii ->
// the big-endian byte string if every byte is printable ASCII, else
// falls back to hexadecimal (SPEC_FULL.md supplemented feature #4).
func formatUInt(v uint64, width int, style UIntStyle) string {
	switch style {
	case Binary:
		return fmt.Sprintf("0b%b", v)
	case Hexadecimal:
		return fmt.Sprintf("0x%x", v)
	case Ascii:
		bytes := make([]byte, width)
		for i := 0; i < width; i++ {
			shift := uint((width - 1 - i) * 8)
			bytes[i] = byte(v >> shift)
		}
		var sb strings.Builder
		for _, b := range bytes {
			if b < 0x20 || b > 0x7e {
				return fmt.Sprintf("0x%x", v)
			}
			sb.WriteByte(b)
		}
		return fmt.Sprintf("%q", sb.String())
	default: // Decimal
		return fmt.Sprintf("%d", v)
	}
}
