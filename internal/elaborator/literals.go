package elaborator

import (
	"fmt"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/diagnostics"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/surface"
)

// checkIntLit implements the primary, fully-supported path of spec.md's
// integer-literal Open Question: a literal checked against a concrete
// expected primitive type is range-checked and, on overflow, reported
// as a range-overflow diagnostic and truncated to that type's width
// (spec.md §4.3's explicit truncate-on-overflow rule).
func (c *Context) checkIntLit(n surface.IntLit, expected domain.Value) core.Term {
	forced := c.Eval.Force(expected)
	head, ok := forced.(domain.VStuck)
	if !ok || head.Head.Kind != domain.HeadPrim || len(head.Spine) != 0 {
		term, _ := c.reportError(n.Span(), diagnostics.CodeExpectedInteger,
			fmt.Sprintf("an integer literal was used where a value of type %s was expected", describeType(c, expected)))
		return term
	}

	style := core.UIntStyle(n.Style)
	v := n.Value
	maxOf := map[core.PrimName]uint64{
		core.U8Type: 0xFF, core.U16Type: 0xFFFF, core.U32Type: 0xFFFFFFFF,
		core.S8Type: 0x7F, core.S16Type: 0x7FFF, core.S32Type: 0x7FFFFFFF, core.S64Type: 0x7FFFFFFFFFFFFFFF,
	}
	if limit, bounded := maxOf[head.Head.Prim]; bounded && v > limit {
		c.reportError(n.Span(), diagnostics.CodeRangeOverflow,
			fmt.Sprintf("integer literal %d is out of range for %s; truncated", v, describeType(c, expected)))
	}
	switch head.Head.Prim {
	case core.U8Type:
		return core.ConstLit{Value: core.U8Const(uint8(v), style)}
	case core.U16Type:
		return core.ConstLit{Value: core.U16Const(uint16(v), style)}
	case core.U32Type:
		return core.ConstLit{Value: core.U32Const(uint32(v), style)}
	case core.U64Type:
		return core.ConstLit{Value: core.U64Const(v, style)}
	case core.S8Type:
		return core.ConstLit{Value: core.S8Const(int8(v))}
	case core.S16Type:
		return core.ConstLit{Value: core.S16Const(int16(v))}
	case core.S32Type:
		return core.ConstLit{Value: core.S32Const(int32(v))}
	case core.S64Type:
		return core.ConstLit{Value: core.S64Const(int64(v))}
	case core.F32Type:
		return core.ConstLit{Value: core.F32Const(float32(v))}
	case core.F64Type:
		return core.ConstLit{Value: core.F64Const(float64(v))}
	case core.PosType:
		return core.ConstLit{Value: core.PosConst(v)}
	default:
		term, _ := c.reportError(n.Span(), diagnostics.CodeExpectedInteger,
			fmt.Sprintf("an integer literal was used where a value of type %s was expected", describeType(c, expected)))
		return term
	}
}

func (c *Context) checkFloatLit(n surface.FloatLit, expected domain.Value) core.Term {
	forced := c.Eval.Force(expected)
	head, ok := forced.(domain.VStuck)
	if !ok || head.Head.Kind != domain.HeadPrim || len(head.Spine) != 0 {
		term, _ := c.reportError(n.Span(), diagnostics.CodeExpectedType,
			fmt.Sprintf("a float literal was used where a value of type %s was expected", describeType(c, expected)))
		return term
	}
	switch head.Head.Prim {
	case core.F32Type:
		return core.ConstLit{Value: core.F32Const(float32(n.Value))}
	case core.F64Type:
		return core.ConstLit{Value: core.F64Const(n.Value)}
	default:
		term, _ := c.reportError(n.Span(), diagnostics.CodeExpectedType,
			fmt.Sprintf("a float literal was used where a value of type %s was expected", describeType(c, expected)))
		return term
	}
}
