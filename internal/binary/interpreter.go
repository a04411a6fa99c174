package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/evaluator"
)

// Interpreter reads concrete values out of a byte buffer according to
// a format value (spec.md §4.4). It shares an Evaluator with whatever
// elaborated the format, since format values may themselves be stuck
// terms that only reduce once applied to the arguments the reader
// discovers (dependent record/overlap fields referring to earlier
// ones).
type Interpreter struct {
	Eval *evaluator.Evaluator
}

func New(ev *evaluator.Evaluator) *Interpreter {
	return &Interpreter{Eval: ev}
}

// Read interprets format against ctx, producing a value of
// Repr(format) and advancing ctx's cursor by however many bytes that
// format consumes (spec.md §4.4 — zero for stream_pos/link/succeed/fail/unwrap).
func (it *Interpreter) Read(ctx *ReadContext, format domain.Value) (domain.Value, error) {
	forced := it.Eval.Force(format)

	if rec, ok := forced.(domain.VFormatRecord); ok {
		return it.readTelescope(ctx, rec.Labels, rec.Formats, false)
	}
	if ov, ok := forced.(domain.VFormatOverlap); ok {
		return it.readTelescope(ctx, ov.Labels, ov.Formats, true)
	}

	stuck, ok := forced.(domain.VStuck)
	if !ok || stuck.Head.Kind != domain.HeadPrim {
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: fmt.Sprintf("%T is not a format", forced)}
	}
	args, ok := appArgs(stuck.Spine)
	if !ok {
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "format has a non-application spine"}
	}

	switch stuck.Head.Prim {
	case core.FormatU8:
		return it.readUInt(ctx, 1, false, core.Decimal)
	case core.FormatU16Be:
		return it.readUInt(ctx, 2, false, core.Decimal)
	case core.FormatU16Le:
		return it.readUInt(ctx, 2, true, core.Decimal)
	case core.FormatU32Be:
		return it.readUInt(ctx, 4, false, core.Decimal)
	case core.FormatU32Le:
		return it.readUInt(ctx, 4, true, core.Decimal)
	case core.FormatU64Be:
		return it.readUInt(ctx, 8, false, core.Decimal)
	case core.FormatU64Le:
		return it.readUInt(ctx, 8, true, core.Decimal)

	case core.FormatS8:
		return it.readSInt(ctx, 1, false)
	case core.FormatS16Be:
		return it.readSInt(ctx, 2, false)
	case core.FormatS16Le:
		return it.readSInt(ctx, 2, true)
	case core.FormatS32Be:
		return it.readSInt(ctx, 4, false)
	case core.FormatS32Le:
		return it.readSInt(ctx, 4, true)
	case core.FormatS64Be:
		return it.readSInt(ctx, 8, false)
	case core.FormatS64Le:
		return it.readSInt(ctx, 8, true)

	case core.FormatF32Be:
		return it.readF32(ctx, false)
	case core.FormatF32Le:
		return it.readF32(ctx, true)
	case core.FormatF64Be:
		return it.readF64(ctx, false)
	case core.FormatF64Le:
		return it.readF64(ctx, true)

	case core.FormatArray8, core.FormatArray16, core.FormatArray32, core.FormatArray64:
		if len(args) != 2 {
			return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "array format missing length or element format"}
		}
		return it.readArray(ctx, args[0], args[1])

	case core.FormatRepeatUntilEnd:
		if len(args) != 1 {
			return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "repeat_until_end missing element format"}
		}
		return it.readRepeatUntilEnd(ctx, args[0])

	case core.FormatStreamPos:
		return domain.VConstLit{Value: core.PosConst(uint64(ctx.Pos))}, nil

	case core.FormatLink:
		if len(args) != 2 {
			return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "link missing position or element format"}
		}
		return it.readLink(args[0])

	case core.FormatDeref:
		if len(args) != 2 {
			return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "deref missing ref or element format"}
		}
		return it.readDeref(ctx, args[0], args[1])

	case core.FormatSucceed:
		if len(args) != 2 {
			return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "succeed missing type or value"}
		}
		return args[1], nil

	case core.FormatFail:
		return nil, &Error{Kind: UserFail, Offset: ctx.Pos, Message: "fail format"}

	case core.FormatUnwrap:
		if len(args) != 2 {
			return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "unwrap missing type or option value"}
		}
		return it.readUnwrap(ctx, args[1])

	default:
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: fmt.Sprintf("%s is not a readable format", stuck.Head.Prim)}
	}
}

func (it *Interpreter) readUInt(ctx *ReadContext, width int, little bool, style core.UIntStyle) (domain.Value, error) {
	b, err := ctx.take(width)
	if err != nil {
		return nil, err
	}
	order := byteOrder(little)
	switch width {
	case 1:
		return domain.VConstLit{Value: core.U8Const(b[0], style)}, nil
	case 2:
		return domain.VConstLit{Value: core.U16Const(order.Uint16(b), style)}, nil
	case 4:
		return domain.VConstLit{Value: core.U32Const(order.Uint32(b), style)}, nil
	case 8:
		return domain.VConstLit{Value: core.U64Const(order.Uint64(b), style)}, nil
	default:
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "unsupported integer width"}
	}
}

func (it *Interpreter) readSInt(ctx *ReadContext, width int, little bool) (domain.Value, error) {
	b, err := ctx.take(width)
	if err != nil {
		return nil, err
	}
	order := byteOrder(little)
	switch width {
	case 1:
		return domain.VConstLit{Value: core.S8Const(int8(b[0]))}, nil
	case 2:
		return domain.VConstLit{Value: core.S16Const(int16(order.Uint16(b)))}, nil
	case 4:
		return domain.VConstLit{Value: core.S32Const(int32(order.Uint32(b)))}, nil
	case 8:
		return domain.VConstLit{Value: core.S64Const(int64(order.Uint64(b)))}, nil
	default:
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "unsupported integer width"}
	}
}

func (it *Interpreter) readF32(ctx *ReadContext, little bool) (domain.Value, error) {
	b, err := ctx.take(4)
	if err != nil {
		return nil, err
	}
	bits := byteOrder(little).Uint32(b)
	return domain.VConstLit{Value: core.F32Const(math.Float32frombits(bits))}, nil
}

func (it *Interpreter) readF64(ctx *ReadContext, little bool) (domain.Value, error) {
	b, err := ctx.take(8)
	if err != nil {
		return nil, err
	}
	bits := byteOrder(little).Uint64(b)
	return domain.VConstLit{Value: core.F64Const(math.Float64frombits(bits))}, nil
}

func byteOrder(little bool) binary.ByteOrder {
	if little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// readArray reads a fixed-size array of count (an unsigned constant of
// the width matching array8/16/32/64) elements of elemFormat.
func (it *Interpreter) readArray(ctx *ReadContext, countVal, elemFormat domain.Value) (domain.Value, error) {
	count, ok := constUint(it.Eval.Force(countVal))
	if !ok {
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "array length is not a concrete unsigned integer"}
	}
	values := make([]domain.Value, count)
	for i := uint64(0); i < count; i++ {
		v, err := it.Read(ctx, elemFormat)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return domain.VArrayLit{Values: values}, nil
}

// readRepeatUntilEnd reads elemFormat repeatedly until the cursor
// reaches the end of the buffer exactly, guarding against an element
// format that consumes zero bytes (spec.md §4.4, "ZeroWidthRepeat").
func (it *Interpreter) readRepeatUntilEnd(ctx *ReadContext, elemFormat domain.Value) (domain.Value, error) {
	var values []domain.Value
	for !ctx.atEnd() {
		before := ctx.Pos
		v, err := it.Read(ctx, elemFormat)
		if err != nil {
			return nil, err
		}
		if ctx.Pos == before {
			return nil, &Error{Kind: ZeroWidthRepeat, Offset: ctx.Pos, Message: "repeat_until_end element consumed zero bytes"}
		}
		values = append(values, v)
	}
	return domain.VArrayLit{Values: values}, nil
}

// readLink produces a Ref to posVal without touching the buffer: the
// actual read happens later, at deref (spec.md §4.4, "link/deref").
func (it *Interpreter) readLink(posVal domain.Value) (domain.Value, error) {
	c, ok := it.Eval.Force(posVal).(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindPos {
		return nil, &Error{Kind: InvalidValue, Message: "link target is not a concrete position"}
	}
	return domain.VConstLit{Value: core.RefConst(c.Value.Pos)}, nil
}

// readDeref seeks to a previously linked position, reads elemFormat
// there, then restores the cursor to wherever it was before the deref
// call — a deref never advances the enclosing format's own position.
func (it *Interpreter) readDeref(ctx *ReadContext, refVal, elemFormat domain.Value) (domain.Value, error) {
	c, ok := it.Eval.Force(refVal).(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindRef {
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "deref target is not a concrete reference"}
	}
	saved := ctx.Pos
	ctx.Pos = int(c.Value.Ref)
	v, err := it.Read(ctx, elemFormat)
	ctx.Pos = saved
	return v, err
}

// readUnwrap consumes no bytes: `some x` succeeds with x, `none` fails
// with UserFail (spec.md §4.4's unwrap combinator).
func (it *Interpreter) readUnwrap(ctx *ReadContext, optVal domain.Value) (domain.Value, error) {
	stuck, ok := it.Eval.Force(optVal).(domain.VStuck)
	if !ok || stuck.Head.Kind != domain.HeadPrim {
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "unwrap argument is not a concrete option"}
	}
	switch stuck.Head.Prim {
	case core.OptionSome:
		args, ok := appArgs(stuck.Spine)
		if !ok || len(args) != 1 {
			return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "malformed option value"}
		}
		return args[0], nil
	case core.OptionNone:
		return nil, &Error{Kind: UserFail, Offset: ctx.Pos, Message: "unwrap called on none"}
	default:
		return nil, &Error{Kind: InvalidValue, Offset: ctx.Pos, Message: "unwrap argument is not a concrete option"}
	}
}

// readTelescope reads a FormatRecord's (or FormatOverlap's) fields in
// order, extending the telescope's environment with each field's
// parsed value so later fields can depend on earlier ones. For an
// overlap format every field starts reading from the same position;
// for a sequential record each field continues where the previous one
// left off.
func (it *Interpreter) readTelescope(ctx *ReadContext, labels []string, tel domain.Telescope, overlap bool) (domain.Value, error) {
	values := make([]domain.Value, len(labels))
	start := ctx.Pos
	end := start
	for i := range labels {
		if overlap {
			ctx.Pos = start
		}
		fieldFormat := it.Eval.EvalTelescopeStep(tel, i, values[:i])
		v, err := it.Read(ctx, fieldFormat)
		if err != nil {
			return nil, err
		}
		values[i] = v
		if ctx.Pos > end {
			end = ctx.Pos
		}
	}
	ctx.Pos = end
	return domain.VRecordLit{Labels: labels, Values: values}, nil
}

func constUint(v domain.Value) (uint64, bool) {
	c, ok := v.(domain.VConstLit)
	if !ok {
		return 0, false
	}
	switch c.Value.Kind {
	case core.KindU8:
		return uint64(c.Value.U8), true
	case core.KindU16:
		return uint64(c.Value.U16), true
	case core.KindU32:
		return uint64(c.Value.U32), true
	case core.KindU64:
		return c.Value.U64, true
	default:
		return 0, false
	}
}

// appArgs mirrors internal/evaluator's unexported helper of the same
// name: a format's spine must be a plain application chain to be
// readable at all.
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
