package binary

import (
	"testing"

	"github.com/fathomlang/fathom/internal/core"
	"github.com/fathomlang/fathom/internal/domain"
	"github.com/fathomlang/fathom/internal/evaluator"
)

type noMetas struct{}

func (noMetas) Solution(core.MetaID) (domain.Value, bool) { return nil, false }

func newInterpreter() *Interpreter {
	return New(evaluator.New(noMetas{}))
}

func primFormat(p core.PrimName) domain.Value {
	return domain.VStuck{Head: domain.PrimHead(p)}
}

func TestReadU8Byte(t *testing.T) {
	it := newInterpreter()
	ctx := NewReadContext([]byte{0x1F})

	v, err := it.Read(ctx, primFormat(core.FormatU8))
	if err != nil {
		t.Fatalf("Read(u8) failed: %v", err)
	}
	c, ok := v.(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindU8 || c.Value.U8 != 31 {
		t.Fatalf("Read(u8) = %#v, want U8(31)", v)
	}
	if ctx.Pos != 1 {
		t.Fatalf("cursor after reading u8 = %d, want 1", ctx.Pos)
	}
}

func TestReadU8EofOnEmptyBuffer(t *testing.T) {
	it := newInterpreter()
	ctx := NewReadContext(nil)

	_, err := it.Read(ctx, primFormat(core.FormatU8))
	if err == nil {
		t.Fatalf("expected Eof reading u8 from an empty buffer")
	}
	berr, ok := err.(*Error)
	if !ok || berr.Kind != Eof {
		t.Fatalf("expected an Eof binary.Error, got %#v", err)
	}
}

func TestReadF64BeStructField(t *testing.T) {
	it := newInterpreter()
	// struct { inner : f64be } reading 8 bytes of a big-endian double.
	buf := []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0} // 1.0
	ctx := NewReadContext(buf)

	rec := domain.VFormatRecord{
		Labels:  []string{"inner"},
		Formats: domain.Telescope{Terms: []core.Term{core.Prim{Name: core.FormatF64Be}}},
	}
	v, err := it.Read(ctx, rec)
	if err != nil {
		t.Fatalf("Read(struct{inner:f64be}) failed: %v", err)
	}
	lit, ok := v.(domain.VRecordLit)
	if !ok || len(lit.Values) != 1 {
		t.Fatalf("Read(struct) = %#v, want a one-field record", v)
	}
	c, ok := lit.Values[0].(domain.VConstLit)
	if !ok || c.Value.Kind != core.KindF64 || c.Value.F64 != 1.0 {
		t.Fatalf("inner field = %#v, want F64(1.0)", lit.Values[0])
	}
	if ctx.Pos != 8 {
		t.Fatalf("cursor after reading f64be = %d, want 8", ctx.Pos)
	}
}

func TestReadArray8OfU8(t *testing.T) {
	it := newInterpreter()
	ctx := NewReadContext([]byte{1, 2, 3})

	countVal := domain.VConstLit{Value: core.U8Const(3, core.Decimal)}
	v, err := it.Read(ctx, spineApply(core.FormatArray8, countVal, primFormat(core.FormatU8)))
	if err != nil {
		t.Fatalf("Read(array8 3 u8) failed: %v", err)
	}
	arr, ok := v.(domain.VArrayLit)
	if !ok || len(arr.Values) != 3 {
		t.Fatalf("Read(array8 3 u8) = %#v, want a 3-element array", v)
	}
	for i, want := range []uint8{1, 2, 3} {
		c := arr.Values[i].(domain.VConstLit)
		if c.Value.U8 != want {
			t.Fatalf("array element %d = %d, want %d", i, c.Value.U8, want)
		}
	}
}

func TestReadArray8EofPartway(t *testing.T) {
	it := newInterpreter()
	ctx := NewReadContext([]byte{1, 2})

	countVal := domain.VConstLit{Value: core.U8Const(3, core.Decimal)}
	_, err := it.Read(ctx, spineApply(core.FormatArray8, countVal, primFormat(core.FormatU8)))
	if err == nil {
		t.Fatalf("expected Eof reading array8 3 u8 from a 2-byte buffer")
	}
	berr, ok := err.(*Error)
	if !ok || berr.Kind != Eof {
		t.Fatalf("expected an Eof error, got %#v", err)
	}
}

func TestReadFormatOverlapSharesStartPosition(t *testing.T) {
	it := newInterpreter()
	// overlap { asU16 : u16be, asByte : u8 } both read starting at
	// position 0; the cursor should end at the longest field's end
	// (2 bytes), not the sum of both fields' widths.
	buf := []byte{0x01, 0x02}
	ctx := NewReadContext(buf)

	ov := domain.VFormatOverlap{
		Labels: []string{"asU16", "asByte"},
		Formats: domain.Telescope{Terms: []core.Term{
			core.Prim{Name: core.FormatU16Be},
			core.Prim{Name: core.FormatU8},
		}},
	}
	v, err := it.Read(ctx, ov)
	if err != nil {
		t.Fatalf("Read(overlap) failed: %v", err)
	}
	lit := v.(domain.VRecordLit)
	u16 := lit.Values[0].(domain.VConstLit)
	u8 := lit.Values[1].(domain.VConstLit)
	if u16.Value.U16 != 0x0102 {
		t.Fatalf("asU16 = %#x, want 0x0102", u16.Value.U16)
	}
	if u8.Value.U8 != 0x01 {
		t.Fatalf("asByte = %#x, want 0x01", u8.Value.U8)
	}
	if ctx.Pos != 2 {
		t.Fatalf("cursor after overlap = %d, want 2 (the longest field's end)", ctx.Pos)
	}
}

func TestReadRepeatUntilEndZeroWidthGuard(t *testing.T) {
	it := newInterpreter()
	ctx := NewReadContext([]byte{1, 2, 3})

	// succeed(u8, 0) never advances the cursor, so repeat_until_end
	// over it must fail rather than loop forever.
	zeroWidth := spineApply(core.FormatSucceed, primFormat(core.U8Type), domain.VConstLit{Value: core.U8Const(0, core.Decimal)})
	_, err := it.readRepeatUntilEnd(ctx, zeroWidth)
	if err == nil {
		t.Fatalf("expected a ZeroWidthRepeat error")
	}
	berr, ok := err.(*Error)
	if !ok || berr.Kind != ZeroWidthRepeat {
		t.Fatalf("expected ZeroWidthRepeat, got %#v", err)
	}
}

func TestReadRepeatUntilEndConsumesWholeBuffer(t *testing.T) {
	it := newInterpreter()
	ctx := NewReadContext([]byte{1, 2, 3})

	v, err := it.readRepeatUntilEnd(ctx, primFormat(core.FormatU8))
	if err != nil {
		t.Fatalf("readRepeatUntilEnd(u8) failed: %v", err)
	}
	arr := v.(domain.VArrayLit)
	if len(arr.Values) != 3 {
		t.Fatalf("expected 3 elements read to end of buffer, got %d", len(arr.Values))
	}
	if !ctx.atEnd() {
		t.Fatalf("cursor should be at end of buffer")
	}
}

func TestLinkDerefRoundTrip(t *testing.T) {
	it := newInterpreter()
	buf := []byte{0x2A, 0x00} // byte 0 is the payload, byte 1 unused
	ctx := NewReadContext(buf)

	posVal := domain.VConstLit{Value: core.PosConst(0)}
	refVal, err := it.readLink(posVal)
	if err != nil {
		t.Fatalf("readLink failed: %v", err)
	}

	// Advance the cursor past the link target before dereferencing, to
	// confirm deref restores the original position afterward.
	ctx.Pos = 1
	v, err := it.readDeref(ctx, refVal, primFormat(core.FormatU8))
	if err != nil {
		t.Fatalf("readDeref failed: %v", err)
	}
	c := v.(domain.VConstLit)
	if c.Value.U8 != 0x2A {
		t.Fatalf("deref read %#x, want 0x2a", c.Value.U8)
	}
	if ctx.Pos != 1 {
		t.Fatalf("deref must restore the cursor, got %d, want 1", ctx.Pos)
	}
}

// spineApply builds the neutral value for prim applied to args in
// order, the shape a saturated format-constructor application reduces
// to in the semantic domain.
func spineApply(prim core.PrimName, args ...domain.Value) domain.Value {
	spine := make([]domain.Elim, len(args))
	for i, a := range args {
		spine[i] = domain.Elim{Kind: domain.ElimApp, Arg: a}
	}
	return domain.VStuck{Head: domain.PrimHead(prim), Spine: spine}
}
