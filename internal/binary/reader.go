package binary

// ReadContext is the interpreter's cursor over a byte buffer (spec.md
// §4.4). Pos is an absolute offset into Buffer; Deref saves and
// restores it around a jump to read at another position, never
// truncating or copying Buffer itself.
type ReadContext struct {
	Buffer []byte
	Pos    int
}

// NewReadContext starts a cursor at the beginning of buf.
func NewReadContext(buf []byte) *ReadContext {
	return &ReadContext{Buffer: buf}
}

// take reads n bytes from the current position and advances the
// cursor, or reports Eof without advancing.
func (c *ReadContext) take(n int) ([]byte, error) {
	if c.Pos+n > len(c.Buffer) {
		return nil, eofError(c.Pos)
	}
	b := c.Buffer[c.Pos : c.Pos+n]
	c.Pos += n
	return b, nil
}

// atEnd reports whether the cursor has reached the end of the buffer,
// the termination condition for repeat_until_end.
func (c *ReadContext) atEnd() bool {
	return c.Pos >= len(c.Buffer)
}
