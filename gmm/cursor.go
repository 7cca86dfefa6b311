package gmm

import "encoding/binary"

// Cursor is a read-only view over a payload with its own remaining budget.
// A cursor created with Sub shares its position with the parent, and every
// byte it consumes is also charged to each ancestor, so an enclosing chunk
// never sees more bytes than it actually has left.
type Cursor struct {
	data      []byte
	pos       *int
	remaining int
	parent    *Cursor
}

func NewCursor(data []byte) *Cursor {
	pos := 0
	return &Cursor{data: data, pos: &pos, remaining: len(data)}
}

func (c *Cursor) Remaining() int {
	return c.remaining
}

// Offset is the absolute position inside the payload the root cursor was made from.
func (c *Cursor) Offset() int {
	return *c.pos
}

func (c *Cursor) Advance(n int) error {
	if n < 0 || n > c.remaining {
		return ErrTruncated
	}
	*c.pos += n
	c.remaining -= n
	for par := c.parent; par != nil; par = par.parent {
		par.remaining -= n
	}
	return nil
}

// Sub returns a cursor limited to the next n bytes.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	if n < 0 || n > c.remaining {
		return nil, ErrBufferTooSmall
	}
	return &Cursor{data: c.data, pos: c.pos, remaining: n, parent: c}, nil
}

// Bytes returns the next n bytes and advances past them. The returned slice
// aliases the payload.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	start := *c.pos
	if err := c.Advance(n); err != nil {
		return nil, err
	}
	return c.data[start : start+n], nil
}

func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
