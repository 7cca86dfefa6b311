package gmm

import (
	"bytes"
	"encoding/binary"
)

// body assembles little-endian chunk bodies for tests.
type body struct {
	buf bytes.Buffer
}

func newBody() *body {
	return &body{}
}

func (b *body) u8(v uint8) *body {
	b.buf.WriteByte(v)
	return b
}

func (b *body) u16(v uint16) *body {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *body) i16(v int16) *body {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *body) u32(v uint32) *body {
	_ = binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *body) wstr(s string) *body {
	b.u16(uint16(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *body) bstr(s string) *body {
	b.u8(uint8(len(s)))
	b.buf.WriteString(s)
	return b
}

func (b *body) raw(p ...byte) *body {
	b.buf.Write(p)
	return b
}

func (b *body) bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// chunk frames payload with a header declaring its exact length, plus the
// pad byte for odd lengths.
func chunk(tag string, payload []byte) []byte {
	return chunkSized(tag, uint32(len(payload)), payload)
}

func chunkSized(tag string, size uint32, payload []byte) []byte {
	out := newBody().raw([]byte(tag)...).u32(size).raw(payload...)
	if len(payload)%2 == 1 {
		out.u8(0)
	}
	return out.bytes()
}

func list(listType string, children ...[]byte) []byte {
	return chunk("LIST", append([]byte(listType), bytes.Join(children, nil)...))
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func header(tag string, size int) Header {
	var h Header
	copy(h.ID[:], tag)
	h.Size = uint32(size)
	return h
}

func listSize(children ...[]byte) int {
	return 4 + len(concat(children...))
}

func levelPropsBody(rows, columns uint16) []byte {
	return newBody().
		wstr("Dungeon").wstr("Level 1").
		i16(-2).u16(rows).u16(columns).u8(1).
		wstr("damp").
		bytes()
}

// zeroCellsBody encodes six all-zero layers.
func zeroCellsBody() []byte {
	return []byte{2, 2, 2, 2, 2, 2}
}
