package gmm

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

// readRecord overlays a fixed-layout little-endian record on the next
// binary.Size(T) bytes. Struct fields are read in declaration order with no
// padding between them.
func readRecord[T any](c *Cursor) (rec T, err error) {
	size := binary.Size(rec)
	if size < 0 {
		return rec, ErrBadInput
	}
	raw, err := c.Bytes(size)
	if err != nil {
		return rec, err
	}
	err = binary.Read(bytes.NewReader(raw), binary.LittleEndian, &rec)
	return
}

// readText reads a string prefixed by its byte length, stored as an L.
// Text after an embedded NUL is dropped.
func readText[L constraints.Unsigned](c *Cursor) (string, error) {
	n, err := readRecord[L](c)
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(c.Remaining()) {
		return "", ErrBufferTooSmall
	}
	raw, err := c.Bytes(int(n))
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), nil
}

// ReadWideString reads a string with a 2-byte length prefix.
func ReadWideString(c *Cursor) (string, error) {
	return readText[uint16](c)
}

// ReadByteString reads a string with a 1-byte length prefix.
func ReadByteString(c *Cursor) (string, error) {
	return readText[uint8](c)
}
