package gmm

import "fmt"

type CellCompression byte

const (
	CellCompressionNone CellCompression = 0
	CellCompressionRLE  CellCompression = 1
	CellCompressionZero CellCompression = 2
)

const rleRunFlag = 0x80

// DecodeCellLayer decodes one grid layer of exactly size cells.
func DecodeCellLayer(c *Cursor, size int) ([]byte, error) {
	mode, err := c.Uint8()
	if err != nil {
		return nil, err
	}

	switch CellCompression(mode) {
	case CellCompressionNone:
		raw, err := c.Bytes(size)
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), raw...), nil

	case CellCompressionRLE:
		compressedLength, err := c.Uint32()
		if err != nil {
			return nil, err
		}
		if uint64(compressedLength) > uint64(c.Remaining()) {
			return nil, ErrTruncated
		}
		stream, err := c.Bytes(int(compressedLength))
		if err != nil {
			return nil, err
		}
		return decodeRLE(stream, size)

	case CellCompressionZero:
		return make([]byte, size), nil

	default:
		return nil, fmt.Errorf("%w: cell compression mode %d", ErrBadInput, mode)
	}
}

// decodeRLE expands a run-length stream into a grid of size bytes. Cells the
// stream does not reach stay zero.
func decodeRLE(stream []byte, size int) ([]byte, error) {
	out := make([]byte, size)
	dest := 0
	for i := 0; i < len(stream); {
		control := stream[i]
		if control&rleRunFlag == 0 {
			if dest+1 > size {
				return nil, fmt.Errorf("%w: cell layer literal at %d exceeds %d cells", ErrOverrun, dest, size)
			}
			out[dest] = control
			dest++
			i++
			continue
		}

		i++
		repeat := int(control&^rleRunFlag) + 1
		if dest+repeat > size {
			return nil, fmt.Errorf("%w: cell layer run of %d at %d exceeds %d cells", ErrOverrun, repeat, dest, size)
		}
		if i == len(stream) {
			return nil, ErrTruncatedStream
		}
		value := stream[i]
		for end := dest + repeat; dest < end; dest++ {
			out[dest] = value
		}
		i++
	}
	return out, nil
}
