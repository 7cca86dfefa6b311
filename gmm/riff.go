package gmm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const riffHeaderSize = 12

// File is a GMM file with its outer RIFF header validated and stripped.
type File struct {
	Size    uint32
	Payload []byte
}

// ReadFile reads the RIFF/GRMM header from r followed by the payload it
// declares, including the trailing pad byte of an odd-sized payload.
func ReadFile(r io.Reader) (file *File, err error) {
	var header struct {
		ID       [4]byte
		Size     uint32
		FormType [4]byte
	}
	if err = binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: header shorter than %d bytes", ErrTruncated, riffHeaderSize)
		}
		return nil, err
	}
	if string(header.ID[:]) != "RIFF" {
		return nil, ErrNotRIFF
	}
	if string(header.FormType[:]) != "GRMM" {
		return nil, ErrNotGMM
	}
	if header.Size < 4 {
		return nil, fmt.Errorf("%w: RIFF size %d", ErrBufferTooSmall, header.Size)
	}

	remainder := int64(header.Size) - 4 + int64(header.Size%2)
	payload, err := io.ReadAll(io.LimitReader(r, remainder))
	if err != nil {
		return nil, err
	}
	if int64(len(payload)) != remainder {
		return nil, fmt.Errorf("%w: expected %d bytes, read only %d", ErrTruncated, remainder, len(payload))
	}
	return &File{Size: header.Size, Payload: payload}, nil
}

// Chunks decodes the file payload.
func (file *File) Chunks() ([]Chunk, error) {
	return Decode(file.Payload)
}
