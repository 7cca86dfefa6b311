package gmm

import (
	"errors"
	"fmt"
)

var ErrTruncated = errors.New("gmm: unexpected end of data")
var ErrBufferTooSmall = errors.New("gmm: declared length exceeds enclosing buffer")
var ErrOverrun = errors.New("gmm: decoded past declared size")
var ErrBadInput = errors.New("gmm: invalid input")
var ErrTruncatedStream = errors.New("gmm: compressed stream ended mid-run")

var ErrNotRIFF = errors.New("gmm: not a RIFF file")
var ErrNotGMM = errors.New("gmm: not a GMM file")

// ErrNoGridSize is returned for a cell chunk whose scope has not seen a level
// properties chunk yet.
var ErrNoGridSize = fmt.Errorf("%w: cell layers before level properties", ErrBadInput)

// ChunkError reports the innermost chunk that failed to decode.
type ChunkError struct {
	Tag    string
	Offset int
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk '%s' at offset %d: %s", e.Tag, e.Offset, e.Err.Error())
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
