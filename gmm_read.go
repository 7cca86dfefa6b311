package main

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/gridtools/gmm2json/gmm"
	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// OpenGMMFile reads a GMM file from disk. Gzip-compressed files are
// decompressed transparently.
func OpenGMMFile(path string) (*gmm.File, error) {
	source, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer source.Close()
	return ReadGMM(source)
}

func ReadGMM(source io.Reader) (file *gmm.File, err error) {
	buffered := bufio.NewReader(source)
	magic, err := buffered.Peek(len(gzipMagic))
	if err != nil || !bytes.Equal(magic, gzipMagic) {
		// Short inputs are left to the RIFF reader to reject.
		return gmm.ReadFile(buffered)
	}

	unzipped, err := gzip.NewReader(buffered)
	if err != nil {
		return nil, err
	}
	defer unzipped.Close()
	return gmm.ReadFile(unzipped)
}
