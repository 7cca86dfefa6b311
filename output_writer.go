package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"sigs.k8s.io/yaml"
)

type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

type OutputCompression string

const (
	OutputCompressionNone OutputCompression = "none"
	OutputCompressionGzip OutputCompression = "gzip"
	OutputCompressionZstd OutputCompression = "zstd"
)

// Extension is the file name suffix used for batch output.
func (f OutputFormat) Extension() string {
	if f == OutputFormatYAML {
		return ".yaml"
	}
	return ".json"
}

func (c OutputCompression) Extension() string {
	switch c {
	case OutputCompressionGzip:
		return ".gz"
	case OutputCompressionZstd:
		return ".zst"
	default:
		return ""
	}
}

type outputWriter struct {
	writer      io.Writer
	format      OutputFormat
	compression OutputCompression
	indent      bool
}

func (w *outputWriter) writeDocument(doc interface{}) (err error) {
	encoded, err := w.marshal(doc)
	if err != nil {
		return
	}

	switch w.compression {
	case OutputCompressionNone, "":
		_, err = w.writer.Write(encoded)
		return
	case OutputCompressionGzip:
		gzipWriter := gzip.NewWriter(w.writer)
		if _, err = gzipWriter.Write(encoded); err != nil {
			return
		}
		return gzipWriter.Close()
	case OutputCompressionZstd:
		zstdWriter, err := zstd.NewWriter(w.writer)
		if err != nil {
			return err
		}
		if _, err = zstdWriter.Write(encoded); err != nil {
			return err
		}
		return zstdWriter.Close()
	default:
		return fmt.Errorf("unknown output compression %q", w.compression)
	}
}

func (w *outputWriter) marshal(doc interface{}) ([]byte, error) {
	switch w.format {
	case OutputFormatJSON, "":
		var encoded []byte
		var err error
		if w.indent {
			encoded, err = json.MarshalIndent(doc, "", "  ")
		} else {
			encoded, err = json.Marshal(doc)
		}
		if err != nil {
			return nil, err
		}
		return append(encoded, '\n'), nil
	case OutputFormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown output format %q", w.format)
	}
}
