package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func writeDoc(t *testing.T, w *outputWriter, doc interface{}) []byte {
	t.Helper()
	var buf bytes.Buffer
	w.writer = &buf
	if err := w.writeDocument(doc); err != nil {
		t.Fatalf("writeDocument: %s", err)
	}
	return buf.Bytes()
}

func TestOutputCompression(t *testing.T) {
	doc := []interface{}{chunkDoc{ChunkType: "TYPE_UNKNOWN"}}
	plain := writeDoc(t, &outputWriter{format: OutputFormatJSON}, doc)
	if string(plain) != "[{\"chunk_type\":\"TYPE_UNKNOWN\"}]\n" {
		t.Fatalf("unexpected JSON %q", plain)
	}

	zipped := writeDoc(t, &outputWriter{format: OutputFormatJSON, compression: OutputCompressionGzip}, doc)
	gzipReader, err := gzip.NewReader(bytes.NewReader(zipped))
	if err != nil {
		t.Fatal(err)
	}
	if unzipped, err := io.ReadAll(gzipReader); err != nil || !bytes.Equal(unzipped, plain) {
		t.Errorf("gzip output decompressed to %q, %v", unzipped, err)
	}

	compressed := writeDoc(t, &outputWriter{format: OutputFormatJSON, compression: OutputCompressionZstd}, doc)
	zstdReader, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer zstdReader.Close()
	if decompressed, err := zstdReader.DecodeAll(compressed, nil); err != nil || !bytes.Equal(decompressed, plain) {
		t.Errorf("zstd output decompressed to %q, %v", decompressed, err)
	}
}

func TestOutputYAML(t *testing.T) {
	doc := listDoc{chunkDoc: chunkDoc{ChunkType: "LIST"}, ListType: "lvl ", Children: []interface{}{}}
	out := string(writeDoc(t, &outputWriter{format: OutputFormatYAML}, doc))
	for _, line := range []string{"chunk_type: LIST", "list_type: 'lvl '", "children: []"} {
		if !strings.Contains(out, line) {
			t.Errorf("YAML output missing %q:\n%s", line, out)
		}
	}
}

func TestOutputIndent(t *testing.T) {
	out := string(writeDoc(t, &outputWriter{indent: true}, chunkDoc{ChunkType: "LIST"}))
	if out != "{\n  \"chunk_type\": \"LIST\"\n}\n" {
		t.Errorf("unexpected indented JSON %q", out)
	}
}

func TestOutputRejectsUnknownSettings(t *testing.T) {
	var buf bytes.Buffer
	if err := (&outputWriter{writer: &buf, format: "xml"}).writeDocument(nil); err == nil {
		t.Error("xml format accepted")
	}
	if err := (&outputWriter{writer: &buf, compression: "lz4"}).writeDocument(nil); err == nil {
		t.Error("lz4 compression accepted")
	}
}
