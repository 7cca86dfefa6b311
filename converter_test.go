package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvertPrintsTree(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "keep.gmm", sampleGMM())
	var out, tree bytes.Buffer
	conv := &Converter{Format: OutputFormatJSON, Tree: &tree}
	if err := conv.Convert(path, &out); err != nil {
		t.Fatalf("Convert: %s", err)
	}
	if !json.Valid(out.Bytes()) {
		t.Errorf("output is not JSON: %s", out.String())
	}

	lines := strings.Split(strings.TrimSpace(tree.String()), "\n")
	want := []string{
		"'LIST' riff chunk of size 176 bytes.",
		"LIST chunk type: 'map '",
		"--'prop' riff chunk of size 35 bytes.",
		"--'LIST' riff chunk of size 98 bytes.",
		"  LIST chunk type: 'lvl '",
		"----'prop' riff chunk of size 23 bytes.",
		"----'cell' riff chunk of size 24 bytes.",
		"    4 cells: 2 floors, 2 walls, 1 trail",
		"----'anno' riff chunk of size 22 bytes.",
		"--'lnks' riff chunk of size 14 bytes.",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("tree (-want +got):\n%s", diff)
	}
}

func TestConvertDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "one.gmm", sampleGMM())
	writeFixture(t, dir, "two.gmm.gz", gzipped(t, sampleGMM()))
	writeFixture(t, dir, "THREE.GMM", sampleGMM())
	writeFixture(t, dir, "notes.txt", []byte("not a map"))

	conv := &Converter{Format: OutputFormatYAML}
	if err := conv.ConvertDirectory(dir, 2); err != nil {
		t.Fatalf("ConvertDirectory: %s", err)
	}
	for _, name := range []string{"one.yaml", "two.yaml", "THREE.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %s", name, err)
			continue
		}
		if !strings.Contains(string(data), "chunk_type: MAP_PROP") {
			t.Errorf("%s lacks the map properties:\n%s", name, data)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.yaml")); !os.IsNotExist(err) {
		t.Errorf("non-GMM file was converted")
	}
}

func TestConvertDirectoryReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "good.gmm", sampleGMM())
	writeFixture(t, dir, "bad.gmm", []byte("RIFF\x04\x00\x00\x00WAVE"))

	conv := &Converter{Format: OutputFormatJSON}
	if err := conv.ConvertDirectory(dir, 1); err == nil {
		t.Error("broken file did not fail the batch")
	}
	if _, err := os.Stat(filepath.Join(dir, "good.json")); err != nil {
		t.Errorf("good file was not converted: %s", err)
	}

	if err := conv.ConvertDirectory(t.TempDir(), 1); err == nil {
		t.Error("empty directory did not fail")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		conv Converter
		in   string
		want string
	}{
		{Converter{Format: OutputFormatJSON}, "maps/keep.gmm", "maps/keep.json"},
		{Converter{Format: OutputFormatJSON, Compression: OutputCompressionZstd}, "keep.gmm.gz", "keep.json.zst"},
		{Converter{Format: OutputFormatYAML, Compression: OutputCompressionGzip}, "keep.gmm", "keep.yaml.gz"},
		{Converter{Format: OutputFormatJSON}, "maps/MAP.GMM", "maps/MAP.json"},
		{Converter{Format: OutputFormatJSON}, "Crypt.Gmm.GZ", "Crypt.json"},
	}
	for _, tt := range tests {
		if got := tt.conv.OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
