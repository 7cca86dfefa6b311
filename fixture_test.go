package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
)

type fixture struct {
	bytes.Buffer
}

func (f *fixture) le(values ...interface{}) *fixture {
	for _, v := range values {
		_ = binary.Write(&f.Buffer, binary.LittleEndian, v)
	}
	return f
}

func (f *fixture) str(s string) *fixture {
	f.le(uint16(len(s)))
	f.WriteString(s)
	return f
}

func (f *fixture) shortStr(s string) *fixture {
	f.le(uint8(len(s)))
	f.WriteString(s)
	return f
}

func frame(tag string, body []byte) []byte {
	out := append([]byte(tag), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	out = append(out, body...)
	if len(body)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

func frameList(listType string, children ...[]byte) []byte {
	return frame("LIST", append([]byte(listType), bytes.Join(children, nil)...))
}

// sampleGMM is a complete file: one map with a single 1x1 level (2x2 cells).
func sampleGMM() []byte {
	mapProp := new(fixture).le(uint16(2)).str("Keep").str("Grimrock").str("me").shortStr("2025-03-01").str("").Bytes()
	lvlProp := new(fixture).str("Keep").str("Cellar").le(int16(-1), uint16(1), uint16(1), uint8(3)).str("").Bytes()
	cells := new(fixture).
		le(uint8(0), []byte{1, 0, 2, 0}).
		le(uint8(2)).
		le(uint8(2)).
		le(uint8(1), uint32(2), []byte{0x81, 1}).
		le(uint8(2)).
		le(uint8(1), uint32(4), []byte{0, 0, 0, 5}).
		Bytes()
	anno := new(fixture).le(uint16(2)).
		le(uint16(0), uint16(1), uint8(0)).str("draft").
		le(uint16(1), uint16(1), uint8(3), uint8(9)).str("").
		Bytes()
	links := new(fixture).le(uint16(1), uint16(0), uint16(0), uint16(0), uint16(0), uint16(1), uint16(1)).Bytes()

	payload := bytes.Join([][]byte{
		frameList("map ",
			frame("prop", mapProp),
			frameList("lvl ", frame("prop", lvlProp), frame("cell", cells), frame("anno", anno)),
			frame("lnks", links),
		),
		frame("disp", []byte{1, 2}),
	}, nil)

	return new(fixture).le([]byte("RIFF"), uint32(4+len(payload)), []byte("GRMM"), payload).Bytes()
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
