package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gridtools/gmm2json/gmm"
)

// Converter turns GMM files into exported documents.
type Converter struct {
	Format      OutputFormat
	Compression OutputCompression
	Indent      bool
	// Tree, when set, receives the chunk tree of every converted file.
	Tree io.Writer
}

func (conv *Converter) Convert(inPath string, out io.Writer) error {
	file, err := OpenGMMFile(inPath)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", inPath, err)
	}
	chunks, err := file.Chunks()
	if err != nil {
		return fmt.Errorf("could not decode %s: %w", inPath, err)
	}

	if conv.Tree != nil {
		if err = printTree(conv.Tree, chunks); err != nil {
			return err
		}
	}

	w := &outputWriter{writer: out, format: conv.Format, compression: conv.Compression, indent: conv.Indent}
	return w.writeDocument(exportChunks(chunks))
}

// ConvertToFile converts inPath and replaces outPath with the result.
func (conv *Converter) ConvertToFile(inPath, outPath string) (err error) {
	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return
	}
	if err = conv.Convert(inPath, out); err != nil {
		_ = out.Close()
		_ = os.Remove(outPath)
		return
	}
	return out.Close()
}

// OutputPath names the batch output for inPath: the input name without its
// .gmm or .gmm.gz suffix plus the format and compression extensions.
func (conv *Converter) OutputPath(inPath string) string {
	base := trimSuffixFold(inPath, ".gz")
	base = trimSuffixFold(base, ".gmm")
	return base + conv.Format.Extension() + conv.Compression.Extension()
}

func trimSuffixFold(s, suffix string) string {
	if n := len(s) - len(suffix); n >= 0 && strings.EqualFold(s[n:], suffix) {
		return s[:n]
	}
	return s
}

func isGMMFile(name string) bool {
	name = strings.ToLower(name)
	return strings.HasSuffix(name, ".gmm") || strings.HasSuffix(name, ".gmm.gz")
}

func printTree(w io.Writer, chunks []gmm.Chunk) error {
	return gmm.Walk(chunks, func(depth int, ck gmm.Chunk) (err error) {
		head := ck.Head()
		if _, err = fmt.Fprintf(w, "%s'%s' riff chunk of size %d bytes.\n", strings.Repeat("--", depth), head.Tag(), head.Size); err != nil {
			return
		}
		switch ck := ck.(type) {
		case *gmm.List:
			_, err = fmt.Fprintf(w, "%sLIST chunk type: '%s'\n", strings.Repeat("  ", depth), ck.ListType())
		case *gmm.LevelCellLayers:
			summary := summarizeCells(ck)
			_, err = fmt.Fprintf(w, "%s%d cells: %d floors, %d walls, %d trail\n",
				strings.Repeat("  ", depth), summary.Cells, summary.Floors, summary.Walls, summary.Trail)
		}
		return
	})
}
