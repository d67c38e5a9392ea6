package main

import (
	"fmt"
	"io"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/source"
)

// lineCol turns a byte offset into a 1-based line and column by scanning
// content once; good enough for a CLI that prints at most a few hundred
// diagnostics, not a hot path worth indexing ahead of time.
func lineCol(content []byte, offset uint32) (line, col int) {
	line, col = 1, 1
	for i := uint32(0); i < offset && int(i) < len(content); i++ {
		if content[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// printDiagnostics writes each item in bag to w as "path:line:col: severity[code]: message",
// mirroring the one-line-per-diagnostic shape used throughout the pack's own CLIs.
func printDiagnostics(w io.Writer, bag *diag.Bag, path string, file *source.File) {
	for _, d := range bag.SortedBySeverity() {
		line, col := 1, 1
		if file != nil {
			line, col = lineCol(file.Content, d.Label.Span.Start)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s[%d]: %s\n", path, line, col, d.Severity, d.Code, d.Message)
	}
}
