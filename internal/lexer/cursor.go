// Package lexer implements the tokenizer: a flat state machine over a
// file's source bytes producing a token.List.
package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/Lukide0/Koolang-old/internal/source"
)

// Cursor tracks a byte position within a file's content.
type Cursor struct {
	File *source.File
	Off  uint32
	Len  uint32
}

// NewCursor creates a cursor positioned at the start of f.
func NewCursor(f *source.File) Cursor {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	return Cursor{File: f, Off: 0, Len: n}
}

// EOF reports whether the cursor has consumed every byte.
func (c *Cursor) EOF() bool { return c.Off >= c.Len }

// Peek returns the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt returns the byte offset bytes ahead of the cursor, or 0 if out of range.
func (c *Cursor) PeekAt(offset uint32) byte {
	i := c.Off + offset
	if i >= c.Len {
		return 0
	}
	return c.File.Content[i]
}

// Bump consumes and returns the current byte.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}
