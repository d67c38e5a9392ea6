package lexer

import (
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// scanString scans a "..." literal with backslash-escaping. A bare
// newline inside an unescaped string is invalid for that span (spec
// §4.1); running off the end of the file is likewise Invalid.
func (lx *Lexer) scanString(start uint32) {
	lx.cursor.Bump() // opening quote
	valid := true
	for {
		if lx.cursor.EOF() {
			lx.reportUnterminated(start, "unterminated string literal")
			lx.push(token.Invalid, start, lx.cursor.Off-start)
			return
		}
		c := lx.cursor.Bump()
		switch c {
		case '"':
			if valid {
				lx.push(token.StringLit, start, lx.cursor.Off-start)
			} else {
				lx.push(token.Invalid, start, lx.cursor.Off-start)
			}
			return
		case '\\':
			if lx.cursor.EOF() {
				lx.reportUnterminated(start, "unterminated string literal")
				lx.push(token.Invalid, start, lx.cursor.Off-start)
				return
			}
			lx.cursor.Bump() // escaped byte
		case '\n':
			valid = false
		}
	}
}

// scanBacktickString scans a `...` multi-line string; unlike "...",
// embedded newlines are legal.
func (lx *Lexer) scanBacktickString(start uint32) {
	lx.cursor.Bump() // opening backtick
	for {
		if lx.cursor.EOF() {
			lx.reportUnterminated(start, "unterminated multi-line string literal")
			lx.push(token.Invalid, start, lx.cursor.Off-start)
			return
		}
		c := lx.cursor.Bump()
		switch c {
		case '`':
			lx.push(token.StringLit, start, lx.cursor.Off-start)
			return
		case '\\':
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		}
	}
}

// scanChar scans a '...' character literal.
func (lx *Lexer) scanChar(start uint32) {
	lx.cursor.Bump() // opening quote
	valid := true
	for {
		if lx.cursor.EOF() {
			lx.reportUnterminated(start, "unterminated char literal")
			lx.push(token.Invalid, start, lx.cursor.Off-start)
			return
		}
		c := lx.cursor.Bump()
		switch c {
		case '\'':
			if valid {
				lx.push(token.CharLit, start, lx.cursor.Off-start)
			} else {
				lx.push(token.Invalid, start, lx.cursor.Off-start)
			}
			return
		case '\\':
			if lx.cursor.EOF() {
				lx.reportUnterminated(start, "unterminated char literal")
				lx.push(token.Invalid, start, lx.cursor.Off-start)
				return
			}
			lx.cursor.Bump()
		case '\n':
			valid = false
		}
	}
}

func (lx *Lexer) reportUnterminated(start uint32, msg string) {
	if lx.bag == nil {
		return
	}
	lx.bag.Report(diag.Err, diag.CodeUnterminatedLiteral, lx.span(start, lx.cursor.Off), msg)
}
