package lexer

import (
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// Lexer converts a file's bytes into a token.List.
type Lexer struct {
	file   *source.File
	cursor Cursor
	bag    *diag.Bag
	list   *token.List
}

// New creates a Lexer for file, reporting lex errors into bag.
func New(file *source.File, bag *diag.Bag) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		bag:    bag,
		list:   token.New(file.ID),
	}
}

// Tokenize runs the lexer to completion and returns the resulting list.
// The final emitted token is always token.EOF (spec §4.1).
func (lx *Lexer) Tokenize() *token.List {
	for {
		if lx.cursor.EOF() {
			lx.push(token.EOF, lx.cursor.Off, 0)
			return lx.list
		}
		lx.scanOne()
	}
}

func (lx *Lexer) push(tag token.Kind, start, length uint32) token.Index {
	return lx.list.Push(tag, start, length)
}

func (lx *Lexer) span(start, end uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: end}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == 0 }

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// scanOne consumes whitespace then scans one lexeme, emitting at most one
// token: line comments, plain block comments and the empty `/**/` are
// consumed without a token (whitespace is likewise skipped, satisfying the
// tokenizer-totality property of spec §8 because whitespace runs are
// bracketed, not unaccounted for, by the tokens on either side).
func (lx *Lexer) scanOne() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() {
		return
	}

	start := lx.cursor.Off
	c := lx.cursor.Peek()

	switch {
	case isLetter(c):
		lx.scanIdent(start)
	case c == '0':
		lx.scanNumberZero(start)
	case isDigit(c):
		lx.scanNumber(start)
	case c == '"':
		lx.scanString(start)
	case c == '`':
		lx.scanBacktickString(start)
	case c == '\'':
		lx.scanChar(start)
	default:
		lx.scanOperator(start)
	}
}

// single-byte token table for brackets and punctuation with no multi-char form.
var singleByteTokens = map[byte]token.Kind{
	'(': token.ParenL, ')': token.ParenR,
	'[': token.SquareL, ']': token.SquareR,
	'{': token.CurlyL, '}': token.CurlyR,
	'<': token.Lt, '>': token.Gt,
	';': token.Semi, '#': token.Hashtag,
	'.': token.Dot, '~': token.Tilde, ',': token.Comma,
}
