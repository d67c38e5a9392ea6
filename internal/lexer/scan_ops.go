package lexer

import (
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// scanOperator handles punctuation, multi-char operators, and comments,
// i.e. everything scanIdent/scanNumber/scanString don't own.
func (lx *Lexer) scanOperator(start uint32) {
	c := lx.cursor.Bump()

	if tag, ok := singleByteTokens[c]; ok {
		lx.push(tag, start, 1)
		return
	}

	switch c {
	case '?':
		lx.two('?', token.QuestionQuestion, token.Question, start)
	case ':':
		lx.two(':', token.ColonColon, token.Colon, start)
	case '+':
		lx.two('=', token.PlusEq, token.Plus, start)
	case '*':
		lx.two('=', token.StarEq, token.Star, start)
	case '%':
		lx.two('=', token.ModEq, token.Mod, start)
	case '!':
		lx.two('=', token.NotEq, token.Bang, start)
	case '=':
		lx.two('=', token.EqEq, token.Eq, start)
	case '^':
		lx.two('=', token.CaretEq, token.Caret, start)
	case '-':
		switch lx.cursor.Peek() {
		case '=':
			lx.cursor.Bump()
			lx.push(token.MinusEq, start, 2)
		case '>':
			lx.cursor.Bump()
			lx.push(token.Arrow, start, 2)
		default:
			lx.push(token.Minus, start, 1)
		}
	case '&':
		switch lx.cursor.Peek() {
		case '&':
			lx.cursor.Bump()
			lx.push(token.AmpAmp, start, 2)
		case '=':
			lx.cursor.Bump()
			lx.push(token.AmpEq, start, 2)
		default:
			lx.push(token.Amp, start, 1)
		}
	case '|':
		switch lx.cursor.Peek() {
		case '|':
			lx.cursor.Bump()
			lx.push(token.PipePipe, start, 2)
		case '=':
			lx.cursor.Bump()
			lx.push(token.PipeEq, start, 2)
		default:
			lx.push(token.Pipe, start, 1)
		}
	case '/':
		lx.scanSlash(start)
	default:
		if lx.bag != nil {
			lx.bag.Report(diag.Err, diag.CodeUnknownByte, lx.span(start, start+1), "unknown byte")
		}
		lx.push(token.Invalid, start, 1)
	}
}

// two emits eqTag if the next byte equals next, consuming it; otherwise
// emits plain for a single byte.
func (lx *Lexer) two(next byte, eqTag, plain token.Kind, start uint32) {
	if lx.cursor.Peek() == next {
		lx.cursor.Bump()
		lx.push(eqTag, start, 2)
		return
	}
	lx.push(plain, start, 1)
}

func (lx *Lexer) scanSlash(start uint32) {
	switch lx.cursor.Peek() {
	case '=':
		lx.cursor.Bump()
		lx.push(token.SlashEq, start, 2)
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		// Line comments are trivia: not emitted as a token (spec §4.1).
	case '*':
		lx.scanBlockComment(start)
	default:
		lx.push(token.Slash, start, 1)
	}
}

// scanBlockComment consumes /* ... */, greedily recognizing /** ... */ as
// a DocComment token rather than discarded trivia. An unterminated
// comment at EOF yields a single Invalid token for the open span.
func (lx *Lexer) scanBlockComment(start uint32) {
	lx.cursor.Bump() // '*'

	isDoc := lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) != '/'
	if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
		// "/**/" is an empty comment, not a doc-comment: warn and discard.
		lx.cursor.Bump()
		lx.cursor.Bump()
		if lx.bag != nil {
			lx.bag.Report(diag.Warn, diag.CodeEmptyBlockComment, lx.span(start, lx.cursor.Off), "empty block comment")
		}
		return
	}

	for {
		if lx.cursor.EOF() {
			if lx.bag != nil {
				lx.bag.Report(diag.Err, diag.CodeUnterminatedLiteral, lx.span(start, lx.cursor.Off), "unterminated block comment")
			}
			lx.push(token.Invalid, start, lx.cursor.Off-start)
			return
		}
		if lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if isDoc {
				lx.push(token.DocComment, start, lx.cursor.Off-start)
			}
			return
		}
		lx.cursor.Bump()
	}
}
