package lexer

import "github.com/Lukide0/Koolang-old/internal/token"

// scanNumberZero handles a literal starting with '0', which may introduce
// a base prefix (0x, 0b, 0o) before falling back to plain decimal scanning.
func (lx *Lexer) scanNumberZero(start uint32) {
	lx.cursor.Bump() // consume '0'
	switch lx.cursor.Peek() {
	case 'x':
		lx.cursor.Bump()
		lx.scanDigits(isHexDigit)
		lx.push(token.NumberLit, start, lx.cursor.Off-start)
	case 'b':
		lx.cursor.Bump()
		lx.scanDigits(isBinDigit)
		lx.push(token.NumberLit, start, lx.cursor.Off-start)
	case 'o':
		lx.cursor.Bump()
		lx.scanDigits(isOctDigit)
		lx.push(token.NumberLit, start, lx.cursor.Off-start)
	default:
		lx.scanNumberBody(start)
	}
}

func (lx *Lexer) scanNumber(start uint32) {
	lx.scanNumberBody(start)
}

// scanNumberBody scans decimal digits (with '_' separators), an optional
// '.'-introduced fractional part (requiring at least one digit after the
// period, per spec §4.1), and emits NumberLit or FloatLit accordingly.
func (lx *Lexer) scanNumberBody(start uint32) {
	lx.scanDigits(isDigit)

	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump() // '.'
		lx.scanDigits(isDigit)
		lx.push(token.FloatLit, start, lx.cursor.Off-start)
		return
	}
	lx.push(token.NumberLit, start, lx.cursor.Off-start)
}

func (lx *Lexer) scanDigits(pred func(byte) bool) {
	for !lx.cursor.EOF() {
		c := lx.cursor.Peek()
		if pred(c) || c == '_' {
			lx.cursor.Bump()
			continue
		}
		break
	}
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isBinDigit(b byte) bool { return b == '0' || b == '1' }

func isOctDigit(b byte) bool { return b >= '0' && b <= '7' }
