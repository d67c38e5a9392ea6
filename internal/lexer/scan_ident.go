package lexer

import "github.com/Lukide0/Koolang-old/internal/token"

// scanIdent consumes [A-Za-z_][A-Za-z0-9_]* starting at start, then
// classifies the result as a keyword, the underscore token, or a plain
// identifier.
func (lx *Lexer) scanIdent(start uint32) {
	for !lx.cursor.EOF() {
		c := lx.cursor.Peek()
		if isLetter(c) || isDigit(c) {
			lx.cursor.Bump()
			continue
		}
		break
	}
	end := lx.cursor.Off

	if end-start == 1 && lx.file.Content[start] == '_' {
		lx.push(token.Underscore, start, end-start)
		return
	}

	text := string(lx.file.Content[start:end])
	if kw, ok := token.LookupKeyword(text); ok {
		lx.push(kw, start, end-start)
		return
	}
	lx.push(token.Ident, start, end-start)
}
