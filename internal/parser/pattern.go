package parser

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// parsePattern parses a binding pattern: discard (`_`), a simple
// `mut? name (: Type)?` binding, a tuple pattern, or a struct-destructure
// pattern.
func (p *Parser) parsePattern() ast.Index {
	switch p.cur() {
	case token.Underscore:
		p.advance()
		return p.create(ast.PatDiscard, token.NoIndex, ast.NoIndex, ast.NoIndex)

	case token.ParenL:
		return p.parseTuplePattern()

	case token.Ident, token.KwMut:
		return p.parseIdentPattern()

	default:
		p.errorf(diag.CodeExpectedToken, "expected pattern, found %s", p.cur())
		return ast.NoIndex
	}
}

func (p *Parser) parseIdentPattern() ast.Index {
	mut := p.eat(token.KwMut) != token.NoIndex
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if p.at(token.CurlyL) {
		return p.parseStructPattern(name)
	}
	flags := ast.Index(0)
	if mut {
		flags = 1
	}
	ty := ast.Index(ast.NoIndex)
	if p.eat(token.Colon) != token.NoIndex {
		if ty = p.parseType(); ty == ast.NoIndex {
			return ast.NoIndex
		}
	}
	return p.create(ast.PatBind, name, ty, flags)
}

func (p *Parser) parseTuplePattern() ast.Index {
	p.advance() // '('
	mark := p.builder.ScratchLen()
	for !p.at(token.ParenR) && !p.at(token.EOF) {
		el := p.parsePattern()
		if el == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(el)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.ParenR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.PatTuple, token.NoIndex, ast.Index(start), ast.Index(count))
}

// parseStructPattern parses `Name { field, field -> binding, ... }`.
func (p *Parser) parseStructPattern(typeName token.Index) ast.Index {
	p.advance() // '{'
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		fieldName, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
		bound := ast.Index(token.NoIndex)
		if p.eat(token.Arrow) != token.NoIndex {
			target, ok := p.expect(token.Ident)
			if !ok {
				return ast.NoIndex
			}
			bound = ast.Index(target)
		}
		field := p.create(ast.PatStructField, fieldName, bound, ast.NoIndex)
		p.builder.PushScratch(field)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.PatStruct, typeName, ast.Index(start), ast.Index(count))
}
