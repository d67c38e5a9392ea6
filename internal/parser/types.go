package parser

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// Pointer-depth/ref-marker flag bits packed into TypeModifier.Rhs, per
// spec §4.2.
const (
	typeModPtrMask  = 0x1FFFFFFF // low 29 bits: pointer depth, up to 8 in practice
	typeModRefBit   = 1 << 29
	typeModMutBit   = 1 << 30
)

// parseType parses a full type expression: a base type (path, tuple,
// array, slice, dyn-trait-set, or fn-type) followed by any number of
// `*` (pointer) suffixes and an optional leading `&`/`&mut` ref marker.
func (p *Parser) parseType() ast.Index {
	refBits := 0
	if p.eat(token.Amp) != token.NoIndex {
		refBits |= typeModRefBit
		if p.eat(token.KwMut) != token.NoIndex {
			refBits |= typeModMutBit
		}
	}

	base := p.parseBaseType()
	if base == ast.NoIndex {
		return ast.NoIndex
	}

	ptrDepth := 0
	for p.eat(token.Star) != token.NoIndex {
		ptrDepth++
	}

	if ptrDepth == 0 && refBits == 0 {
		return base
	}
	return p.create(ast.TypeModifier, token.NoIndex, base, ast.Index(ptrDepth|refBits))
}

func (p *Parser) parseBaseType() ast.Index {
	switch p.cur() {
	case token.ParenL:
		return p.parseTupleType()
	case token.SquareL, token.Pipe:
		return p.parseArrayOrSliceType()
	case token.KwDyn:
		return p.parseDynType()
	case token.KwFn:
		return p.parseFnType()
	case token.Ident:
		return p.parseTypePath()
	default:
		p.errorf(diag.CodeExpectedToken, "expected type, found %s", p.cur())
		return ast.NoIndex
	}
}

// parseTypePath parses a `a::b::c` path. The last segment's token is
// stored in Main; preceding segments are token indices packed into Meta.
func (p *Parser) parseTypePath() ast.Index {
	mark := p.builder.ScratchLen()
	last, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	for p.eat(token.ColonColon) != token.NoIndex {
		p.builder.PushScratch(ast.Index(last))
		last, ok = p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
	}
	start, count := p.builder.FlushMeta(mark)
	node := p.builder.Reserve(ast.TypePath, last)
	p.builder.Fill(node, ast.Index(start), ast.Index(count))
	return node
}

func (p *Parser) parseTupleType() ast.Index {
	p.advance() // '('
	mark := p.builder.ScratchLen()
	for !p.at(token.ParenR) && !p.at(token.EOF) {
		el := p.parseType()
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
	return p.create(ast.TypeTuple, token.NoIndex, ast.Index(start), ast.Index(count))
}

// parseArrayOrSliceType parses `[N]T` (array) or `|[T]|` (slice), per
// spec §4.2's bracket conventions.
func (p *Parser) parseArrayOrSliceType() ast.Index {
	if p.eat(token.Pipe) != token.NoIndex {
		if _, ok := p.expect(token.SquareL); !ok {
			return ast.NoIndex
		}
		elem := p.parseType()
		if elem == ast.NoIndex {
			return ast.NoIndex
		}
		if _, ok := p.expect(token.SquareR); !ok {
			return ast.NoIndex
		}
		if _, ok := p.expect(token.Pipe); !ok {
			return ast.NoIndex
		}
		return p.create(ast.TypeSlice, token.NoIndex, elem, ast.NoIndex)
	}

	p.advance() // '['
	length := p.expr()
	if length == ast.NoIndex {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.SquareR); !ok {
		return ast.NoIndex
	}
	elem := p.parseType()
	if elem == ast.NoIndex {
		return ast.NoIndex
	}
	return p.create(ast.TypeArray, token.NoIndex, elem, length)
}

// parseDynType parses `dyn<Trait + Trait>`.
func (p *Parser) parseDynType() ast.Index {
	p.advance() // 'dyn'
	if _, ok := p.expect(token.Lt); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for {
		t := p.parseTypePath()
		if t == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(t)
		if p.eat(token.Plus) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.Gt); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.TypeDyn, token.NoIndex, ast.Index(start), ast.Index(count))
}

// parseFnType parses `fn(T, T) -> T`, using the count-prefixed
// meta-slice convention: Meta[Lhs] is the parameter count, the
// parameter type nodes follow, and the return type node is appended
// immediately after them.
func (p *Parser) parseFnType() ast.Index {
	p.advance() // 'fn'
	if _, ok := p.expect(token.ParenL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.ParenR) && !p.at(token.EOF) {
		t := p.parseType()
		if t == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(t)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.ParenR); !ok {
		return ast.NoIndex
	}

	ret := ast.Index(ast.NoIndex)
	if p.eat(token.Arrow) != token.NoIndex {
		ret = p.parseType()
		if ret == ast.NoIndex {
			return ast.NoIndex
		}
	}

	metaStart := p.builder.FlushMetaCounted(mark)
	p.builder.PushFixed(ret)
	return p.create(ast.TypeFn, token.NoIndex, ast.Index(metaStart), ast.NoIndex)
}
