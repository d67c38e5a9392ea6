package parser

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// topLevelItem dispatches on the current token to the matching
// declaration production. A NoIndex result signals a parse error that
// has already been reported; the caller resynchronizes and continues.
func (p *Parser) topLevelItem() ast.Index {
	switch p.cur() {
	case token.KwImport:
		item := p.importDecl()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwPub, token.KwConst:
		item := p.pubOrConstItem()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwStatic:
		item := p.staticDecl()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwFn:
		item := p.fnDecl(false)
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwStruct:
		item := p.structDecl()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwEnum:
		item := p.enumDecl()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwVariant:
		item := p.variantDecl()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwTrait:
		item := p.traitDecl()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	case token.KwImpl:
		item := p.implDecl()
		if item == ast.NoIndex {
			p.synchronize()
		}
		return item

	default:
		p.errorf(diag.CodeExpectedToken, "expected a top-level declaration, found %s", p.cur())
		p.synchronize()
		return ast.NoIndex
	}
}

// pubOrConstItem disambiguates `pub? const ...` (a module-level const
// declaration) from `pub? const fn ...` (a const function), matching
// spec §4.1's `const` reuse between the two forms.
func (p *Parser) pubOrConstItem() ast.Index {
	pub := p.eat(token.KwPub) != token.NoIndex

	if p.at(token.KwConst) {
		save := p.pos
		p.advance() // 'const'
		if p.at(token.KwFn) {
			return p.fnDeclFlags(pub, true)
		}
		p.pos = save
		return p.constDecl(pub)
	}

	if pub && p.at(token.KwFn) {
		return p.fnDeclFlags(true, false)
	}

	p.errorf(diag.CodeExpectedToken, "expected a declaration after 'pub'")
	return ast.NoIndex
}

// importDecl parses `import a::a;`, `import a::b = c;`, and the braced
// group form `import a::{b, c = C, d::e, f::g = G};`, where a braced
// group shares the path prefix that precedes it across every member and
// each member may itself carry its own `= alias` (spec §8 scenario 1).
func (p *Parser) importDecl() ast.Index {
	p.advance() // 'import'
	mark := p.builder.ScratchLen()
	if !p.importPath(nil) {
		return ast.NoIndex
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.ImportDecl, token.NoIndex, ast.Index(start), ast.Index(count))
}

// importPath parses one path, continuing the segments already collected
// in prefix, and pushes the resulting ImportItem node(s) onto the
// scratch stack. Hitting `{` instead of a further `::ident` hands off to
// importGroup, which fans the shared prefix out across each member.
func (p *Parser) importPath(prefix []token.Index) bool {
	for {
		if p.at(token.CurlyL) {
			return p.importGroup(prefix)
		}
		seg, ok := p.expect(token.Ident)
		if !ok {
			return false
		}
		prefix = append(prefix, seg)
		if p.eat(token.ColonColon) != token.NoIndex {
			continue
		}
		break
	}

	alias := token.NoIndex
	if p.eat(token.Eq) != token.NoIndex {
		a, ok := p.expect(token.Ident)
		if !ok {
			return false
		}
		alias = a
	}
	p.builder.PushScratch(p.emitImportItem(alias, prefix))
	return true
}

func (p *Parser) importGroup(prefix []token.Index) bool {
	p.advance() // '{'
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		memberPrefix := append([]token.Index(nil), prefix...)
		if !p.importPath(memberPrefix) {
			return false
		}
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	_, ok := p.expect(token.CurlyR)
	return ok
}

// emitImportItem records segs (the full dotted path, including any
// prefix shared with sibling group members) as an ImportItem node.
func (p *Parser) emitImportItem(alias token.Index, segs []token.Index) ast.Index {
	mark := p.builder.ScratchLen()
	for _, s := range segs {
		p.builder.PushScratch(ast.Index(s))
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.ImportItem, alias, ast.Index(start), ast.Index(count))
}

// constDecl parses `pub? const name: Type? = expr;`.
func (p *Parser) constDecl(pub bool) ast.Index {
	_ = pub // visibility is not modeled on ConstDecl in this grammar; reserved for symbol-table pass
	if _, ok := p.expect(token.KwConst); !ok {
		return ast.NoIndex
	}
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	ty := ast.Index(ast.NoIndex)
	if p.eat(token.Colon) != token.NoIndex {
		ty = p.parseType()
		if ty == ast.NoIndex {
			return ast.NoIndex
		}
	}
	if _, ok := p.expect(token.Eq); !ok {
		return ast.NoIndex
	}
	value := p.expr()
	if value == ast.NoIndex {
		return ast.NoIndex
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	return p.create(ast.ConstDecl, name, ty, value)
}

// staticDecl parses `static name: Type? = expr;`.
func (p *Parser) staticDecl() ast.Index {
	p.advance() // 'static'
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	ty := ast.Index(ast.NoIndex)
	if p.eat(token.Colon) != token.NoIndex {
		ty = p.parseType()
		if ty == ast.NoIndex {
			return ast.NoIndex
		}
	}
	if _, ok := p.expect(token.Eq); !ok {
		return ast.NoIndex
	}
	value := p.expr()
	if value == ast.NoIndex {
		return ast.NoIndex
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	return p.create(ast.StaticDecl, name, ty, value)
}

const (
	fnFlagPub   = 1
	fnFlagConst = 2
)

func (p *Parser) fnDecl(isConst bool) ast.Index {
	return p.fnDeclFlags(false, isConst)
}

// fnDeclFlags parses `fn name(params) -> RetType? { body }` or, for a
// trait signature, without a body (terminated by `;` instead).
func (p *Parser) fnDeclFlags(pub, isConst bool) ast.Index {
	if _, ok := p.expect(token.KwFn); !ok {
		return ast.NoIndex
	}
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	params := p.paramList()
	if params == ast.NoIndex {
		return ast.NoIndex
	}
	ret := ast.Index(ast.NoIndex)
	if p.eat(token.Arrow) != token.NoIndex {
		ret = p.parseType()
		if ret == ast.NoIndex {
			return ast.NoIndex
		}
	}

	body := ast.Index(ast.NoIndex)
	if p.at(token.CurlyL) {
		body = p.block()
		if body == ast.NoIndex {
			return ast.NoIndex
		}
	} else if !p.expectSemicolon() {
		return ast.NoIndex
	}

	lhsStart := p.builder.PushFixed(params, ret, body)
	flags := ast.Index(0)
	if pub {
		flags |= fnFlagPub
	}
	if isConst {
		flags |= fnFlagConst
	}
	return p.create(ast.FnDecl, name, ast.Index(lhsStart), flags)
}

func (p *Parser) paramList() ast.Index {
	if _, ok := p.expect(token.ParenL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.ParenR) && !p.at(token.EOF) {
		param := p.param()
		if param == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(param)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.ParenR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.Params, token.NoIndex, ast.Index(start), ast.Index(count))
}

func (p *Parser) param() ast.Index {
	mut := p.eat(token.KwMut) != token.NoIndex
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.Colon); !ok {
		return ast.NoIndex
	}
	ty := p.parseType()
	if ty == ast.NoIndex {
		return ast.NoIndex
	}
	flags := ast.Index(0)
	if mut {
		flags = 1
	}
	return p.create(ast.Param, name, ty, flags)
}

// structDecl parses `struct Name { field: Type, ... }`.
func (p *Parser) structDecl() ast.Index {
	p.advance() // 'struct'
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.CurlyL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		fieldName, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
		if _, ok := p.expect(token.Colon); !ok {
			return ast.NoIndex
		}
		ty := p.parseType()
		if ty == ast.NoIndex {
			return ast.NoIndex
		}
		field := p.create(ast.Field, fieldName, ty, ast.NoIndex)
		p.builder.PushScratch(field)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.StructDecl, name, ast.Index(start), ast.Index(count))
}

// enumDecl parses `enum Name { A, B = expr, C }`.
func (p *Parser) enumDecl() ast.Index {
	p.advance() // 'enum'
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.CurlyL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		variantName, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
		value := ast.Index(ast.NoIndex)
		if p.eat(token.Eq) != token.NoIndex {
			value = p.expr()
			if value == ast.NoIndex {
				return ast.NoIndex
			}
		}
		variant := p.create(ast.EnumVariant, variantName, value, ast.NoIndex)
		p.builder.PushScratch(variant)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.EnumDecl, name, ast.Index(start), ast.Index(count))
}

// variantDecl parses `variant Name { Case1, Case2(Type) }` (a tagged
// union; payload type is optional per case).
func (p *Parser) variantDecl() ast.Index {
	p.advance() // 'variant'
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.CurlyL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		caseName, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
		payload := ast.Index(ast.NoIndex)
		if p.eat(token.ParenL) != token.NoIndex {
			payload = p.parseType()
			if payload == ast.NoIndex {
				return ast.NoIndex
			}
			if _, ok := p.expect(token.ParenR); !ok {
				return ast.NoIndex
			}
		}
		c := p.create(ast.VariantCase, caseName, payload, ast.NoIndex)
		p.builder.PushScratch(c)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.VariantDecl, name, ast.Index(start), ast.Index(count))
}

// traitDecl parses `trait Name { fn sig(...) -> T; ... }` (signatures
// only; a trait method body is a parse error).
func (p *Parser) traitDecl() ast.Index {
	p.advance() // 'trait'
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.CurlyL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		sig := p.fnDecl(false)
		if sig == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(sig)
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.TraitDecl, name, ast.Index(start), ast.Index(count))
}

// implDecl parses `impl Name { fn method(...) { ... } ... }`.
func (p *Parser) implDecl() ast.Index {
	p.advance() // 'impl'
	name, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.CurlyL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		method := p.fnDecl(false)
		if method == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(method)
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.ImplDecl, name, ast.Index(start), ast.Index(count))
}
