package parser

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// block parses a `{ stmt... }` body.
func (p *Parser) block() ast.Index {
	if _, ok := p.expect(token.CurlyL); !ok {
		return ast.NoIndex
	}
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		before := p.pos
		s := p.statement()
		if s != ast.NoIndex {
			p.builder.PushScratch(s)
		} else {
			p.synchronize()
		}
		if p.pos == before {
			p.advance()
		}
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.Block, token.NoIndex, ast.Index(start), ast.Index(count))
}

// statement parses a single statement inside a block.
func (p *Parser) statement() ast.Index {
	switch p.cur() {
	case token.KwVar:
		return p.varStmt()
	case token.KwConst:
		return p.localConstStmt()
	case token.KwReturn:
		return p.returnStmt()
	case token.KwBreak:
		return p.breakStmt()
	case token.KwContinue:
		return p.continueStmt()
	case token.KwIf:
		return p.ifStmt()
	case token.KwFor:
		return p.forStmt(token.NoIndex)
	case token.KwWhile:
		return p.whileStmt(token.NoIndex)
	case token.Hashtag:
		return p.labeledLoopStmt()
	case token.Underscore:
		return p.discardStmt()
	case token.CurlyL:
		return p.block()
	default:
		return p.exprStmt()
	}
}

// varStmt parses `var pattern = expr;` or `var pattern: Type = expr;`.
func (p *Parser) varStmt() ast.Index {
	p.advance() // 'var'
	pat := p.parsePattern()
	if pat == ast.NoIndex {
		return ast.NoIndex
	}
	if p.eat(token.Eq) == token.NoIndex {
		p.errorf(diag.CodeExpectedToken, "expected '=' in var statement")
		return ast.NoIndex
	}
	value := p.expr()
	if value == ast.NoIndex {
		return ast.NoIndex
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	return p.create(ast.VarStmt, token.NoIndex, pat, value)
}

// localConstStmt parses `const name: Type? = expr;` inside a block.
func (p *Parser) localConstStmt() ast.Index {
	p.advance() // 'const'
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
	return p.create(ast.LocalConstStmt, name, ty, value)
}

func (p *Parser) returnStmt() ast.Index {
	p.advance() // 'return'
	if p.eat(token.Semi) != token.NoIndex {
		return p.create(ast.ReturnStmt, token.NoIndex, ast.NoIndex, ast.NoIndex)
	}
	value := p.expr()
	if value == ast.NoIndex {
		return ast.NoIndex
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	return p.create(ast.ReturnStmt, token.NoIndex, value, ast.NoIndex)
}

func (p *Parser) breakStmt() ast.Index {
	p.advance() // 'break'
	label := token.Index(token.NoIndex)
	if p.at(token.Hashtag) {
		p.advance()
		l, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
		label = l
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	return p.create(ast.BreakStmt, label, ast.NoIndex, ast.NoIndex)
}

func (p *Parser) continueStmt() ast.Index {
	p.advance() // 'continue'
	label := token.Index(token.NoIndex)
	if p.at(token.Hashtag) {
		p.advance()
		l, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
		label = l
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	return p.create(ast.ContinueStmt, label, ast.NoIndex, ast.NoIndex)
}

// discardStmt parses `_ = expr;`.
func (p *Parser) discardStmt() ast.Index {
	p.advance() // '_'
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
	return p.create(ast.DiscardStmt, token.NoIndex, value, ast.NoIndex)
}

func (p *Parser) exprStmt() ast.Index {
	value := p.expr()
	if value == ast.NoIndex {
		return ast.NoIndex
	}
	if !p.expectSemicolon() {
		return ast.NoIndex
	}
	return p.create(ast.ExprStmt, token.NoIndex, value, ast.NoIndex)
}

// ifStmt parses `if cond { ... } else if cond { ... } else { ... }`,
// the else-if chain represented as a nested IfStmt in the Else slot.
func (p *Parser) ifStmt() ast.Index {
	p.advance() // 'if'
	p.noStructLit++
	cond := p.expr()
	p.noStructLit--
	if cond == ast.NoIndex {
		return ast.NoIndex
	}
	then := p.block()
	if then == ast.NoIndex {
		return ast.NoIndex
	}

	elseNode := ast.Index(ast.NoIndex)
	if p.eat(token.KwElse) != token.NoIndex {
		if p.at(token.KwIf) {
			elseNode = p.ifStmt()
		} else {
			elseNode = p.block()
		}
		if elseNode == ast.NoIndex {
			return ast.NoIndex
		}
	}

	rhsStart := p.builder.PushFixed(then, elseNode)
	return p.create(ast.IfStmt, token.NoIndex, cond, ast.Index(rhsStart))
}

// labeledLoopStmt parses `#label: for ...` / `#label: while ...`.
func (p *Parser) labeledLoopStmt() ast.Index {
	p.advance() // '#'
	label, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.Colon); !ok {
		return ast.NoIndex
	}
	switch p.cur() {
	case token.KwFor:
		return p.forStmt(label)
	case token.KwWhile:
		return p.whileStmt(label)
	default:
		p.errorf(diag.CodeExpectedToken, "expected 'for' or 'while' after label")
		return ast.NoIndex
	}
}

// forStmt parses `for pattern in iterable { ... }`.
func (p *Parser) forStmt(label token.Index) ast.Index {
	p.advance() // 'for'
	pat := p.parsePattern()
	if pat == ast.NoIndex {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.KwIn); !ok {
		return ast.NoIndex
	}
	p.noStructLit++
	iterable := p.expr()
	p.noStructLit--
	if iterable == ast.NoIndex {
		return ast.NoIndex
	}
	body := p.block()
	if body == ast.NoIndex {
		return ast.NoIndex
	}
	lhsStart := p.builder.PushFixed(pat, iterable, body)
	return p.create(ast.ForStmt, label, ast.Index(lhsStart), ast.NoIndex)
}

// whileStmt parses `while cond { ... }`.
func (p *Parser) whileStmt(label token.Index) ast.Index {
	p.advance() // 'while'
	p.noStructLit++
	cond := p.expr()
	p.noStructLit--
	if cond == ast.NoIndex {
		return ast.NoIndex
	}
	body := p.block()
	if body == ast.NoIndex {
		return ast.NoIndex
	}
	return p.create(ast.WhileStmt, label, cond, body)
}
