package parser

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// expr parses a full expression via precedence climbing.
func (p *Parser) expr() ast.Index {
	return p.exprBindingPower(0)
}

// exprBindingPower implements the precedence-climbing loop. minPrec is the
// lowest tier this call is allowed to consume; assignment's right-associativity
// is handled by recursing at the same tier instead of tier+1.
func (p *Parser) exprBindingPower(minPrec int) ast.Index {
	lhs := p.unary()
	if lhs == ast.NoIndex {
		return ast.NoIndex
	}

	for {
		opTok := p.cur()
		prec, rightAssoc := p.getBinaryOperatorPrec(opTok)
		if prec == 0 || prec < minPrec {
			return lhs
		}

		opIndex := p.advance()

		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		rhs := p.exprBindingPower(nextMin)
		if rhs == ast.NoIndex {
			p.errorf(diag.CodeExpectedExpression, "expected expression after operator %s", opTok)
			return ast.NoIndex
		}

		if isAssignOp(opTok) {
			lhs = p.create(ast.AssignExpr, opIndex, lhs, rhs)
		} else {
			lhs = p.create(ast.BinExpr, opIndex, lhs, rhs)
		}
	}
}

// unary parses an optional single prefix operator followed by a postfix
// expression. A second consecutive unary operator is a hard error per
// spec §4.2 ("multiple unary operators").
func (p *Parser) unary() ast.Index {
	if isUnaryOp(p.cur()) {
		opIndex := p.advance()
		if isUnaryOp(p.cur()) {
			p.errorf(diag.CodeMultipleUnaryOps, "multiple consecutive unary operators")
			return ast.NoIndex
		}
		operand := p.unary()
		if operand == ast.NoIndex {
			return ast.NoIndex
		}
		return p.create(ast.UnaryExpr, opIndex, operand, ast.NoIndex)
	}
	return p.postfix()
}

// postfix parses a primary expression followed by any chain of call,
// index, field-access, deref-field-access, or try-operator suffixes.
func (p *Parser) postfix() ast.Index {
	expr := p.primary()
	if expr == ast.NoIndex {
		return ast.NoIndex
	}

	for {
		switch p.cur() {
		case token.ParenL:
			expr = p.callSuffix(expr)
		case token.SquareL:
			p.advance()
			idx := p.expr()
			if idx == ast.NoIndex {
				return ast.NoIndex
			}
			if _, ok := p.expect(token.SquareR); !ok {
				return ast.NoIndex
			}
			expr = p.create(ast.IndexExpr, token.NoIndex, expr, idx)
		case token.Dot:
			p.advance()
			name, ok := p.expect(token.Ident)
			if !ok {
				return ast.NoIndex
			}
			expr = p.create(ast.FieldExpr, name, expr, ast.NoIndex)
		case token.Arrow:
			p.advance()
			name, ok := p.expect(token.Ident)
			if !ok {
				return ast.NoIndex
			}
			expr = p.create(ast.DerefFieldExpr, name, expr, ast.NoIndex)
		case token.Question:
			p.advance()
			expr = p.create(ast.TryExpr, token.NoIndex, expr, ast.NoIndex)
		default:
			return expr
		}
	}
}

// callSuffix parses `(arg, arg, ...)` following a callee expression,
// using the count-prefixed meta-slice convention (see ast.CallExpr).
func (p *Parser) callSuffix(callee ast.Index) ast.Index {
	p.advance() // '('
	mark := p.builder.ScratchLen()
	for !p.at(token.ParenR) && !p.at(token.EOF) {
		arg := p.expr()
		if arg == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(arg)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.ParenR); !ok {
		return ast.NoIndex
	}
	metaStart := p.builder.FlushMetaCounted(mark)
	return p.create(ast.CallExpr, token.NoIndex, callee, metaStart)
}

// primary parses literals, identifiers, parenthesized/tuple expressions,
// array literals, struct literals, and the cast/new prefix forms.
func (p *Parser) primary() ast.Index {
	switch p.cur() {
	case token.NumberLit, token.FloatLit, token.StringLit, token.CharLit:
		tok := p.advance()
		return p.create(ast.Literal, tok, ast.NoIndex, ast.NoIndex)

	case token.Ident:
		return p.identOrStructLit()

	case token.ParenL:
		return p.parenOrTuple()

	case token.SquareL:
		return p.arrayLit()

	case token.KwCast:
		return p.castExpr()

	case token.KwNew:
		p.advance()
		operand := p.unary()
		if operand == ast.NoIndex {
			return ast.NoIndex
		}
		return p.create(ast.NewExpr, token.NoIndex, operand, ast.NoIndex)

	default:
		p.errorf(diag.CodeExpectedExpression, "expected expression, found %s", p.cur())
		return ast.NoIndex
	}
}

// identOrStructLit disambiguates a bare identifier from a struct literal
// `Name { field: expr, ... }`. Struct literals are only recognized here
// when the parser is not inside a context that forbids them (e.g. an
// if/while/for condition), tracked via noStructLit.
func (p *Parser) identOrStructLit() ast.Index {
	name := p.advance()
	if p.noStructLit == 0 && p.at(token.CurlyL) {
		return p.structLitBody(name)
	}
	return p.create(ast.Ident, name, ast.NoIndex, ast.NoIndex)
}

func (p *Parser) structLitBody(name token.Index) ast.Index {
	p.advance() // '{'
	mark := p.builder.ScratchLen()
	for !p.at(token.CurlyR) && !p.at(token.EOF) {
		fieldName, ok := p.expect(token.Ident)
		if !ok {
			return ast.NoIndex
		}
		if _, ok := p.expect(token.Colon); !ok {
			return ast.NoIndex
		}
		value := p.expr()
		if value == ast.NoIndex {
			return ast.NoIndex
		}
		field := p.create(ast.StructLitField, fieldName, value, ast.NoIndex)
		p.builder.PushScratch(field)
		if p.eat(token.Comma) == token.NoIndex {
			break
		}
	}
	if _, ok := p.expect(token.CurlyR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.StructLit, name, ast.Index(start), ast.Index(count))
}

// parenOrTuple parses `(expr)` as a parenthesized expression, or
// `(e1, e2, ...)` / `()` as a tuple expression.
func (p *Parser) parenOrTuple() ast.Index {
	p.advance() // '('
	if p.at(token.ParenR) {
		p.advance()
		return p.create(ast.TupleExpr, token.NoIndex, ast.NoIndex, ast.NoIndex)
	}

	first := p.expr()
	if first == ast.NoIndex {
		return ast.NoIndex
	}

	if p.at(token.Comma) {
		mark := p.builder.ScratchLen()
		p.builder.PushScratch(first)
		for p.eat(token.Comma) != token.NoIndex {
			if p.at(token.ParenR) {
				break
			}
			el := p.expr()
			if el == ast.NoIndex {
				return ast.NoIndex
			}
			p.builder.PushScratch(el)
		}
		if _, ok := p.expect(token.ParenR); !ok {
			return ast.NoIndex
		}
		start, count := p.builder.FlushMeta(mark)
		return p.create(ast.TupleExpr, token.NoIndex, ast.Index(start), ast.Index(count))
	}

	if _, ok := p.expect(token.ParenR); !ok {
		return ast.NoIndex
	}
	return p.create(ast.ParenExpr, token.NoIndex, first, ast.NoIndex)
}

// arrayLit parses `[e1, e2, ...]` or the repeat form `[value; count]`.
func (p *Parser) arrayLit() ast.Index {
	p.advance() // '['
	if p.at(token.SquareR) {
		p.advance()
		return p.create(ast.ArrayExpr, token.NoIndex, ast.NoIndex, ast.NoIndex)
	}

	first := p.expr()
	if first == ast.NoIndex {
		return ast.NoIndex
	}

	if p.eat(token.Semi) != token.NoIndex {
		count := p.expr()
		if count == ast.NoIndex {
			return ast.NoIndex
		}
		if _, ok := p.expect(token.SquareR); !ok {
			return ast.NoIndex
		}
		return p.create(ast.ArrayRepeat, token.NoIndex, first, count)
	}

	mark := p.builder.ScratchLen()
	p.builder.PushScratch(first)
	for p.eat(token.Comma) != token.NoIndex {
		if p.at(token.SquareR) {
			break
		}
		el := p.expr()
		if el == ast.NoIndex {
			return ast.NoIndex
		}
		p.builder.PushScratch(el)
	}
	if _, ok := p.expect(token.SquareR); !ok {
		return ast.NoIndex
	}
	start, count := p.builder.FlushMeta(mark)
	return p.create(ast.ArrayExpr, token.NoIndex, ast.Index(start), ast.Index(count))
}

// castExpr parses `cast(Type, expr)`.
func (p *Parser) castExpr() ast.Index {
	p.advance() // 'cast'
	if _, ok := p.expect(token.ParenL); !ok {
		return ast.NoIndex
	}
	ty := p.parseType()
	if ty == ast.NoIndex {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.Comma); !ok {
		return ast.NoIndex
	}
	value := p.expr()
	if value == ast.NoIndex {
		return ast.NoIndex
	}
	if _, ok := p.expect(token.ParenR); !ok {
		return ast.NoIndex
	}
	return p.create(ast.CastExpr, token.NoIndex, value, ty)
}
