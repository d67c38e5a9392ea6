// Package parser implements a recursive-descent parser with a Pratt layer
// for expressions, turning a token.List into an ast.Tree.
package parser

import (
	"fmt"

	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// Parser consumes a token.List and produces an ast.Tree.
type Parser struct {
	file    *source.File
	tokens  *token.List
	bag     *diag.Bag
	builder *ast.Builder

	pos token.Index // current token index into tokens

	// noStructLit suppresses struct-literal recognition (`Name { ... }`)
	// while parsing if/while/for conditions, where a brace would otherwise
	// be ambiguous with the block that follows. Incremented/decremented
	// around condition parsing rather than a bool, so nested conditions
	// (a condition containing a parenthesized sub-expression with its own
	// call arguments) compose correctly.
	noStructLit int
}

// New creates a Parser over tokens, reporting errors into bag.
func New(file *source.File, tokens *token.List, bag *diag.Bag) *Parser {
	return &Parser{
		file:    file,
		tokens:  tokens,
		bag:     bag,
		builder: ast.NewBuilder(),
		pos:     1, // skip the StartOfFile sentinel
	}
}

// Parse runs the parser to completion and returns the resulting Tree.
func (p *Parser) Parse() *ast.Tree {
	root := p.builder.Reserve(ast.Root, token.NoIndex)
	mark := p.builder.ScratchLen()

	for !p.at(token.EOF) {
		before := p.pos
		item := p.topLevelItem()
		if item != ast.NoIndex {
			p.builder.PushScratch(item)
		}
		if p.pos == before {
			// Safety net: topLevelItem must always make progress; if a
			// production forgot to advance, force one token so the
			// parser cannot loop forever on malformed input.
			p.advance()
		}
	}

	start, count := p.builder.FlushMeta(mark)
	p.builder.Fill(root, ast.Index(start), ast.Index(count))
	return p.builder.Tree
}

// --- token stream helpers ---

func (p *Parser) cur() token.Kind { return p.tokens.Kind(p.pos) }

func (p *Parser) at(k token.Kind) bool { return p.cur() == k }

func (p *Parser) atAny(ks ...token.Kind) bool {
	c := p.cur()
	for _, k := range ks {
		if c == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Index {
	i := p.pos
	if p.cur() != token.EOF {
		p.pos++
	}
	return i
}

// eat consumes and returns the current token if it matches k, else
// returns NoIndex without advancing.
func (p *Parser) eat(k token.Kind) token.Index {
	if p.at(k) {
		return p.advance()
	}
	return token.NoIndex
}

// expect consumes a token of kind k, reporting an error and returning
// false if the current token doesn't match.
func (p *Parser) expect(k token.Kind) (token.Index, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf(diag.CodeExpectedToken, "expected %s, found %s", k, p.cur())
	return token.NoIndex, false
}

func (p *Parser) expectSemicolon() bool {
	if _, ok := p.expect(token.Semi); !ok {
		p.errorf(diag.CodeMissingSemicolon, "missing semicolon")
		return false
	}
	return true
}

func (p *Parser) span(tok token.Index) source.Span { return p.tokens.Span(tok) }

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	if p.bag == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	p.bag.Report(diag.Err, code, p.span(p.pos), msg)
}

func (p *Parser) create(tag ast.Tag, main token.Index, lhs, rhs ast.Index) ast.Index {
	return p.builder.Create(tag, main, lhs, rhs)
}

// synchronize skips tokens until a likely statement/item boundary, used
// by callers that want to recover after a NoIndex-returning production
// (spec §4.2's error-recovery policy: abort the enclosing item, continue
// at the next top-level statement).
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.eat(token.Semi) != token.NoIndex {
			return
		}
		switch p.cur() {
		case token.KwImport, token.KwConst, token.KwFn, token.KwVariant,
			token.KwEnum, token.KwStruct, token.KwTrait, token.KwImpl, token.CurlyR:
			return
		}
		p.advance()
	}
}
