package kir

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// genStmt lowers one block-level statement, returning the instruction
// it produced (if any is worth recording in the block's child list).
func (g *Generator) genStmt(i ast.Index) (Index, bool) {
	n := g.node(i)
	switch n.Tag {
	case ast.VarStmt:
		return g.genVar(i, n), true
	case ast.LocalConstStmt:
		return g.genLocalConst(i, n), true
	case ast.ReturnStmt:
		return g.genReturn(i, n), true
	case ast.BreakStmt:
		return g.genBreak(i, n), true
	case ast.ContinueStmt:
		return g.genContinue(i, n), true
	case ast.IfStmt:
		return g.genIf(i, n), true
	case ast.ForStmt:
		return g.genFor(i, n), true
	case ast.WhileStmt:
		return g.genWhile(i, n), true
	case ast.DiscardStmt:
		return g.genDiscard(i, n), true
	case ast.ExprStmt:
		ref := g.genExpr(n.Lhs)
		return g.kir.createInst(Invalid, Data{Ref: ref}), true
	case ast.Block:
		return g.genBlock(i), true
	default:
		g.errorf(n.Main, diag.CodeExpectedToken, "unsupported statement")
		return NoIndex, false
	}
}

// genVar lowers `var pattern = expr;`. Only the single-binding and
// discard patterns are given instructions directly; tuple/struct
// destructuring binds each leaf the same way, recursively.
func (g *Generator) genVar(i ast.Index, n ast.Node) Index {
	value := g.genExpr(n.Rhs)
	return g.genPatternBind(n.Lhs, value)
}

func (g *Generator) genPatternBind(patNode ast.Index, value Ref) Index {
	pat := g.node(patNode)
	switch pat.Tag {
	case ast.PatDiscard:
		return g.kir.createInst(Discard, Data{Ref: value})

	case ast.PatBind:
		name := g.internTok(pat.Main)
		flags := uint32(0)
		if pat.Rhs == 1 {
			flags = SymbolMut
		}
		inst := g.kir.createInst(VarDecl, Data{NodePl: NodePl{Node: patNode, Extra: g.kir.pushExtra(uint32(value.Offset))}})
		if _, ok := g.scopes.Declare(name, inst, flags); !ok {
			g.errorf(pat.Main, diag.CodeDuplicateSymbol, "duplicate symbol %q", g.tokText(pat.Main))
		}
		return inst

	case ast.PatTuple:
		// A tuple pattern destructures positionally; each leaf binds to
		// the same `value` Ref (Sema resolves the actual element type
		// and offset - KIR only records the binding shape).
		var last Index
		for _, el := range g.tree.MetaRange(pat.Lhs, pat.Rhs) {
			last = g.genPatternBind(el, value)
		}
		return last

	case ast.PatStruct:
		// A struct pattern destructures by field name; each leaf also
		// binds to the same `value` Ref; Sema projects the matching
		// field's offset out of it the same way it does for PatTuple.
		var last Index
		for _, f := range g.tree.MetaRange(pat.Lhs, pat.Rhs) {
			fn := g.node(f)
			bindTok := token.Index(fn.Lhs)
			if bindTok == token.NoIndex {
				bindTok = fn.Main
			}
			name := g.internTok(bindTok)
			inst := g.kir.createInst(VarDecl, Data{NodePl: NodePl{Node: f, Extra: g.kir.pushExtra(uint32(value.Offset))}})
			if _, ok := g.scopes.Declare(name, inst, 0); !ok {
				g.errorf(bindTok, diag.CodeDuplicateSymbol, "duplicate symbol %q", g.tokText(bindTok))
			}
			last = inst
		}
		return last

	default:
		g.errorf(pat.Main, diag.CodeExpectedToken, "unsupported pattern in var statement")
		return NoIndex
	}
}

func (g *Generator) genLocalConst(i ast.Index, n ast.Node) Index {
	name := g.internTok(n.Main)
	typeRef := NoRef
	if n.Lhs != ast.NoIndex {
		typeRef = g.genType(n.Lhs)
	}
	valueRef := g.genExpr(n.Rhs)
	extra := g.kir.pushExtra(uint32(typeRef.Offset), uint32(valueRef.Offset))
	inst := g.kir.createInst(ConstDeclInst, Data{NodePl: NodePl{Node: i, Extra: extra}})
	if _, ok := g.scopes.Declare(name, inst, SymbolConst); !ok {
		g.errorf(n.Main, diag.CodeDuplicateSymbol, "duplicate symbol %q", g.tokText(n.Main))
	}
	return inst
}

func (g *Generator) genReturn(i ast.Index, n ast.Node) Index {
	value := NoRef
	if n.Lhs != ast.NoIndex {
		value = g.genExpr(n.Lhs)
	}
	return g.kir.createInst(BreakInline, Data{Bin: Bin{Lhs: RefInst(NoIndex), Rhs: value}})
}

func (g *Generator) genBreak(i ast.Index, n ast.Node) Index {
	label := g.internTok(n.Main)
	target, ok := g.labels.find(label)
	if !ok {
		g.errorf(n.Main, diag.CodeExpectedToken, "break outside of a loop")
		target = NoIndex
	}
	return g.kir.createInst(Break, Data{Ref: RefInst(target)})
}

func (g *Generator) genContinue(i ast.Index, n ast.Node) Index {
	label := g.internTok(n.Main)
	target, ok := g.labels.find(label)
	if !ok {
		g.errorf(n.Main, diag.CodeExpectedToken, "continue outside of a loop")
		target = NoIndex
	}
	return g.kir.createInst(Continue, Data{Ref: RefInst(target)})
}

// genIf lowers `if cond { then } else else?`, where else may itself be
// a nested IfStmt (an else-if chain) or a plain Block.
func (g *Generator) genIf(i ast.Index, n ast.Node) Index {
	cond := g.genExpr(n.Lhs)
	payload := g.tree.MetaRange(n.Rhs, 2)
	thenNode, elseNode := payload[0], payload[1]

	thenIdx := g.genBlock(thenNode)
	elseIdx := Index(NoIndex)
	if elseNode != ast.NoIndex {
		elseTag := g.node(elseNode).Tag
		if elseTag == ast.IfStmt {
			elseIdx = g.genIf(elseNode, g.node(elseNode))
		} else {
			elseIdx = g.genBlock(elseNode)
		}
	}

	extra := g.kir.pushExtra(uint32(cond.Offset), uint32(thenIdx), uint32(elseIdx))
	return g.kir.createInst(If, Data{NodePl: NodePl{Node: i, Extra: extra}})
}

// genFor lowers `for pattern in iterable { body }`.
func (g *Generator) genFor(i ast.Index, n ast.Node) Index {
	name := g.internTok(n.Main)
	payload := g.tree.MetaRange(n.Lhs, 3)
	patNode, iterNode, bodyNode := payload[0], payload[1], payload[2]

	iterRef := g.genExpr(iterNode)

	loopInst := g.kir.prepareInst()
	if !g.labels.push(name, loopInst) {
		g.errorf(n.Main, diag.CodeDuplicateLabel, "duplicate label %q", g.tokText(n.Main))
	}
	defer g.labels.pop()

	g.scopes.Enter(ScopeBlock, source.NoStringID)
	g.genPatternBind(patNode, NoRef)
	bodyIdx := g.genBlock(bodyNode)
	g.scopes.Exit()

	extra := g.kir.pushExtra(uint32(iterRef.Offset), uint32(bodyIdx))
	g.kir.setInst(loopInst, Loop, Data{NodePl: NodePl{Node: i, Extra: extra}})
	return loopInst
}

func (g *Generator) genWhile(i ast.Index, n ast.Node) Index {
	name := g.internTok(n.Main)

	loopInst := g.kir.prepareInst()
	if !g.labels.push(name, loopInst) {
		g.errorf(n.Main, diag.CodeDuplicateLabel, "duplicate label %q", g.tokText(n.Main))
	}
	defer g.labels.pop()

	cond := g.genExpr(n.Lhs)
	bodyIdx := g.genBlock(n.Rhs)

	extra := g.kir.pushExtra(uint32(cond.Offset), uint32(bodyIdx))
	g.kir.setInst(loopInst, Loop, Data{NodePl: NodePl{Node: i, Extra: extra}})
	return loopInst
}

func (g *Generator) genDiscard(i ast.Index, n ast.Node) Index {
	if g.isConstReference(n.Lhs) {
		g.errorf(g.node(n.Lhs).Main, diag.CodeDiscardConst, "cannot discard a constant")
	}
	value := g.genExpr(n.Lhs)
	return g.kir.createInst(Discard, Data{Ref: value})
}

// isConstReference reports whether exprNode is a bare identifier
// resolving to a const binding, per spec's "cannot discard
// constant/extern variable" KIR error.
func (g *Generator) isConstReference(exprNode ast.Index) bool {
	en := g.node(exprNode)
	if en.Tag != ast.Ident {
		return false
	}
	name := g.internTok(en.Main)
	meta, ok := g.scopes.Lookup(name)
	if !ok {
		return false
	}
	return g.scopes.SymbolAt(meta).Flags&SymbolConst != 0
}
