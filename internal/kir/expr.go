package kir

import (
	"strconv"
	"strings"

	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// pushRefs writes a count-prefixed list of Refs into Extra and returns
// its start offset, mirroring the cache helpers used for instruction
// child lists but operating on raw Ref encodings instead.
func (g *Generator) pushRefs(refs []Ref) uint32 {
	start := g.kir.pushExtra(uint32(len(refs)))
	for _, r := range refs {
		g.kir.pushExtra(r.Offset)
	}
	return start
}

// resolveName looks up an identifier token: primitive type/value names
// resolve directly to a predefined constant Ref (matching the original's
// GetOrCreateStr table), a name bound in scope resolves to its
// declaring instruction, and anything else becomes an UnresolvedPath for
// Sema to settle once it has a full module symbol table.
func (g *Generator) resolveName(tok token.Index) Ref {
	text := g.tokText(tok)
	if token.IsPrimitiveTypeName(text) {
		return RefConst(primitiveTypeConst(text))
	}
	if token.IsPrimitiveValueName(text) {
		return RefConst(primitiveValueConst(text))
	}

	name := g.internTok(tok)
	if meta, ok := g.scopes.Lookup(name); ok {
		return RefInst(g.scopes.SymbolAt(meta).Inst)
	}
	inst := g.kir.createInst(UnresolvedPath, Data{TokPl: TokPl{Tok: ast.Index(tok)}})
	return RefInst(inst)
}

func primitiveValueConst(text string) uint32 {
	switch text {
	case "null":
		return ConstNullValue
	case "true":
		return ConstBoolTrue
	case "false":
		return ConstBoolFalse
	default:
		return ConstNone
	}
}

func primitiveTypeConst(text string) uint32 {
	switch text {
	case "void":
		return ConstVoidType
	case "bool":
		return ConstBoolType
	case "u8":
		return ConstU8Type
	case "i8":
		return ConstI8Type
	case "u16":
		return ConstU16Type
	case "i16":
		return ConstI16Type
	case "u32":
		return ConstU32Type
	case "i32":
		return ConstI32Type
	case "u64":
		return ConstU64Type
	case "i64":
		return ConstI64Type
	case "usize":
		return ConstUsizeType
	case "isize":
		return ConstIsizeType
	case "f16":
		return ConstF16Type
	case "f32":
		return ConstF32Type
	case "f64":
		return ConstF64Type
	case "str":
		return ConstStrType
	case "char":
		return ConstCharType
	default:
		return ConstNone
	}
}

// genExpr lowers an expression node into a Ref, creating whatever
// instructions it needs along the way.
func (g *Generator) genExpr(i ast.Index) Ref {
	if i == ast.NoIndex {
		return NoRef
	}
	n := g.node(i)
	switch n.Tag {
	case ast.Ident:
		return g.resolveName(n.Main)
	case ast.Literal:
		return g.genLiteral(n)
	case ast.ParenExpr:
		return g.genExpr(n.Lhs)
	case ast.TupleExpr:
		return g.genElemList(i, n, TupleLit)
	case ast.ArrayExpr:
		return g.genElemList(i, n, ArrayLit)
	case ast.ArrayRepeat:
		return g.genArrayRepeat(i, n)
	case ast.StructLit:
		return g.genStructLit(i, n)
	case ast.UnaryExpr:
		return g.genUnary(n)
	case ast.BinExpr:
		return g.genBinOp(n)
	case ast.AssignExpr:
		return g.genAssign(i, n)
	case ast.CallExpr:
		return g.genCall(i, n)
	case ast.IndexExpr:
		return g.genIndex(n)
	case ast.FieldExpr, ast.DerefFieldExpr:
		return g.genField(i, n)
	case ast.TryExpr:
		return RefInst(g.kir.createInst(Try, Data{Ref: g.genExpr(n.Lhs)}))
	case ast.CastExpr:
		return g.genCastLike(n, Cast)
	case ast.AsExpr:
		return g.genCastLike(n, As)
	case ast.NewExpr:
		return RefInst(g.kir.createInst(New, Data{Ref: g.genExpr(n.Lhs)}))
	case ast.BlockExpr:
		return RefInst(g.genBlock(n.Lhs))
	default:
		g.errorf(n.Main, diag.CodeExpectedExpression, "unsupported expression")
		return NoRef
	}
}

func (g *Generator) genLiteral(n ast.Node) Ref {
	text := g.tokText(n.Main)
	switch g.tokens.Kind(n.Main) {
	case token.NumberLit:
		return g.genIntLiteral(n.Main, text)
	case token.FloatLit:
		return g.genFloatLiteral(n.Main, text)
	case token.StringLit, token.CharLit:
		return g.genStrLiteral(n.Main, text)
	default:
		g.errorf(n.Main, diag.CodeExpectedExpression, "unsupported literal")
		return NoRef
	}
}

func (g *Generator) genIntLiteral(tok token.Index, text string) Ref {
	clean := strings.ReplaceAll(text, "_", "")
	val, err := strconv.ParseUint(clean, 0, 64)
	if err != nil {
		g.errorf(tok, diag.CodeExpectedExpression, "invalid integer literal %q", text)
		return NoRef
	}
	switch val {
	case 0:
		return RefConst(ConstZero)
	case 1:
		return RefConst(ConstOne)
	default:
		return RefInst(g.kir.createInst(ConstU64, Data{U64: val, Tok: ast.Index(tok)}))
	}
}

func (g *Generator) genFloatLiteral(tok token.Index, text string) Ref {
	clean := strings.ReplaceAll(text, "_", "")
	val, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		g.errorf(tok, diag.CodeExpectedExpression, "invalid float literal %q", text)
		return NoRef
	}
	return RefInst(g.kir.createInst(ConstF64, Data{F64: val}))
}

// genStrLiteral interns the literal's text with its surrounding
// quote/tick stripped; escape-sequence decoding is left to Sema, which
// is the first pass that needs the decoded bytes rather than just a
// stable handle for deduplication.
func (g *Generator) genStrLiteral(tok token.Index, text string) Ref {
	content := text
	if len(content) >= 2 {
		content = content[1 : len(content)-1]
	}
	id := g.interner.Intern(content)
	inst := g.kir.createInst(ConstStr, Data{TokPl: TokPl{Tok: ast.Index(tok), Extra: uint32(id)}})
	return RefInst(inst)
}

func (g *Generator) genElemList(i ast.Index, n ast.Node, tag Tag) Ref {
	elems := g.tree.MetaRange(n.Lhs, n.Rhs)
	refs := make([]Ref, 0, len(elems))
	for _, el := range elems {
		refs = append(refs, g.genExpr(el))
	}
	extra := g.pushRefs(refs)
	return RefInst(g.kir.createInst(tag, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func (g *Generator) genArrayRepeat(i ast.Index, n ast.Node) Ref {
	value := g.genExpr(n.Lhs)
	count := g.genExpr(n.Rhs)
	return RefInst(g.kir.createInst(ArrayRepeat, Data{Bin: Bin{Lhs: value, Rhs: count}}))
}

func (g *Generator) genStructLit(i ast.Index, n ast.Node) Ref {
	typeRef := g.resolveName(n.Main)
	fields := g.tree.MetaRange(n.Lhs, n.Rhs)
	extra := g.kir.pushExtra(typeRef.Offset, uint32(len(fields)))
	for _, f := range fields {
		fn := g.node(f)
		nameID := g.internTok(fn.Main)
		valRef := g.genExpr(fn.Lhs)
		g.kir.pushExtra(uint32(nameID), valRef.Offset)
	}
	return RefInst(g.kir.createInst(StructExpr, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func unaryTagFor(k token.Kind) (Tag, bool) {
	switch k {
	case token.Minus:
		return Negate, true
	case token.Tilde:
		return BitNot, true
	case token.Bang:
		return LogicalNot, true
	case token.Star:
		return Deref, true
	case token.Amp:
		return AddrOf, true
	default:
		return Invalid, false
	}
}

func (g *Generator) genUnary(n ast.Node) Ref {
	operand := g.genExpr(n.Lhs)
	tag, ok := unaryTagFor(g.tokens.Kind(n.Main))
	if !ok {
		g.errorf(n.Main, diag.CodeExpectedExpression, "unsupported unary operator")
		return NoRef
	}
	return RefInst(g.kir.createInst(tag, Data{Ref: operand, Tok: ast.Index(n.Main)}))
}

func binTagFor(k token.Kind) (Tag, bool) {
	switch k {
	case token.Plus:
		return Add, true
	case token.Minus:
		return Sub, true
	case token.Star:
		return Mul, true
	case token.Slash:
		return Div, true
	case token.Mod:
		return Mod, true
	case token.Amp:
		return BitAnd, true
	case token.Pipe:
		return BitOr, true
	case token.Caret:
		return BitXor, true
	case token.Lt:
		return Lt, true
	case token.Gt:
		return Gt, true
	case token.EqEq:
		return Eq, true
	case token.NotEq:
		return NotEq, true
	case token.AmpAmp:
		return LogicalAnd, true
	case token.PipePipe:
		return LogicalOr, true
	case token.QuestionQuestion:
		return NullCoalesce, true
	default:
		return Invalid, false
	}
}

func (g *Generator) genBinOp(n ast.Node) Ref {
	lhs := g.genExpr(n.Lhs)
	tag, ok := binTagFor(g.tokens.Kind(n.Main))
	if !ok {
		g.errorf(n.Main, diag.CodeExpectedExpression, "unsupported binary operator")
		return NoRef
	}

	if tag == LogicalAnd || tag == LogicalOr {
		return g.genLogicalOp(tag, lhs, n.Main, n.Rhs)
	}

	rhs := g.genExpr(n.Rhs)
	return RefInst(g.kir.createInst(tag, Data{Bin: Bin{Lhs: lhs, Rhs: rhs, Tok: ast.Index(n.Main)}}))
}

// genLogicalOp lowers `a && b` / `a || b`, placing b inside a Block so
// that a short-circuits it (spec's "a && b and a || b place b inside a
// BlockInline so that a short-circuits"): the block holds a single
// BreakInline carrying b's value, which Sema only evaluates once it
// decides a's own constant value doesn't already settle the result.
func (g *Generator) genLogicalOp(tag Tag, lhs Ref, opTok token.Index, rhsNode ast.Index) Ref {
	blockInst := g.kir.prepareInst()
	g.scopes.Enter(ScopeBlock, source.NoStringID)
	rhs := g.genExpr(rhsNode)
	g.scopes.Exit()

	breakInst := g.kir.createInst(BreakInline, Data{Bin: Bin{Lhs: RefInst(blockInst), Rhs: rhs}})
	extra := g.kir.pushExtra(1, uint32(breakInst))
	g.kir.setInst(blockInst, Block, Data{NodePl: NodePl{Node: rhsNode, Extra: extra}})

	return RefInst(g.kir.createInst(tag, Data{Bin: Bin{Lhs: lhs, Rhs: RefInst(blockInst), Tok: ast.Index(opTok)}}))
}

func compoundBinTagFor(k token.Kind) (Tag, bool) {
	switch k {
	case token.PlusEq:
		return Add, true
	case token.MinusEq:
		return Sub, true
	case token.StarEq:
		return Mul, true
	case token.SlashEq:
		return Div, true
	case token.ModEq:
		return Mod, true
	case token.AmpEq:
		return BitAnd, true
	case token.PipeEq:
		return BitOr, true
	case token.CaretEq:
		return BitXor, true
	default:
		return Invalid, false
	}
}

// genAssign lowers `target = value` and its compound forms. A compound
// operator is desugared here into a binary op feeding the plain Assign's
// value slot (`x += y` becomes `Assign(x, Add(x, y))`), rather than
// carried as a distinct instruction shape Sema would otherwise have to
// special-case.
func (g *Generator) genAssign(i ast.Index, n ast.Node) Ref {
	targetRef := g.genExpr(n.Lhs)
	valueRef := g.genExpr(n.Rhs)

	if op := g.tokens.Kind(n.Main); op != token.Eq {
		if binTag, ok := compoundBinTagFor(op); ok {
			valueRef = RefInst(g.kir.createInst(binTag, Data{Bin: Bin{Lhs: targetRef, Rhs: valueRef}}))
		}
	}

	extra := g.kir.pushExtra(targetRef.Offset, valueRef.Offset)
	return RefInst(g.kir.createInst(Assign, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func (g *Generator) genCall(i ast.Index, n ast.Node) Ref {
	callee := g.genExpr(n.Lhs)
	argNodes := g.tree.MetaCounted(n.Rhs)
	argRefs := make([]Ref, 0, len(argNodes))
	for _, a := range argNodes {
		argRefs = append(argRefs, g.genExpr(a))
	}
	extra := g.kir.pushExtra(callee.Offset, uint32(len(argRefs)))
	for _, r := range argRefs {
		g.kir.pushExtra(r.Offset)
	}
	return RefInst(g.kir.createInst(Call, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func (g *Generator) genIndex(n ast.Node) Ref {
	target := g.genExpr(n.Lhs)
	idx := g.genExpr(n.Rhs)
	return RefInst(g.kir.createInst(Index, Data{Bin: Bin{Lhs: target, Rhs: idx}}))
}

func (g *Generator) genField(i ast.Index, n ast.Node) Ref {
	target := g.genExpr(n.Lhs)
	nameID := g.internTok(n.Main)
	deref := uint32(0)
	if n.Tag == ast.DerefFieldExpr {
		deref = 1
	}
	extra := g.kir.pushExtra(target.Offset, uint32(nameID), deref)
	return RefInst(g.kir.createInst(Field, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func (g *Generator) genCastLike(n ast.Node, tag Tag) Ref {
	value := g.genExpr(n.Lhs)
	typeRef := g.genType(n.Rhs)
	return RefInst(g.kir.createInst(tag, Data{Bin: Bin{Lhs: value, Rhs: typeRef, Tok: ast.Index(n.Main)}}))
}

// genType lowers a type expression node into a Ref, the same way
// genExpr lowers a value expression - Sema resolves both kinds of Ref
// through the same symbol table once it exists.
func (g *Generator) genType(i ast.Index) Ref {
	if i == ast.NoIndex {
		return NoRef
	}
	n := g.node(i)
	switch n.Tag {
	case ast.TypePath:
		return g.genTypePath(n)
	case ast.TypeTuple:
		return g.genTypeTuple(i, n)
	case ast.TypeArray:
		return g.genTypeArray(i, n)
	case ast.TypeSlice:
		return RefInst(g.kir.createInst(SliceType, Data{Ref: g.genType(n.Lhs)}))
	case ast.TypeDyn:
		return g.genTypeDyn(i, n)
	case ast.TypeFn:
		return g.genTypeFn(i, n)
	case ast.TypeModifier:
		return g.genTypeModifier(i, n)
	default:
		g.errorf(n.Main, diag.CodeExpectedToken, "unsupported type")
		return NoRef
	}
}

func (g *Generator) genTypePath(n ast.Node) Ref {
	if n.Rhs == 0 {
		// No leading path segments: a bare name, possibly a primitive.
		return g.resolveName(n.Main)
	}
	// A qualified path (`module::Name`) can only be settled once a
	// cross-file symbol table exists, so KIR records it unresolved,
	// anchored at its last segment.
	inst := g.kir.createInst(UnresolvedPath, Data{TokPl: TokPl{Tok: ast.Index(n.Main)}})
	return RefInst(inst)
}

func (g *Generator) genTypeTuple(i ast.Index, n ast.Node) Ref {
	elems := g.tree.MetaRange(n.Lhs, n.Rhs)
	refs := make([]Ref, 0, len(elems))
	for _, e := range elems {
		refs = append(refs, g.genType(e))
	}
	extra := g.pushRefs(refs)
	return RefInst(g.kir.createInst(TupleType, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func (g *Generator) genTypeArray(i ast.Index, n ast.Node) Ref {
	elemRef := g.genType(n.Lhs)
	lenRef := g.genExpr(n.Rhs)
	extra := g.kir.pushExtra(elemRef.Offset, lenRef.Offset)
	return RefInst(g.kir.createInst(ArrayType, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func (g *Generator) genTypeDyn(i ast.Index, n ast.Node) Ref {
	traits := g.tree.MetaRange(n.Lhs, n.Rhs)
	refs := make([]Ref, 0, len(traits))
	for _, t := range traits {
		refs = append(refs, g.genType(t))
	}
	extra := g.pushRefs(refs)
	return RefInst(g.kir.createInst(DynType, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

func (g *Generator) genTypeFn(i ast.Index, n ast.Node) Ref {
	params := g.tree.MetaCounted(n.Lhs)
	refs := make([]Ref, 0, len(params))
	for _, p := range params {
		refs = append(refs, g.genType(p))
	}
	retRef := g.genType(g.tree.FnTypeReturn(n.Lhs))

	extra := g.pushRefs(refs)
	g.kir.pushExtra(retRef.Offset)
	return RefInst(g.kir.createInst(FnType, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}

// Bit layout for a TypeModifier node's Rhs field, mirroring
// internal/parser/types.go's packing exactly (ptr depth in the low 29
// bits, ref/mut as the top two bits).
const (
	typeModPtrMask = 0x1FFFFFFF
	typeModRefBit  = 1 << 29
	typeModMutBit  = 1 << 30
)

func (g *Generator) genTypeModifier(i ast.Index, n ast.Node) Ref {
	base := g.genType(n.Lhs)
	ptrDepth := uint32(n.Rhs) & typeModPtrMask

	flags := uint32(0)
	if uint32(n.Rhs)&typeModRefBit != 0 {
		flags |= 1
	}
	if uint32(n.Rhs)&typeModMutBit != 0 {
		flags |= 2
	}

	extra := g.kir.pushExtra(base.Offset, ptrDepth, flags)
	return RefInst(g.kir.createInst(PtrType, Data{NodePl: NodePl{Node: i, Extra: extra}}))
}
