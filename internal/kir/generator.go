package kir

import (
	"fmt"

	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// Generator lowers a parsed ast.Tree into a Kir, resolving lexical scope
// eagerly (so Sema can later resolve a DeclRef/UnresolvedPath without
// re-walking the AST) while deferring type checking entirely to Sema,
// per spec's "untyped IR" design.
type Generator struct {
	kir      *Kir
	tree     *ast.Tree
	tokens   *token.List
	file     *source.File
	interner *source.Interner
	bag      *diag.Bag

	scopes *scopeTree
	labels *labelStack

	cache []Index // scratch, mirrors ast.Builder's child-collection idiom
}

// NewGenerator creates a Generator over tree, lowering identifiers through
// interner for name dedup.
func NewGenerator(tree *ast.Tree, tokens *token.List, file *source.File, interner *source.Interner, bag *diag.Bag) *Generator {
	return &Generator{
		kir:      New(),
		tree:     tree,
		tokens:   tokens,
		file:     file,
		interner: interner,
		bag:      bag,
		scopes:   newScopeTree(),
		labels:   &labelStack{},
	}
}

// DeclRange names one top-level declaration's root KIR instruction and
// the half-open range of instruction indices its lowering produced -
// the pre-pass input a Sema Builder needs (spec §4.5's "recording each
// decl's KIR instruction range [prev_end, decl_end)").
type DeclRange struct {
	Inst       Index
	Start, End Index
}

// Generate lowers every top-level item in tree, returning the
// resulting Kir together with each top-level declaration's KIR range
// (import declarations produce no instruction and are omitted).
func (g *Generator) Generate() (*Kir, []DeclRange) {
	var decls []DeclRange
	for _, item := range g.tree.Root() {
		start := Index(len(g.kir.Tag))
		inst := g.genItem(item)
		end := Index(len(g.kir.Tag))
		if inst != NoIndex {
			decls = append(decls, DeclRange{Inst: inst, Start: start, End: end})
		}
	}
	return g.kir, decls
}

func (g *Generator) node(i ast.Index) ast.Node { return g.tree.Get(i) }

func (g *Generator) tokText(tok token.Index) string {
	return g.tokens.Text(tok, g.file)
}

func (g *Generator) internTok(tok token.Index) source.StringID {
	if tok == token.NoIndex {
		return source.NoStringID
	}
	return g.interner.Intern(g.tokText(tok))
}

// pushCache / flushCache mirror ast.Builder's ScratchLen/FlushMeta
// convention, used here to collect a block's child instruction indices
// before their count is known.
func (g *Generator) pushCache(i Index) { g.cache = append(g.cache, i) }
func (g *Generator) cacheMark() int    { return len(g.cache) }
func (g *Generator) flushCache(mark int) uint32 {
	items := g.cache[mark:]
	start := g.kir.pushExtra(uint32(len(items)))
	for _, it := range items {
		g.kir.pushExtra(uint32(it))
	}
	g.cache = g.cache[:mark]
	return start
}

func (g *Generator) genItem(i ast.Index) Index {
	n := g.node(i)
	switch n.Tag {
	case ast.ImportDecl:
		// Import resolution is the Module Manager's job (internal/project);
		// the KIR generator only lowers the file's own declarations.
		return NoIndex
	case ast.ConstDecl:
		return g.genGlobalConst(i, n)
	case ast.StaticDecl:
		return g.genGlobalConst(i, n) // statics share GlobalConst's shape; mutability is a Sema-level concern (spec §9 open question)
	case ast.FnDecl:
		return g.genFn(i, n)
	case ast.StructDecl, ast.EnumDecl, ast.VariantDecl, ast.TraitDecl, ast.ImplDecl:
		// Lowered only to the point of recording their symbol; full type
		// shape / method-set analysis happens in Sema's declaration pass,
		// and variant/trait/impl bodies are not walked further here
		// (matches spec's non-goal on full trait/impl semantics).
		return g.declareTypeLikeSymbol(i, n)
	default:
		g.errorf(n.Main, diag.CodeExpectedToken, "unexpected top-level node")
		return NoIndex
	}
}

func (g *Generator) declareTypeLikeSymbol(i ast.Index, n ast.Node) Index {
	name := g.internTok(n.Main)
	inst := g.kir.createInst(Invalid, Data{NodePl: NodePl{Node: i}, Name: name, Tok: ast.Index(n.Main)})
	if _, ok := g.scopes.Declare(name, inst, 0); !ok {
		g.errorf(n.Main, diag.CodeDuplicateSymbol, "duplicate symbol %q", g.tokText(n.Main))
	}
	return inst
}

// genGlobalConst lowers `const NAME: Type? = expr;` / `static NAME: Type? = expr;`.
func (g *Generator) genGlobalConst(i ast.Index, n ast.Node) Index {
	name := g.internTok(n.Main)
	if _, isKw := token.LookupKeyword(g.tokText(n.Main)); name != source.NoStringID && isKw {
		g.errorf(n.Main, diag.CodeKeywordAsName, "cannot use keyword %q as a name", g.tokText(n.Main))
	}

	var typeRef Ref = NoRef
	if n.Lhs != ast.NoIndex {
		typeRef = g.genType(n.Lhs)
	}
	valueRef := g.genExpr(n.Rhs)

	extra := g.kir.pushExtra(uint32(typeRef.Offset), uint32(valueRef.Offset))
	inst := g.kir.createInst(GlobalConst, Data{NodePl: NodePl{Node: i, Extra: extra}, Name: name, Tok: ast.Index(n.Main)})

	if _, ok := g.scopes.Declare(name, inst, SymbolConst); !ok {
		g.errorf(n.Main, diag.CodeDuplicateSymbol, "duplicate symbol %q", g.tokText(n.Main))
	}
	return inst
}

// genFn lowers a function declaration, entering a Symbol-kind scope for
// its parameters and body so the body cannot leak bindings to sibling
// declarations, and so name lookup inside it stops at the function
// boundary rather than continuing into the enclosing module scope's
// later siblings.
func (g *Generator) genFn(i ast.Index, n ast.Node) Index {
	name := g.internTok(n.Main)
	payload := g.tree.MetaRange(n.Lhs, 3)
	paramsNode, retNode, bodyNode := payload[0], payload[1], payload[2]

	fnInst := g.kir.prepareInst()
	if _, ok := g.scopes.Declare(name, fnInst, 0); !ok {
		g.errorf(n.Main, diag.CodeDuplicateSymbol, "duplicate symbol %q", g.tokText(n.Main))
	}

	g.scopes.Enter(ScopeSymbol, name)
	defer g.scopes.Exit()

	mark := g.cacheMark()
	params := g.tree.Get(paramsNode)
	for _, p := range g.tree.MetaRange(params.Lhs, params.Rhs) {
		pn := g.node(p)
		pname := g.internTok(pn.Main)
		flags := uint32(0)
		if pn.Rhs == 1 {
			flags = SymbolMut
		}
		typeRef := g.genType(pn.Lhs)
		paramInst := g.kir.createInst(Param, Data{NodePl: NodePl{Node: p, Extra: g.kir.pushExtra(typeRef.Offset)}})
		if _, ok := g.scopes.Declare(pname, paramInst, flags); !ok {
			g.errorf(pn.Main, diag.CodeDuplicateSymbol, "duplicate parameter %q", g.tokText(pn.Main))
		}
		g.pushCache(paramInst)
	}
	paramExtra := g.flushCache(mark)

	retRef := NoRef
	if retNode != ast.NoIndex {
		retRef = g.genType(retNode)
	}

	bodyIdx := Index(NoIndex)
	if bodyNode != ast.NoIndex {
		bodyIdx = g.genBlock(bodyNode)
	}

	extraStart := g.kir.pushExtra(paramExtra, uint32(retRef.Offset), uint32(bodyIdx))
	g.kir.setInst(fnInst, FnDecl, Data{NodePl: NodePl{Node: i, Extra: extraStart}, Name: name, Tok: ast.Index(n.Main)})
	return fnInst
}

// genBlock lowers a Block node into a Block instruction whose Extra is a
// count-prefixed list of child instruction indices.
func (g *Generator) genBlock(i ast.Index) Index {
	n := g.node(i)
	blockInst := g.kir.prepareInst()
	g.scopes.Enter(ScopeBlock, source.NoStringID)
	defer g.scopes.Exit()

	mark := g.cacheMark()
	for _, stmt := range g.tree.MetaRange(n.Lhs, n.Rhs) {
		if inst, ok := g.genStmt(stmt); ok {
			g.pushCache(inst)
		}
	}
	extra := g.flushCache(mark)
	g.kir.setInst(blockInst, Block, Data{NodePl: NodePl{Node: i, Extra: extra}})
	return blockInst
}

func (g *Generator) errorf(tok token.Index, code diag.Code, format string, args ...any) {
	if g.bag == nil {
		return
	}
	span := g.tokens.Span(tok)
	g.bag.Report(diag.Err, code, span, fmt.Sprintf(format, args...))
}
