package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/parser"
	"github.com/Lukide0/Koolang-old/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Add("test.k", []byte(src))
	bag := diag.NewBag(64)
	tokens := lexer.New(f, bag).Tokenize()
	tree := parser.New(f, tokens, bag).Parse()
	return tree, bag
}

// spec §8 scenario 1: import forms parse with zero diagnostics and four
// distinct ImportItem nodes (one for `a::a`, one for `a::b = c`, and two
// group members `b` and `c = C` from the braced form, folded with its
// shared `a::` prefix).
func TestParseImportForms(t *testing.T) {
	src := `import a::a; import a::b = c; import a::{b, c = C};`
	tree, bag := parseSrc(t, src)
	require.Equal(t, 0, bag.Len())

	var items []ast.Index
	for _, decl := range tree.Root() {
		n := tree.Get(decl)
		require.Equal(t, ast.ImportDecl, n.Tag)
		items = append(items, tree.MetaRange(n.Lhs, n.Rhs)...)
	}
	assert.Len(t, items, 4)
}

func TestParseConstDecl(t *testing.T) {
	tree, bag := parseSrc(t, `const X: u32 = 4 + 5;`)
	require.Equal(t, 0, bag.Len())
	root := tree.Root()
	require.Len(t, root, 1)
	n := tree.Get(root[0])
	assert.Equal(t, ast.ConstDecl, n.Tag)
	val := tree.Get(n.Rhs)
	assert.Equal(t, ast.BinExpr, val.Tag)
}

func TestParseFnWithBody(t *testing.T) {
	tree, bag := parseSrc(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	require.Equal(t, 0, bag.Len())
	root := tree.Root()
	require.Len(t, root, 1)
	fn := tree.Get(root[0])
	assert.Equal(t, ast.FnDecl, fn.Tag)
}

func TestParseIfElseChain(t *testing.T) {
	tree, bag := parseSrc(t, `fn f() { if a { return 1; } else if b { return 2; } else { return 3; } }`)
	require.Equal(t, 0, bag.Len())
	_ = tree
}

func TestParseForInLoop(t *testing.T) {
	tree, bag := parseSrc(t, `fn f() { for x in xs { _ = x; } }`)
	require.Equal(t, 0, bag.Len())
	_ = tree
}

func TestParseStructAndLiteral(t *testing.T) {
	tree, bag := parseSrc(t, `struct P { x: i32, y: i32 } fn f() { var p = P { x: 1, y: 2 }; }`)
	require.Equal(t, 0, bag.Len())
	root := tree.Root()
	require.Len(t, root, 2)
	assert.Equal(t, ast.StructDecl, tree.Get(root[0]).Tag)
}

func TestParseCallExpr(t *testing.T) {
	tree, bag := parseSrc(t, `fn f() { _ = add(1, 2, 3); }`)
	require.Equal(t, 0, bag.Len())
	_ = tree
}

func TestParseMultipleUnaryOpsIsError(t *testing.T) {
	_, bag := parseSrc(t, `const X: i32 = --1;`)
	require.Greater(t, bag.Len(), 0)
	assert.Equal(t, diag.CodeMultipleUnaryOps, bag.Items()[0].Code)
}

func TestParseMissingSemicolonIsError(t *testing.T) {
	_, bag := parseSrc(t, `const X: i32 = 1`)
	require.Greater(t, bag.Len(), 0)
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	tree, bag := parseSrc(t, `fn f() { a = b = 1; }`)
	require.Equal(t, 0, bag.Len())
	_ = tree
}

func TestParsePointerRefTypeAndCast(t *testing.T) {
	tree, bag := parseSrc(t, `fn f(a: i32*, b: &mut u8) -> void { var c = cast(i32, 1); }`)
	require.Equal(t, 0, bag.Len())
	_ = tree
}
