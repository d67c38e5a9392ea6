package kir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/kir"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/parser"
	"github.com/Lukide0/Koolang-old/internal/source"
)

func genSrc(t *testing.T, src string) (*kir.Kir, *ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Add("test.k", []byte(src))
	bag := diag.NewBag(64)
	tokens := lexer.New(f, bag).Tokenize()
	tree := parser.New(f, tokens, bag).Parse()
	interner := source.NewInterner()
	k, _ := kir.NewGenerator(tree, tokens, f, interner, bag).Generate()
	return k, tree, bag
}

// spec §8 scenario 2: `const A: u8 = 1;` lowers with zero diagnostics to
// a single GlobalConst instruction whose value Ref is the predefined
// ONE constant and whose type Ref is the predefined U8 type constant.
func TestGenerateGlobalConst(t *testing.T) {
	k, _, bag := genSrc(t, "const A: u8 = 1;")
	require.Equal(t, 0, bag.Len())

	found := false
	for i, tag := range k.Tag {
		if tag == kir.GlobalConst {
			found = true
			extra := k.Data[i].NodePl.Extra
			typeRef := kir.Ref{Offset: k.Extra[extra]}
			valueRef := kir.Ref{Offset: k.Extra[extra+1]}
			assert.True(t, typeRef.IsConstant())
			assert.Equal(t, kir.ConstU8Type, typeRef.ToConstant())
			assert.Equal(t, kir.RefConst(kir.ConstOne), valueRef)
		}
	}
	assert.True(t, found, "expected a GlobalConst instruction")
}

func TestGenerateFnWithParamsAndReturn(t *testing.T) {
	k, _, bag := genSrc(t, "fn add(a: i32, b: i32) -> i32 { return a + b; }")
	require.Equal(t, 0, bag.Len())

	hasFn, hasAdd, hasReturn := false, false, false
	for _, tag := range k.Tag {
		switch tag {
		case kir.FnDecl:
			hasFn = true
		case kir.Add:
			hasAdd = true
		case kir.BreakInline:
			hasReturn = true
		}
	}
	assert.True(t, hasFn)
	assert.True(t, hasAdd)
	assert.True(t, hasReturn)
}

func TestGenerateVarAndIfElse(t *testing.T) {
	src := `fn f() {
		var x = 1;
		if x == 1 {
			x = 2;
		} else {
			x = 3;
		}
	}`
	k, _, bag := genSrc(t, src)
	require.Equal(t, 0, bag.Len())

	var hasVar, hasIf, hasAssign, hasEq bool
	for _, tag := range k.Tag {
		switch tag {
		case kir.VarDecl:
			hasVar = true
		case kir.If:
			hasIf = true
		case kir.Assign:
			hasAssign = true
		case kir.Eq:
			hasEq = true
		}
	}
	assert.True(t, hasVar)
	assert.True(t, hasIf)
	assert.True(t, hasAssign)
	assert.True(t, hasEq)
}

func TestGenerateForLoopWithLabel(t *testing.T) {
	src := `fn f(xs: [3]i32) {
		#outer: for x in xs {
			break #outer;
		}
	}`
	k, _, bag := genSrc(t, src)
	require.Equal(t, 0, bag.Len())

	var hasLoop, hasBreak bool
	for _, tag := range k.Tag {
		switch tag {
		case kir.Loop:
			hasLoop = true
		case kir.Break:
			hasBreak = true
		}
	}
	assert.True(t, hasLoop)
	assert.True(t, hasBreak)
}

// Duplicate labels on nested loops are a KIR-level error, not a parse error.
func TestGenerateDuplicateLabelIsError(t *testing.T) {
	src := `fn f(xs: [3]i32, ys: [3]i32) {
		#outer: for x in xs {
			#outer: for y in ys {
				continue #outer;
			}
		}
	}`
	_, _, bag := genSrc(t, src)
	require.Greater(t, bag.Len(), 0)
	assert.Equal(t, diag.CodeDuplicateLabel, bag.Items()[0].Code)
}

// Discarding a const binding is a KIR-level error (spec's "cannot
// discard constant" rule).
func TestGenerateDiscardConstIsError(t *testing.T) {
	src := `fn f() {
		const A = 1;
		_ = A;
	}`
	_, _, bag := genSrc(t, src)
	require.Greater(t, bag.Len(), 0)
	assert.Equal(t, diag.CodeDiscardConst, bag.Items()[0].Code)
}

func TestGenerateCompoundAssignDesugarsToBinOp(t *testing.T) {
	src := `fn f() {
		var x = 1;
		x += 2;
	}`
	k, _, bag := genSrc(t, src)
	require.Equal(t, 0, bag.Len())

	var hasAdd, hasAssign bool
	for _, tag := range k.Tag {
		switch tag {
		case kir.Add:
			hasAdd = true
		case kir.Assign:
			hasAssign = true
		}
	}
	assert.True(t, hasAdd)
	assert.True(t, hasAssign)
}

func TestGenerateCallAndFieldAndIndex(t *testing.T) {
	src := `fn f(p: Point, xs: [3]i32) {
		_ = p.x;
		_ = xs[0];
		_ = g(1, 2);
	}`
	k, _, bag := genSrc(t, src)
	require.Equal(t, 0, bag.Len())

	var hasField, hasIndex, hasCall bool
	for _, tag := range k.Tag {
		switch tag {
		case kir.Field:
			hasField = true
		case kir.Index:
			hasIndex = true
		case kir.Call:
			hasCall = true
		}
	}
	assert.True(t, hasField)
	assert.True(t, hasIndex)
	assert.True(t, hasCall)
}

func TestGenerateStructLitAndCast(t *testing.T) {
	src := `fn f() {
		var p = Point { x: 1, y: 2 };
		var c = cast(u8, 300);
	}`
	k, _, bag := genSrc(t, src)
	require.Equal(t, 0, bag.Len())

	var hasStruct, hasCast bool
	for _, tag := range k.Tag {
		switch tag {
		case kir.StructExpr:
			hasStruct = true
		case kir.Cast:
			hasCast = true
		}
	}
	assert.True(t, hasStruct)
	assert.True(t, hasCast)
}

func TestGenerateUnresolvedIdentBecomesUnresolvedPath(t *testing.T) {
	k, _, bag := genSrc(t, "fn f() { _ = undefinedName; }")
	require.Equal(t, 0, bag.Len()) // unresolved names are not a KIR-level error

	found := false
	for _, tag := range k.Tag {
		if tag == kir.UnresolvedPath {
			found = true
		}
	}
	assert.True(t, found)
}
