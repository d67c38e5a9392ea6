package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/types"
)

func TestArrayTypeParamResolves(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(a: [3]i32) -> void {}`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestSliceTypeParamResolvesToElementType(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(a: |[i32]|) -> void {}`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestTupleTypeParamResolvesUntyped(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(a: (i32, i32)) -> void {}`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestFnTypeParamResolvesUntyped(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(a: fn(i32) -> i32) -> void {}`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestDynTypeParamResolvesUntyped(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(a: dyn<Trait>) -> void {}`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestUnknownTypeNameReportsUnknownSymbol(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(a: Foo) -> void {}`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeUnknownSymbol, firstCode(bag))
}

// resolveArrayType requires the array length to already be a folded
// compile-time constant; a param load is a genuine runtime value, so
// this must fail rather than silently treating it as one.
func TestArrayLengthMustBeConstant(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(n: i32) { const x: [n]i32 = 1; var y = x; }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
	assert.Greater(t, bag.Items()[0].Label.Span.Start, uint32(0))
}

func TestNullConstantResolvesUntyped(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `const X = null;`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestStringLiteralResolvesToStrType(t *testing.T) {
	bag, a, interner := analyzeSrc(t, `const X = "hi";`)
	require.Equal(t, 0, bag.Len())
	rec := a.record(t, "X", interner)
	assert.Equal(t, uint32(types.StrIndex), rec.Ty)
	assert.True(t, rec.IsComptime)
}

func TestStructExprWalksFieldValues(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `struct P { x: i32, y: i32 } fn f() { var p = P { x: 1, y: 2 }; _ = p; }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestStructExprReportsErrorInFieldValue(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `struct P { x: i32, y: i32 } fn f() { var p = P { x: 1 + true, y: 2 }; _ = p; }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}

func TestCallWalksCalleeAndArgs(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn add(a: i32, b: i32) -> i32 { return a + b; } fn f() { _ = add(1, 2); }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestCallArgErrorIsReported(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn add(a: i32, b: i32) -> i32 { return a + b; } fn f() { _ = add(1, 1 + true); }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}

func TestArrayLiteralWalksElements(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { var a = [1, 2, 1 + true]; _ = a; }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}
