package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/types"
)

func TestFnSignatureResolvesParamAndReturnTypes(t *testing.T) {
	bag, a, interner := analyzeSrc(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	require.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
	rec := a.record(t, "add", interner)
	assert.Equal(t, uint32(types.I32Index), rec.Ty)
}

func TestFnWithVoidReturnDefaultsToVoid(t *testing.T) {
	bag, a, interner := analyzeSrc(t, `fn f() { var x = 1; }`)
	require.Equal(t, 0, bag.Len())
	rec := a.record(t, "f", interner)
	assert.Equal(t, uint32(types.VoidIndex), rec.Ty)
}

func TestFnBodyReturnRecordsResult(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() -> i32 { return 1 + 2; }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestIfElseIfElseChainAnalyzes(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { if true { return; } else if false { return; } else { return; } }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestForLoopOverIterableAnalyzes(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { for x in 1 { _ = x; } }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestWhileLoopAnalyzes(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { while true { break; } }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

// analyzeBlockValue only unwraps a single-statement BreakInline block
// (genLogicalOp's &&/|| rhs wrapping); a bare multi-statement if-body
// doesn't carry a value of its own yet, so this just shouldn't error.
func TestLogicalOperandInsideIfCondition(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { if true && false { return; } }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestAssignCoercesWideningType(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { var x: i32 = 0; x = 1; }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestAssignMismatchedTypeReportsError(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { var x = true; x = 1; }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}

func TestLocalConstDeclWithDeclaredType(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { const x: u8 = 1; var y = x; }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestLocalConstOverflowsDeclaredType(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { const x: u8 = 256; var y = x; }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeCannotFitInt, firstCode(bag))
}

func TestVarDeclInfersTypeFromInitializer(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { var x = 1; _ = x; }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}

func TestDiscardStmtResolvesOperand(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { _ = 1 + true; }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}

func TestFnParamPointerAndRefTypesResolveUntyped(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f(a: i32*, b: &mut u8) -> void { var c = cast(i32, 1); _ = c; }`)
	assert.Equal(t, 0, bag.Len(), "unexpected diagnostics: %v", bag.Items())
}
