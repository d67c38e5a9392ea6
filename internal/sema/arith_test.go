package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/diag"
)

// spec §8 scenario 4: `const X: u8 = 256;` - the literal overflows its
// declared type. Anchored at the literal's own token (internal/kir's
// ConstU64 carries Data.Tok), not byte 0.
func TestDeclaredTypeOverflowReportsCannotFitInt(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X: u8 = 256;")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeCannotFitInt, firstCode(bag))
	assert.Greater(t, firstSpanStart(bag), uint32(0), "diagnostic should not anchor at byte 0")
}

func TestDeclaredTypeFitsIsNoError(t *testing.T) {
	bag, a, interner := analyzeSrc(t, "const X: u8 = 255;")
	require.Equal(t, 0, bag.Len())
	rec := a.record(t, "X", interner)
	assert.True(t, rec.IsComptime)
}

// spec §8 scenario 5: a const referencing itself is a circular
// dependency, not an infinite loop. AnalyzeDecl's StatusDecl
// NotAnalyzed->InProgress->Complete lattice catches the re-entry before
// the recursive resolveValueRef call ever returns.
func TestCircularConstDependency(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const A = A;")
	require.Greater(t, bag.Len(), 0)
	assert.Equal(t, diag.CodeCircularDependency, firstCode(bag))
	assert.Greater(t, firstSpanStart(bag), uint32(0), "diagnostic should not anchor at byte 0")
}

func TestConstArithmeticFolds(t *testing.T) {
	bag, a, interner := analyzeSrc(t, "const X = 2 + 3;")
	require.Equal(t, 0, bag.Len())
	rec := a.record(t, "X", interner)
	assert.True(t, rec.IsComptime)
}

func TestDivisionByZeroIsConstError(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = 1 / 0;")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeDivisionByZero, firstCode(bag))
	assert.Greater(t, firstSpanStart(bag), uint32(0))
}

func TestArithmeticMismatchedTypes(t *testing.T) {
	bag, _, _ := analyzeSrc(t, `fn f() { _ = 1 + true; }`)
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}

// Constant folding only checks for 64-bit signed overflow (comptime_int
// has no narrower width of its own); CanFitInt's per-declared-type range
// check is a separate, coerce-only concern (see TestCastCannotFitInt).
func TestConstOverflowOnAdd(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = 9223372036854775807 + 1;")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeConstOverflow, firstCode(bag))
	assert.Greater(t, firstSpanStart(bag), uint32(0))
}

// `&&`/`||` must genuinely short-circuit at the constant-folding level:
// a false left operand decides the AND result without the right operand
// ever needing to resolve, so a right operand that would itself error
// (here, a division by zero) never gets the chance to.
func TestLogicalAndShortCircuitsOnFalse(t *testing.T) {
	bag, a, interner := analyzeSrc(t, "const X = false && (1 / 0 == 0);")
	require.Equal(t, 0, bag.Len(), "right operand must not be evaluated")
	rec := a.record(t, "X", interner)
	assert.True(t, rec.IsComptime)
}

func TestLogicalOrShortCircuitsOnTrue(t *testing.T) {
	bag, a, interner := analyzeSrc(t, "const X = true || (1 / 0 == 0);")
	require.Equal(t, 0, bag.Len(), "right operand must not be evaluated")
	rec := a.record(t, "X", interner)
	assert.True(t, rec.IsComptime)
}

func TestLogicalAndBothConstantFolds(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = true && false;")
	require.Equal(t, 0, bag.Len())
}

func TestLogicalOperandMustBeBool(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = 1 && true;")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}

func TestCastCannotFitInt(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = cast(u8, 300);")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeCannotFitInt, firstCode(bag))
}

func TestUnaryNegateOverflow(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = -9223372036854775808;")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeConstOverflow, firstCode(bag))
	assert.Greater(t, firstSpanStart(bag), uint32(0))
}

func TestUnaryBitNotRequiresInt(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = ~true;")
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, diag.CodeMismatchedTypes, firstCode(bag))
}

func TestComparisonFoldsToBool(t *testing.T) {
	bag, _, _ := analyzeSrc(t, "const X = 1 < 2;")
	require.Equal(t, 0, bag.Len())
}
