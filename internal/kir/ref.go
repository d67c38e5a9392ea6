// Package kir implements the untyped high-level intermediate
// representation lowered directly from the AST: a flat instruction list
// with predefined constant references, a lexical scope tree for name
// resolution, and a label stack for labeled break/continue.
package kir

// Index identifies an instruction within a Kir's Tag/Data vectors.
type Index uint32

// NoIndex marks the absence of an instruction.
const NoIndex Index = 0

// bitFlag mirrors the original's bitFlag(n) = n==0 ? 0 : 1<<(n-1), used
// to build the predefined-constant bitmask below so that NONE stays 0
// (the NoIndex/NULL_INDEX sentinel) and every other constant occupies a
// single, disjoint bit.
func bitFlag(n uint) uint32 {
	if n == 0 {
		return 0
	}
	return 1 << (n - 1)
}

// Predefined constants a Ref can denote without pointing at any real
// instruction - compile-time values and primitive types, each a
// distinct bit so they can be tested with a mask.
var (
	ConstNone = bitFlag(0)

	ConstZero      = bitFlag(1)
	ConstOne       = bitFlag(2)
	ConstNullValue = bitFlag(3)
	ConstBoolTrue  = bitFlag(4)
	ConstBoolFalse = bitFlag(5)

	ConstVoidType  = bitFlag(6)
	ConstBoolType  = bitFlag(7)
	ConstU8Type    = bitFlag(8)
	ConstI8Type    = bitFlag(9)
	ConstU16Type   = bitFlag(10)
	ConstI16Type   = bitFlag(11)
	ConstU32Type   = bitFlag(12)
	ConstI32Type   = bitFlag(13)
	ConstU64Type   = bitFlag(14)
	ConstI64Type   = bitFlag(15)
	ConstUsizeType = bitFlag(16)
	ConstIsizeType = bitFlag(17)
	ConstF16Type   = bitFlag(18)
	ConstF32Type   = bitFlag(19)
	ConstF64Type   = bitFlag(20)
	ConstStrType   = bitFlag(21)
	ConstCharType  = bitFlag(22)
)

const indexBits = 32

// refConstBit is the top bit of a 32-bit Index: set, a Ref names one of
// the predefined constants above; clear, it names a real instruction.
const refConstBit uint32 = 1 << (indexBits - 1)

var refValues = ConstZero | ConstOne | ConstNullValue | ConstBoolTrue | ConstBoolFalse
var refTestValue = refConstBit | refValues

// Ref is a 32-bit reference that is either a predefined constant or an
// instruction index, discriminated by the high bit.
type Ref struct {
	Offset uint32
}

// RefInst wraps a real instruction index as a Ref.
func RefInst(inst Index) Ref { return Ref{Offset: uint32(inst)} }

// RefConst wraps one of the predefined Const* bitmasks as a Ref.
func RefConst(constant uint32) Ref { return Ref{Offset: constant | refConstBit} }

// NoRef is the Ref equivalent of NoIndex: a predefined constant whose
// bitmask is 0, distinct from an instruction reference of index 0
// (index 0 is itself a reserved sentinel, so this is never ambiguous).
var NoRef = RefConst(ConstNone)

// IsConstant reports whether r names a predefined constant rather than
// an instruction.
func (r Ref) IsConstant() bool { return r.Offset&refConstBit != 0 }

// IsValue reports whether r names one of the predefined compile-time
// VALUE constants specifically (as opposed to a predefined TYPE
// constant or a real instruction).
func (r Ref) IsValue() bool { return (r.Offset & refTestValue) > refConstBit }

// ToConstant returns the bare constant bitmask r carries. Only
// meaningful when IsConstant() is true.
func (r Ref) ToConstant() uint32 { return r.Offset &^ refConstBit }

// ToIndex returns the instruction index r carries. Only meaningful when
// IsConstant() is false.
func (r Ref) ToIndex() Index { return Index(r.Offset) }

// IsNone reports whether r is the NONE sentinel.
func (r Ref) IsNone() bool { return r == NoRef }
