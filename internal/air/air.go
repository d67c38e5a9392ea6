// Package air implements the typed intermediate representation Sema
// lowers KIR into: a much smaller instruction set (~15 tags) than KIR's
// ~90, since by this stage every value already has a resolved pool type
// and the only work left is constants, symbol references, casts, and
// arithmetic.
package air

import "github.com/Lukide0/Koolang-old/internal/types"

// Index identifies an instruction within an Air's parallel vectors.
// Index 0 is the reserved sentinel, matching the convention used by
// internal/kir and internal/types.
type Index uint32

// NoIndex marks the absence of an AIR instruction.
const NoIndex Index = 0

// Tag discriminates an AIR instruction's payload shape.
type Tag uint8

const (
	Invalid Tag = iota

	// Constant: a resolved compile-time value. Data.Pool names the
	// interned Pool entry (a TagTypeValue/TagInt/TagSimpleValue key).
	Constant
	// Symbol: a reference to another declaration's value. Data.Decl
	// names the symbols.Record; the instruction's own Ty is that
	// record's type.
	Symbol
	// Load: reads the current value of a local binding (a KIR VarDecl/
	// ConstDeclInst/param). Data.Operand names the AIR instruction that
	// produced the binding's stored value.
	Load
	// Cast: an explicit or implicit type coercion. Data.Operand names
	// the source AIR instruction; the instruction's own Ty is the
	// target type.
	Cast

	// Add, Sub, Mul, Div, Mod, BitAnd, BitOr, BitXor, Shl, Shr: binary
	// arithmetic/bitwise ops over two already-unified-type operands.
	// Data.Lhs/Data.Rhs name the operand AIR instructions.
	Add
	Sub
	Mul
	Div
	Mod
	BitAnd
	BitOr
	BitXor
	Shl
	Shr
)

// Data is the per-instruction payload. Exactly one shape is meaningful,
// selected by the paired Tag; like internal/kir.Data this spells out
// each shape as its own field rather than a packed union, since Go has
// no native union and no part of this module depends on a bit-for-bit
// layout match with the original.
type Data struct {
	Pool types.Index // Constant

	Decl uint32 // Symbol: symbols.Index of the referenced declaration

	Operand Index // Load, Cast: the source instruction

	Lhs Index // binary ops
	Rhs Index
}

// Air is one top-level declaration's typed instruction buffer: parallel
// Tag/Ty/Data vectors, the same cache-separation idiom internal/kir uses
// for its Tag/Data vectors. Ty records the pool type every instruction
// evaluates to, so querying an operand's type never needs to walk back
// through Data to re-derive it.
type Air struct {
	Tag  []Tag
	Ty   []types.Index
	Data []Data
}

// New creates an Air with the sentinel instruction at index 0, per
// spec's "reserved AIR slot 0 is a sentinel".
func New() *Air {
	return &Air{
		Tag:  []Tag{Invalid},
		Ty:   []types.Index{types.NoIndex},
		Data: []Data{{}},
	}
}

// CreateInst appends a fully-formed instruction and returns its index.
func (a *Air) CreateInst(tag Tag, ty types.Index, data Data) Index {
	a.Tag = append(a.Tag, tag)
	a.Ty = append(a.Ty, ty)
	a.Data = append(a.Data, data)
	return Index(len(a.Tag) - 1)
}

// TypeOf returns the pool type instruction i evaluates to.
func (a *Air) TypeOf(i Index) types.Index { return a.Ty[i] }

// IsConstant reports whether instruction i is a CONSTANT, the AIR-level
// test Sema's constant-folding path uses to decide whether both operands
// of an arithmetic op can be folded at compile time.
func (a *Air) IsConstant(i Index) bool { return a.Tag[i] == Constant }
