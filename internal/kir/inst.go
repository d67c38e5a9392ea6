package kir

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/source"
)

// Tag discriminates an instruction's shape. Each tag's comment documents
// which Data fields it populates.
type Tag uint8

const (
	Invalid Tag = iota

	// ConstU64: an integer literal other than 0/1 (those lower to the
	// predefined ZERO/ONE constants). Data.U64 holds the value, Data.Tok
	// the literal's token.
	ConstU64
	// ConstF64: a float constant's value. Data.F64.
	ConstF64
	// ConstStr: a string/char literal. Data.TokPl (literal token, Extra =
	// interned StringID of the text between the delimiters).
	ConstStr

	// DeclRef: a resolved reference to a prior declaration. Data.Ref.
	DeclRef
	// UnresolvedPath: an identifier not yet resolved during KIR gen
	// (resolution happens in Sema, per spec's intra-module lazy
	// analysis); Data.TokPl carries the name token.
	UnresolvedPath

	// Add, Sub, Mul, Div, Mod, Shl, Shr, BitAnd, BitOr, BitXor, Lt, Gt,
	// Eq, NotEq: binary arithmetic/comparison/bitwise ops. Data.Bin.
	Add
	Sub
	Mul
	Div
	Mod
	Shl
	Shr
	BitAnd
	BitOr
	BitXor
	Lt
	Gt
	Eq
	NotEq

	// LogicalAnd, LogicalOr: short-circuit boolean ops, lowered with an
	// explicit block for the right-hand side. Data.Bin (lhs, rhs block).
	LogicalAnd
	LogicalOr

	// Negate, BitNot, LogicalNot, Deref, AddrOf: unary ops. Data.Ref.
	Negate
	BitNot
	LogicalNot
	Deref
	AddrOf

	// As: an implicit or explicit type coercion. Data.Bin (value, type).
	As
	// Cast: an explicit `cast(T, e)`. Data.Bin (value, type).
	Cast

	// Call: a function call. Data.NodePl (node = call-expr AST node,
	// extra = [callee Ref, argc, arg Refs...]).
	Call
	// Field: a `.field` / `->field` access (DerefFieldExpr and FieldExpr
	// share this tag; Sema doesn't need the distinction until it has
	// pointer types). Data.NodePl (node, extra = [target Ref, name
	// StringID, derefFlag: 1 if spelled with `->`]).
	Field
	// Index: an `[idx]` access. Data.Bin (target, index).
	Index

	// Block: a statement block. Data.NodePl (node, extra = cached child
	// instruction indices, count-prefixed).
	Block
	// BreakInline: a block's trailing value, only meaningful when the
	// block sits directly at the root of its enclosing construct (see
	// spec's open question on nested-block BreakInline — a BreakInline
	// targeting a non-root block is not yet supported, matching a TODO
	// in the original AstGen's CreateBlock). Data.Bin (block, value).
	BreakInline
	// Break, Continue: loop control, optionally labeled. The label is
	// looked up on the label stack at generation time; Data.Ref holds the
	// targeted Loop instruction (RefInst(NoIndex) outside any loop).
	Break
	Continue

	// If: Data.NodePl (node, extra = [cond Ref, then block Index, else
	// block Index or NoIndex]).
	If
	// Loop: shared shape for `for` and `while`, distinguished by the
	// AST node's tag. Data.NodePl (node, extra = [cond/iterable Ref,
	// body block Index]).
	Loop

	// VarDecl: a local `var` binding with no declared type. Data.NodePl
	// (node, extra = [init Ref]).
	VarDecl
	// ConstDeclInst: a local `const` binding, which (unlike VarDecl) may
	// carry a declared type. Data.NodePl (node, extra = [type Ref or
	// NoRef-encoded, init Ref]) - same shape as GlobalConst.
	ConstDeclInst

	// FnDecl: a function declaration. Data.NodePl (node, extra =
	// [Extra offset of a count-prefixed list of Param instruction indices,
	// return type Ref or NoRef-encoded, body block Index or NoIndex]).
	FnDecl
	// Param: one function parameter. Data.NodePl (node, extra = [declared
	// type Ref]).
	Param

	// GlobalConst: a module-level const. Data.NodePl (node, extra =
	// [type Ref or NoRef-encoded, value Ref]).
	GlobalConst

	// StructExpr: a struct literal. Data.NodePl (node, extra = [type
	// Ref, field count, (name StringID, value Ref) pairs...]).
	StructExpr

	// Discard: `_ = expr`. Data.Ref.
	Discard

	// ArrayLit, TupleLit: Data.NodePl (node, extra = count-prefixed
	// element Refs).
	ArrayLit
	TupleLit
	// ArrayRepeat: `[value; count]`. Data.Bin (value, count).
	ArrayRepeat

	// Assign: `target = value` (compound assignment operators are
	// desugared at generation time into a binary op feeding Rhs - e.g.
	// `x += y` lowers Rhs to an Add instruction over (x, y) first).
	// Data.NodePl (node, extra = [target Ref, value Ref]).
	Assign

	// Try: `expr?` - propagates a failure/empty result upward. Data.Ref.
	Try
	// New: `new expr` - heap-allocates operand. Data.Ref.
	New
	// NullCoalesce: `lhs ?? rhs`. Data.Bin.
	NullCoalesce

	// TupleType, ArrayType, SliceType, DynType, FnType, PtrType: type
	// expressions, lowered the same way value expressions are so Sema
	// can resolve them uniformly once it has a symbol table.
	//
	// TupleType: Data.NodePl (node, extra = count-prefixed element Refs).
	TupleType
	// ArrayType: Data.NodePl (node, extra = [element Ref, length Ref]).
	ArrayType
	// SliceType: Data.Ref (element type).
	SliceType
	// DynType: Data.NodePl (node, extra = count-prefixed trait Refs).
	DynType
	// FnType: Data.NodePl (node, extra = count-prefixed param Refs,
	// followed by one more Ref for the return type).
	FnType
	// PtrType: Data.NodePl (node, extra = [base Ref, ptr depth, flag bits:
	// 1=ref, 2=mut]).
	PtrType
)

// Bin is the two-Ref operand shape shared by binary ops, As/Cast, and
// Index. Tok is the operator token (zero/NoIndex where a shape has no
// single operator to point a diagnostic at, e.g. Index), populated so
// Sema's type-mismatch/overflow/division-by-zero diagnostics anchor on
// the actual operator instead of the file's start.
type Bin struct {
	Lhs Ref
	Rhs Ref
	Tok ast.Index
}

// NodePl pairs the originating AST node with a side-table offset into
// Kir.Extra, for instructions whose payload doesn't fit in two Refs.
type NodePl struct {
	Node  ast.Index
	Extra uint32
}

// TokPl pairs an AST token with an optional second value; used for
// unresolved paths and labeled break/continue.
type TokPl struct {
	Tok   ast.Index
	Extra uint32
}

// Data is the per-instruction payload. Unlike the original's packed
// 8-byte union, this stores each shape in its own field - Go has no
// native union, and matching the original's bit-for-bit layout isn't
// load-bearing for anything this module does (only the constant-Ref
// encoding and the reserved-prefix pool ordering are). Exactly one
// field is meaningful per instruction, selected by the paired Tag.
type Data struct {
	Ref    Ref
	Bin    Bin
	NodePl NodePl
	TokPl  TokPl
	U64    uint64
	F64    float64

	// Name is the interned identifier of a top-level declaration
	// (GlobalConst, FnDecl, or a type-like symbol), populated only on
	// those tags. The Module Manager's pre-pass reads this to register
	// a symbols.Record without re-walking the (by then discarded) AST.
	Name source.StringID

	// Tok is a per-tag anchor token, reused for three unrelated purposes
	// the way Name is reused across its own three tags: a top-level
	// declaration's identifier (GlobalConst/FnDecl/the type-like-symbol
	// Invalid placeholder, set alongside Name, read back by
	// Builder.declTok for a circular-dependency diagnostic), a unary
	// operator's token (Negate/BitNot/LogicalNot/Deref/AddrOf), or an
	// integer literal's own token (ConstU64, so a declared-type coercion
	// that doesn't fit can point at the literal instead of its
	// declaration's name).
	Tok ast.Index
}
