// Package ast defines the flat, arena-indexed abstract syntax tree the
// parser produces: a Node vector of (tag, main-token, lhs, rhs) plus a
// side-table "meta" vector for variable-arity children.
package ast

// Tag discriminates the AST node shapes. Lhs/Rhs/Main-token semantics are
// documented per tag below; a Meta range is "start index in Lhs, count in
// Rhs" unless the tag's comment says otherwise.
type Tag uint8

const (
	// Invalid occupies index 0 so NoIndex never points at a real node.
	Invalid Tag = iota

	// Root: Lhs/Rhs = meta range of top-level item node indices.
	Root

	// ImportDecl: Lhs/Rhs = meta range of ImportItem node indices (a bare
	// `import a::b;` has exactly one item; a braced group has several).
	ImportDecl
	// ImportItem: Main = alias ident token, or NoIndex. Lhs/Rhs = meta
	// range of path segment tokens (token.Index values stored as Index).
	ImportItem

	// ConstDecl: Main = name token. Lhs = type node (or NoIndex to infer).
	// Rhs = value expression node.
	ConstDecl
	// StaticDecl: same shape as ConstDecl.
	StaticDecl

	// FnDecl: Main = name token. Lhs = meta-start of a fixed 3-slot group
	// [ParamsNode, ReturnTypeNode(or NoIndex), BodyNode(or NoIndex for a
	// signature-only declaration)]. Rhs = flag bits: 1=pub, 2=const.
	FnDecl
	// Params: Lhs/Rhs = meta range of Param node indices.
	Params
	// Param: Main = name token. Lhs = type node. Rhs = flag bits: 1=mut.
	Param

	// StructDecl: Main = name token. Lhs/Rhs = meta range of Field nodes.
	StructDecl
	// Field: Main = name token. Lhs = type node.
	Field

	// EnumDecl: Main = name token. Lhs/Rhs = meta range of EnumVariant nodes.
	EnumDecl
	// EnumVariant: Main = name token. Lhs = explicit value expr, or
	// NoIndex to take "previous + 1" (spec §4.3).
	EnumVariant

	// VariantDecl (tagged union): Main = name token. Lhs/Rhs = meta range
	// of VariantCase nodes.
	VariantDecl
	// VariantCase: Main = name token. Lhs = payload type, or NoIndex.
	VariantCase

	// TraitDecl: Main = name token. Lhs/Rhs = meta range of FnDecl nodes
	// (signatures only, Body = NoIndex).
	TraitDecl
	// ImplDecl: Main = type name token being implemented. Lhs/Rhs = meta
	// range of FnDecl nodes.
	ImplDecl

	// --- Statements (inside blocks) ---

	// Block: Lhs/Rhs = meta range of statement node indices.
	Block
	// VarStmt: Main = unused. Lhs = pattern node. Rhs = init expr.
	VarStmt
	// LocalConstStmt: Main = name token. Lhs = type (or NoIndex). Rhs = value expr.
	LocalConstStmt
	// ReturnStmt: Lhs = value expr, or NoIndex for a bare `return;`.
	ReturnStmt
	// BreakStmt/ContinueStmt: Main = label token, or NoIndex.
	BreakStmt
	ContinueStmt
	// IfStmt: Main = unused. Lhs = cond expr. Rhs = meta-start of a fixed
	// 2-slot group [ThenBlock, ElseNode-or-NoIndex] (Else may itself be an
	// IfStmt for an else-if chain).
	IfStmt
	// ForStmt: Main = label token or NoIndex. Lhs = meta-start of a fixed
	// 3-slot group [PatternNode, IterableExpr, BodyBlock].
	ForStmt
	// WhileStmt: Main = label token or NoIndex. Lhs = cond expr. Rhs = body block.
	WhileStmt
	// DiscardStmt: Lhs = expr being discarded (`_ = expr;`).
	DiscardStmt
	// ExprStmt: Lhs = expr.
	ExprStmt

	// --- Patterns ---

	// PatDiscard: `_`.
	PatDiscard
	// PatBind: Main = name token. Lhs = `: Type` node (NoIndex if absent). Rhs = flag bits: 1=mut.
	PatBind
	// PatTuple: Lhs/Rhs = meta range of pattern nodes.
	PatTuple
	// PatStruct: Main = type name token. Lhs/Rhs = meta range of
	// PatStructField nodes.
	PatStruct
	// PatStructField: Main = field name token. Lhs = bound-name token (the
	// `field -> ident` target), stored as an Index wrapping the token.
	PatStructField

	// --- Types ---

	// TypePath: Main = last segment token. Lhs/Rhs = meta range of
	// preceding segment tokens (Index-wrapped token indices).
	TypePath
	// TypeTuple: Lhs/Rhs = meta range of element type nodes.
	TypeTuple
	// TypeArray: Lhs = element type node. Rhs = length expr node.
	TypeArray
	// TypeSlice: Lhs = element type node (`|[T]|`).
	TypeSlice
	// TypeDyn: Lhs/Rhs = meta range of trait-path type nodes (`dyn<P+P>`).
	TypeDyn
	// TypeFn: Lhs = count-prefixed meta slice of parameter type nodes
	// (Meta[Lhs] = count, Meta[Lhs+1:Lhs+1+count] = params), immediately
	// followed by one more Meta slot holding the return type node (or
	// NoIndex for no return type).
	TypeFn
	// TypeModifier wraps a base type with pointer-depth/ref packed into
	// Rhs (low 29 bits = ptr depth up to 8, bit 29 = ref marker, bit
	// 30 = mut-through-pointer, per spec §4.2). Lhs = base type node.
	TypeModifier

	// --- Expressions ---

	// Ident: Main = name token.
	Ident
	// Literal: Main = literal token (NumberLit/FloatLit/StringLit/CharLit/
	// KwNew's `true`/`false`/`null` spelled as plain idents resolved later).
	Literal
	// TupleExpr: Lhs/Rhs = meta range of element expr nodes.
	TupleExpr
	// ArrayExpr: Lhs/Rhs = meta range of element expr nodes.
	ArrayExpr
	// ArrayRepeat: `[value; count]`. Lhs = value expr. Rhs = count expr.
	ArrayRepeat
	// StructLit: Main = type name token. Lhs/Rhs = meta range of
	// StructLitField nodes.
	StructLit
	// StructLitField: Main = field name token. Lhs = value expr.
	StructLitField
	// UnaryExpr: Main = operator token. Lhs = operand.
	UnaryExpr
	// BinExpr: Main = operator token (carries the operator discriminant
	// per spec §4.2). Lhs/Rhs = operand exprs.
	BinExpr
	// AssignExpr: Main = operator token (=, +=, -=, ...). Lhs = target. Rhs = value.
	AssignExpr
	// CallExpr: Lhs = callee expr. Rhs = meta-start of a count-prefixed
	// argument list: Meta[Rhs] is the argument count, Meta[Rhs+1:] follow
	// (a count-prefixed meta slice, used wherever a node needs both a
	// fixed field and a variable-arity list and so cannot spare two words
	// for a plain start/count pair).
	CallExpr
	// IndexExpr: Lhs = target. Rhs = index expr.
	IndexExpr
	// FieldExpr: Main = field name token. Lhs = target expr (`a.b`).
	FieldExpr
	// DerefFieldExpr: Main = field name token. Lhs = target expr (`a->b`).
	DerefFieldExpr
	// TryExpr: Lhs = operand (`expr?`).
	TryExpr
	// CastExpr: Lhs = operand expr. Rhs = target type node (`cast(T, e)`).
	CastExpr
	// AsExpr: Lhs = operand expr. Rhs = target type node (implicit coercion site).
	AsExpr
	// NewExpr: Lhs = operand expr (`new expr`).
	NewExpr
	// ParenExpr: Lhs = inner expr.
	ParenExpr
	// BlockExpr: wraps Block for use as an expression (if/else-as-value is
	// out of scope; kept for parenthesized control flow results).
	BlockExpr
)
