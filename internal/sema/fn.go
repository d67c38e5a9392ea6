package sema

import (
	"github.com/Lukide0/Koolang-old/internal/air"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/kir"
	"github.com/Lukide0/Koolang-old/internal/types"
)

// analyzeFnSignature resolves a fn's parameter and return types.
// FnDecl's Extra is [paramExtra, retRef, bodyIdx] (internal/kir/generator.go's
// genFn); paramExtra is itself a count-prefixed list of Param instruction
// indices, each carrying its own declared-type Ref in a one-word Extra
// (internal/kir/inst.go's Param tag).
//
// internal/types has no function-type Pool key, so a fn's own Ty stays
// its return type rather than a full signature - calling through a fn
// value isn't modeled (spec §9 non-goal territory, same as struct/
// variant/trait/impl).
func (b *Builder) analyzeFnSignature() bool {
	data := b.kirBuf.Data[b.rootInst]
	extra := data.NodePl.Extra
	paramExtra := b.kirBuf.Extra[extra]
	retRef := kir.Ref{Offset: b.kirBuf.Extra[extra+1]}

	ok := true
	count := b.kirBuf.Extra[paramExtra]
	for i := uint32(0); i < count; i++ {
		paramInst := kir.Index(b.kirBuf.Extra[paramExtra+1+i])
		pextra := b.kirBuf.Data[paramInst].NodePl.Extra
		typeRef := kir.Ref{Offset: b.kirBuf.Extra[pextra]}

		ty, tyOk := b.resolveTypeRef(typeRef)
		if !tyOk {
			ok = false
		}
		loadIdx := b.Air.CreateInst(air.Load, ty, air.Data{Operand: air.NoIndex})
		b.setLocalAir(paramInst, loadIdx)
	}

	retTy := types.VoidIndex
	if !retRef.IsNone() {
		var rOk bool
		retTy, rOk = b.resolveTypeRef(retRef)
		if !rOk {
			ok = false
		}
	}

	rec := b.record()
	rec.Ty = uint32(retTy)
	rec.IsComptime = false
	return ok
}

// analyzeFnBody walks the fn's body block. A `return` statement
// (lowered to BreakInline, see internal/kir/stmt.go's genReturn) records
// the declaration's result the same way analyzeBreakInline does for any
// other root-targeting BreakInline.
func (b *Builder) analyzeFnBody() bool {
	data := b.kirBuf.Data[b.rootInst]
	extra := data.NodePl.Extra
	bodyIdx := kir.Index(b.kirBuf.Extra[extra+2])
	if bodyIdx == kir.NoIndex {
		return true
	}
	return b.analyzeBlock(bodyIdx)
}

func (b *Builder) analyzeBlock(blockIdx kir.Index) bool {
	extra := b.kirBuf.Data[blockIdx].NodePl.Extra
	count := b.kirBuf.Extra[extra]
	ok := true
	for i := uint32(0); i < count; i++ {
		child := kir.Index(b.kirBuf.Extra[extra+1+i])
		if !b.analyzeStmt(child) {
			ok = false
		}
	}
	return ok
}

func (b *Builder) analyzeStmt(kidx kir.Index) bool {
	switch b.kirBuf.Tag[kidx] {
	case kir.If:
		return b.analyzeIf(kidx)
	case kir.Loop:
		return b.analyzeLoop(kidx)
	case kir.Block:
		return b.analyzeBlock(kidx)
	case kir.Break, kir.Continue:
		return true
	default:
		_, _, ok := b.resolveValueRef(kir.RefInst(kidx))
		return ok
	}
}

func (b *Builder) analyzeIf(kidx kir.Index) bool {
	extra := b.kirBuf.Data[kidx].NodePl.Extra
	condRef := kir.Ref{Offset: b.kirBuf.Extra[extra]}
	thenIdx := kir.Index(b.kirBuf.Extra[extra+1])
	elseIdx := kir.Index(b.kirBuf.Extra[extra+2])

	_, _, ok := b.resolveValueRef(condRef)
	if !b.analyzeBlock(thenIdx) {
		ok = false
	}
	if elseIdx != kir.NoIndex {
		if !b.analyzeStmt(elseIdx) {
			ok = false
		}
	}
	return ok
}

// analyzeBlockValue resolves a Block reached in value position. The
// only shape that reaches here today is internal/kir's genLogicalOp
// wrapping of `&&`/`||`'s rhs (a single BreakInline child carrying the
// operand's value); a bare `{ ... }` block-expression's value isn't
// modeled yet (spec §9 non-goal territory alongside structs), so
// anything else falls back to untyped the way analyzeOpaque already
// does for tags this module doesn't give a full type.
func (b *Builder) analyzeBlockValue(blockIdx kir.Index) (air.Index, types.Index, bool) {
	extra := b.kirBuf.Data[blockIdx].NodePl.Extra
	count := b.kirBuf.Extra[extra]
	if count == 1 {
		child := kir.Index(b.kirBuf.Extra[extra+1])
		if b.kirBuf.Tag[child] == kir.BreakInline {
			return b.resolveValueRef(b.kirBuf.Data[child].Bin.Rhs)
		}
	}
	return air.NoIndex, types.NoIndex, true
}

func (b *Builder) analyzeLoop(kidx kir.Index) bool {
	extra := b.kirBuf.Data[kidx].NodePl.Extra
	condRef := kir.Ref{Offset: b.kirBuf.Extra[extra]}
	bodyIdx := kir.Index(b.kirBuf.Extra[extra+1])

	_, _, ok := b.resolveValueRef(condRef)
	if !b.analyzeBlock(bodyIdx) {
		ok = false
	}
	return ok
}

// analyzeLocalDecl lowers a VarDecl/ConstDeclInst: evaluating its
// initializer and, for a typed ConstDeclInst, coercing to the declared
// type (VarDecl's single-word Extra carries only the value Ref - locals
// get their declared type, if any, purely through inference from the
// initializer, since internal/kir/stmt.go's genPatternBind doesn't
// lower a `var x : T = e` type annotation into the binding instruction
// itself; see DESIGN.md).
func (b *Builder) analyzeLocalDecl(tag kir.Tag, data kir.Data) (air.Index, types.Index, bool) {
	extra := data.NodePl.Extra
	if tag == kir.VarDecl {
		valueRef := kir.Ref{Offset: b.kirBuf.Extra[extra]}
		return b.resolveValueRef(valueRef)
	}
	typeRef := kir.Ref{Offset: b.kirBuf.Extra[extra]}
	valueRef := kir.Ref{Offset: b.kirBuf.Extra[extra+1]}
	idx, ty, ok := b.analyzeDeclaredValue(typeRef, valueRef)
	return idx, ty, ok
}

// analyzeAssign checks that value's type can flow into target's
// (implicit widening only: a non-constant integer must pass
// types.CanCastInt, and everything else goes through coerce, the same
// rule a declared const's annotation uses) and returns void - an
// assignment has no result value of its own.
func (b *Builder) analyzeAssign(data kir.Data) (air.Index, types.Index, bool) {
	extra := data.NodePl.Extra
	targetRef := kir.Ref{Offset: b.kirBuf.Extra[extra]}
	valueRef := kir.Ref{Offset: b.kirBuf.Extra[extra+1]}

	_, targetTy, ok := b.resolveValueRef(targetRef)
	if !ok {
		return air.NoIndex, types.NoIndex, false
	}
	valIdx, valTy, ok := b.resolveValueRef(valueRef)
	if !ok {
		return air.NoIndex, types.NoIndex, false
	}
	if targetTy != types.NoIndex && valTy != targetTy {
		if !b.Air.IsConstant(valIdx) && types.IsIntType(valTy) && types.IsIntType(targetTy) &&
			!types.CanCastInt(valTy, targetTy) {
			b.errorf(b.literalTok(valueRef), diag.CodeCannotCastInt, "cannot implicitly narrow to this integer type")
			return air.NoIndex, types.NoIndex, false
		}
		if _, _, ok := b.coerce(valIdx, valTy, targetTy, b.literalTok(valueRef)); !ok {
			return air.NoIndex, types.NoIndex, false
		}
	}
	return air.NoIndex, types.VoidIndex, true
}

// analyzeBreakInline implements spec §4.5's last bullet: a BreakInline
// reached through the normal resolveValueRef/analyzeKirValue dispatch
// always targets this declaration's own result. `&&`/`||`'s rhs is also
// lowered as a block holding a BreakInline (internal/kir/expr.go's
// genLogicalOp), but that one is never dispatched here - analyzeLogical
// reads its value directly through analyzeBlockValue instead, since it
// is never the declaration's own result.
func (b *Builder) analyzeBreakInline(bin kir.Bin) (air.Index, types.Index, bool) {
	if bin.Rhs.IsNone() {
		// A bare `return;` leaves the result analyzeFnSignature recorded.
		return air.NoIndex, types.VoidIndex, true
	}
	idx, ty, ok := b.resolveValueRef(bin.Rhs)
	if !ok {
		return air.NoIndex, types.NoIndex, false
	}
	rec := b.record()
	rec.Ty = uint32(ty)
	rec.AirInst = uint32(idx)
	if b.Air.IsConstant(idx) {
		rec.Val = uint32(b.Air.Data[idx].Pool)
	} else {
		rec.IsComptime = false
	}
	return idx, ty, true
}

// analyzeOpaque handles every KIR value tag this module doesn't model a
// full type for (Field/Index/Call/StructExpr/Try/New/NullCoalesce/
// array-and-tuple literals/Deref/AddrOf/Invalid passthroughs): operands
// are still visited, for diagnostics, but the result stays untyped.
func (b *Builder) analyzeOpaque(tag kir.Tag, data kir.Data) (air.Index, types.Index, bool) {
	ok := true
	switch tag {
	case kir.Invalid:
		if !data.Ref.IsNone() {
			if _, _, rOk := b.resolveValueRef(data.Ref); !rOk {
				ok = false
			}
		}
	case kir.Deref, kir.AddrOf, kir.Try, kir.New:
		if _, _, rOk := b.resolveValueRef(data.Ref); !rOk {
			ok = false
		}
	case kir.Index, kir.ArrayRepeat, kir.NullCoalesce:
		if _, _, rOk := b.resolveValueRef(data.Bin.Lhs); !rOk {
			ok = false
		}
		if _, _, rOk := b.resolveValueRef(data.Bin.Rhs); !rOk {
			ok = false
		}
	case kir.Field:
		target := kir.Ref{Offset: b.kirBuf.Extra[data.NodePl.Extra]}
		if _, _, rOk := b.resolveValueRef(target); !rOk {
			ok = false
		}
	case kir.Call:
		ok = b.walkRefList(data.NodePl.Extra+1)
		callee := kir.Ref{Offset: b.kirBuf.Extra[data.NodePl.Extra]}
		if _, _, rOk := b.resolveValueRef(callee); !rOk {
			ok = false
		}
	case kir.ArrayLit, kir.TupleLit:
		ok = b.walkRefList(data.NodePl.Extra)
	case kir.StructExpr:
		count := b.kirBuf.Extra[data.NodePl.Extra+1]
		start := data.NodePl.Extra + 2
		for i := uint32(0); i < count; i++ {
			valRef := kir.Ref{Offset: b.kirBuf.Extra[start+i*2+1]}
			if _, _, rOk := b.resolveValueRef(valRef); !rOk {
				ok = false
			}
		}
	}
	return air.NoIndex, types.NoIndex, ok
}

// walkRefList visits a count-prefixed Ref list at extra (spec §3's
// "Extra holds packed structs serialized field-by-field" convention),
// purely for side effects/diagnostics.
func (b *Builder) walkRefList(extra uint32) bool {
	count := b.kirBuf.Extra[extra]
	ok := true
	for i := uint32(0); i < count; i++ {
		ref := kir.Ref{Offset: b.kirBuf.Extra[extra+1+i]}
		if _, _, rOk := b.resolveValueRef(ref); !rOk {
			ok = false
		}
	}
	return ok
}
