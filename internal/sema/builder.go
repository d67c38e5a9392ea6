package sema

import (
	"fmt"

	"github.com/Lukide0/Koolang-old/internal/air"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/kir"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/symbols"
	"github.com/Lukide0/Koolang-old/internal/token"
	"github.com/Lukide0/Koolang-old/internal/types"
)

// Builder is one top-level declaration's Sema/AIR pass: it owns the
// declaration's Air buffer and walks the KIR instructions in
// [kirStart, kirEnd), the declaration's own slice of its module's Kir,
// maintaining a dense kir-index -> air-index map the way spec §4.5
// describes. Namespace is the symbol-table scope DeclRef/UnresolvedPath
// lookups search from (the declaring file's namespace, or a struct's
// body namespace for a method).
type Builder struct {
	prog      *Program
	rec       symbols.Index
	namespace symbols.Index

	kirBuf   *kir.Kir
	tokens   *token.List
	file     *source.File
	interner *source.Interner
	bag      *diag.Bag

	Air *air.Air

	kirStart, kirEnd kir.Index
	kirToAir         []air.Index

	rootInst kir.Index
}

// NewBuilder creates a Builder for rec, covering the KIR instructions
// [kirStart, kirEnd) rooted at rootInst (the decl's GlobalConst/FnDecl
// instruction).
func NewBuilder(
	prog *Program, rec, namespace symbols.Index,
	kirBuf *kir.Kir, tokens *token.List, file *source.File, interner *source.Interner, bag *diag.Bag,
	kirStart, kirEnd, rootInst kir.Index,
) *Builder {
	count := 0
	if kirEnd > kirStart {
		count = int(kirEnd - kirStart)
	}
	return &Builder{
		prog: prog, rec: rec, namespace: namespace,
		kirBuf: kirBuf, tokens: tokens, file: file, interner: interner, bag: bag,
		Air:      air.New(),
		kirStart: kirStart, kirEnd: kirEnd, kirToAir: make([]air.Index, count),
		rootInst: rootInst,
	}
}

func (b *Builder) record() *symbols.Record { return b.prog.Table.GetRecord(b.rec) }

func (b *Builder) errorf(tok token.Index, code diag.Code, format string, args ...any) {
	if b.bag == nil {
		return
	}
	span := b.tokens.Span(tok)
	b.bag.Report(diag.Err, code, span, fmt.Sprintf(format, args...))
}

func (b *Builder) relIndex(k kir.Index) int { return int(k - b.kirStart) }

func (b *Builder) localAir(k kir.Index) (air.Index, bool) {
	i := b.relIndex(k)
	if i < 0 || i >= len(b.kirToAir) {
		return air.NoIndex, false
	}
	a := b.kirToAir[i]
	return a, a != air.NoIndex
}

func (b *Builder) setLocalAir(k kir.Index, a air.Index) {
	if i := b.relIndex(k); i >= 0 && i < len(b.kirToAir) {
		b.kirToAir[i] = a
	}
}

// nameAt interns the text of tok, reusing the same Interner the KIR
// generator used so StringIDs line up across passes.
func (b *Builder) nameAt(tok token.Index) source.StringID {
	if tok == token.NoIndex {
		return source.NoStringID
	}
	return b.interner.Intern(b.tokens.Text(tok, b.file))
}

// AnalyzeDecl resolves this declaration's signature: name + type for a
// const, parameter/return types for a fn. Re-entering while InProgress
// is a circular dependency (spec §4.5).
func (b *Builder) AnalyzeDecl() bool {
	rec := b.record()
	switch rec.StatusDecl {
	case symbols.Complete:
		return true
	case symbols.InProgress:
		b.errorf(b.declTok(), diag.CodeCircularDependency, "circular dependency on %q", b.interner.Lookup(rec.Name))
		return false
	}
	rec.StatusDecl = symbols.InProgress

	ok := true
	switch b.kirBuf.Tag[b.rootInst] {
	case kir.GlobalConst:
		ok = b.analyzeGlobalConst()
		rec.StatusBody = symbols.Complete
	case kir.FnDecl:
		ok = b.analyzeFnSignature()
	default:
		// struct/enum/variant/trait/impl: spec §9 non-goal, nothing
		// further to resolve at the signature level.
	}

	rec.StatusDecl = symbols.Complete
	return ok
}

// AnalyzeBody lowers the declaration's body. For a const this is
// identical to AnalyzeDecl (spec §4.5); for a fn it additionally lowers
// the body block.
func (b *Builder) AnalyzeBody() bool {
	rec := b.record()
	switch rec.StatusBody {
	case symbols.Complete:
		return true
	case symbols.InProgress:
		b.errorf(b.declTok(), diag.CodeCircularDependency, "circular dependency on %q", b.interner.Lookup(rec.Name))
		return false
	}

	if !b.AnalyzeDecl() {
		return false
	}
	if rec.StatusBody == symbols.Complete {
		// GlobalConst's AnalyzeDecl already did the only work there is.
		return true
	}

	rec.StatusBody = symbols.InProgress
	ok := true
	if b.kirBuf.Tag[b.rootInst] == kir.FnDecl {
		ok = b.analyzeFnBody()
	}
	rec.StatusBody = symbols.Complete
	return ok
}

// declTok returns this declaration's own name token (GlobalConst/FnDecl/
// the type-like-symbol placeholder all set Data.Tok alongside Name at
// generation time - see internal/kir's Data.Tok doc), for diagnostics
// that aren't about any one sub-expression (e.g. a circular-dependency
// report) but still want a better anchor than the file's start.
func (b *Builder) declTok() token.Index {
	return token.Index(b.kirBuf.Data[b.rootInst].Tok)
}

// literalTok returns ref's own anchor token when it resolves to a real
// KIR instruction whose tag carries one (currently only ConstU64 does),
// falling back to declTok. Used to anchor a declared-type coercion's
// diagnostic at the literal value rather than the declaration's name.
func (b *Builder) literalTok(ref kir.Ref) token.Index {
	if ref.IsConstant() {
		return b.declTok()
	}
	kidx := ref.ToIndex()
	if kidx < b.kirStart || kidx >= b.kirEnd {
		return b.declTok()
	}
	if b.kirBuf.Tag[kidx] != kir.ConstU64 {
		return b.declTok()
	}
	if tok := token.Index(b.kirBuf.Data[kidx].Tok); tok != token.NoIndex {
		return tok
	}
	return b.declTok()
}

// analyzeGlobalConst lowers `const NAME: T? = E;` / `static NAME: T? = E;`.
// GlobalConst's Extra is [typeRef, valueRef] (spec's declared-type
// coercion folded directly into this one KIR instruction rather than a
// nested BlockComptimeInline/BreakInline - see DESIGN.md).
func (b *Builder) analyzeGlobalConst() bool {
	data := b.kirBuf.Data[b.rootInst]
	extra := data.NodePl.Extra
	typeRef := kir.Ref{Offset: b.kirBuf.Extra[extra]}
	valueRef := kir.Ref{Offset: b.kirBuf.Extra[extra+1]}

	idx, ty, ok := b.analyzeDeclaredValue(typeRef, valueRef)
	if !ok {
		return false
	}

	rec := b.record()
	rec.Ty = uint32(ty)
	rec.AirInst = uint32(idx)
	if b.Air.IsConstant(idx) {
		rec.Val = uint32(b.Air.Data[idx].Pool)
	} else {
		rec.IsComptime = false
	}
	return true
}

// analyzeDeclaredValue evaluates valueRef and, if typeRef names a
// declared type, coerces the result to it (the same "As" coercion a
// local `const`/typed `var` applies).
func (b *Builder) analyzeDeclaredValue(typeRef, valueRef kir.Ref) (air.Index, types.Index, bool) {
	valIdx, valTy, ok := b.resolveValueRef(valueRef)
	if !ok {
		return air.NoIndex, types.NoIndex, false
	}
	if typeRef.IsNone() {
		return valIdx, valTy, true
	}
	dstTy, ok := b.resolveTypeRef(typeRef)
	if !ok {
		return air.NoIndex, types.NoIndex, false
	}
	return b.coerce(valIdx, valTy, dstTy, b.literalTok(valueRef))
}
