package kir

import "github.com/Lukide0/Koolang-old/internal/source"

// ScopeKind discriminates a lexical scope's role. Name lookup crosses a
// Block boundary (a `{ ... }` introduces no new symbol namespace of its
// own beyond shadowing) but stops at a Symbol boundary (a function body
// is opaque to its caller's scope).
type ScopeKind uint8

const (
	ScopeTop ScopeKind = iota
	ScopeBlock
	ScopeSymbol
)

// Scope is one node of the lexical scope tree built during generation.
type Scope struct {
	Kind   ScopeKind
	Parent Index // index into Scopes, or NoIndex for the top scope
	Name   source.StringID

	// names maps a binding name to its SymbolMeta index, shadowing any
	// binding of the same name in an ancestor scope.
	names map[source.StringID]Index
}

// SymbolMeta flag bits.
const (
	SymbolConst     = 1 << 0
	SymbolDiscarded = 1 << 1
	SymbolMut       = 1 << 2
)

// SymbolMeta records one binding introduced within a scope: the
// instruction that declares it and its flag bits.
type SymbolMeta struct {
	Inst  Index
	Flags uint32
}

// scopeTree owns every Scope and SymbolMeta created during a single
// Generate pass.
type scopeTree struct {
	scopes  []Scope
	symbols []SymbolMeta
	current Index
}

func newScopeTree() *scopeTree {
	t := &scopeTree{
		scopes:  []Scope{{}}, // sentinel at 0
		symbols: []SymbolMeta{{}},
	}
	top := t.pushScope(ScopeTop, NoIndex, source.NoStringID)
	t.current = top
	return t
}

func (t *scopeTree) pushScope(kind ScopeKind, parent Index, name source.StringID) Index {
	t.scopes = append(t.scopes, Scope{Kind: kind, Parent: parent, Name: name, names: make(map[source.StringID]Index)})
	return Index(len(t.scopes) - 1)
}

// Enter creates a new child scope of kind under the current scope and
// makes it current.
func (t *scopeTree) Enter(kind ScopeKind, name source.StringID) Index {
	s := t.pushScope(kind, t.current, name)
	t.current = s
	return s
}

// Exit restores the current scope to its parent.
func (t *scopeTree) Exit() {
	t.current = t.scopes[t.current].Parent
}

// Declare records name as bound to the given instruction/flags within
// the current scope, returning false if name is already bound in this
// exact scope (a duplicate-symbol error, per spec's KIR error taxonomy).
func (t *scopeTree) Declare(name source.StringID, inst Index, flags uint32) (Index, bool) {
	if name == source.NoStringID {
		meta := t.addSymbolMeta(inst, flags)
		return meta, true
	}
	cur := &t.scopes[t.current]
	if _, exists := cur.names[name]; exists {
		return NoIndex, false
	}
	meta := t.addSymbolMeta(inst, flags)
	cur.names[name] = meta
	return meta, true
}

func (t *scopeTree) addSymbolMeta(inst Index, flags uint32) Index {
	t.symbols = append(t.symbols, SymbolMeta{Inst: inst, Flags: flags})
	return Index(len(t.symbols) - 1)
}

// Lookup searches for name starting at the current scope, crossing
// Block boundaries but stopping once it steps out of a Symbol scope
// (a function body cannot see another function body's locals).
func (t *scopeTree) Lookup(name source.StringID) (Index, bool) {
	scope := t.current
	for scope != NoIndex {
		s := &t.scopes[scope]
		if meta, ok := s.names[name]; ok {
			return meta, true
		}
		if s.Kind == ScopeSymbol {
			return NoIndex, false
		}
		scope = s.Parent
	}
	return NoIndex, false
}

func (t *scopeTree) SymbolAt(i Index) SymbolMeta { return t.symbols[i] }
