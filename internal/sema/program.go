// Package sema lowers KIR into AIR: one Builder per top-level
// declaration, each walking its own slice of a module's Kir and
// resolving names against the shared symbols.Table, per spec §4.5's
// "one Sema per top-level declaration" design.
package sema

import (
	"github.com/Lukide0/Koolang-old/internal/symbols"
	"github.com/Lukide0/Koolang-old/internal/types"
)

// Program is the state every Builder in a compilation shares: the
// cross-file symbol table, the intern pool, and a registry from a
// Record back to the Builder analyzing it (so a DeclRef can recursively
// drive another declaration's analysis the way spec §4.5 describes).
// internal/project's Manager owns one Program per compilation and
// registers a Builder for each top-level declaration in its pre-pass
// (prepareModule), right after creating that declaration's Record.
type Program struct {
	Table *symbols.Table
	Pool  *types.Pool

	builders map[symbols.Index]*Builder
}

// NewProgram creates a Program over an already-populated Table and Pool.
func NewProgram(table *symbols.Table, pool *types.Pool) *Program {
	return &Program{Table: table, Pool: pool, builders: make(map[symbols.Index]*Builder)}
}

// Register associates rec with the Builder that will analyze it. Called
// once per declaration during the Module Manager's pre-pass, before any
// Builder's AnalyzeDecl/AnalyzeBody runs (so a forward reference always
// finds its target's Builder already registered).
func (p *Program) Register(rec symbols.Index, b *Builder) {
	p.builders[rec] = b
}

// BuilderFor returns the Builder registered for rec, if any. A Record
// with no registered Builder is one of the type-like declarations
// (struct/enum/variant/trait/impl) that spec §9 says Sema doesn't
// analyze further than KIR - DeclRef resolution against such a Record
// stays structural (name + whatever Ty/IsComptime the Record already
// carries) rather than recursing.
func (p *Program) BuilderFor(rec symbols.Index) (*Builder, bool) {
	b, ok := p.builders[rec]
	return b, ok
}
