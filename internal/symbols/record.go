// Package symbols is the cross-file symbol table shared by Sema and the
// Module Manager: a flat table of Records (one per named declaration)
// organized into a tree of Namespaces (one per file and per
// struct/variant body), mirroring spec §5's "declarations are analyzed
// lazily, by name, the first time something references them" design.
package symbols

import "github.com/Lukide0/Koolang-old/internal/source"

// Index identifies a Record or Namespace within a Table. Index 0 is the
// reserved sentinel in both vectors.
type Index uint32

// NoIndex marks the absence of a record/namespace.
const NoIndex Index = 0

// ModuleID identifies the owning module without Record needing to import
// the Module Manager's package directly (which would own Table, and so
// cannot also be imported by it).
type ModuleID uint32

// NoModuleID marks a record with no owning module (the sentinel Record
// at index 0).
const NoModuleID ModuleID = 0

// Visibility mirrors the AST's `pub` marker.
type Visibility uint8

const (
	Private Visibility = iota
	Public
)

// State is a declaration's position in Sema's NotAnalyzed -> InProgress
// -> Complete lattice (spec §5). A Record tracks this independently for
// its declaration (signature/type) and its body (value/statements), so
// a function's signature can be Complete while its body is still being
// analyzed, and so a cycle through InProgress is how circular-dependency
// detection works.
type State uint8

const (
	NotAnalyzed State = iota
	InProgress
	Complete
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Complete:
		return "complete"
	default:
		return "not-analyzed"
	}
}

// Record is one named declaration: a const, static, fn, struct, enum,
// variant, or trait/impl member. Ty/Val/KirInst/AirInst are indices into
// other tables (internal/types.Pool, internal/kir.Kir, and the owning
// sema.Builder's Air buffer respectively) rather than pointers, so
// Record stays a plain value type that can live in a slice.
type Record struct {
	ID   Index
	Name source.StringID
	Vis  Visibility

	Ty  uint32 // internal/types.Index of this declaration's type, once known
	Val uint32 // internal/types.Index of its compile-time value, if comptime

	KirInst uint32 // internal/kir.Index this record was lowered from
	AirInst uint32 // Sema's AIR instruction index, once analyzed

	Module    ModuleID
	Namespace Index // the Namespace this Record's body scope lives in, if any (NoIndex for a leaf like a const)

	StatusDecl State
	StatusBody State

	// IsComptime reports whether this declaration's value is known at
	// compile time. It defaults to true, matching the original's
	// optimistic default; Sema clears it when the analyzed value is not
	// an AIR constant, and always for a fn. A static whose value folds to
	// a constant keeps it true.
	IsComptime bool
}
