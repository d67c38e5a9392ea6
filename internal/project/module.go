// Package project is the module manager: it owns the shared symbol
// table and intern pool, resolves `import` paths to files on disk, and
// drives each file through Tokenizer -> Parser -> KIR -> Sema/AIR,
// building up the whole module graph concurrently.
package project

import (
	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/kir"
	"github.com/Lukide0/Koolang-old/internal/sema"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/symbols"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// Status is a Module's position in the load/analyze pipeline.
type Status uint8

const (
	NotLoaded Status = iota
	InProgress
	Prepared
	Done
	NotExists
	Error
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Prepared:
		return "prepared"
	case Done:
		return "done"
	case NotExists:
		return "not-exists"
	case Error:
		return "error"
	default:
		return "not-loaded"
	}
}

// Module is one source file's place in a compilation. Its Namespace is
// reserved (and, for an import, attached to this Module) before the file
// has even been read, so a sibling import of the same path can find it
// while its job is still in flight.
type Module struct {
	ID         symbols.ModuleID
	SystemPath string
	Namespace  symbols.Index
	Status     Status

	File   *source.File
	Tokens *token.List
	Tree   *ast.Tree
	Kir    *kir.Kir
	Bag    *diag.Bag

	// Decls names each top-level declaration's KIR instruction range,
	// one per Builder in builders, in the same order.
	Decls   []kir.DeclRange
	Imports []symbols.ModuleID

	builders []*sema.Builder
}

// Builders returns the per-declaration Sema/AIR builders prepared for
// this module, once its job has reached Prepared.
func (m *Module) Builders() []*sema.Builder { return m.builders }
