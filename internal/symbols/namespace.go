package symbols

import "github.com/Lukide0/Koolang-old/internal/source"

// NamespaceKind classifies what a Namespace represents. ROOT (index 0)
// is the table's single top-level namespace; FILE namespaces nest under
// it, one per import path segment (`lib::math` is `math` under `lib`
// under ROOT). STRUCT and UNION namespaces hold a
// struct's or variant's member declarations (methods from an `impl`
// block land here too, once resolved against their target type).
type NamespaceKind uint8

const (
	NamespaceRoot NamespaceKind = iota
	NamespaceFile
	NamespaceStruct
	NamespaceUnion
)

func (k NamespaceKind) String() string {
	switch k {
	case NamespaceFile:
		return "file"
	case NamespaceStruct:
		return "struct"
	case NamespaceUnion:
		return "union"
	default:
		return "root"
	}
}

// Namespace is one node of the declaration-name tree: a file, or a
// struct/variant body nested under one. Unlike internal/kir's scopeTree
// (which only tracks lexical bindings for the duration of a single
// Generate pass), a Namespace's Decls persist for the table's whole
// lifetime, since Sema revisits them by name whenever a later
// declaration references an earlier one.
type Namespace struct {
	Parent Index // NoIndex for the ROOT namespace
	Rec    Index // the Record this namespace is the body of (NoIndex for FILE/ROOT)
	Kind   NamespaceKind
	Module ModuleID

	SubNamespaces map[string]Index
	Decls         map[source.StringID]Index
}
