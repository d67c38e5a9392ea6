package symbols

import "github.com/Lukide0/Koolang-old/internal/source"

// Table owns every Record and Namespace built while resolving a set of
// modules. Namespace 0 is the ROOT namespace (FILE namespaces nest under
// it, one per import path segment); Record 0 is the reserved sentinel, so
// NoIndex never collides with a real record the way NULL_INDEX never
// collides with a real instruction elsewhere in this compiler.
type Table struct {
	namespaces []Namespace
	records    []Record
}

// NewTable creates a Table with its ROOT namespace and sentinel Record
// already in place.
func NewTable() *Table {
	return &Table{
		namespaces: []Namespace{{Kind: NamespaceRoot, Parent: NoIndex, SubNamespaces: map[string]Index{}, Decls: map[source.StringID]Index{}}},
		records:    []Record{{}},
	}
}

// CreateRecord declares name within scope's namespace, returning the new
// Record's index. A name already declared in scope has its Decls entry
// overwritten; CreateRecord does not check for it (internal/project only
// registers a module's declarations once KIR generation, which rejects
// duplicate top-level names, has succeeded).
func (t *Table) CreateRecord(scope Index, name source.StringID, vis Visibility, kirInst uint32, mod ModuleID) Index {
	id := Index(len(t.records))
	t.records = append(t.records, Record{
		ID:         id,
		Name:       name,
		Vis:        vis,
		KirInst:    kirInst,
		Module:     mod,
		Namespace:  NoIndex,
		IsComptime: true,
	})
	t.namespaces[scope].Decls[name] = id
	return id
}

// CreateNamespace creates a new namespace of kind nested under parent,
// registered under name in the parent's SubNamespaces map (so a struct
// type's body can later be found by name from its declaring FILE
// namespace).
func (t *Table) CreateNamespace(name string, parent Index, mod ModuleID, kind NamespaceKind) Index {
	idx := Index(len(t.namespaces))
	t.namespaces = append(t.namespaces, Namespace{
		Parent:        parent,
		Kind:          kind,
		Module:        mod,
		SubNamespaces: map[string]Index{},
		Decls:         map[source.StringID]Index{},
	})
	t.namespaces[parent].SubNamespaces[name] = idx
	return idx
}

// AttachNamespace records that rec's body lives in namespace ns (called
// once a struct/variant/impl's member namespace has been created for
// it), linking the two directions of the Record<->Namespace relationship
// the original keeps as separate Mod/Rec back-pointers.
func (t *Table) AttachNamespace(rec, ns Index) {
	t.records[rec].Namespace = ns
	t.namespaces[ns].Rec = rec
}

// GetModule returns the module owning the namespace at scope.
func (t *Table) GetModule(scope Index) ModuleID { return t.namespaces[scope].Module }

// SetModule attaches mod as the owner of the namespace at scope, for a
// FILE namespace created ahead of the file actually being loaded (the
// Module Manager creates the namespace to reserve the name, then backs
// it with a real module once GetOrAdd resolves a path for it).
func (t *Table) SetModule(scope Index, mod ModuleID) { t.namespaces[scope].Module = mod }

// GetRecord returns the record at i.
func (t *Table) GetRecord(i Index) *Record { return &t.records[i] }

// GetNamespace returns the namespace at i.
func (t *Table) GetNamespace(i Index) *Namespace { return &t.namespaces[i] }

// Lookup searches for name starting at scope and walking up through
// Parent namespaces until it reaches ROOT, the way an unqualified
// identifier resolves to the nearest enclosing declaration. A qualified
// lookup (`Type::method`, `module::Name`) should instead walk
// SubNamespaces explicitly rather than call this.
func (t *Table) Lookup(scope Index, name source.StringID) (Index, bool) {
	for ns := scope; ; {
		if id, ok := t.namespaces[ns].Decls[name]; ok {
			return id, true
		}
		if ns == NoIndex {
			return NoIndex, false
		}
		ns = t.namespaces[ns].Parent
	}
}

// LookupSubNamespace resolves one path segment (`Type` in `Type::method`
// or `mod` in `mod::Name`) from scope's direct children.
func (t *Table) LookupSubNamespace(scope Index, segment string) (Index, bool) {
	id, ok := t.namespaces[scope].SubNamespaces[segment]
	return id, ok
}
