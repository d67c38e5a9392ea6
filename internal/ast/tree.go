package ast

import "github.com/Lukide0/Koolang-old/internal/token"

// Index identifies a node within a Tree's Nodes vector. Index 0 is the
// reserved sentinel (NoIndex), matching spec §3's NULL_INDEX convention.
type Index uint32

// NoIndex marks the absence of a node.
const NoIndex Index = 0

// Node is a single AST entry: a tag, the token that anchors its source
// location (and, for operators, carries the operator discriminant), and
// two generic payload fields whose meaning is documented per Tag.
type Node struct {
	Tag  Tag
	Main token.Index
	Lhs  Index
	Rhs  Index
}

// Tree is the flat, arena-indexed AST produced by the parser. Element 0 is
// a reserved sentinel. Every referenced child index precedes its parent,
// except for forward-reserved nodes (see Builder.Reserve) that are filled
// in after their children are built.
type Tree struct {
	Nodes []Node
	Meta  []Index
}

// NewTree creates a Tree with the sentinel node already in place.
func NewTree() *Tree {
	return &Tree{
		Nodes: []Node{{}},
		Meta:  []Index{0},
	}
}

// Get returns the node at i.
func (t *Tree) Get(i Index) Node { return t.Nodes[i] }

// MetaRange returns the meta slice [start, start+count).
func (t *Tree) MetaRange(start, count Index) []Index {
	if count == 0 {
		return nil
	}
	return t.Meta[start : start+count]
}

// MetaCounted reads a count-prefixed meta slice starting at start: the
// element at start is the count, the elements following it are the items.
func (t *Tree) MetaCounted(start Index) []Index {
	if start == 0 {
		return nil
	}
	count := t.Meta[start]
	if count == 0 {
		return nil
	}
	return t.Meta[start+1 : start+1+count]
}

// FnTypeReturn reads the return type node appended after a TypeFn node's
// count-prefixed parameter slice (see TypeFn's tag comment).
func (t *Tree) FnTypeReturn(start Index) Index {
	count := t.Meta[start]
	return t.Meta[start+1+count]
}

// Root returns the Root node's top-level item indices.
func (t *Tree) Root() []Index {
	root := t.Get(1)
	return t.MetaRange(root.Lhs, root.Rhs)
}
