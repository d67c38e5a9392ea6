package ast

import "github.com/Lukide0/Koolang-old/internal/token"

// Builder appends nodes to a Tree and manages the scratch cache used to
// accumulate a node's variable-arity children before their count is known
// (spec §4.2's "Cache" design).
type Builder struct {
	Tree    *Tree
	scratch []Index
}

// NewBuilder creates a Builder writing into a fresh Tree.
func NewBuilder() *Builder {
	return &Builder{Tree: NewTree()}
}

// Reserve appends a placeholder node and returns its index, for forms
// (like a self-referencing loop or a node whose children must be built
// before its own Lhs/Rhs are known) that need to commit the index before
// the node's final content is known.
func (b *Builder) Reserve(tag Tag, main token.Index) Index {
	b.Tree.Nodes = append(b.Tree.Nodes, Node{Tag: tag, Main: main})
	return Index(len(b.Tree.Nodes) - 1)
}

// Fill overwrites a previously reserved node's Lhs/Rhs once they are
// known; the Main token given to Reserve is kept.
func (b *Builder) Fill(i Index, lhs, rhs Index) {
	b.Tree.Nodes[i].Lhs = lhs
	b.Tree.Nodes[i].Rhs = rhs
}

// Create appends a fully-formed node and returns its index.
func (b *Builder) Create(tag Tag, main token.Index, lhs, rhs Index) Index {
	b.Tree.Nodes = append(b.Tree.Nodes, Node{Tag: tag, Main: main, Lhs: lhs, Rhs: rhs})
	return Index(len(b.Tree.Nodes) - 1)
}

// PushScratch records a child index on the scratch stack, to be flushed
// into Meta once the caller knows how many children it collected.
func (b *Builder) PushScratch(i Index) {
	b.scratch = append(b.scratch, i)
}

// ScratchLen returns the current scratch stack depth, used as a mark to
// flush only children pushed since a given point (supporting nested
// variable-arity collection, e.g. a block inside a block).
func (b *Builder) ScratchLen() int { return len(b.scratch) }

// FlushMeta moves scratch[mark:] into Meta and truncates the scratch
// stack back to mark, returning the (start, count) pair for the flushed
// range.
func (b *Builder) FlushMeta(mark int) (start, count Index) {
	items := b.scratch[mark:]
	start = Index(len(b.Tree.Meta))
	b.Tree.Meta = append(b.Tree.Meta, items...)
	count = Index(len(items))
	b.scratch = b.scratch[:mark]
	return start, count
}

// FlushMetaCounted is like FlushMeta but writes a count-prefixed slice
// (see Tree.MetaCounted), for tags that need a fixed field alongside a
// variable-arity list.
func (b *Builder) FlushMetaCounted(mark int) Index {
	items := b.scratch[mark:]
	start := Index(len(b.Tree.Meta))
	b.Tree.Meta = append(b.Tree.Meta, Index(len(items)))
	b.Tree.Meta = append(b.Tree.Meta, items...)
	b.scratch = b.scratch[:mark]
	return start
}

// PushFixed appends a fixed-size group of indices directly to Meta and
// returns its start (used for FnDecl's [params, ret, body] and similar
// fixed-arity payloads that don't need a count).
func (b *Builder) PushFixed(values ...Index) Index {
	start := Index(len(b.Tree.Meta))
	b.Tree.Meta = append(b.Tree.Meta, values...)
	return start
}
