package project

import (
	"strings"

	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

// importPath is one `import a::b::c;` item's dotted path, recovered from
// the AST directly since internal/kir's generator skips imports entirely
// (they're this package's job, not the KIR lowering pass's).
type importPath struct {
	segments []string
	tok      token.Index
}

func (ip importPath) String() string { return strings.Join(ip.segments, "::") }

// collectImports walks tree's top-level ast.ImportDecl nodes, extracting
// every ast.ImportItem's path segments before the caller discards tree.
func collectImports(tree *ast.Tree, tokens *token.List, file *source.File) []importPath {
	var out []importPath
	for _, item := range tree.Root() {
		n := tree.Get(item)
		if n.Tag != ast.ImportDecl {
			continue
		}
		for _, itemIdx := range tree.MetaRange(n.Lhs, n.Rhs) {
			itemNode := tree.Get(itemIdx)
			segTokens := tree.MetaRange(itemNode.Lhs, itemNode.Rhs)
			if len(segTokens) == 0 {
				continue
			}
			segs := make([]string, 0, len(segTokens))
			for _, st := range segTokens {
				segs = append(segs, tokens.Text(token.Index(st), file))
			}
			out = append(out, importPath{segments: segs, tok: token.Index(segTokens[0])})
		}
	}
	return out
}
