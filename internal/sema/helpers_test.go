package sema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/kir"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/parser"
	"github.com/Lukide0/Koolang-old/internal/sema"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/symbols"
	"github.com/Lukide0/Koolang-old/internal/types"
)

// analysis bundles one single-file compilation's worth of Sema state,
// wired the same way internal/project.Manager's prepareModule does for
// a real multi-file build, minus the concurrency: a Table/Pool/Program
// shared by every declaration's Builder, so a DeclRef between two
// top-level decls in the same source resolves exactly as it would
// inside a real module.
type analysis struct {
	table    *symbols.Table
	ns       symbols.Index
	builders []*sema.Builder
}

// record looks up a declaration by name within this analysis's file
// namespace, for asserting on its resolved Ty/Val/AirInst after
// AnalyzeBody.
func (a *analysis) record(t *testing.T, name string, interner *source.Interner) *symbols.Record {
	t.Helper()
	id := interner.Intern(name)
	rec, ok := a.table.Lookup(a.ns, id)
	require.True(t, ok, "no declaration named %q", name)
	return a.table.GetRecord(rec)
}

// analyzeSrc tokenizes, parses, and lowers src to KIR, then registers
// and runs AnalyzeBody for every top-level declaration, mirroring
// internal/project.Manager.prepareModule/GenAir for a single file with
// no imports. Returns the diagnostics bag (shared across KIR gen and
// Sema, as a real module's does), the resulting analysis, and the
// interner used for name lookups.
func analyzeSrc(t *testing.T, src string) (*diag.Bag, *analysis, *source.Interner) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Add("test.k", []byte(src))
	bag := diag.NewBag(64)
	tokens := lexer.New(file, bag).Tokenize()
	tree := parser.New(file, tokens, bag).Parse()
	interner := source.NewInterner()
	kirBuf, decls := kir.NewGenerator(tree, tokens, file, interner, bag).Generate()
	require.False(t, bag.HasErrors(), "unexpected KIR errors: %v", bag.Items())

	table := symbols.NewTable()
	pool := types.NewPool()
	prog := sema.NewProgram(table, pool)
	ns := table.CreateNamespace("test", symbols.Index(0), symbols.ModuleID(1), symbols.NamespaceFile)

	builders := make([]*sema.Builder, len(decls))
	for i, d := range decls {
		name := kirBuf.Data[d.Inst].Name
		rec := table.CreateRecord(ns, name, symbols.Public, uint32(d.Inst), symbols.ModuleID(1))
		b := sema.NewBuilder(prog, rec, ns, kirBuf, tokens, file, interner, bag, d.Start, d.End, d.Inst)
		prog.Register(rec, b)
		builders[i] = b
	}

	for _, b := range builders {
		b.AnalyzeBody()
	}

	return bag, &analysis{table: table, ns: ns, builders: builders}, interner
}

func firstCode(bag *diag.Bag) diag.Code {
	if bag.Len() == 0 {
		return diag.Code(0)
	}
	return bag.Items()[0].Code
}

func firstSpanStart(bag *diag.Bag) uint32 {
	if bag.Len() == 0 {
		return 0
	}
	return bag.Items()[0].Label.Span.Start
}
