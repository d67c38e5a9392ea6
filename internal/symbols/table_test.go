package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/symbols"
)

func TestTableCreateRecordAndLookup(t *testing.T) {
	tbl := symbols.NewTable()
	in := source.NewInterner()

	file := tbl.CreateNamespace("main.k", symbols.NoIndex, 1, symbols.NamespaceFile)
	name := in.Intern("A")

	rec := tbl.CreateRecord(file, name, symbols.Public, 7, 1)
	require.NotEqual(t, symbols.NoIndex, rec)

	got, ok := tbl.Lookup(file, name)
	require.True(t, ok)
	assert.Equal(t, rec, got)
	assert.Equal(t, uint32(7), tbl.GetRecord(rec).KirInst)
	assert.Equal(t, symbols.Public, tbl.GetRecord(rec).Vis)
}

func TestTableLookupWalksUpToParent(t *testing.T) {
	tbl := symbols.NewTable()
	in := source.NewInterner()

	file := tbl.CreateNamespace("main.k", symbols.NoIndex, 1, symbols.NamespaceFile)
	name := in.Intern("Point")
	structRec := tbl.CreateRecord(file, name, symbols.Public, 3, 1)

	body := tbl.CreateNamespace("Point", file, 1, symbols.NamespaceStruct)
	tbl.AttachNamespace(structRec, body)

	methodName := in.Intern("len")
	methodRec := tbl.CreateRecord(body, methodName, symbols.Private, 9, 1)

	// A method is found from its own struct namespace...
	got, ok := tbl.Lookup(body, methodName)
	require.True(t, ok)
	assert.Equal(t, methodRec, got)

	// ...and the struct's own name is found by walking up from the body
	// namespace to its parent FILE namespace.
	got, ok = tbl.Lookup(body, name)
	require.True(t, ok)
	assert.Equal(t, structRec, got)

	assert.Equal(t, body, tbl.GetRecord(structRec).Namespace)
	assert.Equal(t, structRec, tbl.GetNamespace(body).Rec)
}

func TestTableLookupSubNamespace(t *testing.T) {
	tbl := symbols.NewTable()
	file := tbl.CreateNamespace("main.k", symbols.NoIndex, 1, symbols.NamespaceFile)

	got, ok := tbl.LookupSubNamespace(symbols.NoIndex, "main.k")
	require.True(t, ok)
	assert.Equal(t, file, got)

	_, ok = tbl.LookupSubNamespace(symbols.NoIndex, "missing.k")
	assert.False(t, ok)
}

func TestRecordStateString(t *testing.T) {
	assert.Equal(t, "not-analyzed", symbols.NotAnalyzed.String())
	assert.Equal(t, "in-progress", symbols.InProgress.String())
	assert.Equal(t, "complete", symbols.Complete.String())
}
