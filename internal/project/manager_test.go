package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestManagerResolvesImportAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "math.k"), "const TWO: u8 = 2;")
	writeFile(t, filepath.Join(root, "main.k"), "import lib::math;\nconst ONE: u8 = 1;")

	mgr := project.NewManager([]string{root}, 64)
	entry := mgr.GenZir(filepath.Join(root, "main.k"))
	require.Equal(t, project.Prepared, entry.Status)
	require.Len(t, entry.Imports, 1)

	imported := mgr.Get(entry.Imports[0])
	require.NotNil(t, imported)
	assert.Equal(t, project.Prepared, imported.Status)
	assert.Contains(t, imported.SystemPath, filepath.Join("lib", "math.k"))

	ok := mgr.GenAir()
	assert.True(t, ok)
	assert.Equal(t, project.Done, entry.Status)
	assert.Equal(t, project.Done, imported.Status)

	var diags []*diag.Diagnostic
	for _, d := range mgr.Diagnostics() {
		diags = append(diags, d)
	}
	assert.Empty(t, diags)
}

func TestManagerReportsUnknownImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.k"), "import nowhere::at::all;\nconst ONE: u8 = 1;")

	mgr := project.NewManager([]string{root}, 64)
	entry := mgr.GenZir(filepath.Join(root, "main.k"))

	require.Equal(t, project.Prepared, entry.Status)
	require.Empty(t, entry.Imports)

	diags := entry.Bag.Items()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeUnknownImportPath, diags[0].Code)
}

func TestManagerReportsSelfImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.k"), "import main;\nconst ONE: u8 = 1;")

	mgr := project.NewManager([]string{root}, 64)
	entry := mgr.GenZir(filepath.Join(root, "main.k"))

	require.Equal(t, project.Prepared, entry.Status)
	require.Empty(t, entry.Imports)

	diags := entry.Bag.Items()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeSelfImport, diags[0].Code)
}

func TestManagerMissingFileIsNotExists(t *testing.T) {
	root := t.TempDir()

	mgr := project.NewManager([]string{root}, 64)
	entry := mgr.GenZir(filepath.Join(root, "missing.k"))

	assert.Equal(t, project.NotExists, entry.Status)
}
