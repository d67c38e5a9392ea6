package project

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/Lukide0/Koolang-old/internal/ast"
	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/kir"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/parser"
	"github.com/Lukide0/Koolang-old/internal/sema"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/symbols"
	"github.com/Lukide0/Koolang-old/internal/token"
	"github.com/Lukide0/Koolang-old/internal/types"
)

// Manager resolves import paths to modules and drives every discovered
// file through the front end concurrently. A bounded semaphore channel
// caps how many file jobs run at once, a WaitGroup tracks the
// outstanding-task count, and a mutex guards the shared Table/module
// registry - the idiomatic Go rendering of a mutex-plus-two-condvar
// thread pool: the channel's capacity plays the pool's worker-count
// role, and WaitGroup.Wait blocks exactly on "job queue empty and
// outstanding count zero" the way the pool's own Wait() does.
type Manager struct {
	mu  sync.Mutex
	wg  sync.WaitGroup
	sem chan struct{}

	Table    *symbols.Table
	Pool     *types.Pool
	Interner *source.Interner
	Files    *source.FileSet
	Program  *sema.Program

	includePaths   []string
	maxDiagnostics int

	modules []*Module // index 0 unused, matching symbols.NoModuleID
}

// NewManager creates a Manager that searches includePaths, in order,
// after an importing module's own directory, caps every file's
// diagnostics at maxDiagnostics, and runs at most
// runtime.GOMAXPROCS(0)-1 (minimum 1) file jobs concurrently.
func NewManager(includePaths []string, maxDiagnostics int) *Manager {
	table := symbols.NewTable()
	pool := types.NewPool()

	workers := runtime.GOMAXPROCS(0) - 1
	if workers < 1 {
		workers = 1
	}

	return &Manager{
		sem:            make(chan struct{}, workers),
		Table:          table,
		Pool:           pool,
		Interner:       source.NewInterner(),
		Files:          source.NewFileSet(),
		Program:        sema.NewProgram(table, pool),
		includePaths:   includePaths,
		maxDiagnostics: maxDiagnostics,
		modules:        []*Module{nil},
	}
}

// Modules returns every module the manager has created, in creation
// order (the entry module first).
func (m *Manager) Modules() []*Module { return m.modules[1:] }

// Get returns the module for id, or nil if id is out of range.
func (m *Manager) Get(id symbols.ModuleID) *Module {
	if int(id) <= 0 || int(id) >= len(m.modules) {
		return nil
	}
	return m.modules[id]
}

// Diagnostics collects every module's diagnostics, in module-creation
// order.
func (m *Manager) Diagnostics() []*diag.Diagnostic {
	var all []*diag.Diagnostic
	for _, mod := range m.modules {
		if mod == nil || mod.Bag == nil {
			continue
		}
		all = append(all, mod.Bag.Items()...)
	}
	return all
}

// GenZir creates the entry module at entryPath and blocks until every
// file's tokenize/parse/KIR-gen job - including every import discovered
// transitively along the way - has run to completion. There is no
// cancellation: a file that cannot be read marks its module NotExists,
// any later failure marks it Error, and every other in-flight job
// finishes on its own.
func (m *Manager) GenZir(entryPath string) *Module {
	m.mu.Lock()
	stem := strings.TrimSuffix(filepath.Base(entryPath), filepath.Ext(entryPath))
	ns := m.Table.CreateNamespace(stem, symbols.NoIndex, symbols.NoModuleID, symbols.NamespaceFile)
	id := symbols.ModuleID(len(m.modules))
	mod := &Module{ID: id, SystemPath: entryPath, Namespace: ns, Status: NotLoaded}
	m.modules = append(m.modules, mod)
	m.Table.SetModule(ns, id)
	mod.Status = InProgress
	m.mu.Unlock()

	m.dispatch(mod)
	m.wg.Wait()
	return mod
}

// GenAir runs every prepared module's Builders' AnalyzeBody, the pass
// that must wait until the whole module graph from GenZir is known so
// a cross-module declaration reference always finds its Builder already
// registered. Returns false if any declaration failed to analyze.
func (m *Manager) GenAir() bool {
	ok := true
	for _, mod := range m.modules {
		if mod == nil || mod.Status != Prepared {
			continue
		}
		for _, b := range mod.builders {
			if !b.AnalyzeBody() {
				ok = false
			}
		}
		mod.Status = Done
	}
	return ok
}

// GetOrAdd resolves a dotted import path (`a::b::c`) to a Module,
// searching the importing module's own directory first (if
// fromNamespace names a loaded module), then each include path in
// order. Every search root nests its per-segment namespaces under the
// global ROOT namespace, never under fromNamespace itself, so two
// different importers of the same dotted path always land on the same
// namespace (and therefore the same Module) regardless of who asked
// first - fromNamespace only picks which directory is searched, not
// where the result lives in the namespace tree. A path already
// resolved to a registered namespace returns the existing Module
// instead of re-reading the file. Returns nil if no search root has a
// matching file.
func (m *Manager) GetOrAdd(path string, fromNamespace symbols.Index) *Module {
	m.mu.Lock()
	defer m.mu.Unlock()

	segments := strings.Split(path, "::")

	if fromNamespace != symbols.NoIndex {
		if fromMod := m.Table.GetModule(fromNamespace); fromMod != symbols.NoModuleID {
			if parent := m.modules[fromMod]; parent != nil {
				dir := filepath.Dir(parent.SystemPath)
				if mod := m.resolveUnder(dir, segments); mod != nil {
					return mod
				}
			}
		}
	}
	for _, root := range m.includePaths {
		if mod := m.resolveUnder(root, segments); mod != nil {
			return mod
		}
	}
	return nil
}

// resolveUnder checks whether segments resolves to a file under root
// (`<root>/<segments...>.k`, or `<root>/<segments...>/mod.k` if that's a
// directory), creating one FILE namespace per segment nested under the
// global ROOT namespace and reusing an existing one where the namespace
// tree already has it. Must be called with m.mu held.
func (m *Manager) resolveUnder(root string, segments []string) *Module {
	dirSegs := segments[:len(segments)-1]
	leaf := segments[len(segments)-1]
	dirPath := filepath.Join(append([]string{root}, dirSegs...)...)

	systemPath := filepath.Join(dirPath, leaf+".k")
	if info, err := os.Stat(filepath.Join(dirPath, leaf)); err == nil && info.IsDir() {
		systemPath = filepath.Join(dirPath, leaf, "mod.k")
	}
	if info, err := os.Stat(systemPath); err != nil || info.IsDir() {
		return nil
	}

	ns := symbols.NoIndex
	for _, seg := range segments {
		if existing, ok := m.Table.LookupSubNamespace(ns, seg); ok {
			ns = existing
			continue
		}
		ns = m.Table.CreateNamespace(seg, ns, symbols.NoModuleID, symbols.NamespaceFile)
	}

	if existing := m.Table.GetModule(ns); existing != symbols.NoModuleID {
		return m.modules[existing]
	}

	id := symbols.ModuleID(len(m.modules))
	mod := &Module{ID: id, SystemPath: systemPath, Namespace: ns, Status: NotLoaded}
	m.modules = append(m.modules, mod)
	m.Table.SetModule(ns, id)
	mod.Status = InProgress

	m.dispatch(mod)
	return mod
}

// dispatch runs mod's job on a goroutine, bounded by sem and tracked by
// wg, so GetOrAdd's caller (another job, or GenZir itself) never blocks
// waiting for a free slot - it just queues the job and moves on.
func (m *Manager) dispatch(mod *Module) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.sem <- struct{}{}
		defer func() { <-m.sem }()
		m.runJob(mod)
	}()
}

// runJob reads mod's file and runs it through Tokenizer, Parser, and KIR
// generation, registering a Builder for each top-level declaration and
// recursively resolving its imports. A file that cannot be read marks
// mod NotExists, a failure at any later stage marks it Error, and either
// way runJob returns without enqueueing further work for it - other
// modules already in flight are unaffected.
func (m *Manager) runJob(mod *Module) {
	file, err := m.Files.Load(mod.SystemPath)
	if err != nil {
		mod.Status = NotExists
		return
	}
	mod.File = file

	bag := diag.NewBag(m.maxDiagnostics)
	mod.Bag = bag

	tokens := lexer.New(file, bag).Tokenize()
	mod.Tokens = tokens

	tree := parser.New(file, tokens, bag).Parse()
	if bag.HasErrors() {
		mod.Status = Error
		return
	}
	mod.Tree = tree

	kirBuf, decls := kir.NewGenerator(tree, tokens, file, m.Interner, bag).Generate()
	mod.Kir = kirBuf
	mod.Decls = decls

	if bag.HasErrors() {
		mod.Status = Error
		return
	}

	mod.Status = Prepared
	m.prepareModule(mod)
	m.enqueueImports(mod, tree, tokens, file)
}

// prepareModule registers one symbols.Record and sema.Builder per
// top-level declaration, so a later DeclRef - from this file or an
// importer - always finds a Builder already waiting, before any
// Builder's AnalyzeDecl runs.
func (m *Manager) prepareModule(mod *Module) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mod.builders = make([]*sema.Builder, len(mod.Decls))
	for i, d := range mod.Decls {
		name := mod.Kir.Data[d.Inst].Name
		rec := m.Table.CreateRecord(mod.Namespace, name, symbols.Public, uint32(d.Inst), mod.ID)
		b := sema.NewBuilder(
			m.Program, rec, mod.Namespace,
			mod.Kir, mod.Tokens, mod.File, m.Interner, mod.Bag,
			d.Start, d.End, d.Inst,
		)
		m.Program.Register(rec, b)
		mod.builders[i] = b
	}
}

// enqueueImports extracts mod's import paths from tree (before the
// caller discards it) and resolves each one, reporting - but not
// failing the module over - a missing or self-import.
func (m *Manager) enqueueImports(mod *Module, tree *ast.Tree, tokens *token.List, file *source.File) {
	for _, ip := range collectImports(tree, tokens, file) {
		path := ip.String()
		span := tokens.Span(ip.tok)

		imported := m.GetOrAdd(path, mod.Namespace)
		if imported == nil {
			mod.Bag.Report(diag.Err, diag.CodeUnknownImportPath, span, fmt.Sprintf("cannot find module %q", path))
			continue
		}
		if imported.ID == mod.ID {
			mod.Bag.Report(diag.Err, diag.CodeSelfImport, span, "a module cannot import itself")
			continue
		}

		m.mu.Lock()
		mod.Imports = append(mod.Imports, imported.ID)
		m.mu.Unlock()
	}
}
