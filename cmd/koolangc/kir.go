package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/kir"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/parser"
	"github.com/Lukide0/Koolang-old/internal/source"
)

var kirCmd = &cobra.Command{
	Use:   "kir <file>",
	Short: "Lower a source file to KIR and print one line per declaration",
	Args:  cobra.ExactArgs(1),
	RunE:  runKir,
}

func runKir(cmd *cobra.Command, args []string) error {
	path := args[0]
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	files := source.NewFileSet()
	file := files.Add(path, content)
	interner := source.NewInterner()

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.New(file, bag).Tokenize()
	tree := parser.New(file, tokens, bag).Parse()
	buf, decls := kir.NewGenerator(tree, tokens, file, interner, bag).Generate()

	for i, d := range decls {
		fmt.Fprintf(cmd.OutOrStdout(), "decl[%d]: tag=%d instructions=[%d,%d)\n", i, buf.Tag[d.Inst], d.Start, d.End)
	}

	printDiagnostics(cmd.ErrOrStderr(), bag, path, file)
	if bag.HasErrors() {
		return fmt.Errorf("kir generation failed with %d diagnostic(s)", bag.Len())
	}
	return nil
}
