package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/parser"
	"github.com/Lukide0/Koolang-old/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and report its top-level item count",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
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

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.New(file, bag).Tokenize()
	tree := parser.New(file, tokens, bag).Parse()

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d top-level item(s), %d node(s)\n", path, len(tree.Root()), len(tree.Nodes))

	printDiagnostics(cmd.ErrOrStderr(), bag, path, file)
	if bag.HasErrors() {
		return fmt.Errorf("parsing failed with %d diagnostic(s)", bag.Len())
	}
	return nil
}
