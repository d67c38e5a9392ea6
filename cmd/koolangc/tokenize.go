package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Lukide0/Koolang-old/internal/diag"
	"github.com/Lukide0/Koolang-old/internal/lexer"
	"github.com/Lukide0/Koolang-old/internal/source"
	"github.com/Lukide0/Koolang-old/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Tokenize a source file and print its tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	for i := 1; i < tokens.Len(); i++ {
		idx := token.Index(i)
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %q\n", tokens.Kind(idx).String(), tokens.Text(idx, file))
	}

	printDiagnostics(cmd.ErrOrStderr(), bag, path, file)
	if bag.HasErrors() {
		return fmt.Errorf("tokenization failed with %d diagnostic(s)", bag.Len())
	}
	return nil
}
