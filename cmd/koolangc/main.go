package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "koolangc",
	Short:   "Koolang compiler front end",
	Long:    `koolangc drives Koolang source through the tokenizer, parser, KIR generator, and Sema/AIR type checker.`,
	Version: "0.1.0",
}

func main() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(kirCmd)
	rootCmd.AddCommand(buildCmd)

	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum diagnostics to report per file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
