package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lukide0/Koolang-old/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build <entry-file>",
	Short: "Build a program starting from an entry file, resolving imports across the module graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringArray("include", nil, "additional import search path (repeatable)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	entry := args[0]
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	includePaths, err := cmd.Flags().GetStringArray("include")
	if err != nil {
		return err
	}

	mgr := project.NewManager(includePaths, maxDiagnostics)
	entryMod := mgr.GenZir(entry)
	if entryMod.Status == project.NotExists {
		return fmt.Errorf("entry file not found: %s", entry)
	}

	ok := mgr.GenAir()

	for _, mod := range mgr.Modules() {
		if mod.Bag == nil || mod.Bag.Len() == 0 {
			continue
		}
		printDiagnostics(cmd.ErrOrStderr(), mod.Bag, mod.SystemPath, mod.File)
	}

	if !ok {
		return fmt.Errorf("build failed: %d module(s) loaded, type checking reported errors", len(mgr.Modules()))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "build ok: %d module(s)\n", len(mgr.Modules()))
	return nil
}
