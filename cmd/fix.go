// Copyright © 2025 The Lantern authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/fixer"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <snapshot> [paths...]",
	Short: "Apply the fixes recorded in a diagnostics snapshot",
	Long: `Apply the fixes recorded in a diagnostics snapshot to the files
on disk.

With no paths, every file named in the snapshot is fixed. With paths,
only those files are touched. Within one file, fixes are applied from
the bottom of the file upward so earlier edits cannot shift the ranges
of later ones; fixes whose ranges overlap an already-applied fix are
skipped and left for a later run against fresh diagnostics.

Exit codes:
  0  All applicable fixes applied
  1  One or more fixes failed to apply
  2  Bad invocation (unreadable snapshot)

Examples:
  lantern fix dump.json
  lantern fix dump.json src/main.c src/util.c`,
	Args: cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "lantern fix: %v\n", err)
			os.Exit(2)
		}
		snap, err := diagnostics.DecodeSnapshot(f)
		f.Close() //nolint:errcheck // read-only file
		if err != nil {
			fmt.Fprintf(os.Stderr, "lantern fix: %v\n", err)
			os.Exit(2)
		}

		store := diagnostics.NewStore()
		snap.Apply(store)

		paths := args[1:]
		if len(paths) == 0 {
			paths = store.FilePaths()
		}

		fixes := fixer.New(fixer.FileEditor{}, store)
		failed := false
		for _, path := range paths {
			if err := fixes.ApplyFixesForFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "lantern fix: %s: %v\n", path, err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
