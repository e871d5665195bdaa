// Copyright © 2025 The Lantern authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanternhq/lantern/console"
	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/fixer"
)

var consoleCmd = &cobra.Command{
	Use:   "console <snapshot>",
	Short: "Explore a diagnostics snapshot interactively",
	Long: `Explore a diagnostics snapshot interactively.

Loads the snapshot into a store and starts a readline prompt with
commands to list files, show filtered messages, and apply fixes to the
files on disk. Type "help" at the prompt for the command list.

Examples:
  lantern console dump.json`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "lantern console: %v\n", err)
			os.Exit(2)
		}
		snap, err := diagnostics.DecodeSnapshot(f)
		f.Close() //nolint:errcheck // read-only file
		if err != nil {
			fmt.Fprintf(os.Stderr, "lantern console: %v\n", err)
			os.Exit(2)
		}

		store := diagnostics.NewStore()
		snap.Apply(store)

		fixes := fixer.New(fixer.FileEditor{}, store)
		err = console.Run(store, newRenderer(), console.WithApplicator(fixes))
		if err != nil {
			fmt.Fprintf(os.Stderr, "lantern console: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
