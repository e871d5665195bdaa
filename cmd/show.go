// Copyright © 2025 The Lantern authors

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/filter"
)

var (
	showJSON   bool
	showFilter string
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <snapshot>",
	Short: "Render the diagnostics recorded in a snapshot file",
	Long: `Render the diagnostics recorded in a snapshot file.

Messages are printed in provider order, file messages grouped by path
followed by project messages. The --filter flag narrows the output with
a query of space-separated terms, all of which must match:

  severity:<error|warning|info>   match the message severity
  type:<value>                    same as severity
  path:<substring>                match against the file path
  provider:<name>                 match the provider name
  file | project                  match the message scope
  fix                             only messages carrying a fix

Exit codes:
  0  No error-severity messages in the (filtered) output
  1  At least one error-severity message
  2  Bad invocation (unreadable snapshot, invalid filter)

Examples:
  lantern show dump.json
  lantern show --filter 'severity:error' dump.json
  lantern show --filter 'provider:lint fix' dump.json
  lantern show --json dump.json | jq '.[].text'`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		msgs, err := loadSnapshotMessages(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "lantern show: %v\n", err)
			os.Exit(2)
		}

		if showFilter != "" {
			q, err := filter.Parse(showFilter)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lantern show: %v\n", err)
				os.Exit(2)
			}
			msgs = q.Filter(msgs)
		}

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(msgs); err != nil {
				fmt.Fprintf(os.Stderr, "lantern show: %v\n", err)
				os.Exit(2)
			}
		} else if err := newRenderer().RenderAll(os.Stdout, msgs); err != nil {
			fmt.Fprintf(os.Stderr, "lantern show: %v\n", err)
			os.Exit(2)
		}

		for _, m := range msgs {
			if strings.EqualFold(m.Type, "error") {
				os.Exit(1)
			}
		}
	},
}

// loadSnapshotMessages reads a snapshot file and returns its messages
// in store order.
func loadSnapshotMessages(path string) ([]*diagnostics.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	snap, err := diagnostics.DecodeSnapshot(f)
	if err != nil {
		return nil, err
	}
	store := diagnostics.NewStore()
	snap.Apply(store)
	return store.Messages(), nil
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output messages as JSON")
	showCmd.Flags().StringVar(&showFilter, "filter", "", "Filter query, e.g. 'severity:error provider:lint'")
	rootCmd.AddCommand(showCmd)
}
