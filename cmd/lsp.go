// Copyright © 2025 The Lantern authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/lanternhq/lantern/lsp"
)

// LSPCommand creates the "lsp" cobra command with optional embedder
// configuration. Embedders pass WithProviders to register the
// diagnostic, definition, and signature providers the server consults.
func LSPCommand(opts ...Option) *cobra.Command {
	var cfg cmdConfig
	for _, o := range opts {
		o(&cfg)
	}

	var (
		stdio     bool
		port      int
		verbosity int
	)

	cmd := &cobra.Command{
		Use:   "lsp [flags]",
		Short: "Start the lantern Language Server Protocol server",
		Long: `Start an LSP server aggregating registered diagnostic providers.

The language server publishes the merged per-file diagnostics of every
registered provider, and routes go-to-definition and signature-help
requests to the highest-priority provider matching the file's grammar.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  lantern lsp                        Start with stdio transport
  lantern lsp --stdio                Same as above (explicit)
  lantern lsp --port 7998            Start with TCP on port 7998`,
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			commonlog.Configure(verbosity, nil)

			var serverOpts []lsp.Option
			if cfg.registry != nil {
				serverOpts = append(serverOpts, lsp.WithRegistry(cfg.registry))
			}
			for ext, grammar := range cfg.grammars {
				serverOpts = append(serverOpts, lsp.WithGrammar(ext, grammar))
			}

			srv := lsp.New(serverOpts...)

			if !stdio && port > 0 {
				addr := fmt.Sprintf("localhost:%d", port)
				log.Printf("lantern LSP server listening on %s", addr)
				if err := srv.RunTCP(addr); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			} else {
				if err := srv.RunStdio(); err != nil {
					fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
					os.Exit(1)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	cmd.Flags().IntVar(&port, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
	cmd.Flags().IntVar(&verbosity, "verbose", 0,
		"Log verbosity (0 quiet, 1 info, 2 debug)")

	return cmd
}

func init() {
	rootCmd.AddCommand(LSPCommand())
}
