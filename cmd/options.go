// Copyright © 2025 The Lantern authors

package cmd

import "github.com/lanternhq/lantern/provider"

// Option configures an exported command factory (LSPCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	registry *provider.Registry
	grammars map[string]string
}

// WithProviders injects a provider registry. The registry's diagnosers,
// definers, and signaturists are consulted by the LSP server for files
// whose grammar they declare.
func WithProviders(reg *provider.Registry) Option {
	return func(c *cmdConfig) { c.registry = reg }
}

// WithGrammar maps a file extension (including the dot) to a grammar
// name for provider matching.
func WithGrammar(ext, grammar string) Option {
	return func(c *cmdConfig) {
		if c.grammars == nil {
			c.grammars = make(map[string]string)
		}
		c.grammars[ext] = grammar
	}
}
