// Copyright © 2025 The Lantern authors

// Package provider defines the interfaces external diagnostic engines
// implement, a priority-ordered registry matching providers to file
// grammars, and the cooperative-cancellation helpers consuming
// components use to query them.
package provider

import (
	"context"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/text"
)

// Info is the registration metadata every provider supplies.
type Info struct {
	// Name identifies the provider and doubles as the diagnostics
	// source shown to users.
	Name string

	// Priority orders providers for the same grammar; higher wins.
	// Consumers fall back to lower priorities when a provider has no
	// result.
	Priority int

	// GrammarScopes lists the grammars the provider handles. The single
	// entry "*" matches every grammar.
	GrammarScopes []string
}

// Matches reports whether the provider covers the given grammar.
func (i Info) Matches(grammar string) bool {
	for _, g := range i.GrammarScopes {
		if g == grammar || g == "*" {
			return true
		}
	}
	return false
}

// Diagnoser produces diagnostic messages for one file. The returned
// update is dispatched into the store as the provider's replacement
// assertion for that file.
type Diagnoser interface {
	Info() Info
	Diagnose(ctx context.Context, path, content string) (*diagnostics.MessageUpdate, error)
}

// Location is a definition target.
type Location struct {
	Path  string
	Range text.Range
}

// Definer resolves go-to-definition for a cursor position.
type Definer interface {
	Info() Info
	Definition(ctx context.Context, path, content string, pos text.Position) (*Location, error)
}

// SignatureHelp describes the callable under the cursor.
type SignatureHelp struct {
	// Label is the full signature line, e.g. "connect(host, port)".
	Label string

	// Doc is optional markdown documentation.
	Doc string

	// Parameters are the individual parameter labels, in order.
	Parameters []string

	// ActiveParameter is the 0-based index of the argument at the
	// cursor, clamped to the parameter list by consumers.
	ActiveParameter int
}

// Signaturist produces signature help for a cursor position.
type Signaturist interface {
	Info() Info
	SignatureHelp(ctx context.Context, path, content string, pos text.Position) (*SignatureHelp, error)
}
