// Copyright © 2025 The Lantern authors

package provider

import (
	"context"

	"github.com/lanternhq/lantern/text"
)

// FirstDefinition queries the definition providers matching grammar in
// priority order and returns the first non-nil result. Provider errors
// are treated as "no result" and the next provider is tried. A non-nil
// error is returned only when ctx is cancelled, in which case any
// late-arriving result must be discarded by the caller.
func FirstDefinition(ctx context.Context, reg *Registry, grammar, path, content string, pos text.Position) (*Location, error) {
	for _, d := range reg.DefinersFor(grammar) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loc, err := d.Definition(ctx, path, content, pos)
		if err != nil || loc == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			// The result arrived after cancellation; it is no longer
			// authoritative and must not be used.
			return nil, err
		}
		return loc, nil
	}
	return nil, ctx.Err()
}

// FirstSignatureHelp queries signature-help providers matching grammar
// in priority order with the same fallback and cancellation rules as
// FirstDefinition.
func FirstSignatureHelp(ctx context.Context, reg *Registry, grammar, path, content string, pos text.Position) (*SignatureHelp, error) {
	for _, s := range reg.SignaturistsFor(grammar) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		help, err := s.SignatureHelp(ctx, path, content, pos)
		if err != nil || help == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return help, nil
	}
	return nil, ctx.Err()
}
