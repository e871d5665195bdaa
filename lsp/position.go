// Copyright © 2025 The Lantern authors

package lsp

import (
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lanternhq/lantern/text"
)

// toLSPPosition converts a lantern position to a 0-based LSP position.
func toLSPPosition(p text.Position) protocol.Position {
	return protocol.Position{
		Line:      safeUint(p.Line),
		Character: safeUint(p.Character),
	}
}

// fromLSPPosition converts a 0-based LSP position to a lantern position.
func fromLSPPosition(p protocol.Position) text.Position {
	return text.Position{
		Line:      int(p.Line),
		Character: int(p.Character),
	}
}

// toLSPRange converts a lantern range to an LSP range.
func toLSPRange(r text.Range) protocol.Range {
	return protocol.Range{
		Start: toLSPPosition(r.Start),
		End:   toLSPPosition(r.End),
	}
}

// fromLSPRange converts an LSP range to a lantern range.
func fromLSPRange(r protocol.Range) text.Range {
	return text.Range{
		Start: fromLSPPosition(r.Start),
		End:   fromLSPPosition(r.End),
	}
}

// safeUint converts a non-negative int to protocol.UInteger, clamping
// negative values to zero.
func safeUint(n int) protocol.UInteger {
	if n < 0 {
		return 0
	}
	return protocol.UInteger(n) // #nosec G115 -- line/col are always small positive ints
}

// grammarForPath resolves a file path to a grammar name via the
// extension table. Unknown extensions map to the empty grammar, which
// only providers declaring the "*" scope match.
func (s *Server) grammarForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return s.grammars[ext]
}

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// pathToURI converts a filesystem path to a file:// URI.
func pathToURI(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
