// Copyright © 2025 The Lantern authors

package lsp

import (
	"path/filepath"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lanternhq/lantern/provider"
)

// textDocumentDefinition handles the textDocument/definition request.
// Providers matching the file's grammar are queried in priority order
// and the first result wins.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	path := uriToPath(params.TextDocument.URI)
	doc := s.docs.Get(path)
	if doc == nil {
		return nil, nil
	}

	content, _ := doc.Snapshot()
	loc, err := provider.FirstDefinition(
		s.requestContext(),
		s.registry,
		s.grammarForPath(path),
		path,
		content,
		fromLSPPosition(params.Position),
	)
	if err != nil || loc == nil {
		return nil, nil
	}

	defPath := loc.Path
	// Resolve relative paths against workspace root.
	if !filepath.IsAbs(defPath) && s.rootPath != "" {
		defPath = filepath.Join(s.rootPath, defPath)
	}

	return protocol.Location{
		URI:   pathToURI(defPath),
		Range: toLSPRange(loc.Range),
	}, nil
}
