// Copyright © 2025 The Lantern authors

package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lanternhq/lantern/provider"
)

// textDocumentSignatureHelp handles textDocument/signatureHelp requests
// by asking the highest-priority matching provider for the callable
// under the cursor.
func (s *Server) textDocumentSignatureHelp(_ *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	path := uriToPath(params.TextDocument.URI)
	doc := s.docs.Get(path)
	if doc == nil {
		return nil, nil
	}

	content, _ := doc.Snapshot()
	help, err := provider.FirstSignatureHelp(
		s.requestContext(),
		s.registry,
		s.grammarForPath(path),
		path,
		content,
		fromLSPPosition(params.Position),
	)
	if err != nil || help == nil {
		return nil, nil
	}

	return buildSignatureHelp(help), nil
}

// buildSignatureHelp converts a provider signature result to the LSP
// shape, with offset-based parameter labels located inside the label
// string.
func buildSignatureHelp(help *provider.SignatureHelp) *protocol.SignatureHelp {
	var params []protocol.ParameterInformation
	offset := 0
	for _, p := range help.Parameters {
		start := strings.Index(help.Label[offset:], p)
		if start < 0 {
			params = append(params, protocol.ParameterInformation{Label: p})
			continue
		}
		start += offset
		end := start + len(p)
		params = append(params, protocol.ParameterInformation{
			Label: []protocol.UInteger{safeUint(start), safeUint(end)},
		})
		offset = end
	}

	// Clamp active parameter to valid range.
	ap := help.ActiveParameter
	if len(params) > 0 && ap > len(params)-1 {
		ap = len(params) - 1
	}
	if ap < 0 {
		ap = 0
	}
	active := uint32(ap) // #nosec G115 -- clamped to [0, len(params)-1]

	sigInfo := protocol.SignatureInformation{
		Label:      help.Label,
		Parameters: params,
	}
	if help.Doc != "" {
		sigInfo.Documentation = protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: help.Doc,
		}
	}

	return &protocol.SignatureHelp{
		Signatures:      []protocol.SignatureInformation{sigInfo},
		ActiveSignature: uintPtr(0),
		ActiveParameter: &active,
	}
}

func uintPtr(n uint32) *protocol.UInteger {
	u := protocol.UInteger(n)
	return &u
}
