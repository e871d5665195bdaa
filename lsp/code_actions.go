// Copyright © 2025 The Lantern authors

package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lanternhq/lantern/diagnostics"
)

// textDocumentCodeAction handles the textDocument/codeAction request.
// It returns quick-fix actions for store messages carrying fixes whose
// ranges overlap the requested range.
func (s *Server) textDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	path := uriToPath(params.TextDocument.URI)
	doc := s.docs.Get(path)
	if doc == nil {
		return nil, nil
	}

	// If the client only wants specific kinds, check we support them.
	if len(params.Context.Only) > 0 {
		if !slicesContains(params.Context.Only, protocol.CodeActionKindQuickFix) {
			return nil, nil
		}
	}

	requested := fromLSPRange(params.Range)

	var actions []protocol.CodeAction
	for _, m := range s.store.FileMessages(path) {
		if m.Fix == nil || m.Range == nil {
			continue
		}
		r := *m.Range
		if cur, ok := s.tracker.RangeFor(m); ok {
			r = cur
		}
		if !r.Overlaps(requested) && !requested.Contains(r.Start) {
			continue
		}
		actions = append(actions, s.fixAction(params.TextDocument.URI, m))
	}

	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

// fixAction builds a quick-fix code action applying a message's fix.
func (s *Server) fixAction(uri string, m *diagnostics.Message) protocol.CodeAction {
	title := m.Fix.Title
	if title == "" {
		title = fmt.Sprintf("Fix: %s", m.Text)
	}

	fixRange := m.Fix.OldRange
	if cur, ok := s.tracker.RangeFor(m); ok {
		fixRange = cur
	}

	kind := protocol.CodeActionKindQuickFix
	return protocol.CodeAction{
		Title: title,
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[string][]protocol.TextEdit{
				uri: {
					{
						Range:   toLSPRange(fixRange),
						NewText: m.Fix.NewText,
					},
				},
			},
		},
	}
}

// slicesContains checks if a string slice contains a value.
func slicesContains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}
