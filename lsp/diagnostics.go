// Copyright © 2025 The Lantern authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/provider"
)

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	path := uriToPath(params.TextDocument.URI)
	doc := s.docs.Open(path, int32(params.TextDocument.Version), params.TextDocument.Text)

	// Subscribe to the aggregated per-file union so every store change
	// touching this file is republished, whichever provider caused it.
	sub := s.updater.ObserveFileMessages(path, func(e diagnostics.FileMessagesEvent) {
		s.publishFileDiagnostics(e.FilePath, e.Messages)
	})
	s.subMu.Lock()
	if old, ok := s.subs[path]; ok {
		old.Dispose()
	}
	s.subs[path] = sub
	s.subMu.Unlock()

	content, _ := doc.Snapshot()
	s.runDiagnosers(doc.Path, content)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	path := uriToPath(params.TextDocument.URI)
	doc := s.docs.Change(path, int32(params.TextDocument.Version), content)

	// Debounce: delay provider dispatch to avoid thrashing during
	// rapid edits.
	s.debounceMu.Lock()
	d, ok := s.debounce[path]
	if !ok {
		d = provider.NewDebouncer(s.debounceDelay)
		s.debounce[path] = d
	}
	s.debounceMu.Unlock()
	d.Trigger(func() {
		defer func() { _ = recover() }() // don't crash the server on provider panic
		cur := s.docs.Get(doc.Path)
		if cur != nil {
			content, _ := cur.Snapshot()
			s.runDiagnosers(cur.Path, content)
		}
	})
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	path := uriToPath(params.TextDocument.URI)

	run := func() {
		doc := s.docs.Get(path)
		if doc != nil {
			content, _ := doc.Snapshot()
			s.runDiagnosers(doc.Path, content)
		}
	}

	// Flush any pending debounce so the save reflects final content.
	s.debounceMu.Lock()
	d, pending := s.debounce[path]
	s.debounceMu.Unlock()
	if pending {
		d.Flush(run)
	} else {
		run()
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path := uriToPath(params.TextDocument.URI)

	s.debounceMu.Lock()
	if d, ok := s.debounce[path]; ok {
		d.Stop()
		delete(s.debounce, path)
	}
	s.debounceMu.Unlock()

	s.subMu.Lock()
	if sub, ok := s.subs[path]; ok {
		sub.Dispose()
		delete(s.subs, path)
	}
	s.subMu.Unlock()

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(path)
	return nil
}

// runDiagnosers dispatches every provider matching the file's grammar
// and folds each result into the diagnostics store. Messages with
// ranges are also registered with the range tracker so later edits keep
// them anchored.
func (s *Server) runDiagnosers(path, content string) {
	grammar := s.grammarForPath(path)
	for _, diag := range s.registry.DiagnosersFor(grammar) {
		update, err := diag.Diagnose(context.Background(), path, content)
		if err != nil || update == nil {
			continue
		}
		handle := s.handleFor(diag)
		s.store.UpdateMessages(handle, *update)
		for p, msgs := range update.FilePathToMessages {
			for _, m := range msgs {
				if m.Range != nil {
					s.tracker.Track(p, m, *m.Range)
				}
			}
		}
	}
}

// publishFileDiagnostics converts the aggregated messages for one file
// into LSP diagnostics and sends them to the client.
func (s *Server) publishFileDiagnostics(path string, msgs []*diagnostics.Message) {
	diags := make([]protocol.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		d := protocol.Diagnostic{
			Severity: severity(mapSeverity(m.Type)),
			Source:   strPtr(m.ProviderName),
			Message:  m.Text,
		}
		if m.Range != nil {
			r := *m.Range
			if cur, ok := s.tracker.RangeFor(m); ok {
				r = cur
			}
			d.Range = toLSPRange(r)
		}
		diags = append(diags, d)
	}
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diags,
	})
}

// mapSeverity converts a message type to a protocol.DiagnosticSeverity.
func mapSeverity(typ string) protocol.DiagnosticSeverity {
	switch typ {
	case "error", "Error":
		return protocol.DiagnosticSeverityError
	case "warning", "Warning":
		return protocol.DiagnosticSeverityWarning
	case "info", "Info":
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func strPtr(s string) *string {
	return &s
}
