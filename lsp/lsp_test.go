// Copyright © 2025 The Lantern authors

package lsp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/provider"
	"github.com/lanternhq/lantern/text"
)

func TestPositionConversions(t *testing.T) {
	p := text.Position{Line: 3, Character: 7}
	assert.Equal(t, protocol.Position{Line: 3, Character: 7}, toLSPPosition(p))
	assert.Equal(t, p, fromLSPPosition(toLSPPosition(p)))

	r := text.NewRange(1, 0, 2, 4)
	assert.Equal(t, r, fromLSPRange(toLSPRange(r)))
}

func TestSafeUintClampsNegative(t *testing.T) {
	assert.Equal(t, protocol.UInteger(0), safeUint(-5))
	assert.Equal(t, protocol.UInteger(9), safeUint(9))
}

func TestURIPathConversions(t *testing.T) {
	assert.Equal(t, "/work/a.go", uriToPath("file:///work/a.go"))
	assert.Equal(t, "untitled:one", uriToPath("untitled:one"))
	assert.Equal(t, "file:///work/a.go", pathToURI("/work/a.go"))
	assert.Equal(t, "untitled:one", pathToURI("untitled:one"))
}

func TestGrammarForPath(t *testing.T) {
	s := New(WithGrammar(".go", "go"), WithGrammar(".lisp", "lisp"))
	assert.Equal(t, "go", s.grammarForPath("/work/main.go"))
	assert.Equal(t, "go", s.grammarForPath("/work/MAIN.GO"))
	assert.Equal(t, "lisp", s.grammarForPath("util.lisp"))
	assert.Equal(t, "", s.grammarForPath("README"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, protocol.DiagnosticSeverityError, mapSeverity("error"))
	assert.Equal(t, protocol.DiagnosticSeverityError, mapSeverity("Error"))
	assert.Equal(t, protocol.DiagnosticSeverityWarning, mapSeverity("warning"))
	assert.Equal(t, protocol.DiagnosticSeverityInformation, mapSeverity("info"))
	assert.Equal(t, protocol.DiagnosticSeverityWarning, mapSeverity("custom"))
}

func TestBuildSignatureHelp(t *testing.T) {
	help := buildSignatureHelp(&provider.SignatureHelp{
		Label:           "connect(host, port)",
		Doc:             "Opens a connection.",
		Parameters:      []string{"host", "port"},
		ActiveParameter: 1,
	})

	require.Len(t, help.Signatures, 1)
	sig := help.Signatures[0]
	assert.Equal(t, "connect(host, port)", sig.Label)
	require.Len(t, sig.Parameters, 2)
	assert.Equal(t, []protocol.UInteger{8, 12}, sig.Parameters[0].Label)
	assert.Equal(t, []protocol.UInteger{14, 18}, sig.Parameters[1].Label)
	require.NotNil(t, help.ActiveParameter)
	assert.Equal(t, protocol.UInteger(1), *help.ActiveParameter)
}

func TestBuildSignatureHelpClampsActiveParameter(t *testing.T) {
	help := buildSignatureHelp(&provider.SignatureHelp{
		Label:           "f(x)",
		Parameters:      []string{"x"},
		ActiveParameter: 5,
	})
	require.NotNil(t, help.ActiveParameter)
	assert.Equal(t, protocol.UInteger(0), *help.ActiveParameter)
}

// stubDiagnoser asserts one fixed message against every diagnosed file.
type stubDiagnoser struct {
	name string
	text string
}

func (d *stubDiagnoser) Info() provider.Info {
	return provider.Info{Name: d.name, GrammarScopes: []string{"*"}}
}

func (d *stubDiagnoser) Diagnose(_ context.Context, path, content string) (*diagnostics.MessageUpdate, error) {
	return &diagnostics.MessageUpdate{
		FilePathToMessages: map[string][]*diagnostics.Message{
			path: {{
				ProviderName: d.name,
				Scope:        diagnostics.ScopeFile,
				Type:         "error",
				FilePath:     path,
				Text:         d.text,
			}},
		},
	}, nil
}

func TestRunDiagnosersFoldsIntoStore(t *testing.T) {
	reg := provider.NewRegistry()
	reg.RegisterDiagnoser(&stubDiagnoser{name: "lint", text: "bad"})
	s := New(WithRegistry(reg))

	s.runDiagnosers("/work/a.go", "package main\n")

	msgs := s.Store().FileMessages("/work/a.go")
	require.Len(t, msgs, 1)
	assert.Equal(t, "bad", msgs[0].Text)

	// The same diagnoser re-asserting keeps one handle, not two.
	s.runDiagnosers("/work/a.go", "package main\n\n")
	assert.Len(t, s.Store().FileMessages("/work/a.go"), 1)
}

func TestPublishFileDiagnosticsShape(t *testing.T) {
	s := New()

	var method string
	var sent any
	s.notify = func(m string, params any) {
		method = m
		sent = params
	}

	rng := text.NewRange(2, 0, 2, 4)
	s.publishFileDiagnostics("/work/a.go", []*diagnostics.Message{{
		ProviderName: "lint",
		Scope:        diagnostics.ScopeFile,
		Type:         "error",
		FilePath:     "/work/a.go",
		Text:         "broken",
		Range:        &rng,
	}})

	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
	params, ok := sent.(*protocol.PublishDiagnosticsParams)
	require.True(t, ok)
	assert.Equal(t, "file:///work/a.go", params.URI)
	require.Len(t, params.Diagnostics, 1)
	d := params.Diagnostics[0]
	assert.Equal(t, "broken", d.Message)
	require.NotNil(t, d.Source)
	assert.Equal(t, "lint", *d.Source)
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, d.Range.Start)
}

// capturingContext returns a context that captures published diagnostics.
func capturingContext() (*glsp.Context, *[]*protocol.PublishDiagnosticsParams) {
	var captured []*protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				captured = append(captured, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
	return ctx, &captured
}

func TestDidOpenPublishesAggregatedDiagnostics(t *testing.T) {
	reg := provider.NewRegistry()
	reg.RegisterDiagnoser(&stubDiagnoser{name: "lint", text: "bad"})
	s := New(WithRegistry(reg), WithDebounceDelay(5*time.Millisecond))

	ctx, captured := capturingContext()

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     "file:///work/a.go",
			Version: 1,
			Text:    "package main\n",
		},
	})
	require.NoError(t, err)

	// The open subscription fires once for the provider's assertion.
	require.NotEmpty(t, *captured)
	last := (*captured)[len(*captured)-1]
	assert.Equal(t, "file:///work/a.go", last.URI)
	require.Len(t, last.Diagnostics, 1)
	assert.Equal(t, "bad", last.Diagnostics[0].Message)

	// Closing clears the client's diagnostics.
	*captured = nil
	err = s.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///work/a.go"},
	})
	require.NoError(t, err)
	require.Len(t, *captured, 1)
	assert.Empty(t, (*captured)[0].Diagnostics)
}
