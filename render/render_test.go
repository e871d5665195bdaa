// Copyright © 2025 The Lantern authors

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/text"
)

func renderOne(t *testing.T, r *Renderer, m *diagnostics.Message) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, m))
	return buf.String()
}

func TestRenderFileMessage(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	rng := text.NewRange(4, 2, 4, 9)
	out := renderOne(t, r, &diagnostics.Message{
		ProviderName: "lint",
		Scope:        diagnostics.ScopeFile,
		Type:         "error",
		FilePath:     "src/a.go",
		Text:         "unused variable",
		Range:        &rng,
	})

	assert.Contains(t, out, "error[lint]\n")
	assert.Contains(t, out, "--> src/a.go:5:3\n", "location is 1-based")
	assert.Contains(t, out, "  unused variable\n")
}

func TestRenderProjectMessage(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	out := renderOne(t, r, &diagnostics.Message{
		ProviderName: "build",
		Scope:        diagnostics.ScopeProject,
		Type:         "warning",
		Text:         "dependency cycle",
	})

	assert.Contains(t, out, "warning[build]\n")
	assert.Contains(t, out, "--> project\n")
}

func TestRenderDefaultsSeverityToInfo(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	out := renderOne(t, r, &diagnostics.Message{
		ProviderName: "spell",
		Scope:        diagnostics.ScopeFile,
		FilePath:     "a.md",
		Text:         "typo",
	})

	assert.True(t, strings.HasPrefix(out, "info[spell]\n"), out)
}

func TestRenderFixNote(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	out := renderOne(t, r, &diagnostics.Message{
		ProviderName: "lint",
		Scope:        diagnostics.ScopeFile,
		Type:         "warning",
		FilePath:     "a.go",
		Text:         "wrong name",
		Fix: &diagnostics.Fix{
			OldRange: text.NewRange(0, 0, 0, 3),
			NewText:  "bar",
			Title:    "Rename to bar",
		},
	})

	assert.Contains(t, out, "= fix: Rename to bar\n")
}

func TestRenderWrapsLongText(t *testing.T) {
	r := &Renderer{Color: ColorNever, Width: 20}
	out := renderOne(t, r, &diagnostics.Message{
		ProviderName: "lint",
		Scope:        diagnostics.ScopeFile,
		Type:         "info",
		FilePath:     "a.go",
		Text:         "this message is comfortably longer than twenty characters",
	})

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 26, "wrapped line: %q", line)
	}
}

func TestRenderAllSeparatesWithBlankLines(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	msgs := []*diagnostics.Message{
		{ProviderName: "a", Scope: diagnostics.ScopeFile, Type: "error", FilePath: "a.go", Text: "one"},
		{ProviderName: "b", Scope: diagnostics.ScopeFile, Type: "error", FilePath: "b.go", Text: "two"},
	}

	var buf bytes.Buffer
	require.NoError(t, r.RenderAll(&buf, msgs))

	assert.Contains(t, buf.String(), "one\n\nerror[b]")
}

func TestColorNeverEmitsNoEscapes(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	out := renderOne(t, r, &diagnostics.Message{
		ProviderName: "lint",
		Scope:        diagnostics.ScopeFile,
		Type:         "error",
		FilePath:     "a.go",
		Text:         "x",
	})
	assert.NotContains(t, out, "\033[")
}

func TestColorAlwaysEmitsEscapes(t *testing.T) {
	r := &Renderer{Color: ColorAlways}
	out := renderOne(t, r, &diagnostics.Message{
		ProviderName: "lint",
		Scope:        diagnostics.ScopeFile,
		Type:         "error",
		FilePath:     "a.go",
		Text:         "x",
	})
	assert.Contains(t, out, "\033[1;31m", "errors render bold red")
}
