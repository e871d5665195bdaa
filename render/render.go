// Copyright © 2025 The Lantern authors

// Package render formats diagnostic messages for console output. It is
// intentionally independent of the editor integration so the CLI can
// use it without pulling in the LSP layer.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/lanternhq/lantern/diagnostics"
)

const defaultWrapWidth = 76

// Renderer formats messages as annotated console output.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Width is the wrap column for message text. Zero means a default
	// of 76.
	Width int
}

// Render writes a single message to w.
func (r *Renderer) Render(w io.Writer, m *diagnostics.Message) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, m, p)
	r.writeLocation(ew, m, p)
	r.writeBody(ew, m)
	if m.Fix != nil {
		label := m.Fix.Title
		if label == "" {
			label = fmt.Sprintf("replace %s with %q", m.Fix.OldRange, m.Fix.NewText)
		}
		ew.printf("   %s=%s fix: %s\n", p.boldCyan, p.reset, label)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all messages to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, msgs []*diagnostics.Message) error {
	for i, m := range msgs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, m); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes. This avoids checking every fmt.Fprintf return value.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// writeHeader emits "severity[provider]:" colored by severity class.
func (r *Renderer) writeHeader(ew *errWriter, m *diagnostics.Message, p palette) {
	sevColor := p.boldCyan
	switch strings.ToLower(m.Type) {
	case "error":
		sevColor = p.boldRed
	case "warning":
		sevColor = p.yellow
	}
	sev := m.Type
	if sev == "" {
		sev = "info"
	}
	ew.printf("%s%s%s", sevColor, strings.ToLower(sev), p.reset)
	if m.ProviderName != "" {
		ew.printf("%s[%s]%s", p.bold, m.ProviderName, p.reset)
	}
	ew.print("\n")
}

func (r *Renderer) writeLocation(ew *errWriter, m *diagnostics.Message, p palette) {
	loc := "project"
	if m.Scope == diagnostics.ScopeFile {
		loc = m.FilePath
		if m.Range != nil {
			loc = fmt.Sprintf("%s:%d:%d", m.FilePath, m.Range.Start.Line+1, m.Range.Start.Character+1)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)
}

func (r *Renderer) writeBody(ew *errWriter, m *diagnostics.Message) {
	if m.Text == "" {
		return
	}
	width := r.Width
	if width <= 0 {
		width = defaultWrapWidth
	}
	body := indent.String(wordwrap.String(m.Text, width), 2)
	ew.print(strings.TrimSuffix(body, "\n"))
	ew.print("\n")
}

// fileFromWriter attempts to extract an *os.File from a writer for
// terminal detection. Returns nil if the writer is not backed by a file.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
