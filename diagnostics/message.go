// Copyright © 2025 The Lantern authors

// Package diagnostics implements the central message store for editor
// diagnostics. Independent providers assert messages scoped to a single
// file or to the whole project; the store indexes them per provider,
// supports partial invalidation, and fans out change notifications to
// filtered observers (see Updater).
package diagnostics

import (
	"encoding/json"
	"fmt"

	"github.com/lanternhq/lantern/text"
)

// Scope classifies a message as tied to one file or to the project.
type Scope int

const (
	ScopeFile Scope = iota
	ScopeProject
)

func (s Scope) String() string {
	switch s {
	case ScopeFile:
		return "file"
	case ScopeProject:
		return "project"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the scope as a JSON string.
func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a scope from a JSON string.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "file":
		*s = ScopeFile
	case "project":
		*s = ScopeProject
	default:
		return fmt.Errorf("unknown scope: %q", str)
	}
	return nil
}

// Fix is a textual correction attached to a message: replacing the text
// at OldRange with NewText resolves the problem the message reports.
type Fix struct {
	OldRange text.Range `json:"oldRange"`
	NewText  string     `json:"newText"`

	// Title is an optional human-readable description shown in fix menus.
	Title string `json:"title,omitempty"`
}

// Message is a single diagnostic produced by a provider.
//
// A file-scoped message always carries FilePath; a project-scoped
// message never does.
type Message struct {
	// ProviderName identifies the producing provider for display. Store
	// bookkeeping keys on the *Provider handle, not on this string, so
	// two providers may share a display name.
	ProviderName string `json:"providerName"`

	Scope Scope `json:"scope"`

	// Type is an open-set severity classification ("Error", "Warning",
	// "Info", or any provider-defined string).
	Type string `json:"type,omitempty"`

	FilePath string `json:"filePath,omitempty"`

	// Text is the human-readable message body.
	Text string `json:"text,omitempty"`

	Range *text.Range `json:"range,omitempty"`
	Fix   *Fix        `json:"fix,omitempty"`
}

// String returns the message in file:line: text (provider) form.
func (m *Message) String() string {
	loc := "project"
	if m.Scope == ScopeFile {
		loc = m.FilePath
		if m.Range != nil {
			loc = fmt.Sprintf("%s:%d:%d", m.FilePath, m.Range.Start.Line+1, m.Range.Start.Character+1)
		}
	}
	return fmt.Sprintf("%s: %s (%s)", loc, m.Text, m.ProviderName)
}

// Provider is an opaque handle identifying one diagnostics producer.
// The store keys on pointer identity.
type Provider struct {
	name string
}

// NewProvider allocates a provider handle with a display name.
func NewProvider(name string) *Provider {
	return &Provider{name: name}
}

// Name returns the provider's display name.
func (p *Provider) Name() string {
	return p.name
}

// MessageUpdate is a provider's replacement assertion.
//
// Replacement is per path: each path present in FilePathToMessages has
// the provider's previous messages for that path discarded and replaced;
// paths the provider asserted earlier but absent from the map are left
// untouched. ProjectMessages follows Go's nil convention: a nil slice
// means "not included in this update" (previous project messages kept),
// while a non-nil empty slice fully clears them.
type MessageUpdate struct {
	FilePathToMessages map[string][]*Message
	ProjectMessages    []*Message
}

type invalidationKind int

const (
	invalidateFiles invalidationKind = iota
	invalidateProject
	invalidateAll
)

// Invalidation selects which of a provider's messages to discard. Build
// one with InvalidateFiles, InvalidateProject, or InvalidateAll.
type Invalidation struct {
	kind  invalidationKind
	paths []string
}

// InvalidateFiles removes the provider's messages at exactly the given
// file paths.
func InvalidateFiles(paths ...string) Invalidation {
	return Invalidation{kind: invalidateFiles, paths: paths}
}

// InvalidateProject clears the provider's project-scope messages.
func InvalidateProject() Invalidation {
	return Invalidation{kind: invalidateProject}
}

// InvalidateAll clears all of the provider's messages, file and project.
func InvalidateAll() Invalidation {
	return Invalidation{kind: invalidateAll}
}

// Change summarizes which parts of the store one transition touched.
type Change struct {
	// Paths are the file paths whose message sets were replaced or
	// removed, deduplicated.
	Paths []string

	// Project reports whether project-scope messages were touched.
	Project bool
}

// IsZero reports whether the change touched nothing.
func (c Change) IsZero() bool {
	return len(c.Paths) == 0 && !c.Project
}

func (c *Change) touch(path string) {
	for _, p := range c.Paths {
		if p == path {
			return
		}
	}
	c.Paths = append(c.Paths, path)
}
