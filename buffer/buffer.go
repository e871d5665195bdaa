// Copyright © 2025 The Lantern authors

// Package buffer manages open text documents with versioned content and
// range edits. It is the concrete text-buffer collaborator that the fix
// applicator and the LSP layer edit through; range edits are announced
// to listeners so the marker tracker can keep message ranges live.
package buffer

import (
	"fmt"
	"sync"

	"github.com/lanternhq/lantern/text"
)

// Document is an open text document.
type Document struct {
	mu      sync.Mutex
	Path    string
	Version int32
	Content string
}

// Snapshot returns the document's current content and version.
func (d *Document) Snapshot() (string, int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Content, d.Version
}

// Edit describes one applied range edit.
type Edit struct {
	Path     string
	OldRange text.Range
	NewText  string
}

// Store manages open documents with thread-safe access.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document

	listenerMu sync.Mutex
	editFns    []func(Edit)
	closeFns   []func(path string)
}

// NewStore creates an empty document store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// OnEdit registers a listener invoked synchronously after every
// successful ReplaceRange.
func (s *Store) OnEdit(fn func(Edit)) {
	s.listenerMu.Lock()
	s.editFns = append(s.editFns, fn)
	s.listenerMu.Unlock()
}

// OnClose registers a listener invoked when a document is closed.
func (s *Store) OnClose(fn func(path string)) {
	s.listenerMu.Lock()
	s.closeFns = append(s.closeFns, fn)
	s.listenerMu.Unlock()
}

// Open adds a document to the store.
func (s *Store) Open(path string, version int32, content string) *Document {
	doc := &Document{Path: path, Version: version, Content: content}
	s.mu.Lock()
	s.docs[path] = doc
	s.mu.Unlock()
	return doc
}

// Change replaces a document's content wholesale (full sync). No edit
// event fires: wholesale replacement carries no range, and tracked
// ranges are refreshed when providers re-assert against the new text.
func (s *Store) Change(path string, version int32, content string) *Document {
	s.mu.Lock()
	doc, ok := s.docs[path]
	if !ok {
		doc = &Document{Path: path}
		s.docs[path] = doc
	}
	s.mu.Unlock()

	doc.mu.Lock()
	doc.Version = version
	doc.Content = content
	doc.mu.Unlock()
	return doc
}

// Close removes a document from the store and notifies close listeners.
func (s *Store) Close(path string) {
	s.mu.Lock()
	_, ok := s.docs[path]
	delete(s.docs, path)
	s.mu.Unlock()
	if !ok {
		return
	}
	for _, fn := range s.closeListeners() {
		fn(path)
	}
}

// Get retrieves a document by path. Returns nil if not open.
func (s *Store) Get(path string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[path]
}

// All returns every open document.
func (s *Store) All() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out
}

// ReplaceRange substitutes the text at r in the document at path with
// newText, bumps the version, and announces the edit to listeners. It
// fails without modifying anything when the document is not open or the
// range does not resolve within its content.
func (s *Store) ReplaceRange(path string, r text.Range, newText string) error {
	doc := s.Get(path)
	if doc == nil {
		return fmt.Errorf("buffer: %s is not open", path)
	}

	doc.mu.Lock()
	replaced, ok := text.Replace(doc.Content, r, newText)
	if !ok {
		doc.mu.Unlock()
		return fmt.Errorf("buffer: range %s out of bounds in %s", r, path)
	}
	doc.Content = replaced
	doc.Version++
	doc.mu.Unlock()

	for _, fn := range s.editListeners() {
		fn(Edit{Path: path, OldRange: r, NewText: newText})
	}
	return nil
}

func (s *Store) editListeners() []func(Edit) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	out := make([]func(Edit), len(s.editFns))
	copy(out, s.editFns)
	return out
}

func (s *Store) closeListeners() []func(string) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	out := make([]func(string), len(s.closeFns))
	copy(out, s.closeFns)
	return out
}
