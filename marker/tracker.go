// Copyright © 2025 The Lantern authors

// Package marker tracks live source ranges for diagnostic messages so
// that edits to a file move the ranges along instead of letting them go
// stale. It owns no diagnostics logic; it is pure range bookkeeping
// keyed by file path.
package marker

import (
	"sync"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/text"
)

// Tracker maintains adjusted ranges for messages, keyed by file path.
// Wire ApplyEdit to the buffer layer's edit events and DropFile to its
// close events.
type Tracker struct {
	mu     sync.Mutex
	byPath map[string]map[*diagnostics.Message]text.Range
	paths  map[*diagnostics.Message]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byPath: make(map[string]map[*diagnostics.Message]text.Range),
		paths:  make(map[*diagnostics.Message]string),
	}
}

// Track registers (or re-registers) the range for a message at path.
// A message tracked under an earlier path moves to the new one.
func (t *Tracker) Track(path string, m *diagnostics.Message, r text.Range) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.paths[m]; ok && old != path {
		delete(t.byPath[old], m)
	}
	ranges, ok := t.byPath[path]
	if !ok {
		ranges = make(map[*diagnostics.Message]text.Range)
		t.byPath[path] = ranges
	}
	ranges[m] = r
	t.paths[m] = path
}

// RangeFor returns the current adjusted range for a tracked message.
func (t *Tracker) RangeFor(m *diagnostics.Message) (text.Range, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	path, ok := t.paths[m]
	if !ok {
		return text.Range{}, false
	}
	r, ok := t.byPath[path][m]
	return r, ok
}

// Untrack forgets one message.
func (t *Tracker) Untrack(m *diagnostics.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	path, ok := t.paths[m]
	if !ok {
		return
	}
	delete(t.byPath[path], m)
	delete(t.paths, m)
}

// ApplyEdit shifts every tracked range at path through an edit that
// replaced oldRange with newText. Ranges before the edit are unchanged,
// ranges after it shift by the edit's delta, and ranges whose interior
// was edited shrink.
func (t *Tracker) ApplyEdit(path string, oldRange text.Range, newText string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ranges, ok := t.byPath[path]
	if !ok {
		return
	}
	for m, r := range ranges {
		ranges[m] = text.AdjustRange(r, oldRange, newText)
	}
}

// DropFile discards all tracked ranges for path, typically on file
// close.
func (t *Tracker) DropFile(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for m := range t.byPath[path] {
		delete(t.paths, m)
	}
	delete(t.byPath, path)
}
