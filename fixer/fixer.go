// Copyright © 2025 The Lantern authors

// Package fixer applies the textual fixes attached to diagnostic
// messages and invalidates each message from the store once its fix has
// landed. A failed edit leaves the message valid and retryable.
package fixer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/marker"
	"github.com/lanternhq/lantern/text"
)

// Editor performs a range edit against a file's content. buffer.Store
// satisfies it for in-memory documents; FileEditor edits files on disk.
type Editor interface {
	ReplaceRange(path string, r text.Range, newText string) error
}

// Applicator coordinates fix application between an editor and the
// diagnostics store.
type Applicator struct {
	editor  Editor
	store   *diagnostics.Store
	tracker *marker.Tracker
}

// Option configures an Applicator.
type Option func(*Applicator)

// WithTracker makes the applicator prefer the tracker's adjusted range
// for a message's fix over the range recorded at assertion time.
func WithTracker(t *marker.Tracker) Option {
	return func(a *Applicator) { a.tracker = t }
}

// New creates an applicator bound to an editor and a store.
func New(editor Editor, store *diagnostics.Store, opts ...Option) *Applicator {
	a := &Applicator{editor: editor, store: store}
	for _, o := range opts {
		o(a)
	}
	return a
}

// ApplyFix replaces the text at the message's fix range with the fix's
// replacement, then invalidates exactly that message from the store. A
// message without a fix is a silent no-op. When the edit fails the
// error is returned and the message stays in the store, safe to retry.
func (a *Applicator) ApplyFix(m *diagnostics.Message) error {
	if m.Fix == nil {
		return nil
	}
	if err := a.editor.ReplaceRange(m.FilePath, a.fixRange(m), m.Fix.NewText); err != nil {
		return fmt.Errorf("apply fix: %w", err)
	}
	a.store.InvalidateMessage(m)
	return nil
}

// ApplyFixesForFile applies every message-with-fix at path across all
// providers, invalidating each as applied. Fixes are ordered by range
// start and applied bottom-to-top so earlier text is never displaced;
// a fix overlapping one already applied in the same pass is skipped and
// stays in the store. Edit failures are collected and returned joined;
// failed messages remain valid.
func (a *Applicator) ApplyFixesForFile(path string) error {
	var fixable []*diagnostics.Message
	for _, m := range a.store.FileMessages(path) {
		if m.Fix != nil {
			fixable = append(fixable, m)
		}
	}
	sort.SliceStable(fixable, func(i, j int) bool {
		return a.fixRange(fixable[j]).Start.Before(a.fixRange(fixable[i]).Start)
	})

	var errs []error
	var applied []text.Range
	for _, m := range fixable {
		r := a.fixRange(m)
		if overlapsAny(r, applied) {
			continue
		}
		if err := a.editor.ReplaceRange(path, r, m.Fix.NewText); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.Text, err))
			continue
		}
		applied = append(applied, r)
		a.store.InvalidateMessage(m)
	}
	return errors.Join(errs...)
}

// fixRange returns the range to edit for a message's fix, preferring
// the tracker's adjusted range when available.
func (a *Applicator) fixRange(m *diagnostics.Message) text.Range {
	if a.tracker != nil {
		if r, ok := a.tracker.RangeFor(m); ok {
			return r
		}
	}
	return m.Fix.OldRange
}

func overlapsAny(r text.Range, rs []text.Range) bool {
	for _, q := range rs {
		if r.Overlaps(q) {
			return true
		}
	}
	return false
}
