// Copyright © 2025 The Lantern authors

package diagnostics

import (
	"sort"
	"sync"
)

// Annotator receives a callback around every store transition. Begin is
// called when the transition starts; the returned function is called
// when it completes. See the instrument package for tracing backends.
type Annotator interface {
	Begin(op string) func()
}

// providerSet is the most-recent full assertion from one provider,
// partitioned by scope.
type providerSet struct {
	byPath  map[string][]*Message
	project []*Message
}

func newProviderSet() *providerSet {
	return &providerSet{byPath: make(map[string][]*Message)}
}

// Store is the authoritative mapping from provider to per-scope
// messages. All mutation goes through UpdateMessages,
// InvalidateMessages, InvalidateMessage, and RemoveProvider; each is a
// serialized transition, and registered listeners observe every
// transition synchronously before the mutating call returns.
//
// Listener callbacks must not dispatch further store operations; the
// dispatch lock is not reentrant.
type Store struct {
	// dispatchMu serializes transitions together with their listener
	// notifications so no two transitions interleave.
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	order     []*Provider
	sets      map[*Provider]*providerSet
	listeners []func(Change)
	annotator Annotator
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAnnotator attaches a transition annotator (e.g. a tracing span
// recorder) to the store.
func WithAnnotator(a Annotator) StoreOption {
	return func(s *Store) { s.annotator = a }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{sets: make(map[*Provider]*providerSet)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// addListener registers a raw change listener. Used by Updater; the
// listener is invoked synchronously for every non-empty transition.
func (s *Store) addListener(fn func(Change)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// dispatch runs one state transition and notifies listeners. The
// mutation function runs under the state lock; notifications run after
// it is released but still inside the dispatch lock, so listeners see
// fully applied state and transitions never interleave.
func (s *Store) dispatch(op string, mutate func() Change) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if s.annotator != nil {
		end := s.annotator.Begin(op)
		defer end()
	}

	s.mu.Lock()
	change := mutate()
	listeners := make([]func(Change), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if change.IsZero() {
		return
	}
	for _, fn := range listeners {
		fn(change)
	}
}

// setFor returns the provider's set, allocating it (and recording the
// provider's registration order) on first use. Caller holds s.mu.
func (s *Store) setFor(p *Provider) *providerSet {
	set, ok := s.sets[p]
	if !ok {
		set = newProviderSet()
		s.sets[p] = set
		s.order = append(s.order, p)
	}
	return set
}

// UpdateMessages applies a provider's replacement assertion. Each path
// present in the update replaces the provider's previous messages for
// that path (an empty list clears the path); paths not mentioned are
// kept. A non-nil ProjectMessages slice replaces the provider's project
// messages. Other providers are untouched.
func (s *Store) UpdateMessages(p *Provider, u MessageUpdate) {
	s.dispatch("update-messages", func() Change {
		set := s.setFor(p)
		var change Change
		for path, msgs := range u.FilePathToMessages {
			if len(msgs) == 0 {
				delete(set.byPath, path)
			} else {
				set.byPath[path] = append([]*Message(nil), msgs...)
			}
			change.touch(path)
		}
		if u.ProjectMessages != nil {
			set.project = append([]*Message(nil), u.ProjectMessages...)
			change.Project = true
		}
		return change
	})
}

// InvalidateMessages discards part of a provider's assertion. Unknown
// providers and paths the provider never asserted are no-ops; other
// providers' messages at the same paths are unaffected.
func (s *Store) InvalidateMessages(p *Provider, inv Invalidation) {
	s.dispatch("invalidate-messages", func() Change {
		set, ok := s.sets[p]
		if !ok {
			return Change{}
		}
		var change Change
		switch inv.kind {
		case invalidateFiles:
			for _, path := range inv.paths {
				if _, ok := set.byPath[path]; ok {
					delete(set.byPath, path)
					change.touch(path)
				}
			}
		case invalidateProject:
			if len(set.project) > 0 {
				set.project = nil
				change.Project = true
			}
		case invalidateAll:
			for path := range set.byPath {
				change.touch(path)
			}
			if len(set.project) > 0 {
				change.Project = true
			}
			set.byPath = make(map[string][]*Message)
			set.project = nil
		}
		return change
	})
}

// InvalidateMessage removes exactly one message, implemented as a
// partial re-assertion of its provider's messages for the touched scope
// minus the message. Identity is pointer identity. Returns false when no
// provider currently holds the message.
func (s *Store) InvalidateMessage(m *Message) bool {
	removed := false
	s.dispatch("invalidate-message", func() Change {
		var change Change
		for _, p := range s.order {
			set := s.sets[p]
			if m.Scope == ScopeFile {
				msgs, ok := set.byPath[m.FilePath]
				if !ok {
					continue
				}
				kept := withoutMessage(msgs, m)
				if len(kept) == len(msgs) {
					continue
				}
				if len(kept) == 0 {
					delete(set.byPath, m.FilePath)
				} else {
					set.byPath[m.FilePath] = kept
				}
				removed = true
				change.touch(m.FilePath)
				return change
			}
			kept := withoutMessage(set.project, m)
			if len(kept) == len(set.project) {
				continue
			}
			set.project = kept
			removed = true
			change.Project = true
			return change
		}
		return change
	})
	return removed
}

// withoutMessage filters m out of msgs by pointer identity.
func withoutMessage(msgs []*Message, m *Message) []*Message {
	kept := msgs[:0:0]
	for _, x := range msgs {
		if x != m {
			kept = append(kept, x)
		}
	}
	return kept
}

// RemoveProvider deletes the provider's entire assertion and forgets
// the provider. A no-op for unknown providers.
func (s *Store) RemoveProvider(p *Provider) {
	s.dispatch("remove-provider", func() Change {
		set, ok := s.sets[p]
		if !ok {
			return Change{}
		}
		var change Change
		for path := range set.byPath {
			change.touch(path)
		}
		if len(set.project) > 0 {
			change.Project = true
		}
		delete(s.sets, p)
		for i, q := range s.order {
			if q == p {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return change
	})
}

// FileMessages returns the union of all providers' messages at path, in
// provider registration order, stable within each provider's list.
func (s *Store) FileMessages(path string) []*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Message
	for _, p := range s.order {
		out = append(out, s.sets[p].byPath[path]...)
	}
	return out
}

// ProjectMessages returns the union of all providers' project messages.
func (s *Store) ProjectMessages() []*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Message
	for _, p := range s.order {
		out = append(out, s.sets[p].project...)
	}
	return out
}

// Messages returns every message in the store, file and project scope,
// across all providers.
func (s *Store) Messages() []*Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Message
	for _, p := range s.order {
		set := s.sets[p]
		for _, path := range sortedPaths(set.byPath) {
			out = append(out, set.byPath[path]...)
		}
		out = append(out, set.project...)
	}
	return out
}

// FilePaths returns the sorted set of paths that currently have at
// least one message.
func (s *Store) FilePaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	for _, set := range s.sets {
		for path := range set.byPath {
			seen[path] = true
		}
	}
	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func sortedPaths(byPath map[string][]*Message) []string {
	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
