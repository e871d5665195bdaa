// Copyright © 2025 The Lantern authors

package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
)

// ProviderSnapshot is one provider's full assertion in serializable form.
type ProviderSnapshot struct {
	Name    string                `json:"name"`
	Files   map[string][]*Message `json:"files,omitempty"`
	Project []*Message            `json:"project,omitempty"`
}

// Snapshot is a point-in-time copy of the whole store, used by the CLI
// tooling to move diagnostics in and out of a session. The store itself
// never persists anything.
type Snapshot struct {
	Providers []ProviderSnapshot `json:"providers"`
}

// Snapshot copies the store's current state in provider registration
// order.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var snap Snapshot
	for _, p := range s.order {
		set := s.sets[p]
		ps := ProviderSnapshot{Name: p.Name()}
		if len(set.byPath) > 0 {
			ps.Files = make(map[string][]*Message, len(set.byPath))
			for path, msgs := range set.byPath {
				ps.Files[path] = append([]*Message(nil), msgs...)
			}
		}
		if len(set.project) > 0 {
			ps.Project = append([]*Message(nil), set.project...)
		}
		snap.Providers = append(snap.Providers, ps)
	}
	return snap
}

// Encode writes the snapshot as indented JSON.
func (snap Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// DecodeSnapshot reads a snapshot from JSON, normalizing each message's
// provider name, scope, and file path from its position in the snapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	for _, ps := range snap.Providers {
		for path, msgs := range ps.Files {
			for _, m := range msgs {
				m.ProviderName = ps.Name
				m.Scope = ScopeFile
				if m.FilePath == "" {
					m.FilePath = path
				}
			}
		}
		for _, m := range ps.Project {
			m.ProviderName = ps.Name
			m.Scope = ScopeProject
			m.FilePath = ""
		}
	}
	return snap, nil
}

// Apply loads the snapshot into store, allocating a fresh provider
// handle per entry. Returns the handles keyed by provider name (last
// entry wins on duplicate names).
func (snap Snapshot) Apply(store *Store) map[string]*Provider {
	handles := make(map[string]*Provider, len(snap.Providers))
	for _, ps := range snap.Providers {
		p := NewProvider(ps.Name)
		handles[ps.Name] = p
		update := MessageUpdate{FilePathToMessages: ps.Files}
		if ps.Project != nil {
			update.ProjectMessages = ps.Project
		}
		store.UpdateMessages(p, update)
	}
	return handles
}
