// Copyright © 2025 The Lantern authors

package provider

import (
	"sort"
	"sync"
)

// Registry holds registered providers per capability. Lookup returns
// the providers matching a grammar in descending priority order;
// registration order breaks priority ties.
type Registry struct {
	mu           sync.RWMutex
	diagnosers   []Diagnoser
	definers     []Definer
	signaturists []Signaturist
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterDiagnoser adds a diagnostics provider.
func (r *Registry) RegisterDiagnoser(d Diagnoser) {
	r.mu.Lock()
	r.diagnosers = append(r.diagnosers, d)
	r.mu.Unlock()
}

// RegisterDefiner adds a definition provider.
func (r *Registry) RegisterDefiner(d Definer) {
	r.mu.Lock()
	r.definers = append(r.definers, d)
	r.mu.Unlock()
}

// RegisterSignaturist adds a signature-help provider.
func (r *Registry) RegisterSignaturist(s Signaturist) {
	r.mu.Lock()
	r.signaturists = append(r.signaturists, s)
	r.mu.Unlock()
}

// RemoveDiagnoser unregisters a diagnostics provider.
func (r *Registry) RemoveDiagnoser(d Diagnoser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, x := range r.diagnosers {
		if x == d {
			r.diagnosers = append(r.diagnosers[:i], r.diagnosers[i+1:]...)
			return
		}
	}
}

// DiagnosersFor returns the diagnostics providers matching grammar,
// highest priority first.
func (r *Registry) DiagnosersFor(grammar string) []Diagnoser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Diagnoser
	for _, d := range r.diagnosers {
		if d.Info().Matches(grammar) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Info().Priority > out[j].Info().Priority
	})
	return out
}

// DefinersFor returns the definition providers matching grammar,
// highest priority first.
func (r *Registry) DefinersFor(grammar string) []Definer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Definer
	for _, d := range r.definers {
		if d.Info().Matches(grammar) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Info().Priority > out[j].Info().Priority
	})
	return out
}

// SignaturistsFor returns the signature-help providers matching
// grammar, highest priority first.
func (r *Registry) SignaturistsFor(grammar string) []Signaturist {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Signaturist
	for _, s := range r.signaturists {
		if s.Info().Matches(grammar) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Info().Priority > out[j].Info().Priority
	})
	return out
}
