// Copyright © 2025 The Lantern authors

package diagnostics

import "sync"

// FileMessagesEvent is delivered to file observers: the observed path
// and the current union of all providers' messages at that path.
type FileMessagesEvent struct {
	FilePath string
	Messages []*Message
}

type subKind int

const (
	subFile subKind = iota
	subProject
	subAll
)

// Subscription is a registered observer. Dispose stops delivery with
// immediate effect: once Dispose returns, the callback is never invoked
// again, including for the in-flight transition's remaining fan-out.
type Subscription struct {
	u        *Updater
	kind     subKind
	path     string
	fileCB   func(FileMessagesEvent)
	listCB   func([]*Message)
	disposed bool
}

// Dispose cancels the subscription.
func (sub *Subscription) Dispose() {
	u := sub.u
	u.mu.Lock()
	defer u.mu.Unlock()
	sub.disposed = true
	for i, s := range u.subs {
		if s == sub {
			u.subs = append(u.subs[:i], u.subs[i+1:]...)
			break
		}
	}
}

// Updater is the subscription layer over a Store. A newly registered
// observer is invoked once immediately with the current matching state;
// thereafter it is invoked exactly once per store transition that
// touches its filter, synchronously, in registration order, before the
// dispatching operation returns.
//
// Observer callbacks run inside the store's dispatch and must not
// dispatch further store operations.
type Updater struct {
	store *Store

	mu   sync.Mutex
	subs []*Subscription
}

// NewUpdater creates an updater bound to store.
func NewUpdater(store *Store) *Updater {
	u := &Updater{store: store}
	store.addListener(u.handleChange)
	return u
}

// ObserveFileMessages subscribes to the message union at path. The
// callback fires immediately with current state, then after every
// transition touching path (even when the resulting union is
// value-identical, since the store does not deduplicate re-assertions).
func (u *Updater) ObserveFileMessages(path string, cb func(FileMessagesEvent)) *Subscription {
	sub := &Subscription{u: u, kind: subFile, path: path, fileCB: cb}
	u.add(sub)
	cb(FileMessagesEvent{FilePath: path, Messages: u.store.FileMessages(path)})
	return sub
}

// ObserveProjectMessages subscribes to the project-scope union.
func (u *Updater) ObserveProjectMessages(cb func([]*Message)) *Subscription {
	sub := &Subscription{u: u, kind: subProject, listCB: cb}
	u.add(sub)
	cb(u.store.ProjectMessages())
	return sub
}

// ObserveMessages subscribes to everything: the callback fires on every
// transition that changes any message anywhere, with the full union.
func (u *Updater) ObserveMessages(cb func([]*Message)) *Subscription {
	sub := &Subscription{u: u, kind: subAll, listCB: cb}
	u.add(sub)
	cb(u.store.Messages())
	return sub
}

func (u *Updater) add(sub *Subscription) {
	u.mu.Lock()
	u.subs = append(u.subs, sub)
	u.mu.Unlock()
}

// handleChange fans one transition out to matching subscriptions in
// registration order. Disposal is re-checked per delivery so a callback
// disposing a later subscription suppresses its delivery for the same
// transition.
func (u *Updater) handleChange(c Change) {
	u.mu.Lock()
	snapshot := make([]*Subscription, len(u.subs))
	copy(snapshot, u.subs)
	u.mu.Unlock()

	touched := make(map[string]bool, len(c.Paths))
	for _, p := range c.Paths {
		touched[p] = true
	}

	for _, sub := range snapshot {
		u.mu.Lock()
		disposed := sub.disposed
		u.mu.Unlock()
		if disposed {
			continue
		}
		switch sub.kind {
		case subFile:
			if touched[sub.path] {
				sub.fileCB(FileMessagesEvent{
					FilePath: sub.path,
					Messages: u.store.FileMessages(sub.path),
				})
			}
		case subProject:
			if c.Project {
				sub.listCB(u.store.ProjectMessages())
			}
		case subAll:
			sub.listCB(u.store.Messages())
		}
	}
}
