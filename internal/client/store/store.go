// Package store keeps the client's in-memory copy of one remote collection.
//
// A Store is ordered (server order, new entities appended) and indexed by
// entity id. It is the single source of truth the views render from; the
// mutation engine edits it optimistically through Snapshot and Restore.
package store

import (
	"context"
	"fmt"
	"sync"
)

// Entity is anything with a stable numeric id.
type Entity interface {
	Key() int64
}

// Fetcher returns the full server-side collection.
type Fetcher[E Entity] func(ctx context.Context) ([]E, error)

type Store[E Entity] struct {
	mu      sync.RWMutex
	items   []E
	fetch   Fetcher[E]
	overlay func([]E) []E
}

func New[E Entity](fetch Fetcher[E]) *Store[E] {
	return &Store[E]{fetch: fetch}
}

// Load replaces the collection with a fresh fetch. On error the current
// contents are kept and the error is returned.
func (s *Store[E]) Load(ctx context.Context) error {
	if s.fetch == nil {
		return fmt.Errorf("store: no fetcher configured")
	}
	items, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	s.Replace(items)
	return nil
}

// Replace swaps the whole collection. A registered overlay gets to adjust
// the new contents before anyone can read them.
func (s *Store[E]) Replace(items []E) {
	cp := append([]E(nil), items...)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.overlay != nil {
		cp = s.overlay(cp)
	}
	s.items = cp
}

// Reset empties the store.
func (s *Store[E]) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// SetOverlay registers fn to run on every Replace (and so every Load) with
// the incoming collection; its result is what the store keeps. fn runs
// under the store lock and must not call back into the store.
func (s *Store[E]) SetOverlay(fn func([]E) []E) {
	s.mu.Lock()
	s.overlay = fn
	s.mu.Unlock()
}

// Upsert replaces the entity with the same id in place, or appends it.
func (s *Store[E]) Upsert(e E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(e.Key()); i >= 0 {
		s.items[i] = e
		return
	}
	s.items = append(s.items, e)
}

// Remove deletes the entity with id. It reports whether anything was removed.
func (s *Store[E]) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Store[E]) Get(id int64) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero E
	return zero, false
}

// All returns a copy of the collection in store order.
func (s *Store[E]) All() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]E(nil), s.items...)
}

func (s *Store[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Select returns the entities for which keep is true, in store order.
func (s *Store[E]) Select(keep func(E) bool) []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []E
	for _, e := range s.items {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot is the saved state of one entity.
type Snapshot[E Entity] struct {
	ID      int64
	Value   E
	Index   int
	Present bool
}

// Snapshot captures the value and position of the entity with id.
func (s *Store[E]) Snapshot(id int64) Snapshot[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Snapshot[E]{ID: id, Index: -1}
	}
	return Snapshot[E]{ID: id, Value: s.items[i], Index: i, Present: true}
}

// Restore puts the entity back exactly as snap saw it: same value, and for a
// removed entity the same position (clamped to the current length). A
// snapshot of an absent entity removes whatever now has its id. Other
// entities are not touched.
func (s *Store[E]) Restore(snap Snapshot[E]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(snap.ID)
	switch {
	case !snap.Present && i >= 0:
		s.items = append(s.items[:i], s.items[i+1:]...)
	case snap.Present && i >= 0:
		s.items[i] = snap.Value
	case snap.Present:
		at := min(max(snap.Index, 0), len(s.items))
		s.items = append(s.items, snap.Value)
		copy(s.items[at+1:], s.items[at:])
		s.items[at] = snap.Value
	}
}

func (s *Store[E]) indexOf(id int64) int {
	for i, e := range s.items {
		if e.Key() == id {
			return i
		}
	}
	return -1
}
