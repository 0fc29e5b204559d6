// Package mutation applies changes to a store optimistically.
//
// Each mutation changes the local store first, then asks the server. When
// the server refuses (or cannot be reached) the entity is restored from a
// snapshot taken just before the change. The lifecycle of every mutation is
//
//	Applied -> Confirmed | RolledBack
//
// and a mutation that never started (the entity is busy, absent, or the
// local change itself failed) ends as Rejected without touching the store.
//
// Only one mutation per entity may be in flight; mutations on different
// entities run independently and each restores only its own entity. A
// reload of the store while a mutation is pending keeps the pending local
// value, so a late server copy never overwrites it.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/itcontroller/internal/client/store"
	"github.com/dmitrijs2005/itcontroller/internal/common"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
	"github.com/google/uuid"
)

var ErrInFlight = errors.New("another change to this item is still in progress")

type State int

const (
	Applied State = iota
	Confirmed
	RolledBack
	Rejected
)

func (s State) String() string {
	switch s {
	case Applied:
		return "applied"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled back"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is the terminal result of one mutation. Err is nil only for
// Confirmed. RefreshErr reports a failed reload after a confirmed change;
// it never causes a rollback.
type Outcome struct {
	ID         uuid.UUID
	Key        int64
	State      State
	Err        error
	RefreshErr error
}

func (o Outcome) OK() bool { return o.State == Confirmed }

// Mutation describes an update of one entity.
//
// Apply derives the new value from the current one; it must not modify
// shared data reachable from its argument. Remote sends the new value to the
// server. With Refresh set, the store is reloaded after confirmation so
// server-computed fields show up.
type Mutation[E store.Entity] struct {
	Key     int64
	Apply   func(current E) (E, error)
	Remote  func(ctx context.Context, next E) error
	Refresh bool
}

type Engine[E store.Entity] struct {
	store  *store.Store[E]
	logger logging.Logger

	mu       sync.Mutex
	inflight map[int64]uuid.UUID
	pending  map[int64]pending[E]
}

// pending is the local value of an unsettled mutation.
type pending[E store.Entity] struct {
	value   E
	removed bool
}

func New[E store.Entity](s *store.Store[E], logger logging.Logger) *Engine[E] {
	if logger == nil {
		logger = logging.Nop()
	}
	e := &Engine[E]{
		store:    s,
		logger:   logger,
		inflight: make(map[int64]uuid.UUID),
		pending:  make(map[int64]pending[E]),
	}
	s.SetOverlay(e.overlay)
	return e
}

// overlay re-applies unsettled local changes to a freshly loaded collection.
func (e *Engine[E]) overlay(items []E) []E {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return items
	}
	out := make([]E, 0, len(items))
	for _, it := range items {
		if p, ok := e.pending[it.Key()]; ok {
			if p.removed {
				continue
			}
			it = p.value
		}
		out = append(out, it)
	}
	return out
}

// Store returns the store the engine mutates.
func (e *Engine[E]) Store() *store.Store[E] { return e.store }

// InFlight reports whether a mutation of key is pending.
func (e *Engine[E]) InFlight(key int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, busy := e.inflight[key]
	return busy
}

// Update runs m to completion.
func (e *Engine[E]) Update(ctx context.Context, m Mutation[E]) Outcome {
	return e.Begin(ctx, m)()
}

// Begin applies m to the store and returns a function that sends it to the
// server and settles it. The local change is visible as soon as Begin
// returns. The returned function must be called exactly once; the entity
// stays locked until then.
func (e *Engine[E]) Begin(ctx context.Context, m Mutation[E]) func() Outcome {
	out := Outcome{ID: uuid.New(), Key: m.Key}
	log := e.logger.With("mutation", out.ID, "key", m.Key)

	if !e.acquire(m.Key, out.ID) {
		return done(e.reject(ctx, log, out, ErrInFlight))
	}

	snap := e.store.Snapshot(m.Key)
	if !snap.Present {
		e.release(m.Key)
		return done(e.reject(ctx, log, out, fmt.Errorf("item %d: %w", m.Key, common.ErrNotFound)))
	}

	next, err := m.Apply(snap.Value)
	if err != nil {
		e.release(m.Key)
		return done(e.reject(ctx, log, out, err))
	}
	e.hold(m.Key, pending[E]{value: next})
	e.store.Upsert(next)
	log.Debug(ctx, "mutation applied")

	return func() Outcome {
		defer e.release(m.Key)
		return e.settle(ctx, log, out, snap, func() error { return m.Remote(ctx, next) }, m.Refresh)
	}
}

func done(out Outcome) func() Outcome {
	return func() Outcome { return out }
}

// Delete removes key locally, then asks the server to delete it. A refused
// deletion puts the entity back at its former position.
func (e *Engine[E]) Delete(ctx context.Context, key int64, remote func(ctx context.Context, gone E) error) Outcome {
	out := Outcome{ID: uuid.New(), Key: key}
	log := e.logger.With("mutation", out.ID, "key", key, "op", "delete")

	if !e.acquire(key, out.ID) {
		return e.reject(ctx, log, out, ErrInFlight)
	}
	defer e.release(key)

	snap := e.store.Snapshot(key)
	if !snap.Present {
		return e.reject(ctx, log, out, fmt.Errorf("item %d: %w", key, common.ErrNotFound))
	}

	e.hold(key, pending[E]{removed: true})
	e.store.Remove(key)
	log.Debug(ctx, "mutation applied")

	return e.settle(ctx, log, out, snap, func() error { return remote(ctx, snap.Value) }, false)
}

func (e *Engine[E]) settle(ctx context.Context, log logging.Logger, out Outcome, snap store.Snapshot[E], call func() error, refresh bool) Outcome {
	err := call()
	e.forget(snap.ID)
	if err != nil {
		e.store.Restore(snap)
		out.State = RolledBack
		out.Err = err
		log.Warn(ctx, "mutation rolled back", "error", err)
		return out
	}

	out.State = Confirmed
	log.Debug(ctx, "mutation confirmed")

	if refresh {
		if err := e.store.Load(ctx); err != nil {
			out.RefreshErr = err
			log.Warn(ctx, "refresh after mutation failed", "error", err)
		}
	}
	return out
}

func (e *Engine[E]) reject(ctx context.Context, log logging.Logger, out Outcome, err error) Outcome {
	out.State = Rejected
	out.Err = err
	log.Debug(ctx, "mutation rejected", "error", err)
	return out
}

func (e *Engine[E]) acquire(key int64, id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inflight[key]; busy {
		return false
	}
	e.inflight[key] = id
	return true
}

func (e *Engine[E]) release(key int64) {
	e.mu.Lock()
	delete(e.inflight, key)
	delete(e.pending, key)
	e.mu.Unlock()
}

func (e *Engine[E]) hold(key int64, p pending[E]) {
	e.mu.Lock()
	e.pending[key] = p
	e.mu.Unlock()
}

// forget stops protecting key's local value; the next reload may replace it.
func (e *Engine[E]) forget(key int64) {
	e.mu.Lock()
	delete(e.pending, key)
	e.mu.Unlock()
}
