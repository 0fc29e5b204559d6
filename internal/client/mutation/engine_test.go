package mutation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/itcontroller/internal/client/store"
	"github.com/dmitrijs2005/itcontroller/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	ID     int64
	Status string
	Title  string
}

func (c card) Key() int64 { return c.ID }

func setStatus(s string) func(card) (card, error) {
	return func(c card) (card, error) {
		c.Status = s
		return c, nil
	}
}

func ok(context.Context, card) error { return nil }

func newEngine(t *testing.T, cards ...card) (*Engine[card], *store.Store[card]) {
	t.Helper()
	s := store.New[card](nil)
	s.Replace(cards)
	return New(s, nil), s
}

func TestUpdate_Confirmed(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"})

	var sent card
	out := e.Update(context.Background(), Mutation[card]{
		Key:   1,
		Apply: setStatus("Completada"),
		Remote: func(ctx context.Context, next card) error {
			sent = next
			return nil
		},
	})

	require.True(t, out.OK())
	assert.Equal(t, Confirmed, out.State)
	assert.NoError(t, out.Err)
	assert.Equal(t, "Completada", sent.Status)

	got, _ := s.Get(1)
	assert.Equal(t, "Completada", got.Status)
	assert.False(t, e.InFlight(1))
}

func TestUpdate_LocalChangeVisibleBeforeServerAnswers(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"})

	var seen card
	e.Update(context.Background(), Mutation[card]{
		Key:   1,
		Apply: setStatus("EnProceso"),
		Remote: func(ctx context.Context, next card) error {
			seen, _ = s.Get(1)
			return nil
		},
	})

	assert.Equal(t, "EnProceso", seen.Status)
}

func TestBegin_AppliesBeforeFinish(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"})

	var calls int
	finish := e.Begin(context.Background(), Mutation[card]{
		Key:   1,
		Apply: setStatus("EnProceso"),
		Remote: func(context.Context, card) error {
			calls++
			return errors.New("refused")
		},
	})

	got, _ := s.Get(1)
	assert.Equal(t, "EnProceso", got.Status)
	assert.True(t, e.InFlight(1))
	assert.Zero(t, calls, "nothing sent before finish")

	out := finish()
	assert.Equal(t, RolledBack, out.State)
	assert.Equal(t, 1, calls)
	assert.False(t, e.InFlight(1))

	got, _ = s.Get(1)
	assert.Equal(t, "Pendiente", got.Status)
}

func TestBegin_RejectionReleasesLock(t *testing.T) {
	e, _ := newEngine(t, card{1, "Pendiente", "a"})

	out := e.Begin(context.Background(), Mutation[card]{
		Key:    1,
		Apply:  func(c card) (card, error) { return c, errors.New("bad") },
		Remote: ok,
	})()

	assert.Equal(t, Rejected, out.State)
	assert.False(t, e.InFlight(1))
}

func TestUpdate_RollsBackOnRemoteError(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"}, card{2, "Pendiente", "b"})
	boom := errors.New("500")

	out := e.Update(context.Background(), Mutation[card]{
		Key:    1,
		Apply:  setStatus("Completada"),
		Remote: func(context.Context, card) error { return boom },
	})

	assert.Equal(t, RolledBack, out.State)
	assert.ErrorIs(t, out.Err, boom)
	assert.Equal(t, []card{{1, "Pendiente", "a"}, {2, "Pendiente", "b"}}, s.All())
}

func TestUpdate_RollbackRestoresWholeEntity(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"})

	e.Update(context.Background(), Mutation[card]{
		Key: 1,
		Apply: func(c card) (card, error) {
			c.Status = "Completada"
			c.Title = "edited"
			return c, nil
		},
		Remote: func(context.Context, card) error { return errors.New("no") },
	})

	got, _ := s.Get(1)
	assert.Equal(t, card{1, "Pendiente", "a"}, got)
}

func TestUpdate_RejectedWhenApplyFails(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"})
	called := false

	out := e.Update(context.Background(), Mutation[card]{
		Key:   1,
		Apply: func(card) (card, error) { return card{}, errors.New("invalid") },
		Remote: func(context.Context, card) error {
			called = true
			return nil
		},
	})

	assert.Equal(t, Rejected, out.State)
	assert.False(t, called)
	got, _ := s.Get(1)
	assert.Equal(t, "Pendiente", got.Status)
}

func TestUpdate_UnknownEntity(t *testing.T) {
	e, _ := newEngine(t)

	out := e.Update(context.Background(), Mutation[card]{Key: 7, Apply: setStatus("x"), Remote: ok})

	assert.Equal(t, Rejected, out.State)
	assert.ErrorIs(t, out.Err, common.ErrNotFound)
}

func TestUpdate_SameEntityWhileInFlightIsRejected(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"})

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan Outcome)

	go func() {
		done <- e.Update(context.Background(), Mutation[card]{
			Key:   1,
			Apply: setStatus("EnProceso"),
			Remote: func(context.Context, card) error {
				close(entered)
				<-release
				return errors.New("refused")
			},
		})
	}()
	<-entered

	second := e.Update(context.Background(), Mutation[card]{Key: 1, Apply: setStatus("Completada"), Remote: ok})
	assert.Equal(t, Rejected, second.State)
	assert.ErrorIs(t, second.Err, ErrInFlight)
	assert.True(t, e.InFlight(1))

	close(release)
	first := <-done
	assert.Equal(t, RolledBack, first.State)

	got, _ := s.Get(1)
	assert.Equal(t, "Pendiente", got.Status)
}

func TestUpdate_DifferentEntitiesAreIndependent(t *testing.T) {
	e, s := newEngine(t, card{1, "Pendiente", "a"}, card{2, "Pendiente", "b"})

	firstIn := make(chan struct{})
	secondDone := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	var outA, outB Outcome
	go func() {
		defer wg.Done()
		outA = e.Update(context.Background(), Mutation[card]{
			Key:   1,
			Apply: setStatus("Completada"),
			Remote: func(context.Context, card) error {
				close(firstIn)
				<-secondDone
				return errors.New("refused")
			},
		})
	}()
	go func() {
		defer wg.Done()
		<-firstIn
		outB = e.Update(context.Background(), Mutation[card]{Key: 2, Apply: setStatus("EnProceso"), Remote: ok})
		close(secondDone)
	}()
	wg.Wait()

	assert.Equal(t, RolledBack, outA.State)
	assert.Equal(t, Confirmed, outB.State)

	a, _ := s.Get(1)
	b, _ := s.Get(2)
	assert.Equal(t, "Pendiente", a.Status, "A rolled back")
	assert.Equal(t, "EnProceso", b.Status, "B kept despite A's rollback")
}

func TestUpdate_RefreshAfterConfirm(t *testing.T) {
	loads := 0
	s := store.New[card](func(ctx context.Context) ([]card, error) {
		loads++
		return []card{{1, "Completada", "from server"}}, nil
	})
	s.Replace([]card{{1, "Pendiente", "a"}})
	e := New(s, nil)

	out := e.Update(context.Background(), Mutation[card]{Key: 1, Apply: setStatus("Completada"), Remote: ok, Refresh: true})

	require.True(t, out.OK())
	assert.Equal(t, 1, loads)
	got, _ := s.Get(1)
	assert.Equal(t, "from server", got.Title)
}

func TestUpdate_FailedRefreshDoesNotRollBack(t *testing.T) {
	s := store.New[card](func(ctx context.Context) ([]card, error) { return nil, errors.New("offline") })
	s.Replace([]card{{1, "Pendiente", "a"}})
	e := New(s, nil)

	out := e.Update(context.Background(), Mutation[card]{Key: 1, Apply: setStatus("Completada"), Remote: ok, Refresh: true})

	assert.Equal(t, Confirmed, out.State)
	assert.Error(t, out.RefreshErr)
	got, _ := s.Get(1)
	assert.Equal(t, "Completada", got.Status)
}

func TestUpdate_NoRefreshByDefault(t *testing.T) {
	loads := 0
	s := store.New[card](func(ctx context.Context) ([]card, error) { loads++; return nil, nil })
	s.Replace([]card{{1, "Pendiente", "a"}})

	New(s, nil).Update(context.Background(), Mutation[card]{Key: 1, Apply: setStatus("EnProceso"), Remote: ok})

	assert.Zero(t, loads)
}

func TestBegin_ReloadKeepsPendingValue(t *testing.T) {
	server := card{1, "Pendiente", "a"}
	s := store.New[card](func(ctx context.Context) ([]card, error) {
		return []card{server}, nil
	})
	s.Replace([]card{server})
	e := New(s, nil)

	finish := e.Begin(context.Background(), Mutation[card]{
		Key:   1,
		Apply: setStatus("Completada"),
		Remote: func(ctx context.Context, next card) error {
			server = next
			return nil
		},
	})

	require.NoError(t, s.Load(context.Background()))
	got, _ := s.Get(1)
	assert.Equal(t, "Completada", got.Status, "reload during the call")

	out := finish()
	require.Equal(t, Confirmed, out.State)
	got, _ = s.Get(1)
	assert.Equal(t, "Completada", got.Status)
	assert.Equal(t, "Completada", server.Status)
}

func TestBegin_ReloadThenRollback(t *testing.T) {
	s := store.New[card](func(ctx context.Context) ([]card, error) {
		return []card{{1, "Pendiente", "a"}}, nil
	})
	s.Replace([]card{{1, "Pendiente", "a"}})
	e := New(s, nil)

	finish := e.Begin(context.Background(), Mutation[card]{
		Key:    1,
		Apply:  setStatus("Completada"),
		Remote: func(context.Context, card) error { return errors.New("refused") },
	})
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, RolledBack, finish().State)
	got, _ := s.Get(1)
	assert.Equal(t, "Pendiente", got.Status)

	require.NoError(t, s.Load(context.Background()))
	got, _ = s.Get(1)
	assert.Equal(t, "Pendiente", got.Status, "nothing left pending")
}

func TestUpdate_RefreshKeepsOtherPendingEntity(t *testing.T) {
	s := store.New[card](func(ctx context.Context) ([]card, error) {
		return []card{{1, "Completada", "from server"}, {2, "Pendiente", "b"}}, nil
	})
	s.Replace([]card{{1, "Pendiente", "a"}, {2, "Pendiente", "b"}})
	e := New(s, nil)

	finishB := e.Begin(context.Background(), Mutation[card]{Key: 2, Apply: setStatus("EnProceso"), Remote: ok})

	out := e.Update(context.Background(), Mutation[card]{Key: 1, Apply: setStatus("Completada"), Remote: ok, Refresh: true})
	require.True(t, out.OK())

	a, _ := s.Get(1)
	b, _ := s.Get(2)
	assert.Equal(t, "from server", a.Title)
	assert.Equal(t, "EnProceso", b.Status, "B still in flight")

	assert.True(t, finishB().OK())
}

func TestDelete_ReloadDuringCallKeepsRemoval(t *testing.T) {
	s := store.New[card](func(ctx context.Context) ([]card, error) {
		return []card{{1, "a", "a"}, {2, "b", "b"}}, nil
	})
	s.Replace([]card{{1, "a", "a"}, {2, "b", "b"}})
	e := New(s, nil)

	out := e.Delete(context.Background(), 1, func(ctx context.Context, _ card) error {
		return s.Load(ctx)
	})

	require.True(t, out.OK())
	assert.Equal(t, []card{{2, "b", "b"}}, s.All())
}

func TestDelete_Confirmed(t *testing.T) {
	e, s := newEngine(t, card{1, "a", "a"}, card{2, "b", "b"})

	var gone card
	out := e.Delete(context.Background(), 1, func(ctx context.Context, c card) error {
		gone = c
		return nil
	})

	assert.True(t, out.OK())
	assert.Equal(t, int64(1), gone.ID)
	assert.Equal(t, []card{{2, "b", "b"}}, s.All())
}

func TestDelete_RollbackRestoresPosition(t *testing.T) {
	e, s := newEngine(t, card{1, "a", "a"}, card{2, "b", "b"}, card{3, "c", "c"})

	out := e.Delete(context.Background(), 2, func(context.Context, card) error { return errors.New("403") })

	assert.Equal(t, RolledBack, out.State)
	assert.Equal(t, []card{{1, "a", "a"}, {2, "b", "b"}, {3, "c", "c"}}, s.All())
}

func TestDelete_Unknown(t *testing.T) {
	e, _ := newEngine(t)
	out := e.Delete(context.Background(), 1, ok)
	assert.ErrorIs(t, out.Err, common.ErrNotFound)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "applied", Applied.String())
	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "rolled back", RolledBack.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "State(9)", State(9).String())
}
