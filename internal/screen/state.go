// Package screen holds the per-screen state of the client. Each screen
// keeps one state record, replaced by reducers and published to watchers,
// and owns the subscriptions that feed it.
package screen

import (
	"context"
	"errors"
	"sync"
)

// State holds one record of type S. Records are treated as values: a
// reducer returns a new record instead of mutating the one it is given.
type State[S any] struct {
	mu       sync.Mutex
	value    S
	watchers map[int64]chan S
	nextID   int64
}

// NewState returns a State holding initial.
func NewState[S any](initial S) *State[S] {
	return &State[S]{value: initial, watchers: make(map[int64]chan S)}
}

// Get returns the current record.
func (s *State[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Update replaces the record with reduce(current) and publishes it.
func (s *State[S]) Update(reduce func(S) S) S {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = reduce(s.value)
	for _, ch := range s.watchers {
		// keep only the newest record for slow watchers
		select {
		case <-ch:
		default:
		}
		ch <- s.value
	}
	return s.value
}

// Watch returns a channel that receives the current record and then every
// update. Intermediate records may be skipped when the reader lags. The
// channel is closed once ctx is done.
func (s *State[S]) Watch(ctx context.Context) <-chan S {
	ch := make(chan S, 1)

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = ch
	ch <- s.value
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
		close(ch)
	}()
	return ch
}

// scope runs the background work of one screen.
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newScope(parent context.Context) *scope {
	ctx, cancel := context.WithCancel(parent)
	return &scope{ctx: ctx, cancel: cancel}
}

// launch runs fn in the background with a context derived from the scope.
// The returned function cancels that run only.
func (s *scope) launch(fn func(ctx context.Context)) context.CancelFunc {
	ctx, cancel := context.WithCancel(s.ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		fn(ctx)
	}()
	return cancel
}

// close cancels every run and waits for them to return.
func (s *scope) close() {
	s.cancel()
	s.wg.Wait()
}

// message renders err for display. Cancellation is not a failure and
// yields an empty message.
func message(err error) string {
	if err == nil || errors.Is(err, context.Canceled) {
		return ""
	}
	return err.Error()
}
