// Package live turns push-style backend listeners into cancelable
// sequences of full snapshots.
package live

import (
	"context"

	"github.com/PaulBabatuyi/chatsync/internal/remote"
)

// Source registers one backend listener.
type Source func(ctx context.Context, l remote.Listener) (remote.Registration, error)

// Reader re-reads the full current value after a change notification.
type Reader[T any] func(ctx context.Context) (T, error)

// Subscription is a lazily started bridge from a Source to snapshots of T.
// It holds no state between activations and may be Run any number of times.
type Subscription[T any] struct {
	source Source
	read   Reader[T]
}

// New builds a Subscription from a listener source and a reader.
func New[T any](source Source, read Reader[T]) *Subscription[T] {
	return &Subscription[T]{source: source, read: read}
}

// Query subscribes to the full result set of q.
func Query[T any](docs remote.Documents, q remote.Query) *Subscription[[]T] {
	return New(
		func(ctx context.Context, l remote.Listener) (remote.Registration, error) {
			return docs.Listen(ctx, q, l)
		},
		func(ctx context.Context) ([]T, error) {
			out := []T{}
			if err := docs.Find(ctx, q, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
	)
}

// Run registers one backend listener and calls fn with a full snapshot
// after every change notification, one call at a time. Notifications that
// arrive while a re-read is already pending are folded into it.
//
// Run returns the backend error that terminated the listener, the error
// returned by fn, or ctx.Err() after cancellation. The listener is
// deregistered exactly once before Run returns, and fn is never called
// once ctx is done.
func (s *Subscription[T]) Run(ctx context.Context, fn func(T) error) error {
	changed := make(chan struct{}, 1)
	failed := make(chan error, 1)

	reg, err := s.source(ctx, remote.Listener{
		OnChange: func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		},
		OnError: func(err error) {
			select {
			case failed <- err:
			default:
			}
		},
	})
	if err != nil {
		return err
	}
	defer reg.Remove()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-failed:
			return err
		case <-changed:
		}

		snapshot, err := s.read(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			return err
		}
		if err := fn(snapshot); err != nil {
			return err
		}
	}
}
