package repository

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/auth"
	"github.com/PaulBabatuyi/chatsync/internal/remote"
	"github.com/mama165/sdk-go/logs"
)

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

// observe runs an Observe method in the background and collects its
// emissions on a channel.
func observe[T any](ctx context.Context, run func(ctx context.Context, fn func(T) error) error) (<-chan T, <-chan error) {
	values := make(chan T, 16)
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, func(v T) error {
			values <- v
			return nil
		})
	}()
	return values, done
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

// fakeAuth is an in-memory Authenticator with one fixed account.
type fakeAuth struct {
	mu        sync.Mutex
	session   *auth.Session
	listeners map[int]auth.StateListener
	next      int
	signInErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{listeners: map[int]auth.StateListener{}}
}

func (f *fakeAuth) SignUp(_ context.Context, email, _, displayName string) (*auth.Session, error) {
	return f.start(&auth.Session{UserID: "u-" + displayName, Email: email, DisplayName: displayName, Token: "t"}), nil
}

func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (*auth.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.start(&auth.Session{UserID: "u-" + email, Email: email, DisplayName: email, Token: "t"}), nil
}

func (f *fakeAuth) SignOut() {
	f.mu.Lock()
	f.session = nil
	f.mu.Unlock()
	f.notify()
}

func (f *fakeAuth) UpdateProfile(_ context.Context, displayName, avatarURL string) error {
	f.mu.Lock()
	if f.session == nil {
		f.mu.Unlock()
		return auth.ErrNoSession
	}
	f.session.DisplayName = displayName
	f.session.AvatarURL = avatarURL
	f.mu.Unlock()
	f.notify()
	return nil
}

func (f *fakeAuth) CurrentSession() *auth.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil
	}
	c := *f.session
	return &c
}

func (f *fakeAuth) OnStateChange(fn auth.StateListener) remote.Registration {
	f.mu.Lock()
	id := f.next
	f.next++
	f.listeners[id] = fn
	f.mu.Unlock()

	fn(f.CurrentSession())
	return remote.RegistrationFunc(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	})
}

func (f *fakeAuth) start(s *auth.Session) *auth.Session {
	f.mu.Lock()
	f.session = s
	f.mu.Unlock()
	f.notify()
	return f.CurrentSession()
}

func (f *fakeAuth) notify() {
	f.mu.Lock()
	fns := make([]auth.StateListener, 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	s := f.CurrentSession()
	for _, fn := range fns {
		fn(s)
	}
}
