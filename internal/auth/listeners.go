package auth

import (
	"sort"
	"sync"

	"github.com/PaulBabatuyi/chatsync/internal/remote"
)

// StateListener is called with the current session, nil when signed out.
type StateListener func(*Session)

// listenerSet keeps auth-state listeners keyed by registration id.
type listenerSet struct {
	mu        sync.RWMutex
	listeners map[int64]StateListener
	nextID    int64
}

func newListenerSet() *listenerSet {
	return &listenerSet{listeners: make(map[int64]StateListener)}
}

// add registers fn and returns its registration.
func (l *listenerSet) add(fn StateListener) remote.Registration {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.listeners[id] = fn
	l.mu.Unlock()

	return remote.RegistrationFunc(func() { l.remove(id) })
}

func (l *listenerSet) remove(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.listeners, id)
}

func (l *listenerSet) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.listeners)
}

// notify calls every listener in registration order. Listeners run outside
// the lock so they may register or remove listeners themselves.
func (l *listenerSet) notify(s *Session) {
	l.mu.RLock()
	ids := make([]int64, 0, len(l.listeners))
	for id := range l.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]StateListener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.listeners[id])
	}
	l.mu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}
