// Package remote is the gateway to the backend document database: live
// listeners plus one-shot request/response calls.
package remote

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned (wrapped) when a single-document call finds nothing.
var ErrNotFound = errors.New("document not found")

// Listener receives change notifications for a live query. Callbacks may
// run on a backend goroutine and must not block.
type Listener struct {
	// OnChange fires once after registration and after every change to a
	// matching document.
	OnChange func()
	// OnError fires at most once; the listener is dead afterwards.
	OnError func(error)
}

// Registration is a live listener registration.
type Registration interface {
	// Remove deregisters the listener. It is idempotent and does not wait
	// for callbacks in flight.
	Remove()
}

// RegistrationFunc adapts a function to Registration; the function runs once.
func RegistrationFunc(remove func()) Registration {
	return &onceRegistration{remove: remove}
}

type onceRegistration struct {
	once   sync.Once
	remove func()
}

func (r *onceRegistration) Remove() { r.once.Do(r.remove) }

// Documents is the document-collection API of the backend.
type Documents interface {
	// Listen registers one backend listener for q.
	Listen(ctx context.Context, q Query, l Listener) (Registration, error)
	// Find decodes every document matching q into out, a pointer to a slice.
	Find(ctx context.Context, q Query, out any) error
	// Get decodes one document into out.
	Get(ctx context.Context, collection, id string, out any) error
	// Add inserts doc under a generated id and returns that id.
	Add(ctx context.Context, collection string, doc any) (string, error)
	// Set creates or replaces the document with the given id.
	Set(ctx context.Context, collection, id string, doc any) error
	// Update sets the given fields of an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes a document.
	Delete(ctx context.Context, collection, id string) error
}
