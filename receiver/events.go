package receiver

import (
	"sync"

	"github.com/google/uuid"
)

// Dispatcher fans one event out to zero or more registered listeners.
// Listeners may subscribe and unsubscribe at any time, including from inside
// a listener during dispatch: notification iterates a snapshot, so mutation
// never crashes the loop or skips an unrelated listener.
type Dispatcher[T any] struct {
	mu        sync.Mutex
	listeners []listenerEntry[T]
}

type listenerEntry[T any] struct {
	token string
	fn    func(T)
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{}
}

// Subscribe registers a listener and returns a stable token for removal
func (d *Dispatcher[T]) Subscribe(fn func(T)) string {
	token := uuid.NewString()
	d.mu.Lock()
	d.listeners = append(d.listeners, listenerEntry[T]{token: token, fn: fn})
	d.mu.Unlock()
	return token
}

// Unsubscribe removes the listener registered under token. Unknown tokens
// are a safe no-op.
func (d *Dispatcher[T]) Unsubscribe(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, entry := range d.listeners {
		if entry.token == token {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners
func (d *Dispatcher[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Notify invokes every listener registered at the time of the call, in
// subscription order.
func (d *Dispatcher[T]) Notify(value T) {
	d.mu.Lock()
	snapshot := make([]listenerEntry[T], len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	for _, entry := range snapshot {
		entry.fn(value)
	}
}
