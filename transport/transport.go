// This package provides the persistent message transports used by the
// NovaLink receivers.
package transport

import "sync"

// Transport is a persistent bidirectional message connection. Connect and
// Close are fire-and-forget: results arrive later through the registered
// handlers, which are always invoked from the transport's single event
// goroutine.
type Transport interface {
	// Connect starts the connection attempt without blocking
	Connect()

	// Close requests a clean shutdown with the given closure code and reason
	Close(code int, reason string)

	// IsConnected reports whether the transport currently holds an open connection
	IsConnected() bool

	// OnConnected registers the handler invoked once the connection opens
	OnConnected(fn func())

	// OnConnectionError registers the handler invoked on dial or network failure
	OnConnectionError(fn func(message string))

	// OnClosed registers the handler invoked when the connection closes
	OnClosed(fn func(code int, reason string, wasClean bool))

	// OnBinaryMessage registers the handler for binary frames
	OnBinaryMessage(fn func(data []byte, bytesRemaining int))

	// OnTextMessage registers the handler for text frames
	OnTextMessage(fn func(text string))

	// ClearHandlers unregisters every handler; nothing fires afterwards
	ClearHandlers()
}

// Factory opens a new, not yet connected Transport for the given address.
type Factory func(addr string, config *Config) (Transport, error)

// handlers holds the registered event callbacks shared by all transport
// implementations. Registration may happen from the host while the event
// goroutine is emitting, so access is guarded.
type handlers struct {
	mu              sync.RWMutex
	connected       func()
	connectionError func(message string)
	closed          func(code int, reason string, wasClean bool)
	binaryMessage   func(data []byte, bytesRemaining int)
	textMessage     func(text string)
}

func (h *handlers) OnConnected(fn func()) {
	h.mu.Lock()
	h.connected = fn
	h.mu.Unlock()
}

func (h *handlers) OnConnectionError(fn func(message string)) {
	h.mu.Lock()
	h.connectionError = fn
	h.mu.Unlock()
}

func (h *handlers) OnClosed(fn func(code int, reason string, wasClean bool)) {
	h.mu.Lock()
	h.closed = fn
	h.mu.Unlock()
}

func (h *handlers) OnBinaryMessage(fn func(data []byte, bytesRemaining int)) {
	h.mu.Lock()
	h.binaryMessage = fn
	h.mu.Unlock()
}

func (h *handlers) OnTextMessage(fn func(text string)) {
	h.mu.Lock()
	h.textMessage = fn
	h.mu.Unlock()
}

func (h *handlers) ClearHandlers() {
	h.mu.Lock()
	h.connected = nil
	h.connectionError = nil
	h.closed = nil
	h.binaryMessage = nil
	h.textMessage = nil
	h.mu.Unlock()
}

func (h *handlers) emitConnected() {
	h.mu.RLock()
	fn := h.connected
	h.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (h *handlers) emitConnectionError(message string) {
	h.mu.RLock()
	fn := h.connectionError
	h.mu.RUnlock()
	if fn != nil {
		fn(message)
	}
}

func (h *handlers) emitClosed(code int, reason string, wasClean bool) {
	h.mu.RLock()
	fn := h.closed
	h.mu.RUnlock()
	if fn != nil {
		fn(code, reason, wasClean)
	}
}

func (h *handlers) emitBinaryMessage(data []byte, bytesRemaining int) {
	h.mu.RLock()
	fn := h.binaryMessage
	h.mu.RUnlock()
	if fn != nil {
		fn(data, bytesRemaining)
	}
}

func (h *handlers) emitTextMessage(text string) {
	h.mu.RLock()
	fn := h.textMessage
	h.mu.RUnlock()
	if fn != nil {
		fn(text)
	}
}
