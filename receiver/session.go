package receiver

import (
	"sync"

	"github.com/novalink/novalink-go/transport"
)

// closeCodeNormal is the websocket normal-closure code sent on explicit stop.
const closeCodeNormal = 1000

// session owns at most one transport connection and the cached connection
// state. Both receiver variants share it; the concrete receiver supplies the
// message handler binding.
//
// The transport invokes all callbacks from its single event goroutine.
// StartConnection and StopConnection are meant to be called from one host
// goroutine per receiver; they are guarded so a late callback from a torn
// down transport can never touch fresh state.
type session struct {
	name        string
	closeReason string
	config      *Config
	bindMessage func(t transport.Transport)

	mu        sync.Mutex
	transport transport.Transport
	connected bool

	stateChanged *Dispatcher[bool]
}

func newSession(name string, config *Config, bind func(t transport.Transport)) *session {
	return &session{
		name:         name,
		closeReason:  name + " stop",
		config:       config,
		bindMessage:  bind,
		stateChanged: NewDispatcher[bool](),
	}
}

// StartConnection opens a new transport to the override address, or to the
// configured default when the override is empty. Any previous transport is
// torn down first. The call never blocks on the connection completing and
// never returns an error: failures surface through the log and the
// connection-state event.
func (s *session) StartConnection(overrideAddress string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr := overrideAddress
	if addr == "" {
		addr = s.config.Address
	}
	if addr == "" {
		s.config.Logger.Warn("%s requires a stream address", s.name)
		return
	}

	s.stopLocked()

	t, err := s.config.Dial(addr, s.config.Transport)
	if err != nil {
		s.config.Logger.Error("%s failed to open transport to %s: %v", s.name, addr, err)
		return
	}

	t.OnConnected(func() { s.handleConnected(t) })
	t.OnConnectionError(func(message string) { s.handleConnectionError(t, message) })
	t.OnClosed(func(code int, reason string, wasClean bool) { s.handleClosed(t, code, reason, wasClean) })
	s.bindMessage(t)

	s.transport = t
	t.Connect()
}

// StopConnection tears down the active transport, if any. Handlers are
// cleared before the close request so nothing fires after the call returns.
// Safe to call on an already stopped session.
func (s *session) StopConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// stopLocked closes the transport unconditionally: on an open connection
// Close runs the clean shutdown, on a still pending dial it aborts the
// attempt so the eventual connection is discarded instead of leaking.
func (s *session) stopLocked() {
	if s.transport != nil {
		s.transport.ClearHandlers()
		s.transport.Close(closeCodeNormal, s.closeReason)
		s.transport = nil
	}
	s.connected = false
}

// Close stops any active connection. It is the teardown path for hosts that
// own the receiver.
func (s *session) Close() {
	s.StopConnection()
}

// IsConnected reports the cached connection state. The flag is authoritative
// and only updated by the transport callbacks; the transport itself is never
// queried here.
func (s *session) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Address returns the configured default stream address
func (s *session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Address
}

// SetAddress changes the default stream address used by the next
// StartConnection call
func (s *session) SetAddress(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Address = addr
}

// OnConnectionStateChanged registers a listener for connect/disconnect
// transitions and returns a token for removal
func (s *session) OnConnectionStateChanged(fn func(connected bool)) string {
	return s.stateChanged.Subscribe(fn)
}

// OffConnectionStateChanged removes a previously registered listener
func (s *session) OffConnectionStateChanged(token string) {
	s.stateChanged.Unsubscribe(token)
}

// owns reports whether t is still the session's current transport. Handlers
// registered on a replaced transport use this to drop stale events.
func (s *session) owns(t transport.Transport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport == t
}

func (s *session) handleConnected(t transport.Transport) {
	s.mu.Lock()
	if s.transport != t {
		s.mu.Unlock()
		return
	}
	s.connected = true
	s.mu.Unlock()

	s.stateChanged.Notify(true)
}

func (s *session) handleConnectionError(t transport.Transport, message string) {
	s.mu.Lock()
	if s.transport != t {
		s.mu.Unlock()
		return
	}
	s.config.Logger.Error("%s connection error: %s", s.name, message)
	s.connected = false
	s.transport = nil
	s.mu.Unlock()

	s.stateChanged.Notify(false)
}

// handleClosed treats every closure the same way as a connection error: the
// code, reason and clean flag are recorded in the log but never branch the
// state machine. Reconnecting is entirely the caller's job.
func (s *session) handleClosed(t transport.Transport, code int, reason string, wasClean bool) {
	s.mu.Lock()
	if s.transport != t {
		s.mu.Unlock()
		return
	}
	s.config.Logger.Debug("%s closed: code=%d reason=%q clean=%v", s.name, code, reason, wasClean)
	s.connected = false
	s.transport = nil
	s.mu.Unlock()

	s.stateChanged.Notify(false)
}
