package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket implements Transport over a gorilla websocket connection. It is
// the default transport for the NovaLink receivers: binary frames feed the
// audio path, text frames feed the emotion path.
type WebSocket struct {
	handlers
	addr   string
	dialer websocket.Dialer
	config *Config

	mu         sync.Mutex
	conn       *websocket.Conn
	connected  bool
	aborted    bool
	closeSent  bool
	closeCode  int
	closeText  string
	writeGuard sync.Mutex // serialises control frame writes against the read loop exit
}

// NewWebSocket creates a websocket transport for the given address
func NewWebSocket(addr string, config *Config) (Transport, error) {
	if addr == "" {
		return nil, NewConfigError("address is required", nil)
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateConfig(config); err != nil {
		return nil, NewConfigError("invalid configuration", err)
	}

	return &WebSocket{
		addr:   addr,
		config: config,
		dialer: websocket.Dialer{
			HandshakeTimeout: config.HandshakeTimeout,
			ReadBufferSize:   config.ReadBufferSize,
			WriteBufferSize:  config.WriteBufferSize,
		},
	}, nil
}

// Connect starts the dial attempt. The outcome arrives on the connected or
// connection-error handler; the call itself never blocks.
func (t *WebSocket) Connect() {
	go t.run()
}

// run dials and then pumps every event from a single goroutine, which keeps
// the handler invocations serialised.
func (t *WebSocket) run() {
	conn, _, err := t.dialer.Dial(t.addr, nil)
	if err != nil {
		t.mu.Lock()
		aborted := t.aborted
		t.mu.Unlock()
		if !aborted {
			t.emitConnectionError(NewConnectionError("dial failed", err).Error())
		}
		return
	}

	t.mu.Lock()
	if t.aborted {
		// Close raced the dial; discard the connection it produced.
		t.mu.Unlock()
		conn.Close()
		return
	}
	t.conn = conn
	t.connected = true
	t.mu.Unlock()

	t.emitConnected()
	t.readLoop(conn)
}

func (t *WebSocket) readLoop(conn *websocket.Conn) {
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			t.finish(conn, err)
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			// Gorilla delivers whole messages, so there are never bytes
			// remaining past this frame.
			t.emitBinaryMessage(data, 0)
		case websocket.TextMessage:
			t.emitTextMessage(string(data))
		}
	}
}

// finish tears down the connection and reports how it ended: a locally
// requested close or a received close frame becomes a closed event, anything
// else a connection error.
func (t *WebSocket) finish(conn *websocket.Conn, err error) {
	t.mu.Lock()
	t.connected = false
	t.conn = nil
	closeSent := t.closeSent
	closeCode := t.closeCode
	closeText := t.closeText
	t.mu.Unlock()

	conn.Close()

	if closeSent {
		t.emitClosed(closeCode, closeText, true)
		return
	}

	if ce, ok := err.(*websocket.CloseError); ok {
		wasClean := ce.Code == websocket.CloseNormalClosure || ce.Code == websocket.CloseGoingAway
		t.emitClosed(ce.Code, ce.Text, wasClean)
		return
	}

	t.emitConnectionError(err.Error())
}

// Close requests a clean shutdown. The closed handler fires once the read
// loop observes the connection going away. Called while the dial is still in
// flight, it marks the transport aborted and run discards the dial's result.
func (t *WebSocket) Close(code int, reason string) {
	t.mu.Lock()
	conn := t.conn
	if conn == nil {
		t.aborted = true
		t.mu.Unlock()
		return
	}
	t.closeSent = true
	t.closeCode = code
	t.closeText = reason
	t.mu.Unlock()

	t.writeGuard.Lock()
	err := conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second),
	)
	t.writeGuard.Unlock()
	if err != nil {
		// The peer will never echo the close frame, unblock the read loop.
		conn.Close()
	}
}

// IsConnected reports whether the connection is currently open
func (t *WebSocket) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}
