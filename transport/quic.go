package transport

import (
	"bytes"
	"crypto/tls"
	"errors"
	"io"
	"sync"

	"github.com/quic-go/quic-go"
	"golang.org/x/net/context"
)

// QUIC implements Transport over a single server-initiated QUIC stream.
// Messages are framed with the configured delimiter and routed to the binary
// or text handler according to the configured FrameMode. The connected event
// fires once the QUIC handshake completes; the stream arrives with the first
// pushed frame.
type QUIC struct {
	handlers
	addr   string
	config *Config
	qconf  *QUICConfig

	mu        sync.Mutex
	conn      quic.Connection
	stream    quic.Stream
	connected bool
	aborted   bool
	closeSent bool
	closeCode int
	closeText string
}

// NewQUIC creates a QUIC transport for the given address
func NewQUIC(addr string, config *Config) (Transport, error) {
	if addr == "" {
		return nil, NewConfigError("address is required", nil)
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateConfig(config); err != nil {
		return nil, NewConfigError("invalid configuration", err)
	}

	qconf, ok := config.ProtocolConfig.(*QUICConfig)
	if !ok {
		qconf = DefaultConfig().ProtocolConfig.(*QUICConfig)
	}

	return &QUIC{
		addr:   addr,
		config: config,
		qconf:  qconf,
	}, nil
}

// Connect starts the dial attempt without blocking
func (t *QUIC) Connect() {
	go t.run()
}

func (t *QUIC) run() {
	tlsConf := &tls.Config{
		NextProtos:         t.qconf.NextProtos,
		InsecureSkipVerify: t.qconf.InsecureSkipVerify,
		MinVersion:         t.qconf.MinVersion,
	}

	ctx := context.Background()
	if t.config.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.config.HandshakeTimeout)
		defer cancel()
	}

	conn, err := quic.DialAddr(ctx, t.addr, tlsConf, &quic.Config{})
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
		conn.CloseWithError(0, "aborted")
		return
	}
	t.conn = conn
	t.connected = true
	t.mu.Unlock()

	t.emitConnected()

	// The push stream is opened by the server; accepting it blocks until the
	// first frame arrives or the connection goes away.
	stream, err := conn.AcceptStream(context.Background())
	if err != nil {
		t.finish(err)
		return
	}

	t.mu.Lock()
	if t.conn == nil {
		// Closed while waiting for the stream.
		t.mu.Unlock()
		return
	}
	t.stream = stream
	t.mu.Unlock()

	t.readLoop(stream)
}

func (t *QUIC) readLoop(stream quic.Stream) {
	buffer := make([]byte, 0)
	chunk := make([]byte, t.config.ReadBufferSize)

	for {
		n, err := stream.Read(chunk)
		if n > 0 {
			buffer = append(buffer, chunk[:n]...)
			buffer = t.drainFrames(buffer)
		}
		if err != nil {
			t.finish(err)
			return
		}
	}
}

// drainFrames emits every complete delimiter-terminated frame in buffer and
// returns the unconsumed tail.
func (t *QUIC) drainFrames(buffer []byte) []byte {
	for {
		index := bytes.Index(buffer, t.config.Delimiter)
		if index == -1 {
			return buffer
		}

		frame := buffer[:index]
		buffer = buffer[index+len(t.config.Delimiter):]

		if t.qconf.FrameMode == TextFrames {
			t.emitTextMessage(string(frame))
		} else {
			t.emitBinaryMessage(frame, len(buffer))
		}
	}
}

func (t *QUIC) finish(err error) {
	t.mu.Lock()
	t.connected = false
	conn := t.conn
	t.conn = nil
	t.stream = nil
	closeSent := t.closeSent
	closeCode := t.closeCode
	closeText := t.closeText
	t.mu.Unlock()

	if conn != nil {
		conn.CloseWithError(0, "connection finished")
	}

	if closeSent {
		t.emitClosed(closeCode, closeText, true)
		return
	}

	if errors.Is(err, io.EOF) {
		t.emitClosed(1000, "stream closed by peer", true)
		return
	}

	t.emitConnectionError(err.Error())
}

// Close requests a clean shutdown of the stream and connection. Called while
// the dial is still in flight, it marks the transport aborted and run
// discards the dial's result.
func (t *QUIC) Close(code int, reason string) {
	t.mu.Lock()
	stream := t.stream
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

	if stream != nil {
		stream.Close()
	}
	conn.CloseWithError(quic.ApplicationErrorCode(code), reason)
}

// IsConnected reports whether the connection is currently open
func (t *QUIC) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}
