package novalink

import (
	"time"

	"github.com/novalink/novalink-go/receiver"
	"github.com/novalink/novalink-go/transport"
)

// Common receiver options that apply to both variants
type ReceiverOptFunc func(config *receiver.Config)

// WithAddress sets the default stream address
func WithAddress(addr string) ReceiverOptFunc {
	return func(config *receiver.Config) {
		config.Address = addr
	}
}

// WithLogger sets the logger implementation
func WithLogger(logger receiver.Logger) ReceiverOptFunc {
	return func(config *receiver.Config) {
		config.Logger = logger
	}
}

// WithTransportFactory sets the factory used to open transports. The default
// opens gorilla websocket connections; transport.NewQUIC selects QUIC.
func WithTransportFactory(dial transport.Factory) ReceiverOptFunc {
	return func(config *receiver.Config) {
		config.Dial = dial
	}
}

// WithHandshakeTimeout bounds the transport dial handshake
func WithHandshakeTimeout(timeout time.Duration) ReceiverOptFunc {
	return func(config *receiver.Config) {
		config.Transport.HandshakeTimeout = timeout
	}
}

// WithWebSocketBufferSizes sets the websocket read and write buffer sizes
func WithWebSocketBufferSizes(read, write int) ReceiverOptFunc {
	return func(config *receiver.Config) {
		config.Transport.ReadBufferSize = read
		config.Transport.WriteBufferSize = write
	}
}

// WithDelimiter sets the message delimiter for stream-framed transports
func WithDelimiter(delimiter []byte) ReceiverOptFunc {
	return func(config *receiver.Config) {
		config.Transport.Delimiter = delimiter
	}
}

// QUIC specific options

func WithQUICInsecureSkipVerify(skip bool) ReceiverOptFunc {
	return func(config *receiver.Config) {
		if quicConfig, ok := config.Transport.ProtocolConfig.(*transport.QUICConfig); ok {
			quicConfig.InsecureSkipVerify = skip
		}
	}
}

func WithQUICNextProtos(protos []string) ReceiverOptFunc {
	return func(config *receiver.Config) {
		if quicConfig, ok := config.Transport.ProtocolConfig.(*transport.QUICConfig); ok {
			quicConfig.NextProtos = protos
		}
	}
}

func WithQUICMinVersion(version uint16) ReceiverOptFunc {
	return func(config *receiver.Config) {
		if quicConfig, ok := config.Transport.ProtocolConfig.(*transport.QUICConfig); ok {
			quicConfig.MinVersion = version
		}
	}
}

// WithQUICFrameMode routes QUIC frames to the binary or text message handler
func WithQUICFrameMode(mode transport.FrameMode) ReceiverOptFunc {
	return func(config *receiver.Config) {
		if quicConfig, ok := config.Transport.ProtocolConfig.(*transport.QUICConfig); ok {
			quicConfig.FrameMode = mode
		}
	}
}

// Helper function to create a new receiver config with options
func NewReceiverConfig(defaultAddr string, opts ...ReceiverOptFunc) *receiver.Config {
	config := receiver.DefaultConfig()
	config.Address = defaultAddr
	for _, opt := range opts {
		opt(config)
	}
	return config
}
