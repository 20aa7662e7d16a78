package transport

import "time"

// QUIC frame modes. QUIC streams carry no frame-type bit, so the transport
// routes every decoded frame to one of the two message handlers.
type FrameMode int

const (
	BinaryFrames FrameMode = iota
	TextFrames
)

// QUICConfig holds QUIC-specific transport configuration
type QUICConfig struct {
	InsecureSkipVerify bool
	NextProtos         []string
	MinVersion         uint16
	FrameMode          FrameMode
}

// Config holds common configuration for all transports
type Config struct {
	// HandshakeTimeout bounds the dial handshake
	HandshakeTimeout time.Duration
	// ReadBufferSize is the connection read buffer size
	ReadBufferSize int
	// WriteBufferSize is the connection write buffer size
	WriteBufferSize int
	// Delimiter frames messages on stream transports (default: "\n\n\n")
	Delimiter []byte
	// ProtocolConfig holds protocol-specific configuration
	ProtocolConfig interface{}
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		Delimiter:        []byte("\n\n\n"),
		ProtocolConfig: &QUICConfig{
			InsecureSkipVerify: true,
			NextProtos:         []string{"novalink"},
			MinVersion:         0x0304, // TLS 1.3
			FrameMode:          BinaryFrames,
		},
	}
}

// ValidateConfig validates transport configuration
func ValidateConfig(config *Config) error {
	if config.HandshakeTimeout < 0 {
		return NewValidationError("HandshakeTimeout", "cannot be negative")
	}
	if config.ReadBufferSize < 1 {
		return NewValidationError("ReadBufferSize", "must be at least 1")
	}
	if config.WriteBufferSize < 1 {
		return NewValidationError("WriteBufferSize", "must be at least 1")
	}
	if len(config.Delimiter) == 0 {
		return NewValidationError("Delimiter", "must not be empty")
	}
	return nil
}
