// This package implements the NovaLink stream receivers: a shared connection
// session plus the audio and emotion payload pipelines.
package receiver

import (
	"github.com/novalink/novalink-go/transport"
)

// Default stream endpoints served by the NovaLink agent.
const (
	DefaultAudioAddress   = "ws://localhost:5000/ws/audio"
	DefaultEmotionAddress = "ws://localhost:5000/ws/emotion"
)

// Logger defines the interface for logging operations
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// DefaultLogger provides a basic implementation of the Logger interface
type DefaultLogger struct{}

func (l *DefaultLogger) Debug(msg string, args ...interface{}) {}
func (l *DefaultLogger) Info(msg string, args ...interface{})  {}
func (l *DefaultLogger) Warn(msg string, args ...interface{})  {}
func (l *DefaultLogger) Error(msg string, args ...interface{}) {}

// Config holds common configuration for both receiver variants
type Config struct {
	// Address is the default stream address, used when StartConnection gets
	// no override
	Address string
	// Logger receives diagnostics; failures on the async paths only surface
	// here and through the connection-state event
	Logger Logger
	// Dial opens a fresh transport per connection attempt
	Dial transport.Factory
	// Transport holds the transport-level configuration
	Transport *transport.Config
}

// DefaultConfig returns a Config with default values. The address is filled
// in by the receiver constructors.
func DefaultConfig() *Config {
	return &Config{
		Logger:    &DefaultLogger{},
		Dial:      transport.NewWebSocket,
		Transport: transport.DefaultConfig(),
	}
}

// ValidateConfig validates receiver configuration
func ValidateConfig(config *Config) error {
	if config.Logger == nil {
		return transport.NewValidationError("Logger", "must not be nil")
	}
	if config.Dial == nil {
		return transport.NewValidationError("Dial", "must not be nil")
	}
	return nil
}
