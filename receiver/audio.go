package receiver

import (
	"github.com/novalink/novalink-go/transport"
)

// AudioReceiver receives raw audio frames from a NovaLink stream and forwards
// each one verbatim to the registered chunk listeners.
type AudioReceiver struct {
	*session
	chunks *Dispatcher[[]byte]
}

// NewAudioReceiver creates an audio receiver with the given configuration.
// A nil config uses the defaults with the standard audio endpoint.
func NewAudioReceiver(config *Config) (*AudioReceiver, error) {
	if config == nil {
		config = DefaultConfig()
		config.Address = DefaultAudioAddress
	}
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	r := &AudioReceiver{
		chunks: NewDispatcher[[]byte](),
	}
	r.session = newSession("audio receiver", config, r.bindMessage)
	return r, nil
}

// OnChunkReceived registers a listener for incoming audio chunks and returns
// a token for removal
func (r *AudioReceiver) OnChunkReceived(fn func(chunk []byte)) string {
	return r.chunks.Subscribe(fn)
}

// OffChunkReceived removes a previously registered chunk listener
func (r *AudioReceiver) OffChunkReceived(token string) {
	r.chunks.Unsubscribe(token)
}

func (r *AudioReceiver) bindMessage(t transport.Transport) {
	t.OnBinaryMessage(func(data []byte, bytesRemaining int) {
		if !r.owns(t) {
			return
		}
		r.handleBinaryMessage(data, bytesRemaining)
	})
}

// handleBinaryMessage forwards one frame as one chunk. bytesRemaining is
// accepted but not used: fragments of a larger message are delivered as
// independent chunks, not reassembled.
func (r *AudioReceiver) handleBinaryMessage(data []byte, bytesRemaining int) {
	if len(data) == 0 {
		return
	}

	// The transport's buffer does not outlive the callback.
	chunk := make([]byte, len(data))
	copy(chunk, data)

	r.chunks.Notify(chunk)
}
