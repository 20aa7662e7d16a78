// This package provides client-side receivers for NovaLink realtime streams:
// an audio receiver forwarding raw chunks and an emotion receiver decoding
// JSON emotion-state messages.
package novalink

import (
	"github.com/novalink/novalink-go/receiver"
)

// NewAudioReceiver creates an audio receiver with the given options. Without
// options it targets the default audio endpoint.
func NewAudioReceiver(opts ...ReceiverOptFunc) (*receiver.AudioReceiver, error) {
	config := NewReceiverConfig(receiver.DefaultAudioAddress, opts...)
	return receiver.NewAudioReceiver(config)
}

// NewEmotionReceiver creates an emotion receiver with the given options.
// Without options it targets the default emotion endpoint.
func NewEmotionReceiver(opts ...ReceiverOptFunc) (*receiver.EmotionReceiver, error) {
	config := NewReceiverConfig(receiver.DefaultEmotionAddress, opts...)
	return receiver.NewEmotionReceiver(config)
}

// ConnectAudio creates an audio receiver and immediately starts connecting to
// addr, or to the configured default when addr is empty.
func ConnectAudio(addr string, opts ...ReceiverOptFunc) (*receiver.AudioReceiver, error) {
	r, err := NewAudioReceiver(opts...)
	if err != nil {
		return nil, err
	}
	r.StartConnection(addr)
	return r, nil
}

// ConnectEmotion creates an emotion receiver and immediately starts
// connecting to addr, or to the configured default when addr is empty.
func ConnectEmotion(addr string, opts ...ReceiverOptFunc) (*receiver.EmotionReceiver, error) {
	r, err := NewEmotionReceiver(opts...)
	if err != nil {
		return nil, err
	}
	r.StartConnection(addr)
	return r, nil
}
