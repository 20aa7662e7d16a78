package novalink

import (
	"testing"
	"time"

	"github.com/novalink/novalink-go/receiver"
	"github.com/novalink/novalink-go/transport"
)

func TestReceiverConfigOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := NewReceiverConfig(receiver.DefaultAudioAddress)
		if config.Address != receiver.DefaultAudioAddress {
			t.Fatalf("address = %q", config.Address)
		}
		if config.Dial == nil {
			t.Fatal("expected default dial factory")
		}
		if config.Transport.HandshakeTimeout != 10*time.Second {
			t.Fatalf("handshake timeout = %v", config.Transport.HandshakeTimeout)
		}
	})

	t.Run("options apply in order", func(t *testing.T) {
		config := NewReceiverConfig(receiver.DefaultEmotionAddress,
			WithAddress("ws://elsewhere/ws/emotion"),
			WithHandshakeTimeout(time.Second),
			WithWebSocketBufferSizes(2048, 4096),
			WithDelimiter([]byte("||")),
			WithQUICNextProtos([]string{"custom"}),
			WithQUICFrameMode(transport.TextFrames),
		)

		if config.Address != "ws://elsewhere/ws/emotion" {
			t.Fatalf("address = %q", config.Address)
		}
		if config.Transport.HandshakeTimeout != time.Second {
			t.Fatalf("handshake timeout = %v", config.Transport.HandshakeTimeout)
		}
		if config.Transport.ReadBufferSize != 2048 || config.Transport.WriteBufferSize != 4096 {
			t.Fatalf("buffer sizes = %d/%d", config.Transport.ReadBufferSize, config.Transport.WriteBufferSize)
		}
		if string(config.Transport.Delimiter) != "||" {
			t.Fatalf("delimiter = %q", config.Transport.Delimiter)
		}

		quicConfig := config.Transport.ProtocolConfig.(*transport.QUICConfig)
		if len(quicConfig.NextProtos) != 1 || quicConfig.NextProtos[0] != "custom" {
			t.Fatalf("next protos = %v", quicConfig.NextProtos)
		}
		if quicConfig.FrameMode != transport.TextFrames {
			t.Fatalf("frame mode = %v", quicConfig.FrameMode)
		}
	})
}

func TestFacadeConstructors(t *testing.T) {
	t.Run("audio defaults to the audio endpoint", func(t *testing.T) {
		r, err := NewAudioReceiver()
		if err != nil {
			t.Fatal(err)
		}
		if r.Address() != receiver.DefaultAudioAddress {
			t.Fatalf("address = %q", r.Address())
		}
		if r.IsConnected() {
			t.Fatal("expected new receiver to be disconnected")
		}
	})

	t.Run("emotion defaults to the emotion endpoint", func(t *testing.T) {
		r, err := NewEmotionReceiver()
		if err != nil {
			t.Fatal(err)
		}
		if r.Address() != receiver.DefaultEmotionAddress {
			t.Fatalf("address = %q", r.Address())
		}
	})

	t.Run("with address override", func(t *testing.T) {
		r, err := NewEmotionReceiver(WithAddress("ws://other:9000/ws/emotion"))
		if err != nil {
			t.Fatal(err)
		}
		if r.Address() != "ws://other:9000/ws/emotion" {
			t.Fatalf("address = %q", r.Address())
		}
	})
}
