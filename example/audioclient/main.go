package main

import (
	"flag"
	"log"
	"os"
	"os/signal"

	novalink "github.com/novalink/novalink-go"
	"github.com/novalink/novalink-go/config"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load config:", err)
		}
		cfg = loaded
	}

	audio, err := novalink.NewAudioReceiver(
		novalink.WithAddress(cfg.Streams.AudioAddress),
		novalink.WithHandshakeTimeout(cfg.Transport.HandshakeTimeout),
		novalink.WithWebSocketBufferSizes(cfg.Transport.ReadBufferSize, cfg.Transport.WriteBufferSize),
	)
	if err != nil {
		log.Fatal("Failed to create audio receiver:", err)
	}
	defer audio.Close()

	audio.OnConnectionStateChanged(func(connected bool) {
		log.Printf("audio stream connected=%v", connected)
	})
	audio.OnChunkReceived(func(chunk []byte) {
		log.Printf("audio chunk: %d bytes", len(chunk))
	})

	audio.StartConnection("")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}
