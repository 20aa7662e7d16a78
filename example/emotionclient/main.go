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

	emotion, err := novalink.ConnectEmotion(cfg.Streams.EmotionAddress)
	if err != nil {
		log.Fatal("Failed to create emotion receiver:", err)
	}
	defer emotion.Close()

	emotion.OnConnectionStateChanged(func(connected bool) {
		log.Printf("emotion stream connected=%v", connected)
	})
	emotion.OnEmotionUpdated(func(values map[string]float64) {
		log.Printf("emotion update: %v", values)
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}
