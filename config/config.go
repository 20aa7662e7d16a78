// This package loads host application configuration for the NovaLink
// receivers from a YAML file.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/novalink/novalink-go/receiver"
)

// Config holds the stream endpoints and transport tuning for one host
// application.
type Config struct {
	Streams   StreamsConfig   `yaml:"streams"`
	Transport TransportConfig `yaml:"transport"`
}

type StreamsConfig struct {
	AudioAddress   string `yaml:"audio_address"`
	EmotionAddress string `yaml:"emotion_address"`
}

type TransportConfig struct {
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	ReadBufferSize   int           `yaml:"read_buffer_size"`
	WriteBufferSize  int           `yaml:"write_buffer_size"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Streams: StreamsConfig{
			AudioAddress:   receiver.DefaultAudioAddress,
			EmotionAddress: receiver.DefaultEmotionAddress,
		},
		Transport: TransportConfig{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
		},
	}
}

// Load reads the YAML file at path over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
