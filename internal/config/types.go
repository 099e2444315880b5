package config

import "fmt"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .mirqab.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	History HistoryConfig `yaml:"history" mapstructure:"history"`
	Ollama  OllamaConfig  `yaml:"ollama" mapstructure:"ollama"`
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig controls the monitor HTTP server.
type ServerConfig struct {
	// Host is the interface the server binds to.
	Host string `yaml:"host" mapstructure:"host"`

	// Port is the TCP port the server listens on.
	Port int `yaml:"port" mapstructure:"port"`

	// QueueSize is the per-viewer event queue capacity. When a viewer
	// falls behind by more than this many events, older events are
	// dropped for that viewer.
	QueueSize int `yaml:"queue_size" mapstructure:"queue_size"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// HistoryConfig controls how much session history is retained in memory.
type HistoryConfig struct {
	// Limit is the maximum number of log entries and metric samples kept
	// per series. Older entries are evicted oldest-first.
	Limit int `yaml:"limit" mapstructure:"limit"`
}

// OllamaConfig controls the connection to the local Ollama daemon.
type OllamaConfig struct {
	// URL is the base URL of the Ollama API.
	// The OLLAMA_HOST environment variable overrides it when set.
	URL string `yaml:"url" mapstructure:"url"`
}

// DatasetConfig controls training-data generation.
type DatasetConfig struct {
	// ChunkSize is the maximum characters per text chunk when splitting
	// documents into training examples.
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`

	// Dir is where generated dataset files are written.
	// Supports ~ and ${HOME}/${USER} expansion.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Debug enables debug-level logging (same effect as MIRQAB_DEBUG=1).
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      5005,
			QueueSize: 16,
		},
		History: HistoryConfig{
			Limit: 100,
		},
		Ollama: OllamaConfig{
			URL: "http://localhost:11434",
		},
		Dataset: DatasetConfig{
			ChunkSize: 500,
			Dir:       ".",
		},
		Logging: LoggingConfig{
			Debug: false,
		},
	}
}
