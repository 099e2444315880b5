package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mirqab/mirqab/internal/errors"
)

// Validate checks the config for errors and returns structured error
// messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but mirqab only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest mirqab: https://github.com/mirqab/mirqab/releases")
	}

	if err := validateServer(cfg.Server); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'server' section in your .mirqab.yaml.")
	}

	if err := validateHistory(cfg.History); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'history' section in your .mirqab.yaml.")
	}

	if err := validateOllama(cfg.Ollama); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'ollama' section in your .mirqab.yaml.")
	}

	if err := validateDataset(cfg.Dataset); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'dataset' section in your .mirqab.yaml.")
	}

	return nil
}

// validateServer checks the server listen configuration.
func validateServer(s ServerConfig) error {
	if strings.TrimSpace(s.Host) == "" {
		return fmt.Errorf("server.host can't be empty - use '127.0.0.1' for local only or '0.0.0.0' to listen on all interfaces")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server.port needs to be 1-65535 (got %d)", s.Port)
	}
	if s.QueueSize < 1 {
		return fmt.Errorf("server.queue_size needs to be at least 1 (got %d) - it's the per-viewer event buffer", s.QueueSize)
	}
	return nil
}

// validateHistory checks the history retention configuration.
func validateHistory(h HistoryConfig) error {
	if h.Limit < 1 {
		return fmt.Errorf("history.limit needs to be at least 1 (got %d)", h.Limit)
	}
	return nil
}

// validateOllama checks the Ollama connection configuration.
func validateOllama(o OllamaConfig) error {
	if strings.TrimSpace(o.URL) == "" {
		return fmt.Errorf("ollama.url can't be empty - the default is http://localhost:11434")
	}

	u, err := url.Parse(o.URL)
	if err != nil {
		return fmt.Errorf("ollama.url '%s' isn't a valid URL", o.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("ollama.url '%s' needs an http:// or https:// scheme", o.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("ollama.url '%s' is missing a host", o.URL)
	}

	return nil
}

// validateDataset checks the dataset generation configuration.
func validateDataset(d DatasetConfig) error {
	if d.ChunkSize < 1 {
		return fmt.Errorf("dataset.chunk_size needs to be at least 1 (got %d)", d.ChunkSize)
	}
	if strings.TrimSpace(d.Dir) == "" {
		return fmt.Errorf("dataset.dir can't be empty - use '.' for the current directory")
	}
	return nil
}
