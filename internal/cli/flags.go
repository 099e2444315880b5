package cli

import (
	"fmt"
	"time"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/logger"
	"github.com/mirqab/mirqab/internal/ollama"
)

// loadConfig resolves configuration for a command run: the --config path
// when given, otherwise the nearest .mirqab.yaml, otherwise defaults.
func loadConfig() (*config.Config, error) {
	if cfgFlag != "" {
		path, err := config.Find(cfgFlag)
		if err != nil {
			return nil, err
		}
		return config.Load(path)
	}
	return config.LoadOrDefault()
}

// applyServerFlags lets --host, --port, and --queue-size override the
// config file for this run.
func applyServerFlags(cfg *config.Config) {
	if serveHostFlag != "" {
		cfg.Server.Host = serveHostFlag
	}
	if servePortFlag > 0 {
		cfg.Server.Port = servePortFlag
	}
	if serveQueueFlag > 0 {
		cfg.Server.QueueSize = serveQueueFlag
	}
}

// commandLogger returns the logger commands hand to components. Quiet
// runs get a silent one.
func commandLogger(prefix string) logger.Logger {
	if quietFlag {
		return logger.Noop()
	}
	return logger.NewEnvLogger(prefix)
}

// ollamaClient builds the daemon client, honoring the --ollama-url
// override.
func ollamaClient(cfg *config.Config) *ollama.Client {
	url := cfg.Ollama.URL
	if ollamaURLFlag != "" {
		url = ollamaURLFlag
	}
	return ollama.NewClient(url, commandLogger("[ollama]"))
}

// parseReconnectInterval parses the watch --interval flag. Zero disables
// auto-reconnect; anything below a second would hammer the server.
func parseReconnectInterval(flag string) (time.Duration, error) {
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 5s or 30s, or 0 to disable auto-reconnect.")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrConfig,
			"Reconnect interval cannot be negative",
			"Use 0 to disable auto-reconnect.")
	}
	if d > 0 && d < time.Second {
		return 0, errors.New(errors.ErrConfig,
			"Reconnect interval too short",
			"Minimum is 1s; use 0 to disable auto-reconnect.")
	}
	return d, nil
}
