package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mirqab/mirqab/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".mirqab.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/mirqab"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. MIRQAB_SERVER_PORT=8080.
	EnvPrefix = "MIRQAB"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'mirqab init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .mirqab.yaml in current directory
// 3. .mirqab.yaml in parent directories (stops at git root or home)
// 4. ~/.config/mirqab/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if
// not found. Commands like 'mirqab serve' and 'mirqab init' should work
// without an existing config file.
func LoadOrDefault() (*Config, error) {
	path, err := Find("")
	if err != nil {
		return nil, err
	}

	if path == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	return Load(path)
}

// newViper builds a viper instance with defaults and env binding set up.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// parseConfig converts viper config to our Config struct with defaults
// merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	applyEnvOverrides(cfg)

	cfg.Dataset.Dir = ExpandTilde(Expand(cfg.Dataset.Dir))

	return cfg, nil
}

// setDefaults registers config defaults so env overrides work even for
// keys absent from the file.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("version", def.Version)
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.queue_size", def.Server.QueueSize)
	v.SetDefault("history.limit", def.History.Limit)
	v.SetDefault("ollama.url", def.Ollama.URL)
	v.SetDefault("dataset.chunk_size", def.Dataset.ChunkSize)
	v.SetDefault("dataset.dir", def.Dataset.Dir)
	v.SetDefault("logging.debug", def.Logging.Debug)
}

// applyEnvOverrides handles the overrides viper's env binding can't:
// OLLAMA_HOST is honored for compatibility with the Ollama CLI.
func applyEnvOverrides(cfg *Config) {
	if os.Getenv(EnvPrefix+"_OLLAMA_URL") != "" {
		// Explicit mirqab override wins, viper already applied it
		return
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.Ollama.URL = normalizeOllamaHost(host)
	}
}

// normalizeOllamaHost turns OLLAMA_HOST values like "0.0.0.0:11434" into
// a full base URL the way the Ollama CLI does.
func normalizeOllamaHost(host string) string {
	host = strings.TrimSuffix(host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "http://" + host
}
