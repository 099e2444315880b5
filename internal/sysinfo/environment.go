package sysinfo

import (
	"context"
	"fmt"
	"time"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/dataset"
	"github.com/mirqab/mirqab/internal/ollama"
)

const ollamaCheckTimeout = 3 * time.Second

// OllamaCheck verifies the Ollama daemon answers.
type OllamaCheck struct {
	Client *ollama.Client

	// Timeout bounds the probe; zero selects the default.
	Timeout time.Duration
}

func (c *OllamaCheck) Name() string     { return "ollama" }
func (c *OllamaCheck) Category() string { return "OLLAMA" }

func (c *OllamaCheck) Run() CheckResult {
	if c.Client == nil {
		return CheckResult{Name: c.Name(), Status: StatusFail, Message: "no client configured"}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = ollamaCheckTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	models, err := c.Client.List(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Ollama not reachable at %s", c.Client.BaseURL()),
			Suggestion: "Make sure it's running with: ollama serve",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Ollama reachable at %s (%d model%s installed)",
			c.Client.BaseURL(), len(models), pluralize(len(models))),
	}
}

// ConfigCheck verifies the config file loads and validates.
type ConfigCheck struct {
	// Path is the explicit --config value; empty means search.
	Path string
}

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "CONFIG" }

func (c *ConfigCheck) Run() CheckResult {
	path, err := config.Find(c.Path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No .mirqab.yaml found, using defaults",
			Suggestion: "Create one with: mirqab init",
		}
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Config at %s does not validate", path),
			Suggestion: "Fix the reported field or regenerate with: mirqab init --force",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config valid (%s)", path),
	}
}

// DatasetCheck looks for corpus files in the configured dataset dir.
type DatasetCheck struct {
	Dir string
}

func (c *DatasetCheck) Name() string     { return "dataset" }
func (c *DatasetCheck) Category() string { return "DATASET" }

func (c *DatasetCheck) Run() CheckResult {
	files, err := dataset.CorpusFiles(c.Dir)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("No text files in %s", c.Dir),
			Suggestion: "Add .txt or .md files, or point dataset.dir at your corpus",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d text file%s in %s", len(files), pluralize(len(files)), c.Dir),
	}
}

// NewChecks assembles the full doctor suite. configPath is the explicit
// --config value, empty for the normal search.
func NewChecks(info *HostInfo, client *ollama.Client, cfg *config.Config, configPath string) []Check {
	return []Check{
		&CPUCheck{Info: info},
		&MemoryCheck{Info: info},
		&DiskCheck{Info: info},
		&OllamaCheck{Client: client},
		&ConfigCheck{Path: configPath},
		&DatasetCheck{Dir: cfg.Dataset.Dir},
	}
}
