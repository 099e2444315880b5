package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/ollama"
	"github.com/mirqab/mirqab/internal/ui"
)

// configHeader is prepended to generated .mirqab.yaml files.
const configHeader = `# Mirqab training monitor configuration
# Start the monitor with 'mirqab serve'; try it with 'mirqab demo'.
# Every key can be overridden with a MIRQAB_* environment variable,
# e.g. MIRQAB_SERVER_PORT=8080.

`

// InitOptions holds options for the init command.
type InitOptions struct {
	Force          bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, write defaults
}

// Init creates a new .mirqab.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}

		fmt.Println()
		checkOllama(cfg.Ollama.URL)
	}

	data, err := renderConfigYAML(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  mirqab serve    - Start the training monitor")
	fmt.Println("  mirqab demo     - Try it with a simulated session")
	fmt.Println("  mirqab doctor   - Check the machine")

	return nil
}

// promptConfig fills cfg from interactive prompts. Empty answers keep
// the defaults.
func promptConfig(cfg *config.Config) error {
	var portStr, ollamaURL, datasetDir string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server port").
				Description("Where the monitor dashboard listens").
				Placeholder(strconv.Itoa(cfg.Server.Port)).
				Value(&portStr).
				Validate(validatePort),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Ollama URL").
				Description("Base URL of the local Ollama daemon").
				Placeholder(cfg.Ollama.URL).
				Value(&ollamaURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset directory").
				Description("Where generated training data is written").
				Placeholder(cfg.Dataset.Dir).
				Value(&datasetDir),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility; a plain run writes the defaults")
	}

	if s := strings.TrimSpace(portStr); s != "" {
		// Validated above, so Atoi cannot fail here.
		port, _ := strconv.Atoi(s)
		cfg.Server.Port = port
	}
	if s := strings.TrimSpace(ollamaURL); s != "" {
		cfg.Ollama.URL = s
	}
	if s := strings.TrimSpace(datasetDir); s != "" {
		cfg.Dataset.Dir = s
	}
	return nil
}

// validatePort accepts an empty answer (keeps the default) or a TCP
// port number.
func validatePort(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}

// checkOllama pings the daemon so a bad URL is caught at init time. The
// monitor runs fine without Ollama, so failure only warns.
func checkOllama(url string) {
	spinner := ui.NewSpinner("Checking Ollama at " + url)
	spinner.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := ollama.NewClient(url, nil)
	if err := client.Ping(ctx); err != nil {
		spinner.Fail()
		fmt.Println("  Ollama is not reachable. Model commands need it; the monitor does not.")
		fmt.Println("  Start it later with: ollama serve")
		fmt.Println()
		return
	}

	spinner.Success()
	fmt.Println()
}

// renderConfigYAML marshals cfg with the explanatory header comment.
func renderConfigYAML(cfg *config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}
	return append([]byte(configHeader), data...), nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(force bool) error {
	return Init(InitOptions{
		Force:          force,
		NonInteractive: !term.IsTerminal(int(os.Stdin.Fd())),
	})
}
