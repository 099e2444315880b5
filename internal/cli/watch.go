package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/watch"
)

// watchCommand launches the terminal dashboard.
func watchCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := watchURLFlag
	if url == "" {
		url = "http://" + cfg.Server.Addr()
	}

	interval, err := parseReconnectInterval(watchIntervalFlag)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"watch needs an interactive terminal",
			"Run it from a terminal, or poll /api/status for scripts.")
	}

	// nil logger: the TUI owns the screen, a printing logger would
	// corrupt it.
	client := watch.NewClient(url, nil)

	p := tea.NewProgram(watch.NewModel(client, interval), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
