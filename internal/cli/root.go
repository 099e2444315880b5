package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirqab/mirqab/internal/ui"
)

// Global flags available to all subcommands
var (
	cfgFlag     string
	verboseFlag bool
	quietFlag   bool
	noColorFlag bool
)

// rootCmd is the base command for mirqab.
var rootCmd = &cobra.Command{
	Use:   "mirqab",
	Short: "Training monitor for local Arabic LLM fine-tuning",
	Long: `Mirqab (مرقب, "watchtower") watches fine-tuning runs on your own machine.

A training script reports progress to the monitor process, which serves
a live dashboard in the browser and an event stream any number of
viewers can follow. The CLI also prepares JSONL training data from raw
text and talks to the local Ollama daemon for model management.

Examples:
  mirqab serve                  Start the monitor on 127.0.0.1:5005
  mirqab watch                  Follow a running monitor in the terminal
  mirqab demo                   Monitor plus a simulated training session
  mirqab dataset build ./docs   Build training data from a text corpus
  mirqab doctor                 Check the machine before training`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			ui.DisableColors()
		}
		if verboseFlag {
			// Every component reads the env var, so one switch
			// covers loggers created anywhere in the process.
			os.Setenv("MIRQAB_DEBUG", "1") //nolint:errcheck // Setenv on a fresh key cannot fail usefully
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFlag, "config", "", "config file (default: .mirqab.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Config returns the --config flag value.
func Config() string {
	return cfgFlag
}

// Quiet reports whether --quiet was given.
func Quiet() bool {
	return quietFlag
}

// Execute runs the root command and exits non-zero on error. Structured
// errors render their own ✗ block; cobra's usage noise is silenced so
// they stay readable.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			printUnknownCommand(err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether err is cobra's unknown command
// or unknown flag parse error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "mirqab"` message. Returns empty when the
// message carries no quoted name.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	rest := msg[start+1:]
	end := strings.Index(rest, `"`)
	if end == -1 {
		return ""
	}
	return rest[:end]
}

// printUnknownCommand renders a friendlier unknown-command error with
// the list of available commands.
func printUnknownCommand(err error) {
	fmt.Fprintln(os.Stderr, err)

	if name := extractUnknownCommand(err); name != "" {
		fmt.Fprintf(os.Stderr, "\nmirqab has no %q command. Available commands:\n", name)
		for _, c := range rootCmd.Commands() {
			if c.Hidden || c.Name() == "help" {
				continue
			}
			fmt.Fprintf(os.Stderr, "  %-12s %s\n", c.Name(), c.Short)
		}
	}

	fmt.Fprintln(os.Stderr, "\nRun 'mirqab --help' for details.")
}
