// Package cli implements the mirqab command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small workflow function for the actual work. The
// general structure follows a clean separation between:
//
//   - Command definitions (cobra.Command instances in commands.go)
//   - Workflow functions (serveCommand, demoCommand, ...)
//   - Implementation details (in other internal packages)
//
// # Command Structure
//
// The root command is "mirqab" with subcommands for different operations:
//
//	mirqab serve              - Run the training monitor server
//	mirqab watch              - Terminal dashboard for a running monitor
//	mirqab demo               - Monitor plus a simulated training session
//	mirqab dataset <sub>      - Prepare JSONL training data
//	mirqab models <sub>       - Inspect and download Ollama models
//	mirqab modelfile          - Generate a Modelfile for a tuned model
//	mirqab doctor             - Check the machine before training
//	mirqab init               - Create .mirqab.yaml config
//
// # Flag Handling
//
// Global flags (--config, --verbose, --quiet, --no-color) are defined on
// the root command and available to all subcommands. Command-specific
// flags like --port and --format are defined on individual commands.
//
// Commands that support machine-readable output take --json and wrap
// their output in the JSONEnvelope structure from json.go.
package cli
