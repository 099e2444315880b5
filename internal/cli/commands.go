package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mirqab/mirqab/internal/errors"
)

// Command-specific flags
var (
	servePortFlag  int
	serveHostFlag  string
	serveQueueFlag int

	watchURLFlag      string
	watchIntervalFlag string

	demoModelFlag   string
	demoEpochsFlag  int
	demoDatasetFlag int
	demoBatchFlag   int
	demoSpeedFlag   float64

	analyzeTokensFlag bool

	buildFormatFlag string
	buildOutputFlag string
	buildChunkFlag  int

	showModelfileFlag bool

	modelfileBaseFlag    string
	modelfileSystemFlag  string
	modelfileAdapterFlag string
	modelfileOutputFlag  string

	ollamaURLFlag string

	initForceFlag bool
)

// serveCmd runs the training monitor server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the training monitor server",
	Long: `Start the training monitor and serve the dashboard.

The server holds one training session in memory. A training script
reports progress to it through the producer API, and any number of
viewers follow along via the dashboard page or the event stream.

Endpoints:
  /              Dashboard page
  /api/status    Current session snapshot (JSON)
  /api/events    Live event stream (SSE)
  /api/health    Health and viewer count

Examples:
  mirqab serve
  mirqab serve --port 8080
  mirqab serve --host 0.0.0.0 --port 5005`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCommand()
	},
}

// watchCmd is the terminal dashboard
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Terminal dashboard for a running monitor",
	Long: `Follow a running training monitor in the terminal.

Connects to the monitor's event stream and renders live progress:
status, epoch and step counters, a loss sparkline, and a scrolling
log tail.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Reconnect
  up/k down/j Scroll the log tail
  Home / End  Jump to oldest / newest log line
  ?           Show help

Examples:
  mirqab watch
  mirqab watch --url http://192.168.1.20:5005
  mirqab watch --interval 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand()
	},
}

// demoCmd runs a monitor with a simulated training session
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the monitor with a simulated training session",
	Long: `Start the monitor and drive it with a scripted training session.

Useful for trying the dashboard without a real fine-tuning job: the
simulated run produces decaying loss, a stepped learning-rate schedule,
and periodic progress logs. Open the printed URL in a browser, or run
'mirqab watch' in another terminal.

Examples:
  mirqab demo
  mirqab demo --speed 10
  mirqab demo --model my-model --epochs 3 --dataset-size 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return demoCommand()
	},
}

// datasetCmd groups the training-data subcommands
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Prepare JSONL training data",
	Long: `Prepare JSONL training data for fine-tuning.

Subcommands cover the whole flow: write a starter dataset, analyze a
raw text corpus, and build training records from it.

Examples:
  mirqab dataset sample
  mirqab dataset analyze ./corpus --tokens
  mirqab dataset build ./corpus --format instruction`,
}

// datasetSampleCmd writes the built-in starter dataset
var datasetSampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Write the built-in Arabic starter dataset",
	Long: `Write a small built-in Arabic conversation dataset to disk.

The records use the conversation format ({"messages": [...]}) and give
the rest of the pipeline something to work with before you have a
corpus of your own.

Examples:
  mirqab dataset sample
  mirqab dataset sample ./datasets/starter.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return datasetSampleCommand(path)
	},
}

// datasetAnalyzeCmd inspects a text corpus
var datasetAnalyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Analyze a text corpus",
	Long: `Analyze the text files (.txt, .md) in a directory before building
training data.

Reports size, word and line counts, and the Arabic share of each file.
With --tokens the corpus is also run through the cl100k_base tokenizer
for a token estimate; the encoding is downloaded and cached on first
use.

Examples:
  mirqab dataset analyze
  mirqab dataset analyze ./corpus --tokens
  mirqab dataset analyze ./corpus --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		return datasetAnalyzeCommand(dir)
	},
}

// datasetBuildCmd builds training records from a corpus
var datasetBuildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Build JSONL training data from a corpus",
	Long: `Chunk the text files (.txt, .md) in a directory and emit JSONL
training records.

Text is split on sentence boundaries (Arabic punctuation included) into
chunks of at most --chunk-size characters, then rendered in the chosen
record format:

  conversation   {"messages": [{"role": ...}, ...]}
  instruction    {"instruction": ..., "input": ..., "output": ...}
  completion     {"prompt": ..., "completion": ...}

Examples:
  mirqab dataset build ./corpus
  mirqab dataset build ./corpus --format conversation
  mirqab dataset build ./corpus --output ./datasets/train.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return datasetBuildCommand(args[0])
	},
}

// modelsCmd groups the Ollama model subcommands
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect and download Ollama models",
	Long: `Work with models installed in the local Ollama daemon.

Examples:
  mirqab models list
  mirqab models show llama3.2:3b
  mirqab models pull llama3.2:1b`,
}

// modelsListCmd lists installed models
var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed models",
	Long: `List the models installed in the local Ollama daemon.

Examples:
  mirqab models list
  mirqab models list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return modelsListCommand()
	},
}

// modelsShowCmd shows one model's details
var modelsShowCmd = &cobra.Command{
	Use:   "show <model>",
	Short: "Show model details",
	Long: `Show details for one installed model: family, parameter size,
quantization, and sampling parameters.

Examples:
  mirqab models show llama3.2:3b
  mirqab models show llama3.2:3b --modelfile`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return modelsShowCommand(args[0])
	},
}

// modelsPullCmd downloads a model
var modelsPullCmd = &cobra.Command{
	Use:   "pull <model>",
	Short: "Download a model",
	Long: `Download a model into the local Ollama daemon, with progress.

Examples:
  mirqab models pull llama3.2:1b
  mirqab models pull llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return modelsPullCommand(args[0])
	},
}

// modelfileCmd generates a Modelfile
var modelfileCmd = &cobra.Command{
	Use:   "modelfile",
	Short: "Generate a Modelfile for a fine-tuned model",
	Long: `Generate an Ollama Modelfile wiring a base model to the bilingual
assistant persona and, optionally, fine-tuned adapter weights.

The result feeds straight into 'ollama create':

  mirqab modelfile --base llama3.2:3b --adapter ./out/adapter
  ollama create my-arabic-model -f Modelfile

Examples:
  mirqab modelfile --base llama3.2:3b
  mirqab modelfile --base llama3.2:3b --output -
  mirqab modelfile --base llama3.2:1b --system "أنت مساعد متخصص في الطب"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return modelfileCommand()
	},
}

// doctorCmd checks the machine before training
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the machine before training",
	Long: `Run environment checks and report what this machine can fine-tune.

Checks:
  - CPU, memory, and free disk capacity
  - Ollama daemon reachability
  - Config file validity
  - Dataset directory

Examples:
  mirqab doctor
  mirqab doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

// initCmd creates a new .mirqab.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .mirqab.yaml configuration",
	Long: `Initialize a new mirqab configuration file.

Creates a .mirqab.yaml in the current directory with sensible defaults,
guiding you through the server port, Ollama URL, and dataset directory
with interactive prompts. Without a terminal the defaults are written
as-is.

Examples:
  mirqab init
  mirqab init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForceFlag)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for mirqab.

Examples:
  # Bash
  mirqab completion bash > /etc/bash_completion.d/mirqab

  # Zsh
  mirqab completion zsh > "${fpath[1]}/_mirqab"

  # Fish
  mirqab completion fish > ~/.config/fish/completions/mirqab.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrValidate,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// serve command flags
	serveCmd.Flags().IntVar(&servePortFlag, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&serveHostFlag, "host", "", "listen interface (overrides config)")
	serveCmd.Flags().IntVar(&serveQueueFlag, "queue-size", 0, "per-viewer event queue capacity (overrides config)")

	// watch command flags
	watchCmd.Flags().StringVar(&watchURLFlag, "url", "", "monitor base URL (default: from config)")
	watchCmd.Flags().StringVar(&watchIntervalFlag, "interval", "5s", "auto-reconnect interval after a dropped stream (0 disables)")

	// demo command flags
	demoCmd.Flags().StringVar(&demoModelFlag, "model", "", "model name shown in the session")
	demoCmd.Flags().IntVar(&demoEpochsFlag, "epochs", 0, "epochs to simulate")
	demoCmd.Flags().IntVar(&demoDatasetFlag, "dataset-size", 0, "simulated dataset size")
	demoCmd.Flags().IntVar(&demoBatchFlag, "batch-size", 0, "simulated batch size")
	demoCmd.Flags().Float64Var(&demoSpeedFlag, "speed", 1, "speed factor (10 runs ten times faster)")

	// dataset command flags
	datasetAnalyzeCmd.Flags().BoolVar(&analyzeTokensFlag, "tokens", false, "estimate token counts (downloads the encoding on first use)")
	datasetAnalyzeCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")
	datasetBuildCmd.Flags().StringVar(&buildFormatFlag, "format", "completion", "record format: conversation, instruction, or completion")
	datasetBuildCmd.Flags().StringVarP(&buildOutputFlag, "output", "o", "", "output file (default: <dataset dir>/train_<format>.jsonl)")
	datasetBuildCmd.Flags().IntVar(&buildChunkFlag, "chunk-size", 0, "max characters per chunk (overrides config)")

	// models command flags
	modelsCmd.PersistentFlags().StringVar(&ollamaURLFlag, "ollama-url", "", "Ollama base URL (overrides config)")
	modelsListCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")
	modelsShowCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")
	modelsShowCmd.Flags().BoolVar(&showModelfileFlag, "modelfile", false, "print the model's raw Modelfile")

	// modelfile command flags
	modelfileCmd.Flags().StringVar(&modelfileBaseFlag, "base", "", "base model, e.g. llama3.2:3b")
	modelfileCmd.Flags().StringVar(&modelfileSystemFlag, "system", "", "system prompt (default: bilingual assistant persona)")
	modelfileCmd.Flags().StringVar(&modelfileAdapterFlag, "adapter", "", "path to fine-tuned adapter weights")
	modelfileCmd.Flags().StringVarP(&modelfileOutputFlag, "output", "o", "Modelfile", "output path, or - for stdout")

	// doctor command flags
	doctorCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")
	doctorCmd.Flags().StringVar(&ollamaURLFlag, "ollama-url", "", "Ollama base URL (overrides config)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite existing config")

	// Register subcommands on their groups
	datasetCmd.AddCommand(datasetSampleCmd)
	datasetCmd.AddCommand(datasetAnalyzeCmd)
	datasetCmd.AddCommand(datasetBuildCmd)
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsShowCmd)
	modelsCmd.AddCommand(modelsPullCmd)

	// Register all commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(modelfileCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
