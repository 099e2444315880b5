package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mirqab/mirqab/internal/dataset"
	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/ui"
)

// datasetSampleCommand writes the built-in starter dataset.
func datasetSampleCommand(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if path == "" {
		path = filepath.Join(cfg.Dataset.Dir, "sample_dataset.jsonl")
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	n, err := dataset.WriteSamples(path)
	if err != nil {
		return err
	}

	if !Quiet() {
		fmt.Printf("%s Wrote %d sample conversations to %s\n", ui.SymbolSuccess, n, path)
		fmt.Println("\nNext steps:")
		fmt.Println("  mirqab dataset analyze <dir>  - Inspect a text corpus")
		fmt.Println("  mirqab dataset build <dir>    - Build training data from it")
	}
	return nil
}

// datasetAnalyzeCommand inspects a corpus directory.
func datasetAnalyzeCommand(dir string) error {
	analyzer := dataset.NewAnalyzer(analyzeTokensFlag, commandLogger("[dataset]"))

	var spin *ui.Spinner
	if !machineMode && !Quiet() {
		spin = ui.NewSpinner("Analyzing " + dir)
		spin.Start()
	}

	analysis, err := analyzer.AnalyzeDir(dir)
	if spin != nil {
		if err != nil {
			spin.Fail()
		} else {
			spin.Success()
		}
	}
	if err != nil {
		return failJSON(err)
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, analysis)
	}

	printAnalysis(analysis)
	return nil
}

// datasetBuildCommand chunks a corpus into training records.
func datasetBuildCommand(dir string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	chunk := cfg.Dataset.ChunkSize
	if buildChunkFlag > 0 {
		chunk = buildChunkFlag
	}

	format := strings.ToLower(strings.TrimSpace(buildFormatFlag))
	switch format {
	case "conversation", "instruction", "completion":
	default:
		return errors.New(errors.ErrValidate,
			fmt.Sprintf("Unknown format: %s", buildFormatFlag),
			"Use conversation, instruction, or completion")
	}

	out := buildOutputFlag
	if out == "" {
		out = filepath.Join(cfg.Dataset.Dir, "train_"+format+".jsonl")
	}
	if err := ensureDir(out); err != nil {
		return err
	}

	files, err := dataset.CorpusFiles(dir)
	if err != nil {
		return err
	}

	builder := dataset.NewBuilder(chunk, commandLogger("[dataset]"))

	var count int
	switch format {
	case "conversation":
		count, err = builder.Conversations(files, out)
	case "instruction":
		count, err = builder.Instructions(files, out)
	case "completion":
		count, err = builder.Completions(files, out)
	}
	if err != nil {
		return err
	}

	if !Quiet() {
		fmt.Printf("%s Wrote %d %s records to %s\n", ui.SymbolSuccess, count, format, out)
		fmt.Println("\nFine-tune with your framework of choice, then:")
		fmt.Println("  mirqab modelfile --base llama3.2:3b --adapter <weights>")
	}
	return nil
}

// printAnalysis renders the corpus report: a per-file table and totals.
func printAnalysis(a *dataset.Analysis) {
	fmt.Println()

	rows := make([][]string, len(a.Files))
	for i, f := range a.Files {
		rows[i] = []string{
			f.Name,
			ui.FormatBytes(f.SizeBytes),
			fmt.Sprintf("%d", f.Words),
			fmt.Sprintf("%.0f%%", f.ArabicPercentage),
			fmt.Sprintf("%d", f.Lines),
		}
	}
	columns := []ui.TableColumn{
		{Title: "FILE", Width: 28},
		{Title: "SIZE", Width: 10},
		{Title: "WORDS", Width: 10},
		{Title: "ARABIC", Width: 8},
		{Title: "LINES", Width: 8},
	}
	fmt.Println(ui.RenderSimpleTable(columns, rows))

	fmt.Printf("Files: %d   Words: %d   Arabic: %.0f%%   Languages: %s\n",
		a.TotalFiles, a.TotalWords, a.ArabicPercentage, strings.Join(a.Languages, ", "))
	if a.TotalTokens > 0 {
		fmt.Printf("Estimated tokens: %d\n", a.TotalTokens)
	}
}

// ensureDir creates the parent directory of path when it is missing.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrDataset,
			"Could not create "+dir,
			"Check directory permissions")
	}
	return nil
}
