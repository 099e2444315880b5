package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mirqab/mirqab/internal/ollama"
	"github.com/mirqab/mirqab/internal/ui"
)

// ollamaRequestTimeout bounds list/show calls against the daemon. Pull
// runs unbounded under the signal context instead.
const ollamaRequestTimeout = 30 * time.Second

// modelsListCommand lists the models installed in the Ollama daemon.
func modelsListCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return failJSON(err)
	}
	client := ollamaClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), ollamaRequestTimeout)
	defer cancel()

	models, err := client.List(ctx)
	if err != nil {
		return failJSON(err)
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, models)
	}

	fmt.Println(ui.RenderModelsTable(modelRows(models)))
	return nil
}

// modelsShowCommand prints details for one installed model.
func modelsShowCommand(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return failJSON(err)
	}
	client := ollamaClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), ollamaRequestTimeout)
	defer cancel()

	show, err := client.Show(ctx, name)
	if err != nil {
		return failJSON(err)
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, show)
	}

	if showModelfileFlag {
		fmt.Println(strings.TrimSpace(show.Modelfile))
		return nil
	}

	fmt.Printf("Model: %s\n\n", name)
	fmt.Printf("  %-12s%s\n", "Family", orDash(show.Details.Family))
	fmt.Printf("  %-12s%s\n", "Parameters", orDash(show.Details.ParameterSize))
	fmt.Printf("  %-12s%s\n", "Quant", orDash(show.Details.QuantizationLevel))
	fmt.Printf("  %-12s%s\n", "Format", orDash(show.Details.Format))

	if params := strings.TrimSpace(show.Parameters); params != "" {
		fmt.Println("\nSampling parameters:")
		for _, line := range strings.Split(params, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}

// modelsPullCommand downloads a model with a progress bar.
func modelsPullCommand(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := ollamaClient(cfg)

	// Downloads can take a long time; only Ctrl+C stops them.
	ctx, stop := signalContext()
	defer stop()

	progress := ui.NewDownloadProgress("Pulling "+name, os.Stdout)
	if !Quiet() {
		progress.Start()
	}

	err = client.Pull(ctx, name, func(p ollama.PullProgress) error {
		if !Quiet() {
			progress.Update(p.Status, p.Completed, p.Total)
		}
		return nil
	})
	if err != nil {
		if !Quiet() {
			progress.Fail()
		}
		return err
	}

	if !Quiet() {
		progress.Success()
		fmt.Printf("\nRun it with: ollama run %s\n", name)
	}
	return nil
}

// modelRows converts daemon model records into display rows.
func modelRows(models []ollama.Model) []ui.ModelRow {
	rows := make([]ui.ModelRow, len(models))
	for i, m := range models {
		rows[i] = ui.ModelRow{
			Name:     m.Name,
			Size:     ui.FormatBytes(m.Size),
			Family:   m.Details.Family,
			Quant:    m.Details.QuantizationLevel,
			Modified: ui.FormatAgo(m.ModifiedAt),
		}
	}
	return rows
}

// orDash substitutes a dash for fields the daemon left empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
