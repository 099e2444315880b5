package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/ollama"
	"github.com/mirqab/mirqab/internal/sysinfo"
	"github.com/mirqab/mirqab/internal/ui"
)

// DoctorOutput is the --json payload for the doctor command.
type DoctorOutput struct {
	Host            *sysinfo.HostInfo             `json:"host"`
	Results         []sysinfo.CheckResult         `json:"results"`
	Summary         DoctorSummary                 `json:"summary"`
	Recommendations []sysinfo.ModelRecommendation `json:"recommendations"`
}

// DoctorSummary counts check outcomes.
type DoctorSummary struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand runs the environment checks and reports what this
// machine can fine-tune.
func doctorCommand() error {
	cfgPath, err := config.Find(Config())
	if err != nil {
		return failJSON(err)
	}

	var cfg *config.Config
	if cfgPath != "" {
		// Load errors surface through the config check, not here.
		cfg, _ = config.Load(cfgPath)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	info, err := sysinfo.Probe()
	if err != nil {
		return failJSON(err)
	}

	url := cfg.Ollama.URL
	if ollamaURLFlag != "" {
		url = ollamaURLFlag
	}
	client := ollama.NewClient(url, commandLogger("[ollama]"))

	checks := sysinfo.NewChecks(info, client, cfg, cfgPath)
	results := sysinfo.RunAllParallel(checks)
	recs := sysinfo.RecommendModels(info.AvailableRAM)

	if machineMode {
		counts := sysinfo.CountByStatus(results)
		return WriteJSONSuccess(os.Stdout, DoctorOutput{
			Host:    info,
			Results: results,
			Summary: DoctorSummary{
				Pass:     counts[sysinfo.StatusPass],
				Warn:     counts[sysinfo.StatusWarn],
				Fail:     counts[sysinfo.StatusFail],
				AllClear: !sysinfo.HasIssues(results),
			},
			Recommendations: recs,
		})
	}

	printDoctorReport(info, checks, results, recs)
	return nil
}

// printDoctorReport renders the human-readable environment report.
func printDoctorReport(info *sysinfo.HostInfo, checks []sysinfo.Check, results []sysinfo.CheckResult, recs []sysinfo.ModelRecommendation) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)

	fmt.Println()
	fmt.Println(headerStyle.Render("Mirqab Environment Report"))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("%s (%s/%s), %d CPUs, %.1f GB RAM, %.1f GB disk free",
		info.Hostname, info.OS, info.Arch, info.LogicalCPUs, info.TotalRAM, info.DiskFree)))
	fmt.Println()

	fmt.Print(ui.RenderCheckTable(checkRows(checks, results)))

	if sysinfo.HasIssues(results) {
		fmt.Printf("%s %s\n", errorStyle.Render(ui.SymbolFail), sysinfo.Summary(results))
	} else {
		fmt.Printf("%s %s\n", successStyle.Render(ui.SymbolSuccess), sysinfo.Summary(results))
	}

	if len(recs) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Models this machine can fine-tune"))
		for _, r := range recs {
			fmt.Printf("  %s (%s)\n", r.Model, r.Size)
			fmt.Printf("      %s\n", mutedStyle.Render(r.ReasonEn))
			fmt.Printf("      %s\n", mutedStyle.Render(r.Reason))
		}
	}
	fmt.Println()
}

// checkRows converts check results into display rows grouped by
// category.
func checkRows(checks []sysinfo.Check, results []sysinfo.CheckResult) []ui.CheckRow {
	rows := make([]ui.CheckRow, len(results))
	for i, res := range results {
		rows[i] = ui.CheckRow{
			Status:     res.Status.String(),
			Category:   checks[i].Category(),
			Message:    res.Message,
			Suggestion: res.Suggestion,
		}
	}
	return rows
}
