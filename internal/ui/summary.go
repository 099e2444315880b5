package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SessionSummary holds the final numbers of a finished training session.
type SessionSummary struct {
	Model     string
	Epochs    int
	Steps     int
	FinalLoss float64
	Duration  time.Duration
}

// RenderSessionSummary formats the post-run summary block printed after a
// demo or training session finishes.
func RenderSessionSummary(s SessionSummary) string {
	successStyle := lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	valueStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

	var sb strings.Builder
	sb.WriteString(successStyle.Render(SymbolSuccess + " Training complete"))
	sb.WriteString("\n")

	row := func(label, value string) {
		sb.WriteString("  ")
		sb.WriteString(labelStyle.Render(padRight(label, 12)))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}

	row("Model", s.Model)
	row("Epochs", fmt.Sprintf("%d", s.Epochs))
	row("Steps", fmt.Sprintf("%d", s.Steps))
	if s.FinalLoss > 0 {
		row("Final loss", fmt.Sprintf("%.4f", s.FinalLoss))
	}
	row("Duration", formatDuration(s.Duration))

	return sb.String()
}
