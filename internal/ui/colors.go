package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication. ANSI codes keep output readable
// on 16-color terminals.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy.
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// DisableColors switches all Lip Gloss rendering to plain text.
// Used by the --no-color flag.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StatusColor maps a training session status to its display color.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "training":
		return ColorInfo
	case "starting":
		return ColorWarning
	case "completed":
		return ColorSuccess
	case "failed":
		return ColorError
	default:
		// idle and anything unknown
		return ColorMuted
	}
}

// LevelColor maps a log level to its display color.
func LevelColor(level string) lipgloss.Color {
	switch level {
	case "error":
		return ColorError
	case "warning", "warn":
		return ColorWarning
	case "debug":
		return ColorMuted
	default:
		return ColorInfo
	}
}
