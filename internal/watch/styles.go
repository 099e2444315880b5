package watch

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mirqab/mirqab/internal/monitor"
)

// Dashboard color palette - dark observatory theme
const (
	// Border and chrome
	ColorBorder = lipgloss.Color("#2B3245") // Slate border

	// Semantic colors
	ColorHealthy  = lipgloss.Color("#3FB950") // Signal green
	ColorWarning  = lipgloss.Color("#D29922") // Desert amber
	ColorCritical = lipgloss.Color("#F85149") // Alert red

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#E6EDF3") // Near white
	ColorTextSecondary = lipgloss.Color("#9DA7B8") // Steel gray
	ColorTextMuted     = lipgloss.Color("#616E85") // Dim slate

	// Accent colors
	ColorAccent = lipgloss.Color("#58A6FF") // Azure accent
	ColorGraph  = lipgloss.Color("#39C5CF") // Teal for charts
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Status indicator glyphs for the training lifecycle.
const (
	GlyphIdle      = "◌" // Dashed circle - nothing running
	GlyphStarting  = "◐" // Half-filled - warming up
	GlyphTraining  = "⣿" // Braille full (fallback when animation not available)
	GlyphCompleted = "◉" // Filled target
	GlyphFailed    = "✗"
)

// TrainingSpinnerFrames are the animation frames for the training state.
// Braille dots give a subtle "working" motion.
var TrainingSpinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// SpinnerColorFrames cycles warm ambers under the training spinner so the
// glyph reads as live without being frantic.
var SpinnerColorFrames = []lipgloss.Color{
	lipgloss.Color("#D29922"),
	lipgloss.Color("#E3A93C"),
	lipgloss.Color("#F2BB54"),
	lipgloss.Color("#E3A93C"),
	lipgloss.Color("#D29922"),
	lipgloss.Color("#C28E1B"),
	lipgloss.Color("#B28214"),
	lipgloss.Color("#C28E1B"),
}

// GetSpinnerColor returns the color for the given spinner frame index.
func GetSpinnerColor(frameIndex int) lipgloss.Color {
	return SpinnerColorFrames[frameIndex%len(SpinnerColorFrames)]
}

// GetTrainingSpinner returns the glyph and style for the animated training
// indicator at the given frame.
func GetTrainingSpinner(frameIndex int) (string, lipgloss.Style) {
	char := TrainingSpinnerFrames[frameIndex%len(TrainingSpinnerFrames)]
	style := lipgloss.NewStyle().Foreground(GetSpinnerColor(frameIndex))
	return char, style
}

// StatusGlyph returns the static indicator glyph for a lifecycle status.
func StatusGlyph(status string) string {
	switch status {
	case monitor.StatusStarting:
		return GlyphStarting
	case monitor.StatusTraining:
		return GlyphTraining
	case monitor.StatusCompleted:
		return GlyphCompleted
	case monitor.StatusFailed:
		return GlyphFailed
	default:
		return GlyphIdle
	}
}

// StatusStyle returns the foreground style for a lifecycle status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case monitor.StatusStarting:
		return lipgloss.NewStyle().Foreground(ColorTextSecondary)
	case monitor.StatusTraining:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case monitor.StatusCompleted:
		return lipgloss.NewStyle().Foreground(ColorHealthy)
	case monitor.StatusFailed:
		return lipgloss.NewStyle().Foreground(ColorCritical)
	default:
		return lipgloss.NewStyle().Foreground(ColorTextMuted)
	}
}

// LogLevelStyle returns the style for a log entry's level tag.
func LogLevelStyle(level string) lipgloss.Style {
	switch level {
	case "error":
		return lipgloss.NewStyle().Foreground(ColorCritical)
	case "warning", "warn":
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case "debug":
		return lipgloss.NewStyle().Foreground(ColorTextMuted)
	default:
		return lipgloss.NewStyle().Foreground(ColorTextSecondary)
	}
}

// ProgressBar renders a bracketless progress bar sized for the dashboard.
// The bar stays accent-colored while work is in flight and flips green at
// completion.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("▰")
		} else {
			bar.WriteString("▱")
		}
	}

	color := ColorAccent
	if percent >= 100 {
		color = ColorHealthy
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar.String())
}

// SectionHeader renders a section header with the title on the left and
// value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	// Visible widths, ANSI-aware: "╭─ " + title + " " on the left,
	// " " + value + " ╮" on the right.
	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	middle := strings.Repeat("─", width-2)
	return lipgloss.NewStyle().Foreground(ColorBorder).Render("╰" + middle + "╯")
}

// SectionContentLine renders a content line with side borders, padded to
// width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	contentWidth := lipgloss.Width(content)
	// Inner width excludes the "│ " and " │" chrome.
	innerWidth := width - 4

	padding := innerWidth - contentWidth
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
