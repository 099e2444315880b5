package watch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/monitor"
	"github.com/mirqab/mirqab/internal/ui"
)

// renderDashboard renders the complete watch view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.conn == stateLost:
		b.WriteString(m.renderDisconnected())
	case !m.haveState:
		b.WriteString(m.renderConnecting())
	default:
		b.WriteString(m.renderSession())
		b.WriteString("\n")
		b.WriteString(m.renderMetrics())
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the top line with the session identity and freshness.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("mirqab watch")

	var stats string
	if m.haveState && m.state.ModelName != "" {
		stats = fmt.Sprintf(" | %s | updated %s", m.state.ModelName, m.updateAgeText())
	} else {
		stats = " | " + m.client.BaseURL()
	}

	return HeaderStyle.Render(title + lipgloss.NewStyle().Foreground(ColorTextSecondary).Render(stats))
}

// updateAgeText describes how stale the last event is.
func (m Model) updateAgeText() string {
	switch secs := m.SecondsSinceUpdate(); {
	case secs == 0:
		return "just now"
	case secs == 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}

func (m Model) renderConnecting() string {
	var b strings.Builder
	b.WriteString("  " + m.spin.View())
	b.WriteString("\n\n")
	b.WriteString("  " + MutedStyle.Render(m.client.BaseURL()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderDisconnected() string {
	mark := lipgloss.NewStyle().Foreground(ColorCritical).Bold(true).Render("✗ Disconnected")

	message, suggestion := describeError(m.connErr)

	var b strings.Builder
	b.WriteString("  " + mark + "\n\n")
	if message != "" {
		b.WriteString("  " + LabelStyle.Render(message) + "\n")
	}
	if suggestion == "" {
		suggestion = "Press r to reconnect."
	}
	b.WriteString("  " + MutedStyle.Render(suggestion) + "\n")
	return b.String()
}

// describeError pulls the short message and suggestion out of a structured
// error, falling back to the raw text.
func describeError(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if merr, ok := err.(*errors.Error); ok {
		return merr.Message, merr.Suggestion
	}
	return err.Error(), ""
}

// renderSession renders the session section: identity, progress, timing.
func (m Model) renderSession() string {
	w := m.layoutWidth()
	st := m.state

	var b strings.Builder
	b.WriteString(SectionHeader("Session", m.statusIndicator(), w))
	b.WriteString("\n")

	b.WriteString(SectionContentLine(labelValue("Model", st.ModelName), w))
	b.WriteString("\n")

	epochs := fmt.Sprintf("%d/%d", st.CurrentEpoch, st.TotalEpochs)
	steps := fmt.Sprintf("%d/%d", st.CurrentStep, st.TotalSteps)
	b.WriteString(SectionContentLine(labelValue("Epoch", epochs)+"  "+labelValue("Step", steps), w))
	b.WriteString("\n")

	percent := 0.0
	if st.TotalSteps > 0 {
		percent = float64(st.CurrentStep) / float64(st.TotalSteps) * 100
	}
	barWidth := w - 4 - 7 // borders plus the percent readout
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}
	bar := ProgressBar(barWidth, percent) + ValueStyle.Render(fmt.Sprintf(" %3.0f%%", percent))
	b.WriteString(SectionContentLine(bar, w))
	b.WriteString("\n")

	timing := labelValue("Elapsed", ui.FormatSeconds(st.ElapsedSeconds)) +
		"  " + labelValue("Remaining", ui.FormatSeconds(st.RemainingSeconds))
	b.WriteString(SectionContentLine(timing, w))
	b.WriteString("\n")

	b.WriteString(SectionFooter(w))
	return b.String()
}

// statusIndicator renders the glyph and word for the current status, with
// the training glyph animated.
func (m Model) statusIndicator() string {
	status := m.state.Status
	if status == monitor.StatusTraining {
		char, style := GetTrainingSpinner(m.spinnerFrame)
		return style.Render(char) + " " + StatusStyle(status).Render(status)
	}
	return StatusStyle(status).Render(StatusGlyph(status) + " " + status)
}

// renderMetrics renders the loss curve and learning rate.
func (m Model) renderMetrics() string {
	w := m.layoutWidth()
	st := m.state

	var b strings.Builder
	b.WriteString(SectionHeader("Metrics", fmt.Sprintf("loss %.4f", st.Loss), w))
	b.WriteString("\n")

	sparkWidth := w - 4 - 14
	if sparkWidth > 48 {
		sparkWidth = 48
	}
	if sparkWidth < 8 {
		sparkWidth = 8
	}
	lossLine := labelValue("Loss", fmt.Sprintf("%.4f", st.Loss))
	if len(st.Metrics.Loss) > 1 {
		lossLine += "  " + ui.RenderTrendSparkline(st.Metrics.Loss, sparkWidth)
	}
	b.WriteString(SectionContentLine(lossLine, w))
	b.WriteString("\n")

	b.WriteString(SectionContentLine(labelValue("Rate", fmt.Sprintf("%.6f", st.LearningRate)), w))
	b.WriteString("\n")

	b.WriteString(SectionFooter(w))
	return b.String()
}

// renderLogs renders the scrolling log tail.
func (m Model) renderLogs() string {
	w := m.layoutWidth()

	var b strings.Builder
	b.WriteString(SectionHeader("Logs", fmt.Sprintf("%d", len(m.logs)), w))
	b.WriteString("\n")

	var body string
	if m.viewportReady {
		body = m.logView.View()
	} else {
		// No terminal size yet; show a short static tail.
		body = m.renderLogTail(w-4, 8)
	}
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(SectionContentLine(line, w))
		b.WriteString("\n")
	}

	b.WriteString(SectionFooter(w))
	return b.String()
}

// renderLogLines renders every retained entry at the given width, for the
// viewport.
func (m Model) renderLogLines(width int) string {
	if len(m.logs) == 0 {
		return MutedStyle.Render("No logs yet")
	}
	lines := make([]string, 0, len(m.logs))
	for _, entry := range m.logs {
		lines = append(lines, formatLogEntry(entry, width))
	}
	return strings.Join(lines, "\n")
}

// renderLogTail renders at most n trailing entries.
func (m Model) renderLogTail(width, n int) string {
	if len(m.logs) == 0 {
		return MutedStyle.Render("No logs yet")
	}
	entries := m.logs
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, formatLogEntry(entry, width))
	}
	return strings.Join(lines, "\n")
}

// formatLogEntry renders one log line, truncating the message to fit.
func formatLogEntry(entry monitor.LogEntry, width int) string {
	ts := MutedStyle.Render(entry.Timestamp.Format("15:04:05"))
	level := LogLevelStyle(entry.Level).Render("[" + entry.Level + "]")

	prefixWidth := 8 + 1 + lipgloss.Width("["+entry.Level+"]") + 1
	budget := width - prefixWidth
	message := entry.Message
	if budget > 4 {
		runes := []rune(message)
		if len(runes) > budget {
			message = string(runes[:budget-1]) + "…"
		}
	}

	return ts + " " + level + " " + ValueStyle.Render(message)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r reconnect",
		"↑↓ scroll",
		"? help",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// labelValue renders a fixed-width label next to its value.
func labelValue(label, value string) string {
	return LabelStyle.Width(10).Render(label) + ValueStyle.Render(value)
}

// HelpBinding represents a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpBindings defines all keyboard shortcuts shown in the help overlay.
var helpBindings = []HelpBinding{
	{Key: "q / Ctrl+C", Desc: "Quit"},
	{Key: "r", Desc: "Reconnect"},
	{Key: "up / k", Desc: "Scroll logs up"},
	{Key: "down / j", Desc: "Scroll logs down"},
	{Key: "PgUp / PgDn", Desc: "Page logs"},
	{Key: "Home / End", Desc: "Jump to first / last log"},
	{Key: "?", Desc: "Toggle this help"},
}

// Help overlay styles
var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m Model) renderHelpOverlay() string {
	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	for _, binding := range helpBindings {
		lines = append(lines, helpKeyStyle.Render(binding.Key)+helpDescStyle.Render(binding.Desc))
	}

	lines = append(lines, "")
	lines = append(lines, LabelStyle.Render("Press ? to close"))

	helpBox := helpBoxStyle.Render(strings.Join(lines, "\n"))

	if m.width == 0 || m.height == 0 {
		return helpBox
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
	)
}
