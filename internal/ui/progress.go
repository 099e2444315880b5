package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// ProgressColorFunc maps a percentage to a bar color.
type ProgressColorFunc func(percent float64) lipgloss.Color

// ProgressColor returns colors for completion bars. Higher is better:
// 0-50% blue, 50-80% yellow, 80%+ green.
func ProgressColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorSuccess
	case percent >= 50:
		return ColorWarning
	default:
		return ColorSecondary
	}
}

// UsageColor returns colors for resource usage bars. Higher indicates
// pressure: 0-60% green, 60-80% yellow, 80%+ red.
func UsageColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return ColorError
	case percent >= 60:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// ClampPercent clamps a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// RenderBar renders a bracketed progress bar of the given width, colored
// by colorFn. A nil colorFn falls back to ProgressColor.
func RenderBar(percent float64, width int, colorFn ProgressColorFunc) string {
	if width <= 0 {
		return ""
	}

	percent = ClampPercent(percent)
	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	var sb strings.Builder
	sb.Grow(width + 2)
	sb.WriteRune('[')
	for i := 0; i < filled; i++ {
		sb.WriteRune(BarFilled)
	}
	for i := filled; i < width; i++ {
		sb.WriteRune(BarEmpty)
	}
	sb.WriteRune(']')

	if colorFn == nil {
		colorFn = ProgressColor
	}
	return lipgloss.NewStyle().Foreground(colorFn(percent)).Render(sb.String())
}
