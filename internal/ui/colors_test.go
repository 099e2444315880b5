package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   lipgloss.Color
	}{
		{"training", ColorInfo},
		{"starting", ColorWarning},
		{"completed", ColorSuccess},
		{"failed", ColorError},
		{"idle", ColorMuted},
		{"", ColorMuted},
		{"bogus", ColorMuted},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusColor(tt.status), "status %q", tt.status)
	}
}

func TestLevelColor(t *testing.T) {
	tests := []struct {
		level string
		want  lipgloss.Color
	}{
		{"error", ColorError},
		{"warning", ColorWarning},
		{"warn", ColorWarning},
		{"debug", ColorMuted},
		{"info", ColorInfo},
		{"", ColorInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelColor(tt.level), "level %q", tt.level)
	}
}

func TestDisableColors(t *testing.T) {
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	DisableColors()

	out := lipgloss.NewStyle().Foreground(ColorSuccess).Render("ok")
	assert.Equal(t, "ok", out)
}
