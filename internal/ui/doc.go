// Package ui provides the shared terminal rendering pieces for mirqab's
// CLI output and the watch TUI.
//
// The package includes spinners, progress bars, sparklines, tables, and
// styled text output using the Lip Gloss library for consistent styling
// across all commands.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations, falling loss
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings, rising loss
//	ColorInfo      (cyan)   - Informational messages, active training
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// StatusColor and StatusSymbol map training session statuses (idle,
// starting, training, completed, failed) onto the palette; LevelColor
// does the same for log levels. Use DisableColors() to switch to
// monochrome output (for --no-color flag).
//
// # Spinner Usage
//
// The Spinner type provides an animated indicator for operations:
//
//	s := ui.NewSpinner("Writing conversations")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
//
// The spinner handles terminal output, clearing lines, and timing display.
// For Bubble Tea programs, SpinnerComponent wraps the Bubbles spinner so
// the watch TUI animates the same way.
//
// # Sparklines and Bars
//
// RenderSparkline draws a block-character graph of a metric series, and
// RenderTrendSparkline colors it by where the series is heading (green
// for falling loss, amber for rising). RenderBar draws bracketed
// progress bars; DownloadProgress animates one for streaming model
// downloads.
package ui
