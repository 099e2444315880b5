package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Completed successfully
	SymbolFail     = "✗" // Failed
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In progress
	SymbolComplete = "●" // Active/done (alternative to success)
)

// StatusSymbol maps a training session status to its indicator glyph.
func StatusSymbol(status string) string {
	switch status {
	case "training":
		return SymbolComplete
	case "starting":
		return SymbolProgress
	case "completed":
		return SymbolSuccess
	case "failed":
		return SymbolFail
	default:
		return SymbolPending
	}
}
