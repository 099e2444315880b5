package watch

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyScrollTop  = "home"
	KeyScrollEnd  = "end"
	KeyCollapse   = "esc"
	KeyToggleHelp = "?"
)

// HandleKeyMsg processes keyboard input and returns updated model state and
// command. Returns true if the key was handled; unhandled keys fall through
// to the log viewport for scrolling.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		m.releaseStream()
		return true, tea.Quit

	case KeyRefresh:
		return true, m.startReconnect()

	case KeyScrollTop:
		if m.viewportReady {
			m.logView.GotoTop()
		}
		return true, nil

	case KeyScrollEnd:
		if m.viewportReady {
			m.logView.GotoBottom()
		}
		return true, nil
	}

	return false, nil
}
