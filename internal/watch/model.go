// Package watch implements the live training dashboard: a terminal UI fed
// by a monitor's server-sent event stream. The client half subscribes to
// /api/events and decodes frames; the Bubble Tea model half renders the
// session state, loss curve, and log tail as they arrive.
package watch

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/monitor"
	"github.com/mirqab/mirqab/internal/ui"
)

// connState tracks the dashboard's connection to the monitor.
type connState int

const (
	stateConnecting connState = iota
	stateLive
	stateLost
)

// spinnerInterval is the animation frame rate for the training glyph.
const spinnerInterval = 150 * time.Millisecond

// maxLogLines bounds the log tail kept in memory. Larger than the
// server's history cap so scrollback survives a reconnect snapshot.
const maxLogLines = 200

// Model is the Bubble Tea model for the watch dashboard.
type Model struct {
	client *Client

	// reconnectEvery is the delay before redialing a lost connection.
	// Zero disables auto-reconnect; r still redials manually.
	reconnectEvery time.Duration

	conn    connState
	connErr error

	// Streaming state: the active event channel and its cancel func.
	events <-chan StreamEvent
	cancel context.CancelFunc

	state      monitor.TrainingState
	haveState  bool
	logs       []monitor.LogEntry
	lastUpdate time.Time

	width  int
	height int

	// Log tail viewport for scrollable content
	logView       viewport.Model
	viewportReady bool

	spin         ui.SpinnerComponent
	spinnerFrame int
	showHelp     bool
	quitting     bool
}

// connectedMsg reports a successful subscription to the event stream.
type connectedMsg struct {
	events <-chan StreamEvent
	cancel context.CancelFunc
}

// connectFailedMsg reports a failed connection attempt.
type connectFailedMsg struct {
	err error
}

// streamEventMsg carries one decoded event off the stream.
type streamEventMsg StreamEvent

// streamClosedMsg signals that the event channel closed.
type streamClosedMsg struct{}

// reconnectMsg fires after the auto-reconnect delay elapses.
type reconnectMsg struct{}

// spinnerTickMsg signals a training-glyph animation frame update.
type spinnerTickMsg time.Time

func newConnectSpinner() ui.SpinnerComponent {
	sp := ui.NewSpinnerComponent("Connecting to training monitor")
	sp.Start()
	return sp
}

// NewModel creates a dashboard model that watches through the given client.
// reconnectEvery sets how long to wait before redialing a lost connection;
// zero disables auto-reconnect.
func NewModel(client *Client, reconnectEvery time.Duration) Model {
	return Model{
		client:         client,
		reconnectEvery: reconnectEvery,
		conn:           stateConnecting,
		spin:           newConnectSpinner(),
	}
}

// Init dials the monitor and starts the animation timers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.connectCmd(),
		m.spin.Init(),
		m.spinnerTickCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		// Unhandled keys scroll the log viewport.
		if m.viewportReady {
			var cmd tea.Cmd
			m.logView, cmd = m.logView.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case spinnerTickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10000
		return m, m.spinnerTickCmd()

	case connectedMsg:
		// A stray earlier stream (double refresh) gets dropped before the
		// new one takes over.
		m.releaseStream()
		m.events = msg.events
		m.cancel = msg.cancel
		m.conn = stateLive
		m.connErr = nil
		m.spin.Success()
		return m, m.pollEventsCmd()

	case connectFailedMsg:
		m.conn = stateLost
		m.connErr = msg.err
		m.spin.Fail()
		return m, m.scheduleReconnectCmd()

	case streamEventMsg:
		ev := StreamEvent(msg)
		m.lastUpdate = time.Now()
		switch ev.Kind {
		case EventState:
			m.haveState = true
			m.state = ev.State
			// Snapshots carry the authoritative log ring.
			m.setLogs(ev.State.Logs)
		case EventLogLine:
			m.appendLog(ev.Entry)
		}
		return m, m.pollEventsCmd()

	case streamClosedMsg:
		if m.quitting || m.conn == stateConnecting {
			// Either we are tearing down or a fresh connect is already in
			// flight; nothing to report.
			return m, nil
		}
		m.releaseStream()
		m.conn = stateLost
		m.connErr = errors.New(errors.ErrTransport,
			"Event stream closed by the server",
			"Press r to reconnect.")
		return m, m.scheduleReconnectCmd()

	case reconnectMsg:
		// Stale timers fire after a manual r or a quit; only a connection
		// still marked lost gets redialed.
		if m.quitting || m.conn != stateLost {
			return m, nil
		}
		return m, m.startReconnect()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// connectCmd dials the monitor's event stream in the background.
func (m Model) connectCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		events, err := client.Stream(ctx)
		if err != nil {
			cancel()
			return connectFailedMsg{err: err}
		}
		return connectedMsg{events: events, cancel: cancel}
	}
}

// startReconnect drops the current stream (if any) and dials again. On a
// live connection this re-fetches the snapshot; after a drop it is the
// reconnect path.
func (m *Model) startReconnect() tea.Cmd {
	m.releaseStream()
	m.conn = stateConnecting
	m.connErr = nil
	m.spin = newConnectSpinner()
	return tea.Batch(m.connectCmd(), m.spin.Init())
}

// scheduleReconnectCmd arms the auto-reconnect timer, or returns nil when
// auto-reconnect is disabled.
func (m Model) scheduleReconnectCmd() tea.Cmd {
	if m.reconnectEvery <= 0 {
		return nil
	}
	return tea.Tick(m.reconnectEvery, func(time.Time) tea.Msg {
		return reconnectMsg{}
	})
}

// pollEventsCmd returns a command that receives the next streaming event.
func (m Model) pollEventsCmd() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg(ev)
	}
}

// spinnerTickCmd returns a command that advances the training glyph.
func (m Model) spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// releaseStream cancels the active subscription, if any.
func (m *Model) releaseStream() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.events = nil
}

// setLogs replaces the log tail with the snapshot's ring.
func (m *Model) setLogs(entries []monitor.LogEntry) {
	if len(entries) > maxLogLines {
		entries = entries[len(entries)-maxLogLines:]
	}
	m.logs = append(m.logs[:0], entries...)
	m.refreshLogView()
}

// appendLog adds one entry to the tail, trimming to the cap.
func (m *Model) appendLog(entry monitor.LogEntry) {
	m.logs = append(m.logs, entry)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
	m.refreshLogView()
}

// refreshLogView re-renders the viewport content, keeping the tail pinned
// to the bottom when it was already there.
func (m *Model) refreshLogView() {
	if !m.viewportReady {
		return
	}
	follow := m.logView.AtBottom()
	m.logView.SetContent(m.renderLogLines(m.logView.Width))
	if follow {
		m.logView.GotoBottom()
	}
}

// resizeViewport sizes the log viewport to the space left under the header
// and metric sections.
func (m *Model) resizeViewport() {
	width := m.layoutWidth() - 4 // Inside the section borders
	if width < 10 {
		width = 10
	}

	height := m.height - chromeRows
	if height < 3 {
		height = 3
	}

	if !m.viewportReady {
		m.logView = viewport.New(width, height)
		m.viewportReady = true
	} else {
		m.logView.Width = width
		m.logView.Height = height
	}
	m.refreshLogView()
}

// chromeRows is everything on screen that is not the log viewport: header,
// session and metrics sections, section borders, blanks, and footer.
const chromeRows = 18

// Layout bounds for the dashboard content column.
const (
	minContentWidth     = 48
	maxContentWidth     = 96
	defaultContentWidth = 72
)

// SecondsSinceUpdate returns how many seconds have passed since the last
// event arrived.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// layoutWidth returns the rendered content width for the current terminal.
func (m Model) layoutWidth() int {
	if m.width == 0 {
		return defaultContentWidth
	}
	w := m.width - 2
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < minContentWidth {
		w = minContentWidth
	}
	return w
}
