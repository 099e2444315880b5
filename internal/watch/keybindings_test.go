package watch

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirqab/mirqab/internal/monitor"
	"github.com/mirqab/mirqab/internal/ui"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyConstants(t *testing.T) {
	assert.Equal(t, "q", KeyQuit)
	assert.Equal(t, "ctrl+c", KeyQuitAlt)
	assert.Equal(t, "r", KeyRefresh)
	assert.Equal(t, "home", KeyScrollTop)
	assert.Equal(t, "end", KeyScrollEnd)
	assert.Equal(t, "esc", KeyCollapse)
	assert.Equal(t, "?", KeyToggleHelp)
}

func TestHandleKeyQuit(t *testing.T) {
	m := NewModel(testClient(), 0)

	handled, cmd := m.HandleKeyMsg(keyMsg("q"))

	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
}

func TestHandleKeyCtrlC(t *testing.T) {
	m := NewModel(testClient(), 0)

	handled, cmd := m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestHandleKeyQuitCancelsStream(t *testing.T) {
	m := NewModel(testClient(), 0)

	cancelled := false
	updated, _ := m.Update(connectedMsg{events: make(chan StreamEvent), cancel: func() { cancelled = true }})
	model := updated.(Model)

	handled, _ := model.HandleKeyMsg(keyMsg("q"))

	require.True(t, handled)
	assert.True(t, cancelled)
}

func TestHandleKeyRefreshReconnects(t *testing.T) {
	m := NewModel(testClient(), 0)
	m.conn = stateLost
	m.connErr = assert.AnError
	m.spin.Fail()

	handled, cmd := m.HandleKeyMsg(keyMsg("r"))

	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, stateConnecting, m.conn)
	assert.Nil(t, m.connErr)
	assert.Equal(t, ui.SpinnerComponentInProgress, m.spin.State)
}

func TestHandleKeyRefreshDropsLiveStream(t *testing.T) {
	m := NewModel(testClient(), 0)

	cancelled := false
	updated, _ := m.Update(connectedMsg{events: make(chan StreamEvent), cancel: func() { cancelled = true }})
	model := updated.(Model)

	handled, _ := model.HandleKeyMsg(keyMsg("r"))

	require.True(t, handled)
	assert.True(t, cancelled)
	assert.Equal(t, stateConnecting, model.conn)
}

func TestHandleKeyHelpToggle(t *testing.T) {
	m := NewModel(testClient(), 0)

	handled, _ := m.HandleKeyMsg(keyMsg("?"))
	require.True(t, handled)
	assert.True(t, m.showHelp)

	handled, _ = m.HandleKeyMsg(keyMsg("?"))
	require.True(t, handled)
	assert.False(t, m.showHelp)
}

func TestHandleKeyEscClosesHelp(t *testing.T) {
	m := NewModel(testClient(), 0)
	m.showHelp = true

	handled, _ := m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})

	require.True(t, handled)
	assert.False(t, m.showHelp)
}

func TestHandleKeyUnknownFallsThrough(t *testing.T) {
	m := NewModel(testClient(), 0)

	handled, cmd := m.HandleKeyMsg(keyMsg("x"))

	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestHomeEndJumpLogTail(t *testing.T) {
	m := NewModel(testClient(), 0)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model := updated.(Model)
	require.True(t, model.viewportReady)

	for i := 0; i < 40; i++ {
		model.appendLog(monitor.LogEntry{Timestamp: time.Now(), Level: "info", Message: "line"})
	}

	handled, _ := model.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyHome})
	require.True(t, handled)
	assert.True(t, model.logView.AtTop())

	handled, _ = model.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyEnd})
	require.True(t, handled)
	assert.True(t, model.logView.AtBottom())
}
