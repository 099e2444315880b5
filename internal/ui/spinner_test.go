package ui

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput returns an output func and a getter for everything written.
func captureOutput() (func(string), func() string) {
	var mu sync.Mutex
	var sb strings.Builder

	write := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		sb.WriteString(s)
	}
	read := func() string {
		mu.Lock()
		defer mu.Unlock()
		return sb.String()
	}
	return write, read
}

func TestNewSpinnerStartsPending(t *testing.T) {
	s := NewSpinner("Writing conversations")
	assert.Equal(t, SpinnerPending, s.State())
	assert.Equal(t, "Writing conversations", s.Label())
	assert.Equal(t, int64(0), int64(s.Elapsed()))
}

func TestSpinnerSuccess(t *testing.T) {
	write, read := captureOutput()

	s := NewSpinner("Writing conversations")
	s.SetOutput(write)
	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())

	s.Success()
	assert.Equal(t, SpinnerSuccess, s.State())

	out := stripAnsi(read())
	assert.Contains(t, out, "Writing conversations")
	assert.Contains(t, out, SymbolSuccess)
}

func TestSpinnerFail(t *testing.T) {
	write, read := captureOutput()

	s := NewSpinner("Pulling model")
	s.SetOutput(write)
	s.Start()
	s.Fail()

	assert.Equal(t, SpinnerFailed, s.State())
	assert.Contains(t, stripAnsi(read()), SymbolFail)
}

func TestSpinnerStopIdempotent(t *testing.T) {
	write, _ := captureOutput()

	s := NewSpinner("Working")
	s.SetOutput(write)
	s.Start()

	require.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}

func TestSpinnerStartWhileRunning(t *testing.T) {
	write, _ := captureOutput()

	s := NewSpinner("Working")
	s.SetOutput(write)
	s.Start()
	s.Start() // second call is a no-op
	s.Stop()

	assert.Equal(t, SpinnerInProgress, s.State())
}

func TestSpinnerSetLabel(t *testing.T) {
	s := NewSpinner("Before")
	s.SetLabel("After")
	assert.Equal(t, "After", s.Label())
}

func TestSpinnerElapsedAfterStart(t *testing.T) {
	write, _ := captureOutput()

	s := NewSpinner("Working")
	s.SetOutput(write)
	s.Start()
	defer s.Stop()

	assert.Greater(t, int64(s.Elapsed()), int64(0))
}
