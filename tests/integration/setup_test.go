// Package integration exercises the monitor stack end to end: the
// producer API feeding the store and broadcaster, the gin gateway
// serving snapshots and the SSE stream, and the watch client consuming
// that stream the way the TUI does. Everything runs in-process on an
// ephemeral port; only the Ollama tests need anything external.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/monitor"
	"github.com/mirqab/mirqab/internal/server"
)

// startStack brings up a monitor and its HTTP gateway with default
// config. The returned URL is ready for clients; the stack is torn down
// with the test.
func startStack(t *testing.T) (*monitor.Monitor, string) {
	t.Helper()

	cfg := config.DefaultConfig()
	mon := monitor.New(cfg.History.Limit, cfg.Server.QueueSize, nil)
	srv := server.New(cfg, mon, nil)

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(func() {
		// Detach first so open SSE handlers return before Close waits
		// on them.
		mon.DetachAll()
		ts.Close()
	})

	return mon, ts.URL
}

// getStatus pulls the snapshot endpoint and decodes it.
func getStatus(t *testing.T, baseURL string) monitor.TrainingState {
	t.Helper()

	resp, err := http.Get(baseURL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state monitor.TrainingState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

// httpGetJSON fetches url and decodes the JSON body into out, returning
// the HTTP status code.
func httpGetJSON(url string, out interface{}) (int, error) {
	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

// RequireOllama skips the test unless a real Ollama server is
// configured. Set MIRQAB_TEST_OLLAMA_HOST (e.g. http://localhost:11434)
// to run these.
func RequireOllama(t *testing.T) string {
	t.Helper()

	host := os.Getenv("MIRQAB_TEST_OLLAMA_HOST")
	if host == "" {
		t.Skip("Skipping: MIRQAB_TEST_OLLAMA_HOST not set (no Ollama server available)")
	}
	return host
}
