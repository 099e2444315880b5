package watch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/logger"
	"github.com/mirqab/mirqab/internal/monitor"
)

// EventKind discriminates the decoded events coming off the stream.
type EventKind int

const (
	// EventState carries a full training snapshot.
	EventState EventKind = iota
	// EventLogLine carries a single appended log entry.
	EventLogLine
)

// StreamEvent is one decoded server-sent event. Kind selects which of the
// payload fields is populated.
type StreamEvent struct {
	Kind  EventKind
	State monitor.TrainingState
	Entry monitor.LogEntry
}

// Client subscribes to a running monitor's event stream over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     logger.Logger
}

// NewClient creates a client for the monitor at baseURL, e.g.
// "http://localhost:5005".
func NewClient(baseURL string, log logger.Logger) *Client {
	if log == nil {
		log = logger.Noop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client-level timeout: the event stream is long-lived.
		httpc: &http.Client{},
		log:   log,
	}
}

// BaseURL returns the monitor address this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health checks the monitor's health endpoint. A nil error means the server
// is up and answering.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return errors.Wrap(err, "Invalid monitor address")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("Could not reach training monitor at %s", c.baseURL),
			"Start one with 'mirqab serve', or check the address.")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // Best-effort drain so the connection can be reused

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrTransport,
			fmt.Sprintf("Monitor at %s returned HTTP %d", c.baseURL, resp.StatusCode),
			"Check that the address points at a mirqab server.")
	}
	return nil
}

// Stream opens the event subscription and delivers decoded events until ctx
// is cancelled or the server closes the stream. The returned channel is
// closed when the stream ends. Connection failures are reported
// synchronously; mid-stream errors just close the channel, so callers that
// want to stay live should reconnect.
func (c *Client) Stream(ctx context.Context) (<-chan StreamEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events", nil)
	if err != nil {
		return nil, errors.Wrap(err, "Invalid monitor address")
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("Could not connect to training monitor at %s", c.baseURL),
			"Start one with 'mirqab serve', or point --addr at a running server.")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New(errors.ErrTransport,
			fmt.Sprintf("Monitor at %s returned HTTP %d", c.baseURL, resp.StatusCode),
			"Check that the address points at a mirqab server.")
	}

	events := make(chan StreamEvent, 16)
	go func() {
		defer close(events)
		defer resp.Body.Close()
		c.read(ctx, resp.Body, events)
	}()

	return events, nil
}

// read parses SSE frames off the response body and sends decoded events.
// Returns when the body errors out (server gone, or cancellation closing
// the connection) or ctx is done.
func (c *Client) read(ctx context.Context, body io.Reader, events chan<- StreamEvent) {
	var (
		name string
		data []byte
	)

	scanner := bufio.NewScanner(body)
	// Snapshots carry the full log ring and metric histories; give frames
	// plenty of headroom over the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			// Blank line terminates a frame.
			if name != "" && len(data) > 0 {
				if ev, ok := c.decode(name, data); ok {
					select {
					case events <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
			name, data = "", nil

		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))

		case strings.HasPrefix(line, "data:"):
			chunk := strings.TrimPrefix(line, "data:")
			chunk = strings.TrimPrefix(chunk, " ")
			// Multi-line data fields join with a newline per the SSE spec.
			if len(data) > 0 {
				data = append(data, '\n')
			}
			data = append(data, chunk...)

		case strings.HasPrefix(line, ":"):
			// Comment / keepalive, ignore.
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		c.log.Debug("event stream read ended: %v", err)
	}
}

// decode turns a raw frame into a StreamEvent. Unknown event names and
// malformed payloads are skipped so one bad frame can't kill the stream.
func (c *Client) decode(name string, data []byte) (StreamEvent, bool) {
	switch name {
	case monitor.EventStatus:
		var state monitor.TrainingState
		if err := json.Unmarshal(data, &state); err != nil {
			c.log.Debug("skipping malformed %s frame: %v", name, err)
			return StreamEvent{}, false
		}
		return StreamEvent{Kind: EventState, State: state}, true

	case monitor.EventLog:
		var entry monitor.LogEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			c.log.Debug("skipping malformed %s frame: %v", name, err)
			return StreamEvent{}, false
		}
		return StreamEvent{Kind: EventLogLine, Entry: entry}, true

	default:
		return StreamEvent{}, false
	}
}
