// Package ollama is a small client for the local Ollama daemon's HTTP API.
// It covers the endpoints mirqab needs: listing, showing and pulling
// models, plus generate and chat in both buffered and streaming form.
// Streaming responses are newline-delimited JSON; the final chunk of a
// stream has done=true.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/logger"
)

// DefaultURL is where a locally installed Ollama daemon listens.
const DefaultURL = "http://localhost:11434"

// Streaming chunks are small JSON objects, but a modelfile returned by
// /api/show can embed a large SYSTEM block, so give the line scanner room.
const maxLineSize = 1024 * 1024

// Client talks to one Ollama daemon. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewClient returns a client for the daemon at baseURL. Pass an empty
// baseURL to use DefaultURL. Blocking calls are bounded by the caller's
// context, not a client-wide timeout, so long model pulls don't get cut
// off mid-stream.
func NewClient(baseURL string, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// BaseURL returns the daemon address this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport,
			"Failed to build Ollama request",
			"Check the ollama.url setting in your .mirqab.yaml")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.connectError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp, "")
	}
	return nil
}

// List returns the models installed on the daemon.
func (c *Client) List(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Failed to build Ollama request",
			"Check the ollama.url setting in your .mirqab.yaml")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.connectError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp, "")
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, c.decodeError(err)
	}
	return list.Models, nil
}

// Show returns details for one installed model.
func (c *Client) Show(ctx context.Context, model string) (*ShowResponse, error) {
	resp, err := c.post(ctx, "/api/show", nameRequest{Name: model})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp, model)
	}

	var show ShowResponse
	if err := json.NewDecoder(resp.Body).Decode(&show); err != nil {
		return nil, c.decodeError(err)
	}
	return &show, nil
}

// Generate runs a prompt against a model and returns the complete
// response in one piece.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	req.Stream = false

	resp, err := c.post(ctx, "/api/generate", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp, req.Model)
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, c.decodeError(err)
	}
	return &out, nil
}

// GenerateStream runs a prompt and invokes fn for each response chunk,
// including the final done=true chunk. Returning an error from fn stops
// the stream and returns that error.
func (c *Client) GenerateStream(ctx context.Context, req GenerateRequest, fn func(GenerateResponse) error) error {
	req.Stream = true

	resp, err := c.post(ctx, "/api/generate", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp, req.Model)
	}

	return c.eachLine(resp.Body, func(line []byte) (bool, error) {
		var chunk GenerateResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return false, c.decodeError(err)
		}
		if err := fn(chunk); err != nil {
			return false, err
		}
		return chunk.Done, nil
	})
}

// Chat runs a conversation against a model and returns the complete
// reply in one piece.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.Stream = false

	resp, err := c.post(ctx, "/api/chat", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp, req.Model)
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, c.decodeError(err)
	}
	return &out, nil
}

// ChatStream runs a conversation and invokes fn for each reply chunk,
// including the final done=true chunk.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest, fn func(ChatResponse) error) error {
	req.Stream = true

	resp, err := c.post(ctx, "/api/chat", req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp, req.Model)
	}

	return c.eachLine(resp.Body, func(line []byte) (bool, error) {
		var chunk ChatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return false, c.decodeError(err)
		}
		if err := fn(chunk); err != nil {
			return false, err
		}
		return chunk.Done, nil
	})
}

// Pull downloads a model, invoking fn for each progress chunk. A pull
// can take minutes, so bound it with the context if needed.
func (c *Client) Pull(ctx context.Context, model string, fn func(PullProgress) error) error {
	resp, err := c.post(ctx, "/api/pull", nameRequest{Name: model, Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp, model)
	}

	return c.eachLine(resp.Body, func(line []byte) (bool, error) {
		var progress PullProgress
		if err := json.Unmarshal(line, &progress); err != nil {
			return false, c.decodeError(err)
		}
		if err := fn(progress); err != nil {
			return false, err
		}
		return false, nil
	})
}

// post sends a JSON payload and returns the raw response. The caller
// owns the body.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Failed to encode Ollama request",
			"This is a bug in mirqab - please report it")
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTransport,
			"Failed to build Ollama request",
			"Check the ollama.url setting in your .mirqab.yaml")
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("POST %s", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.connectError(err)
	}
	return resp, nil
}

// eachLine feeds each non-empty NDJSON line to fn until fn reports the
// stream is done or the body ends.
func (c *Client) eachLine(body io.Reader, fn func(line []byte) (done bool, err error)) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		done, err := fn(line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport,
			"Lost connection to Ollama mid-stream",
			"Check that the Ollama daemon is still running")
	}
	return nil
}

// connectError turns a transport failure into an actionable error.
func (c *Client) connectError(err error) error {
	return errors.WrapWithCode(err, errors.ErrTransport,
		"Could not connect to Ollama at "+c.baseURL,
		"Make sure it's running with: ollama serve")
}

// apiError turns a non-200 response into an actionable error, consuming
// the body to surface the daemon's own message.
func (c *Client) apiError(resp *http.Response, model string) error {
	var detail errorResponse
	if body, err := io.ReadAll(io.LimitReader(resp.Body, maxLineSize)); err == nil {
		_ = json.Unmarshal(body, &detail)
	}

	if resp.StatusCode == http.StatusNotFound && model != "" {
		return errors.New(errors.ErrOllama,
			fmt.Sprintf("Model '%s' not found", model),
			fmt.Sprintf("Pull it first: ollama pull %s", model))
	}

	msg := detail.Error
	if msg == "" {
		msg = resp.Status
	}
	return errors.New(errors.ErrOllama,
		fmt.Sprintf("Ollama returned HTTP %d: %s", resp.StatusCode, msg),
		"Check the Ollama daemon logs for details")
}

// decodeError reports a response that wasn't the JSON we expected.
func (c *Client) decodeError(err error) error {
	return errors.WrapWithCode(err, errors.ErrOllama,
		"Unexpected response from Ollama",
		"Your Ollama may be too old for mirqab - check with: ollama -v")
}
