package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultHost is the default address of a local Ollama server.
const DefaultHost = "http://localhost:11434"

// DefaultProbeTimeout bounds a single reachability probe.
const DefaultProbeTimeout = 5 * time.Second

// DefaultProbeMaxElapsed bounds the total time spent probing before
// the server is reported unreachable.
const DefaultProbeMaxElapsed = 10 * time.Second

// API endpoints.
const (
	tagsPath     = "/api/tags"
	showPath     = "/api/show"
	pullPath     = "/api/pull"
	generatePath = "/api/generate"
)

// Client is a typed HTTP client for a local Ollama server.
//
// Requests other than reachability probes carry no timeout: generation and
// model pulls legitimately run for minutes, so cancellation is left to the
// caller's context.
type Client struct {
	client          *http.Client
	host            string
	probeTimeout    time.Duration
	probeMaxElapsed time.Duration
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	// Host is the server base URL. Defaults to DefaultHost.
	Host string

	// HTTPClient overrides the underlying client. The default carries
	// no timeout.
	HTTPClient *http.Client

	// ProbeTimeout bounds a single Ping attempt.
	ProbeTimeout time.Duration

	// ProbeMaxElapsed bounds the total Ping retry window.
	ProbeMaxElapsed time.Duration
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:          cfg.HTTPClient,
		host:            strings.TrimSuffix(cfg.Host, "/"),
		probeTimeout:    cfg.ProbeTimeout,
		probeMaxElapsed: cfg.ProbeMaxElapsed,
	}

	if c.client == nil {
		c.client = &http.Client{}
	}
	if c.host == "" {
		c.host = DefaultHost
	}
	if c.probeTimeout <= 0 {
		c.probeTimeout = DefaultProbeTimeout
	}
	if c.probeMaxElapsed <= 0 {
		c.probeMaxElapsed = DefaultProbeMaxElapsed
	}

	return c
}

// Host returns the server base URL.
func (c *Client) Host() string {
	return c.host
}

// Ping verifies that the server answers on the model listing endpoint,
// retrying with exponential backoff until the probe window elapses. A non-OK
// HTTP status counts as a failed probe.
func (c *Client) Ping(ctx context.Context) error {
	op := func() error {
		probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
		defer cancel()
		return c.get(probeCtx, tagsPath, nil)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxElapsedTime = c.probeMaxElapsed

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("pinging ollama at %s: %w", c.host, err)
	}
	return nil
}

// ModelInfo describes a locally available model.
type ModelInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Models returns the models available on the server.
func (c *Client) Models(ctx context.Context) ([]ModelInfo, error) {
	var resp struct {
		Models []ModelInfo `json:"models"`
	}
	if err := c.get(ctx, tagsPath, &resp); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// HasModel reports whether the named model is available locally. A missing
// model is not an error.
func (c *Client) HasModel(ctx context.Context, model string) (bool, error) {
	body := map[string]string{"name": model}
	err := c.post(ctx, showPath, body, nil)
	if err != nil {
		if IsModelNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Pull downloads the named model to the server. It blocks until the pull
// completes, which can take minutes for large models.
func (c *Client) Pull(ctx context.Context, model string) error {
	body := map[string]any{"name": model, "stream": false}

	var resp struct {
		Status string `json:"status"`
	}
	if err := c.post(ctx, pullPath, body, &resp); err != nil {
		return fmt.Errorf("pulling model %s: %w", model, err)
	}
	if resp.Status != "success" {
		return fmt.Errorf("pulling model %s: status %q", model, resp.Status)
	}
	return nil
}

// GenerateOptions are model parameters for a generation request.
type GenerateOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// GenerateRequest is a completion request.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`

	// Format constrains the output; "json" forces valid JSON.
	Format string `json:"format,omitempty"`

	Stream  bool             `json:"stream"`
	Options *GenerateOptions `json:"options,omitempty"`
}

// GenerateResponse is a completed generation.
type GenerateResponse struct {
	Model         string `json:"model"`
	Response      string `json:"response"`
	Done          bool   `json:"done"`
	TotalDuration int64  `json:"total_duration,omitempty"`
}

// Generate runs a completion request and waits for the full response.
// Streaming is always disabled.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	req.Stream = false

	var resp GenerateResponse
	if err := c.post(ctx, generatePath, req, &resp); err != nil {
		return nil, fmt.Errorf("generating with model %s: %w", req.Model, err)
	}
	return &resp, nil
}

// get performs a GET request and decodes the response into result.
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post performs a POST request and decodes the response into result.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.parseError(resp, path)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode ollama response: %w", err)
	}
	return nil
}

// parseError parses an error response into an APIError.
func (c *Client) parseError(resp *http.Response, path string) error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   path,
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
