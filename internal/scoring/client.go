// Package scoring is the boundary adapter to the remote prioritization
// service. It submits task requests, parses scored tasks and reports
// failures as typed errors. It never retries.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/version"
)

// DefaultBaseURL is where the scoring service listens in a local setup.
const DefaultBaseURL = "http://127.0.0.1:8000/api/tasks"

// Client talks to the scoring service.
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. The default has no timeout:
// once issued, a request runs until it completes or fails.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{},
		userAgent: version.UserAgent(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "scoring_client")
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type analyzeResponse struct {
	Task          *task.Request `json:"task" validate:"required"`
	PriorityScore *float64      `json:"priority_score" validate:"required"`
}

type suggestion struct {
	task.Request
	PriorityScore *float64 `json:"priority_score" validate:"required"`
}

// Analyze validates req locally, submits it and returns the scored task.
func (c *Client) Analyze(ctx context.Context, req task.Request) (task.Scored, error) {
	if err := req.Validate(); err != nil {
		return task.Scored{}, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return task.Scored{}, fmt.Errorf("encoding request: %w", err)
	}
	return c.AnalyzeRaw(ctx, body)
}

// AnalyzeRaw submits an already encoded request body unchanged. The service
// is the authority on field validity.
func (c *Client) AnalyzeRaw(ctx context.Context, payload json.RawMessage) (task.Scored, error) {
	body, err := c.do(ctx, http.MethodPost, "/analyze/", payload)
	if err != nil {
		return task.Scored{}, err
	}

	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return task.Scored{}, &ParseError{Err: err}
	}
	if err := task.Validator().Struct(resp); err != nil {
		return task.Scored{}, &ParseError{Err: err}
	}

	return task.Scored{Request: *resp.Task, PriorityScore: *resp.PriorityScore}, nil
}

// Suggest fetches the service's suggested tasks. An empty list is a valid
// answer meaning nothing has been analyzed yet.
func (c *Client) Suggest(ctx context.Context) ([]task.Scored, error) {
	body, err := c.do(ctx, http.MethodGet, "/suggest/", nil)
	if err != nil {
		return nil, err
	}

	var items []suggestion
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &ParseError{Err: err}
	}

	out := make([]task.Scored, 0, len(items))
	for i, it := range items {
		if err := task.Validator().Struct(it); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("suggestion %d: %w", i, err)}
		}
		out = append(out, task.Scored{Request: it.Request, PriorityScore: *it.PriorityScore})
	}
	return out, nil
}

// do performs one round trip and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Debug("scoring request failed", "method", method, "url", url, "error", err)
		return nil, &NetworkError{Op: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: method, URL: url, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logger.Debug("scoring request completed",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &BackendError{StatusCode: resp.StatusCode, Payload: rawPayload(body)}
	}
	return body, nil
}
