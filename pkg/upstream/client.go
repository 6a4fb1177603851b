package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
	"github.com/aurelia-jewels/storefront-gateway/pkg/metrics"
)

const errorBodyReadLimit int64 = 1024

var (
	errBaseURLRequired = errors.New("upstream base url is required")
	errLoggerRequired  = errors.New("upstream logger is required")
)

// Client is the typed REST client for the commerce API. Every authoritative
// collection the gateway mirrors is fetched and mutated through it; the
// session token is forwarded verbatim and never inspected.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics attaches upstream call instrumentation.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTimeout replaces the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds the commerce API client for the given base URL.
func NewClient(baseURL string, logg *logger.Logger, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return client, nil
}

// envelope is the upstream's standard response wrapper. Endpoint-specific
// payloads live in Data or in one of the legacy top-level fields.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`

	Orders json.RawMessage `json:"orders,omitempty"`
	Order  json.RawMessage `json:"order,omitempty"`
	Users  json.RawMessage `json:"users,omitempty"`
	Files  json.RawMessage `json:"files,omitempty"`
}

// do executes one upstream call and decodes the response envelope. A nil
// token means the endpoint is public (auth endpoints).
func (c *Client) do(ctx context.Context, op, method, path, token string, body any) (*envelope, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("marshal %s request", op))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("build %s request", op))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(ctx, op, req, token)
}

func (c *Client) send(ctx context.Context, op string, req *http.Request, token string) (*envelope, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(op)
		callErr := &CallError{Operation: op, cause: err}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, callErr, fmt.Sprintf("execute %s request", op))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.IncFailure(op)
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, c.wrapCallError(op, resp.StatusCode, strings.TrimSpace(string(msg)), nil)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.metrics.IncFailure(op)
		callErr := &CallError{Operation: op, Status: resp.StatusCode, cause: err}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, callErr, fmt.Sprintf("decode %s response", op))
	}

	c.metrics.IncSuccess(op)
	c.logger.Debug(c.logger.WithFields(ctx, map[string]any{
		"operation": op,
		"status":    resp.StatusCode,
	}), "upstream.call")
	return &env, nil
}

// decodeField unmarshals one envelope section into out, failing fast on
// malformed payloads instead of rendering placeholders downstream.
func (c *Client) decodeField(op string, raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		callErr := &CallError{Operation: op, Body: "missing payload field"}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, callErr, fmt.Sprintf("%s returned no payload", op))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		callErr := &CallError{Operation: op, cause: err}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, callErr, fmt.Sprintf("decode %s payload", op))
	}
	return nil
}

// upload posts one file as multipart form data to the given path.
func (c *Client) upload(ctx context.Context, op, path, token, field, filename string, content io.Reader) (*envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("build %s form", op))
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("copy %s payload", op))
	}
	if err := writer.Close(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("finalize %s form", op))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), &buf)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("build %s request", op))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(ctx, op, req, token)
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}

func escapePath(segment string) string {
	return url.PathEscape(segment)
}
