// Package ovh provides a signed HTTP client for the OVH REST API.
//
// Every authenticated request carries a SHA-1 signature over the request
// fields and a timestamp adjusted by the clock delta measured against the
// API server, so requests land inside the server's replay window.
package ovh

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// endpoints maps the known endpoint identifiers to their API base URLs.
// The identifiers and URLs are fixed by the OVH API and shared with the
// python-ovh configuration format.
var endpoints = map[string]string{
	"ovh-eu":        "https://eu.api.ovh.com/1.0",
	"ovh-us":        "https://api.us.ovhcloud.com/1.0",
	"ovh-ca":        "https://ca.api.ovh.com/1.0",
	"kimsufi-eu":    "https://eu.api.kimsufi.com/1.0",
	"kimsufi-ca":    "https://ca.api.kimsufi.com/1.0",
	"soyoustart-eu": "https://eu.api.soyoustart.com/1.0",
	"soyoustart-ca": "https://ca.api.soyoustart.com/1.0",
}

// Client is a signed HTTP client for the OVH API.
//
// A Client is safe for concurrent use: credentials and the base URL are
// immutable after construction and the clock delta is only touched
// atomically (see SyncTime).
type Client struct {
	baseURL     string
	appKey      string
	appSecret   string
	consumerKey string

	// timeDelta is local unix time minus server unix time, measured at
	// construction and re-measured only by SyncTime.
	timeDelta atomic.Int64

	now        func() int64
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the base URL resolved from the endpoint identifier
// (useful for testing with a mock server).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeSource replaces the local clock used for timestamps
// (useful for testing the skew arithmetic deterministically).
func WithTimeSource(now func() int64) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger installs a LoggingTransport that logs every request and
// response with the signing headers redacted.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given endpoint identifier and
// credential tuple. It issues one unauthenticated request to the server
// time endpoint to measure the clock delta; any failure there aborts
// construction, so a returned client is always fully initialized.
//
// An unknown endpoint identifier fails with ErrUnknownEndpoint.
func NewClient(ctx context.Context, endpoint, appKey, appSecret, consumerKey string, opts ...Option) (*Client, error) {
	base, ok := endpoints[endpoint]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}

	c := &Client{
		baseURL:     base,
		appKey:      appKey,
		appSecret:   appSecret,
		consumerKey: consumerKey,
		now:         func() int64 { return time.Now().Unix() },
		httpClient:  http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger != nil {
		// Wrap whatever transport is configured so the log layer sees
		// exactly what goes on the wire.
		c.httpClient = &http.Client{
			Transport: &LoggingTransport{Transport: c.httpClient.Transport, Logger: c.logger},
			Timeout:   c.httpClient.Timeout,
		}
	}

	if err := c.SyncTime(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// SyncTime re-measures the clock delta against the API server.
//
// The delta is otherwise fixed for the life of the client; callers holding
// a long-lived client can invoke this if system or server clocks have
// drifted enough for signatures to be rejected.
func (c *Client) SyncTime(ctx context.Context) error {
	resp, err := c.GetUnauth(ctx, "/auth/time")
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	body := strings.TrimSpace(string(resp.Body))
	serverTime, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return fmt.Errorf("ovh: parse server time %q: %w", body, err)
	}

	c.timeDelta.Store(c.now() - serverTime)
	return nil
}

// TimeDelta returns the recorded clock delta in seconds.
func (c *Client) TimeDelta() int64 {
	return c.timeDelta.Load()
}

// Get performs a signed GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, true)
}

// GetUnauth performs a GET request without signature headers. The API only
// accepts this on public endpoints such as the server time endpoint.
func (c *Client) GetUnauth(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, false)
}

// Post performs a signed POST request with a JSON-encoded payload.
func (c *Client) Post(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ovh: encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body, true)
}

// PostEmpty performs a signed POST request with an empty body, as required
// by action endpoints such as the zone refresh.
func (c *Client) PostEmpty(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, true)
}

// Put performs a signed PUT request with a JSON-encoded payload.
func (c *Client) Put(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ovh: encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, body, true)
}

// Delete performs a signed DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, true)
}

// do builds, signs, and executes one request. The response body is read in
// full before returning so the Response can be inspected freely and the
// connection is released for reuse. Status codes are not interpreted here;
// callers decide what counts as failure.
func (c *Client) do(ctx context.Context, method, path string, body []byte, auth bool) (*Response, error) {
	url := c.baseURL + path

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("ovh: build request: %w", err)
	}

	req.Header.Set("X-Ovh-Application", c.appKey)
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	if auth {
		timestamp := strconv.FormatInt(c.now()+c.timeDelta.Load(), 10)
		req.Header.Set("X-Ovh-Consumer", c.consumerKey)
		req.Header.Set("X-Ovh-Timestamp", timestamp)
		req.Header.Set("X-Ovh-Signature", Sign(c.appSecret, c.consumerKey, method, url, string(body), timestamp))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ovh: %s %s: %w", method, url, err)
	}
	defer func() {
		//nolint:errcheck
		resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ovh: read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// Response is a fully-read HTTP response from the API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Err returns an *APIError when the status code is outside the 2xx range,
// nil otherwise.
func (r *Response) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	return &APIError{StatusCode: r.StatusCode, Body: r.Body}
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("ovh: decode response: %w", err)
	}
	return nil
}
