// Package client is the HTTP side of the paginated table: it talks to the
// storefront collection endpoints, validates every response envelope, and
// exposes collections as list providers and mutators.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JaimeStill/storefront/pkg/decode"
)

const (
	defaultBaseURL   = "http://127.0.0.1:8080/api"
	defaultUserAgent = "storefront-client/0.1"
	defaultTimeout   = 10 * time.Second
)

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is never
// modified; a timeout set with WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New builds a Client rooted at baseURL, e.g. "http://localhost:8080/api".
// A missing scheme defaults to http.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   base,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.http == nil:
		timeout := defaultTimeout
		if c.timeout > 0 {
			timeout = c.timeout
		}
		c.http = &http.Client{Timeout: timeout}
	case c.timeout > 0:
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do sends a request and returns the envelope data of a successful response.
// The returned data is nil when the envelope carries none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	reqURL := c.resolve(path, query)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	env, err := decode.JSON[envelope](resp.Body)
	if err != nil || env.Success == nil {
		if resp.StatusCode >= 400 {
			return nil, &TransportError{
				Method: method,
				URL:    reqURL,
				Status: resp.StatusCode,
				Err:    fmt.Errorf("%s", http.StatusText(resp.StatusCode)),
			}
		}
		if err == nil {
			err = fmt.Errorf("missing success flag")
		}
		return nil, invalid("%s %s: %v", method, path, err)
	}

	if !*env.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode >= 400 {
		return nil, invalid("%s %s: success with status %d", method, path, resp.StatusCode)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	return env.Data, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Get fetches path and decodes the envelope data into T.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T

	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return zero, err
	}
	if data == nil {
		return zero, invalid("GET %s: missing data", path)
	}

	v, err := decode.Raw[T](data)
	if err != nil {
		return zero, invalid("GET %s: %v", path, err)
	}
	return v, nil
}
