// Package client sends message.Request values over net/http.
//
// It applies the wire header rules (default Content-Type, computed
// Content-Length, default User-Agent) and returns every response as a
// message.Response, including 4xx and 5xx ones. Connections are not reused.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/wirestub/pkg/logging"
	"github.com/getmockd/wirestub/pkg/message"
	"github.com/getmockd/wirestub/pkg/wire"
)

// DefaultTimeout bounds a whole exchange.
const DefaultTimeout = 30 * time.Second

// Client issues requests. The zero value is not usable; call New.
type Client struct {
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New returns a client with keep-alives disabled.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: &http.Transport{DisableKeepAlives: true},
		},
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get sends req with GET.
func (c *Client) Get(ctx context.Context, req *message.Request) (*message.Response, error) {
	return c.Do(ctx, http.MethodGet, req)
}

// Post sends req with POST.
func (c *Client) Post(ctx context.Context, req *message.Request) (*message.Response, error) {
	return c.Do(ctx, http.MethodPost, req)
}

// Put sends req with PUT.
func (c *Client) Put(ctx context.Context, req *message.Request) (*message.Response, error) {
	return c.Do(ctx, http.MethodPut, req)
}

// Delete sends req with DELETE.
func (c *Client) Delete(ctx context.Context, req *message.Request) (*message.Response, error) {
	return c.Do(ctx, http.MethodDelete, req)
}

// Head sends req with HEAD.
func (c *Client) Head(ctx context.Context, req *message.Request) (*message.Response, error) {
	return c.Do(ctx, http.MethodHead, req)
}

// Do sends req with method. The request target must be an absolute URL.
// An error is returned only when no response was received.
func (c *Client) Do(ctx context.Context, method string, req *message.Request) (*message.Response, error) {
	enc := wire.Encode(method, req)

	var body io.Reader = http.NoBody
	if len(enc.Body) > 0 {
		body = bytes.NewReader(enc.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, enc.Method, enc.Target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.ContentLength = int64(len(enc.Body))
	for _, f := range enc.Headers.Fields() {
		switch {
		case strings.EqualFold(f.Name, message.HeaderContentLength):
		case strings.EqualFold(f.Name, message.HeaderHost):
			httpReq.Host = f.Value
		default:
			httpReq.Header.Add(f.Name, f.Value)
		}
	}

	c.log.Debug("sending request", "method", enc.Method, "url", enc.Target, "bytes", len(enc.Body))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", enc.Method, enc.Target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	c.log.Debug("received response", "status", resp.StatusCode, "bytes", len(data))

	return message.NewResponse(resp.StatusCode, reason, message.HeadersFromMap(resp.Header), data), nil
}
