// Package client talks to the varboard REST backend on behalf of the
// dashboard. It is the only package that performs network I/O.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"varboard/internal/logger"
	"varboard/internal/session"
)

// DefaultBaseURL is the backend every dashboard build talks to.
const DefaultBaseURL = "http://localhost:8080/api"

var (
	ErrLoginFailed      = errors.New("login failed")
	ErrVariableNotFound = errors.New("variable not found")
)

// HTTPTransport performs a single HTTP exchange. *http.Client satisfies it.
type HTTPTransport interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL   string
	transport HTTPTransport
	session   *session.Session
	log       logger.Logger
}

type Option func(*Client)

// WithBaseURL points the client at another backend. Tests only.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithTransport(transport HTTPTransport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		transport: &http.Client{},
		session:   sess,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the credential the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, authenticated bool) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", req.Method, req.URL.Path, err)
	}
	return resp, nil
}

// send performs a mutation. The response status is deliberately not
// inspected; only transport failures are returned.
func (c *Client) send(ctx context.Context, method, path string, body any) error {
	req, err := c.newRequest(ctx, method, path, body, true)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		c.log.WithFields(map[string]interface{}{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Debugf("backend answered %s", strings.TrimSpace(string(raw)))
		return nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// fetch performs an authenticated GET and returns the raw body.
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}
	return raw, nil
}
