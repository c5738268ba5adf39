// Package client is a typed HTTP client for the studydesk API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL    = "http://localhost:3333"
	defaultTimeout    = 15 * time.Second
	defaultRetryCount = 2
)

type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	RetryCount int
}

// Client talks to /api. It is safe for concurrent use; the bearer token and
// the signed-in user id are updated by Register and Login.
type Client struct {
	http *resty.Client

	mu     sync.RWMutex
	token  string
	userID string
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	} else if cfg.RetryCount == 0 {
		cfg.RetryCount = defaultRetryCount
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/api").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(retryIdempotentGET)

	return &Client{http: cli, token: strings.TrimSpace(cfg.Token)}
}

// GETs that change server state.
var noRetryPaths = []string{"/reminders/pending"}

// retryIdempotentGET retries GETs on transport errors and 5xx responses.
// A write that reached the server is never retried.
func retryIdempotentGET(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	if u, perr := url.Parse(resp.Request.URL); perr == nil {
		for _, p := range noRetryPaths {
			if strings.HasSuffix(u.Path, p) {
				return false
			}
		}
	}
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// UserID returns the id of the signed-in user, or "" before Register,
// Login or Me has succeeded.
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) setSession(token, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != "" {
		c.token = token
	}
	c.userID = userID
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (c *Client) do(req *resty.Request, method, path string, out interface{}) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if err := mapHTTPError(resp); err != nil {
		return err
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	req := c.request(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return c.do(req, http.MethodGet, path, out)
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.request(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return c.do(req, method, path, out)
}

// Health reports whether the server and its database are up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	resp, err := c.request(ctx).Get("/health")
	if err != nil {
		return nil, fmt.Errorf("GET /health: %w", err)
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &out, nil
}
