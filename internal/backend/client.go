// Package backend talks to the headless content backend that stores the CRM records.
package backend

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

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Observer receives per-request telemetry. *metrics.Collector satisfies it.
type Observer interface {
	BackendRequest(collection, method string, status int, d time.Duration)
	BackendRetry(collection string)
}

type nopObserver struct{}

func (nopObserver) BackendRequest(string, string, int, time.Duration) {}
func (nopObserver) BackendRetry(string)                               {}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit caps outbound requests. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRetry sets the retry policy for transient failures
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithTimeout bounds each request attempt
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithObserver attaches request telemetry
func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// Client is a REST client for the backend's /api/{collection} endpoints
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
	retry    RetryConfig
	timeout  time.Duration
	observer Observer
	logger   *zap.Logger
}

// NewClient creates a backend client. baseURL is the backend origin without the /api suffix.
func NewClient(baseURL, token string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry:    DefaultRetryConfig(),
		timeout:  15 * time.Second,
		observer: nopObserver{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches one page of a collection
func (c *Client) List(ctx context.Context, collection string, q *Query) (*ListEnvelope, error) {
	return c.ListPath(ctx, collection, "/api/"+collection, q)
}

// ListPath fetches a list from a custom endpoint such as /api/contacts/lead-company/{id}.
// collection only labels telemetry.
func (c *Client) ListPath(ctx context.Context, collection, path string, q *Query) (*ListEnvelope, error) {
	body, err := c.do(ctx, collection, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	return Normalize(body)
}

// Get fetches a single record. A missing record is reported as an *Error with status 404.
func (c *Client) Get(ctx context.Context, collection, id string, q *Query) (Record, error) {
	body, err := c.do(ctx, collection, http.MethodGet, recordPath(collection, id), q, nil)
	if err != nil {
		return nil, err
	}
	rec, err := NormalizeOne(body)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &Error{StatusCode: http.StatusNotFound, Method: http.MethodGet, Path: recordPath(collection, id)}
	}
	return rec, nil
}

// Create posts {"data": payload} and returns the created record
func (c *Client) Create(ctx context.Context, collection string, payload any) (Record, error) {
	body, err := c.do(ctx, collection, http.MethodPost, "/api/"+collection, nil, payload)
	if err != nil {
		return nil, err
	}
	return NormalizeOne(body)
}

// Update puts {"data": payload} and returns the updated record
func (c *Client) Update(ctx context.Context, collection, id string, payload any) (Record, error) {
	body, err := c.do(ctx, collection, http.MethodPut, recordPath(collection, id), nil, payload)
	if err != nil {
		return nil, err
	}
	return NormalizeOne(body)
}

// Delete removes a record
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	_, err := c.do(ctx, collection, http.MethodDelete, recordPath(collection, id), nil, nil)
	return err
}

// Ping checks backend reachability through the health endpoint
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "health", http.MethodGet, "/_health", nil, nil)
	return err
}

func recordPath(collection, id string) string {
	return "/api/" + collection + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, collection, method, path string, q *Query, payload any) ([]byte, error) {
	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(map[string]any{"data": payload})
		if err != nil {
			return nil, fmt.Errorf("backend: encode payload: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if q != nil {
		if enc := q.Encode(); enc != "" {
			endpoint += "?" + enc
		}
	}

	cfg := c.retry
	cfg.OnRetry = func(attempt int, err error) {
		c.observer.BackendRetry(collection)
		c.logger.Warn("Retrying backend request",
			zap.String("collection", collection),
			zap.String("method", method),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	// A create that timed out or got a 5xx may already be committed
	retryable := IsTransient
	if !isIdempotent(method) {
		retryable = IsSafeToResend
	}

	return retry(ctx, cfg, retryable, func(ctx context.Context) ([]byte, error) {
		return c.attempt(ctx, collection, method, endpoint, path, reqBody)
	})
}

func (c *Client) attempt(ctx context.Context, collection, method, endpoint, path string, reqBody []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("backend: rate limiter: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if reqBody != nil {
		body = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observer.BackendRequest(collection, method, 0, time.Since(start))
		return nil, fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.observer.BackendRequest(collection, method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("backend: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		be := &Error{StatusCode: resp.StatusCode, Method: method, Path: path}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil && eb.Error.Message != "" {
			be.Message = eb.Error.Message
		}
		return nil, be
	}
	return respBody, nil
}
