// Package apiclient wraps outbound HTTP traffic to the StorePulse backend.
// It attaches the bearer token from the credential store, classifies error
// responses centrally, and normalizes every failure into an *APIError.
//
// The client never mutates the credential store. On a 401 it invokes the
// registered session-invalid handler and leaves the logout cascade to the
// session controller.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/storepulse/storepulse-cli/credentials"
	"github.com/storepulse/storepulse-cli/notify"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every request unless overridden via WithTimeout.
const DefaultTimeout = 30 * time.Second

// Client dispatches requests to the StorePulse backend.
type Client struct {
	baseURL  string
	http     *http.Client
	store    credentials.Store
	notifier notify.Notifier
	limiter  *rate.Limiter
	metrics  *Metrics

	lock           sync.RWMutex
	sessionInvalid func()
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit throttles outbound requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithMetrics attaches Prometheus request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the given base URL, reading the bearer token from
// the provided store on every request.
func New(baseURL string, store credentials.Store, notifier notify.Notifier, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[apiclient.New] base URL is required")
	}
	if store == nil {
		return nil, errors.New("[apiclient.New] credential store is required")
	}
	if notifier == nil {
		return nil, errors.New("[apiclient.New] notifier is required")
	}

	client := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		store:    store,
		notifier: notifier,
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// OnSessionInvalid registers the handler invoked whenever any request comes
// back 401. The session controller registers its logout cascade here.
func (c *Client) OnSessionInvalid(fn func()) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.sessionInvalid = fn
}

func (c *Client) sessionInvalidHandler() func() {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.sessionInvalid
}

// do performs a request and decodes a 2xx body into out. Any failure is
// returned as *APIError so call sites see one consistent error shape.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &APIError{Message: err.Error()}
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: err.Error()}
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token, err := c.store.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(path, "transport", time.Since(start))
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.observe(path, statusClass(resp.StatusCode), time.Since(start))
	if err != nil {
		return &APIError{Message: err.Error()}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.classify(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Message: fmt.Sprintf("decoding %s response: %s", path, err)}
		}
	}
	return nil
}

// classify builds the normalized error and performs the cross-cutting side
// effects: the session-invalid event on 401 and the generic notifications
// for 401/403/5xx. All other statuses propagate silently; the caller owns
// the messaging.
func (c *Client) classify(status int, body []byte) error {
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		c.notifier.Error("Session expired. Please login again.")
		if fn := c.sessionInvalidHandler(); fn != nil {
			fn()
		}
	case status == http.StatusForbidden:
		c.notifier.Error("Access denied. You don't have permission for this action.")
	case status >= http.StatusInternalServerError:
		c.notifier.Error("Server error. Please try again later.")
	}

	return apiErr
}

func (c *Client) observe(path, class string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.RequestsTotal.WithLabelValues(path, class).Inc()
	c.metrics.RequestSeconds.WithLabelValues(path).Observe(elapsed.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
