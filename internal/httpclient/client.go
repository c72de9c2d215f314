package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/cesargomez89/mekkompis/internal/constants"
)

// Client wraps an http.Client to provide rate limiting and automatic retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	retries    int
	backoff    time.Duration
}

type Option func(*Client)

// WithRetry sets the number of attempts and the linear backoff step.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retries = attempts
		}
		c.backoff = backoff
	}
}

// NewClient creates a new rate-limited, retrying HTTP client. A zero
// minRequestInterval disables pacing.
func NewClient(httpClient *http.Client, minRequestInterval time.Duration, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	limit := rate.Inf
	if minRequestInterval > 0 {
		limit = rate.Every(minRequestInterval)
	}
	c := &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		retries:    constants.DefaultRetryCount,
		backoff:    constants.DefaultRetryBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes an HTTP request with rate-limiting and retries. Requests
// with a body are retried only when req.GetBody is set.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		attemptReq, err := c.prepare(ctx, req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(attemptReq)
		var wait time.Duration
		switch {
		case err != nil:
			lastErr = err
		case retryable(resp.StatusCode):
			wait = parseRetryAfter(resp)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("upstream unavailable (status %d)", resp.StatusCode)
		default:
			return resp, nil
		}

		if attempt == c.retries-1 {
			break
		}
		if req.Body != nil && req.GetBody == nil {
			break
		}

		backoffWait := time.Duration(attempt+1) * c.backoff
		if wait > backoffWait {
			backoffWait = wait
		}
		timer := time.NewTimer(backoffWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func (c *Client) prepare(ctx context.Context, req *http.Request, attempt int) (*http.Request, error) {
	out := req.Clone(ctx)
	if attempt == 0 || req.GetBody == nil {
		return out, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}
	out.Body = body
	return out, nil
}

// GetUnderlyingClient returns the underlying *http.Client.
func (c *Client) GetUnderlyingClient() *http.Client {
	return c.httpClient
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// parseRetryAfter reads a Retry-After header and returns the duration to wait.
func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}
