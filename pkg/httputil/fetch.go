package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/smartview/pkg/buildinfo"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/observability"
)

// DefaultMaxBytes limits the size of fetched documents.
const DefaultMaxBytes = 64 << 20

// Client downloads documents with retries.
type Client struct {
	http     *http.Client
	attempts int
	delay    time.Duration
	maxBytes int64
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the timeout of each attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetry sets the number of attempts and the first backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// WithMaxBytes limits the size of fetched documents.
func WithMaxBytes(n int64) Option {
	return func(c *Client) { c.maxBytes = n }
}

// NewClient returns a client making 3 attempts with a 1 second initial
// backoff.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		attempts: 3,
		delay:    time.Second,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the body of the document at rawURL. A 404 yields a
// NOT_FOUND error; exhausted retries yield a NETWORK_ERROR.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid URL")
	}

	var body []byte
	err = Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		body, err = c.get(ctx, u)
		return err
	})
	if err != nil {
		if IsRetryable(err) {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, u.Host, u.Path)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "%s not found", u)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, Retryable(fmt.Errorf("%s: %s", u, resp.Status))
	case resp.StatusCode >= 300:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: %s", u, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, Retryable(err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d bytes", u, c.maxBytes)
	}
	return body, nil
}
