// Package fetch performs JSON GET requests bounded by a cancellation timer.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout is used when neither the client nor the call sets one.
const DefaultTimeout = 4 * time.Second

// ErrTimeout is matched by errors.Is when a request was aborted by its timer.
var ErrTimeout = errors.New("request aborted: timeout")

// HTTPError is returned for responses outside the 2xx range.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Status)
}

// stopper is the part of *time.Timer the client needs.
type stopper interface {
	Stop() bool
}

// afterFunc arms the abort timer. Tests replace it to observe that timers are released.
var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Client issues JSON requests.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option customizes a single request.
type Option func(*requestOptions)

type requestOptions struct {
	timeout time.Duration
}

// WithTimeout overrides the client's timeout for one request.
func WithTimeout(d time.Duration) Option {
	return func(o *requestOptions) { o.timeout = d }
}

// New creates a Client. A nil httpClient uses http.DefaultClient and a
// non-positive timeout uses DefaultTimeout.
func New(httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{httpClient: httpClient, timeout: timeout}
}

// JSON fetches url and decodes the response body into v.
//
// The request is aborted when the timeout elapses first; the returned error
// then matches ErrTimeout. Non-2xx responses return *HTTPError. Decode
// errors are returned as-is.
func (c *Client) JSON(ctx context.Context, url string, v any, opts ...Option) error {
	o := requestOptions{timeout: c.timeout}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	timer := afterFunc(o.timeout, func() { cancel(ErrTimeout) })
	defer timer.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if cause := context.Cause(ctx); errors.Is(cause, ErrTimeout) {
			return fmt.Errorf("GET %s: %w", url, ErrTimeout)
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if cause := context.Cause(ctx); errors.Is(cause, ErrTimeout) {
			return fmt.Errorf("GET %s: %w", url, ErrTimeout)
		}
		return err
	}
	return nil
}
