package status

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"homepage/internal/models"
	"homepage/internal/urlutil"
)

const (
	// ProbeTimeout bounds a single probe.
	ProbeTimeout = 5000 * time.Millisecond
	// SlowThreshold is the elapsed time at which a reachable target counts as slow.
	SlowThreshold = 900 * time.Millisecond
	// CacheBustParam carries the request timestamp on every probe.
	CacheBustParam = "_status"
)

// Prober checks whether a URL answers.
type Prober interface {
	Probe(ctx context.Context, url string) models.ProbeResult
}

// HTTPProber probes with a GET request. Only transport-level success counts:
// any HTTP status, including 5xx, is a reachable target.
type HTTPProber struct {
	httpClient *http.Client
	timeout    time.Duration
	now        func() time.Time
}

// NewHTTPProber creates a prober. A nil client gets a dedicated one that
// follows at most five redirects; a non-positive timeout uses ProbeTimeout.
func NewHTTPProber(httpClient *http.Client, timeout time.Duration) *HTTPProber {
	if httpClient == nil {
		httpClient = &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	if timeout <= 0 {
		timeout = ProbeTimeout
	}
	return &HTTPProber{httpClient: httpClient, timeout: timeout, now: time.Now}
}

// Probe requests url once with caching defeated and reports whether the
// request completed and how long it took.
func (p *HTTPProber) Probe(ctx context.Context, url string) models.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	startTime := p.now()
	elapsed := func() int64 {
		return time.Since(startTime).Round(time.Millisecond).Milliseconds()
	}

	target, err := urlutil.WithQuery(url, CacheBustParam, strconv.FormatInt(startTime.UnixMilli(), 10))
	if err != nil {
		return models.ProbeResult{OK: false, ElapsedMS: elapsed()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.ProbeResult{OK: false, ElapsedMS: elapsed()}
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.ProbeResult{OK: false, ElapsedMS: elapsed()}
	}
	ms := elapsed()
	// The body is never inspected.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()

	return models.ProbeResult{OK: true, ElapsedMS: ms}
}

// ProbeAll probes every target concurrently and returns the results in target
// order once all of them have finished.
func ProbeAll(ctx context.Context, prober Prober, targets []models.Target) []models.ProbeResult {
	results := make([]models.ProbeResult, len(targets))

	var g errgroup.Group
	for i, t := range targets {
		g.Go(func() error {
			results[i] = prober.Probe(ctx, t.URL)
			return nil
		})
	}
	g.Wait()

	return results
}
