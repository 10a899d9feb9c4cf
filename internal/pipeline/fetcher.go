// Package pipeline fetches property pages and turns them into records.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rjmelnik/deedtrace/internal/cache"
	"github.com/rjmelnik/deedtrace/internal/model"
	"github.com/rjmelnik/deedtrace/internal/util"
	"github.com/rjmelnik/deedtrace/internal/worker"
)

// fetchSleepFunc is overridden in tests to avoid real backoff sleeps
var fetchSleepFunc = time.Sleep

// Fetcher retrieves page content with bounded retries. Callers see only
// presence or absence: a page is absent on HTTP 404 or once retries are
// exhausted, and no error ever propagates upward.
type Fetcher struct {
	httpClient     *http.Client
	userAgent      string
	acceptLanguage string
	maxBytes       int64
	retries        int

	limiter *worker.Limiter
	robots  *util.RobotsChecker
	pages   cache.Cache
}

// NewFetcher creates a fetcher wired per the configuration: the per-domain
// rate limiter is always on, robots.txt checking and the page cache are
// optional.
func NewFetcher(cfg *model.Config) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
		},
		userAgent:      cfg.HTTP.UserAgent,
		acceptLanguage: cfg.HTTP.AcceptLanguage,
		maxBytes:       cfg.HTTP.MaxBodyBytes,
		retries:        cfg.HTTP.Retries,
		limiter:        worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
	}
	if cfg.Robots.Enabled {
		f.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}
	if cfg.Cache.Enabled {
		f.pages = cache.NewLayered(cfg.Cache.Dir, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL)
	}
	return f
}

// Fetch returns the page content for url, or ok=false when the page is
// absent (404, robots-disallowed, or retries exhausted).
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, bool) {
	var key string
	if f.pages != nil {
		key = cache.Key(url)
		if body, found := f.pages.Get(key); found {
			return string(body), true
		}
	}

	if f.robots != nil && !f.robots.Allowed(ctx, url) {
		return "", false
	}

	for attempt := 0; attempt <= f.retries; attempt++ {
		if err := f.limiter.Wait(ctx, url); err != nil {
			return "", false
		}

		body, status, err := f.fetchOnce(ctx, url)
		if status == http.StatusNotFound {
			return "", false
		}
		if err == nil {
			if f.pages != nil {
				_ = f.pages.Set(key, []byte(body))
			}
			return body, true
		}
		if attempt == f.retries {
			break
		}
		backoff := 1.6*float64(attempt+1) + rand.Float64()
		fetchSleepFunc(time.Duration(backoff * float64(time.Second)))
	}
	return "", false
}

// fetchOnce performs a single HTTP GET, returning the body, the status code
// when a response was received, and an error for any non-2xx outcome.
func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", f.acceptLanguage)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", resp.StatusCode, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return string(body), resp.StatusCode, nil
}
