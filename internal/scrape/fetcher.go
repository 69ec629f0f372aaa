// Package scrape fetches biblical source-text pages with caching, robots
// compliance, and rate limiting, and extracts verse text from them.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deferredreward/translation-note-writer-sub001/internal/cache"
	"github.com/deferredreward/translation-note-writer-sub001/internal/worker"
)

// Fetcher retrieves source pages, serving from the cache when possible.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache // nil disables caching
	robots     *RobotsChecker
	limiter    *worker.Limiter
	cacheTTL   time.Duration
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	Timeout           time.Duration
	UserAgent         string
	MaxBodyBytes      int64
	Cache             cache.Cache
	CacheTTL          time.Duration
	RequestsPerSecond float64
	BurstSize         int
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2_000_000
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBodyBytes,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		robots:    NewRobotsChecker(opts.UserAgent, 10*time.Second),
		limiter:   worker.NewLimiter(opts.RequestsPerSecond, opts.BurstSize),
	}
}

// Fetch retrieves a page body, preferring the cache. Network fetches check
// robots.txt and wait on the per-domain rate limiter before going out.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.Key(rawURL)

	if f.cache != nil {
		if body, found := f.cache.Get(key); found {
			return body, nil
		}
	}

	allowed, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil {
		_ = f.cache.Set(key, body, f.cacheTTL)
	}

	return body, nil
}
