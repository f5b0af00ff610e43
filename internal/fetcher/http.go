package fetcher

import (
	"context"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// DelayMin/DelayMax bound the randomized pause taken before every
	// request, out of politeness to the source site.
	DelayMin time.Duration
	DelayMax time.Duration
}

// HTTPFetcher implements Fetcher using net/http with retry, rate limiting,
// and jittered inter-request delays.
type HTTPFetcher struct {
	client  *http.Client
	opts    HTTPOptions
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "a16z-oss-api/1.0 (https://github.com/TheDarkNight21/a16z-oss-api)"
	}
	if opts.DelayMin == 0 {
		opts.DelayMin = 800 * time.Millisecond
	}
	if opts.DelayMax < opts.DelayMin {
		opts.DelayMax = opts.DelayMin
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:    opts,
		limiter: rate.NewLimiter(1, 1),
	}
}

// FetchPage fetches the URL and returns the body as text. Transient errors
// and 429/5xx responses are retried with exponential backoff.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "fetcher: rate limiter wait")
	}
	f.politeDelay(ctx)

	var lastErr error
	for attempt := 0; attempt < f.opts.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", eris.Wrapf(err, "fetcher: build request %s", url)
		}
		req.Header.Set("User-Agent", f.opts.UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			zap.L().Warn("fetcher: request failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("fetcher: %s returned status %d", url, resp.StatusCode)
			f.backoff(ctx, attempt)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return "", eris.Errorf("fetcher: %s returned status %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return "", eris.Wrapf(err, "fetcher: read body %s", url)
		}
		return string(body), nil
	}

	return "", eris.Wrapf(lastErr, "fetcher: %s failed after %d attempts", url, f.opts.MaxRetries)
}

// politeDelay sleeps a random duration within the configured bounds.
func (f *HTTPFetcher) politeDelay(ctx context.Context) {
	span := f.opts.DelayMax - f.opts.DelayMin
	delay := f.opts.DelayMin
	if span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}

func (f *HTTPFetcher) backoff(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	wait += time.Duration(rand.Int63n(int64(500 * time.Millisecond)))
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
