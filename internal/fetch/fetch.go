// Package fetch performs throttled retrieval of storefront pages over a
// single authenticated session.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// UserAgent identifies the watcher to the storefront.
const UserAgent = "Mozilla/5.0 (compatible; WyzincPriceWatcher/1.0; +https://wyzinc.pt)"

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// Fetcher retrieves pages through one cookie-jarred client, pacing
// successive requests so the storefront sees at most requestsPerSecond.
// The login flow and the product loop share the same jar, so a session
// established once covers the whole run.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a Fetcher. A non-positive rate defaults to one request per
// second, the original watcher's inter-request delay.
func New(timeout time.Duration, requestsPerSecond float64) (*Fetcher, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1.0
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout, Jar: jar},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// Client exposes the underlying HTTP client so the login flow can share
// the session cookie jar with product fetches.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// Fetch retrieves url and returns the response body as text. It blocks on
// the rate limiter first; that wait is the inter-request throttle. Exactly
// one attempt is made per call: a failed product is simply picked up again
// on the next scheduled run.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	SetHeaders(req)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("Page fetched")

	return string(body), nil
}

// SetHeaders applies the watcher's standard request headers.
func SetHeaders(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-PT,pt;q=0.9,en;q=0.8")
}
