// Package provider implements the Provider port for each supported platform.
// All REST adapters share one HTTP helper with conditional-request caching,
// a bounded rate-limit retry, and a common status-code taxonomy.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/devfoliohq/devfolio/internal/domain/port/driven"
)

const (
	userAgent         = "devfolio/1.0 (+https://github.com/devfoliohq/devfolio)"
	requestTimeout    = 15 * time.Second
	defaultRetryAfter = 60 * time.Second

	// maxAttempts bounds the rate-limit retry: one retry after the
	// provider-specified delay, then the failure stands.
	maxAttempts = 2
)

// apiClient is the shared REST helper used by every non-GitHub adapter.
// GitHub goes through go-github, which layers the same caching transport.
type apiClient struct {
	http  *http.Client
	sleep func(time.Duration)
}

func newAPIClient() *apiClient {
	return &apiClient{
		http: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   requestTimeout,
		},
		sleep: time.Sleep,
	}
}

// getJSON issues a GET against url and decodes the JSON response into v.
// 429 responses are retried once after the Retry-After delay (60s when the
// header is absent). 404 maps to driven.ErrNotFound and 403 to
// driven.ErrForbidden so callers can apply the shared error taxonomy.
func (c *apiClient) getJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("building request for %s: %w", url, err)
		}
		req.Header.Set("User-Agent", userAgent)
		if req.Header.Get("Accept") == "" {
			req.Header.Set("Accept", "application/json")
		}
		for k, val := range headers {
			req.Header.Set(k, val)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("requesting %s: %w", url, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := retryAfter(resp)
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()

			if attempt >= maxAttempts {
				return fmt.Errorf("rate limited on %s after %d attempts", url, attempt)
			}

			slog.Warn("rate limited, backing off", "url", url, "delay", delay)
			c.sleep(delay)
			continue
		}

		err = decodeResponse(resp, url, v)
		_ = resp.Body.Close()
		return err
	}
}

func decodeResponse(resp *http.Response, url string, v any) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", url, driven.ErrNotFound)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", url, driven.ErrForbidden)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// retryAfter reads the Retry-After header as a delay in seconds, defaulting
// to 60s when absent or unparsable.
func retryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}
