// Package fetcher wraps an HTTP client for single-page fetches with a fixed
// identifying user agent, bounded timeout, and classified failures.
package fetcher

import (
	"io"
	"net/http"
	"time"
)

type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher builds a Fetcher. The client follows redirects and is reused
// across all fetches so connections can be pooled.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get fetches a URL and returns the response body. Any failure comes back as
// a classified *Error: non-2xx status, timeout, transport, or unclassified.
func (f *Fetcher) Get(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, Classify(rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, Classify(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindHTTPStatus, StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Classify(rawURL, err)
	}
	return body, nil
}
