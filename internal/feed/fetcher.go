package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// userAgent mimics a browser; some blog hosts reject default Go clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// HTTPFetcher fetches the raw body of a URL.
type HTTPFetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResponse, error)
}

// FetchResponse represents the result of an HTTP fetch.
type FetchResponse struct {
	StatusCode int
	Body       string
}

// DefaultHTTPFetcher implements HTTPFetcher using net/http.
type DefaultHTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher backed by the given http.Client.
func NewHTTPFetcher(client *http.Client) *DefaultHTTPFetcher {
	return &DefaultHTTPFetcher{client: client}
}

// Fetch performs an HTTP GET and returns the status code and body.
func (f *DefaultHTTPFetcher) Fetch(ctx context.Context, url string) (*FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http fetcher new request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, doErr := f.client.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("http fetcher do request: %w", doErr)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("http fetcher read body: %w", readErr)
	}

	return &FetchResponse{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
	}, nil
}
