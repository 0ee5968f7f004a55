package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonesrussell/blog-indexer/internal/domain"
)

// ErrFeedUnavailable marks feed failures that are recoverable by falling
// back to page scraping: fetch errors, non-200 responses, unparseable
// payloads.
var ErrFeedUnavailable = errors.New("feed unavailable")

// Reader fetches and parses a feed into candidates.
type Reader struct {
	fetcher HTTPFetcher
}

// NewReader creates a feed reader backed by the given fetcher.
func NewReader(fetcher HTTPFetcher) *Reader {
	return &Reader{fetcher: fetcher}
}

// Read fetches feedURL and returns its entries as candidates, in the order
// the feed provides them. Any failure is wrapped in ErrFeedUnavailable so
// callers can recover by scraping.
func (r *Reader) Read(ctx context.Context, feedURL string) ([]domain.Candidate, error) {
	resp, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d for %s", ErrFeedUnavailable, resp.StatusCode, feedURL)
	}

	items, parseErr := ParseFeed(ctx, resp.Body)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeedUnavailable, parseErr)
	}

	return items, nil
}
