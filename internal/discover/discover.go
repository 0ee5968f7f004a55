// Package discover produces the candidate list for one pipeline run,
// trying the feed first and falling back to page scraping.
package discover

import (
	"context"
	"net/http"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/extract"
	"github.com/jonesrussell/blog-indexer/internal/feed"
	"github.com/jonesrussell/blog-indexer/internal/logger"
)

// FeedReader reads a feed into candidates.
type FeedReader interface {
	Read(ctx context.Context, feedURL string) ([]domain.Candidate, error)
}

// Source discovers candidate URLs for a blog. Fallback is all-or-nothing:
// one invocation returns either feed candidates or scraped candidates,
// never a mix.
type Source struct {
	reader  FeedReader
	fetcher feed.HTTPFetcher
	log     logger.Interface

	feedURL string
	blogURL string
}

// NewSource creates a candidate source for the given blog.
func NewSource(
	reader FeedReader,
	fetcher feed.HTTPFetcher,
	log logger.Interface,
	feedURL, blogURL string,
) *Source {
	return &Source{
		reader:  reader,
		fetcher: fetcher,
		log:     log,
		feedURL: feedURL,
		blogURL: blogURL,
	}
}

// Discover returns the candidates for this run. An empty result with a nil
// error means there is nothing to do; exhausted sources are not an error
// at this level. An empty feed is ambiguous with a transient feed glitch,
// so scraping is attempted even when the feed succeeds with zero items.
func (s *Source) Discover(ctx context.Context) ([]domain.Candidate, error) {
	items, err := s.reader.Read(ctx, s.feedURL)
	if err != nil {
		s.log.Warn("feed unavailable, falling back to scraping",
			"feed_url", s.feedURL,
			"error", err.Error(),
		)
		return s.scrape(ctx), nil
	}

	if len(items) == 0 {
		s.log.Info("feed returned no items, trying page scrape",
			"feed_url", s.feedURL,
		)
		return s.scrape(ctx), nil
	}

	s.log.Info("discovered candidates via feed",
		"feed_url", s.feedURL,
		"count", len(items),
	)

	return items, nil
}

// scrape fetches the blog page and extracts permalinks from its markup.
// All failures are logged at warn and collapse to an empty result.
func (s *Source) scrape(ctx context.Context) []domain.Candidate {
	resp, err := s.fetcher.Fetch(ctx, s.blogURL)
	if err != nil {
		s.log.Warn("page fetch failed",
			"url", s.blogURL,
			"error", err.Error(),
		)
		return []domain.Candidate{}
	}

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("page fetch returned unexpected status",
			"url", s.blogURL,
			"status", resp.StatusCode,
		)
		return []domain.Candidate{}
	}

	items, extractErr := extract.Extract(resp.Body, s.blogURL)
	if extractErr != nil {
		s.log.Warn("permalink extraction failed",
			"url", s.blogURL,
			"error", extractErr.Error(),
		)
		return []domain.Candidate{}
	}

	s.log.Info("discovered candidates via scraping",
		"url", s.blogURL,
		"count", len(items),
	)

	return items
}
