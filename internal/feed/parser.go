// Package feed provides RSS and Atom feed fetching and parsing for
// candidate URL discovery.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/blog-indexer/internal/domain"
)

// httpPrefix is the scheme prefix used to determine if a GUID is a valid URL.
const httpPrefix = "http"

// ParseFeed parses an RSS or Atom feed body and returns the discovered
// candidates in feed order. Entries without a usable link are silently
// skipped. An empty feed returns a non-nil empty slice.
func ParseFeed(ctx context.Context, body string) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	parser := gofeed.NewParser()

	parsed, err := parser.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.Candidate, 0, len(parsed.Items))

	for _, entry := range parsed.Items {
		link := extractLink(entry)
		if link == "" {
			continue
		}

		items = append(items, domain.Candidate{
			URL:         link,
			Title:       entry.Title,
			PublishedAt: publishedAt(entry.PublishedParsed),
			Source:      domain.SourceFeed,
		})
	}

	return items, nil
}

// extractLink returns the best available URL from a feed entry. It prefers
// the explicit Link field, falling back to the GUID if it looks like an
// HTTP URL.
func extractLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}

	if strings.HasPrefix(entry.GUID, httpPrefix) {
		return entry.GUID
	}

	return ""
}

// publishedAt dereferences a parsed time pointer, returning the zero time
// when the entry carried no publication date.
func publishedAt(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}
