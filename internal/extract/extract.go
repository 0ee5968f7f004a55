// Package extract discovers post permalinks in raw blog markup. It is the
// fallback discovery path used when the feed is unavailable.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/blog-indexer/internal/domain"
)

// maxCandidates caps how many scraped permalinks one pass returns.
const maxCandidates = 20

// contentSuffix is the path suffix a permalink must carry.
const contentSuffix = ".html"

// permalinkRules match the permalink shapes Blogger-style blogs emit:
// dated post paths (/2024/01/slug.html) and static pages (/p/slug.html).
// Applied in order against the raw markup.
var permalinkRules = []*regexp.Regexp{
	regexp.MustCompile(`href="([^"]*/\d{4}/\d{2}/[^"]*\.html)"`),
	regexp.MustCompile(`href="([^"]*/p/[^"]*\.html)"`),
}

// anchorShapes validate hrefs found by the goquery pass. Looser than
// permalinkRules on purpose: anchors may omit the .html suffix in the
// match but the suffix check still applies after resolution.
var anchorShapes = []*regexp.Regexp{
	regexp.MustCompile(`/\d{4}/\d{2}/[^/]+$`),
	regexp.MustCompile(`/p/[^/]+$`),
}

// excludedPrefixes are path prefixes that never identify content pages,
// such as Blogger's internal search and label listings.
var excludedPrefixes = []string{"/search"}

// Extract applies the permalink rules to markup and returns deduplicated
// absolute candidate URLs in first-seen order. Malformed markup yields an
// empty slice and an error the caller should log at warn level; it never
// panics.
func Extract(markup, baseURL string) ([]domain.Candidate, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("extract: invalid base URL %q", baseURL)
	}

	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if docErr != nil {
		return nil, fmt.Errorf("extract: parse markup: %w", docErr)
	}

	seen := make(map[string]struct{})
	candidates := make([]domain.Candidate, 0, maxCandidates)

	add := func(raw, title string) {
		resolved, ok := resolve(raw, base)
		if !ok {
			return
		}
		if _, dup := seen[resolved]; dup {
			return
		}

		seen[resolved] = struct{}{}
		candidates = append(candidates, domain.Candidate{
			URL:    resolved,
			Title:  title,
			Source: domain.SourceScraped,
		})
	}

	for _, rule := range permalinkRules {
		for _, match := range rule.FindAllStringSubmatch(markup, -1) {
			add(match[1], "")
		}
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !matchesAnchorShape(href) {
			return
		}
		add(href, strings.TrimSpace(sel.Text()))
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	return candidates, nil
}

// resolve turns a raw href into a validated absolute URL. Site-relative
// paths resolve against the base origin. Returns false when the result is
// not an http(s) content page or matches an exclusion prefix.
func resolve(raw string, base *url.URL) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(parsed)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	if !strings.HasSuffix(resolved.Path, contentSuffix) {
		return "", false
	}

	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(resolved.Path, prefix) {
			return "", false
		}
	}

	return resolved.String(), true
}

// matchesAnchorShape reports whether an anchor href looks like a post or
// static-page permalink. Query strings are stripped before matching.
func matchesAnchorShape(href string) bool {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}

	for _, shape := range anchorShapes {
		if shape.MatchString(href) {
			return true
		}
	}

	return false
}
