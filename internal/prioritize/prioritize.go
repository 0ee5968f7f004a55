// Package prioritize orders discovered candidates by recency and content
// signals. It is pure: no I/O, and identical inputs always produce
// identical output, tie order included.
package prioritize

import (
	"sort"
	"strings"
	"time"

	"github.com/jonesrussell/blog-indexer/internal/domain"
)

// Recency scores by candidate age. Candidates without a publication time
// fall into the lowest tier.
const (
	scoreFresh   = 30 // published within 2 days
	scoreRecent  = 20 // published within 7 days
	scoreOld     = 10
	scoreKeyword = 5 // per keyword found in the title, uncapped
	scoreStatic  = 3 // blog root or static-page path
)

const (
	freshAge  = 48 * time.Hour
	recentAge = 7 * 24 * time.Hour
)

// staticPathMarker identifies Blogger static-page permalinks.
const staticPathMarker = "/p/"

// Prioritize scores the candidates, sorts them descending by score with
// input order preserved among equals, and truncates to maxCount.
func Prioritize(
	items []domain.Candidate,
	maxCount int,
	now time.Time,
	blogURL string,
	keywords []string,
) []domain.PrioritizedCandidate {
	scored := make([]domain.PrioritizedCandidate, 0, len(items))

	for _, item := range items {
		scored = append(scored, domain.PrioritizedCandidate{
			Candidate: item,
			Score:     score(item, now, blogURL, keywords),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if maxCount >= 0 && len(scored) > maxCount {
		scored = scored[:maxCount]
	}

	return scored
}

// score computes the additive priority of one candidate.
func score(item domain.Candidate, now time.Time, blogURL string, keywords []string) int {
	total := recencyScore(item.PublishedAt, now)

	title := strings.ToLower(item.Title)
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(title, strings.ToLower(keyword)) {
			total += scoreKeyword
		}
	}

	if isStructural(item.URL, blogURL) {
		total += scoreStatic
	}

	return total
}

// recencyScore maps a publication time to its recency tier.
func recencyScore(publishedAt, now time.Time) int {
	if publishedAt.IsZero() {
		return scoreOld
	}

	age := now.Sub(publishedAt)
	switch {
	case age <= freshAge:
		return scoreFresh
	case age <= recentAge:
		return scoreRecent
	default:
		return scoreOld
	}
}

// isStructural reports whether the URL is the blog root or a static page,
// as opposed to a dated post path.
func isStructural(url, blogURL string) bool {
	if strings.TrimRight(url, "/") == strings.TrimRight(blogURL, "/") {
		return true
	}

	return strings.Contains(url, staticPathMarker)
}
