// Package domain provides domain models used across the application.
package domain

import "time"

// SourceKind identifies how a candidate URL was discovered.
type SourceKind string

const (
	// SourceFeed marks candidates discovered through the RSS/Atom feed.
	SourceFeed SourceKind = "feed"
	// SourceScraped marks candidates discovered by scraping the blog page.
	SourceScraped SourceKind = "scraped"
)

// Candidate is a discovered URL eligible for submission to the indexing
// service. URL is always absolute; PublishedAt is zero when the source did
// not provide a publication time.
type Candidate struct {
	URL         string     `json:"url"`
	Title       string     `json:"title,omitempty"`
	PublishedAt time.Time  `json:"published_at,omitempty"`
	Source      SourceKind `json:"source"`
}

// PrioritizedCandidate is a candidate with its computed priority score.
type PrioritizedCandidate struct {
	Candidate
	Score int `json:"score"`
}
