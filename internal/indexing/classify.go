// Package indexing submits URLs to the Google Indexing API and classifies
// the heterogeneous failures the service returns into a small outcome
// space.
package indexing

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// Class tags a remote submission failure.
type Class int

const (
	// ClassOther covers failures with no special handling: terminal,
	// recorded per URL.
	ClassOther Class = iota
	// ClassQuota means the service's quota or rate limit is exhausted.
	// The batch must stop.
	ClassQuota
	// ClassAlreadyProcessed means the service has already seen this URL.
	// Treated as success.
	ClassAlreadyProcessed
	// ClassTransient covers transport and negotiation failures worth a
	// bounded retry with a fresh client.
	ClassTransient
)

// String returns the class name for logging.
func (c Class) String() string {
	switch c {
	case ClassQuota:
		return "quota"
	case ClassAlreadyProcessed:
		return "already_processed"
	case ClassTransient:
		return "transient"
	default:
		return "other"
	}
}

// Substring rules, matched case-insensitively against the full error text.
// The service reports most conditions as free text, so classification by
// message content is unavoidable; keeping the rules here makes them
// testable without network calls.
var (
	quotaMarkers = []string{
		"quota exceeded",
		"quota",
		"rate limit",
		"too many requests",
	}

	alreadyProcessedMarkers = []string{
		"already processed",
		"already submitted",
		"already indexed",
		"duplicate",
	}

	transientMarkers = []string{
		"ssl",
		"tls",
		"handshake",
		"connection reset",
		"connection refused",
		"broken pipe",
		"unexpected eof",
		"timeout",
		"timed out",
		"temporar",
	}
)

// Classify maps a remote submission error onto its class. Structured
// googleapi errors are classified by status code first; everything else
// falls through to the substring rules.
func Classify(err error) Class {
	if err == nil {
		return ClassOther
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return ClassQuota
		case apiErr.Code >= http.StatusInternalServerError:
			return ClassTransient
		}
	}

	text := strings.ToLower(err.Error())

	for _, marker := range quotaMarkers {
		if strings.Contains(text, marker) {
			return ClassQuota
		}
	}

	for _, marker := range alreadyProcessedMarkers {
		if strings.Contains(text, marker) {
			return ClassAlreadyProcessed
		}
	}

	for _, marker := range transientMarkers {
		if strings.Contains(text, marker) {
			return ClassTransient
		}
	}

	return ClassOther
}
