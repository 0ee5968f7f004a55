package indexing

import (
	"context"
	"sync"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/logger"
)

// maxAttempts is the retry ceiling per URL. Each retry is a full
// re-attempt with a freshly constructed publisher.
const maxAttempts = 3

// Gate performs per-URL submission with outcome classification, bounded
// retry on transient failures, and quota-abort signalling. It also keeps
// the session dedup set: URLs accepted earlier in this process lifetime
// are skipped without a remote call.
type Gate struct {
	factory PublisherFactory
	log     logger.Interface

	mu        sync.Mutex
	publisher Publisher
	submitted map[string]struct{}
}

// NewGate creates a submission gate. The publisher is created lazily on
// first use and replaced after transient failures.
func NewGate(factory PublisherFactory, log logger.Interface) *Gate {
	return &Gate{
		factory:   factory,
		log:       log,
		submitted: make(map[string]struct{}),
	}
}

// Submit pushes one URL through the submission state machine and returns
// its terminal result. Exactly one result is produced per call; retries
// collapse into it.
func (g *Gate) Submit(ctx context.Context, url string) domain.SubmissionResult {
	if g.alreadySubmitted(url) {
		g.log.Debug("url already submitted this session, skipping", "url", url)
		return domain.SubmissionResult{URL: url, Outcome: domain.OutcomeSkipped}
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		publisher, err := g.currentPublisher(ctx)
		if err != nil {
			// Credential construction failures are not transient.
			return domain.SubmissionResult{
				URL:     url,
				Outcome: domain.OutcomeFailed,
				Detail:  err.Error(),
			}
		}

		publishErr := publisher.Publish(ctx, url)
		if publishErr == nil {
			g.markSubmitted(url)
			g.log.Info("url submitted", "url", url, "attempt", attempt)
			return domain.SubmissionResult{URL: url, Outcome: domain.OutcomeSubmitted}
		}

		lastErr = publishErr

		switch class := Classify(publishErr); class {
		case ClassAlreadyProcessed:
			g.markSubmitted(url)
			g.log.Info("url already indexed", "url", url)
			return domain.SubmissionResult{
				URL:     url,
				Outcome: domain.OutcomeAlreadyIndexed,
				Detail:  publishErr.Error(),
			}
		case ClassQuota:
			g.log.Warn("indexing quota exhausted", "url", url)
			return domain.SubmissionResult{
				URL:     url,
				Outcome: domain.OutcomeQuotaExceeded,
				Detail:  publishErr.Error(),
			}
		case ClassTransient:
			g.log.Warn("transient submission failure, retrying with fresh client",
				"url", url,
				"attempt", attempt,
				"error", publishErr.Error(),
			)
			g.resetPublisher()
		case ClassOther:
			return domain.SubmissionResult{
				URL:     url,
				Outcome: domain.OutcomeFailed,
				Detail:  publishErr.Error(),
			}
		}
	}

	return domain.SubmissionResult{
		URL:     url,
		Outcome: domain.OutcomeFailed,
		Detail:  lastErr.Error(),
	}
}

// currentPublisher returns the cached publisher, constructing one if
// needed.
func (g *Gate) currentPublisher(ctx context.Context) (Publisher, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.publisher != nil {
		return g.publisher, nil
	}

	publisher, err := g.factory(ctx)
	if err != nil {
		return nil, err
	}

	g.publisher = publisher
	return publisher, nil
}

// resetPublisher discards the cached publisher so the next attempt builds
// fresh credential and connection state.
func (g *Gate) resetPublisher() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.publisher = nil
}

// alreadySubmitted reports whether url was accepted earlier in this
// process lifetime.
func (g *Gate) alreadySubmitted(url string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.submitted[url]
	return ok
}

// markSubmitted records url in the session dedup set. The set only grows;
// it is cleared by process restart.
func (g *Gate) markSubmitted(url string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted[url] = struct{}{}
}
