// Package pipeline drives one discovery-to-submission run: discover
// candidates, prioritize them, and submit them sequentially under the
// indexing service's rate limit.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/logger"
	"github.com/jonesrussell/blog-indexer/internal/metrics"
	"github.com/jonesrussell/blog-indexer/internal/prioritize"
)

// CandidateSource produces the candidate list for a run.
type CandidateSource interface {
	Discover(ctx context.Context) ([]domain.Candidate, error)
}

// SubmissionGate submits one URL and returns its terminal result.
type SubmissionGate interface {
	Submit(ctx context.Context, url string) domain.SubmissionResult
}

// Options configure a Runner.
type Options struct {
	// BlogURL is the blog root, used by the structural priority signal.
	BlogURL string
	// Keywords raise candidate priority when found in titles.
	Keywords []string
	// MaxURLsPerRun caps submissions per run.
	MaxURLsPerRun int
	// RequestDelay is the pause between consecutive submissions. Zero
	// disables pacing.
	RequestDelay time.Duration
}

// Runner executes pipeline runs. Submissions are strictly sequential: the
// service's quota is a shared per-account resource and the quota abort
// must stop at a deterministic point.
type Runner struct {
	source  CandidateSource
	gate    SubmissionGate
	log     logger.Interface
	metrics *metrics.Metrics
	opts    Options
}

// NewRunner creates a batch runner.
func NewRunner(
	source CandidateSource,
	gate SubmissionGate,
	log logger.Interface,
	m *metrics.Metrics,
	opts Options,
) *Runner {
	return &Runner{
		source:  source,
		gate:    gate,
		log:     log,
		metrics: m,
		opts:    opts,
	}
}

// Run executes one batch and always returns a summary. Unanticipated
// failures, panics included, are caught here and recorded as a critical
// failure with zero further progress; Run never crashes the host process.
func (r *Runner) Run(ctx context.Context) (summary domain.BatchSummary) {
	r.metrics.RecordRunStart()
	defer func() {
		if rec := recover(); rec != nil {
			summary.CriticalFailure = fmt.Sprintf("panic: %v", rec)
			r.log.Error("pipeline run panicked", "panic", fmt.Sprintf("%v", rec))
		}
		r.metrics.RecordRunEnd(summary)
	}()

	items, err := r.source.Discover(ctx)
	if err != nil {
		summary.CriticalFailure = err.Error()
		r.log.Error("candidate discovery failed", "error", err.Error())
		return summary
	}

	summary.TotalDiscovered = len(items)

	if len(items) == 0 {
		summary.NothingToDo = true
		r.log.Info("no candidates discovered, nothing to do")
		return summary
	}

	selected := prioritize.Prioritize(
		items,
		r.opts.MaxURLsPerRun,
		time.Now(),
		r.opts.BlogURL,
		r.opts.Keywords,
	)

	r.log.Info("starting submission batch",
		"discovered", len(items),
		"selected", len(selected),
	)

	for i, item := range selected {
		result := r.gate.Submit(ctx, item.URL)
		summary.Record(result)

		if result.Outcome == domain.OutcomeQuotaExceeded {
			summary.Aborted = true
			summary.Unprocessed = len(selected) - summary.TotalAttempted
			r.log.Warn("quota exhausted, aborting batch",
				"attempted", summary.TotalAttempted,
				"unprocessed", summary.Unprocessed,
			)
			break
		}

		if i < len(selected)-1 {
			if waitErr := r.pause(ctx); waitErr != nil {
				summary.CriticalFailure = waitErr.Error()
				r.log.Error("run cancelled during pacing delay", "error", waitErr.Error())
				break
			}
		}
	}

	r.logSummary(summary)
	return summary
}

// pause waits the inter-request delay, honouring context cancellation.
// The delay respects the service's rate limit and is not a correctness
// mechanism; zero skips it entirely.
func (r *Runner) pause(ctx context.Context) error {
	if r.opts.RequestDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(r.opts.RequestDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pipeline pause: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// logSummary emits the structured run summary.
func (r *Runner) logSummary(summary domain.BatchSummary) {
	r.log.Info("submission batch finished",
		"discovered", summary.TotalDiscovered,
		"attempted", summary.TotalAttempted,
		"submitted", summary.Submitted,
		"already_indexed", summary.AlreadyIndexed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"aborted", summary.Aborted,
		"unprocessed", summary.Unprocessed,
	)
}
