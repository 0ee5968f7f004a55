package domain

// Outcome is the terminal classification of one submission attempt chain.
type Outcome string

const (
	// OutcomeSubmitted means the indexing service accepted the URL.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeAlreadyIndexed means the service reported the URL as already
	// processed. Counted as success in summaries.
	OutcomeAlreadyIndexed Outcome = "already_indexed"
	// OutcomeSkipped means the URL was submitted earlier in this process
	// lifetime and no remote call was made.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the submission failed after exhausting retries.
	OutcomeFailed Outcome = "failed"
	// OutcomeQuotaExceeded means the service's quota is exhausted. The
	// batch runner stops the run when it sees this outcome.
	OutcomeQuotaExceeded Outcome = "quota_exceeded"
)

// SubmissionResult is produced exactly once per attempted URL. Retries
// collapse into the single terminal result.
type SubmissionResult struct {
	URL     string  `json:"url"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}
