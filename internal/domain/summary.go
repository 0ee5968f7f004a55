package domain

// BatchSummary aggregates the results of one discovery-to-submission run.
// It is derived per run and never persisted.
type BatchSummary struct {
	TotalDiscovered int `json:"total_discovered"`
	TotalAttempted  int `json:"total_attempted"`

	Submitted      int `json:"submitted"`
	AlreadyIndexed int `json:"already_indexed"`
	Skipped        int `json:"skipped"`
	Failed         int `json:"failed"`

	// NothingToDo is set when discovery produced zero candidates. This is
	// a successful no-op run, not a failure.
	NothingToDo bool `json:"nothing_to_do"`

	// Aborted is set when the run stopped early on quota exhaustion.
	// Unprocessed is the number of selected candidates never attempted.
	Aborted     bool `json:"aborted"`
	Unprocessed int  `json:"unprocessed"`

	// CriticalFailure records an unanticipated error that stopped the run
	// before or during processing. The summary still reflects whatever
	// progress was made.
	CriticalFailure string `json:"critical_failure,omitempty"`
}

// Record folds one submission result into the summary counts.
func (s *BatchSummary) Record(result SubmissionResult) {
	s.TotalAttempted++

	switch result.Outcome {
	case OutcomeSubmitted:
		s.Submitted++
	case OutcomeAlreadyIndexed:
		s.AlreadyIndexed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	case OutcomeQuotaExceeded:
		// Quota exhaustion ends the run; the attempt itself is counted
		// but contributes to no success or failure bucket.
	}
}

// Succeeded reports whether the run produced a usable result. Quota
// exhaustion and per-URL failures are not process-fatal; only a critical
// pipeline failure makes a one-shot invocation exit nonzero.
func (s *BatchSummary) Succeeded() bool {
	return s.CriticalFailure == ""
}
