// Package metrics provides process-lifetime counters for pipeline runs.
package metrics

import (
	"sync"
	"time"

	"github.com/jonesrussell/blog-indexer/internal/domain"
)

// Metrics accumulates run and submission totals across the lifetime of a
// scheduled process. All methods are safe for concurrent use.
type Metrics struct {
	mu sync.Mutex

	// RunsStarted is the number of pipeline runs begun.
	RunsStarted int64
	// RunsCompleted is the number of runs that produced a summary without
	// a critical failure.
	RunsCompleted int64
	// RunsFailed is the number of runs ending in a critical failure.
	RunsFailed int64

	// Submitted, AlreadyIndexed, Skipped and Failed are submission totals
	// across all runs.
	Submitted      int64
	AlreadyIndexed int64
	Skipped        int64
	Failed         int64

	// QuotaAborts counts runs stopped early on quota exhaustion.
	QuotaAborts int64

	// LastRunTime is when the most recent run finished.
	LastRunTime time.Time

	// StartTime is when metrics collection began.
	StartTime time.Time
}

// New creates a Metrics instance.
func New() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// RecordRunStart notes that a run has begun.
func (m *Metrics) RecordRunStart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunsStarted++
}

// RecordRunEnd folds a finished run's summary into the totals.
func (m *Metrics) RecordRunEnd(summary domain.BatchSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if summary.CriticalFailure != "" {
		m.RunsFailed++
	} else {
		m.RunsCompleted++
	}

	m.Submitted += int64(summary.Submitted)
	m.AlreadyIndexed += int64(summary.AlreadyIndexed)
	m.Skipped += int64(summary.Skipped)
	m.Failed += int64(summary.Failed)

	if summary.Aborted {
		m.QuotaAborts++
	}

	m.LastRunTime = time.Now()
}

// Snapshot returns a copy of the current totals.
func (m *Metrics) Snapshot() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Metrics{
		RunsStarted:    m.RunsStarted,
		RunsCompleted:  m.RunsCompleted,
		RunsFailed:     m.RunsFailed,
		Submitted:      m.Submitted,
		AlreadyIndexed: m.AlreadyIndexed,
		Skipped:        m.Skipped,
		Failed:         m.Failed,
		QuotaAborts:    m.QuotaAborts,
		LastRunTime:    m.LastRunTime,
		StartTime:      m.StartTime,
	}
}
