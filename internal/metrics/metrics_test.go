package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/metrics"
)

func TestMetrics_RecordRun(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	m.RecordRunStart()
	m.RecordRunEnd(domain.BatchSummary{
		Submitted:      2,
		AlreadyIndexed: 1,
		Failed:         1,
	})

	totals := m.Snapshot()
	assert.Equal(t, int64(1), totals.RunsStarted)
	assert.Equal(t, int64(1), totals.RunsCompleted)
	assert.Zero(t, totals.RunsFailed)
	assert.Equal(t, int64(2), totals.Submitted)
	assert.Equal(t, int64(1), totals.AlreadyIndexed)
	assert.Equal(t, int64(1), totals.Failed)
	assert.False(t, totals.LastRunTime.IsZero())
}

func TestMetrics_CriticalFailureCountsAsFailedRun(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	m.RecordRunStart()
	m.RecordRunEnd(domain.BatchSummary{CriticalFailure: "boom"})

	totals := m.Snapshot()
	assert.Equal(t, int64(1), totals.RunsFailed)
	assert.Zero(t, totals.RunsCompleted)
}

func TestMetrics_QuotaAbortCounted(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	m.RecordRunStart()
	m.RecordRunEnd(domain.BatchSummary{Aborted: true, Unprocessed: 3})

	totals := m.Snapshot()
	assert.Equal(t, int64(1), totals.QuotaAborts)
}

func TestMetrics_AccumulatesAcrossRuns(t *testing.T) {
	t.Parallel()

	m := metrics.New()

	for i := 0; i < 3; i++ {
		m.RecordRunStart()
		m.RecordRunEnd(domain.BatchSummary{Submitted: 1})
	}

	totals := m.Snapshot()
	assert.Equal(t, int64(3), totals.RunsStarted)
	assert.Equal(t, int64(3), totals.Submitted)
}
