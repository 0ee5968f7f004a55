package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/logger"
	"github.com/jonesrussell/blog-indexer/internal/scheduler"
)

func TestStart_InvalidCronSpec(t *testing.T) {
	t.Parallel()

	run := func(context.Context) domain.BatchSummary { return domain.BatchSummary{} }
	sched := scheduler.New("not a cron spec", false, run, logger.NewNoOp())

	err := sched.Start(context.Background())
	require.Error(t, err)
}

func TestStart_RunOnStartTriggersRun(t *testing.T) {
	t.Parallel()

	ran := make(chan struct{})
	run := func(context.Context) domain.BatchSummary {
		close(ran)
		return domain.BatchSummary{NothingToDo: true}
	}

	sched := scheduler.New("0 */3 * * *", true, run, logger.NewNoOp())
	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("run was not triggered on start")
	}
}

func TestStart_NoRunOnStart(t *testing.T) {
	t.Parallel()

	ran := make(chan struct{}, 1)
	run := func(context.Context) domain.BatchSummary {
		ran <- struct{}{}
		return domain.BatchSummary{}
	}

	sched := scheduler.New("0 */3 * * *", false, run, logger.NewNoOp())
	require.NoError(t, sched.Start(context.Background()))
	defer sched.Stop()

	select {
	case <-ran:
		t.Fatal("run should not trigger without run_on_start")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTrigger_SkipsWhenCancelled(t *testing.T) {
	t.Parallel()

	ran := make(chan struct{}, 1)
	run := func(context.Context) domain.BatchSummary {
		ran <- struct{}{}
		return domain.BatchSummary{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sched := scheduler.New("0 */3 * * *", true, run, logger.NewNoOp())
	require.NoError(t, sched.Start(ctx))
	defer sched.Stop()

	select {
	case <-ran:
		t.Fatal("run should not fire on a cancelled context")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStop_Idempotent(t *testing.T) {
	t.Parallel()

	run := func(context.Context) domain.BatchSummary { return domain.BatchSummary{} }
	sched := scheduler.New("0 */3 * * *", false, run, logger.NewNoOp())

	require.NoError(t, sched.Start(context.Background()))

	assert.NotPanics(t, func() {
		sched.Stop()
		sched.Stop()
	})
}