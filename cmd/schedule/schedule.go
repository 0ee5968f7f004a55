// Package schedule implements the recurring scheduler command.
package schedule

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/blog-indexer/cmd/common"
	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/scheduler"
)

// Command returns the schedule command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the submission pipeline on a cron schedule",
		Long: `Start the scheduler and run the submission pipeline on the configured
cron cadence until interrupted with Ctrl+C.`,
		RunE: runScheduler,
	}
}

// runScheduler starts the cron loop and blocks until interrupted.
func runScheduler(cmd *cobra.Command, _ []string) error {
	deps, err := cmdcommon.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	run := func(ctx context.Context) domain.BatchSummary {
		return deps.Runner.Run(ctx)
	}

	sched := scheduler.New(
		deps.Config.Schedule.Cron,
		deps.Config.Schedule.RunOnStart,
		run,
		deps.Logger.WithComponent("scheduler"),
	)

	if startErr := sched.Start(cmd.Context()); startErr != nil {
		return fmt.Errorf("start scheduler: %w", startErr)
	}

	<-cmd.Context().Done()
	deps.Logger.Info("shutdown signal received")

	sched.Stop()

	totals := deps.Metrics.Snapshot()
	deps.Logger.Info("process totals",
		"runs_started", totals.RunsStarted,
		"runs_completed", totals.RunsCompleted,
		"runs_failed", totals.RunsFailed,
		"submitted", totals.Submitted,
		"already_indexed", totals.AlreadyIndexed,
		"skipped", totals.Skipped,
		"failed", totals.Failed,
		"quota_aborts", totals.QuotaAborts,
	)

	return nil
}
