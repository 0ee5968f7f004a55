// Package scheduler triggers pipeline runs on a cron cadence.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/logger"
)

// RunFunc executes one pipeline run and returns its summary.
type RunFunc func(ctx context.Context) domain.BatchSummary

// Scheduler runs the pipeline on a standard 5-field cron schedule. A
// trigger is skipped when the previous run is still in flight, so runs
// never overlap.
type Scheduler struct {
	cron       *cron.Cron
	log        logger.Interface
	run        RunFunc
	spec       string
	runOnStart bool
	inFlight   atomic.Bool
}

// New creates a scheduler for the given cron spec.
func New(spec string, runOnStart bool, run RunFunc, log logger.Interface) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		log:        log,
		run:        run,
		spec:       spec,
		runOnStart: runOnStart,
	}
}

// Start validates the schedule, registers the job, and starts the cron
// loop. It returns immediately; triggers fire on the cron's goroutine.
func (s *Scheduler) Start(ctx context.Context) error {
	schedule, err := cron.ParseStandard(s.spec)
	if err != nil {
		return fmt.Errorf("scheduler: parse cron expression %q: %w", s.spec, err)
	}

	if _, addErr := s.cron.AddFunc(s.spec, func() { s.trigger(ctx) }); addErr != nil {
		return fmt.Errorf("scheduler: add cron job: %w", addErr)
	}

	s.cron.Start()

	s.log.Info("scheduler started",
		"schedule", s.spec,
		"next_run", schedule.Next(time.Now()).Format("2006-01-02 15:04:05"),
	)

	if s.runOnStart {
		go s.trigger(ctx)
	}

	return nil
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("scheduler stopped")
}

// trigger executes one run unless another is already in progress.
func (s *Scheduler) trigger(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.log.Warn("previous run still in progress, skipping trigger")
		return
	}
	defer s.inFlight.Store(false)

	if ctx.Err() != nil {
		return
	}

	s.log.Info("scheduled run triggered", "schedule", s.spec)
	s.run(ctx)
}
