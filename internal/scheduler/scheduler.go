// Package scheduler runs the periodic progress snapshot.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/timmy/calsnap/internal/domain"
	"github.com/timmy/calsnap/internal/logger"
)

const (
	// DefaultSnapshotSpec stores the day's summary shortly before local midnight.
	DefaultSnapshotSpec = "55 23 * * *"
	snapshotTimeout     = 2 * time.Minute
)

// Snapshotter stores the current day's progress summary.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*domain.DailySummary, error)
}

// Scheduler wraps a cron runner bound to the session timezone.
type Scheduler struct {
	ctx      context.Context
	cron     *cron.Cron
	snapshot Snapshotter
	spec     string
}

// New creates a scheduler. An empty spec uses DefaultSnapshotSpec.
func New(ctx context.Context, snapshot Snapshotter, spec string, loc *time.Location) *Scheduler {
	if spec == "" {
		spec = DefaultSnapshotSpec
	}
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cron.PrintfLogger(logger.GetDefault().WithField(logger.FieldComponent, "cron"))),
	)

	return &Scheduler{
		ctx:      ctx,
		cron:     c,
		snapshot: snapshot,
		spec:     spec,
	}
}

// Start registers the snapshot job and starts the runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runSnapshot); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("[Scheduler] Daily snapshot scheduled: spec=%q", s.spec)

	return nil
}

// Stop halts the runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSnapshot() {
	ctx, cancel := context.WithTimeout(s.ctx, snapshotTimeout)
	defer cancel()
	ctx = logger.SetComponent(ctx, "scheduler")

	if ctx.Err() != nil {
		logger.CtxInfo(ctx, "Scheduler context is done: error=%v", ctx.Err())
		return
	}

	start := time.Now()
	summary, err := s.snapshot.Snapshot(ctx)
	if err != nil {
		logger.CtxError(ctx, "Failed to store daily snapshot: error=%v", err)
		return
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldCount:      summary.MealCount,
	}).Info(ctx, "Daily snapshot stored: user=%s, consumed=%d", summary.UserID, summary.Consumed)
}
