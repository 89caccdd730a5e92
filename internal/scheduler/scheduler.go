package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Maintainer is the slice of the store the maintenance jobs need.
type Maintainer interface {
	PurgeExpiredActivities(ctx context.Context, retainDays int) (int64, error)
	TrimPromptRevisions(ctx context.Context, keep int) (int64, error)
}

// Scheduler runs daily row hygiene: past activities beyond the retention
// window and inactive prompt revisions beyond the history cap. It never
// touches active prompts or future plans.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Maintainer
	logger    *slog.Logger

	retainDays  int
	historyKeep int
}

func New(store Maintainer, retainDays, historyKeep int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		store:       store,
		logger:      logger,
		retainDays:  retainDays,
		historyKeep: historyKeep,
	}
}

// Start registers the daily jobs and runs them in the background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At("03:30").Do(s.runMaintenance); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("maintenance scheduler started", "retain_days", s.retainDays, "history_keep", s.historyKeep)
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := s.store.PurgeExpiredActivities(ctx, s.retainDays)
	if err != nil {
		s.logger.Error("activity purge failed", "error", err)
	} else if purged > 0 {
		s.logger.Info("purged expired activities", "rows", purged)
	}

	trimmed, err := s.store.TrimPromptRevisions(ctx, s.historyKeep)
	if err != nil {
		s.logger.Error("prompt history trim failed", "error", err)
	} else if trimmed > 0 {
		s.logger.Info("trimmed prompt revisions", "rows", trimmed)
	}
}
