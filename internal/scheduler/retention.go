package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Jahnesta3rd/Mingus-2025-sub005/internal/storage"
)

// RetentionScheduler purges postings past the retention horizon on a
// cron schedule.
type RetentionScheduler struct {
	store     storage.Store
	cron      *cron.Cron
	schedule  string
	retention time.Duration
	logger    *zap.Logger
}

func NewRetentionScheduler(store storage.Store, schedule string, retention time.Duration, logger *zap.Logger) *RetentionScheduler {
	return &RetentionScheduler{
		store:     store,
		cron:      cron.New(),
		schedule:  schedule,
		retention: retention,
		logger:    logger,
	}
}

func (s *RetentionScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runPurge)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("retention scheduler started",
		zap.String("schedule", s.schedule),
		zap.Duration("retention", s.retention))
	return nil
}

func (s *RetentionScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *RetentionScheduler) runPurge() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	purged, err := s.store.PurgeExpired(ctx, s.retention)
	if err != nil {
		s.logger.Error("retention purge failed", zap.Error(err))
		return
	}
	s.logger.Info("retention purge completed", zap.Uint64("purged", purged))
}
