package scheduler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"content_catalog/internal/domain"
)

// SourceLister yields the sources opted in to automatic synchronization.
type SourceLister interface {
	ListAutoSync(ctx context.Context) ([]domain.ContentItemsSource, error)
}

// Syncer runs one synchronization attempt for a publisher's source.
type Syncer interface {
	TriggerSync(ctx context.Context, publisherID, sourceID string) *domain.SyncResult
}

type Scheduler struct {
	sources  SourceLister
	syncer   Syncer
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(sources SourceLister, syncer Syncer, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sources:  sources,
		syncer:   syncer,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runRound(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runRound(ctx)
		}
	}
}

// runRound syncs every auto-sync source once. One source failing, or being
// busy with a manually triggered sync, never stops the round.
func (s *Scheduler) runRound(ctx context.Context) {
	sources, err := s.sources.ListAutoSync(ctx)
	if err != nil {
		s.logger.Error("failed to list auto-sync sources", "error", err)
		return
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			return
		}
		s.syncOne(ctx, src)
	}
}

func (s *Scheduler) syncOne(ctx context.Context, src domain.ContentItemsSource) {
	syncCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res := s.syncer.TriggerSync(syncCtx, src.PublisherID, src.ID)
	switch {
	case res.Valid:
		s.logger.Info("auto-sync completed", "source_id", src.ID, "items", res.Items)
	case res.HTTPCode == http.StatusConflict:
		s.logger.Info("auto-sync skipped, sync already running", "source_id", src.ID)
	default:
		s.logger.Error("auto-sync failed", "source_id", src.ID, "reason", res.Message)
	}
}
