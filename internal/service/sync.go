package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"content_catalog/internal/domain"
)

// SyncService orchestrates one synchronization attempt: load the source,
// fetch its raw payload, dispatch to the matching adapter, validate the
// candidates and persist the survivors atomically. Every outcome, success or
// failure, is reported as a SyncResult value; no stage error escapes.
type SyncService struct {
	sources   SourceStore
	items     ItemStore
	syncState SyncStateStore
	txManager TransactionManager
	fetcher   Fetcher
	adapters  AdapterRegistry
	publisher Publisher
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSyncService(
	sources SourceStore,
	items ItemStore,
	syncState SyncStateStore,
	txManager TransactionManager,
	fetcher Fetcher,
	adapters AdapterRegistry,
	publisher Publisher,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		sources:   sources,
		items:     items,
		syncState: syncState,
		txManager: txManager,
		fetcher:   fetcher,
		adapters:  adapters,
		publisher: publisher,
		logger:    logger.With("component", "sync"),
		inFlight:  make(map[string]struct{}),
	}
}

// TriggerSync runs one sync attempt for the publisher's source. A second
// attempt arriving while one is in flight for the same source is rejected
// fast rather than interleaved.
func (s *SyncService) TriggerSync(ctx context.Context, publisherID, sourceID string) *domain.SyncResult {
	startTime := time.Now()
	logger := s.logger.With("publisher_id", publisherID, "source_id", sourceID)

	src, err := s.sources.GetByID(ctx, publisherID, sourceID)
	if err != nil {
		if errors.Is(err, domain.ErrSourceNotFound) {
			return &domain.SyncResult{
				ID:       sourceID,
				Message:  "content items source not found",
				HTTPCode: http.StatusNotFound,
			}
		}
		logger.Error("failed to load source", "error", err)
		return &domain.SyncResult{
			ID:       sourceID,
			Message:  "failed to load content items source",
			HTTPCode: http.StatusInternalServerError,
		}
	}

	key := publisherID + "/" + sourceID
	if !s.begin(key) {
		return &domain.SyncResult{
			ID:       sourceID,
			Message:  "sync already in progress",
			HTTPCode: http.StatusConflict,
		}
	}
	defer s.end(key)

	logger.Info("starting sync", "type", src.Type, "url", src.URL)

	payload, err := s.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		logger.Error("fetch failed", "error", err)
		return &domain.SyncResult{
			ID:       sourceID,
			Message:  err.Error(),
			HTTPCode: http.StatusInternalServerError,
		}
	}

	ad, err := s.adapters.Get(src.Type)
	if err != nil {
		logger.Error("no adapter for source type", "type", src.Type)
		return &domain.SyncResult{
			ID:       sourceID,
			Message:  err.Error(),
			HTTPCode: http.StatusUnprocessableEntity,
		}
	}

	candidates, err := ad.ParseAndProject(payload, src.Mappings)
	if err != nil {
		logger.Error("parse failed", "error", err)
		return &domain.SyncResult{
			ID:       sourceID,
			Message:  err.Error(),
			HTTPCode: http.StatusUnprocessableEntity,
		}
	}

	stats := &domain.SyncStats{SourceID: sourceID, Parsed: len(candidates)}
	items := s.validateCandidates(logger, src, candidates, stats)

	existing, err := s.existingURLs(ctx, sourceID, items)
	if err != nil {
		logger.Error("failed to check existing items", "error", err)
		return &domain.SyncResult{
			ID:       sourceID,
			Message:  "failed to persist content items",
			HTTPCode: http.StatusInternalServerError,
		}
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := range items {
			if _, err := s.items.Upsert(txCtx, &items[i]); err != nil {
				return fmt.Errorf("upsert %q: %w", items[i].ContentURL, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("persist failed", "error", err)
		return &domain.SyncResult{
			ID:       sourceID,
			Message:  "failed to persist content items",
			HTTPCode: http.StatusInternalServerError,
		}
	}

	s.publishItems(ctx, items, existing, stats)

	if err := s.updateSyncState(ctx, sourceID, len(items)); err != nil {
		logger.Warn("failed to update sync state", "error", err)
	}

	stats.Duration = time.Since(startTime)
	logger.Info("sync completed",
		"parsed", stats.Parsed,
		"dropped", stats.Dropped,
		"new", stats.New,
		"updated", stats.Updated,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return &domain.SyncResult{
		ID:       sourceID,
		Valid:    true,
		Items:    len(items),
		Message:  fmt.Sprintf("synchronized %d content items", len(items)),
		HTTPCode: http.StatusOK,
	}
}

func (s *SyncService) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *SyncService) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}

// validateCandidates drops records that cannot become content items and
// stamps the survivors with their owner. Dropping is local recovery, not a
// fatal error; it only shows up in the final item count.
func (s *SyncService) validateCandidates(logger *slog.Logger, src *domain.ContentItemsSource, candidates []domain.ContentItem, stats *domain.SyncStats) []domain.ContentItem {
	items := make([]domain.ContentItem, 0, len(candidates))
	for _, candidate := range candidates {
		if err := domain.ValidateContentItem(&candidate); err != nil {
			stats.Dropped++
			logger.Debug("dropped candidate record", "reason", err)
			continue
		}
		candidate.PublisherID = src.PublisherID
		candidate.SourceID = src.ID
		items = append(items, candidate)
	}
	return items
}

func (s *SyncService) existingURLs(ctx context.Context, sourceID string, items []domain.ContentItem) (map[string]struct{}, error) {
	if len(items) == 0 {
		return map[string]struct{}{}, nil
	}
	urls := make([]string, len(items))
	for i, item := range items {
		urls[i] = item.ContentURL
	}
	return s.items.ExistingURLs(ctx, sourceID, urls)
}

func (s *SyncService) publishItems(ctx context.Context, items []domain.ContentItem, existing map[string]struct{}, stats *domain.SyncStats) {
	for i := range items {
		_, wasKnown := existing[items[i].ContentURL]
		if wasKnown {
			stats.Updated++
		} else {
			stats.New++
		}

		if s.publisher == nil {
			continue
		}
		if err := s.publisher.Publish(ctx, &items[i], !wasKnown); err != nil {
			s.logger.Warn("failed to publish item event",
				"content_url", items[i].ContentURL,
				"error", err,
			)
		} else {
			stats.Published++
		}
	}
}

func (s *SyncService) updateSyncState(ctx context.Context, sourceID string, itemCount int) error {
	state, err := s.syncState.Get(ctx, sourceID)
	if err != nil {
		return err
	}

	state.SourceID = sourceID
	state.LastSyncedAt = time.Now().UTC()
	state.LastItems = int64(itemCount)
	state.TotalSynced += int64(itemCount)

	return s.syncState.Update(ctx, state)
}
