package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"content_catalog/internal/domain"
)

// SourceService handles registration and listing of content items sources.
type SourceService struct {
	sources SourceStore
	logger  *slog.Logger
}

func NewSourceService(sources SourceStore, logger *slog.Logger) *SourceService {
	return &SourceService{
		sources: sources,
		logger:  logger.With("component", "sources"),
	}
}

// Create validates the candidate, allocates an identifier, attaches the
// owning publisher and persists the configuration. No content is fetched;
// synchronization is always a separate, explicit action. An invalid payload
// surfaces as a domain.ConfigError carrying the first violated rule.
func (s *SourceService) Create(ctx context.Context, publisherID string, data domain.SourceData) (*domain.ContentItemsSource, error) {
	validation := domain.ValidateSourceData(data)
	if !validation.Valid {
		return nil, &domain.ConfigError{Reason: validation.Message}
	}

	src := validation.Data
	src.ID = uuid.NewString()
	src.PublisherID = publisherID
	src.CreatedAt = time.Now().UTC()

	if err := s.sources.Create(ctx, src); err != nil {
		return nil, fmt.Errorf("create content items source: %w", err)
	}

	s.logger.Info("content items source created",
		"source_id", src.ID,
		"publisher_id", publisherID,
		"type", src.Type,
		"auto_sync", src.AutoSync,
	)

	return src, nil
}

// List returns one page of the publisher's sources.
func (s *SourceService) List(ctx context.Context, publisherID string, page, limit int) (*domain.SourcePage, error) {
	page, limit = clampPaging(page, limit)

	sources, total, err := s.sources.List(ctx, publisherID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list content items sources: %w", err)
	}

	return &domain.SourcePage{
		Items:   sources,
		Total:   total,
		HasMore: page*limit < total,
		Page:    page,
		Limit:   limit,
	}, nil
}
