package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"content_catalog/internal/domain"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// QueryService reads the persisted catalog. It has no awareness of which
// source type produced a given item.
type QueryService struct {
	items  ItemStore
	logger *slog.Logger
}

func NewQueryService(items ItemStore, logger *slog.Logger) *QueryService {
	return &QueryService{
		items:  items,
		logger: logger.With("component", "query"),
	}
}

// ListItems returns one page of the publisher's content items.
func (s *QueryService) ListItems(ctx context.Context, publisherID string, page, limit int) (*domain.ItemPage, error) {
	page, limit = clampPaging(page, limit)

	items, total, err := s.items.List(ctx, publisherID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}

	return &domain.ItemPage{
		Items:   items,
		Total:   total,
		HasMore: page*limit < total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// SearchItems returns items matching query, ranked by relevance, capped at
// limit. An empty query is a request error, distinct from "no results".
func (s *QueryService) SearchItems(ctx context.Context, publisherID, query string, limit int) ([]domain.ContentItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &domain.ConfigError{Reason: "search query is required"}
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	items, err := s.items.Search(ctx, publisherID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search content items: %w", err)
	}
	return items, nil
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return page, limit
}
